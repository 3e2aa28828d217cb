// Package apperr defines the error taxonomy shared by the location and
// weather components. Every provider or capability failure is classified
// into one of these kinds at the component boundary; nothing escapes as a
// raw transport error.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is a typed string categorizing a failure.
type Kind string

const (
	// KindGeocodeFailure covers forward/reverse geocoding provider errors
	// and malformed geocoding payloads.
	KindGeocodeFailure Kind = "geocode_failure"

	// KindLocationNotFound means a text query produced zero geocode
	// candidates when resolving coordinates for a weather fetch.
	KindLocationNotFound Kind = "location_not_found"

	// KindForecastFailure covers current-conditions and forecast provider
	// errors, including parse failures.
	KindForecastFailure Kind = "forecast_failure"

	// KindInvalidCoordinates means the caller passed out-of-range lat/lon.
	KindInvalidCoordinates Kind = "invalid_coordinates"

	// Geolocation capability outcomes.
	KindPermissionDenied    Kind = "permission_denied"
	KindPositionUnavailable Kind = "position_unavailable"
	KindLocationTimeout     Kind = "location_timeout"
	KindUnknownLocation     Kind = "unknown_location_error"
)

// HTTPStatus maps a kind to the status the API layer responds with.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalidCoordinates:
		return http.StatusBadRequest
	case KindLocationNotFound:
		return http.StatusNotFound
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindLocationTimeout:
		return http.StatusGatewayTimeout
	case KindGeocodeFailure, KindForecastFailure, KindPositionUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error is the application error type carrying a kind, a human-readable
// message, and the wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error with the given kind, message, and optional cause.
func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Newf creates an Error with a formatted message and no cause.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from err, or KindUnknownLocation when err is
// not an *Error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknownLocation
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
