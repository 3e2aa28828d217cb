// Package location resolves free-text queries and raw coordinates into
// canonical Places, owns the current-location cell, and serves the
// popular-city catalog.
package location

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skydash/weather-dashboard/internal/apperr"
	"github.com/skydash/weather-dashboard/internal/openweather"
)

const (
	searchLimitAll   = 10
	searchLimitIndia = 15
	reverseLimit     = 5

	defaultGeoTimeout = 10 * time.Second
	geoMaxCacheAge    = 5 * time.Minute
)

// Geocoder is the slice of the provider client the resolver needs.
type Geocoder interface {
	DirectGeocode(ctx context.Context, query string, limit int) ([]openweather.GeoPlace, error)
	ReverseGeocode(ctx context.Context, lat, lon float64, limit int) ([]openweather.GeoPlace, error)
}

// Resolver is the location data-access service. All mutation happens
// inside its own operations; consumers read snapshots or subscribe.
//
// The resolver is debounce-agnostic: callers issuing per-keystroke
// searches must coalesce them (see Debouncer) before calling in.
type Resolver struct {
	geocoder   Geocoder
	positioner Positioner
	geoTimeout time.Duration

	mu          sync.Mutex
	current     *Place
	results     []Place
	phase       Phase
	lastErr     *apperr.Error
	searchToken uuid.UUID

	subscribers []func(Snapshot)
}

// NewResolver creates a Resolver. positioner may be nil when no host
// positioning capability exists; UseGeolocation then reports the
// position as unavailable. geoTimeout <= 0 falls back to 10 seconds.
func NewResolver(geocoder Geocoder, positioner Positioner, geoTimeout time.Duration) *Resolver {
	if geoTimeout <= 0 {
		geoTimeout = defaultGeoTimeout
	}
	return &Resolver{
		geocoder:   geocoder,
		positioner: positioner,
		geoTimeout: geoTimeout,
		phase:      PhaseIdle,
	}
}

// Subscribe registers a callback invoked after every state transition.
// Callbacks receive an immutable snapshot and must not call back into
// the resolver synchronously.
func (r *Resolver) Subscribe(fn func(Snapshot)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscribers = append(r.subscribers, fn)
}

// State returns the current snapshot.
func (r *Resolver) State() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Current returns the current location, or nil when none has been
// resolved or selected yet.
func (r *Resolver) Current() *Place {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return nil
	}
	p := *r.current
	return &p
}

// Select replaces the current location synchronously. Triggering a
// weather fetch for the new location is the caller's responsibility.
func (r *Resolver) Select(place Place) {
	r.mu.Lock()
	p := place
	r.current = &p
	snap := r.snapshotLocked()
	subs := r.subscribersLocked()
	r.mu.Unlock()

	publish(subs, snap)
}

// ClearSearchResults empties the search result set without touching the
// current location.
func (r *Resolver) ClearSearchResults() {
	r.mu.Lock()
	r.results = nil
	snap := r.snapshotLocked()
	subs := r.subscribersLocked()
	r.mu.Unlock()

	publish(subs, snap)
}

// SearchByText resolves a partial text query into candidate Places in
// provider rank order. An empty trimmed query is a no-op that clears
// the result set. With ScopeIndia the query is biased with an ", India"
// suffix and results are filtered to country code IN.
//
// A newer search supersedes an older in-flight one: the stale call
// still returns its results to its caller, but no longer publishes
// them into resolver state.
func (r *Resolver) SearchByText(ctx context.Context, query string, scope Scope) ([]Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		r.ClearSearchResults()
		return nil, nil
	}

	providerQuery := query
	limit := searchLimitAll
	if scope == ScopeIndia {
		providerQuery = query + ", India"
		limit = searchLimitIndia
	}

	token := r.beginSearch()

	candidates, err := r.geocoder.DirectGeocode(ctx, providerQuery, limit)
	if err != nil {
		ae := apperr.New(apperr.KindGeocodeFailure, "failed to search locations", err)
		r.settleSearch(token, nil, ae)
		return nil, ae
	}

	places := make([]Place, 0, len(candidates))
	for _, c := range candidates {
		if scope == ScopeIndia && c.Country != "IN" {
			continue
		}
		places = append(places, Place{
			Name:    c.Name,
			Country: c.Country,
			State:   c.State,
			Lat:     c.Lat,
			Lon:     c.Lon,
		})
	}

	r.settleSearch(token, places, nil)
	return places, nil
}

// ReverseResolve turns coordinates into a named Place. The returned
// Place keeps the input coordinates, not the provider's canonical point
// for the matched name, so map-click precision is preserved.
func (r *Resolver) ReverseResolve(ctx context.Context, lat, lon float64) (Place, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Place{}, apperr.Newf(apperr.KindInvalidCoordinates,
			"coordinates out of range: lat=%v lon=%v", lat, lon)
	}

	token := r.beginSearch()

	candidates, err := r.geocoder.ReverseGeocode(ctx, lat, lon, reverseLimit)
	if err != nil {
		ae := apperr.New(apperr.KindGeocodeFailure, "failed to reverse geocode", err)
		r.settleResolve(token, nil, ae)
		return Place{}, ae
	}

	best, ok := pickReverseCandidate(candidates)
	if !ok {
		ae := apperr.Newf(apperr.KindGeocodeFailure, "no place found at lat=%v lon=%v", lat, lon)
		r.settleResolve(token, nil, ae)
		return Place{}, ae
	}

	place := Place{
		Name:    best.Name,
		Country: best.Country,
		State:   best.State,
		Lat:     lat,
		Lon:     lon,
	}

	r.settleResolve(token, nil, nil)
	return place, nil
}

// UseGeolocation obtains a device fix from the host positioning
// capability, reverse-resolves it, and caches the result as the current
// location. Capability failures are classified but never retried.
func (r *Resolver) UseGeolocation(ctx context.Context) (Place, error) {
	if r.positioner == nil {
		ae := apperr.Newf(apperr.KindPositionUnavailable, "no positioning capability available")
		r.reportError(ae)
		return Place{}, ae
	}

	token := r.beginSearch()

	pos, err := r.positioner.RequestPosition(ctx, PositionOptions{
		HighAccuracy: true,
		Timeout:      r.geoTimeout,
		MaxCacheAge:  geoMaxCacheAge,
	})
	if err != nil {
		ae := classifyPositionError(err)
		r.settleResolve(token, nil, ae)
		return Place{}, ae
	}

	place, err := r.ReverseResolve(ctx, pos.Lat, pos.Lon)
	if err != nil {
		return Place{}, err
	}

	r.Select(place)
	return place, nil
}

func classifyPositionError(err error) *apperr.Error {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return apperr.New(apperr.KindPermissionDenied,
			"location access denied; enable location services", err)
	case errors.Is(err, ErrPositionUnavailable):
		return apperr.New(apperr.KindPositionUnavailable,
			"location information is unavailable", err)
	case errors.Is(err, ErrPositionTimeout), errors.Is(err, context.DeadlineExceeded):
		return apperr.New(apperr.KindLocationTimeout,
			"location request timed out", err)
	default:
		return apperr.New(apperr.KindUnknownLocation,
			"unknown error while getting location", err)
	}
}

// beginSearch transitions to the searching phase and returns a token
// identifying this operation for supersede checks.
func (r *Resolver) beginSearch() uuid.UUID {
	token := uuid.New()

	r.mu.Lock()
	r.phase = PhaseSearching
	r.lastErr = nil
	r.searchToken = token
	snap := r.snapshotLocked()
	subs := r.subscribersLocked()
	r.mu.Unlock()

	publish(subs, snap)
	return token
}

// settleSearch publishes the outcome of a text search unless a newer
// operation has superseded it.
func (r *Resolver) settleSearch(token uuid.UUID, results []Place, ae *apperr.Error) {
	r.mu.Lock()
	if r.searchToken != token {
		r.mu.Unlock()
		log.Printf("location: dropping superseded search results")
		return
	}
	if ae != nil {
		r.phase = PhaseError
		r.lastErr = ae
		// A failed search leaves the result set as the empty sequence.
		r.results = []Place{}
	} else {
		r.phase = PhaseResolved
		r.results = results
	}
	snap := r.snapshotLocked()
	subs := r.subscribersLocked()
	r.mu.Unlock()

	publish(subs, snap)
}

// settleResolve publishes the outcome of a reverse/geolocation resolve.
// Unlike settleSearch it leaves the search result set alone.
func (r *Resolver) settleResolve(token uuid.UUID, _ []Place, ae *apperr.Error) {
	r.mu.Lock()
	if r.searchToken != token {
		r.mu.Unlock()
		return
	}
	if ae != nil {
		r.phase = PhaseError
		r.lastErr = ae
	} else {
		r.phase = PhaseResolved
	}
	snap := r.snapshotLocked()
	subs := r.subscribersLocked()
	r.mu.Unlock()

	publish(subs, snap)
}

func (r *Resolver) reportError(ae *apperr.Error) {
	r.mu.Lock()
	r.phase = PhaseError
	r.lastErr = ae
	snap := r.snapshotLocked()
	subs := r.subscribersLocked()
	r.mu.Unlock()

	publish(subs, snap)
}

func (r *Resolver) snapshotLocked() Snapshot {
	// The result set is always a sequence, never undefined.
	results := make([]Place, len(r.results))
	copy(results, r.results)

	snap := Snapshot{
		SearchResults: results,
		Phase:         r.phase,
		Err:           r.lastErr,
	}
	if r.current != nil {
		p := *r.current
		snap.Current = &p
	}
	return snap
}

func (r *Resolver) subscribersLocked() []func(Snapshot) {
	return append(([]func(Snapshot))(nil), r.subscribers...)
}

func publish(subs []func(Snapshot), snap Snapshot) {
	for _, fn := range subs {
		fn(snap)
	}
}
