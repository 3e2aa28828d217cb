package location

import (
	"context"
	"errors"
	"time"
)

// Position is a device fix from the host positioning capability.
type Position struct {
	Lat float64
	Lon float64
}

// PositionOptions mirror the host capability's contract: high-accuracy
// fixes, a hard timeout, and acceptance of cached fixes up to MaxCacheAge
// old.
type PositionOptions struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaxCacheAge  time.Duration
}

// Capability error conditions. Positioner implementations must return
// one of these (possibly wrapped); anything else is reported as an
// unknown location error.
var (
	ErrPermissionDenied    = errors.New("geolocation permission denied")
	ErrPositionUnavailable = errors.New("position unavailable")
	ErrPositionTimeout     = errors.New("position request timed out")
)

// Positioner is the permission-gated host positioning capability. It
// suspends pending permission grant and fix acquisition and must honor
// the timeout in its options.
type Positioner interface {
	RequestPosition(ctx context.Context, opts PositionOptions) (Position, error)
}

// PositionFunc adapts a function to the Positioner interface.
type PositionFunc func(ctx context.Context, opts PositionOptions) (Position, error)

func (f PositionFunc) RequestPosition(ctx context.Context, opts PositionOptions) (Position, error) {
	return f(ctx, opts)
}
