package location

import "github.com/skydash/weather-dashboard/internal/apperr"

// Place is a resolved, queryable location. Lat/Lon are always populated
// once a Place comes out of the resolver or the popular-city catalog;
// Name is never empty. Places are replaced wholesale, never mutated.
type Place struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Scope restricts a text search to a region.
type Scope string

const (
	// ScopeAll searches worldwide, up to 10 candidates.
	ScopeAll Scope = "all"
	// ScopeIndia biases the query toward India and keeps only candidates
	// with country code IN, up to 15 pre-filter.
	ScopeIndia Scope = "country:IN"
)

// Phase is the per-operation state of the resolver.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseSearching Phase = "searching"
	PhaseResolved  Phase = "resolved"
	PhaseError     Phase = "error"
)

// Snapshot is an immutable view of the resolver's state, published to
// subscribers after every transition. Current location is an independent
// cell: it only ever holds the last successfully resolved or explicitly
// selected Place and is not cleared by failed operations.
type Snapshot struct {
	Current       *Place        `json:"current,omitempty"`
	SearchResults []Place       `json:"searchResults"`
	Phase         Phase         `json:"phase"`
	Err           *apperr.Error `json:"-"`
}
