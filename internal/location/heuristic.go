package location

import (
	"strings"

	"github.com/skydash/weather-dashboard/internal/openweather"
)

// administrative label fragments that make a reverse-geocode candidate a
// poor display name for a point location.
var adminLabelFragments = []string{"district", "region"}

// isAdminLabel reports whether a candidate name reads as an
// administrative area rather than a settlement.
func isAdminLabel(name string) bool {
	lower := strings.ToLower(name)
	for _, frag := range adminLabelFragments {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}

// pickReverseCandidate selects the best candidate from a reverse-geocode
// result list: the first one whose name is not an administrative label
// and that carries a non-empty state or country. When no candidate
// qualifies, the provider's first (highest-confidence) candidate wins.
// This is a best-effort tie-break policy, not a correctness guarantee.
func pickReverseCandidate(candidates []openweather.GeoPlace) (openweather.GeoPlace, bool) {
	if len(candidates) == 0 {
		return openweather.GeoPlace{}, false
	}
	for _, c := range candidates {
		if c.Name == "" {
			continue
		}
		if (c.State != "" || c.Country != "") && !isAdminLabel(c.Name) {
			return c, true
		}
	}
	return candidates[0], true
}
