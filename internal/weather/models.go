package weather

import (
	"time"

	"github.com/skydash/weather-dashboard/internal/apperr"
)

// CurrentConditions is the normalized snapshot of present weather for
// one place. Temperatures are °C, wind is m/s, pressure hPa, visibility
// km (converted from the provider's meters). Replaced wholesale on
// every successful fetch.
type CurrentConditions struct {
	Temp        float64 `json:"temp"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    float64 `json:"humidity"`
	Pressure    float64 `json:"pressure"`
	WindSpeed   float64 `json:"wind_speed"`
	WindDeg     float64 `json:"wind_deg"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Visibility  float64 `json:"visibility"`

	// UVIndex is never fetched from a UV endpoint; it stays 0 rather
	// than inventing a data source.
	UVIndex float64 `json:"uv_index"`
}

// TempRange is the aggregated temperature span of one day. Avg is a
// rounded mean; Max >= Avg >= Min always holds.
type TempRange struct {
	Max float64 `json:"max"`
	Min float64 `json:"min"`
	Avg float64 `json:"avg"`
}

// DailyForecast is one aggregated day derived from the provider's raw
// 3-hour samples sharing a calendar date. Description and Icon are each
// independently the mode of their own field; they need not come from
// the same sample.
type DailyForecast struct {
	Date        time.Time `json:"date"`
	Temp        TempRange `json:"temp"`
	Humidity    float64   `json:"humidity"`
	WindSpeed   float64   `json:"wind_speed"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
}

// HourlyForecast is one raw near-term sample, passed through without
// aggregation or rounding.
type HourlyForecast struct {
	Time        time.Time `json:"time"`
	Temp        float64   `json:"temp"`
	Humidity    float64   `json:"humidity"`
	WindSpeed   float64   `json:"wind_speed"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
}

// ForecastBundle pairs the aggregated daily sequence with the raw
// hourly horizon. Both are rebuilt from scratch on every fetch.
type ForecastBundle struct {
	Daily  []DailyForecast  `json:"daily"`
	Hourly []HourlyForecast `json:"hourly"`
}

// Coordinates is a resolved lat/lon pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Query targets a fetch at either a free-text place name or resolved
// coordinates. Text queries are geocoded (limit 1) before the weather
// call.
type Query struct {
	Text   string
	Coords *Coordinates
}

// TextQuery builds a Query from a place name.
func TextQuery(text string) Query {
	return Query{Text: text}
}

// CoordQuery builds a Query from resolved coordinates.
func CoordQuery(lat, lon float64) Query {
	return Query{Coords: &Coordinates{Lat: lat, Lon: lon}}
}

// Snapshot is an immutable view of the aggregator's state. Data slices
// stay visible while a reload is in flight and across failed refreshes;
// only a successful fetch replaces them.
type Snapshot struct {
	Current     *CurrentConditions `json:"current,omitempty"`
	Daily       []DailyForecast    `json:"daily,omitempty"`
	Hourly      []HourlyForecast   `json:"hourly,omitempty"`
	Loading     bool               `json:"loading"`
	Err         *apperr.Error      `json:"-"`
	LastUpdated *time.Time         `json:"lastUpdated,omitempty"`
}
