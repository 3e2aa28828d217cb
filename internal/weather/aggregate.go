package weather

import (
	"math"
	"sort"
	"time"

	"github.com/skydash/weather-dashboard/internal/openweather"
)

// hourlyHorizon is how many raw 3-hour samples make up the near-term
// hourly view (24 hours at the provider's resolution).
const hourlyHorizon = 8

// AggregateDaily buckets raw 3-hour samples by calendar date and
// reduces each bucket to one DailyForecast, sorted ascending by date.
// Dates are taken from the sample timestamps as they already encode
// them (UTC interpretation, no further timezone conversion).
//
// Description and icon are each independently the most frequent value
// of their own field, ties broken by first encounter in sample order.
func AggregateDaily(samples []openweather.ForecastSample) []DailyForecast {
	type bucket struct {
		date         time.Time
		temps        []float64
		humidity     []float64
		windSpeed    []float64
		descriptions []string
		icons        []string
	}

	buckets := make(map[string]*bucket)

	for _, s := range samples {
		ts := time.Unix(s.Dt, 0).UTC()
		key := ts.Format("2006-01-02")

		b, ok := buckets[key]
		if !ok {
			b = &bucket{date: time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)}
			buckets[key] = b
		}

		b.temps = append(b.temps, s.Main.Temp)
		b.humidity = append(b.humidity, s.Main.Humidity)
		b.windSpeed = append(b.windSpeed, s.Wind.Speed)
		if len(s.Weather) > 0 {
			b.descriptions = append(b.descriptions, s.Weather[0].Description)
			b.icons = append(b.icons, s.Weather[0].Icon)
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	daily := make([]DailyForecast, 0, len(buckets))
	for _, k := range keys {
		b := buckets[k]

		tmax := maxOf(b.temps)
		tmin := minOf(b.temps)
		// Rounding the mean can push it past the sampled extremes;
		// clamp so min <= avg <= max always holds.
		tavg := math.Round(meanOf(b.temps))
		if tavg > tmax {
			tavg = tmax
		}
		if tavg < tmin {
			tavg = tmin
		}

		daily = append(daily, DailyForecast{
			Date: b.date,
			Temp: TempRange{
				Max: tmax,
				Min: tmin,
				Avg: tavg,
			},
			Humidity:    math.Round(meanOf(b.humidity)),
			WindSpeed:   meanOf(b.windSpeed),
			Description: modeFirstSeen(b.descriptions),
			Icon:        modeFirstSeen(b.icons),
		})
	}

	return daily
}

// HourlySlice converts the first hourlyHorizon raw samples without
// aggregation; rounding for display is a presentation concern.
func HourlySlice(samples []openweather.ForecastSample) []HourlyForecast {
	n := len(samples)
	if n > hourlyHorizon {
		n = hourlyHorizon
	}

	hourly := make([]HourlyForecast, 0, n)
	for _, s := range samples[:n] {
		h := HourlyForecast{
			Time:      time.Unix(s.Dt, 0).UTC(),
			Temp:      s.Main.Temp,
			Humidity:  s.Main.Humidity,
			WindSpeed: s.Wind.Speed,
		}
		if len(s.Weather) > 0 {
			h.Description = s.Weather[0].Description
			h.Icon = s.Weather[0].Icon
		}
		hourly = append(hourly, h)
	}
	return hourly
}

// modeFirstSeen returns the most frequent value, breaking ties in favor
// of the value encountered first. The tie-break makes aggregation
// deterministic for a given sample order.
func modeFirstSeen(values []string) string {
	if len(values) == 0 {
		return ""
	}

	counts := make(map[string]int, len(values))
	firstSeen := make(map[string]int, len(values))
	for i, v := range values {
		if _, ok := firstSeen[v]; !ok {
			firstSeen[v] = i
		}
		counts[v]++
	}

	best := values[0]
	for v, c := range counts {
		if c > counts[best] || (c == counts[best] && firstSeen[v] < firstSeen[best]) {
			best = v
		}
	}
	return best
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func meanOf(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
