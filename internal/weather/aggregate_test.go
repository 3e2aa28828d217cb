package weather

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/skydash/weather-dashboard/internal/openweather"
)

func mkSample(ts time.Time, temp, humidity, wind float64, desc, icon string) openweather.ForecastSample {
	var s openweather.ForecastSample
	s.Dt = ts.Unix()
	s.Main.Temp = temp
	s.Main.Humidity = humidity
	s.Wind.Speed = wind
	s.Weather = []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	}{{Description: desc, Icon: icon}}
	return s
}

// TestAggregateDailyBuckets verifies that 40 3-hour samples spanning 5
// calendar dates collapse into exactly 5 days, sorted ascending.
func TestAggregateDailyBuckets(t *testing.T) {
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	var samples []openweather.ForecastSample
	for day := 0; day < 5; day++ {
		for hour := 0; hour < 24; hour += 3 {
			ts := base.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour)
			samples = append(samples, mkSample(ts, 20+float64(day), 60, 3, "clear sky", "01d"))
		}
	}
	if len(samples) != 40 {
		t.Fatalf("expected 40 samples, got %d", len(samples))
	}

	daily := AggregateDaily(samples)
	if len(daily) != 5 {
		t.Fatalf("expected 5 daily entries, got %d", len(daily))
	}
	for i := 1; i < len(daily); i++ {
		if !daily[i].Date.After(daily[i-1].Date) {
			t.Fatalf("daily entries not sorted ascending: %v before %v", daily[i-1].Date, daily[i].Date)
		}
	}
	if got := daily[0].Date; !got.Equal(base) {
		t.Fatalf("expected first date %v, got %v", base, got)
	}
}

// TestAggregateDailyStats checks max/min/avg, humidity, and wind
// reduction for one day of samples.
func TestAggregateDailyStats(t *testing.T) {
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	samples := []openweather.ForecastSample{
		mkSample(base, 10, 50, 2, "light rain", "10d"),
		mkSample(base.Add(3*time.Hour), 20, 61, 4, "clear sky", "01d"),
		mkSample(base.Add(6*time.Hour), 15, 70, 3, "light rain", "10d"),
	}

	daily := AggregateDaily(samples)
	if len(daily) != 1 {
		t.Fatalf("expected 1 daily entry, got %d", len(daily))
	}

	d := daily[0]
	if d.Temp.Max != 20 || d.Temp.Min != 10 {
		t.Fatalf("unexpected temp range: max=%v min=%v", d.Temp.Max, d.Temp.Min)
	}
	if d.Temp.Avg != 15 {
		t.Fatalf("expected avg 15, got %v", d.Temp.Avg)
	}
	if d.Humidity != 60 { // mean 60.33 rounds to 60
		t.Fatalf("expected humidity 60, got %v", d.Humidity)
	}
	if d.WindSpeed != 3 {
		t.Fatalf("expected wind 3, got %v", d.WindSpeed)
	}
	if d.Description != "light rain" || d.Icon != "10d" {
		t.Fatalf("unexpected mode: %q %q", d.Description, d.Icon)
	}
}

// TestAggregateDailyInvariant checks min <= avg <= max even when the
// rounded mean would overshoot the sampled extremes.
func TestAggregateDailyInvariant(t *testing.T) {
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	samples := []openweather.ForecastSample{
		mkSample(base, 20.6, 60, 3, "clear sky", "01d"),
		mkSample(base.Add(3*time.Hour), 20.6, 60, 3, "clear sky", "01d"),
	}

	d := AggregateDaily(samples)[0]
	if d.Temp.Min > d.Temp.Avg || d.Temp.Avg > d.Temp.Max {
		t.Fatalf("invariant violated: min=%v avg=%v max=%v", d.Temp.Min, d.Temp.Avg, d.Temp.Max)
	}
}

// TestAggregateDailyOrderIndependent verifies that shuffling the sample
// order does not change the numeric aggregates or the bucket set.
func TestAggregateDailyOrderIndependent(t *testing.T) {
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	var samples []openweather.ForecastSample
	for day := 0; day < 3; day++ {
		for hour := 0; hour < 24; hour += 3 {
			ts := base.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour)
			samples = append(samples, mkSample(ts, float64(10+hour), 55, 2.5, "overcast clouds", "04d"))
		}
	}

	want := AggregateDaily(samples)

	shuffled := append([]openweather.ForecastSample(nil), samples...)
	rand.New(rand.NewSource(1)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	got := AggregateDaily(shuffled)
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("aggregation differs under reordering:\nwant %+v\ngot  %+v", want, got)
	}
}

// TestModeFirstSeen verifies frequency-then-first-seen selection, and
// that description and icon are each independently their own mode.
func TestModeFirstSeen(t *testing.T) {
	if got := modeFirstSeen([]string{"a", "b", "b", "a", "c"}); got != "a" {
		t.Fatalf("expected tie to break toward first-seen 'a', got %q", got)
	}
	if got := modeFirstSeen([]string{"x", "y", "y"}); got != "y" {
		t.Fatalf("expected majority 'y', got %q", got)
	}
	if got := modeFirstSeen(nil); got != "" {
		t.Fatalf("expected empty result for no values, got %q", got)
	}
}

func TestDescriptionAndIconAreIndependentModes(t *testing.T) {
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	// Description majority comes from samples 0 and 2, icon majority
	// from samples 1 and 2; the winning pair never co-occurs.
	samples := []openweather.ForecastSample{
		mkSample(base, 10, 50, 2, "light rain", "01d"),
		mkSample(base.Add(3*time.Hour), 11, 50, 2, "clear sky", "10d"),
		mkSample(base.Add(6*time.Hour), 12, 50, 2, "light rain", "10d"),
	}

	d := AggregateDaily(samples)[0]
	if d.Description != "light rain" {
		t.Fatalf("expected description mode 'light rain', got %q", d.Description)
	}
	if d.Icon != "10d" {
		t.Fatalf("expected icon mode '10d', got %q", d.Icon)
	}
}

// TestHourlySlice verifies the raw pass-through of the first 8 samples.
func TestHourlySlice(t *testing.T) {
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	var samples []openweather.ForecastSample
	for i := 0; i < 12; i++ {
		ts := base.Add(time.Duration(i*3) * time.Hour)
		samples = append(samples, mkSample(ts, 20.25+float64(i), 63, 3.7, "scattered clouds", "03d"))
	}

	hourly := HourlySlice(samples)
	if len(hourly) != 8 {
		t.Fatalf("expected 8 hourly entries, got %d", len(hourly))
	}
	if hourly[0].Temp != 20.25 {
		t.Fatalf("expected unrounded temp 20.25, got %v", hourly[0].Temp)
	}
	if !hourly[7].Time.Equal(base.Add(21 * time.Hour)) {
		t.Fatalf("unexpected last hourly time: %v", hourly[7].Time)
	}

	short := HourlySlice(samples[:3])
	if len(short) != 3 {
		t.Fatalf("expected 3 hourly entries for short feed, got %d", len(short))
	}
}
