package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/skydash/weather-dashboard/internal/location"
	"github.com/skydash/weather-dashboard/internal/openweather"
	"github.com/skydash/weather-dashboard/internal/weather"
)

type countingProvider struct {
	calls atomic.Int64
}

func (p *countingProvider) DirectGeocode(context.Context, string, int) ([]openweather.GeoPlace, error) {
	return nil, nil
}

func (p *countingProvider) CurrentWeather(context.Context, float64, float64) (openweather.CurrentPayload, error) {
	p.calls.Add(1)
	return openweather.CurrentPayload{}, nil
}

func (p *countingProvider) Forecast(context.Context, float64, float64) (openweather.ForecastPayload, error) {
	return openweather.ForecastPayload{}, nil
}

func (p *countingProvider) ReverseGeocode(context.Context, float64, float64, int) ([]openweather.GeoPlace, error) {
	return nil, nil
}

func TestRefresherDisabledWithoutInterval(t *testing.T) {
	provider := &countingProvider{}
	resolver := location.NewResolver(provider, nil, 0)
	aggregator := weather.NewAggregator(provider)

	r := New(resolver, aggregator, 0)
	if err := r.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Stop()

	time.Sleep(50 * time.Millisecond)
	if got := provider.calls.Load(); got != 0 {
		t.Fatalf("expected no fetches when disabled, got %d", got)
	}
}

func TestRefresherSkipsWithoutSelectedLocation(t *testing.T) {
	provider := &countingProvider{}
	resolver := location.NewResolver(provider, nil, 0)
	aggregator := weather.NewAggregator(provider)

	r := New(resolver, aggregator, 10*time.Millisecond)
	if err := r.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Stop()

	time.Sleep(60 * time.Millisecond)
	if got := provider.calls.Load(); got != 0 {
		t.Fatalf("expected no fetches without a selected location, got %d", got)
	}
}

func TestRefresherFetchesForSelectedLocation(t *testing.T) {
	provider := &countingProvider{}
	resolver := location.NewResolver(provider, nil, 0)
	aggregator := weather.NewAggregator(provider)

	resolver.Select(location.Place{Name: "Mumbai", Country: "IN", Lat: 19.076, Lon: 72.8777})

	r := New(resolver, aggregator, 10*time.Millisecond)
	if err := r.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if provider.calls.Load() > 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("refresher never fetched for the selected location")
}
