// Package weather fetches, normalizes, and aggregates provider weather
// data for one place, and owns the loading / error / last-updated state
// the presentation layer renders from.
package weather

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skydash/weather-dashboard/internal/apperr"
	"github.com/skydash/weather-dashboard/internal/openweather"
)

// ProviderClient is the slice of the provider client the aggregator needs.
type ProviderClient interface {
	DirectGeocode(ctx context.Context, query string, limit int) ([]openweather.GeoPlace, error)
	CurrentWeather(ctx context.Context, lat, lon float64) (openweather.CurrentPayload, error)
	Forecast(ctx context.Context, lat, lon float64) (openweather.ForecastPayload, error)
}

// Aggregator is the weather data-access service. Each fetch operation
// owns one state slice (current conditions vs forecast) and replaces it
// atomically; a failed refresh leaves the previous slice visible.
type Aggregator struct {
	client ProviderClient

	mu          sync.Mutex
	current     *CurrentConditions
	daily       []DailyForecast
	hourly      []HourlyForecast
	inflight    int
	lastErr     *apperr.Error
	lastUpdated *time.Time

	// latest-wins tokens, one per state slice
	currentToken  uuid.UUID
	forecastToken uuid.UUID

	subscribers []func(Snapshot)
}

// NewAggregator creates an Aggregator backed by the given provider client.
func NewAggregator(client ProviderClient) *Aggregator {
	return &Aggregator{client: client}
}

// Subscribe registers a callback invoked after every state transition.
func (a *Aggregator) Subscribe(fn func(Snapshot)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.subscribers = append(a.subscribers, fn)
}

// State returns the current snapshot.
func (a *Aggregator) State() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

// Clear resets all weather state, e.g. when the session's location is
// discarded.
func (a *Aggregator) Clear() {
	a.mu.Lock()
	a.current = nil
	a.daily = nil
	a.hourly = nil
	a.lastErr = nil
	a.lastUpdated = nil
	snap := a.snapshotLocked()
	subs := a.subscribersLocked()
	a.mu.Unlock()

	publish(subs, snap)
}

// FetchCurrent retrieves and normalizes present conditions for the
// query. Text queries geocode with limit 1 first; zero candidates fail
// with LocationNotFound. On failure the previous conditions stay
// untouched.
func (a *Aggregator) FetchCurrent(ctx context.Context, q Query) (CurrentConditions, error) {
	token := a.begin(&a.currentToken)

	coords, err := a.resolveCoords(ctx, q)
	if err != nil {
		a.settleCurrent(token, nil, asAppError(err))
		return CurrentConditions{}, err
	}

	payload, err := a.client.CurrentWeather(ctx, coords.Lat, coords.Lon)
	if err != nil {
		ae := apperr.New(apperr.KindForecastFailure, "failed to fetch weather data", err)
		a.settleCurrent(token, nil, ae)
		return CurrentConditions{}, ae
	}

	cc := CurrentConditions{
		Temp:       payload.Main.Temp,
		FeelsLike:  payload.Main.FeelsLike,
		Humidity:   payload.Main.Humidity,
		Pressure:   payload.Main.Pressure,
		WindSpeed:  payload.Wind.Speed,
		WindDeg:    payload.Wind.Deg,
		Visibility: payload.Visibility / 1000, // meters to km
	}
	if len(payload.Weather) > 0 {
		cc.Description = payload.Weather[0].Description
		cc.Icon = payload.Weather[0].Icon
	}

	a.settleCurrent(token, &cc, nil)
	return cc, nil
}

// FetchForecast retrieves the 5-day feed and rebuilds the daily and
// hourly slices from scratch. The daily sequence is all-or-nothing:
// either the full grouped, sorted sequence replaces the slice or the
// call fails wholesale.
func (a *Aggregator) FetchForecast(ctx context.Context, q Query) (ForecastBundle, error) {
	token := a.begin(&a.forecastToken)

	coords, err := a.resolveCoords(ctx, q)
	if err != nil {
		a.settleForecast(token, nil, asAppError(err))
		return ForecastBundle{}, err
	}

	payload, err := a.client.Forecast(ctx, coords.Lat, coords.Lon)
	if err != nil {
		ae := apperr.New(apperr.KindForecastFailure, "failed to fetch forecast data", err)
		a.settleForecast(token, nil, ae)
		return ForecastBundle{}, ae
	}

	bundle := ForecastBundle{
		Daily:  AggregateDaily(payload.List),
		Hourly: HourlySlice(payload.List),
	}

	a.settleForecast(token, &bundle, nil)
	return bundle, nil
}

// FetchWeatherData runs FetchCurrent and FetchForecast concurrently.
// The two operations are independent: neither cancels the other, and
// each settles its own state slice. Returns the first error observed,
// if any; both slices may still have partially succeeded independently.
func (a *Aggregator) FetchWeatherData(ctx context.Context, q Query) error {
	var (
		wg          sync.WaitGroup
		currentErr  error
		forecastErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, currentErr = a.FetchCurrent(ctx, q)
	}()
	go func() {
		defer wg.Done()
		_, forecastErr = a.FetchForecast(ctx, q)
	}()
	wg.Wait()

	if currentErr != nil {
		return currentErr
	}
	return forecastErr
}

// resolveCoords returns the query's coordinates, geocoding the text
// form when needed.
func (a *Aggregator) resolveCoords(ctx context.Context, q Query) (Coordinates, error) {
	if q.Coords != nil {
		return *q.Coords, nil
	}

	candidates, err := a.client.DirectGeocode(ctx, q.Text, 1)
	if err != nil {
		return Coordinates{}, apperr.New(apperr.KindGeocodeFailure, "failed to geocode location", err)
	}
	if len(candidates) == 0 {
		return Coordinates{}, apperr.Newf(apperr.KindLocationNotFound, "location not found: %s", q.Text)
	}
	return Coordinates{Lat: candidates[0].Lat, Lon: candidates[0].Lon}, nil
}

// begin marks a fetch as in flight: loading turns on and the previous
// error clears optimistically while stale data stays inspectable.
func (a *Aggregator) begin(slot *uuid.UUID) uuid.UUID {
	token := uuid.New()

	a.mu.Lock()
	a.inflight++
	a.lastErr = nil
	*slot = token
	snap := a.snapshotLocked()
	subs := a.subscribersLocked()
	a.mu.Unlock()

	publish(subs, snap)
	return token
}

func (a *Aggregator) settleCurrent(token uuid.UUID, cc *CurrentConditions, ae *apperr.Error) {
	a.mu.Lock()
	a.inflight--
	if a.currentToken != token {
		// A newer fetch owns this slice now.
		snap := a.snapshotLocked()
		subs := a.subscribersLocked()
		a.mu.Unlock()
		log.Printf("weather: dropping superseded current-conditions result")
		publish(subs, snap)
		return
	}
	if ae != nil {
		a.lastErr = ae
	} else {
		a.current = cc
		now := time.Now()
		a.lastUpdated = &now
	}
	snap := a.snapshotLocked()
	subs := a.subscribersLocked()
	a.mu.Unlock()

	publish(subs, snap)
}

func (a *Aggregator) settleForecast(token uuid.UUID, bundle *ForecastBundle, ae *apperr.Error) {
	a.mu.Lock()
	a.inflight--
	if a.forecastToken != token {
		snap := a.snapshotLocked()
		subs := a.subscribersLocked()
		a.mu.Unlock()
		log.Printf("weather: dropping superseded forecast result")
		publish(subs, snap)
		return
	}
	if ae != nil {
		a.lastErr = ae
	} else {
		a.daily = bundle.Daily
		a.hourly = bundle.Hourly
		now := time.Now()
		a.lastUpdated = &now
	}
	snap := a.snapshotLocked()
	subs := a.subscribersLocked()
	a.mu.Unlock()

	publish(subs, snap)
}

func (a *Aggregator) snapshotLocked() Snapshot {
	snap := Snapshot{
		Daily:       append([]DailyForecast(nil), a.daily...),
		Hourly:      append([]HourlyForecast(nil), a.hourly...),
		Loading:     a.inflight > 0,
		Err:         a.lastErr,
		LastUpdated: a.lastUpdated,
	}
	if a.current != nil {
		cc := *a.current
		snap.Current = &cc
	}
	return snap
}

func (a *Aggregator) subscribersLocked() []func(Snapshot) {
	return append(([]func(Snapshot))(nil), a.subscribers...)
}

func publish(subs []func(Snapshot), snap Snapshot) {
	for _, fn := range subs {
		fn(snap)
	}
}

func asAppError(err error) *apperr.Error {
	if ae, ok := err.(*apperr.Error); ok {
		return ae
	}
	return apperr.New(apperr.KindUnknownLocation, "unclassified failure", err)
}
