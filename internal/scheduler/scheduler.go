// Package scheduler keeps the current location's weather fresh by
// periodically re-running the combined fetch, so lastUpdated advances
// without user interaction.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/skydash/weather-dashboard/internal/location"
	"github.com/skydash/weather-dashboard/internal/weather"
)

// fetchTimeout bounds one refresh cycle's outbound calls.
const fetchTimeout = 30 * time.Second

// Refresher periodically refreshes weather data for whatever place is
// currently selected. When no location has been selected yet, a cycle
// is a no-op.
type Refresher struct {
	scheduler  *gocron.Scheduler
	resolver   *location.Resolver
	aggregator *weather.Aggregator
	interval   time.Duration
}

// New creates a Refresher. A non-positive interval disables it.
func New(resolver *location.Resolver, aggregator *weather.Aggregator, interval time.Duration) *Refresher {
	s := gocron.NewScheduler(time.UTC)
	return &Refresher{
		scheduler:  s,
		resolver:   resolver,
		aggregator: aggregator,
		interval:   interval,
	}
}

// Start schedules the periodic refresh job and starts the underlying
// scheduler.
func (r *Refresher) Start() error {
	if r.interval <= 0 {
		log.Println("refresher: disabled; no interval configured")
		return nil
	}

	_, err := r.scheduler.Every(r.interval).Do(func() {
		place := r.resolver.Current()
		if place == nil {
			return
		}

		log.Printf("refresher: refreshing weather for %s", place.Name)

		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		if err := r.aggregator.FetchWeatherData(ctx, weather.CoordQuery(place.Lat, place.Lon)); err != nil {
			log.Printf("refresher: refresh failed for %s: %v", place.Name, err)
		}
	})
	if err != nil {
		return err
	}

	r.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (r *Refresher) Stop() {
	if r.scheduler != nil {
		r.scheduler.Stop()
	}
}
