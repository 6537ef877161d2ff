package buslocator

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/open-bus-tools/israel-bus-locator/analysis"
	"github.com/open-bus-tools/israel-bus-locator/config"
	"github.com/open-bus-tools/israel-bus-locator/locations"
	"github.com/open-bus-tools/israel-bus-locator/stride"
)

// Refresher periodically re-fetches the configured line's lookback window
// and publishes the analyzed snapshot to the cache.
type Refresher struct {
	scheduler *gocron.Scheduler
	client    *stride.Client
	cache     *SnapshotCache
	cfg       config.AnalysisConfig
}

// NewRefresher creates a refresher for the configured line.
func NewRefresher(client *stride.Client, cache *SnapshotCache, cfg config.AnalysisConfig) *Refresher {
	return &Refresher{
		scheduler: gocron.NewScheduler(time.UTC),
		client:    client,
		cache:     cache,
		cfg:       cfg,
	}
}

// Start runs one refresh immediately, then schedules the periodic job.
func (r *Refresher) Start() error {
	if r.cfg.LineRef == "" && r.cfg.RouteMkt == "" {
		return errors.New("refresher: no lineRef or routeMkt configured")
	}
	minutes := r.cfg.RefreshIntervalMinutes
	if minutes <= 0 {
		minutes = config.DefaultRefreshMinutes
	}
	r.RefreshOnce()
	if _, err := r.scheduler.Every(minutes).Minutes().Do(r.RefreshOnce); err != nil {
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

// RefreshOnce fetches and analyzes one snapshot. Failures keep the last
// good snapshot in place.
func (r *Refresher) RefreshOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := r.refresh(ctx); err != nil {
		log.Printf("refresh failed: %v", err)
	}
}

func (r *Refresher) refresh(ctx context.Context) error {
	lineRef := r.cfg.LineRef
	if lineRef == "" {
		resolved, err := r.resolveLineRef(ctx)
		if err != nil {
			return err
		}
		lineRef = resolved
	}

	end := time.Now()
	start := end.Add(-time.Duration(r.cfg.LookbackMinutes) * time.Minute)
	table, err := FetchVehicleLocations(ctx, r.client, LocationQuery{
		LineRef: lineRef,
		Start:   start,
		End:     end,
		Limit:   r.cfg.MaxRecords,
	})
	if err != nil {
		return err
	}

	ref := analysis.Point{Lat: r.cfg.ReferenceLat, Lon: r.cfg.ReferenceLon}
	distances, err := analysis.CurrentDistances(table, ref)
	if err != nil {
		return err
	}

	r.cache.Set(&Snapshot{
		Table:     table,
		Distances: distances,
		Reference: ref,
		FetchedAt: time.Now(),
	})
	log.Printf("refresh: line %s, %d records, %d rides", lineRef, table.Len(), len(distances))
	return nil
}

func (r *Refresher) resolveLineRef(ctx context.Context) (string, error) {
	loc, err := locations.IsraelLocation()
	if err != nil {
		return "", err
	}
	today := time.Now().In(loc).Format("2006-01-02")
	routes, err := FetchRoutes(ctx, r.client, RouteQuery{
		RouteMkt:     r.cfg.RouteMkt,
		DateFrom:     today,
		DateTo:       today,
		NameContains: r.cfg.RouteNameFilter,
		Direction:    r.cfg.RouteDirection,
	})
	if err != nil {
		return "", err
	}
	return ResolveLineRef(routes)
}
