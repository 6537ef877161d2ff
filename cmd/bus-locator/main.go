package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	lib "github.com/open-bus-tools/israel-bus-locator"
	"github.com/open-bus-tools/israel-bus-locator/analysis"
	"github.com/open-bus-tools/israel-bus-locator/config"
	"github.com/open-bus-tools/israel-bus-locator/locations"
	"github.com/open-bus-tools/israel-bus-locator/render"
	"github.com/open-bus-tools/israel-bus-locator/stride"
)

func main() {
	mode := flag.String("mode", "oneshot", "oneshot|serve|map|plot")
	configPath := flag.String("config", "", "path to config.yml (optional)")
	lineRef := flag.String("lineRef", "", "SIRI line ref (overrides config)")
	routeMkt := flag.String("routeMkt", "", "GTFS route_mkt used to resolve the line ref")
	filterName := flag.String("filterName", "", "substring filter on route_long_name")
	direction := flag.String("direction", "", "route_direction filter (0|1|2)")
	dateFrom := flag.String("dateFrom", "", "route date window start, YYYY-MM-DD (default today)")
	dateTo := flag.String("dateTo", "", "route date window end, YYYY-MM-DD (default today)")
	start := flag.String("start", "", "scheduled start window begin, RFC3339 (default lookback window)")
	end := flag.String("end", "", "scheduled start window end, RFC3339 (default now)")
	limit := flag.Int("limit", 0, "max records to fetch (0 = config default)")
	refLat := flag.Float64("refLat", 0, "reference latitude (overrides config)")
	refLon := flag.Float64("refLon", 0, "reference longitude (overrides config)")
	out := flag.String("out", "", "output file for map/plot modes (default stdout)")
	flag.Parse()

	lib.InitLogging()
	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	applyFlags(cfg, *lineRef, *routeMkt, *filterName, *direction, *refLat, *refLon)

	client := stride.NewClient(stride.Options{
		BaseURL:      cfg.Stride.BaseURL,
		Timeout:      time.Duration(cfg.Stride.TimeoutMS) * time.Millisecond,
		PageSize:     cfg.Stride.PageSize,
		MaxRetries:   cfg.Stride.MaxRetries,
		RetryInitial: time.Duration(cfg.Stride.RetryInitialMS) * time.Millisecond,
		RetryMax:     time.Duration(cfg.Stride.RetryMaxMS) * time.Millisecond,
	})

	switch *mode {
	case "serve":
		cache := lib.NewSnapshotCache()
		refresher := lib.NewRefresher(client, cache, cfg.Analysis)
		if err := refresher.Start(); err != nil {
			log.Fatalf("refresher: %v", err)
		}
		defer refresher.Stop()
		server := lib.NewServer(cfg, cache)
		server.Start()
		server.HandleGracefulShutdown()
	case "oneshot", "map", "plot":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		table, ref, err := fetchTable(ctx, client, cfg, *dateFrom, *dateTo, *start, *end, *limit)
		if err != nil {
			log.Fatalf("fetch: %v", err)
		}
		if err := emit(*mode, *out, table, ref); err != nil {
			log.Fatalf("%s: %v", *mode, err)
		}
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func loadConfig(path string) (*config.AppConfig, error) {
	cfg, err := config.LoadAppConfig(path)
	if err == nil {
		return cfg, nil
	}
	if path == "" && os.IsNotExist(err) {
		return config.DefaultAppConfig(), nil
	}
	return nil, err
}

func applyFlags(cfg *config.AppConfig, lineRef, routeMkt, filterName, direction string, refLat, refLon float64) {
	if lineRef != "" {
		cfg.Analysis.LineRef = lineRef
	}
	if routeMkt != "" {
		cfg.Analysis.RouteMkt = routeMkt
	}
	if filterName != "" {
		cfg.Analysis.RouteNameFilter = filterName
	}
	if direction != "" {
		cfg.Analysis.RouteDirection = direction
	}
	if refLat != 0 || refLon != 0 {
		cfg.Analysis.ReferenceLat = refLat
		cfg.Analysis.ReferenceLon = refLon
	}
}

// fetchTable resolves the line ref when needed and fetches its vehicle
// locations for the requested window.
func fetchTable(ctx context.Context, client *stride.Client, cfg *config.AppConfig, dateFrom, dateTo, start, end string, limit int) (*locations.Table, analysis.Point, error) {
	ref := analysis.Point{Lat: cfg.Analysis.ReferenceLat, Lon: cfg.Analysis.ReferenceLon}

	loc, err := locations.IsraelLocation()
	if err != nil {
		return nil, ref, err
	}
	today := time.Now().In(loc).Format("2006-01-02")
	if dateFrom == "" {
		dateFrom = today
	}
	if dateTo == "" {
		dateTo = today
	}

	line := cfg.Analysis.LineRef
	if line == "" {
		if cfg.Analysis.RouteMkt == "" {
			return nil, ref, fmt.Errorf("either -lineRef or -routeMkt is required")
		}
		routes, err := lib.FetchRoutes(ctx, client, lib.RouteQuery{
			RouteMkt:     cfg.Analysis.RouteMkt,
			DateFrom:     dateFrom,
			DateTo:       dateTo,
			NameContains: cfg.Analysis.RouteNameFilter,
			Direction:    cfg.Analysis.RouteDirection,
		})
		if err != nil {
			return nil, ref, err
		}
		line, err = lib.ResolveLineRef(routes)
		if err != nil {
			return nil, ref, err
		}
		log.Printf("resolved route_mkt %s to line ref %s", cfg.Analysis.RouteMkt, line)
	}

	endTime := time.Now().In(loc)
	if end != "" {
		endTime, err = time.Parse(time.RFC3339, end)
		if err != nil {
			return nil, ref, fmt.Errorf("invalid -end: %w", err)
		}
	}
	startTime := endTime.Add(-time.Duration(cfg.Analysis.LookbackMinutes) * time.Minute)
	if start != "" {
		startTime, err = time.Parse(time.RFC3339, start)
		if err != nil {
			return nil, ref, fmt.Errorf("invalid -start: %w", err)
		}
	}
	if limit <= 0 {
		limit = cfg.Analysis.MaxRecords
	}

	table, err := lib.FetchVehicleLocations(ctx, client, lib.LocationQuery{
		LineRef: line,
		Start:   startTime,
		End:     endTime,
		Limit:   limit,
	})
	return table, ref, err
}

func emit(mode, out string, table *locations.Table, ref analysis.Point) error {
	w := os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	switch mode {
	case "oneshot":
		distances, err := analysis.CurrentDistances(table, ref)
		if err != nil {
			return err
		}
		printReport(w, distances)
		return nil
	case "map":
		return render.WriteMap(w, table)
	case "plot":
		parts, err := locations.SplitByRide(table)
		if err != nil {
			return err
		}
		series, err := analysis.DistanceSeries(parts, ref)
		if err != nil {
			return err
		}
		return render.WritePlot(w, series)
	}
	return fmt.Errorf("unknown mode %q", mode)
}

func printReport(w *os.File, distances map[string]analysis.Summary) {
	ids := make([]string, 0, len(distances))
	for id := range distances {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintf(w, "Current distances to reference point for %d rides:\n", len(ids))
	for _, id := range ids {
		info := distances[id]
		fmt.Fprintf(w, "\nRide %s:\n", id)
		fmt.Fprintf(w, "  Distance: %.4f\n", info.CurrentDistance)
		fmt.Fprintf(w, "  Last Update: %s\n", info.LastUpdate.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(w, "  Vehicle: %s\n", info.VehicleRef)
		fmt.Fprintf(w, "  Location: (%.6f, %.6f)\n", info.Lat, info.Lon)
	}
}
