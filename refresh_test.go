package buslocator

import (
	"testing"

	"github.com/open-bus-tools/israel-bus-locator/config"
)

func TestRefreshOncePublishesSnapshot(t *testing.T) {
	ts := strideTestServer(t, nil)
	defer ts.Close()

	cache := NewSnapshotCache()
	r := NewRefresher(testStrideClient(ts), cache, config.AnalysisConfig{
		LineRef:         "7020",
		LookbackMinutes: 60,
		MaxRecords:      100,
		ReferenceLat:    32.0,
		ReferenceLon:    34.0,
	})
	r.RefreshOnce()

	snap, ok := cache.Current()
	if !ok {
		t.Fatal("no snapshot published")
	}
	if snap.Table.Len() != 2 {
		t.Errorf("snapshot has %d rows, want 2", snap.Table.Len())
	}
	if len(snap.Distances) != 2 {
		t.Errorf("snapshot has %d rides, want 2", len(snap.Distances))
	}
	if snap.Reference.Lat != 32.0 || snap.Reference.Lon != 34.0 {
		t.Errorf("snapshot reference = %+v", snap.Reference)
	}
}

func TestRefreshOnceResolvesLineFromRouteMkt(t *testing.T) {
	ts := strideTestServer(t, nil)
	defer ts.Close()

	cache := NewSnapshotCache()
	r := NewRefresher(testStrideClient(ts), cache, config.AnalysisConfig{
		RouteMkt:        "23056",
		RouteDirection:  "1",
		LookbackMinutes: 60,
		MaxRecords:      100,
	})
	r.RefreshOnce()

	if _, ok := cache.Current(); !ok {
		t.Fatal("no snapshot published after route resolution")
	}
}

func TestRefresherStartRequiresALine(t *testing.T) {
	ts := strideTestServer(t, nil)
	defer ts.Close()

	r := NewRefresher(testStrideClient(ts), NewSnapshotCache(), config.AnalysisConfig{})
	if err := r.Start(); err == nil {
		t.Error("expected an error when neither lineRef nor routeMkt is set")
		r.Stop()
	}
}
