package analysis

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/open-bus-tools/israel-bus-locator/locations"
)

func TestDistanceSeries(t *testing.T) {
	ref := Point{Lat: 32.0, Lon: 34.0}
	parts, err := locations.SplitByRide(sampleTable(t))
	if err != nil {
		t.Fatalf("SplitByRide: %v", err)
	}

	series, err := DistanceSeries(parts, ref)
	if err != nil {
		t.Fatalf("DistanceSeries: %v", err)
	}
	if len(series) != len(parts) {
		t.Fatalf("expected %d series, got %d", len(parts), len(series))
	}

	for _, s := range series {
		if len(s.Times) != len(s.Distances) {
			t.Fatalf("ride %s: %d times vs %d distances", s.RideID, len(s.Times), len(s.Distances))
		}
		for i := 1; i < len(s.Times); i++ {
			if s.Times[i].Before(s.Times[i-1]) {
				t.Errorf("ride %s: times not ascending at %d", s.RideID, i)
			}
		}
	}

	// Per-row values must match Distance exactly.
	r1 := series[0]
	if r1.RideID != "R1" {
		t.Fatalf("first series ride = %s, want R1", r1.RideID)
	}
	want := []float64{math.Hypot(0.1, 0.8), math.Hypot(0.2, 0.9)}
	for i, w := range want {
		if math.Abs(r1.Distances[i]-w) > 1e-12 {
			t.Errorf("R1 distance[%d] = %v, want %v", i, r1.Distances[i], w)
		}
	}
}

func TestDistanceSeriesSortsUnorderedRows(t *testing.T) {
	loc, _ := locations.IsraelLocation()
	base := time.Date(2024, 2, 21, 10, 0, 0, 0, loc)
	// Rows arrive newest first, the upstream order.
	table := locations.NewTable(
		locations.Record{RideID: "R1", Lat: 32.2, Lon: 34.9, RecordedAtTime: base.Add(5 * time.Minute)},
		locations.Record{RideID: "R1", Lat: 32.1, Lon: 34.8, RecordedAtTime: base},
	)
	parts, _ := locations.SplitByRide(table)

	series, err := DistanceSeries(parts, Point{Lat: 32.0, Lon: 34.0})
	if err != nil {
		t.Fatalf("DistanceSeries: %v", err)
	}
	if !series[0].Times[0].Equal(base) {
		t.Error("series should start at the earliest observation")
	}
	if math.Abs(series[0].Distances[0]-math.Hypot(0.1, 0.8)) > 1e-12 {
		t.Error("distances should follow the sorted row order")
	}
}

func TestDistanceSeriesEmptyPartition(t *testing.T) {
	_, err := DistanceSeries([]*locations.Table{locations.NewTable()}, DefaultReference)
	var e *locations.EmptyPartitionError
	if !errors.As(err, &e) {
		t.Errorf("expected EmptyPartitionError, got %v", err)
	}
}
