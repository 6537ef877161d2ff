package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/open-bus-tools/israel-bus-locator/analysis"
	"github.com/open-bus-tools/israel-bus-locator/locations"
)

func bearing(v float64) *float64 { return &v }

func sampleTable(t *testing.T) *locations.Table {
	t.Helper()
	loc, err := locations.IsraelLocation()
	if err != nil {
		t.Fatalf("load Israel location: %v", err)
	}
	base := time.Date(2024, 2, 21, 10, 0, 0, 0, loc)
	return locations.NewTable(
		locations.Record{
			RideID: "R1", VehicleRef: "V1", StopID: "S1", Lat: 32.1, Lon: 34.8,
			RecordedAtTime: base, Bearing: bearing(45), Velocity: 30,
		},
		locations.Record{
			RideID: "R2", VehicleRef: "V2", StopID: "S2", Lat: 32.3, Lon: 35.0,
			RecordedAtTime: base.Add(10 * time.Minute), Velocity: 40,
		},
	)
}

func TestWriteMap(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMap(&buf, sampleTable(t)); err != nil {
		t.Fatalf("WriteMap: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"Bus Locations Data",
		"10:00:00 - 10:10:00",
		"leaflet",
		"V1",
		"circleMarker",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("map output missing %q", want)
		}
	}
	// Centered on the mean coordinate.
	if !strings.Contains(html, "32.2") {
		t.Error("map output missing the mean latitude")
	}
}

func TestWriteMapEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	err := WriteMap(&buf, locations.NewTable())
	var e *locations.InvalidInputError
	if !errors.As(err, &e) {
		t.Errorf("expected InvalidInputError, got %v", err)
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written on error")
	}
}

func TestWriteMapNilTable(t *testing.T) {
	var buf bytes.Buffer
	err := WriteMap(&buf, nil)
	var e *locations.InvalidInputError
	if !errors.As(err, &e) {
		t.Errorf("expected InvalidInputError, got %v", err)
	}
}

func TestWritePlot(t *testing.T) {
	parts, err := locations.SplitByRide(sampleTable(t))
	if err != nil {
		t.Fatalf("SplitByRide: %v", err)
	}
	series, err := analysis.DistanceSeries(parts, analysis.Point{Lat: 32.0, Lon: 34.0})
	if err != nil {
		t.Fatalf("DistanceSeries: %v", err)
	}

	var buf bytes.Buffer
	if err := WritePlot(&buf, series); err != nil {
		t.Fatalf("WritePlot: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"Distance from Reference Point Over Time - All Rides",
		"Ride R1",
		"Ride R2",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("plot output missing %q", want)
		}
	}
}

func TestWritePlotNoSeries(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePlot(&buf, nil); err != nil {
		t.Fatalf("WritePlot with no series: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("an empty chart should still render")
	}
}
