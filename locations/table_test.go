package locations

import (
	"testing"
	"time"
)

func bearing(v float64) *float64 { return &v }

// sampleTable mirrors a short stretch of line 56: two rides, three
// observations five minutes apart.
func sampleTable(t *testing.T) *Table {
	t.Helper()
	loc, err := IsraelLocation()
	if err != nil {
		t.Fatalf("load Israel location: %v", err)
	}
	base := time.Date(2024, 2, 21, 10, 0, 0, 0, loc)
	return NewTable(
		Record{
			RideID: "R1", VehicleRef: "V1", StopID: "S1",
			Lat: 32.1, Lon: 34.8,
			RecordedAtTime: base, ScheduledStartTime: base.Add(-time.Hour),
			Bearing: bearing(45), Velocity: 30, DistanceFromJourneyStart: 0,
		},
		Record{
			RideID: "R1", VehicleRef: "V1", StopID: "S2",
			Lat: 32.2, Lon: 34.9,
			RecordedAtTime: base.Add(5 * time.Minute), ScheduledStartTime: base.Add(-time.Hour),
			Bearing: bearing(90), Velocity: 35, DistanceFromJourneyStart: 100,
		},
		Record{
			RideID: "R2", VehicleRef: "V2", StopID: "S3",
			Lat: 32.3, Lon: 35.0,
			RecordedAtTime: base.Add(10 * time.Minute), ScheduledStartTime: base,
			Bearing: bearing(135), Velocity: 40, DistanceFromJourneyStart: 200,
		},
	)
}

func TestNewTableCopiesInput(t *testing.T) {
	b := bearing(10)
	records := []Record{{RideID: "R1", Bearing: b}}
	table := NewTable(records...)

	*b = 99
	records[0].RideID = "changed"

	got := table.At(0)
	if got.RideID != "R1" {
		t.Errorf("RideID mutated through caller slice: got %s", got.RideID)
	}
	if *got.Bearing != 10 {
		t.Errorf("Bearing mutated through caller pointer: got %v", *got.Bearing)
	}
}

func TestTableCopyIsIndependent(t *testing.T) {
	src := sampleTable(t)
	cp := src.Copy()

	r := cp.At(0)
	*r.Bearing = 999

	if *src.At(0).Bearing == 999 {
		t.Error("mutating a copied record leaked into the source table")
	}
	if cp.Len() != src.Len() {
		t.Errorf("copy has %d rows, source has %d", cp.Len(), src.Len())
	}
}

func TestTableLen(t *testing.T) {
	var nilTable *Table
	if got := nilTable.Len(); got != 0 {
		t.Errorf("nil table Len() = %d, want 0", got)
	}
	if got := NewTable().Len(); got != 0 {
		t.Errorf("empty table Len() = %d, want 0", got)
	}
	if got := sampleTable(t).Len(); got != 3 {
		t.Errorf("sample table Len() = %d, want 3", got)
	}
	if !NewTable().Empty() {
		t.Error("empty table should report Empty()")
	}
}
