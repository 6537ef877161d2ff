package locations

import "time"

// Column names as they appear in the Stride API tables.
const (
	ColRideID                   = "siri_ride__id"
	ColVehicleRef               = "siri_ride__vehicle_ref"
	ColStopID                   = "siri_ride_stop_id"
	ColLat                      = "lat"
	ColLon                      = "lon"
	ColRecordedAtTime           = "recorded_at_time"
	ColScheduledStartTime       = "siri_ride__scheduled_start_time"
	ColBearing                  = "bearing"
	ColVelocity                 = "velocity"
	ColDistanceFromJourneyStart = "distance_from_journey_start"
)

// Columns lists the table schema in upstream order.
var Columns = []string{
	ColRideID,
	ColVehicleRef,
	ColStopID,
	ColLat,
	ColLon,
	ColRecordedAtTime,
	ColScheduledStartTime,
	ColBearing,
	ColVelocity,
	ColDistanceFromJourneyStart,
}

// Record is one observed vehicle position. RideID groups records into a
// ride and is never empty for records produced by the fetch layer.
type Record struct {
	RideID                   string
	VehicleRef               string
	StopID                   string
	Lat                      float64
	Lon                      float64
	RecordedAtTime           time.Time
	ScheduledStartTime       time.Time
	Bearing                  *float64
	Velocity                 float64
	DistanceFromJourneyStart float64
}

// clone returns a deep copy of the record. Bearing is the only pointer
// field and must not be shared between tables.
func (r Record) clone() Record {
	out := r
	if r.Bearing != nil {
		b := *r.Bearing
		out.Bearing = &b
	}
	return out
}

// Table is an ordered collection of location records.
type Table struct {
	records []Record
}

// NewTable builds a table from the given records. The records are copied;
// the caller's slice stays independent.
func NewTable(records ...Record) *Table {
	return &Table{records: cloneRecords(records)}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool { return t.Len() == 0 }

// At returns the record at row i.
func (t *Table) At(i int) Record { return t.records[i].clone() }

// Records returns a copy of all rows in table order.
func (t *Table) Records() []Record { return cloneRecords(t.records) }

// Copy returns an independent copy of the table.
func (t *Table) Copy() *Table {
	if t == nil {
		return nil
	}
	return &Table{records: cloneRecords(t.records)}
}

func cloneRecords(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.clone()
	}
	return out
}
