package analysis

import (
	"math"
	"time"

	"github.com/open-bus-tools/israel-bus-locator/locations"
)

// Point is an immutable (lat, lon) pair in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DefaultReference is the Reading terminal in Tel Aviv, the origin used
// for distance computations when the caller does not supply one.
var DefaultReference = Point{Lat: 32.090260, Lon: 34.782621}

// Distance returns the planar Euclidean distance between (lat, lon) and
// the reference, in raw degree units:
//
//	sqrt((lat-ref.Lat)^2 + (lon-ref.Lon)^2)
//
// This is a deliberate non-geodesic simplification. It fails only when a
// coordinate is NaN or infinite.
func Distance(lat, lon float64, ref Point) (float64, error) {
	for _, v := range [...]float64{lat, lon, ref.Lat, ref.Lon} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, &locations.InvalidInputError{Msg: "distance: coordinates must be finite numbers"}
		}
	}
	return math.Hypot(lat-ref.Lat, lon-ref.Lon), nil
}

// Summary describes the most recent observation of one ride: its distance
// to the reference point, when it was recorded, and where the vehicle was.
type Summary struct {
	RideID          string    `json:"-"`
	CurrentDistance float64   `json:"current_distance"`
	LastUpdate      time.Time `json:"last_update"`
	VehicleRef      string    `json:"vehicle_ref"`
	Lat             float64   `json:"lat"`
	Lon             float64   `json:"lon"`
}

// CurrentDistances returns, per ride present in the table, the distance of
// the ride's most recent record to the reference point. The result holds
// exactly one entry per distinct ride id. When several rows share the
// maximal timestamp the last one in partition order wins.
func CurrentDistances(t *locations.Table, ref Point) (map[string]Summary, error) {
	parts, err := locations.SplitByRide(t)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Summary, len(parts))
	for _, p := range parts {
		latest, err := latestRecord(p)
		if err != nil {
			return nil, err
		}
		d, err := Distance(latest.Lat, latest.Lon, ref)
		if err != nil {
			return nil, err
		}
		out[latest.RideID] = Summary{
			RideID:          latest.RideID,
			CurrentDistance: d,
			LastUpdate:      latest.RecordedAtTime,
			VehicleRef:      latest.VehicleRef,
			Lat:             latest.Lat,
			Lon:             latest.Lon,
		}
	}
	return out, nil
}

// latestRecord picks the row with the maximal recorded time, breaking ties
// toward the last occurrence.
func latestRecord(p *locations.Table) (locations.Record, error) {
	if p.Empty() {
		return locations.Record{}, &locations.EmptyPartitionError{}
	}
	records := p.Records()
	latest := records[0]
	for _, r := range records[1:] {
		if !r.RecordedAtTime.Before(latest.RecordedAtTime) {
			latest = r
		}
	}
	return latest, nil
}
