package analysis

import (
	"sort"
	"time"

	"github.com/open-bus-tools/israel-bus-locator/locations"
)

// Series is one plottable distance-over-time line for a single ride,
// ordered ascending by recorded time.
type Series struct {
	RideID    string
	Times     []time.Time
	Distances []float64
}

// DistanceSeries derives one series per ride partition: rows are stably
// sorted by recorded time and each row's distance to the reference is
// computed with Distance.
func DistanceSeries(partitions []*locations.Table, ref Point) ([]Series, error) {
	out := make([]Series, 0, len(partitions))
	for _, p := range partitions {
		if p.Empty() {
			return nil, &locations.EmptyPartitionError{}
		}
		records := p.Records()
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].RecordedAtTime.Before(records[j].RecordedAtTime)
		})
		s := Series{
			RideID:    records[0].RideID,
			Times:     make([]time.Time, 0, len(records)),
			Distances: make([]float64, 0, len(records)),
		}
		for _, r := range records {
			d, err := Distance(r.Lat, r.Lon, ref)
			if err != nil {
				return nil, err
			}
			s.Times = append(s.Times, r.RecordedAtTime)
			s.Distances = append(s.Distances, d)
		}
		out = append(out, s)
	}
	return out, nil
}
