package buslocator

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/open-bus-tools/israel-bus-locator/locations"
)

type errorBody struct {
	Call    string `json:"call"`
	Message string `json:"message"`
}

type errorPayload struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, call, msg string) {
	writeJSON(w, status, errorPayload{Error: errorBody{Call: call, Message: msg}})
}

// locationRow serializes a record under the upstream column names.
type locationRow struct {
	RideID                   string    `json:"siri_ride__id"`
	VehicleRef               string    `json:"siri_ride__vehicle_ref"`
	StopID                   string    `json:"siri_ride_stop_id"`
	Lat                      float64   `json:"lat"`
	Lon                      float64   `json:"lon"`
	RecordedAtTime           time.Time `json:"recorded_at_time"`
	ScheduledStartTime       time.Time `json:"siri_ride__scheduled_start_time"`
	Bearing                  *float64  `json:"bearing"`
	Velocity                 float64   `json:"velocity"`
	DistanceFromJourneyStart float64   `json:"distance_from_journey_start"`
}

func locationRows(t *locations.Table) []locationRow {
	records := t.Records()
	rows := make([]locationRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, locationRow{
			RideID:                   r.RideID,
			VehicleRef:               r.VehicleRef,
			StopID:                   r.StopID,
			Lat:                      r.Lat,
			Lon:                      r.Lon,
			RecordedAtTime:           r.RecordedAtTime,
			ScheduledStartTime:       r.ScheduledStartTime,
			Bearing:                  r.Bearing,
			Velocity:                 r.Velocity,
			DistanceFromJourneyStart: r.DistanceFromJourneyStart,
		})
	}
	return rows
}
