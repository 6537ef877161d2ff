package stride

import "time"

// API list endpoints used by this project.
const (
	RoutesPath           = "/gtfs_routes/list"
	VehicleLocationsPath = "/siri_vehicle_locations/list"
)

// Route is one row of /gtfs_routes/list.
type Route struct {
	ID             int64  `json:"id"`
	Date           string `json:"date"`
	LineRef        int64  `json:"line_ref"`
	OperatorRef    int64  `json:"operator_ref"`
	RouteShortName string `json:"route_short_name"`
	RouteLongName  string `json:"route_long_name"`
	RouteMkt       string `json:"route_mkt"`
	RouteDirection string `json:"route_direction"`
	AgencyName     string `json:"agency_name"`
}

// VehicleLocation is one row of /siri_vehicle_locations/list. Bearing is
// nullable upstream.
type VehicleLocation struct {
	ID                         int64     `json:"id"`
	SiriRideID                 int64     `json:"siri_ride__id"`
	SiriRideVehicleRef         string    `json:"siri_ride__vehicle_ref"`
	SiriRideStopID             int64     `json:"siri_ride_stop_id"`
	Lat                        float64   `json:"lat"`
	Lon                        float64   `json:"lon"`
	RecordedAtTime             time.Time `json:"recorded_at_time"`
	SiriRideScheduledStartTime time.Time `json:"siri_ride__scheduled_start_time"`
	Bearing                    *float64  `json:"bearing"`
	Velocity                   float64   `json:"velocity"`
	DistanceFromJourneyStart   float64   `json:"distance_from_journey_start"`
}
