// Package stride is a client for the Open Bus Stride REST API
// (https://open-bus-stride-api.hasadna.org.il), the public source of
// Israeli SIRI vehicle-location and GTFS route data.
//
// List endpoints page with limit/offset; Iterate follows pages until the
// server returns a short page or the caller's record cap is reached.
// Requests retry with exponential backoff behind a circuit breaker.
package stride
