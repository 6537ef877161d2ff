package buslocator

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/open-bus-tools/israel-bus-locator/analysis"
)

type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

// parseReference reads optional refLat/refLon overrides from the request
// query. The two must be given together; absent both, def is returned.
func parseReference(q url.Values, def analysis.Point) (analysis.Point, error) {
	latStr := strings.TrimSpace(q.Get("refLat"))
	lonStr := strings.TrimSpace(q.Get("refLon"))
	if latStr == "" && lonStr == "" {
		return def, nil
	}
	if latStr == "" || lonStr == "" {
		return analysis.Point{}, &QueryError{Msg: "refLat and refLon must be provided together."}
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return analysis.Point{}, &QueryError{Msg: "refLat must be a decimal degree value."}
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return analysis.Point{}, &QueryError{Msg: "refLon must be a decimal degree value."}
	}
	return analysis.Point{Lat: lat, Lon: lon}, nil
}
