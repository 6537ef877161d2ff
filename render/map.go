package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/open-bus-tools/israel-bus-locator/locations"
)

// mapMarker is the per-record payload handed to the Leaflet template.
type mapMarker struct {
	Lat     float64  `json:"lat"`
	Lon     float64  `json:"lon"`
	Popup   string   `json:"popup"`
	Bearing *float64 `json:"bearing"`
}

type mapData struct {
	CenterLat float64
	CenterLon float64
	TimeRange string
	Markers   template.JS
}

// WriteMap renders the table as an interactive Leaflet map: one circle
// marker per record with a details popup and a direction wedge when the
// bearing is known. The map is centered on the mean coordinate, so an
// empty table cannot be rendered.
func WriteMap(w io.Writer, t *locations.Table) error {
	if t == nil {
		return &locations.InvalidInputError{Msg: "map: table must not be nil"}
	}
	if t.Empty() {
		return &locations.InvalidInputError{Msg: "map: cannot render an empty table"}
	}

	records := t.Records()
	var sumLat, sumLon float64
	earliest, latest := records[0].RecordedAtTime, records[0].RecordedAtTime
	markers := make([]mapMarker, 0, len(records))
	for _, r := range records {
		sumLat += r.Lat
		sumLon += r.Lon
		if r.RecordedAtTime.Before(earliest) {
			earliest = r.RecordedAtTime
		}
		if r.RecordedAtTime.After(latest) {
			latest = r.RecordedAtTime
		}
		markers = append(markers, mapMarker{
			Lat: r.Lat,
			Lon: r.Lon,
			Popup: fmt.Sprintf(
				"<b>Bus Details:</b><br>Time: %s<br>Speed: %.1f km/h<br>Vehicle: %s<br>Stop: %s<br>Distance from start: %.1fm",
				r.RecordedAtTime.Format("15:04:05"), r.Velocity, r.VehicleRef, r.StopID, r.DistanceFromJourneyStart,
			),
			Bearing: r.Bearing,
		})
	}
	n := float64(len(records))

	payload, err := json.Marshal(markers)
	if err != nil {
		return err
	}
	data := mapData{
		CenterLat: sumLat / n,
		CenterLon: sumLon / n,
		TimeRange: earliest.Format("15:04:05") + " - " + latest.Format("15:04:05"),
		Markers:   template.JS(payload),
	}
	return mapTemplate.Execute(w, data)
}

var mapTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Bus Locations</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
  html, body, #map { height: 100%; margin: 0; }
  #title {
    position: fixed; top: 10px; left: 50px; width: 300px;
    z-index: 9999; font-size: 14px; background-color: white;
    padding: 10px; border-radius: 5px;
  }
</style>
</head>
<body>
<div id="title"><b>Bus Locations Data</b><br>Time Range: {{.TimeRange}}</div>
<div id="map"></div>
<script>
var map = L.map('map').setView([{{.CenterLat}}, {{.CenterLon}}], 13);
L.tileLayer('https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png', {
  attribution: '&copy; OpenStreetMap &copy; CARTO'
}).addTo(map);
var busLocations = L.featureGroup();
var markers = {{.Markers}};
markers.forEach(function (m) {
  L.circleMarker([m.lat, m.lon], {
    radius: 8, color: 'blue', fillColor: 'blue', fillOpacity: 0.7, weight: 2
  }).bindPopup(m.popup).bindTooltip('Click for details').addTo(busLocations);
  if (m.bearing !== null) {
    L.marker([m.lat, m.lon], {
      icon: L.divIcon({
        className: 'bearing',
        html: '<div style="transform: rotate(' + m.bearing + 'deg); color: red;">&#9650;</div>'
      })
    }).addTo(busLocations);
  }
});
busLocations.addTo(map);
L.control.layers(null, {'Bus Locations': busLocations}).addTo(map);
</script>
</body>
</html>
`))
