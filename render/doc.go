// Package render turns location tables and distance series into HTML
// artifacts: a Leaflet map of observed positions and an echarts line
// chart of distance from the reference point over time.
//
// Rendering is presentation only; all values shown are computed by the
// locations and analysis packages.
package render
