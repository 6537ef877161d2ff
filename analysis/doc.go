// Package analysis computes per-ride distances from a fixed reference
// point over a table of vehicle locations.
//
// Distances are plain 2-D Euclidean distances in raw coordinate-degree
// units, a flat-plane approximation that holds at the scale of a single
// metropolitan route network. Nothing here is geodesic.
package analysis
