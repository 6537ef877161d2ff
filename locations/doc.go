// Package locations holds the in-memory vehicle-location table and the
// transformations over it: timestamp localization and per-ride splitting.
//
// Tables are value snapshots. Every transformation returns a new table and
// leaves its input untouched; sub-tables produced by SplitByRide are
// independent copies of their rows.
package locations
