package locations

// InvalidInputError reports a value that cannot serve as input to a table
// transformation: a nil table, a non-timestamp column passed to the
// localizer, or a non-finite coordinate.
type InvalidInputError struct{ Msg string }

func (e *InvalidInputError) Error() string { return e.Msg }

// UnknownColumnError reports a column name that does not exist in the
// table schema.
type UnknownColumnError struct{ Column string }

func (e *UnknownColumnError) Error() string { return "unknown column: " + e.Column }

// EmptyPartitionError reports a ride partition with no rows. Partitions
// produced by SplitByRide are never empty; seeing this error means the
// upstream data was corrupted.
type EmptyPartitionError struct{ RideID string }

func (e *EmptyPartitionError) Error() string {
	if e.RideID == "" {
		return "empty ride partition"
	}
	return "empty partition for ride " + e.RideID
}
