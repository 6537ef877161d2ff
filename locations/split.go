package locations

// SplitByRide partitions the table into one sub-table per distinct ride,
// in first-appearance order of the ride id. Every row lands in exactly one
// partition and each partition is an independent copy of its rows.
func SplitByRide(t *Table) ([]*Table, error) {
	if t == nil {
		return nil, &InvalidInputError{Msg: "split: table must not be nil"}
	}
	var order []string
	groups := map[string][]Record{}
	for _, r := range t.records {
		if _, seen := groups[r.RideID]; !seen {
			order = append(order, r.RideID)
		}
		groups[r.RideID] = append(groups[r.RideID], r)
	}
	out := make([]*Table, 0, len(order))
	for _, id := range order {
		out = append(out, NewTable(groups[id]...))
	}
	return out, nil
}
