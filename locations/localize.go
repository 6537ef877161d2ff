package locations

import (
	"sync"
	"time"
)

// TimeZone is the IANA name of the target zone for localization,
// the canonical form of the legacy "Israel" zone.
const TimeZone = "Asia/Jerusalem"

var (
	israelOnce sync.Once
	israelLoc  *time.Location
	israelErr  error
)

// IsraelLocation returns the Asia/Jerusalem location, loaded once.
func IsraelLocation() (*time.Location, error) {
	israelOnce.Do(func() {
		israelLoc, israelErr = time.LoadLocation(TimeZone)
	})
	return israelLoc, israelErr
}

// timeColumns maps localizable column names to their field on Record.
var timeColumns = map[string]func(*Record) *time.Time{
	ColRecordedAtTime:     func(r *Record) *time.Time { return &r.RecordedAtTime },
	ColScheduledStartTime: func(r *Record) *time.Time { return &r.ScheduledStartTime },
}

var knownColumns = func() map[string]bool {
	m := make(map[string]bool, len(Columns))
	for _, c := range Columns {
		m[c] = true
	}
	return m
}()

// Localize converts the named timestamp columns to Israel civil time and
// returns the result as a new table. The instant in time is preserved;
// only the wall-clock representation changes. An empty table is returned
// unchanged, and an empty column list yields an unmodified copy.
func Localize(t *Table, columns []string) (*Table, error) {
	loc, err := IsraelLocation()
	if err != nil {
		return nil, err
	}
	return LocalizeIn(t, columns, loc)
}

// LocalizeIn is Localize with an explicit target zone.
func LocalizeIn(t *Table, columns []string, loc *time.Location) (*Table, error) {
	if t == nil {
		return nil, &InvalidInputError{Msg: "localize: table must not be nil"}
	}
	if t.Empty() || len(columns) == 0 {
		return t.Copy(), nil
	}
	out := t.Copy()
	for _, c := range columns {
		access, ok := timeColumns[c]
		if !ok {
			if knownColumns[c] {
				return nil, &InvalidInputError{Msg: "localize: column " + c + " does not hold timestamps"}
			}
			return nil, &UnknownColumnError{Column: c}
		}
		for i := range out.records {
			ts := access(&out.records[i])
			*ts = ts.In(loc)
		}
	}
	return out, nil
}
