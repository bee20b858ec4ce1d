package domain

import (
	"fmt"
	"time"
)

// Weekday is an ordered categorical weekday, Monday-first. All grouping and
// sorting of weekday-keyed aggregates uses the rank of this type, never the
// alphabetical order of the name, so axes always read Monday through Sunday.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday

	// NumWeekdays is the size of the canonical weekday set.
	NumWeekdays = 7
)

// weekdayNames is the canonical ordered name table. Index == rank.
var weekdayNames = [NumWeekdays]string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// Weekdays returns the canonical ordered sequence Monday..Sunday.
func Weekdays() [NumWeekdays]Weekday {
	return [NumWeekdays]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// String returns the English weekday name.
func (d Weekday) String() string {
	if !d.IsValid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// IsValid reports whether d is one of the canonical seven weekdays.
func (d Weekday) IsValid() bool {
	return d >= Monday && d <= Sunday
}

// MarshalText encodes the weekday as its canonical name.
func (d Weekday) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("weekday rank %d outside canonical set", int(d))
	}
	return []byte(weekdayNames[d]), nil
}

// UnmarshalText decodes a canonical weekday name. Names outside the
// canonical seven are rejected, never coerced to a bucket.
func (d *Weekday) UnmarshalText(text []byte) error {
	parsed, err := ParseWeekday(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseWeekday resolves a weekday name to its canonical rank. An unknown
// name is a schema defect in the source data and is surfaced as an error.
func ParseWeekday(name string) (Weekday, error) {
	for rank, canonical := range weekdayNames {
		if name == canonical {
			return Weekday(rank), nil
		}
	}
	return 0, fmt.Errorf("weekday %q outside canonical set %v", name, weekdayNames)
}

// WeekdayOf converts a time.Time weekday (Sunday-first in the standard
// library) to the Monday-first canonical rank.
func WeekdayOf(t time.Time) Weekday {
	// time.Sunday == 0, so shift Sunday to the end of the week.
	return Weekday((int(t.Weekday()) + 6) % 7)
}
