package scheduling

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time without a date or zone attached. Slot lists
// presented for start/end selection are sequences of these values.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a value in "15:04" form.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", value, err)
	}
	return TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}

// String renders the value in "15:04" form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// At anchors the time of day to the date component of reference in loc.
func (t TimeOfDay) At(reference time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(reference.Year(), reference.Month(), reference.Day(), t.Hour, t.Minute, 0, 0, loc)
}

// Before reports whether t is earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	if t.Hour != other.Hour {
		return t.Hour < other.Hour
	}
	return t.Minute < other.Minute
}
