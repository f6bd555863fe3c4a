package scheduling

import (
	"fmt"
	"time"
)

// BusinessHours describes the bookable window of a business day, expressed in
// a single reference timezone, together with the slot granularity offered to
// callers.
type BusinessHours struct {
	Zone         string
	Opens        TimeOfDay
	Closes       TimeOfDay
	SlotInterval time.Duration
}

// DefaultBusinessHours is the company-wide booking window: 08:00 through
/// 22:00 Eastern, offered in quarter-hour steps.
var DefaultBusinessHours = BusinessHours{
	Zone:         "America/New_York",
	Opens:        TimeOfDay{Hour: 8},
	Closes:       TimeOfDay{Hour: 22},
	SlotInterval: 15 * time.Minute,
}

// Slots produces the ordered sequence of bookable time-of-day values for the
// date of reference, converted into the viewer's local zone. Both the opening
// and closing boundaries are included. The walk emits values in stepping
// order; when the converted window crosses midnight the wall-clock values wrap
// rather than being re-sorted, matching the behaviour callers already rely on
// for slot pickers.
func (h BusinessHours) Slots(reference time.Time, local *time.Location) ([]TimeOfDay, error) {
	source, err := time.LoadLocation(h.Zone)
	if err != nil {
		return nil, fmt.Errorf("load business zone %q: %w", h.Zone, err)
	}
	if local == nil {
		local = time.Local
	}

	interval := h.SlotInterval
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	opens := h.Opens.At(reference, source).In(local)
	closes := h.Closes.At(reference, source).In(local)

	// The closing boundary is itself bookable, hence the extra second on the
	// loop bound.
	limit := closes.Add(time.Second)

	var slots []TimeOfDay
	for at := opens; at.Before(limit); at = at.Add(interval) {
		slots = append(slots, TimeOfDay{Hour: at.Hour(), Minute: at.Minute()})
	}
	return slots, nil
}
