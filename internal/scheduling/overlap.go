package scheduling

import "time"

// Interval is a half-open-in-spirit appointment time range. Validation
// guarantees End never precedes Start before an interval is persisted.
type Interval struct {
	Start time.Time
	End   time.Time
}

// BookedInterval pairs an interval with the identifier of the appointment
// occupying it.
type BookedInterval struct {
	AppointmentID string
	Interval      Interval
}

// ConflictsWith reports whether the candidate interval conflicts with other.
//
// The five branches are a deliberate enumeration, checked in order, and each
// is sufficient on its own. Exact boundary coincidence (equal starts or equal
// ends) counts as a conflict, so back-to-back intervals sharing only a
// start/end boundary with the other interval's opposite boundary do not.
// Collapsing the branches into the textbook overlap test changes the
// boundary-coincidence outcomes and must not be done silently.
func ConflictsWith(candidate, other Interval) bool {
	if candidate.Start.Equal(other.Start) || candidate.End.Equal(other.End) {
		return true
	}
	if candidate.Start.Before(other.Start) && candidate.End.After(other.Start) {
		return true
	}
	if candidate.Start.After(other.Start) && candidate.Start.Before(other.End) {
		return true
	}
	if candidate.Start.Before(other.Start) && candidate.End.After(other.End) {
		return true
	}
	if candidate.Start.After(other.Start) && candidate.End.Before(other.End) {
		return true
	}
	return false
}

// FindConflict scans existing bookings for the first interval conflicting with
// the candidate. The booking whose id equals excludeID is skipped so an
// appointment being modified is never compared with itself; pass an empty
// excludeID for new appointments. The scan short-circuits at the first hit.
func FindConflict(candidate Interval, excludeID string, existing []BookedInterval) (string, bool) {
	for _, booked := range existing {
		if booked.AppointmentID == excludeID && excludeID != "" {
			continue
		}
		if ConflictsWith(candidate, booked.Interval) {
			return booked.AppointmentID, true
		}
	}
	return "", false
}
