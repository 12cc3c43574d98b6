package availability

import "time"

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect. Touching boundaries do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

func clockOverlaps(a, b, c, d int) bool {
	return !(b <= c || a >= d)
}

// Conflicts applies the booking policy to a candidate that already overlaps
// an existing booking in time.
//
// Individual accounts: any overlap conflicts. Company accounts: two bookings
// conflict unless both name an employee and the employees differ. An
// unassigned booking occupies the whole provider.
func Conflicts(company bool, candidateEmployee *uint, existing Booking) bool {
	if !company {
		return true
	}

	if candidateEmployee == nil || existing.EmployeeID == nil {
		return true
	}

	return *candidateEmployee == *existing.EmployeeID
}

// InLunchBreak reports whether a slot starting at slotMinutes falls inside
// the break. Unparseable or empty breaks never match.
func InLunchBreak(b *EmployeeBreak, slotMinutes int) bool {
	if b == nil || b.LunchStart == "" || b.LunchEnd == "" {
		return false
	}

	start, err := ParseClock(b.LunchStart)
	if err != nil {
		return false
	}
	end, err := ParseClock(b.LunchEnd)
	if err != nil {
		return false
	}

	return start <= slotMinutes && slotMinutes < end
}
