package schedule

// Time-of-day windows are compared as HH:MM:SS strings; lexicographic
// order matches chronological order for the canonical layout.

// Covers reports whether the pattern window fully contains the requested
// window. Touching the bounds counts as covered.
func Covers(patternStart, patternEnd, start, end string) bool {
	return patternStart <= start && patternEnd >= end
}

// Conflicts reports whether two windows overlap, with inclusive bounds on
// both sides: a booking ending exactly at the requested start still
// conflicts, matching the containment semantics of Covers.
func Conflicts(aStart, aEnd, bStart, bEnd string) bool {
	return aStart <= bEnd && aEnd >= bStart
}

// ValidWindow reports whether start and end are parseable times of day
// with start strictly before end.
func ValidWindow(start, end string) bool {
	if _, err := ParseTimeOfDay(start); err != nil {
		return false
	}
	if _, err := ParseTimeOfDay(end); err != nil {
		return false
	}
	return start < end
}
