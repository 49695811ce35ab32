package domain

import (
	"math"
	"time"
)

// Stay interval helpers. A booking reserves the half-open range
// [checkIn, checkOut); dashboard day filtering uses inclusive day bounds
// to match the stored query semantics.

// Nights returns the billable night count: ceiling of the whole-day span,
// never less than 1. checkOut must be strictly after checkIn.
func Nights(checkIn, checkOut time.Time) (int, error) {
	if !checkOut.After(checkIn) {
		return 0, Invalidf("check-out %s must be after check-in %s",
			checkOut.Format(time.RFC3339), checkIn.Format(time.RFC3339))
	}
	n := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if n < 1 {
		n = 1
	}
	return n, nil
}

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// CoversInstant reports whether [start,end) covers the given instant.
// A stay starting exactly at the instant covers it; one ending there does not.
func CoversInstant(start, end, instant time.Time) bool {
	if !instant.Before(start) && instant.Before(end) {
		return true
	}
	return start.Before(instant) && end.After(instant)
}

// DayBounds returns the inclusive bounds of the calendar day containing ref,
// in ref's location: [00:00:00, 23:59:59.999999999].
func DayBounds(ref time.Time) (time.Time, time.Time) {
	y, m, d := ref.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, ref.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}

// OverlapsDay reports whether a stay touches the calendar day of ref:
// check-in within the day, or check-out within the day, or the stay
// spanning the whole day.
func OverlapsDay(checkIn, checkOut, ref time.Time) bool {
	start, end := DayBounds(ref)
	if within(checkIn, start, end) || within(checkOut, start, end) {
		return true
	}
	return checkIn.Before(start) && checkOut.After(end)
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
