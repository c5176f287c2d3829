package text

import (
	"regexp"
	"strconv"
	"time"
)

var dateRe = regexp.MustCompile(`(\d{4})[ \-/.]?(\d{2})[ \-/.]?(\d{2})`)

// ParseDate searches text for the first year/month/day triple joined by
// any of space, '-', '/', '.' or nothing (e.g. "19800617", "2008/02/04").
// Invalid calendar triples are rejected outright; there is no partial or
// corrected result. Produced dates are midnight in the local zone.
func ParseDate(s string) (time.Time, bool) {
	m := dateRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	// time.Date normalizes out-of-range components, so a round-trip
	// mismatch means the triple was not a real calendar date.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
