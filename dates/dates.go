// Package dates parses the loosely formatted date and time strings produced
// by the discovery service into canonical values. Parsing never panics or
// returns an error: a string that can't be understood yields ok=false and the
// caller supplies a default.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const (
	// DateLayout is the canonical calendar form, day first: "05-03-2025".
	DateLayout = "02-01-2006"
	// ClockLayout is the canonical 12-hour clock form: "06:00 PM".
	ClockLayout = "03:04 PM"
)

// sentinels are strings the discovery service emits when it has no value.
// They parse to nothing rather than to a bogus date.
var sentinels = map[string]bool{
	"n/a":           true,
	"na":            true,
	"none":          true,
	"not available": true,
	"not specified": true,
	"unknown":       true,
	"tbd":           true,
}

var (
	// "12 March", "12th of March 2025"
	dayMonthRe = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?([A-Za-z]{3,})\.?(?:\s+(\d{4}))?`)
	// "March 12", "March 12, 2025"
	monthDayRe = regexp.MustCompile(`\b([A-Za-z]{3,})\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?`)
	// "12-03-2025", "12/3/25" embedded in text
	numericRe = regexp.MustCompile(`\b(\d{1,2})[-/.](\d{1,2})[-/.](\d{2,4})\b`)
	// a bare numeric date and nothing else
	fullNumericRe = regexp.MustCompile(`^(\d{1,2})[-/.](\d{1,2})[-/.](\d{2,4})$`)
	// "6:30 PM", "18:00", "6pm" embedded in text
	clockRe = regexp.MustCompile(`\b(\d{1,2})(?::(\d{2}))?\s*([AaPp])\.?[Mm]\.?\b|\b(\d{1,2}):(\d{2})\b`)
)

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

func isSentinel(s string) bool {
	return s == "" || sentinels[strings.ToLower(s)]
}

// ParseDate parses a free-text date string into a calendar date (midnight
// UTC). The first numeric token of an ambiguous date is treated as the day of
// the month, not the month. Dates embedded in prose ("concert on the evening
// of 12 March 2025") are found by token extraction. Sentinel non-values
// ("N/A", "none") and unparseable strings return ok=false.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if isSentinel(s) {
		return time.Time{}, false
	}

	// Fully numeric dates are day-first by contract; decide them here so
	// no library heuristic can flip the day and month.
	if m := fullNumericRe.FindStringSubmatch(s); m != nil {
		return numericDate(m)
	}

	if t, err := dateparse.ParseAny(s, dateparse.PreferMonthFirst(false)); err == nil {
		return toDate(t), true
	}

	if t, ok := extractDate(s); ok {
		return t, true
	}

	return time.Time{}, false
}

// numericDate builds a date from a numeric regexp match, day-first. A pair
// that only works month-first ("03-14-2025") is accepted swapped rather than
// rejected.
func numericDate(m []string) (time.Time, bool) {
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if year < 100 {
		year += 2000
	}
	if month > 12 && day <= 12 {
		day, month = month, day
	}
	return makeDate(year, time.Month(month), day)
}

// extractDate hunts for a date-shaped token inside prose.
func extractDate(s string) (time.Time, bool) {
	if m := numericRe.FindStringSubmatch(s); m != nil {
		return numericDate(m)
	}

	for _, m := range dayMonthRe.FindAllStringSubmatch(s, -1) {
		if month, ok := monthByName(m[2]); ok {
			day, _ := strconv.Atoi(m[1])
			if t, ok := makeDate(yearOrCurrent(m[3]), month, day); ok {
				return t, true
			}
		}
	}

	for _, m := range monthDayRe.FindAllStringSubmatch(s, -1) {
		if month, ok := monthByName(m[1]); ok {
			day, _ := strconv.Atoi(m[2])
			if t, ok := makeDate(yearOrCurrent(m[3]), month, day); ok {
				return t, true
			}
		}
	}

	return time.Time{}, false
}

func monthByName(name string) (time.Month, bool) {
	name = strings.ToLower(name)
	if len(name) > 3 {
		name = name[:3]
	}
	m, ok := months[name]
	return m, ok
}

func yearOrCurrent(s string) int {
	if y, err := strconv.Atoi(s); err == nil && y > 0 {
		return y
	}
	return time.Now().UTC().Year()
}

func makeDate(year int, month time.Month, day int) (time.Time, bool) {
	if day < 1 || day > 31 || month < time.January || month > time.December {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range days (Feb 30 -> Mar 2); treat that
	// as a parse failure rather than silently shifting the date.
	if t.Day() != day || t.Month() != month {
		return time.Time{}, false
	}
	return t, true
}

// ParseClock parses a free-text time string into a clock time (on the zero
// date). Accepts 12-hour forms with AM/PM and 24-hour forms, embedded in
// prose or standalone. Returns ok=false for sentinels and unparseable input.
func ParseClock(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if isSentinel(s) {
		return time.Time{}, false
	}

	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	var hour, min int
	if m[1] != "" { // AM/PM form
		hour, _ = strconv.Atoi(m[1])
		if m[2] != "" {
			min, _ = strconv.Atoi(m[2])
		}
		if hour < 1 || hour > 12 || min > 59 {
			return time.Time{}, false
		}
		hour = hour % 12
		if strings.EqualFold(m[3], "p") {
			hour += 12
		}
	} else { // 24-hour form
		hour, _ = strconv.Atoi(m[4])
		min, _ = strconv.Atoi(m[5])
		if hour > 23 || min > 59 {
			return time.Time{}, false
		}
	}

	return time.Date(1, time.January, 1, hour, min, 0, 0, time.UTC), true
}

// FormatDate renders a calendar date in the canonical DD-MM-YYYY form.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatClock renders a clock time in the canonical 12-hour form.
func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

func toDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Range is an inclusive calendar date span.
type Range struct {
	Start time.Time
	End   time.Time
}

// ParseRange parses a DD-MM-YYYY pair into a Range.
func ParseRange(start, end string) (Range, bool) {
	s, ok := ParseDate(start)
	if !ok {
		return Range{}, false
	}
	e, ok := ParseDate(end)
	if !ok {
		return Range{}, false
	}
	return Range{Start: s, End: e}, true
}

// Overlap reports whether two inclusive date ranges intersect. Touching
// endpoints count as overlap, and single-day ranges (Start == End) need no
// special casing. It is symmetric in its arguments: the validator calls it
// with (event span, search window) and the store calls it with
// (stored span, query window), same function both times.
func Overlap(a, b Range) bool {
	return !(a.End.Before(b.Start) || a.Start.After(b.End))
}
