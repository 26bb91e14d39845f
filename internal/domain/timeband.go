package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// TimeBand is a wall-clock interval of the day, in minutes after midnight.
// A minute belongs to the band when after > start and <= end. The minute a
// band starts on is therefore counted in the previous band.
type TimeBand struct {
	Label string
	Start int
	End   int

	// IncludesMidnight also claims 00:00, which no half-open range covers.
	IncludesMidnight bool
}

// Contains reports whether the minute of day falls in the band.
func (b TimeBand) Contains(minute int) bool {
	if minute == 0 {
		return b.IncludesMidnight
	}
	return minute > b.Start && minute <= b.End
}

// timeBands partition the day into eight three-hour bands. Order is the order
// bands are presented in.
var timeBands = []TimeBand{
	{Label: "12:01am-3am", Start: 0, End: 3 * 60},
	{Label: "3:01am-6am", Start: 3 * 60, End: 6 * 60},
	{Label: "6:01am-9am", Start: 6 * 60, End: 9 * 60},
	{Label: "9:01am-12noon", Start: 9 * 60, End: 12 * 60},
	{Label: "12:01pm-3pm", Start: 12 * 60, End: 15 * 60},
	{Label: "3:01pm-6pm", Start: 15 * 60, End: 18 * 60},
	{Label: "6:01pm-9pm", Start: 18 * 60, End: 21 * 60},
	{Label: "9:01pm-12midnight", Start: 21 * 60, End: minutesPerDay, IncludesMidnight: true},
}

// TimeBands returns a copy of the band table.
func TimeBands() []TimeBand {
	return append([]TimeBand(nil), timeBands...)
}

// BandFor returns the label of the band holding the given wall-clock time.
func BandFor(hour, minute int) (string, bool) {
	m := hour*60 + minute
	if hour < 0 || minute < 0 || minute > 59 || m >= minutesPerDay {
		return "", false
	}
	for _, b := range timeBands {
		if b.Contains(m) {
			return b.Label, true
		}
	}
	return "", false
}

// newBandCounts returns a zeroed count for every band.
func newBandCounts() map[string]int {
	counts := make(map[string]int, len(timeBands))
	for _, b := range timeBands {
		counts[b.Label] = 0
	}
	return counts
}

// ParseOccurredAt reads an incident timestamp such as "03/14/16 09:30 PM" and
// returns its wall-clock hour (0-23) and minute. The date fields are checked
// for shape and range but otherwise unused.
func ParseOccurredAt(s string) (hour, minute int, err error) {
	date, clockPart, ok := strings.Cut(strings.TrimSpace(s), " ")
	if !ok {
		return 0, 0, fmt.Errorf("parse incident time %q: missing time of day", s)
	}
	if err := checkIncidentDate(date); err != nil {
		return 0, 0, fmt.Errorf("parse incident time %q: %w", s, err)
	}

	clockPart = strings.ToUpper(strings.TrimSpace(clockPart))
	// time.Parse takes 0 as a 12-hour clock hour; only 1-12 are valid.
	if h, _, _ := strings.Cut(clockPart, ":"); strings.Trim(h, "0") == "" {
		return 0, 0, fmt.Errorf("parse incident time %q: hour must be 1-12", s)
	}
	t, err := time.Parse("3:04 PM", clockPart)
	if err != nil {
		return 0, 0, fmt.Errorf("parse incident time %q: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}

// checkIncidentDate validates a "month/day-of-year/yy" date.
func checkIncidentDate(date string) error {
	fields := strings.Split(date, "/")
	if len(fields) != 3 {
		return fmt.Errorf("date %q: want month/day/year", date)
	}
	limits := []struct {
		name      string
		min, max  int
		minDigits int
		maxDigits int
	}{
		{name: "month", min: 1, max: 12, minDigits: 1, maxDigits: 2},
		{name: "day", min: 1, max: 366, minDigits: 1, maxDigits: 3},
		{name: "year", min: 0, max: 99, minDigits: 2, maxDigits: 2},
	}
	for i, l := range limits {
		f := fields[i]
		if len(f) < l.minDigits || len(f) > l.maxDigits {
			return fmt.Errorf("date %q: bad %s", date, l.name)
		}
		n, err := strconv.Atoi(f)
		if err != nil || n < l.min || n > l.max {
			return fmt.Errorf("date %q: bad %s", date, l.name)
		}
	}
	return nil
}
