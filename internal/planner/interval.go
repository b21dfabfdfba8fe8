package planner

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	MinutesPerDay  = 1440
	MinutesPerWeek = 7 * MinutesPerDay
)

// Interval is a half-open span of minutes on a Sunday-based week.
type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

var dayTokens = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

var timeRange = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*-\s*(\d{1,2}):(\d{2})`)

// DayIndex maps a day token ("sun".."sat", any case) to 0..6.
func DayIndex(token string) (int, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	for i, d := range dayTokens {
		if token == d {
			return i, true
		}
	}
	return 0, false
}

// ParseToIntervals converts a schedule like "Sun Tue 10:00-11:30" into one
// interval per named day. Empty, TBA and unparseable text yield nil.
func ParseToIntervals(text string) []Interval {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" || strings.Contains(lower, "tba") {
		return nil
	}

	m := timeRange.FindStringSubmatch(lower)
	if m == nil {
		return nil
	}

	start, ok := minutesOfDay(m[1], m[2])
	if !ok {
		return nil
	}
	end, ok := minutesOfDay(m[3], m[4])
	if !ok || start >= end {
		return nil
	}

	var intervals []Interval
	for i, d := range dayTokens {
		if strings.Contains(lower, d) {
			intervals = append(intervals, Interval{
				Start: i*MinutesPerDay + start,
				End:   i*MinutesPerDay + end,
			})
		}
	}
	return intervals
}

// ParseSchedule is ParseToIntervals for nullable schedule columns.
func ParseSchedule(text *string) []Interval {
	if text == nil {
		return nil
	}
	return ParseToIntervals(*text)
}

func minutesOfDay(h, m string) (int, bool) {
	hour, err := strconv.Atoi(h)
	if err != nil || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

// HasOverlap reports whether any interval in a intersects any interval in b.
// Touching endpoints do not count.
func HasOverlap(a, b []Interval) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	for _, x := range a {
		for _, y := range b {
			if x.Start < y.End && x.End > y.Start {
				return true
			}
		}
	}
	return false
}

// Days returns the distinct day indexes an interval set touches.
func Days(intervals []Interval) []int {
	seen := make(map[int]bool, len(intervals))
	var days []int
	for _, iv := range intervals {
		d := iv.Start / MinutesPerDay
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	return days
}
