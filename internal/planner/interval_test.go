package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseToIntervals(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Interval
	}{
		{
			name: "two days share one range",
			text: "Sun Tue 10:00-11:30",
			want: []Interval{{Start: 600, End: 690}, {Start: 2*1440 + 600, End: 2*1440 + 690}},
		},
		{
			name: "single digit hour with spaced hyphen",
			text: "Wed 9:00 - 10:15",
			want: []Interval{{Start: 3*1440 + 540, End: 3*1440 + 615}},
		},
		{
			name: "upper case days are ordered by week index",
			text: "WED MON 08:00-09:15",
			want: []Interval{{Start: 1440 + 480, End: 1440 + 555}, {Start: 3*1440 + 480, End: 3*1440 + 555}},
		},
		{
			name: "saturday evening",
			text: "Sat 18:30-20:00",
			want: []Interval{{Start: 6*1440 + 1110, End: 6*1440 + 1200}},
		},
		{name: "empty", text: ""},
		{name: "blank", text: "   "},
		{name: "tba", text: "TBA"},
		{name: "tba mixed case with time", text: "Mon tba 10:00-11:00"},
		{name: "day without time", text: "Mon Wed"},
		{name: "time without day", text: "10:00-11:00"},
		{name: "reversed range", text: "Thu 11:00-10:00"},
		{name: "zero length range", text: "Thu 10:00-10:00"},
		{name: "hour out of range", text: "Fri 25:00-26:00"},
		{name: "minute out of range", text: "Fri 10:75-11:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseToIntervals(tt.text)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseScheduleNil(t *testing.T) {
	assert.Empty(t, ParseSchedule(nil))

	text := "Mon 9:00-10:00"
	assert.Equal(t, []Interval{{Start: 1440 + 540, End: 1440 + 600}}, ParseSchedule(&text))
}

func TestIntervalsStayOrderedWithinWeek(t *testing.T) {
	for _, iv := range ParseToIntervals("Sun Mon Tue Wed Thu Fri Sat 0:00-23:59") {
		assert.Less(t, iv.Start, iv.End)
		assert.GreaterOrEqual(t, iv.Start, 0)
		assert.LessOrEqual(t, iv.End, MinutesPerWeek)
	}
}

func TestHasOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b []Interval
		want bool
	}{
		{name: "touching endpoints", a: []Interval{{0, 60}}, b: []Interval{{60, 120}}, want: false},
		{name: "one minute overlap", a: []Interval{{0, 61}}, b: []Interval{{60, 120}}, want: true},
		{name: "contained", a: []Interval{{10, 20}}, b: []Interval{{0, 120}}, want: true},
		{name: "identical", a: []Interval{{30, 90}}, b: []Interval{{30, 90}}, want: true},
		{name: "same time other day", a: []Interval{{600, 690}}, b: []Interval{{1440 + 600, 1440 + 690}}, want: false},
		{name: "second pair overlaps", a: []Interval{{0, 10}, {500, 600}}, b: []Interval{{100, 200}, {590, 700}}, want: true},
		{name: "empty a", a: nil, b: []Interval{{0, 60}}, want: false},
		{name: "empty b", a: []Interval{{0, 60}}, b: []Interval{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasOverlap(tt.a, tt.b))
			assert.Equal(t, tt.want, HasOverlap(tt.b, tt.a), "overlap must be symmetric")
		})
	}
}

func TestHasOverlapParsedSchedules(t *testing.T) {
	a := ParseToIntervals("Sun Tue 10:00-11:30")
	assert.True(t, HasOverlap(a, ParseToIntervals("Tue 11:00-12:00")))
	assert.False(t, HasOverlap(a, ParseToIntervals("Tue 11:30-12:30")))
	assert.False(t, HasOverlap(a, ParseToIntervals("Mon 10:00-11:30")))
	assert.False(t, HasOverlap(a, ParseToIntervals("TBA")))
}

func TestDayIndexAndDays(t *testing.T) {
	idx, ok := DayIndex(" Thu ")
	assert.True(t, ok)
	assert.Equal(t, 4, idx)

	_, ok = DayIndex("thursday")
	assert.False(t, ok)

	assert.Equal(t, []int{0, 2}, Days(ParseToIntervals("Sun Tue 10:00-11:30")))
	assert.Empty(t, Days(nil))
}
