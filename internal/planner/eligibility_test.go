package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"portal/internal/domain"
)

func section(id int, code string, credits int, schedule string, prereqs ...string) domain.OpenSection {
	s := domain.OpenSection{
		Section: domain.Section{ID: id, CourseCode: code, IsOpen: true},
		Course:  domain.Course{Code: code, Credits: credits, Prerequisites: prereqs},
	}
	if schedule != "" {
		s.Schedule = &schedule
	}
	return s
}

func ids(sections []domain.OpenSection) []int {
	out := make([]int, 0, len(sections))
	for _, s := range sections {
		out = append(out, s.ID)
	}
	return out
}

func TestComputeEligibleSections(t *testing.T) {
	open := []domain.OpenSection{
		section(1, "101", 3, "Sun 8:00-9:00"),
		section(2, "102", 3, "Mon 8:00-9:00"),
		section(3, "201", 3, "Tue 8:00-9:00", "101"),
		section(4, "202", 3, "Wed 8:00-9:00", "101", "102"),
		section(5, "203", 3, "Thu 8:00-9:00", "999"),
		section(6, "301", 3, "Sun Tue 10:00-11:30"),
		section(7, "302", 3, "Tue Sun 10:00-11:30"),
		section(8, "303", 3, ""),
	}

	got := ComputeEligibleSections(open,
		NewSet("101"),
		NewSet("102"),
		NewSet("Sun Tue 10:00-11:30"),
	)

	// 1 passed, 2 registered, 4 needs 102 passed, 5 missing prereq,
	// 6 busy by text. 7 is the same time but a different string.
	assert.Equal(t, []int{3, 7, 8}, ids(got))
}

func TestPassedCourseNeverEligible(t *testing.T) {
	open := []domain.OpenSection{
		section(1, "201", 3, "Mon 9:00-10:00", "101"),
		section(2, "201", 3, "Wed 9:00-10:00"),
	}
	got := ComputeEligibleSections(open, NewSet("101", "201"), NewSet(), NewSet())
	assert.Empty(t, got)
}

func TestPrerequisiteGating(t *testing.T) {
	open := []domain.OpenSection{section(1, "201", 3, "Mon 9:00-10:00", "101")}

	assert.Empty(t, ComputeEligibleSections(open, NewSet(), NewSet(), NewSet()))
	assert.Empty(t, ComputeEligibleSections(open, NewSet(), NewSet("101"), NewSet()),
		"registered prerequisite does not count")
	assert.Len(t, ComputeEligibleSections(open, NewSet("101"), NewSet(), NewSet()), 1)

	multi := []domain.OpenSection{section(2, "301", 3, "", "101", "201")}
	assert.Empty(t, ComputeEligibleSections(multi, NewSet("101"), NewSet(), NewSet()))
	assert.Len(t, ComputeEligibleSections(multi, NewSet("101", "201"), NewSet(), NewSet()), 1)
}

func TestMissingPrerequisites(t *testing.T) {
	c := domain.Course{Code: "401", Prerequisites: []string{"101", "201", "301"}}
	assert.Equal(t, []string{"101", "301"}, MissingPrerequisites(c, NewSet("201")))
	assert.Empty(t, MissingPrerequisites(c, NewSet("101", "201", "301")))
}

func TestFilterByDays(t *testing.T) {
	sections := []domain.OpenSection{
		section(1, "A", 3, "Sun Tue 10:00-11:00"),
		section(2, "B", 3, "Mon 9:00-10:00"),
		section(3, "C", 3, "TBA"),
		section(4, "D", 3, "Sun Mon 9:00-10:00"),
		section(5, "E", 3, "Tue 13:00-14:00"),
	}
	got := FilterByDays(sections, []int{0, 2})
	assert.Equal(t, []int{1, 3, 5}, ids(got))
}

func TestFullSectionsNotEligible(t *testing.T) {
	full := section(1, "201", 3, "Mon 9:00-10:00")
	full.Capacity, full.Enrolled = 30, 30
	seatLeft := section(2, "201", 3, "Wed 9:00-10:00")
	seatLeft.Capacity, seatLeft.Enrolled = 30, 29
	uncapped := section(3, "202", 3, "Thu 9:00-10:00")

	got := ComputeEligibleSections([]domain.OpenSection{full, seatLeft, uncapped}, NewSet(), NewSet(), NewSet())
	assert.Equal(t, []int{2, 3}, ids(got))
}
