package planner

import "portal/internal/domain"

// Set is a set of course codes or schedule strings.
type Set map[string]struct{}

func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

func (s Set) Has(item string) bool {
	_, ok := s[item]
	return ok
}

// ComputeEligibleSections keeps the open sections a student may newly enroll
// in. Full sections are dropped. Busy schedules are compared as exact strings here; precise interval
// conflicts are left to the generator.
func ComputeEligibleSections(open []domain.OpenSection, passed, registered, busyTexts Set) []domain.OpenSection {
	var eligible []domain.OpenSection
	for _, s := range open {
		if s.Full() {
			continue
		}
		code := s.Code()
		if passed.Has(code) || registered.Has(code) {
			continue
		}
		if text := s.ScheduleText(); text != "" && busyTexts.Has(text) {
			continue
		}
		if !PrerequisitesMet(s.Course, passed) {
			continue
		}
		eligible = append(eligible, s)
	}
	return eligible
}

// PrerequisitesMet requires every prerequisite to be passed; current
// registrations do not count.
func PrerequisitesMet(c domain.Course, passed Set) bool {
	for _, p := range c.Prerequisites {
		if !passed.Has(p) {
			return false
		}
	}
	return true
}

// MissingPrerequisites lists prerequisites not yet passed, in catalog order.
func MissingPrerequisites(c domain.Course, passed Set) []string {
	var missing []string
	for _, p := range c.Prerequisites {
		if !passed.Has(p) {
			missing = append(missing, p)
		}
	}
	return missing
}

// FilterByDays drops sections meeting on any day outside preferred.
// Sections without a parseable schedule are kept.
func FilterByDays(sections []domain.OpenSection, preferred []int) []domain.OpenSection {
	allowed := make(map[int]bool, len(preferred))
	for _, d := range preferred {
		allowed[d] = true
	}

	var kept []domain.OpenSection
	for _, s := range sections {
		ok := true
		for _, d := range Days(ParseToIntervals(s.ScheduleText())) {
			if !allowed[d] {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, s)
		}
	}
	return kept
}
