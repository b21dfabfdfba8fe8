package planner

import (
	"fmt"

	"portal/internal/domain"
)

const (
	DegreeCredits    = 132
	GraduatingWindow = 21
	GraduatingLimit  = 21
	RegularLimit     = 18
)

type Limits struct {
	HardLimit    int
	IsGraduating bool
	Remaining    int
}

// ResolveLimits derives the per-term credit ceiling from credits passed so far.
func ResolveLimits(totalPassedCredits int) Limits {
	remaining := DegreeCredits - totalPassedCredits
	l := Limits{
		HardLimit: RegularLimit,
		Remaining: remaining,
	}
	if remaining <= GraduatingWindow {
		l.HardLimit = GraduatingLimit
		l.IsGraduating = true
	}
	return l
}

// Clamp caps target at the hard limit. notice is non-empty when it did.
func (l Limits) Clamp(target int) (int, string) {
	if target > l.HardLimit {
		return l.HardLimit, fmt.Sprintf("target of %d credits reduced to the %d credit limit", target, l.HardLimit)
	}
	return target, ""
}

// CreditsToAdd is the budget left for new sections once current
// registrations are counted against the clamped target.
func (l Limits) CreditsToAdd(target, currentCredits int) (int, string, error) {
	clamped, notice := l.Clamp(target)
	toAdd := clamped - currentCredits
	if toAdd <= 0 {
		return 0, notice, &LimitReachedError{HardLimit: l.HardLimit, CurrentCredits: currentCredits, Target: clamped}
	}
	return toAdd, notice, nil
}

func (l Limits) DTO() domain.CreditLimits {
	return domain.CreditLimits{
		HardLimit:     l.HardLimit,
		IsGraduating:  l.IsGraduating,
		RemainingToGo: l.Remaining,
	}
}
