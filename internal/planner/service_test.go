package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portal/internal/domain"
)

type fakeLoader struct {
	ac    *domain.AcademicContext
	err   error
	calls int
}

func (f *fakeLoader) LoadAcademicContext(_ context.Context, _ int) (*domain.AcademicContext, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.ac, nil
}

func strPtr(s string) *string { return &s }

func sampleContext() *domain.AcademicContext {
	return &domain.AcademicContext{
		StudentID: 7,
		TermID:    1,
		Completed: []domain.CompletedCourse{
			{CourseCode: "101", Credits: 30},
			{CourseCode: "102", Credits: 30},
		},
		Registered: []domain.RegisteredCourse{
			{SectionID: 50, CourseCode: "150", Schedule: strPtr("Sun Tue 10:00-11:30"), Credits: 3},
		},
		OpenSections: []domain.OpenSection{
			section(1, "101", 3, "Mon 9:00-10:00"),
			section(2, "150", 3, "Wed 9:00-10:00"),
			section(3, "201", 3, "Sun 10:30-11:00", "101"),
			section(4, "202", 3, "Mon 9:00-10:00", "101", "102"),
			section(5, "203", 3, "Wed 12:00-13:00", "301"),
			section(6, "204", 4, "Thu 8:00-9:30"),
			section(7, "205", 3, "Sun Tue 12:00-13:00"),
		},
		PassedCredits:     60,
		RegisteredCredits: 3,
	}
}

func newTestService(loader ContextLoader) *Service {
	return NewService(loader, NewSeededGenerator(nil, 11), nil, zerolog.Nop())
}

func TestRecommendValidation(t *testing.T) {
	loader := &fakeLoader{ac: sampleContext()}
	svc := newTestService(loader)

	_, err := svc.Recommend(context.Background(), 7, domain.PlanRequest{TargetCredits: 12})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "preferred_days", verr.Field)

	_, err = svc.Recommend(context.Background(), 7, domain.PlanRequest{TargetCredits: 12, PreferredDays: []string{"someday"}})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.Recommend(context.Background(), 7, domain.PlanRequest{TargetCredits: 0, PreferredDays: []string{"mon"}})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	assert.Zero(t, loader.calls, "validation must fail before any fetch")
}

func TestRecommendPropagatesFetchError(t *testing.T) {
	boom := errors.New("connection refused")
	svc := newTestService(&fakeLoader{err: boom})

	_, err := svc.Recommend(context.Background(), 7, domain.PlanRequest{TargetCredits: 12, PreferredDays: []string{"mon"}})
	assert.Equal(t, boom, err)
}

func TestRecommendLimitReached(t *testing.T) {
	ac := sampleContext()
	ac.RegisteredCredits = 18
	svc := newTestService(&fakeLoader{ac: ac})

	_, err := svc.Recommend(context.Background(), 7, domain.PlanRequest{TargetCredits: 18, PreferredDays: []string{"mon"}})
	var lre *LimitReachedError
	require.ErrorAs(t, err, &lre)
	assert.Equal(t, 18, lre.HardLimit)
	assert.Equal(t, 18, lre.CurrentCredits)
}

func TestRecommendPlans(t *testing.T) {
	svc := newTestService(&fakeLoader{ac: sampleContext()})

	resp, err := svc.Recommend(context.Background(), 7, domain.PlanRequest{
		TargetCredits: 24,
		PreferredDays: []string{"Sun", "MON", "tue", "wed", "thu"},
	})
	require.NoError(t, err)

	assert.Equal(t, 15, resp.CreditsToAdd)
	assert.NotEmpty(t, resp.Notice)
	assert.Equal(t, domain.CreditLimits{HardLimit: 18, IsGraduating: false, RemainingToGo: 72}, resp.Limits)
	require.NotEmpty(t, resp.Plans)

	for _, p := range resp.Plans {
		codes := planCodes(p)
		// 101 passed, 150 registered, 201 overlaps busy time,
		// 203 lacks its prerequisite.
		for _, excluded := range []string{"101", "150", "201", "203"} {
			assert.NotContains(t, codes, excluded)
		}
		assert.LessOrEqual(t, p.AddedCredits, 15)
	}
}

func TestRecommendClampsOversizeTarget(t *testing.T) {
	tests := []struct {
		name      string
		passed    int
		hardLimit int
	}{
		{name: "regular", passed: 60, hardLimit: 18},
		{name: "graduating", passed: 120, hardLimit: 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ac := sampleContext()
			ac.PassedCredits = tt.passed
			svc := newTestService(&fakeLoader{ac: ac})

			resp, err := svc.Recommend(context.Background(), 7, domain.PlanRequest{TargetCredits: 40, PreferredDays: []string{"mon"}})
			require.NoError(t, err)
			assert.Equal(t, tt.hardLimit, resp.Limits.HardLimit)
			assert.Equal(t, tt.hardLimit-ac.RegisteredCredits, resp.CreditsToAdd)
			assert.NotEmpty(t, resp.Notice)
		})
	}
}

func TestRecommendPreferredDaysFilter(t *testing.T) {
	svc := newTestService(&fakeLoader{ac: sampleContext()})

	resp, err := svc.Recommend(context.Background(), 7, domain.PlanRequest{TargetCredits: 18, PreferredDays: []string{"thu"}})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Plans)
	for _, p := range resp.Plans {
		assert.Equal(t, []string{"204"}, planCodes(p))
		assert.Equal(t, 4, p.AddedCredits)
	}
}

func TestRecommendNothingToOffer(t *testing.T) {
	svc := newTestService(&fakeLoader{ac: sampleContext()})

	resp, err := svc.Recommend(context.Background(), 7, domain.PlanRequest{TargetCredits: 18, PreferredDays: []string{"fri"}})
	require.NoError(t, err)
	assert.NotNil(t, resp.Plans)
	assert.Empty(t, resp.Plans)
}

func TestProgress(t *testing.T) {
	ac := sampleContext()
	ac.PassedCredits = 120
	svc := newTestService(&fakeLoader{ac: ac})

	p, err := svc.Progress(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 120, p.PassedCredits)
	assert.Equal(t, 3, p.RegisteredCredits)
	assert.True(t, p.Limits.IsGraduating)
	assert.Equal(t, 21, p.Limits.HardLimit)
	assert.Equal(t, 12, p.Limits.RemainingToGo)
}

func TestCheckRegistration(t *testing.T) {
	svc := newTestService(&fakeLoader{ac: sampleContext()})
	ctx := context.Background()

	sec, err := svc.CheckRegistration(ctx, 7, 4)
	require.NoError(t, err)
	assert.Equal(t, "202", sec.Code())

	_, err = svc.CheckRegistration(ctx, 7, 3)
	assert.ErrorIs(t, err, ErrTimeConflict)

	_, err = svc.CheckRegistration(ctx, 7, 5)
	assert.ErrorIs(t, err, ErrNotEligible)
	assert.Contains(t, err.Error(), "301")

	_, err = svc.CheckRegistration(ctx, 7, 1)
	assert.ErrorIs(t, err, ErrNotEligible)

	_, err = svc.CheckRegistration(ctx, 7, 2)
	assert.ErrorIs(t, err, ErrNotEligible)

	_, err = svc.CheckRegistration(ctx, 7, 999)
	assert.ErrorIs(t, err, ErrNotEligible)

	ac := sampleContext()
	ac.OpenSections[3].Capacity, ac.OpenSections[3].Enrolled = 25, 25
	svc = newTestService(&fakeLoader{ac: ac})
	_, err = svc.CheckRegistration(ctx, 7, 4)
	assert.ErrorIs(t, err, ErrNotEligible)
	assert.Contains(t, err.Error(), "full")
}

func TestPrepareCommit(t *testing.T) {
	ctx := context.Background()

	svc := newTestService(&fakeLoader{ac: sampleContext()})
	rows, err := svc.PrepareCommit(ctx, 7, []int{4, 6, 7})
	require.NoError(t, err)
	assert.Equal(t, []domain.EnrollmentInsert{
		{StudentID: 7, SectionID: 4, Status: domain.StatusRegistered},
		{StudentID: 7, SectionID: 6, Status: domain.StatusRegistered},
		{StudentID: 7, SectionID: 7, Status: domain.StatusRegistered},
	}, rows)

	ac := sampleContext()
	ac.OpenSections = append(ac.OpenSections, section(8, "202", 3, "Thu 14:00-15:00", "101"))
	svc = newTestService(&fakeLoader{ac: ac})
	_, err = svc.PrepareCommit(ctx, 7, []int{4, 8})
	assert.ErrorIs(t, err, ErrNotEligible, "two sections of one course")

	ac = sampleContext()
	ac.RegisteredCredits = 15
	svc = newTestService(&fakeLoader{ac: ac})
	_, err = svc.PrepareCommit(ctx, 7, []int{4, 6})
	assert.ErrorIs(t, err, ErrLimitReached)

	ac = sampleContext()
	ac.OpenSections = append(ac.OpenSections, section(9, "206", 3, "Thu 9:00-10:00"))
	svc = newTestService(&fakeLoader{ac: ac})
	_, err = svc.PrepareCommit(ctx, 7, []int{6, 9})
	assert.ErrorIs(t, err, ErrTimeConflict, "sections in the plan conflict with each other")
}
