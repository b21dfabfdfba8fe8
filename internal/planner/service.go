package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"portal/internal/domain"
)

// ContextLoader fetches a student's academic context from the data store.
type ContextLoader interface {
	LoadAcademicContext(ctx context.Context, studentID int) (*domain.AcademicContext, error)
}

type Service struct {
	loader    ContextLoader
	generator *Generator
	validate  *validator.Validate
	log       zerolog.Logger
}

func NewService(loader ContextLoader, generator *Generator, validate *validator.Validate, log zerolog.Logger) *Service {
	if generator == nil {
		generator = NewGenerator(nil, nil)
	}
	if validate == nil {
		validate = validator.New()
	}
	return &Service{
		loader:    loader,
		generator: generator,
		validate:  validate,
		log:       log.With().Str("component", "planner").Logger(),
	}
}

// Recommend produces candidate plans for a student. An empty Plans slice
// means nothing could be offered and is not an error.
func (s *Service) Recommend(ctx context.Context, studentID int, req domain.PlanRequest) (*domain.PlanResponse, error) {
	days, err := s.validateRequest(req)
	if err != nil {
		return nil, err
	}

	ac, err := s.loader.LoadAcademicContext(ctx, studentID)
	if err != nil {
		return nil, err
	}

	limits := ResolveLimits(ac.PassedCredits)
	toAdd, notice, err := limits.CreditsToAdd(req.TargetCredits, ac.RegisteredCredits)
	if err != nil {
		s.log.Info().Int("student_id", studentID).Int("hard_limit", limits.HardLimit).
			Int("registered", ac.RegisteredCredits).Msg("Plan request refused, limit reached")
		return nil, err
	}

	eligible := ComputeEligibleSections(ac.OpenSections, ac.PassedCodes(), ac.RegisteredCodes(), ac.BusyTexts())
	eligible = FilterByDays(eligible, days)

	plans, err := s.generator.GeneratePlans(ctx, eligible, toAdd, busyIntervals(ac))
	if err != nil {
		return nil, err
	}
	s.log.Debug().Int("student_id", studentID).Int("eligible", len(eligible)).
		Int("credits_to_add", toAdd).Int("plans", len(plans)).Msg("Generated candidate plans")

	if plans == nil {
		plans = []domain.CandidatePlan{}
	}
	return &domain.PlanResponse{
		Plans:        plans,
		Limits:       limits.DTO(),
		CreditsToAdd: toAdd,
		Notice:       notice,
	}, nil
}

// Progress summarises credits against the degree requirement.
func (s *Service) Progress(ctx context.Context, studentID int) (*domain.AcademicProgress, error) {
	ac, err := s.loader.LoadAcademicContext(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &domain.AcademicProgress{
		PassedCredits:     ac.PassedCredits,
		RegisteredCredits: ac.RegisteredCredits,
		Limits:            ResolveLimits(ac.PassedCredits).DTO(),
	}, nil
}

// CheckRegistration validates adding a single section to the student's
// current registrations.
func (s *Service) CheckRegistration(ctx context.Context, studentID, sectionID int) (*domain.OpenSection, error) {
	ac, err := s.loader.LoadAcademicContext(ctx, studentID)
	if err != nil {
		return nil, err
	}
	sec, err := s.checkAgainst(ac, []int{sectionID})
	if err != nil {
		return nil, err
	}
	return &sec[0], nil
}

// PrepareCommit validates a chosen plan against fresh data and returns the
// rows to insert. The whole plan is rejected on any failure.
func (s *Service) PrepareCommit(ctx context.Context, studentID int, sectionIDs []int) ([]domain.EnrollmentInsert, error) {
	ac, err := s.loader.LoadAcademicContext(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.checkAgainst(ac, sectionIDs); err != nil {
		return nil, err
	}
	return BuildEnrollments(studentID, sectionIDs), nil
}

// BuildEnrollments turns accepted section ids into REGISTERED rows.
func BuildEnrollments(studentID int, sectionIDs []int) []domain.EnrollmentInsert {
	rows := make([]domain.EnrollmentInsert, 0, len(sectionIDs))
	for _, id := range sectionIDs {
		rows = append(rows, domain.EnrollmentInsert{
			StudentID: studentID,
			SectionID: id,
			Status:    domain.StatusRegistered,
		})
	}
	return rows
}

func (s *Service) checkAgainst(ac *domain.AcademicContext, sectionIDs []int) ([]domain.OpenSection, error) {
	byID := make(map[int]domain.OpenSection, len(ac.OpenSections))
	for _, sec := range ac.OpenSections {
		byID[sec.ID] = sec
	}

	passed := Set(ac.PassedCodes())
	registered := Set(ac.RegisteredCodes())
	taken := busyIntervals(ac)
	chosen := make(Set)
	credits := ac.RegisteredCredits
	limits := ResolveLimits(ac.PassedCredits)

	var out []domain.OpenSection
	for _, id := range sectionIDs {
		sec, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: section %d is not open this term", ErrNotEligible, id)
		}
		if sec.Full() {
			return nil, fmt.Errorf("%w: section %d is full", ErrNotEligible, id)
		}
		code := sec.Code()
		switch {
		case passed.Has(code):
			return nil, fmt.Errorf("%w: course %s already passed", ErrNotEligible, code)
		case registered.Has(code), chosen.Has(code):
			return nil, fmt.Errorf("%w: course %s already registered", ErrNotEligible, code)
		}
		if missing := MissingPrerequisites(sec.Course, passed); len(missing) > 0 {
			return nil, fmt.Errorf("%w: course %s requires %s", ErrNotEligible, code, strings.Join(missing, ", "))
		}
		intervals := ParseToIntervals(sec.ScheduleText())
		if HasOverlap(intervals, taken) {
			return nil, fmt.Errorf("%w: section %d", ErrTimeConflict, id)
		}
		credits += sec.Course.Credits
		if credits > limits.HardLimit {
			return nil, &LimitReachedError{HardLimit: limits.HardLimit, CurrentCredits: ac.RegisteredCredits, Target: credits}
		}
		taken = append(taken, intervals...)
		chosen[code] = struct{}{}
		out = append(out, sec)
	}
	return out, nil
}

func (s *Service) validateRequest(req domain.PlanRequest) ([]int, error) {
	normalized := make([]string, len(req.PreferredDays))
	for i, d := range req.PreferredDays {
		normalized[i] = strings.ToLower(strings.TrimSpace(d))
	}
	req.PreferredDays = normalized

	if len(req.PreferredDays) == 0 {
		return nil, &ValidationError{Field: "preferred_days", Message: "select at least one day"}
	}
	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return nil, &ValidationError{Field: fe.Field(), Message: fmt.Sprintf("failed on '%s' rule", fe.Tag())}
		}
		return nil, &ValidationError{Field: "request", Message: err.Error()}
	}

	days := make([]int, 0, len(req.PreferredDays))
	for _, d := range req.PreferredDays {
		idx, _ := DayIndex(d)
		days = append(days, idx)
	}
	return days, nil
}

func busyIntervals(ac *domain.AcademicContext) []Interval {
	var busy []Interval
	for _, r := range ac.Registered {
		busy = append(busy, ParseSchedule(r.Schedule)...)
	}
	return busy
}
