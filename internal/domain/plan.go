package domain

// CompletedCourse is a passed course as projected from COMPLETED enrollments.
type CompletedCourse struct {
	CourseCode string `json:"course_code"`
	Credits    int    `json:"credits"`
}

// RegisteredCourse is an in-progress registration.
type RegisteredCourse struct {
	SectionID  int     `json:"section_id"`
	CourseCode string  `json:"course_code"`
	Schedule   *string `json:"schedule"`
	Credits    int     `json:"credits"`
}

// AcademicContext is everything the recommender needs about one student,
// fetched once per planning session.
type AcademicContext struct {
	StudentID         int                `json:"student_id"`
	TermID            int                `json:"term_id"`
	Completed         []CompletedCourse  `json:"completed"`
	Registered        []RegisteredCourse `json:"registered"`
	OpenSections      []OpenSection      `json:"open_sections"`
	PassedCredits     int                `json:"passed_credits"`
	RegisteredCredits int                `json:"registered_credits"`
}

// PassedCodes returns the set of course codes the student has passed.
func (a *AcademicContext) PassedCodes() map[string]struct{} {
	set := make(map[string]struct{}, len(a.Completed))
	for _, c := range a.Completed {
		set[c.CourseCode] = struct{}{}
	}
	return set
}

func (a *AcademicContext) RegisteredCodes() map[string]struct{} {
	set := make(map[string]struct{}, len(a.Registered))
	for _, r := range a.Registered {
		set[r.CourseCode] = struct{}{}
	}
	return set
}

// BusyTexts returns the schedule strings of current registrations.
func (a *AcademicContext) BusyTexts() map[string]struct{} {
	set := make(map[string]struct{}, len(a.Registered))
	for _, r := range a.Registered {
		if r.Schedule != nil && *r.Schedule != "" {
			set[*r.Schedule] = struct{}{}
		}
	}
	return set
}

type PlanRequest struct {
	TargetCredits int      `json:"target_credits" validate:"required,min=1"`
	PreferredDays []string `json:"preferred_days" validate:"required,min=1,dive,oneof=sun mon tue wed thu fri sat"`
}

type CandidatePlan struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Sections     []OpenSection `json:"sections"`
	AddedCredits int           `json:"added_credits"`
	Rationale    string        `json:"rationale"`
}

type CreditLimits struct {
	HardLimit     int  `json:"hard_limit"`
	IsGraduating  bool `json:"is_graduating"`
	RemainingToGo int  `json:"remaining_to_degree"`
}

type PlanResponse struct {
	Plans        []CandidatePlan `json:"plans"`
	Limits       CreditLimits    `json:"limits"`
	CreditsToAdd int             `json:"credits_to_add"`
	Notice       string          `json:"notice,omitempty"`
}

type AcademicProgress struct {
	PassedCredits     int          `json:"passed_credits"`
	RegisteredCredits int          `json:"registered_credits"`
	Limits            CreditLimits `json:"limits"`
}
