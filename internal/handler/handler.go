package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"portal/internal/domain"
	"portal/internal/planner"
	"portal/internal/repository/postgres"
	"portal/internal/utils"
)

type CatalogStore interface {
	GetActiveTerm(ctx context.Context) (*domain.Term, error)
	GetOpenSections(ctx context.Context, termID int) ([]domain.OpenSection, error)
	GetCourseByCode(ctx context.Context, code string) (*domain.Course, error)
}

type StudentStore interface {
	CreateStudent(ctx context.Context, req *domain.RegisterRequest, passwordHash string) (*domain.Student, error)
	GetStudentByEmail(ctx context.Context, email string) (*domain.Student, error)
	GetStudentByID(ctx context.Context, id int) (*domain.Student, error)
}

type EnrollmentStore interface {
	GetStudentEnrollments(ctx context.Context, studentID int) ([]domain.EnrollmentWithSection, error)
	CommitEnrollments(ctx context.Context, rows []domain.EnrollmentInsert) (int, error)
	RegisterSection(ctx context.Context, studentID, sectionID int) error
	DropEnrollment(ctx context.Context, studentID, sectionID int) error
}

type ExceptionStore interface {
	CreateExceptionRequest(ctx context.Context, studentID int, req *domain.CreateExceptionRequest, attachmentKey *string) (*domain.ExceptionRequest, error)
	GetStudentExceptionRequests(ctx context.Context, studentID int) ([]domain.ExceptionRequest, error)
}

// Refresher drops a student's cached academic context.
type Refresher interface {
	Refresh(ctx context.Context, studentID int) error
}

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

func (customValidator *CustomValidator) Validate(i interface{}) error {
	if err := customValidator.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func currentStudent(c echo.Context) (int, bool) {
	id, ok := c.Get("user_id").(int)
	return id, ok
}

func refresh(ctx context.Context, r Refresher, studentID int, log zerolog.Logger) {
	if r == nil {
		return
	}
	if err := r.Refresh(ctx, studentID); err != nil {
		log.Warn().Err(err).Int("student_id", studentID).Msg("Failed to refresh academic context")
	}
}

// plannerError maps planner and storage errors onto HTTP responses.
func plannerError(c echo.Context, log zerolog.Logger, err error, fallback string) error {
	var verr *planner.ValidationError
	var lre *planner.LimitReachedError

	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": verr.Message, "field": verr.Field})
	case errors.As(err, &lre):
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{
			"error":           "credit limit reached",
			"hard_limit":      lre.HardLimit,
			"current_credits": lre.CurrentCredits,
		})
	case errors.Is(err, planner.ErrTimeConflict):
		return c.JSON(http.StatusConflict, utils.ErrorBody(err.Error()))
	case errors.Is(err, planner.ErrNotEligible):
		return c.JSON(http.StatusUnprocessableEntity, utils.ErrorBody(err.Error()))
	case errors.Is(err, postgres.ErrNoActiveTerm):
		return c.JSON(http.StatusNotFound, utils.ErrorBody("no active term"))
	}

	log.Error().Err(err).Msg(fallback)
	return c.JSON(http.StatusInternalServerError, utils.ErrorBody(fallback))
}
