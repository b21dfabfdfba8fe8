package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"portal/internal/domain"
	"portal/internal/planner"
	"portal/internal/utils"
)

func SetupEnrollmentRoutes(e *echo.Echo, svc *planner.Service, enrollments EnrollmentStore, cache Refresher, authMiddleware echo.MiddlewareFunc, log zerolog.Logger) {
	g := e.Group("/api/enrollments", authMiddleware)

	g.GET("", GetMyEnrollments(enrollments, log))
	g.POST("", RegisterSection(svc, enrollments, cache, log))
	g.DELETE("/:sectionId", DropSection(enrollments, cache, log))
}

// GetMyEnrollments godoc
// @Summary List enrollments of the current student
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.EnrollmentWithSection
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /enrollments [get]
func GetMyEnrollments(enrollments EnrollmentStore, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		studentID, ok := currentStudent(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, utils.ErrorBody("invalid user context"))
		}

		list, err := enrollments.GetStudentEnrollments(c.Request().Context(), studentID)
		if err != nil {
			log.Error().Err(err).Int("student_id", studentID).Msg("failed to fetch enrollments")
			return c.JSON(http.StatusInternalServerError, utils.ErrorBody("failed to fetch enrollments"))
		}
		if list == nil {
			list = []domain.EnrollmentWithSection{}
		}

		return c.JSON(http.StatusOK, list)
	}
}

// RegisterSection godoc
// @Summary Register a single section
// @Description Checks prerequisites, time conflicts and the credit limit before registering.
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param section body domain.RegisterSectionRequest true "Section to register"
// @Success 201 {object} domain.OpenSection
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /enrollments [post]
func RegisterSection(svc *planner.Service, enrollments EnrollmentStore, cache Refresher, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		studentID, ok := currentStudent(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, utils.ErrorBody("invalid user context"))
		}

		var req domain.RegisterSectionRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, utils.ErrorBody("invalid request"))
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, utils.ErrorBody(err.Error()))
		}

		ctx := c.Request().Context()
		refresh(ctx, cache, studentID, log)

		section, err := svc.CheckRegistration(ctx, studentID, req.SectionID)
		if err != nil {
			return plannerError(c, log, err, "failed to check registration")
		}

		err = enrollments.RegisterSection(ctx, studentID, req.SectionID)
		if errors.Is(err, utils.ErrNoRowsInserted) {
			return c.JSON(http.StatusConflict, utils.ErrorBody("already enrolled in this section"))
		}
		if errors.Is(err, utils.ErrSectionFull) {
			return c.JSON(http.StatusConflict, utils.ErrorBody("section is full"))
		}
		if err != nil {
			log.Error().Err(err).Int("student_id", studentID).Int("section_id", req.SectionID).Msg("registration failed")
			return c.JSON(http.StatusInternalServerError, utils.ErrorBody("failed to register section"))
		}
		refresh(ctx, cache, studentID, log)

		return c.JSON(http.StatusCreated, section)
	}
}

// DropSection godoc
// @Summary Drop a registered section
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param sectionId path int true "Section ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /enrollments/{sectionId} [delete]
func DropSection(enrollments EnrollmentStore, cache Refresher, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		studentID, ok := currentStudent(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, utils.ErrorBody("invalid user context"))
		}

		sectionID, err := strconv.Atoi(c.Param("sectionId"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, utils.ErrorBody("invalid section id"))
		}

		ctx := c.Request().Context()
		err = enrollments.DropEnrollment(ctx, studentID, sectionID)
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, utils.ErrorBody("registration not found"))
		}
		if err != nil {
			log.Error().Err(err).Int("student_id", studentID).Int("section_id", sectionID).Msg("drop failed")
			return c.JSON(http.StatusInternalServerError, utils.ErrorBody("failed to drop section"))
		}
		refresh(ctx, cache, studentID, log)

		return c.JSON(http.StatusOK, map[string]string{"message": "section dropped"})
	}
}
