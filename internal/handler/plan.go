package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"portal/internal/domain"
	"portal/internal/planner"
	"portal/internal/utils"
)

func SetupPlanRoutes(e *echo.Echo, svc *planner.Service, enrollments EnrollmentStore, cache Refresher, authMiddleware echo.MiddlewareFunc, log zerolog.Logger) {
	g := e.Group("/api/plans", authMiddleware)

	g.POST("/recommend", RecommendPlans(svc, log))
	g.POST("/commit", CommitPlan(svc, enrollments, cache, log))
	g.POST("/refresh", RefreshContext(cache, log))
}

// RecommendPlans godoc
// @Summary Recommend candidate schedules
// @Description Builds several non-conflicting plans within the credit limit. An empty plans list means nothing could be offered.
// @Tags plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.PlanRequest true "Target credits and preferred days"
// @Success 200 {object} domain.PlanResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /plans/recommend [post]
func RecommendPlans(svc *planner.Service, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		studentID, ok := currentStudent(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, utils.ErrorBody("invalid user context"))
		}

		var req domain.PlanRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, utils.ErrorBody("invalid request"))
		}

		resp, err := svc.Recommend(c.Request().Context(), studentID, req)
		if err != nil {
			return plannerError(c, log, err, "failed to generate plans")
		}

		return c.JSON(http.StatusOK, resp)
	}
}

// CommitPlan godoc
// @Summary Register a chosen plan
// @Description Re-validates the sections and registers all of them in one transaction, or none.
// @Tags plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.CommitPlanRequest true "Section ids of the chosen plan"
// @Success 201 {object} map[string]int
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /plans/commit [post]
func CommitPlan(svc *planner.Service, enrollments EnrollmentStore, cache Refresher, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		studentID, ok := currentStudent(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, utils.ErrorBody("invalid user context"))
		}

		var req domain.CommitPlanRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, utils.ErrorBody("invalid request"))
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, utils.ErrorBody(err.Error()))
		}

		ctx := c.Request().Context()

		// Validate against fresh data, not the session snapshot.
		refresh(ctx, cache, studentID, log)
		rows, err := svc.PrepareCommit(ctx, studentID, req.SectionIDs)
		if err != nil {
			return plannerError(c, log, err, "failed to validate plan")
		}

		inserted, err := enrollments.CommitEnrollments(ctx, rows)
		if errors.Is(err, utils.ErrSectionFull) {
			refresh(ctx, cache, studentID, log)
			return c.JSON(http.StatusConflict, utils.ErrorBody(err.Error()))
		}
		if err != nil {
			log.Error().Err(err).Int("student_id", studentID).Msg("plan commit failed")
			return c.JSON(http.StatusInternalServerError, utils.ErrorBody("failed to register plan"))
		}
		refresh(ctx, cache, studentID, log)

		log.Info().Int("student_id", studentID).Int("sections", inserted).Msg("Plan committed")
		return c.JSON(http.StatusCreated, map[string]int{"registered": inserted})
	}
}

// RefreshContext godoc
// @Summary Reload academic data for planning
// @Tags plans
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} map[string]string
// @Router /plans/refresh [post]
func RefreshContext(cache Refresher, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		studentID, ok := currentStudent(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, utils.ErrorBody("invalid user context"))
		}

		refresh(c.Request().Context(), cache, studentID, log)
		return c.NoContent(http.StatusNoContent)
	}
}
