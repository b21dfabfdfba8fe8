package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"portal/internal/domain"
	"portal/internal/repository/postgres"
	"portal/internal/utils"
)

func SetupCourseRoutes(e *echo.Echo, catalog CatalogStore, log zerolog.Logger) {
	e.GET("/api/terms/active", GetActiveTerm(catalog, log))
	e.GET("/api/sections", GetOpenSections(catalog, log))
	e.GET("/api/courses/:code", GetCourseByCode(catalog, log))
}

// GetActiveTerm godoc
// @Summary Get the active term
// @Tags courses
// @Produce json
// @Success 200 {object} domain.Term
// @Failure 404 {object} map[string]string
// @Router /terms/active [get]
func GetActiveTerm(catalog CatalogStore, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		term, err := catalog.GetActiveTerm(c.Request().Context())
		if errors.Is(err, postgres.ErrNoActiveTerm) {
			return c.JSON(http.StatusNotFound, utils.ErrorBody("no active term"))
		}
		if err != nil {
			log.Error().Err(err).Msg("failed to fetch active term")
			return c.JSON(http.StatusInternalServerError, utils.ErrorBody("failed to fetch active term"))
		}

		return c.JSON(http.StatusOK, term)
	}
}

// GetOpenSections godoc
// @Summary List open sections of the active term
// @Description Optional filters match the course category exactly and the code or English name by substring
// @Tags courses
// @Produce json
// @Param category query string false "Course category"
// @Param q query string false "Code or name search"
// @Success 200 {array} domain.OpenSection
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /sections [get]
func GetOpenSections(catalog CatalogStore, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		term, err := catalog.GetActiveTerm(ctx)
		if errors.Is(err, postgres.ErrNoActiveTerm) {
			return c.JSON(http.StatusNotFound, utils.ErrorBody("no active term"))
		}
		if err != nil {
			log.Error().Err(err).Msg("failed to fetch active term")
			return c.JSON(http.StatusInternalServerError, utils.ErrorBody("failed to fetch sections"))
		}

		sections, err := catalog.GetOpenSections(ctx, term.ID)
		if err != nil {
			log.Error().Err(err).Int("term_id", term.ID).Msg("failed to fetch sections")
			return c.JSON(http.StatusInternalServerError, utils.ErrorBody("failed to fetch sections"))
		}

		return c.JSON(http.StatusOK, filterSections(sections, c.QueryParam("category"), c.QueryParam("q")))
	}
}

func filterSections(sections []domain.OpenSection, category, query string) []domain.OpenSection {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.OpenSection, 0, len(sections))
	for _, s := range sections {
		if category != "" && !strings.EqualFold(s.Course.Category, category) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(s.Code()), query) &&
			!strings.Contains(strings.ToLower(s.Course.NameEn), query) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// GetCourseByCode godoc
// @Summary Get course by code
// @Tags courses
// @Produce json
// @Param code path string true "Course code"
// @Success 200 {object} domain.Course
// @Failure 404 {object} map[string]string
// @Router /courses/{code} [get]
func GetCourseByCode(catalog CatalogStore, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		course, err := catalog.GetCourseByCode(c.Request().Context(), c.Param("code"))
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, utils.ErrorBody("course not found"))
		}
		if err != nil {
			log.Error().Err(err).Msg("failed to fetch course")
			return c.JSON(http.StatusInternalServerError, utils.ErrorBody("failed to fetch course"))
		}

		return c.JSON(http.StatusOK, course)
	}
}
