package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"portal/internal/domain"
	"portal/internal/planner"
	"portal/internal/utils"
)

func SetupStudentRoutes(e *echo.Echo, students StudentStore, issuer *utils.TokenIssuer, svc *planner.Service, authMiddleware echo.MiddlewareFunc, log zerolog.Logger) {
	e.POST("/api/auth/register", Register(students, issuer, log))
	e.POST("/api/auth/login", Login(students, issuer, log))

	e.GET("/api/users/me", GetCurrentStudent(students, log), authMiddleware)
	e.GET("/api/users/me/progress", GetProgress(svc, log), authMiddleware)
}

// Login godoc
// @Summary Login student
// @Description Authenticate student and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body domain.LoginRequest true "Login credentials"
// @Success 200 {object} domain.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/login [post]
func Login(students StudentStore, issuer *utils.TokenIssuer, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.LoginRequest

		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, utils.ErrorBody("invalid request body"))
		}

		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, utils.ErrorBody(err.Error()))
		}

		student, err := students.GetStudentByEmail(c.Request().Context(), req.Email)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, utils.ErrorBody("invalid email or password"))
		}

		err = bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(req.Password))
		if err != nil {
			return c.JSON(http.StatusUnauthorized, utils.ErrorBody("invalid email or password"))
		}

		token, err := issuer.GenerateToken(student.ID, student.Email)
		if err != nil {
			log.Error().Err(err).Msg("failed to generate token")
			return c.JSON(http.StatusInternalServerError, utils.ErrorBody("failed to generate token"))
		}

		student.PasswordHash = ""

		return c.JSON(http.StatusOK, domain.AuthResponse{
			Token:   token,
			Student: *student,
		})
	}
}

// Register godoc
// @Summary Register new student
// @Description Create a new student account
// @Tags auth
// @Accept json
// @Produce json
// @Param student body domain.RegisterRequest true "Student registration details"
// @Success 201 {object} domain.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/register [post]
func Register(students StudentStore, issuer *utils.TokenIssuer, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.RegisterRequest

		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, utils.ErrorBody("invalid request body"))
		}

		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, utils.ErrorBody(err.Error()))
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, utils.ErrorBody("failed to hash password"))
		}

		student, err := students.CreateStudent(c.Request().Context(), &req, string(hashedPassword))
		if err != nil {
			log.Warn().Err(err).Str("email", req.Email).Msg("student registration failed")
			return c.JSON(http.StatusConflict, utils.ErrorBody("email or student id already exists"))
		}

		token, err := issuer.GenerateToken(student.ID, student.Email)
		if err != nil {
			log.Error().Err(err).Msg("failed to generate token")
			return c.JSON(http.StatusInternalServerError, utils.ErrorBody("failed to generate token"))
		}

		return c.JSON(http.StatusCreated, domain.AuthResponse{
			Token:   token,
			Student: *student,
		})
	}
}

// GetCurrentStudent godoc
// @Summary Get current student profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Student
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/me [get]
func GetCurrentStudent(students StudentStore, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := currentStudent(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, utils.ErrorBody(utils.ErrValueConversion.Error()))
		}

		user, err := students.GetStudentByID(c.Request().Context(), userID)
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, utils.ErrorBody("student not found"))
		}
		if err != nil {
			log.Error().Err(err).Int("student_id", userID).Msg("failed to fetch student")
			return c.JSON(http.StatusInternalServerError, utils.ErrorBody("failed to fetch student"))
		}

		user.PasswordHash = ""

		return c.JSON(http.StatusOK, user)
	}
}

// GetProgress godoc
// @Summary Get academic progress
// @Description Passed and registered credits with the credit limit for this term
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.AcademicProgress
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /users/me/progress [get]
func GetProgress(svc *planner.Service, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := currentStudent(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, utils.ErrorBody(utils.ErrValueConversion.Error()))
		}

		progress, err := svc.Progress(c.Request().Context(), userID)
		if err != nil {
			return plannerError(c, log, err, "failed to load progress")
		}

		return c.JSON(http.StatusOK, progress)
	}
}
