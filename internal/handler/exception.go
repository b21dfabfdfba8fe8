package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"portal/internal/domain"
	"portal/internal/storage"
	"portal/internal/utils"
)

var allowedAttachmentTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
}

func SetupExceptionRoutes(e *echo.Echo, exceptions ExceptionStore, files storage.Storage, maxUpload int64, authMiddleware echo.MiddlewareFunc, log zerolog.Logger) {
	g := e.Group("/api/exceptions", authMiddleware)

	g.GET("", GetMyExceptionRequests(exceptions, log))
	g.POST("", CreateExceptionRequest(exceptions, files, maxUpload, log))
}

// GetMyExceptionRequests godoc
// @Summary List exception requests of the current student
// @Tags exceptions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.ExceptionRequest
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /exceptions [get]
func GetMyExceptionRequests(exceptions ExceptionStore, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		studentID, ok := currentStudent(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, utils.ErrorBody("invalid user context"))
		}

		list, err := exceptions.GetStudentExceptionRequests(c.Request().Context(), studentID)
		if err != nil {
			log.Error().Err(err).Int("student_id", studentID).Msg("failed to fetch exception requests")
			return c.JSON(http.StatusInternalServerError, utils.ErrorBody("failed to fetch exception requests"))
		}
		if list == nil {
			list = []domain.ExceptionRequest{}
		}

		return c.JSON(http.StatusOK, list)
	}
}

// CreateExceptionRequest godoc
// @Summary File an exception request
// @Description Multipart form with an optional PDF/PNG/JPEG attachment.
// @Tags exceptions
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param section_id formData int true "Section ID"
// @Param type formData string true "OVERLOAD, PREREQUISITE_WAIVER or TIME_CONFLICT"
// @Param reason formData string true "Reason"
// @Param attachment formData file false "Supporting document"
// @Success 201 {object} domain.ExceptionRequest
// @Failure 400 {object} map[string]string
// @Failure 413 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /exceptions [post]
func CreateExceptionRequest(exceptions ExceptionStore, files storage.Storage, maxUpload int64, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		studentID, ok := currentStudent(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, utils.ErrorBody("invalid user context"))
		}

		var req domain.CreateExceptionRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, utils.ErrorBody("invalid request"))
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, utils.ErrorBody(err.Error()))
		}

		ctx := c.Request().Context()

		var attachmentKey *string
		fh, err := c.FormFile("attachment")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			return c.JSON(http.StatusBadRequest, utils.ErrorBody("invalid attachment"))
		default:
			if files == nil {
				return c.JSON(http.StatusServiceUnavailable, utils.ErrorBody("attachments are not enabled"))
			}
			if maxUpload > 0 && fh.Size > maxUpload {
				return c.JSON(http.StatusRequestEntityTooLarge, utils.ErrorBody("attachment too large"))
			}
			contentType := fh.Header.Get("Content-Type")
			if !allowedAttachmentTypes[contentType] {
				return c.JSON(http.StatusBadRequest, utils.ErrorBody("attachment must be PDF, PNG or JPEG"))
			}

			src, err := fh.Open()
			if err != nil {
				return c.JSON(http.StatusBadRequest, utils.ErrorBody("invalid attachment"))
			}
			defer src.Close()

			key := storage.AttachmentKey(studentID, fh.Filename)
			if err := files.Upload(ctx, key, src, contentType); err != nil {
				log.Error().Err(err).Str("key", key).Msg("attachment upload failed")
				return c.JSON(http.StatusInternalServerError, utils.ErrorBody("failed to store attachment"))
			}
			attachmentKey = &key
		}

		er, err := exceptions.CreateExceptionRequest(ctx, studentID, &req, attachmentKey)
		if err != nil {
			log.Error().Err(err).Int("student_id", studentID).Msg("failed to create exception request")
			if attachmentKey != nil {
				if derr := files.Delete(ctx, *attachmentKey); derr != nil {
					log.Warn().Err(derr).Str("key", *attachmentKey).Msg("orphaned attachment")
				}
			}
			return c.JSON(http.StatusInternalServerError, utils.ErrorBody("failed to create exception request"))
		}

		return c.JSON(http.StatusCreated, er)
	}
}
