package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Freeeeeet/live_lessons/internal/app"
	"github.com/Freeeeeet/live_lessons/internal/service"
)

var (
	errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errForbidden    = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errInvalidID    = echo.NewHTTPError(http.StatusBadRequest, "invalid id")
)

// newHTTPErrorHandler переводит ошибки сервисов в JSON ответы.
// Ошибки 5xx отправляются в reporter.
func newHTTPErrorHandler(reporter app.Reporter, logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := errorResponse(err)
		if code >= http.StatusInternalServerError {
			reporter.Report(err, map[string]interface{}{
				"method":     c.Request().Method,
				"path":       c.Path(),
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
			})
			if c.Echo().Debug {
				body = echo.Map{"error": err.Error()}
			}
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, body)
		}
		if err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
	}
}

func errorResponse(err error) (int, interface{}) {
	var (
		httpErr    *echo.HTTPError
		fieldErrs  validator.ValidationErrors
		validErr   *service.ValidationError
		storageErr *service.StorageError
	)

	switch {
	case errors.As(err, &httpErr):
		if herr, ok := httpErr.Internal.(*echo.HTTPError); ok {
			httpErr = herr
		}
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, echo.Map{"error": msg}
		}
		return httpErr.Code, httpErr.Message
	case errors.As(err, &fieldErrs):
		fields := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[fe.Field()] = fe.Tag()
		}
		return http.StatusBadRequest, echo.Map{"error": "invalid request", "fields": fields}
	case errors.As(err, &validErr):
		body := echo.Map{"error": validErr.Message}
		if len(validErr.Fields) > 0 {
			body["fields"] = validErr.Fields
		}
		return http.StatusBadRequest, body
	case errors.Is(err, service.ErrLessonNotFound),
		errors.Is(err, service.ErrCourseNotFound),
		errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, echo.Map{"error": err.Error()}
	case errors.As(err, &storageErr):
		// Текст ошибки хранилища отдаётся без изменений
		return http.StatusInternalServerError, echo.Map{"error": storageErr.Error()}
	default:
		return http.StatusInternalServerError, echo.Map{"error": http.StatusText(http.StatusInternalServerError)}
	}
}
