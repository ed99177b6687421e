package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	deliverycontext "agriconnect/internal/delivery/context"
	"agriconnect/internal/delivery/http/response"
	domainerrors "agriconnect/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		m.write(c, appErr.HTTPCode(), appErr.Message(), appErr.ErrorCode(), appErr.Details())

		return
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		failed := domainerrors.ErrValidationFailed
		m.write(c, failed.HTTPCode(), failed.Message(), failed.ErrorCode(), validationErrs.Error())

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg := fmt.Sprint(httpErr.Message)
		m.write(c, httpErr.Code, msg, "HTTP_ERROR", msg)

		return
	}

	deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	internal := domainerrors.ErrInternalError
	m.write(c, internal.HTTPCode(), internal.Message(), internal.ErrorCode(), "")
}

func (m *ErrorMiddleware) write(c echo.Context, status int, message, code, details string) {
	var err error
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, response.Response{
			Success: false,
			Code:    status,
			Message: message,
			Error: &response.ErrorInfo{
				Code:    code,
				Details: details,
			},
		})
	}
	if err != nil {
		m.logger.Error("Failed to write error response", slog.Any("error", err))
	}
}
