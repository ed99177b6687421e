package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"agriconnect/config"
	deliverycontext "agriconnect/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware_GeneratesAndPropagates(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	e := echo.New()

	var seen string
	h := NewRequestIDMiddleware(logger).Process(func(c echo.Context) error {
		seen = deliverycontext.GetRequestIDFromContext(c.Request().Context())
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), nil).Info("inside")

		return c.NoContent(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(deliverycontext.HeaderXRequestID))
	assert.Contains(t, buf.String(), `"request_id":"`+seen+`"`)
}

func TestRequestIDMiddleware_ReusesHeader(t *testing.T) {
	e := echo.New()
	h := NewRequestIDMiddleware(slog.Default()).Process(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "abc-123")
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))

	assert.Equal(t, "abc-123", rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestLoggerMiddleware_OnlyLogsInDebug(t *testing.T) {
	for _, debug := range []bool{false, true} {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		cfg := &config.Config{}
		cfg.Env.Debug = debug

		e := echo.New()
		h := NewLoggerMiddleware(logger, cfg).Handle(func(c echo.Context) error {
			return c.NoContent(http.StatusTeapot)
		})
		require.NoError(t, h(e.NewContext(httptest.NewRequest(http.MethodGet, "/x", nil), httptest.NewRecorder())))

		if debug {
			assert.Contains(t, buf.String(), `"status":418`)
			assert.Contains(t, buf.String(), `"level":"WARN"`)
		} else {
			assert.Empty(t, buf.String())
		}
	}
}
