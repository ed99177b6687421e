package middleware

import (
	"log/slog"
	"time"

	"agriconnect/config"
	deliverycontext "agriconnect/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// LoggerMiddleware writes one debug record per request with the caller and outcome.
// It is silent unless env.debug is set.
type LoggerMiddleware struct {
	logger *slog.Logger
	debug  bool
}

// NewLoggerMiddleware creates a new logger middleware
func NewLoggerMiddleware(logger *slog.Logger, config *config.Config) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger: logger,
		debug:  config.Env.Debug,
	}
}

// Handle processes request logging
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	if !m.debug {
		return next
	}

	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		m.logRequest(c, start, err)

		return err
	}
}

func (m *LoggerMiddleware) logRequest(c echo.Context, start time.Time, err error) {
	req := c.Request()
	res := c.Response()

	fields := []slog.Attr{
		slog.String("method", req.Method),
		slog.String("route", c.Path()),
		slog.String("uri", req.URL.Path),
		slog.Int("status", res.Status),
		slog.Duration("latency", time.Since(start)),
		slog.String("remote_ip", c.RealIP()),
	}
	if principal, ok := deliverycontext.GetPrincipal(c); ok {
		fields = append(fields,
			slog.String("username", principal.Username),
			slog.String("role", principal.Role.String()),
		)
	}
	if len(req.URL.RawQuery) > 0 {
		fields = append(fields, slog.String("query", req.URL.RawQuery))
	}
	if err != nil {
		fields = append(fields, slog.Any("error", err))
	}

	// the error handler has not run yet, so a returned error decides the level
	logLevel := slog.LevelDebug
	switch {
	case res.Status >= 500:
		logLevel = slog.LevelError
	case res.Status >= 400 || err != nil:
		logLevel = slog.LevelWarn
	}

	// request-scoped logger already carries request_id
	logger := deliverycontext.GetLoggerOrDefault(req.Context(), m.logger)
	logger.LogAttrs(req.Context(), logLevel, "HTTP request", fields...)
}
