package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RequestLogger logs each HTTP request with structured fields.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// Run the error handler now so the logged status is the one sent.
				c.Error(err)
			}

			logger.InfoContext(c.Request().Context(), "http request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)

			return nil
		}
	}
}

// RateLimit rejects requests with 429 once limiter runs dry. Health checks
// are never limited.
func RateLimit(limiter *rate.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().URL.Path == healthPath {
				return next(c)
			}

			if !limiter.Allow() {
				slog.Warn("rate limit exceeded",
					"ip", c.RealIP(),
					"path", c.Request().URL.Path,
				)
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			}

			return next(c)
		}
	}
}
