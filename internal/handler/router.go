package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/sumire/bugs/internal/service"
)

const healthPath = "/health"

// RouterConfig holds the HTTP-facing settings for NewRouter.
type RouterConfig struct {
	BasePath       string
	AllowedOrigins []string
	RateLimitRPS   int
	RateLimitBurst int
}

// NewRouter builds the echo instance serving the bug API.
func NewRouter(cfg RouterConfig, bugs *service.BugService, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = HTTPErrorHandler
	e.Validator = NewAppValidator()

	e.Use(middleware.RequestID())
	e.Use(RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.AllowedOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderAccept, echo.HeaderContentType},
		ExposeHeaders: []string{echo.HeaderXRequestID},
		MaxAge:        300,
	}))
	if cfg.RateLimitRPS > 0 {
		e.Use(RateLimit(rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)))
	}

	e.GET(healthPath, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	NewBugHandler(bugs).Register(e.Group(cfg.BasePath))

	return e
}
