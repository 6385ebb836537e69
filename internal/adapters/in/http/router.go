package http

import (
	"context"
	"log/slog"
	"net/http"

	"logistics/api"
	"logistics/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// HealthChecker reports whether the service's dependencies are reachable.
type HealthChecker interface {
	Handle(ctx context.Context) error
}

type RouterConfig struct {
	// JWTSecret signs bearer tokens for the allocation routes. Empty disables the check.
	JWTSecret []byte
	Logger    *slog.Logger
}

// NewRouter wires the API server, request validation, health check and Swagger UI
// into an echo instance.
func NewRouter(ctx context.Context, server *Server, health HealthChecker, cfg RouterConfig) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx, api.OpenAPI)
	if err != nil {
		return nil, err
	}

	validator, err := RequestValidator(doc, BearerAuthenticator(cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger.With("component", "http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String(),
			}
			if v.Error != nil {
				logger.LogAttrs(c.Request().Context(), slog.LevelError, "Request failed",
					slog.Group("request", attrs...), slog.String("error", v.Error.Error()))
				return nil
			}
			logger.InfoContext(c.Request().Context(), "Request handled", attrs...)
			return nil
		},
	}))
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		if err := health.Handle(c.Request().Context()); err != nil {
			logger.WarnContext(c.Request().Context(), "Health check failed", "error", err)
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, server)

	return e, nil
}
