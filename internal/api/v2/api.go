// internal/api/v2/api.go
package api

import (
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/koreality/koreality-go/internal/ads"
	"github.com/koreality/koreality-go/internal/aggregator"
	"github.com/koreality/koreality-go/internal/conf"
	"github.com/koreality/koreality-go/internal/datastore"
	"github.com/koreality/koreality-go/internal/logging"
	"github.com/koreality/koreality-go/internal/observability"
	"github.com/koreality/koreality-go/internal/security"
)

// Controller manages the API routes and handlers
type Controller struct {
	Echo       *echo.Echo
	Group      *echo.Group
	DS         datastore.Interface
	Settings   *conf.Settings
	Aggregator *aggregator.Aggregator
	Ads        *ads.Rotator
	OAuth      *security.OAuth2Server
	Cookies    *security.CookieStore

	logger    *log.Logger
	apiLogger *slog.Logger
	metrics   *observability.Metrics
}

// New creates a new API controller and registers all routes under /api/v2.
func New(e *echo.Echo, ds datastore.Interface, settings *conf.Settings,
	metrics *observability.Metrics, rotator *ads.Rotator, oauth *security.OAuth2Server) *Controller {

	c := &Controller{
		Echo:       e,
		DS:         ds,
		Settings:   settings,
		Aggregator: aggregator.New(ds),
		Ads:        rotator,
		OAuth:      oauth,
		logger:     log.New(log.Writer(), "api/v2: ", log.LstdFlags),
		apiLogger:  logging.ForService("api"),
		metrics:    metrics,
	}

	if oauth != nil {
		c.Cookies = security.NewCookieStore(settings.Security.SessionSecret)
	}

	e.Use(middleware.Recover())
	if settings.WebServer.Debug {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{Level: 5}))
	if c.metrics != nil {
		e.Use(c.metricsMiddleware())
		e.GET("/metrics", c.metrics.Handler())
	}

	c.Group = e.Group("/api/v2")

	c.initHealthRoutes()
	c.initLocationRoutes()
	c.initIdolRoutes()
	c.initEventRoutes()
	c.initBirthdayRoutes()
	c.initAdRoutes()
	c.initMapRoutes()
	c.initMediaRoutes()
	c.initAuthRoutes()

	return c
}

// ErrorResponse is the JSON error envelope returned by all handlers.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	Code          int    `json:"code"`
	CorrelationID string `json:"correlation_id"`
}

// NewErrorResponse builds an error envelope with a short correlation id for
// cross-referencing logs.
func NewErrorResponse(err error, message string, code int) *ErrorResponse {
	resp := &ErrorResponse{
		Message:       message,
		Code:          code,
		CorrelationID: uuid.NewString()[:8],
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}

// HandleError logs an error and writes the JSON error envelope.
func (c *Controller) HandleError(ctx echo.Context, err error, message string, code int) error {
	errorResp := NewErrorResponse(err, message, code)

	c.logger.Printf("API Error [%s] from %s: %s: %v",
		errorResp.CorrelationID, ctx.RealIP(), message, err)

	if c.apiLogger != nil {
		var errorStr string
		if err != nil {
			errorStr = err.Error()
		} else {
			errorStr = message
		}
		c.apiLogger.Error("API Error",
			"correlation_id", errorResp.CorrelationID,
			"message", message,
			"error", errorStr,
			"code", code,
			"path", ctx.Request().URL.Path,
			"method", ctx.Request().Method,
			"ip", ctx.RealIP(),
		)
	}

	return ctx.JSON(code, errorResp)
}

// Debug logs debug messages when debug mode is enabled
func (c *Controller) Debug(format string, v ...any) {
	if c.Settings.WebServer.Debug {
		c.logger.Printf("[DEBUG] "+format, v...)
	}
}

// metricsMiddleware records request counts and latency per route.
func (c *Controller) metricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)

			status := ctx.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}

			path := ctx.Path()
			c.metrics.HTTPRequests.WithLabelValues(ctx.Request().Method, path, http.StatusText(status)).Inc()
			c.metrics.HTTPDuration.WithLabelValues(ctx.Request().Method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
