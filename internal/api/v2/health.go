// internal/api/v2/health.go
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/koreality/koreality-go/internal/buildinfo"
)

// initHealthRoutes registers the liveness endpoint
func (c *Controller) initHealthRoutes() {
	c.Group.GET("/health", c.GetHealth)
}

// HealthResponse reports service liveness plus build metadata.
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
}

// GetHealth returns 200 whenever the server is up; it performs no dependency
// probes.
func (c *Controller) GetHealth(ctx echo.Context) error {
	build := buildinfo.Get()
	return ctx.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   build.Version,
		BuildDate: build.BuildDate,
	})
}
