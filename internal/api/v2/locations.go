// internal/api/v2/locations.go
package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/koreality/koreality-go/internal/mapper"
)

// initLocationRoutes registers the location aggregation endpoints
func (c *Controller) initLocationRoutes() {
	c.Group.GET("/locations", c.GetLocations)
	c.Group.GET("/locations/categories", c.GetCategories)
}

// GetLocations returns view-model locations scoped by the optional idol_id or
// band_id query parameter. Without a scope every verified location is
// returned with an empty event list. The aggregator never fails; an
// aggregation problem surfaces as an empty list, matching the client's
// degrade-to-empty behavior.
func (c *Controller) GetLocations(ctx echo.Context) error {
	idolID := ctx.QueryParam("idol_id")
	bandID := ctx.QueryParam("band_id")

	mode := "all"
	start := time.Now()

	var locations []mapper.MapLocation
	switch {
	case idolID != "":
		mode = "idol"
		locations = c.Aggregator.LocationsByIdol(ctx.Request().Context(), idolID)
	case bandID != "":
		mode = "band"
		locations = c.Aggregator.LocationsByBand(ctx.Request().Context(), bandID)
	default:
		locations = c.Aggregator.LocationsForMap(ctx.Request().Context())
	}

	if c.metrics != nil {
		outcome := "ok"
		if len(locations) == 0 {
			outcome = "empty"
		}
		c.metrics.AggregatorQueries.WithLabelValues(mode, outcome).Inc()
		c.metrics.AggregatorDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	}

	return ctx.JSON(http.StatusOK, locations)
}

// GetCategories returns the fixed venue category table for legend rendering.
func (c *Controller) GetCategories(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, mapper.Categories())
}
