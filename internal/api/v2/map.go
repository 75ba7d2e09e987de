// internal/api/v2/map.go
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/koreality/koreality-go/internal/mapper"
	"github.com/koreality/koreality-go/internal/maprender"
)

// initMapRoutes registers the map rendering endpoints
func (c *Controller) initMapRoutes() {
	c.Group.GET("/map/markers", c.GetMapMarkers)
	c.Group.GET("/map/config", c.GetMapConfig)
}

// MarkersResponse carries the rebuilt marker set and the viewport that bounds
// it. An empty marker set tells the widget to keep its previous viewport.
type MarkersResponse struct {
	Markers  []maprender.Marker `json:"markers"`
	Viewport maprender.Viewport `json:"viewport"`
}

// GetMapMarkers aggregates locations by the same scope parameters as
// /locations, applies the optional idol-name filter and returns the complete
// marker set. The set is rebuilt from scratch on every call; the widget
// replaces all of its markers with the response.
func (c *Controller) GetMapMarkers(ctx echo.Context) error {
	idolID := ctx.QueryParam("idol_id")
	bandID := ctx.QueryParam("band_id")
	idolFilter := ctx.QueryParam("idol_name")

	var locations []mapper.MapLocation
	switch {
	case idolID != "":
		locations = c.Aggregator.LocationsByIdol(ctx.Request().Context(), idolID)
	case bandID != "":
		locations = c.Aggregator.LocationsByBand(ctx.Request().Context(), bandID)
	default:
		locations = c.Aggregator.LocationsForMap(ctx.Request().Context())
	}

	renderer := maprender.NewRenderer()
	renderer.SetLocations(locations)
	if idolFilter != "" {
		renderer.SetFilter(idolFilter)
	}

	return ctx.JSON(http.StatusOK, MarkersResponse{
		Markers:  renderer.Markers(),
		Viewport: renderer.Viewport(),
	})
}

// GetMapConfig returns the widget initialization payload: center, zoom,
// chrome flags and the loader script tag.
func (c *Controller) GetMapConfig(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, maprender.ConfigFromSettings(&c.Settings.Map))
}
