// internal/api/v2/events.go
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/koreality/koreality-go/internal/errors"
)

// initEventRoutes registers event endpoints
func (c *Controller) initEventRoutes() {
	c.Group.GET("/events", c.GetEvents)
	c.Group.GET("/events/:id", c.GetEvent)
}

// GetEvents returns all upcoming events with location and idol attached.
func (c *Controller) GetEvents(ctx echo.Context) error {
	events, err := c.DS.GetUpcomingEvents(ctx.Request().Context())
	if err != nil {
		return c.HandleError(ctx, err, "Failed to get events", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, events)
}

// GetEvent returns one event by id. A missing record is an explicit 404
// not-found state, never an internal error.
func (c *Controller) GetEvent(ctx echo.Context) error {
	id := ctx.Param("id")

	event, err := c.DS.GetEvent(ctx.Request().Context(), id)
	if err != nil {
		if errors.IsNotFound(err) {
			return c.HandleError(ctx, err, "Event not found", http.StatusNotFound)
		}
		return c.HandleError(ctx, err, "Failed to get event", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, event)
}
