// internal/api/v2/birthdays.go
package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/koreality/koreality-go/internal/birthday"
)

// initBirthdayRoutes registers the birthday countdown endpoint
func (c *Controller) initBirthdayRoutes() {
	c.Group.GET("/birthdays", c.GetUpcomingBirthdays)
}

// GetUpcomingBirthdays returns active idols annotated with their next
// birthday occurrence relative to the optional date query parameter
// (YYYY-MM-DD, default today). A malformed date degrades to today rather
// than failing the request.
func (c *Controller) GetUpcomingBirthdays(ctx echo.Context) error {
	ref := time.Now()
	if raw := ctx.QueryParam("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.Debug("malformed birthday reference date %q, using today", raw)
		} else {
			ref = parsed
		}
	}

	idols, err := c.DS.GetActiveIdols(ctx.Request().Context())
	if err != nil {
		return c.HandleError(ctx, err, "Failed to get idols", http.StatusInternalServerError)
	}

	return ctx.JSON(http.StatusOK, birthday.Compute(ref, idols))
}
