// internal/api/v2/idols.go
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/koreality/koreality-go/internal/errors"
)

// initIdolRoutes registers idol and band endpoints
func (c *Controller) initIdolRoutes() {
	c.Group.GET("/idols", c.GetIdols)
	c.Group.GET("/idols/solo", c.GetSoloArtists)
	c.Group.GET("/idols/:id", c.GetIdol)
	c.Group.GET("/bands", c.GetBands)
	c.Group.GET("/bands/:id", c.GetBand)
	c.Group.GET("/bands/:id/members", c.GetBandMembers)
}

// GetIdols returns all active idols ordered by birthday.
func (c *Controller) GetIdols(ctx echo.Context) error {
	idols, err := c.DS.GetActiveIdols(ctx.Request().Context())
	if err != nil {
		return c.HandleError(ctx, err, "Failed to get idols", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, idols)
}

// GetSoloArtists returns idols performing without a band.
func (c *Controller) GetSoloArtists(ctx echo.Context) error {
	idols, err := c.DS.GetSoloArtists(ctx.Request().Context())
	if err != nil {
		return c.HandleError(ctx, err, "Failed to get solo artists", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, idols)
}

// GetIdol returns one idol by id. A missing record is an explicit 404.
func (c *Controller) GetIdol(ctx echo.Context) error {
	idol, err := c.DS.GetIdol(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.IsNotFound(err) {
			return c.HandleError(ctx, err, "Idol not found", http.StatusNotFound)
		}
		return c.HandleError(ctx, err, "Failed to get idol", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, idol)
}

// GetBand returns one band by id. A missing record is an explicit 404.
func (c *Controller) GetBand(ctx echo.Context) error {
	band, err := c.DS.GetBand(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.IsNotFound(err) {
			return c.HandleError(ctx, err, "Band not found", http.StatusNotFound)
		}
		return c.HandleError(ctx, err, "Failed to get band", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, band)
}

// GetBands returns all active bands.
func (c *Controller) GetBands(ctx echo.Context) error {
	bands, err := c.DS.GetBands(ctx.Request().Context())
	if err != nil {
		return c.HandleError(ctx, err, "Failed to get bands", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, bands)
}

// GetBandMembers returns the idols belonging to a band.
func (c *Controller) GetBandMembers(ctx echo.Context) error {
	bandID := ctx.Param("id")
	if bandID == "" {
		return c.HandleError(ctx, errors.Newf("band id is required").
			Category(errors.CategoryValidation).
			Component("api").
			Build(), "Missing band id", http.StatusBadRequest)
	}

	members, err := c.DS.GetBandMembers(ctx.Request().Context(), bandID)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to get band members", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, members)
}
