// internal/api/v2/ads.go
package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/koreality/koreality-go/internal/datastore"
	"github.com/koreality/koreality-go/internal/errors"
)

// initAdRoutes registers advertisement endpoints
func (c *Controller) initAdRoutes() {
	c.Group.GET("/ads", c.GetAdvertisements)
	c.Group.POST("/ads/:id/view", c.RecordAdView)
	c.Group.POST("/ads/:id/click", c.RecordAdClick)

	c.Group.GET("/ads/carousel", c.GetCarousel)
	c.Group.POST("/ads/carousel/next", c.CarouselNext)
	c.Group.POST("/ads/carousel/previous", c.CarouselPrevious)
	c.Group.POST("/ads/carousel/click", c.CarouselClick)
}

// GetAdvertisements returns the active advertisements ordered by priority.
// Active-window filtering already happened in the query layer.
func (c *Controller) GetAdvertisements(ctx echo.Context) error {
	ads, err := c.DS.GetActiveAdvertisements(ctx.Request().Context())
	if err != nil {
		return c.HandleError(ctx, err, "Failed to get advertisements", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, ads)
}

// RecordAdView increments an ad's view counter. Telemetry is fire-and-forget:
// failures are logged and the response is 204 regardless, so a telemetry
// problem can never surface in the UI.
func (c *Controller) RecordAdView(ctx echo.Context) error {
	return c.recordAdTelemetry(ctx, "view", c.DS.IncrementAdView)
}

// RecordAdClick increments an ad's click counter with the same semantics.
func (c *Controller) RecordAdClick(ctx echo.Context) error {
	return c.recordAdTelemetry(ctx, "click", c.DS.IncrementAdClick)
}

func (c *Controller) recordAdTelemetry(ctx echo.Context, kind string,
	record func(ctx context.Context, adID string) error) error {

	adID := ctx.Param("id")
	outcome := "ok"
	if err := record(ctx.Request().Context(), adID); err != nil {
		outcome = "error"
		if c.apiLogger != nil {
			c.apiLogger.Warn("ad telemetry failed", "kind", kind, "ad_id", adID, "error", err)
		}
	}
	if c.metrics != nil {
		c.metrics.AdTelemetry.WithLabelValues(kind, outcome).Inc()
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CarouselResponse is the server-maintained carousel state: the displayed ad,
// its position and the carousel size.
type CarouselResponse struct {
	Ad    *datastore.Advertisement `json:"ad"`
	Index int                      `json:"index"`
	Count int                      `json:"count"`
}

// requireCarousel short-circuits carousel handlers when no rotator is wired.
func (c *Controller) requireCarousel(ctx echo.Context) error {
	if c.Ads == nil {
		return c.HandleError(ctx, errors.Newf("ad carousel is not running").
			Category(errors.CategoryTelemetry).
			Component("api").
			Build(), "Ad carousel unavailable", http.StatusServiceUnavailable)
	}
	return nil
}

func (c *Controller) carouselState() CarouselResponse {
	resp := CarouselResponse{Index: c.Ads.Index(), Count: c.Ads.Len()}
	if ad, ok := c.Ads.Current(); ok {
		resp.Ad = &ad
	}
	return resp
}

// GetCarousel returns the currently displayed ad and carousel position.
func (c *Controller) GetCarousel(ctx echo.Context) error {
	if err := c.requireCarousel(ctx); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, c.carouselState())
}

// CarouselNext advances the carousel one step with wraparound.
func (c *Controller) CarouselNext(ctx echo.Context) error {
	if err := c.requireCarousel(ctx); err != nil {
		return err
	}
	c.Ads.Next()
	return ctx.JSON(http.StatusOK, c.carouselState())
}

// CarouselPrevious steps the carousel back one step with wraparound.
func (c *Controller) CarouselPrevious(ctx echo.Context) error {
	if err := c.requireCarousel(ctx); err != nil {
		return err
	}
	c.Ads.Previous()
	return ctx.JSON(http.StatusOK, c.carouselState())
}

// CarouselClick records a click on the displayed ad and returns the link URL
// for the client to open, empty when the ad carries none.
func (c *Controller) CarouselClick(ctx echo.Context) error {
	if err := c.requireCarousel(ctx); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, map[string]string{"link_url": c.Ads.Click()})
}
