// internal/api/v2/media.go
package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/koreality/koreality-go/internal/errors"
)

// maxPlaceholderDimension bounds generated placeholder images.
const maxPlaceholderDimension = 2000

// initMediaRoutes registers media endpoints
func (c *Controller) initMediaRoutes() {
	c.Group.GET("/placeholder/:width/:height", c.ServePlaceholder)
}

// ServePlaceholder generates a gray SVG placeholder of the requested size,
// used as broken-image fallback by clients.
func (c *Controller) ServePlaceholder(ctx echo.Context) error {
	width, err := parseDimension(ctx.Param("width"))
	if err != nil {
		return c.HandleError(ctx, err, "Invalid width", http.StatusBadRequest)
	}
	height, err := parseDimension(ctx.Param("height"))
	if err != nil {
		return c.HandleError(ctx, err, "Invalid height", http.StatusBadRequest)
	}

	svg := fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
  <rect width="100%%" height="100%%" fill="#cccccc"/>
  <text x="50%%" y="50%%" text-anchor="middle" dy=".3em" fill="#666666" font-family="Arial" font-size="14">%dx%d</text>
</svg>`, width, height, width, height)

	return ctx.Blob(http.StatusOK, "image/svg+xml", []byte(svg))
}

func parseDimension(raw string) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 || value > maxPlaceholderDimension {
		return 0, errors.Newf("dimension must be between 1 and %d: %q", maxPlaceholderDimension, raw).
			Category(errors.CategoryValidation).
			Component("api").
			Build()
	}
	return value, nil
}
