package maprender

import (
	"fmt"
	"net/url"
)

// Marker icon geometry, shared with the client so the anchor sits at the
// pin tip.
const (
	IconWidth   = 32
	IconHeight  = 40
	IconAnchorX = 16
	IconAnchorY = 40
)

const markerSVGTemplate = `<svg width="32" height="40" viewBox="0 0 32 40" xmlns="http://www.w3.org/2000/svg">
  <path d="M16 0C7.2 0 0 7.2 0 16c0 12 16 24 16 24s16-12 16-24C32 7.2 24.8 0 16 0z" fill="%s"/>
  <circle cx="16" cy="16" r="8" fill="white"/>
  <text x="16" y="20" text-anchor="middle" font-family="Arial, sans-serif" font-size="12" font-weight="bold" fill="#333">%s</text>
</svg>`

// MarkerIconSVG renders the pin glyph for a marker: a colored drop shape with
// a white inner circle carrying the category icon.
func MarkerIconSVG(color, glyph string) string {
	return fmt.Sprintf(markerSVGTemplate, color, glyph)
}

// MarkerIconDataURI renders the pin glyph as a data URI suitable for a map
// widget's custom marker icon URL.
func MarkerIconDataURI(color, glyph string) string {
	return "data:image/svg+xml;charset=UTF-8," + url.PathEscape(MarkerIconSVG(color, glyph))
}
