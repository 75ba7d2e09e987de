// Package maprender computes the marker set, popup content and viewport for
// the interactive venue map. The heavy lifting of drawing is delegated to the
// client-side map widget; this package produces everything the widget needs.
package maprender

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/koreality/koreality-go/internal/conf"
	"github.com/koreality/koreality-go/internal/logging"
	"github.com/koreality/koreality-go/internal/mapper"
)

// Marker is one renderable map pin.
type Marker struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	IconURI        string  `json:"icon_uri"`
	InfoWindowHTML string  `json:"info_window_html"`
}

// Viewport describes where the map should look. When Fit is false the widget
// keeps its previous viewport.
type Viewport struct {
	Fit    bool    `json:"fit"`
	Bounds *Bounds `json:"bounds,omitempty"`
}

// Renderer maintains the marker set for a location list plus an optional
// idol-name filter. Markers are rebuilt from scratch on every change; there
// is no incremental diffing. At most one info-window is open at any time.
type Renderer struct {
	mu        sync.Mutex
	locations []mapper.MapLocation
	filter    string
	markers   []Marker
	openID    string // id of the marker whose info-window is open, "" for none
	log       *slog.Logger
}

// NewRenderer creates a renderer with an empty marker set.
func NewRenderer() *Renderer {
	log := logging.ForService("maprender")
	if log == nil {
		log = slog.Default().With("service", "maprender")
	}
	return &Renderer{log: log}
}

// SetLocations replaces the location set and rebuilds all markers.
func (r *Renderer) SetLocations(locations []mapper.MapLocation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locations = locations
	r.rebuild()
}

// SetFilter replaces the idol-name filter and rebuilds all markers.
func (r *Renderer) SetFilter(idolName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filter = idolName
	r.rebuild()
}

// rebuild discards all markers and reconstructs them from the current
// location set and filter. Locations with unparsable coordinates are
// rejected rather than placed at a default position. Callers hold r.mu.
func (r *Renderer) rebuild() {
	r.markers = r.markers[:0]
	r.openID = ""

	for i := range r.locations {
		location := &r.locations[i]
		if !location.HasValidCoordinates() {
			r.log.Warn("skipping location with invalid coordinates",
				"location_id", location.ID, "name", location.Name)
			continue
		}
		if r.filter != "" && !matchesIdolFilter(location, r.filter) {
			continue
		}

		content, err := InfoWindowHTML(location)
		if err != nil {
			r.log.Error("rendering info window failed", "location_id", location.ID, "error", err)
			content = ""
		}

		r.markers = append(r.markers, Marker{
			ID:             location.ID,
			Title:          location.Name,
			Latitude:       location.Latitude,
			Longitude:      location.Longitude,
			IconURI:        MarkerIconDataURI(location.MarkerColor, location.Icon),
			InfoWindowHTML: content,
		})
	}
}

// matchesIdolFilter reports whether any upcoming-event idol name contains the
// filter, case-insensitively. A location without upcoming events never
// matches an active filter.
func matchesIdolFilter(location *mapper.MapLocation, filter string) bool {
	if len(location.UpcomingEvents) == 0 {
		return false
	}
	needle := strings.ToLower(filter)
	for i := range location.UpcomingEvents {
		if strings.Contains(strings.ToLower(location.UpcomingEvents[i].IdolName), needle) {
			return true
		}
	}
	return false
}

// Markers returns a snapshot of the current marker set.
func (r *Renderer) Markers() []Marker {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Marker, len(r.markers))
	copy(out, r.markers)
	return out
}

// OpenInfoWindow opens the info-window of the given marker, closing any
// currently open one first. Returns false for a marker id not in the current
// set.
func (r *Renderer) OpenInfoWindow(markerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.markers {
		if r.markers[i].ID == markerID {
			r.openID = markerID
			return true
		}
	}
	return false
}

// CloseInfoWindow closes whatever info-window is open. Used for clicks on the
// map background.
func (r *Renderer) CloseInfoWindow() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.openID = ""
}

// OpenMarkerID returns the id of the marker whose info-window is open, or an
// empty string when none is.
func (r *Renderer) OpenMarkerID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.openID
}

// Viewport returns the bounds covering every current marker. For an empty
// marker set Fit is false and the widget keeps its previous viewport.
func (r *Renderer) Viewport() Viewport {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.markers) == 0 {
		return Viewport{Fit: false}
	}

	bounds := NewBounds()
	for i := range r.markers {
		bounds.Extend(r.markers[i].Latitude, r.markers[i].Longitude)
	}
	return Viewport{Fit: true, Bounds: bounds}
}

// Config is the initialization payload for the client-side map widget.
type Config struct {
	CenterLat       float64 `json:"center_lat"`
	CenterLng       float64 `json:"center_lng"`
	Zoom            int     `json:"zoom"`
	SuppressPOI     bool    `json:"suppress_poi"`
	DisableControls bool    `json:"disable_controls"`
	LoaderTag       string  `json:"loader_tag"`
}

// ConfigFromSettings builds the widget config from service settings.
func ConfigFromSettings(settings *conf.MapSettings) Config {
	return Config{
		CenterLat:       settings.DefaultLat,
		CenterLng:       settings.DefaultLng,
		Zoom:            settings.DefaultZoom,
		SuppressPOI:     settings.SuppressPOI,
		DisableControls: settings.DisableControls,
		LoaderTag:       LoaderTag(settings.APIKey),
	}
}

// LoaderTag returns the script tag that loads the map widget. The page embeds
// it at most once per lifetime; clients must check for a pre-existing widget
// global before injecting it again.
func LoaderTag(apiKey string) string {
	return fmt.Sprintf(`<script src="https://maps.googleapis.com/maps/api/js?key=%s" async defer></script>`, apiKey)
}
