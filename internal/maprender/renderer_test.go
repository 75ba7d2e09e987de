package maprender

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koreality/koreality-go/internal/conf"
	"github.com/koreality/koreality-go/internal/mapper"
)

func testLocations() []mapper.MapLocation {
	return []mapper.MapLocation{
		{
			ID: "loc-1", Name: "Cafe A", Address: "1 First St",
			Latitude: 25.03, Longitude: 121.56,
			CategoryID: "cafe", Icon: "☕", MarkerColor: "#f59e0b",
			UpcomingEvents: []mapper.EventSummary{
				{ID: "evt-1", Title: "Cup Holder Event", IdolName: "Karina", StartTime: "2025/07/17 11:00", EndTime: "2025/07/20 21:00"},
			},
		},
		{
			ID: "loc-2", Name: "Cinema B", Address: "2 Second St",
			Latitude: 25.10, Longitude: 121.40,
			CategoryID: "movie", Icon: "🎬", MarkerColor: "#6366f1",
		},
	}
}

func TestSetLocationsBuildsMarkers(t *testing.T) {
	r := NewRenderer()
	r.SetLocations(testLocations())

	markers := r.Markers()
	require.Len(t, markers, 2)
	assert.Equal(t, "loc-1", markers[0].ID)
	assert.Equal(t, "Cafe A", markers[0].Title)
	assert.True(t, strings.HasPrefix(markers[0].IconURI, "data:image/svg+xml"))
	assert.Contains(t, markers[0].InfoWindowHTML, "Cup Holder Event")
	assert.Contains(t, markers[1].InfoWindowHTML, "No upcoming events")
}

func TestRebuildSkipsInvalidCoordinates(t *testing.T) {
	locations := testLocations()
	locations[1].Latitude = math.NaN()

	r := NewRenderer()
	r.SetLocations(locations)

	markers := r.Markers()
	require.Len(t, markers, 1)
	assert.Equal(t, "loc-1", markers[0].ID)
}

func TestIdolFilter(t *testing.T) {
	r := NewRenderer()
	r.SetLocations(testLocations())

	// Case-insensitive substring match.
	r.SetFilter("kari")
	markers := r.Markers()
	require.Len(t, markers, 1)
	assert.Equal(t, "loc-1", markers[0].ID)

	// A location without upcoming events never matches an active filter.
	r.SetFilter("nobody")
	assert.Empty(t, r.Markers())

	// Clearing the filter restores all markers.
	r.SetFilter("")
	assert.Len(t, r.Markers(), 2)
}

func TestInfoWindowSingleton(t *testing.T) {
	r := NewRenderer()
	r.SetLocations(testLocations())

	assert.True(t, r.OpenInfoWindow("loc-1"))
	assert.Equal(t, "loc-1", r.OpenMarkerID())

	// Opening another window closes the first.
	assert.True(t, r.OpenInfoWindow("loc-2"))
	assert.Equal(t, "loc-2", r.OpenMarkerID())

	assert.False(t, r.OpenInfoWindow("missing"))
	assert.Equal(t, "loc-2", r.OpenMarkerID())

	r.CloseInfoWindow()
	assert.Equal(t, "", r.OpenMarkerID())
}

func TestRebuildClosesOpenInfoWindow(t *testing.T) {
	r := NewRenderer()
	r.SetLocations(testLocations())
	require.True(t, r.OpenInfoWindow("loc-1"))

	r.SetLocations(testLocations())
	assert.Equal(t, "", r.OpenMarkerID())
}

func TestViewport(t *testing.T) {
	r := NewRenderer()

	// Empty marker set keeps the previous viewport.
	vp := r.Viewport()
	assert.False(t, vp.Fit)
	assert.Nil(t, vp.Bounds)

	r.SetLocations(testLocations())
	vp = r.Viewport()
	require.True(t, vp.Fit)
	require.NotNil(t, vp.Bounds)
	assert.InDelta(t, 25.10, vp.Bounds.North, 1e-9)
	assert.InDelta(t, 25.03, vp.Bounds.South, 1e-9)
	assert.InDelta(t, 121.56, vp.Bounds.East, 1e-9)
	assert.InDelta(t, 121.40, vp.Bounds.West, 1e-9)

	lat, lng := vp.Bounds.Center()
	assert.InDelta(t, (25.10+25.03)/2, lat, 1e-9)
	assert.InDelta(t, (121.56+121.40)/2, lng, 1e-9)
}

func TestMarkerIconSVG(t *testing.T) {
	svg := MarkerIconSVG("#ef4444", "🎤")
	assert.Contains(t, svg, `width="32" height="40"`)
	assert.Contains(t, svg, `fill="#ef4444"`)
	assert.Contains(t, svg, `<circle cx="16" cy="16" r="8" fill="white"/>`)
	assert.Contains(t, svg, "🎤")

	uri := MarkerIconDataURI("#ef4444", "🎤")
	assert.True(t, strings.HasPrefix(uri, "data:image/svg+xml;charset=UTF-8,"))
	assert.NotContains(t, uri, "#", "hex color must be escaped in the data URI")
}

func TestInfoWindowHTMLEscapesContent(t *testing.T) {
	location := &mapper.MapLocation{
		ID: "loc-x", Name: "<script>alert(1)</script>",
		Address: "3 Third St", CategoryID: "cafe", MarkerColor: "#f59e0b",
	}

	html, err := InfoWindowHTML(location)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "Cafe", "badge label is title-cased")
}

func TestConfigFromSettings(t *testing.T) {
	settings := &conf.MapSettings{
		APIKey:     "test-key",
		DefaultLat: 25.0330, DefaultLng: 121.5654, DefaultZoom: 13,
		SuppressPOI: true, DisableControls: true,
	}

	cfg := ConfigFromSettings(settings)
	assert.InDelta(t, 25.0330, cfg.CenterLat, 1e-9)
	assert.Equal(t, 13, cfg.Zoom)
	assert.True(t, cfg.SuppressPOI)
	assert.Contains(t, cfg.LoaderTag, "key=test-key")
	assert.Contains(t, cfg.LoaderTag, "async defer")
}
