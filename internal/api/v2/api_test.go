package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koreality/koreality-go/internal/ads"
	"github.com/koreality/koreality-go/internal/birthday"
	"github.com/koreality/koreality-go/internal/conf"
	"github.com/koreality/koreality-go/internal/datastore"
	"github.com/koreality/koreality-go/internal/mapper"
)

// newTestController spins up the full route table over a temporary SQLite
// database. The returned store is used for seeding test data directly.
func newTestController(t *testing.T) (*echo.Echo, *datastore.SQLiteStore) {
	t.Helper()

	settings := &conf.Settings{}
	settings.Database.SQLite.Enabled = true
	settings.Database.SQLite.Path = t.TempDir() + "/test.db"
	settings.WebServer.Port = "8080"
	settings.Map.APIKey = "test-key"
	settings.Map.DefaultLat = 25.0330
	settings.Map.DefaultLng = 121.5654
	settings.Map.DefaultZoom = 13
	settings.Ads.RotationInterval = 5

	ds := datastore.New(settings)
	require.NoError(t, ds.Open())
	t.Cleanup(func() { assert.NoError(t, ds.Close()) })

	store, ok := ds.(*datastore.SQLiteStore)
	require.True(t, ok)

	e := echo.New()
	New(e, ds, settings, nil, nil, nil)

	return e, store
}

func doRequest(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestGetHealth(t *testing.T) {
	e, _ := newTestController(t)

	rec := doRequest(e, http.MethodGet, "/api/v2/health")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[HealthResponse](t, rec)
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Version)
}

func TestGetCategories(t *testing.T) {
	e, _ := newTestController(t)

	rec := doRequest(e, http.MethodGet, "/api/v2/locations/categories")
	require.Equal(t, http.StatusOK, rec.Code)

	categories := decodeJSON[[]mapper.Category](t, rec)
	require.Len(t, categories, 11)
	assert.Equal(t, mapper.CategoryCafe, categories[0].ID)
}

func TestGetLocationsUnscoped(t *testing.T) {
	e, store := newTestController(t)
	require.NoError(t, store.DB.Create(&datastore.Location{
		ID: "loc-1", Name: "Cafe A", Latitude: "25.03", Longitude: "121.56",
		Category: "cafe", Verified: true,
	}).Error)
	require.NoError(t, store.DB.Create(&datastore.Location{
		ID: "loc-2", Name: "Hidden", Latitude: "25.04", Longitude: "121.57",
		Verified: false,
	}).Error)

	rec := doRequest(e, http.MethodGet, "/api/v2/locations")
	require.Equal(t, http.StatusOK, rec.Code)

	locations := decodeJSON[[]mapper.MapLocation](t, rec)
	require.Len(t, locations, 1)
	assert.Equal(t, "loc-1", locations[0].ID)
	assert.Equal(t, "☕", locations[0].Icon)
	assert.Empty(t, locations[0].UpcomingEvents)
}

func TestGetLocationsByIdolScope(t *testing.T) {
	e, store := newTestController(t)
	require.NoError(t, store.DB.Create(&datastore.Idol{ID: "idol-1", StageName: "Karina", IsActive: true}).Error)
	require.NoError(t, store.DB.Create(&datastore.Location{
		ID: "loc-1", Name: "Cafe A", Latitude: "25.03", Longitude: "121.56",
		Category: "cafe", Verified: true,
	}).Error)
	require.NoError(t, store.DB.Create(&datastore.Event{
		ID: "evt-1", LocationID: "loc-1", IdolID: "idol-1",
		Title: "Cup Holder Event", StartDate: "2025-07-17", Status: datastore.EventStatusUpcoming,
	}).Error)

	rec := doRequest(e, http.MethodGet, "/api/v2/locations?idol_id=idol-1")
	require.Equal(t, http.StatusOK, rec.Code)

	locations := decodeJSON[[]mapper.MapLocation](t, rec)
	require.Len(t, locations, 1)
	require.Len(t, locations[0].UpcomingEvents, 1)
	assert.Equal(t, "Karina", locations[0].UpcomingEvents[0].IdolName)

	// Unknown idol yields an empty list, not an error.
	rec = doRequest(e, http.MethodGet, "/api/v2/locations?idol_id=nobody")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeJSON[[]mapper.MapLocation](t, rec))
}

func TestGetIdolByID(t *testing.T) {
	e, store := newTestController(t)
	require.NoError(t, store.DB.Create(&datastore.Idol{
		ID: "idol-1", Name: "Yu Jimin", StageName: "Karina", IsActive: true,
	}).Error)

	rec := doRequest(e, http.MethodGet, "/api/v2/idols/idol-1")
	require.Equal(t, http.StatusOK, rec.Code)
	idol := decodeJSON[datastore.Idol](t, rec)
	assert.Equal(t, "Karina", idol.StageName)

	rec = doRequest(e, http.MethodGet, "/api/v2/idols/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// The static solo route is not shadowed by the id parameter.
	rec = doRequest(e, http.MethodGet, "/api/v2/idols/solo")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetBandByID(t *testing.T) {
	e, store := newTestController(t)
	require.NoError(t, store.DB.Create(&datastore.Band{
		ID: "band-1", Name: "aespa", IsActive: true,
	}).Error)

	rec := doRequest(e, http.MethodGet, "/api/v2/bands/band-1")
	require.Equal(t, http.StatusOK, rec.Code)
	band := decodeJSON[datastore.Band](t, rec)
	assert.Equal(t, "aespa", band.Name)

	rec = doRequest(e, http.MethodGet, "/api/v2/bands/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetEventNotFound(t *testing.T) {
	e, _ := newTestController(t)

	rec := doRequest(e, http.MethodGet, "/api/v2/events/missing")
	require.Equal(t, http.StatusNotFound, rec.Code)

	resp := decodeJSON[ErrorResponse](t, rec)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.NotEmpty(t, resp.CorrelationID)
}

func TestGetUpcomingBirthdays(t *testing.T) {
	e, store := newTestController(t)
	require.NoError(t, store.DB.Create(&datastore.Idol{
		ID: "idol-1", StageName: "Winter", Birthday: "2001-01-01", IsActive: true,
	}).Error)

	rec := doRequest(e, http.MethodGet, "/api/v2/birthdays?date=2025-01-01")
	require.Equal(t, http.StatusOK, rec.Code)

	result := decodeJSON[[]birthday.Upcoming](t, rec)
	require.Len(t, result, 1)
	assert.True(t, result[0].IsToday)
	assert.Equal(t, 0, result[0].DaysUntil)

	// A malformed date degrades to today rather than failing.
	rec = doRequest(e, http.MethodGet, "/api/v2/birthdays?date=bogus")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAdTelemetryEndpoints(t *testing.T) {
	e, store := newTestController(t)
	require.NoError(t, store.DB.Create(&datastore.Advertisement{ID: "ad-1", IsActive: true}).Error)

	rec := doRequest(e, http.MethodPost, "/api/v2/ads/ad-1/view")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = doRequest(e, http.MethodPost, "/api/v2/ads/ad-1/click")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	var ad datastore.Advertisement
	require.NoError(t, store.DB.First(&ad, "id = ?", "ad-1").Error)
	assert.Equal(t, int64(1), ad.ViewCount)
	assert.Equal(t, int64(1), ad.ClickCount)

	// Telemetry never surfaces failures to the caller.
	rec = doRequest(e, http.MethodPost, "/api/v2/ads/missing/view")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGetAdvertisements(t *testing.T) {
	e, store := newTestController(t)
	require.NoError(t, store.DB.Create(&datastore.Advertisement{ID: "ad-1", Title: "Low", IsActive: true, Priority: 1}).Error)
	require.NoError(t, store.DB.Create(&datastore.Advertisement{ID: "ad-2", Title: "High", IsActive: true, Priority: 9}).Error)
	require.NoError(t, store.DB.Create(&datastore.Advertisement{ID: "ad-3", Title: "Off", IsActive: false}).Error)

	rec := doRequest(e, http.MethodGet, "/api/v2/ads")
	require.Equal(t, http.StatusOK, rec.Code)

	ads := decodeJSON[[]datastore.Advertisement](t, rec)
	require.Len(t, ads, 2)
	assert.Equal(t, "ad-2", ads[0].ID)
}

func TestGetMapMarkers(t *testing.T) {
	e, store := newTestController(t)
	require.NoError(t, store.DB.Create(&datastore.Location{
		ID: "loc-1", Name: "Cafe A", Latitude: "25.03", Longitude: "121.56",
		Category: "cafe", Verified: true,
	}).Error)
	require.NoError(t, store.DB.Create(&datastore.Location{
		ID: "loc-2", Name: "Broken", Latitude: "not-a-number", Longitude: "121.57",
		Verified: true,
	}).Error)

	rec := doRequest(e, http.MethodGet, "/api/v2/map/markers")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[MarkersResponse](t, rec)
	require.Len(t, resp.Markers, 1, "locations with bad coordinates are dropped")
	assert.Equal(t, "loc-1", resp.Markers[0].ID)
	assert.True(t, resp.Viewport.Fit)
	require.NotNil(t, resp.Viewport.Bounds)
}

func TestGetMapConfig(t *testing.T) {
	e, _ := newTestController(t)

	rec := doRequest(e, http.MethodGet, "/api/v2/map/config")
	require.Equal(t, http.StatusOK, rec.Code)

	var cfg map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.InDelta(t, 25.0330, cfg["center_lat"].(float64), 1e-9)
	assert.Equal(t, float64(13), cfg["zoom"])
	assert.Contains(t, cfg["loader_tag"].(string), "key=test-key")
}

func TestServePlaceholder(t *testing.T) {
	e, _ := newTestController(t)

	rec := doRequest(e, http.MethodGet, "/api/v2/placeholder/300/200")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Body.String(), "300x200")

	for _, target := range []string{
		"/api/v2/placeholder/0/200",
		"/api/v2/placeholder/300/abc",
		"/api/v2/placeholder/300/99999",
	} {
		rec = doRequest(e, http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "target %s", target)
	}
}

// newCarouselController builds a controller whose rotator was constructed
// over pre-seeded advertisements.
func newCarouselController(t *testing.T, seedAds []datastore.Advertisement) *echo.Echo {
	t.Helper()

	settings := &conf.Settings{}
	settings.Database.SQLite.Enabled = true
	settings.Database.SQLite.Path = t.TempDir() + "/test.db"
	settings.Ads.RotationInterval = 3600

	ds := datastore.New(settings)
	require.NoError(t, ds.Open())
	t.Cleanup(func() { assert.NoError(t, ds.Close()) })

	store := ds.(*datastore.SQLiteStore)
	for i := range seedAds {
		require.NoError(t, store.DB.Create(&seedAds[i]).Error)
	}

	active, err := ds.GetActiveAdvertisements(context.Background())
	require.NoError(t, err)

	rotator := ads.NewRotator(active, ds, time.Hour)
	t.Cleanup(rotator.Stop)

	e := echo.New()
	New(e, ds, settings, nil, rotator, nil)
	return e
}

func TestCarousel(t *testing.T) {
	e := newCarouselController(t, []datastore.Advertisement{
		{ID: "ad-1", Title: "First", LinkURL: "https://example.com/1", IsActive: true, Priority: 9},
		{ID: "ad-2", Title: "Second", IsActive: true, Priority: 1},
	})

	rec := doRequest(e, http.MethodGet, "/api/v2/ads/carousel")
	require.Equal(t, http.StatusOK, rec.Code)
	state := decodeJSON[CarouselResponse](t, rec)
	require.NotNil(t, state.Ad)
	assert.Equal(t, "ad-1", state.Ad.ID, "highest priority ad shown first")
	assert.Equal(t, 0, state.Index)
	assert.Equal(t, 2, state.Count)

	rec = doRequest(e, http.MethodPost, "/api/v2/ads/carousel/next")
	state = decodeJSON[CarouselResponse](t, rec)
	assert.Equal(t, "ad-2", state.Ad.ID)

	// Wraps back to the first ad.
	rec = doRequest(e, http.MethodPost, "/api/v2/ads/carousel/next")
	state = decodeJSON[CarouselResponse](t, rec)
	assert.Equal(t, "ad-1", state.Ad.ID)

	rec = doRequest(e, http.MethodPost, "/api/v2/ads/carousel/previous")
	state = decodeJSON[CarouselResponse](t, rec)
	assert.Equal(t, "ad-2", state.Ad.ID)
}

func TestCarouselClick(t *testing.T) {
	e := newCarouselController(t, []datastore.Advertisement{
		{ID: "ad-1", LinkURL: "https://example.com/1", IsActive: true},
	})

	rec := doRequest(e, http.MethodPost, "/api/v2/ads/carousel/click")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeJSON[map[string]string](t, rec)
	assert.Equal(t, "https://example.com/1", resp["link_url"])
}

func TestCarouselUnavailableWithoutRotator(t *testing.T) {
	e, _ := newTestController(t)

	rec := doRequest(e, http.MethodGet, "/api/v2/ads/carousel")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAuthRoutesUnavailableWithoutOAuth(t *testing.T) {
	e, _ := newTestController(t)

	rec := doRequest(e, http.MethodGet, "/api/v2/auth/session")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/v2/auth/login")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
