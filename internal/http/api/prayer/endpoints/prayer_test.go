package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Noor-Labs-LLC/minbar/internal/aladhan"
	"github.com/Noor-Labs-LLC/minbar/internal/geocode"
	"github.com/Noor-Labs-LLC/minbar/internal/http/api"
	"github.com/Noor-Labs-LLC/minbar/internal/http/api/prayer/packets"
	"github.com/Noor-Labs-LLC/minbar/internal/prayer"
)

const providerTimings = `{
	"code": 200, "status": "OK",
	"data": {
		"timings": {"Fajr": "05:30", "Sunrise": "06:45", "Dhuhr": "12:15", "Asr": "15:30", "Maghrib": "18:10", "Isha": "19:45"},
		"date": {"readable": "15 Mar 2026"},
		"meta": {"timezone": "Europe/London"}
	}
}`

type providerFlags struct {
	timingsDown bool
}

func newProvider(flags providerFlags) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/timings/"):
			if flags.timingsDown {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(providerTimings))
		case strings.HasPrefix(r.URL.Path, "/qibla/"):
			w.Write([]byte(`{"code": 200, "status": "OK", "data": {"direction": 118.98}}`))
		case strings.HasPrefix(r.URL.Path, "/gToH/"):
			w.Write([]byte(`{"code": 200, "status": "OK", "data": {"hijri": {"day": "26", "month": {"en": "Ramadan"}, "year": "1447", "designation": {"abbreviated": "AH"}}}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

// geoServers returns a working IP-geolocation server and a reverse
// geocoder; close either to simulate an outage.
func geoServers() (*httptest.Server, *httptest.Server) {
	geoIP := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "success", "lat": 51.5074, "lon": -0.1278, "city": "London"}`))
	}))
	reverse := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"city": "Paris"}`))
	}))
	return geoIP, reverse
}

func newRouter(provider *httptest.Server, geoIP, reverse *httptest.Server) *gin.Engine {
	gin.SetMode(gin.TestMode)

	client := aladhan.NewClient()
	client.BaseURL = provider.URL
	fetcher := prayer.NewFetcher(client, nil)

	locator := geocode.NewResolver()
	locator.GeoIPURL = geoIP.URL
	locator.ReverseURL = reverse.URL

	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api"}, PrayerModule(fetcher, locator))
	return r
}

func doGET(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetScheduleWithGeolocation(t *testing.T) {
	provider := newProvider(providerFlags{})
	defer provider.Close()
	geoIP, reverse := geoServers()
	defer geoIP.Close()
	defer reverse.Close()

	w := doGET(t, newRouter(provider, geoIP, reverse), "/api/prayer/schedule")
	require.Equal(t, http.StatusOK, w.Code)

	var resp packets.ScheduleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "15 Mar 2026", resp.CivilDate)
	assert.Equal(t, "26 Ramadan 1447 AH", resp.HijriDate)
	assert.Equal(t, 118.98, resp.QiblaBearingDegrees)
	assert.Equal(t, "London", resp.Location.Label)
	assert.False(t, resp.LocationFallback)

	require.Len(t, resp.Prayers, 6)
	assert.Equal(t, "Fajr", resp.Prayers[0].Name)
	assert.Equal(t, "05:30", resp.Prayers[0].Time24)
	assert.Equal(t, "05:30 AM", resp.Prayers[0].Time12)
	assert.Equal(t, "Isha", resp.Prayers[5].Name)
	assert.NotEmpty(t, resp.Next.PrayerName)
}

func TestGetScheduleFallsBackToMecca(t *testing.T) {
	provider := newProvider(providerFlags{})
	defer provider.Close()
	geoIP, reverse := geoServers()
	defer reverse.Close()
	geoIP.Close() // geolocation outage

	w := doGET(t, newRouter(provider, geoIP, reverse), "/api/prayer/schedule")
	require.Equal(t, http.StatusOK, w.Code)

	var resp packets.ScheduleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.LocationFallback)
	assert.Equal(t, "Mecca, Saudi Arabia", resp.Location.Label)
	assert.Equal(t, 21.4225, resp.Location.Latitude)
}

func TestGetScheduleWithExplicitCoordinates(t *testing.T) {
	provider := newProvider(providerFlags{})
	defer provider.Close()
	geoIP, reverse := geoServers()
	defer geoIP.Close()
	defer reverse.Close()

	w := doGET(t, newRouter(provider, geoIP, reverse), "/api/prayer/schedule?latitude=48.8566&longitude=2.3522")
	require.Equal(t, http.StatusOK, w.Code)

	var resp packets.ScheduleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 48.8566, resp.Location.Latitude)
	assert.Equal(t, "Paris", resp.Location.Label)
	assert.False(t, resp.LocationFallback)
}

func TestGetScheduleRejectsPartialCoordinates(t *testing.T) {
	provider := newProvider(providerFlags{})
	defer provider.Close()
	geoIP, reverse := geoServers()
	defer geoIP.Close()
	defer reverse.Close()

	w := doGET(t, newRouter(provider, geoIP, reverse), "/api/prayer/schedule?latitude=48.8566")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetScheduleRejectsUnknownMethod(t *testing.T) {
	provider := newProvider(providerFlags{})
	defer provider.Close()
	geoIP, reverse := geoServers()
	defer geoIP.Close()
	defer reverse.Close()

	r := newRouter(provider, geoIP, reverse)
	assert.Equal(t, http.StatusBadRequest, doGET(t, r, "/api/prayer/schedule?method=6").Code)
	assert.Equal(t, http.StatusBadRequest, doGET(t, r, "/api/prayer/schedule?method=abc").Code)
	assert.Equal(t, http.StatusBadRequest, doGET(t, r, "/api/prayer/schedule?school=2").Code)
}

func TestGetScheduleProviderOutageIs502(t *testing.T) {
	provider := newProvider(providerFlags{timingsDown: true})
	defer provider.Close()
	geoIP, reverse := geoServers()
	defer geoIP.Close()
	defer reverse.Close()

	w := doGET(t, newRouter(provider, geoIP, reverse), "/api/prayer/schedule")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "unavailable")
}

func TestGetNext(t *testing.T) {
	provider := newProvider(providerFlags{})
	defer provider.Close()
	geoIP, reverse := geoServers()
	defer geoIP.Close()
	defer reverse.Close()

	w := doGET(t, newRouter(provider, geoIP, reverse), "/api/prayer/next")
	require.Equal(t, http.StatusOK, w.Code)

	var resp packets.NextPrayerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.PrayerName)
	assert.NotEmpty(t, resp.Remaining)
}

func TestListMethods(t *testing.T) {
	provider := newProvider(providerFlags{})
	defer provider.Close()
	geoIP, reverse := geoServers()
	defer geoIP.Close()
	defer reverse.Close()

	w := doGET(t, newRouter(provider, geoIP, reverse), "/api/prayer/methods")
	require.Equal(t, http.StatusOK, w.Code)

	var resp packets.MethodsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Methods, 12)
	require.Len(t, resp.Schools, 2)
	assert.Equal(t, 0, resp.Schools[0].ID)
	assert.Equal(t, "Hanafi", resp.Schools[1].Name)
}
