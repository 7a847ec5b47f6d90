package endpoints

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Noor-Labs-LLC/minbar/internal/geocode"
	"github.com/Noor-Labs-LLC/minbar/internal/http/api"
	"github.com/Noor-Labs-LLC/minbar/internal/http/api/prayer/packets"
	"github.com/Noor-Labs-LLC/minbar/internal/model"
	"github.com/Noor-Labs-LLC/minbar/internal/prayer"
)

// Defaults mirror the app's original behavior: ISNA method, standard school.
const (
	defaultMethod = 2
	defaultSchool = prayer.SchoolStandard
)

type PrayerController struct {
	fetcher *prayer.Fetcher
	locator *geocode.Resolver
	now     func() time.Time
}

func newPrayerController(fetcher *prayer.Fetcher, locator *geocode.Resolver) *PrayerController {
	return &PrayerController{fetcher: fetcher, locator: locator, now: time.Now}
}

// PrayerModule mounts the public prayer schedule endpoints.
func PrayerModule(fetcher *prayer.Fetcher, locator *geocode.Resolver) api.Module {
	ctl := newPrayerController(fetcher, locator)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/prayer/schedule", ctl.getSchedule)
		c.PUBLIC_GET("/prayer/next", ctl.getNext)
		c.PUBLIC_GET("/prayer/methods", ctl.listMethods)
	})
}

// GET /api/prayer/schedule?latitude&longitude&method&school
func (p *PrayerController) getSchedule(ctx *gin.Context) (any, *api.APIError) {
	schedule, fallback, apiErr := p.resolve(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	next := prayer.ProjectNext(*schedule, p.now())

	entries := make([]packets.PrayerEntry, 0, 6)
	for _, entry := range schedule.Ordered() {
		entries = append(entries, packets.PrayerEntry{
			Name:   entry.Name,
			Time24: entry.Time.Clock24(),
			Time12: entry.Time.Clock12(),
		})
	}

	return packets.ScheduleResponse{
		CivilDate:           schedule.CivilDate,
		HijriDate:           schedule.HijriDate,
		QiblaBearingDegrees: schedule.QiblaBearingDegrees,
		Timezone:            schedule.Timezone,
		Location: packets.LocationResponse{
			Latitude:  schedule.Location.Latitude,
			Longitude: schedule.Location.Longitude,
			Label:     schedule.Location.Label,
		},
		Prayers: entries,
		Next: packets.NextPrayerResponse{
			PrayerName: next.PrayerName,
			Time12:     next.Time.Clock12(),
			Remaining:  next.Remaining,
		},
		LocationFallback: fallback,
	}, nil
}

// GET /api/prayer/next?latitude&longitude&method&school
func (p *PrayerController) getNext(ctx *gin.Context) (any, *api.APIError) {
	schedule, _, apiErr := p.resolve(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	next := prayer.ProjectNext(*schedule, p.now())
	return packets.NextPrayerResponse{
		PrayerName: next.PrayerName,
		Time12:     next.Time.Clock12(),
		Remaining:  next.Remaining,
	}, nil
}

// GET /api/prayer/methods
func (p *PrayerController) listMethods(ctx *gin.Context) (any, *api.APIError) {
	out := packets.MethodsResponse{}
	for _, m := range prayer.CalculationMethods {
		out.Methods = append(out.Methods, packets.MethodResponse{ID: m.ID, Name: m.Name})
	}
	for id, name := range prayer.JuristicSchools {
		out.Schools = append(out.Schools, packets.SchoolResponse{ID: id, Name: name})
	}
	sort.Slice(out.Schools, func(i, j int) bool { return out.Schools[i].ID < out.Schools[j].ID })
	return out, nil
}

// resolve runs Location Acquisition (explicit coordinates win over the
// IP lookup) and the schedule fetch for the current civil day.
func (p *PrayerController) resolve(ctx *gin.Context) (*model.PrayerSchedule, bool, *api.APIError) {
	settings := model.CalculationSettings{MethodID: defaultMethod, SchoolID: defaultSchool}

	if raw, ok := ctx.GetQuery("method"); ok {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return nil, false, &api.APIError{Code: http.StatusBadRequest, Message: "invalid method"}
		}
		settings.MethodID = id
	}
	if raw, ok := ctx.GetQuery("school"); ok {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return nil, false, &api.APIError{Code: http.StatusBadRequest, Message: "invalid school"}
		}
		settings.SchoolID = id
	}
	if err := prayer.ValidateMethod(settings.MethodID); err != nil {
		return nil, false, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := prayer.ValidateSchool(settings.SchoolID); err != nil {
		return nil, false, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	reqCtx := ctx.Request.Context()

	var (
		pos      model.GeoPosition
		fallback bool
	)
	rawLat, hasLat := ctx.GetQuery("latitude")
	rawLng, hasLng := ctx.GetQuery("longitude")
	switch {
	case hasLat && hasLng:
		lat, latErr := strconv.ParseFloat(rawLat, 64)
		lng, lngErr := strconv.ParseFloat(rawLng, 64)
		if latErr != nil || lngErr != nil {
			return nil, false, &api.APIError{Code: http.StatusBadRequest, Message: "invalid coordinates"}
		}
		pos = p.locator.Describe(reqCtx, lat, lng)
	case hasLat || hasLng:
		return nil, false, &api.APIError{Code: http.StatusBadRequest, Message: "latitude and longitude must be supplied together"}
	default:
		pos, fallback = p.locator.Locate(reqCtx)
	}

	schedule, err := p.fetcher.Fetch(reqCtx, pos, settings, p.now())
	if err != nil {
		var fetchErr *prayer.ScheduleFetchError
		if errors.As(err, &fetchErr) {
			log.Error().Err(err).Msg("mandatory timings call failed")
			return nil, fallback, &api.APIError{Code: http.StatusBadGateway, Message: fetchErr.Message}
		}
		return nil, fallback, &api.APIError{Code: http.StatusInternalServerError, Message: "could not resolve prayer schedule"}
	}
	return schedule, fallback, nil
}
