// Package prayer turns a geographic position into a daily prayer
// schedule, a Qibla bearing, a Hijri date, and a rolling next-prayer
// projection. The mandatory timings call fails loudly; the two
// enrichment calls degrade independently to defaults.
package prayer

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Noor-Labs-LLC/minbar/internal/aladhan"
	"github.com/Noor-Labs-LLC/minbar/internal/model"
)

// ScheduleFetchError reports a failure of the mandatory timings call.
// It is the only failure surfaced to the user; enrichment failures are
// absorbed with defaults.
type ScheduleFetchError struct {
	Message string
	Err     error
}

func (e *ScheduleFetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("schedule fetch failed: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("schedule fetch failed: %s", e.Message)
}

func (e *ScheduleFetchError) Unwrap() error { return e.Err }

// Cache stores resolved schedules keyed by the fetch parameters.
// Implementations must treat every failure as a miss.
type Cache interface {
	GetSchedule(ctx context.Context, key string) (*model.PrayerSchedule, bool)
	SetSchedule(ctx context.Context, key string, schedule *model.PrayerSchedule, ttl time.Duration)
}

// Fetcher resolves a position and settings into a PrayerSchedule.
type Fetcher struct {
	client *aladhan.Client
	cache  Cache // nil disables caching
}

func NewFetcher(client *aladhan.Client, cache Cache) *Fetcher {
	return &Fetcher{client: client, cache: cache}
}

// cacheKey builds a deterministic hash from every parameter that
// affects the schedule, so distinct positions and settings never
// collide.
func cacheKey(date string, pos model.GeoPosition, settings model.CalculationSettings) string {
	raw := fmt.Sprintf("%s|%.6f|%.6f|%d|%d",
		date, pos.Latitude, pos.Longitude, settings.MethodID, settings.SchoolID)
	h := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("schedule:%x", h[:8])
}

// Fetch resolves the schedule for one civil day. The timings, Qibla,
// and Hijri calls are issued concurrently; only a timings failure is
// fatal. Identical inputs against a stable provider yield identical
// schedules.
func (f *Fetcher) Fetch(ctx context.Context, pos model.GeoPosition, settings model.CalculationSettings, date time.Time) (*model.PrayerSchedule, error) {
	key := cacheKey(date.Format("02-01-2006"), pos, settings)
	if f.cache != nil {
		if cached, ok := f.cache.GetSchedule(ctx, key); ok {
			return cached, nil
		}
	}

	var (
		wg         sync.WaitGroup
		timings    *aladhan.TimingsResponse
		timingsErr error
		bearing    float64
		hijri      string
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		timings, timingsErr = f.client.Timings(ctx, date, pos.Latitude, pos.Longitude, settings.MethodID, settings.SchoolID)
	}()
	go func() {
		defer wg.Done()
		b, err := f.client.Qibla(ctx, pos.Latitude, pos.Longitude)
		if err != nil {
			log.Warn().Err(err).Msg("qibla lookup failed, defaulting bearing to 0")
			b = 0.0
		}
		bearing = b
	}()
	go func() {
		defer wg.Done()
		h, err := f.client.GToH(ctx, date)
		if err != nil {
			log.Warn().Err(err).Msg("hijri lookup failed, leaving date empty")
			return
		}
		hijri = h.Hijri.Format()
	}()
	wg.Wait()

	if timingsErr != nil {
		return nil, &ScheduleFetchError{Message: "prayer timings unavailable", Err: timingsErr}
	}

	schedule, err := normalize(timings, pos)
	if err != nil {
		return nil, &ScheduleFetchError{Message: "provider returned malformed timings", Err: err}
	}
	schedule.QiblaBearingDegrees = bearing
	schedule.HijriDate = hijri

	if f.cache != nil {
		if ttl := untilEndOfDay(date); ttl > 0 {
			f.cache.SetSchedule(ctx, key, schedule, ttl)
		}
	}
	return schedule, nil
}

// normalize converts provider "HH:MM" strings into the internal
// minute-of-day representation. The provider already localizes times
// to the supplied coordinate; no timezone conversion happens here.
func normalize(resp *aladhan.TimingsResponse, pos model.GeoPosition) (*model.PrayerSchedule, error) {
	s := &model.PrayerSchedule{
		CivilDate: resp.Data.Date.Readable,
		Timezone:  resp.Data.Meta.Timezone,
		Location:  pos,
	}

	fields := []struct {
		raw string
		dst *model.TimeOfDay
	}{
		{resp.Data.Timings.Fajr, &s.Fajr},
		{resp.Data.Timings.Sunrise, &s.Sunrise},
		{resp.Data.Timings.Dhuhr, &s.Dhuhr},
		{resp.Data.Timings.Asr, &s.Asr},
		{resp.Data.Timings.Maghrib, &s.Maghrib},
		{resp.Data.Timings.Isha, &s.Isha},
	}
	for _, f := range fields {
		t, err := parseClock(f.raw)
		if err != nil {
			return nil, err
		}
		*f.dst = t
	}
	return s, nil
}

// parseClock parses "15:02" or "15:02 (BST)" into a TimeOfDay.
func parseClock(raw string) (model.TimeOfDay, error) {
	s := strings.TrimSpace(raw)
	if idx := strings.Index(s, " "); idx != -1 {
		s = s[:idx]
	}

	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return model.TimeOfDay{}, fmt.Errorf("invalid time format %q: %w", raw, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return model.TimeOfDay{}, fmt.Errorf("time out of range: %q", raw)
	}
	return model.TimeOfDay{Hour: hour, Minute: minute}, nil
}

// untilEndOfDay bounds a cache entry's lifetime to its civil day.
func untilEndOfDay(date time.Time) time.Duration {
	end := time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, 0, date.Location())
	return time.Until(end)
}
