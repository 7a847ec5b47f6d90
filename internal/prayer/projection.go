package prayer

import (
	"fmt"
	"time"

	"github.com/Noor-Labs-LLC/minbar/internal/model"
)

// ProjectNext returns the first schedule entry strictly later than
// now's minute-of-day, walking the canonical order
// [Fajr, Sunrise, Dhuhr, Asr, Maghrib, Isha]. Past Isha the projection
// wraps to tomorrow's Fajr with the "Tomorrow" sentinel instead of a
// computed duration. Total: it always returns a value.
func ProjectNext(s model.PrayerSchedule, now time.Time) model.NextPrayerProjection {
	nowMin := now.Hour()*60 + now.Minute()

	for _, p := range s.Ordered() {
		if p.Time.MinuteOfDay() > nowMin {
			return model.NextPrayerProjection{
				PrayerName: p.Name,
				Time:       p.Time,
				Remaining:  FormatRemaining(p.Time.MinuteOfDay() - nowMin),
			}
		}
	}

	return model.NextPrayerProjection{
		PrayerName: "Fajr",
		Time:       s.Fajr,
		Remaining:  model.TomorrowSentinel,
	}
}

// FormatRemaining formats a minute count as "Xh Ym", or "Ym" when
// under an hour.
func FormatRemaining(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	h := minutes / 60
	m := minutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
