package model

import "fmt"

// GeoPosition is a resolved coordinate with a best-effort place name.
// It is replaced wholesale on refresh, never mutated.
type GeoPosition struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Label     string  `json:"label"`
}

// CalculationSettings selects the upstream calculation convention.
// MethodID is an opaque id passed through to the provider; SchoolID
// picks the Asr convention (0 = Shafi/Hanbali/Maliki, 1 = Hanafi).
type CalculationSettings struct {
	MethodID int `json:"method"`
	SchoolID int `json:"school"`
}

// TimeOfDay is a wall-clock prayer time kept in the 24-hour domain.
// Comparisons always happen on MinuteOfDay; 12-hour strings are
// produced only at the presentation boundary.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (t TimeOfDay) MinuteOfDay() int { return t.Hour*60 + t.Minute }

// Clock24 renders "HH:MM".
func (t TimeOfDay) Clock24() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Clock12 renders "hh:MM AM/PM".
func (t TimeOfDay) Clock12() string {
	period := "AM"
	h := t.Hour
	if h >= 12 {
		period = "PM"
	}
	if h > 12 {
		h -= 12
	}
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%02d:%02d %s", h, t.Minute, period)
}

// Prayer pairs a canonical prayer name with its clock time.
type Prayer struct {
	Name string    `json:"name"`
	Time TimeOfDay `json:"time"`
}

// PrayerSchedule holds one civil day's resolved times plus enrichment.
// Owned exclusively by the resolver for a display session.
type PrayerSchedule struct {
	Fajr    TimeOfDay `json:"fajr"`
	Sunrise TimeOfDay `json:"sunrise"`
	Dhuhr   TimeOfDay `json:"dhuhr"`
	Asr     TimeOfDay `json:"asr"`
	Maghrib TimeOfDay `json:"maghrib"`
	Isha    TimeOfDay `json:"isha"`

	CivilDate           string      `json:"civil_date"`
	HijriDate           string      `json:"hijri_date"`
	QiblaBearingDegrees float64     `json:"qibla_bearing_degrees"`
	Timezone            string      `json:"timezone"`
	Location            GeoPosition `json:"location"`
}

// Ordered returns the six entries in canonical daily order
// [Fajr, Sunrise, Dhuhr, Asr, Maghrib, Isha]. The provider guarantees
// the sequence is non-decreasing; consumers walk it in this order.
func (s PrayerSchedule) Ordered() []Prayer {
	return []Prayer{
		{Name: "Fajr", Time: s.Fajr},
		{Name: "Sunrise", Time: s.Sunrise},
		{Name: "Dhuhr", Time: s.Dhuhr},
		{Name: "Asr", Time: s.Asr},
		{Name: "Maghrib", Time: s.Maghrib},
		{Name: "Isha", Time: s.Isha},
	}
}

// TomorrowSentinel is reported as the remaining value when the
// projection wraps past Isha to the next day's Fajr.
const TomorrowSentinel = "Tomorrow"

// NextPrayerProjection is derived from a schedule and a wall-clock
// instant; recomputed on every tick, never persisted.
type NextPrayerProjection struct {
	PrayerName string    `json:"prayer_name"`
	Time       TimeOfDay `json:"time"`
	Remaining  string    `json:"remaining"`
}
