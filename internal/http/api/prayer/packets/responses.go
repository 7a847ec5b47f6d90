package packets

// PrayerEntry is one row of the daily schedule. Time24 is the
// provider's wall-clock value; Time12 is the display formatting.
type PrayerEntry struct {
	Name   string `json:"name"`
	Time24 string `json:"time_24"`
	Time12 string `json:"time_12"`
}

type LocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Label     string  `json:"label"`
}

type NextPrayerResponse struct {
	PrayerName string `json:"prayer_name"`
	Time12     string `json:"time_12"`
	Remaining  string `json:"remaining"`
}

// ScheduleResponse is the full resolution result for one civil day.
// LocationFallback is true when geolocation failed and the Mecca
// default was substituted, so clients can warn that the times are not
// localized to the caller.
type ScheduleResponse struct {
	CivilDate           string             `json:"civil_date"`
	HijriDate           string             `json:"hijri_date"`
	QiblaBearingDegrees float64            `json:"qibla_bearing_degrees"`
	Timezone            string             `json:"timezone"`
	Location            LocationResponse   `json:"location"`
	Prayers             []PrayerEntry      `json:"prayers"`
	Next                NextPrayerResponse `json:"next"`
	LocationFallback    bool               `json:"location_fallback"`
}

type MethodResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type SchoolResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type MethodsResponse struct {
	Methods []MethodResponse `json:"methods"`
	Schools []SchoolResponse `json:"schools"`
}
