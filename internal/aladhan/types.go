package aladhan

// TimingsResponse is the top-level envelope of the /timings endpoint.
type TimingsResponse struct {
	Code   int         `json:"code"`
	Status string      `json:"status"`
	Data   TimingsData `json:"data"`
}

// TimingsData holds the prayer timings, date info, and metadata.
type TimingsData struct {
	Timings Timings  `json:"timings"`
	Date    DateInfo `json:"date"`
	Meta    Meta     `json:"meta"`
}

// Timings contains prayer and event times as "HH:MM" strings.
// The API may append a timezone suffix like " (BST)" which is
// stripped during parsing.
type Timings struct {
	Fajr    string `json:"Fajr"`
	Sunrise string `json:"Sunrise"`
	Dhuhr   string `json:"Dhuhr"`
	Asr     string `json:"Asr"`
	Maghrib string `json:"Maghrib"`
	Isha    string `json:"Isha"`
}

// DateInfo contains the civil and Hijri date representations.
type DateInfo struct {
	Readable string    `json:"readable"`
	Hijri    HijriDate `json:"hijri"`
}

// HijriDate is the Islamic calendar date from the API.
type HijriDate struct {
	Date        string           `json:"date"` // e.g. "10-08-1447"
	Day         string           `json:"day"`
	Weekday     HijriWeekday     `json:"weekday"`
	Month       HijriMonth       `json:"month"`
	Year        string           `json:"year"`
	Designation HijriDesignation `json:"designation"`
}

type HijriWeekday struct {
	En string `json:"en"`
	Ar string `json:"ar"`
}

type HijriMonth struct {
	Number int    `json:"number"`
	En     string `json:"en"`
	Ar     string `json:"ar"`
}

type HijriDesignation struct {
	Abbreviated string `json:"abbreviated"` // "AH"
	Expanded    string `json:"expanded"`
}

// Format returns the Hijri date as "DD MonthName YYYY AH",
// or "" when the breakdown is incomplete.
func (h HijriDate) Format() string {
	if h.Day == "" || h.Month.En == "" || h.Year == "" {
		return ""
	}
	abbr := h.Designation.Abbreviated
	if abbr == "" {
		abbr = "AH"
	}
	return h.Day + " " + h.Month.En + " " + h.Year + " " + abbr
}

// Meta carries request metadata returned by the API.
type Meta struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Timezone  string     `json:"timezone"`
	Method    MethodInfo `json:"method"`
	School    string     `json:"school"`
}

type MethodInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// QiblaResponse is the envelope of the /qibla endpoint.
type QiblaResponse struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   Qibla  `json:"data"`
}

// Qibla is a compass bearing toward the Kaaba, clockwise from true north.
type Qibla struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Direction float64 `json:"direction"`
}

// GToHResponse is the envelope of the /gToH (Gregorian to Hijri) endpoint.
type GToHResponse struct {
	Code   int      `json:"code"`
	Status string   `json:"status"`
	Data   GToHData `json:"data"`
}

type GToHData struct {
	Hijri     HijriDate     `json:"hijri"`
	Gregorian GregorianDate `json:"gregorian"`
}

// GregorianDate is the civil date breakdown from the API.
type GregorianDate struct {
	Date    string         `json:"date"` // e.g. "15-03-2024"
	Day     string         `json:"day"`
	Weekday GregorianDay   `json:"weekday"`
	Month   GregorianMonth `json:"month"`
	Year    string         `json:"year"`
}

type GregorianDay struct {
	En string `json:"en"`
}

type GregorianMonth struct {
	Number int    `json:"number"`
	En     string `json:"en"`
}
