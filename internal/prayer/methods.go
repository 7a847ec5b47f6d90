package prayer

import "fmt"

// CalculationMethod is a named astronomical convention recognized by
// the upstream provider. The id is passed through opaquely.
type CalculationMethod struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CalculationMethods lists the supported upstream conventions.
var CalculationMethods = []CalculationMethod{
	{ID: 0, Name: "Shia Ithna-Ashari, Leva Institute, Qum"},
	{ID: 1, Name: "University of Islamic Sciences, Karachi"},
	{ID: 2, Name: "Islamic Society of North America"},
	{ID: 3, Name: "Muslim World League"},
	{ID: 4, Name: "Umm Al-Qura University, Makkah"},
	{ID: 5, Name: "Egyptian General Authority of Survey"},
	{ID: 7, Name: "Institute of Geophysics, University of Tehran"},
	{ID: 8, Name: "Gulf Region"},
	{ID: 9, Name: "Kuwait"},
	{ID: 10, Name: "Qatar"},
	{ID: 11, Name: "Majlis Ugama Islam Singapura, Singapore"},
	{ID: 12, Name: "Union Organization Islamic de France"},
}

// Juristic schools, differing only in the upstream Asr convention.
const (
	SchoolStandard = 0 // Shafi, Hanbali, Maliki
	SchoolHanafi   = 1
)

// JuristicSchools maps school ids to display names.
var JuristicSchools = map[int]string{
	SchoolStandard: "Shafi/Hanbali/Maliki",
	SchoolHanafi:   "Hanafi",
}

// ValidateMethod reports whether id names a known calculation method.
func ValidateMethod(id int) error {
	for _, m := range CalculationMethods {
		if m.ID == id {
			return nil
		}
	}
	return fmt.Errorf("unknown calculation method: %d", id)
}

// ValidateSchool reports whether id names a known juristic school.
func ValidateSchool(id int) error {
	if _, ok := JuristicSchools[id]; !ok {
		return fmt.Errorf("unknown juristic school: %d", id)
	}
	return nil
}
