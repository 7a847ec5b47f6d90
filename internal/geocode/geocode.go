// Package geocode resolves a usable geographic position for prayer
// time calculation. Acquisition never fails: when IP geolocation is
// denied, times out, or errors, the fixed Mecca coordinate is
// substituted and the caller surfaces a single non-fatal warning.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Noor-Labs-LLC/minbar/internal/model"
)

// Mecca is the fallback position used when geolocation is unavailable.
var Mecca = model.GeoPosition{
	Latitude:  21.4225,
	Longitude: 39.8262,
	Label:     "Mecca, Saudi Arabia",
}

// UnknownLocation labels a valid coordinate whose reverse lookup failed.
const UnknownLocation = "Unknown Location"

const acquireTimeout = 10 * time.Second

// Resolver wraps the two external lookups (IP geolocation and reverse
// geocoding). The endpoint URLs are exported fields so tests can point
// them at httptest servers.
type Resolver struct {
	httpClient *http.Client

	// GeoIPURL is the IP geolocation endpoint (ip-api.com schema).
	GeoIPURL string
	// ReverseURL is the reverse geocoding endpoint
	// (bigdatacloud reverse-geocode-client schema).
	ReverseURL string
}

func NewResolver() *Resolver {
	return &Resolver{
		httpClient: &http.Client{Timeout: acquireTimeout},
		GeoIPURL:   "http://ip-api.com/json/?fields=status,message,lat,lon,city,country",
		ReverseURL: "https://api.bigdatacloud.net/data/reverse-geocode-client",
	}
}

// ipAPIResponse maps the response from ip-api.com.
type ipAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city"`
	Country string  `json:"country"`
}

// reverseResponse maps the best-effort place fields of the reverse
// geocoding provider. The first non-empty of city, locality, and
// principal subdivision wins.
type reverseResponse struct {
	City                 string `json:"city"`
	Locality             string `json:"locality"`
	PrincipalSubdivision string `json:"principalSubdivision"`
	CountryName          string `json:"countryName"`
}

// Locate resolves the caller's position from their public IP.
// It always returns a usable position; the second return value is true
// when the Mecca default was substituted.
func (r *Resolver) Locate(ctx context.Context) (model.GeoPosition, bool) {
	ctx, cancel := context.WithTimeout(ctx, acquireTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.GeoIPURL, nil)
	if err != nil {
		return Mecca, true
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("geolocation request failed, using default location")
		return Mecca, true
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Msg("geolocation API error, using default location")
		return Mecca, true
	}

	var result ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil || result.Status != "success" {
		log.Warn().Str("message", result.Message).Msg("geolocation lookup unusable, using default location")
		return Mecca, true
	}

	label := result.City
	if label == "" {
		label = result.Country
	}
	if label == "" {
		// Coordinate is still valid without a name.
		var rerr error
		label, rerr = r.Reverse(ctx, result.Lat, result.Lon)
		if rerr != nil {
			label = UnknownLocation
		}
	}

	return model.GeoPosition{Latitude: result.Lat, Longitude: result.Lon, Label: label}, false
}

// Reverse turns a coordinate into a human-readable place name.
func (r *Resolver) Reverse(ctx context.Context, lat, lng float64) (string, error) {
	reqURL := fmt.Sprintf("%s?latitude=%f&longitude=%f", r.ReverseURL, lat, lng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build reverse geocode request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("reverse geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse geocode API returned status %d", resp.StatusCode)
	}

	var result reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode reverse geocode response: %w", err)
	}

	switch {
	case result.City != "":
		return result.City, nil
	case result.Locality != "":
		return result.Locality, nil
	case result.PrincipalSubdivision != "":
		return result.PrincipalSubdivision, nil
	}
	return "", fmt.Errorf("reverse geocode returned no place name")
}

// Describe resolves a label for an explicit coordinate, falling back to
// the unknown sentinel when the lookup fails.
func (r *Resolver) Describe(ctx context.Context, lat, lng float64) model.GeoPosition {
	label, err := r.Reverse(ctx, lat, lng)
	if err != nil {
		log.Debug().Err(err).Msg("reverse geocode failed, labeling unknown")
		label = UnknownLocation
	}
	return model.GeoPosition{Latitude: lat, Longitude: lng, Label: label}
}
