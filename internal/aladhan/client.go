package aladhan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.aladhan.com/v1"

// defaultTimeout bounds every provider round-trip. The provider does
// not document a latency SLA, so requests are cut off client-side.
const defaultTimeout = 15 * time.Second

// Client communicates with the Al Adhan prayer times API.
type Client struct {
	httpClient *http.Client
	// BaseURL is the API base URL. Defaults to the Al Adhan API.
	// Exported for testing with httptest.
	BaseURL string
}

// NewClient creates a new API client with sensible defaults.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		BaseURL:    defaultBaseURL,
	}
}

// Timings fetches the daily prayer times for the given civil date,
// coordinate, calculation method, and juristic school.
func (c *Client) Timings(ctx context.Context, date time.Time, lat, lng float64, method, school int) (*TimingsResponse, error) {
	dateStr := date.Format("02-01-2006")
	endpoint := fmt.Sprintf("%s/timings/%s", c.BaseURL, dateStr)

	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", lat))
	params.Set("longitude", fmt.Sprintf("%f", lng))
	if method >= 0 {
		params.Set("method", fmt.Sprintf("%d", method))
	}
	if school >= 0 {
		params.Set("school", fmt.Sprintf("%d", school))
	}

	var out TimingsResponse
	if err := c.doRequest(ctx, fmt.Sprintf("%s?%s", endpoint, params.Encode()), &out); err != nil {
		return nil, err
	}
	if out.Code != http.StatusOK {
		return nil, fmt.Errorf("API error: code=%d status=%s", out.Code, out.Status)
	}
	return &out, nil
}

// Qibla fetches the compass bearing toward the Kaaba for a coordinate.
func (c *Client) Qibla(ctx context.Context, lat, lng float64) (float64, error) {
	reqURL := fmt.Sprintf("%s/qibla/%f/%f", c.BaseURL, lat, lng)

	var out QiblaResponse
	if err := c.doRequest(ctx, reqURL, &out); err != nil {
		return 0, err
	}
	if out.Code != http.StatusOK {
		return 0, fmt.Errorf("API error: code=%d status=%s", out.Code, out.Status)
	}
	return out.Data.Direction, nil
}

// GToH converts a Gregorian date to its Hijri breakdown.
func (c *Client) GToH(ctx context.Context, date time.Time) (*GToHData, error) {
	reqURL := fmt.Sprintf("%s/gToH/%s", c.BaseURL, date.Format("02-01-2006"))

	var out GToHResponse
	if err := c.doRequest(ctx, reqURL, &out); err != nil {
		return nil, err
	}
	if out.Code != http.StatusOK {
		return nil, fmt.Errorf("API error: code=%d status=%s", out.Code, out.Status)
	}
	return &out.Data, nil
}

func (c *Client) doRequest(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build API request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode API response: %w", err)
	}
	return nil
}
