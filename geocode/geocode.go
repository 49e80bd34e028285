package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/apex/log"
	"github.com/pkg/errors"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Client resolves coordinates into a human readable address via the
// Nominatim reverse geocoding API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

// Reverse returns the display address for the coordinates. When the lookup
// fails or returns nothing usable, it falls back to a plain coordinate
// string so the caller always gets an address it can store.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) string {
	address, err := c.reverse(ctx, lat, lng)
	if err != nil {
		log.WithError(err).Warn("reverse geocoding failed, falling back to coordinates")
		return CoordinateString(lat, lng)
	}
	return address
}

func (c *Client) reverse(ctx context.Context, lat, lng float64) (string, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lng))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", errors.Wrap(err, "building reverse geocode request")
	}
	req.Header.Set("User-Agent", "localfix/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "calling reverse geocode endpoint")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("reverse geocode endpoint returned %d", resp.StatusCode)
	}

	var body reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", errors.Wrap(err, "decoding reverse geocode response")
	}
	if body.DisplayName == "" {
		return "", errors.New("reverse geocode response had no display name")
	}
	return body.DisplayName, nil
}

// CoordinateString formats coordinates the way they are shown when no
// street address is available.
func CoordinateString(lat, lng float64) string {
	return fmt.Sprintf("%.4f, %.4f", lat, lng)
}
