// Package geocode resolves free-text addresses to coordinates using a
// Nominatim-style HTTP search endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/time/rate"
)

// ErrNotFound is returned when the geocoder has no result for an address.
// It is a normal outcome, not a service failure: the enrichment stage drops
// the event and moves on.
var ErrNotFound = errors.New("geocode: no results for address")

// Point is a coordinate pair in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Client queries a Nominatim-compatible geocoding endpoint.
//
// Public geocoders enforce a per-client request rate, so the Limiter is
// consulted before every lookup when set. The HTTP client is injected and
// carries the per-call timeout.
type Client struct {
	HTTP      *http.Client
	BaseURL   string
	UserAgent string
	Limiter   *rate.Limiter
}

// nominatim returns lat/lon as strings.
type result struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves one address to a coordinate pair. It returns ErrNotFound
// when the service answers with an empty result set.
func (c *Client) Geocode(ctx context.Context, address string) (Point, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return Point{}, err
		}
	}

	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return Point{}, err
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Point{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Point{}, fmt.Errorf("geocode: status %d for %q", resp.StatusCode, address)
	}

	var results []result
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Point{}, fmt.Errorf("geocode: decode response: %w", err)
	}
	if len(results) == 0 {
		return Point{}, ErrNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Point{}, fmt.Errorf("geocode: bad latitude %q: %w", results[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Point{}, fmt.Errorf("geocode: bad longitude %q: %w", results[0].Lon, err)
	}

	return Point{Lat: lat, Lng: lng}, nil
}
