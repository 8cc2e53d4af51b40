// Package geocoder resolves street addresses and zipcodes to coordinates
// through an external MapQuest-compatible geocoding provider.
package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Location is a resolved geographic point
type Location struct {
	Latitude  float64
	Longitude float64
	City      string
	Zipcode   string
}

// Client calls the geocoding provider over HTTP
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a geocoding client for the given provider
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// geocodeResponse mirrors the provider's response shape
type geocodeResponse struct {
	Results []struct {
		Locations []struct {
			LatLng struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"latLng"`
			AdminArea5 string `json:"adminArea5"` // city
			PostalCode string `json:"postalCode"`
		} `json:"locations"`
	} `json:"results"`
}

// Geocode resolves an address to its first candidate location
func (c *Client) Geocode(ctx context.Context, address string) (*Location, error) {
	endpoint := fmt.Sprintf("%s/address?key=%s&location=%s&maxResults=1",
		c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call geocoder: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode geocoder response: %w", err)
	}

	if len(decoded.Results) == 0 || len(decoded.Results[0].Locations) == 0 {
		return nil, fmt.Errorf("no geocoding result for %q", address)
	}

	loc := decoded.Results[0].Locations[0]
	return &Location{
		Latitude:  loc.LatLng.Lat,
		Longitude: loc.LatLng.Lng,
		City:      loc.AdminArea5,
		Zipcode:   loc.PostalCode,
	}, nil
}
