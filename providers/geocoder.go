package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"storefront/models"
	"time"
)

// Geocoder resolves a postal address to a coordinate.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (models.Coordinate, error)
}

// HTTPGeocoder calls an external geocoding endpoint that accepts
// {"address": ...} and answers {"lat": ..., "lng": ...}.
type HTTPGeocoder struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPGeocoder creates a new HTTPGeocoder.
func NewHTTPGeocoder(baseURL, apiKey string) *HTTPGeocoder {
	return &HTTPGeocoder{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type geocodeRequest struct {
	Address string `json:"address"`
}

type geocodeResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Resolve calls the geocoding endpoint.
func (g *HTTPGeocoder) Resolve(ctx context.Context, address string) (models.Coordinate, error) {
	body, err := json.Marshal(geocodeRequest{Address: address})
	if err != nil {
		return models.Coordinate{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/geocode", bytes.NewReader(body))
	if err != nil {
		return models.Coordinate{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Coordinate{}, fmt.Errorf("geocode request: status %d", resp.StatusCode)
	}

	var out geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.Coordinate{}, fmt.Errorf("geocode decode: %w", err)
	}
	return models.Coordinate{Lat: out.Lat, Lng: out.Lng}, nil
}
