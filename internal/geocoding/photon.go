package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/UnknownOlympus/pinpoint/internal/models"
	"golang.org/x/time/rate"
)

// Photon API endpoints (komoot's public instance).
const (
	PhotonSearchURL  = "https://photon.komoot.io/api"
	PhotonReverseURL = "https://photon.komoot.io/reverse"
)

// photonResultLimit caps how many candidates one search returns.
const photonResultLimit = 10

// PhotonProvider implements forward and reverse geocoding using the Photon
// API. Photon is free and does not require an API key; responses are GeoJSON
// feature collections with structured address properties.
type PhotonProvider struct {
	client     HTTPClient        // HTTP client for making requests
	searchURL  string            // Endpoint for forward search
	reverseURL string            // Endpoint for reverse geocoding
	bias       models.Coordinate // Center the search is biased toward
	log        *slog.Logger      // Logger for logging operations
	limiter    *rate.Limiter     // Rate limiter
}

// Common errors for Photon provider.
var (
	ErrPhotonEmptyResponse = errors.New("photon API returned empty response")
	ErrPhotonInvalidCoords = errors.New("photon API returned invalid geometry")
	ErrPhotonEmptyQuery    = errors.New("photon provider got empty query")
)

// photonResponse is the GeoJSON shape returned by both endpoints.
type photonResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
		Properties photonProperties `json:"properties"`
	} `json:"features"`
}

type photonProperties struct {
	Name        string `json:"name"`
	Street      string `json:"street"`
	HouseNumber string `json:"housenumber"`
	District    string `json:"district"`
	City        string `json:"city"`
	State       string `json:"state"`
	Postcode    string `json:"postcode"`
	Country     string `json:"country"`
}

// NewPhotonProvider creates a new Photon geocoding provider biased toward the
// given region center.
func NewPhotonProvider(bias models.Coordinate, rateLimit int, log *slog.Logger) *PhotonProvider {
	const timeout = 10

	return &PhotonProvider{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		searchURL:  PhotonSearchURL,
		reverseURL: PhotonReverseURL,
		bias:       bias,
		log:        log,
		limiter:    rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
	}
}

// NewPhotonProviderWithClient allows injecting a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewPhotonProviderWithClient(
	client HTTPClient,
	bias models.Coordinate,
	limiter *rate.Limiter,
	log *slog.Logger,
) *PhotonProvider {
	return &PhotonProvider{
		client:     client,
		searchURL:  PhotonSearchURL,
		reverseURL: PhotonReverseURL,
		bias:       bias,
		log:        log,
		limiter:    limiter,
	}
}

// Search resolves a free-text query into candidate places, biased toward the
// configured region center. An empty candidate list is returned as-is; the
// caller decides how to surface "not found".
func (pp *PhotonProvider) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	if err := pp.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	pp.log.DebugContext(ctx, "Searching using Photon", "query", query)

	if query == "" {
		return nil, ErrPhotonEmptyQuery
	}

	reqURL, err := url.Parse(pp.searchURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search URL: %w", err)
	}

	values := reqURL.Query()
	values.Set("q", query)
	values.Set("limit", strconv.Itoa(photonResultLimit))
	if pp.bias.Valid() && (pp.bias.Lat != 0 || pp.bias.Lng != 0) {
		values.Set("lat", strconv.FormatFloat(pp.bias.Lat, 'f', 6, 64))
		values.Set("lon", strconv.FormatFloat(pp.bias.Lng, 'f', 6, 64))
	}
	reqURL.RawQuery = values.Encode()

	body, err := pp.fetch(ctx, reqURL.String())
	if err != nil {
		return nil, err
	}

	var parsed photonResponse
	if err = json.Unmarshal(body, &parsed); err != nil {
		pp.log.ErrorContext(ctx, "Failed to parse Photon response", "error", err, "body", string(body))
		return nil, fmt.Errorf("failed to decode photon response: %w", err)
	}

	results := make([]models.SearchResult, 0, len(parsed.Features))
	for _, feature := range parsed.Features {
		const coordsListLength = 2
		if len(feature.Geometry.Coordinates) != coordsListLength {
			return nil, ErrPhotonInvalidCoords
		}

		props := feature.Properties.asMap()
		results = append(results, models.SearchResult{
			Lon:         feature.Geometry.Coordinates[0],
			Lat:         feature.Geometry.Coordinates[1],
			DisplayName: displayName(props),
			Properties:  props,
		})
	}

	pp.log.DebugContext(ctx, "Photon search finished", "query", query, "results", len(results))

	return results, nil
}

// Reverse resolves a coordinate into a compact address string.
func (pp *PhotonProvider) Reverse(ctx context.Context, coord models.Coordinate) (string, error) {
	if err := pp.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit exceeded: %w", err)
	}

	pp.log.DebugContext(ctx, "Reverse geocoding using Photon", "lat", coord.Lat, "lon", coord.Lng)

	reqURL, err := url.Parse(pp.reverseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse reverse URL: %w", err)
	}

	values := reqURL.Query()
	values.Set("lat", strconv.FormatFloat(coord.Lat, 'f', 6, 64))
	values.Set("lon", strconv.FormatFloat(coord.Lng, 'f', 6, 64))
	values.Set("limit", "1")
	reqURL.RawQuery = values.Encode()

	body, err := pp.fetch(ctx, reqURL.String())
	if err != nil {
		return "", err
	}

	var parsed photonResponse
	if err = json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode photon response: %w", err)
	}

	if len(parsed.Features) == 0 {
		return "", ErrPhotonEmptyResponse
	}

	address := FormatAddress(parsed.Features[0].Properties.asMap())
	if address == "" {
		return "", ErrPhotonEmptyResponse
	}

	pp.log.DebugContext(ctx, "Photon found address", "address", address)

	return address, nil
}

// fetch executes a GET request and returns the response body on HTTP 200.
func (pp *PhotonProvider) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := pp.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		pp.log.ErrorContext(ctx, "Photon API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("photon API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

func (p photonProperties) asMap() map[string]string {
	props := make(map[string]string)
	for key, value := range map[string]string{
		"name":        p.Name,
		"street":      p.Street,
		"housenumber": p.HouseNumber,
		"district":    p.District,
		"city":        p.City,
		"state":       p.State,
		"postcode":    p.Postcode,
		"country":     p.Country,
	} {
		if value != "" {
			props[key] = value
		}
	}
	return props
}

// displayName prefers the compact address; when every structured field is
// empty it falls back to the country so the result is never label-less.
func displayName(props map[string]string) string {
	if address := FormatAddress(props); address != "" {
		return address
	}
	return props["country"]
}
