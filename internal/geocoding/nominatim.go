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
)

// NominatimProvider implements reverse geocoding using OpenStreetMap's
// Nominatim API. It is the fallback behind the primary provider: the response
// shape is flatter (a single display_name string), which is good enough when
// the structured address lookup has already failed.
type NominatimProvider struct {
	client  HTTPClient   // HTTP client for making requests
	baseURL string       // Base URL for the Nominatim reverse endpoint
	log     *slog.Logger // Logger for logging operations
	// userAgent is required by Nominatim usage policy
	userAgent string
}

// nominatimReverseResponse represents the JSON response from the Nominatim
// reverse endpoint.
type nominatimReverseResponse struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

// Common errors for Nominatim provider.
var (
	ErrNominatimEmptyResponse = errors.New("nominatim API returned empty response")
	ErrNominatimLookupFailed  = errors.New("nominatim API could not resolve the coordinate")
)

// NewNominatimProvider creates a new Nominatim reverse geocoding provider.
// Uses the public Nominatim API endpoint by default.
func NewNominatimProvider(log *slog.Logger) *NominatimProvider {
	const timeout = 10
	return &NominatimProvider{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL: "https://nominatim.openstreetmap.org/reverse",
		log:     log,
		// User-Agent MUST include valid contact info per Nominatim usage policy:
		// https://operations.osmfoundation.org/policies/nominatim/
		userAgent: "Pinpoint-Location-Picker/1.0 (https://github.com/UnknownOlympus/pinpoint)",
	}
}

// NewNominatimProviderWithClient creates a Nominatim provider with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewNominatimProviderWithClient(client HTTPClient, log *slog.Logger) *NominatimProvider {
	return &NominatimProvider{
		client:    client,
		baseURL:   "https://nominatim.openstreetmap.org/reverse",
		log:       log,
		userAgent: "Pinpoint-Location-Picker/1.0 (https://github.com/UnknownOlympus/pinpoint)",
	}
}

// Reverse resolves a coordinate into Nominatim's display_name string.
//
// Note: Nominatim has a rate limit of 1 request/second for fair use. The
// picker only calls this after the primary provider failed, which keeps the
// volume well under the policy.
func (np *NominatimProvider) Reverse(ctx context.Context, coord models.Coordinate) (string, error) {
	np.log.DebugContext(ctx, "Reverse geocoding using Nominatim", "lat", coord.Lat, "lon", coord.Lng)

	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("lat", strconv.FormatFloat(coord.Lat, 'f', 6, 64))
	query.Set("lon", strconv.FormatFloat(coord.Lng, 'f', 6, 64))
	query.Set("format", "json")
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	// Set required headers per Nominatim usage policy
	req.Header.Set("User-Agent", np.userAgent)

	resp, err := np.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute reverse geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		np.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return "", fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	var result nominatimReverseResponse
	if err = json.Unmarshal(body, &result); err != nil {
		np.log.ErrorContext(ctx, "Failed to parse Nominatim response", "error", err, "body", string(body))
		return "", fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	if result.Error != "" {
		return "", fmt.Errorf("%w: %s", ErrNominatimLookupFailed, result.Error)
	}
	if result.DisplayName == "" {
		return "", ErrNominatimEmptyResponse
	}

	np.log.DebugContext(ctx, "Nominatim found address", "address", result.DisplayName)

	return result.DisplayName, nil
}
