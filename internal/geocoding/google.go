package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/pinpoint/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider is a struct that holds the client for Google Maps API
// and a logger for logging purposes. It is used to interact with the
// Google Maps geocoding services.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

// GoogleAPIClient covers the two geocoding calls the picker needs, so tests
// can substitute a mock for the real Google Maps client.
type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
	ReverseGeocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// ErrGoogleEmptyResponse is returned when the Google Maps API responds with an empty result.
var ErrGoogleEmptyResponse = errors.New("get empty response from Google Maps API")

// NewGoogleProvider initializes a new GoogleProvider with the given API client and logger.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Search resolves a free-text query into candidate places using the Google
// Maps Geocoding API.
func (gp *GoogleProvider) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	gp.log.DebugContext(ctx, "Searching using Google Maps", "query", query)

	req := maps.GeocodingRequest{Address: query}
	geocodeResponse, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode query: %w", err)
	}

	results := make([]models.SearchResult, 0, len(geocodeResponse))
	for _, entry := range geocodeResponse {
		results = append(results, models.SearchResult{
			Lat:         entry.Geometry.Location.Lat,
			Lon:         entry.Geometry.Location.Lng,
			DisplayName: entry.FormattedAddress,
			Properties:  map[string]string{"name": entry.FormattedAddress},
		})
	}

	return results, nil
}

// Reverse resolves a coordinate into the formatted address of the nearest
// place known to the Google Maps Geocoding API.
func (gp *GoogleProvider) Reverse(ctx context.Context, coord models.Coordinate) (string, error) {
	gp.log.DebugContext(ctx, "Reverse geocoding using Google Maps", "lat", coord.Lat, "lon", coord.Lng)

	req := maps.GeocodingRequest{LatLng: &maps.LatLng{Lat: coord.Lat, Lng: coord.Lng}}
	geocodeResponse, err := gp.client.ReverseGeocode(ctx, &req)
	if err != nil {
		return "", fmt.Errorf("failed to reverse geocode coordinate: %w", err)
	}

	if len(geocodeResponse) == 0 {
		return "", ErrGoogleEmptyResponse
	}

	return geocodeResponse[0].FormattedAddress, nil
}
