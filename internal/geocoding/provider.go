package geocoding

import (
	"context"
	"net/http"

	"github.com/UnknownOlympus/pinpoint/internal/models"
)

// ForwardGeocoder resolves a free-text query into candidate places. An empty
// result list is a normal outcome ("not found"), not an error.
type ForwardGeocoder interface {
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
}

// ReverseGeocoder resolves a coordinate into a human-readable address.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, coord models.Coordinate) (string, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
