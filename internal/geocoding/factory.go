package geocoding

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/pinpoint/internal/models"
	"googlemaps.github.io/maps"
)

// ProviderType represents the type of geocoding provider.
type ProviderType string

const (
	// ProviderTypePhoton represents the komoot Photon geocoding provider.
	ProviderTypePhoton ProviderType = "photon"
	// ProviderTypeGoogle represents Google Maps geocoding provider.
	ProviderTypeGoogle ProviderType = "google"
)

// ProviderConfig holds configuration for creating geocoding providers.
type ProviderConfig struct {
	Type      ProviderType      // Type of primary provider to create
	APIKey    string            // API key (used by Google provider)
	RateLimit int               // Rate limit for requests per second
	Bias      models.Coordinate // Region center forward searches are biased toward
	Logger    *slog.Logger      // Logger for the providers
}

// NewProviders creates the forward geocoder and the reverse fallback chain
// from one configuration. It applies the Factory pattern to decouple provider
// instantiation from picker logic.
//
// Supported primary provider types:
// - "photon": komoot Photon API (free, no API key required)
// - "google": Google Maps Geocoding API (requires API key)
//
// The reverse side is always an ordered chain: the primary provider first,
// then Nominatim with its flat display_name response as the last resort.
func NewProviders(config ProviderConfig) (ForwardGeocoder, *ReverseChain, error) {
	if config.RateLimit == 0 {
		const defaultRateLimit = 5
		config.RateLimit = defaultRateLimit
		config.Logger.Warn("Rate limit for geocoding not set, set a default value", "value", config.RateLimit)
	}

	switch config.Type {
	case ProviderTypePhoton:
		photon := NewPhotonProvider(config.Bias, config.RateLimit, config.Logger)
		chain := NewReverseChain(config.Logger, photon, NewNominatimProvider(config.Logger))
		return photon, chain, nil
	case ProviderTypeGoogle:
		google, err := newGoogleProvider(config)
		if err != nil {
			return nil, nil, err
		}
		chain := NewReverseChain(config.Logger, google, NewNominatimProvider(config.Logger))
		return google, chain, nil
	default:
		return nil, nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

// newGoogleProvider creates a Google Maps geocoding provider.
func newGoogleProvider(config ProviderConfig) (*GoogleProvider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(config.APIKey),
	}

	if config.RateLimit > 0 {
		clientOpts = append(clientOpts, maps.WithRateLimit(config.RateLimit))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Logger), nil
}
