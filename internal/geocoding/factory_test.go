package geocoding_test

import (
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/pinpoint/internal/geocoding"
	"github.com/UnknownOlympus/pinpoint/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviders(t *testing.T) {
	logger := slog.Default()
	bias := models.Coordinate{Lat: -7.2575, Lng: 112.7521}

	t.Run("create Photon providers successfully", func(t *testing.T) {
		config := geocoding.ProviderConfig{
			Type:      geocoding.ProviderTypePhoton,
			RateLimit: 10,
			Bias:      bias,
			Logger:    logger,
		}

		forward, reverse, err := geocoding.NewProviders(config)

		require.NoError(t, err)
		require.NotNil(t, forward)
		require.NotNil(t, reverse)
		// Verify it's a PhotonProvider by type assertion
		_, ok := forward.(*geocoding.PhotonProvider)
		assert.True(t, ok, "expected forward geocoder to be *PhotonProvider")
	})

	t.Run("create Google providers successfully", func(t *testing.T) {
		config := geocoding.ProviderConfig{
			Type:      geocoding.ProviderTypeGoogle,
			APIKey:    "test-api-key",
			RateLimit: 10,
			Logger:    logger,
		}

		forward, reverse, err := geocoding.NewProviders(config)

		require.NoError(t, err)
		require.NotNil(t, forward)
		require.NotNil(t, reverse)
		_, ok := forward.(*geocoding.GoogleProvider)
		assert.True(t, ok, "expected forward geocoder to be *GoogleProvider")
	})

	t.Run("create Google providers without API key fails", func(t *testing.T) {
		config := geocoding.ProviderConfig{
			Type:      geocoding.ProviderTypeGoogle,
			APIKey:    "",
			RateLimit: 10,
			Logger:    logger,
		}

		forward, reverse, err := geocoding.NewProviders(config)

		require.Error(t, err)
		require.Nil(t, forward)
		require.Nil(t, reverse)
		assert.Contains(t, err.Error(), "API key is required for Google provider")
	})

	t.Run("missing rate limit gets a default", func(t *testing.T) {
		config := geocoding.ProviderConfig{
			Type:   geocoding.ProviderTypePhoton,
			Bias:   bias,
			Logger: logger,
		}

		forward, reverse, err := geocoding.NewProviders(config)

		require.NoError(t, err)
		require.NotNil(t, forward)
		require.NotNil(t, reverse)
	})

	t.Run("unsupported provider type", func(t *testing.T) {
		config := geocoding.ProviderConfig{
			Type:   geocoding.ProviderType("visicom"),
			Logger: logger,
		}

		forward, reverse, err := geocoding.NewProviders(config)

		require.Error(t, err)
		require.Nil(t, forward)
		require.Nil(t, reverse)
		assert.Contains(t, err.Error(), "unsupported provider type")
	})
}
