package geocoding_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/pinpoint/internal/geocoding"
	"github.com/UnknownOlympus/pinpoint/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubReverse is a canned ReverseGeocoder for chain tests.
type stubReverse struct {
	address string
	err     error
	calls   int
}

func (sr *stubReverse) Reverse(_ context.Context, _ models.Coordinate) (string, error) {
	sr.calls++
	return sr.address, sr.err
}

func TestReverseChain(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	coord := models.Coordinate{Lat: -7.2575, Lng: 112.7521}

	t.Run("primary success skips the fallback", func(t *testing.T) {
		primary := &stubReverse{address: "Jalan Pemuda, Surabaya"}
		fallback := &stubReverse{address: "unused"}

		chain := geocoding.NewReverseChain(logger, primary, fallback)
		address, err := chain.Reverse(ctx, coord)

		require.NoError(t, err)
		assert.Equal(t, "Jalan Pemuda, Surabaya", address)
		assert.Equal(t, 1, primary.calls)
		assert.Equal(t, 0, fallback.calls)
	})

	t.Run("fallback is consulted when the primary fails", func(t *testing.T) {
		primary := &stubReverse{err: errors.New("primary down")}
		fallback := &stubReverse{address: "Genteng, Surabaya, Indonesia"}

		chain := geocoding.NewReverseChain(logger, primary, fallback)
		address, err := chain.Reverse(ctx, coord)

		require.NoError(t, err)
		assert.Equal(t, "Genteng, Surabaya, Indonesia", address)
		assert.Equal(t, 1, primary.calls)
		assert.Equal(t, 1, fallback.calls)
	})

	t.Run("all providers failing joins every error", func(t *testing.T) {
		primary := &stubReverse{err: errors.New("primary down")}
		fallback := &stubReverse{err: errors.New("fallback down")}

		chain := geocoding.NewReverseChain(logger, primary, fallback)
		_, err := chain.Reverse(ctx, coord)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "all 2 reverse geocoding providers failed")
		assert.Contains(t, err.Error(), "primary down")
		assert.Contains(t, err.Error(), "fallback down")
	})

	t.Run("empty chain", func(t *testing.T) {
		chain := geocoding.NewReverseChain(logger)

		_, err := chain.Reverse(ctx, coord)

		assert.ErrorIs(t, err, geocoding.ErrNoReverseProviders)
	})
}
