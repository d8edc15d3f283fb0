package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/pinpoint/internal/models"
)

// ReverseChain tries an ordered list of reverse geocoding providers until one
// succeeds. The explicit list replaces nested try/catch-style fallbacks:
// adding a third provider is a one-line change at construction.
type ReverseChain struct {
	providers []ReverseGeocoder // providers in fallback order, primary first
	log       *slog.Logger
}

// ErrNoReverseProviders is returned when the chain was built without providers.
var ErrNoReverseProviders = errors.New("reverse geocoding chain has no providers")

// NewReverseChain creates a chain that consults providers in the given order.
func NewReverseChain(log *slog.Logger, providers ...ReverseGeocoder) *ReverseChain {
	return &ReverseChain{providers: providers, log: log}
}

// Reverse returns the first successful address. When every provider fails the
// joined errors are returned so the caller can log the full story.
func (rc *ReverseChain) Reverse(ctx context.Context, coord models.Coordinate) (string, error) {
	if len(rc.providers) == 0 {
		return "", ErrNoReverseProviders
	}

	var errs []error
	for idx, provider := range rc.providers {
		address, err := provider.Reverse(ctx, coord)
		if err == nil {
			if idx > 0 {
				rc.log.InfoContext(ctx, "Reverse geocoded using fallback provider", "fallback_level", idx)
			}
			return address, nil
		}

		rc.log.WarnContext(ctx, "Reverse geocoding provider failed, trying next",
			"fallback_level", idx, "error", err)
		errs = append(errs, err)
	}

	return "", fmt.Errorf("all %d reverse geocoding providers failed: %w", len(rc.providers), errors.Join(errs...))
}
