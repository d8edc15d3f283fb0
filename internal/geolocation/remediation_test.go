package geolocation_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/UnknownOlympus/pinpoint/internal/geolocation"
	"github.com/UnknownOlympus/pinpoint/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRemediation(t *testing.T) {
	t.Run("device classes get distinct remediation steps", func(t *testing.T) {
		for _, err := range []error{
			geolocation.ErrPermissionDenied,
			geolocation.ErrPositionUnavailable,
			geolocation.ErrTimeout,
		} {
			mobile := geolocation.Remediation(err, models.DeviceMobile)
			desktop := geolocation.Remediation(err, models.DeviceDesktop)

			assert.NotEmpty(t, mobile)
			assert.NotEmpty(t, desktop)
			assert.NotEqual(t, mobile, desktop, "error %v", err)
		}
	})

	t.Run("unsupported is device independent", func(t *testing.T) {
		mobile := geolocation.Remediation(geolocation.ErrUnsupported, models.DeviceMobile)
		desktop := geolocation.Remediation(geolocation.ErrUnsupported, models.DeviceDesktop)

		assert.Equal(t, mobile, desktop)
		assert.Contains(t, mobile, "does not support")
	})

	t.Run("high-accuracy advice only appears on mobile", func(t *testing.T) {
		mobile := geolocation.Remediation(geolocation.ErrPositionUnavailable, models.DeviceMobile)
		desktop := geolocation.Remediation(geolocation.ErrPositionUnavailable, models.DeviceDesktop)

		assert.Contains(t, mobile, "high-accuracy")
		assert.NotContains(t, desktop, "high-accuracy")
	})

	t.Run("wrapped errors still match", func(t *testing.T) {
		wrapped := fmt.Errorf("locator: %w", geolocation.ErrTimeout)

		message := geolocation.Remediation(wrapped, models.DeviceDesktop)

		assert.Contains(t, message, "too long")
	})

	t.Run("unknown error falls back to a generic message", func(t *testing.T) {
		message := geolocation.Remediation(errors.New("boom"), models.DeviceDesktop)

		assert.Contains(t, message, "Pick a point on the map")
	})
}
