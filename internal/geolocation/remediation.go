package geolocation

import (
	"errors"

	"github.com/UnknownOlympus/pinpoint/internal/models"
)

// Remediation maps a geolocation failure to a user-facing message with
// device-appropriate recovery steps. Enabling high-accuracy mode is only
// actionable on mobile, so the variants differ per device class.
func Remediation(err error, device models.DeviceClass) string {
	mobile := device.IsMobile()

	switch {
	case errors.Is(err, ErrUnsupported):
		return "This device does not support location services. Pick a point on the map instead."
	case errors.Is(err, ErrPermissionDenied):
		if mobile {
			return "Location access is blocked. Allow location for this app in your phone settings, then try again."
		}
		return "Location access is blocked. Allow location access in your browser's site settings, then try again."
	case errors.Is(err, ErrPositionUnavailable):
		if mobile {
			return "Could not determine your position. Enable high-accuracy (GPS) mode and move to an open area, then retry."
		}
		return "Could not determine your position. Check your network connection and retry, or pick a point on the map."
	case errors.Is(err, ErrTimeout):
		if mobile {
			return "Locating took too long. GPS can be slow indoors; move near a window or outside and retry."
		}
		return "Locating took too long. Retry, or pick a point on the map instead."
	default:
		return "Could not get your location. Pick a point on the map instead."
	}
}
