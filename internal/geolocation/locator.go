package geolocation

import (
	"context"
	"errors"
	"time"

	"github.com/UnknownOlympus/pinpoint/internal/models"
)

// Options tunes a position fix request, mirroring the geolocation capability
// contract consumed by the picker.
type Options struct {
	HighAccuracy bool          // HighAccuracy requests a GPS-grade fix where available.
	Timeout      time.Duration // Timeout bounds how long acquisition may take.
	MaximumAge   time.Duration // MaximumAge allows reuse of a cached fix up to this age.
}

// Position is a successful fix.
type Position struct {
	Coordinate models.Coordinate
	Accuracy   float64 // Accuracy is the fix radius in meters; 0 when unknown.
}

// Locator is the device geolocation capability. Implementations wrap whatever
// the host platform provides; a nil Locator means the capability is absent.
type Locator interface {
	CurrentPosition(ctx context.Context, opts Options) (Position, error)
}

// PermissionState describes the outcome of a permission pre-check.
type PermissionState string

const (
	// PermissionGranted means acquisition may proceed without prompting.
	PermissionGranted PermissionState = "granted"
	// PermissionPrompt means the user will be asked on the next acquisition.
	PermissionPrompt PermissionState = "prompt"
	// PermissionDeniedState means the user has explicitly blocked access.
	PermissionDeniedState PermissionState = "denied"
)

// PermissionQuerier is an optional capability of a Locator. Checking it first
// avoids a silent prompt-then-fail cycle when access is already blocked.
type PermissionQuerier interface {
	PermissionState(ctx context.Context) (PermissionState, error)
}

// Canonical geolocation failures, matching the capability's error codes.
var (
	ErrUnsupported         = errors.New("geolocation is not supported on this device")
	ErrPermissionDenied    = errors.New("geolocation permission denied")
	ErrPositionUnavailable = errors.New("position unavailable")
	ErrTimeout             = errors.New("position acquisition timed out")
)
