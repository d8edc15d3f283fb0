package mapengine

import "github.com/UnknownOlympus/pinpoint/internal/models"

// LayerMode selects which tile layer set the engine renders.
type LayerMode string

const (
	// LayerStreet is the clean street tile layer.
	LayerStreet LayerMode = "street"
	// LayerSatellite is the satellite imagery layer paired with a
	// reference-boundary overlay.
	LayerSatellite LayerMode = "satellite"
)

// Engine is the external tile-rendering map engine the picker drives. One
// Engine instance backs one open picker session; Close releases every
// resource the engine holds (tile layers, marker, listeners) and the
// instance must not be reused afterwards.
type Engine interface {
	SetCenter(coord models.Coordinate, zoom int)
	PlaceMarker(coord models.Coordinate)
	RemoveMarker()
	SetLayer(mode LayerMode)
	ShowAccuracyCircle(center models.Coordinate, radiusMeters float64)
	Close()
}

// Factory constructs a fresh Engine for a new session.
type Factory func() Engine
