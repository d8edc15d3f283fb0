package mapengine

import (
	"log/slog"

	"github.com/UnknownOlympus/pinpoint/internal/models"
)

// LogEngine is a headless Engine that records every operation to the logger.
// It backs the demo binary, where no real tile renderer is attached.
type LogEngine struct {
	log *slog.Logger
}

// NewLogEngine creates a LogEngine.
func NewLogEngine(log *slog.Logger) *LogEngine {
	return &LogEngine{log: log}
}

func (le *LogEngine) SetCenter(coord models.Coordinate, zoom int) {
	le.log.Debug("map: set center", "lat", coord.Lat, "lng", coord.Lng, "zoom", zoom)
}

func (le *LogEngine) PlaceMarker(coord models.Coordinate) {
	le.log.Debug("map: place marker", "lat", coord.Lat, "lng", coord.Lng)
}

func (le *LogEngine) RemoveMarker() {
	le.log.Debug("map: remove marker")
}

func (le *LogEngine) SetLayer(mode LayerMode) {
	le.log.Debug("map: set layer", "mode", string(mode))
}

func (le *LogEngine) ShowAccuracyCircle(center models.Coordinate, radiusMeters float64) {
	le.log.Debug("map: show accuracy circle", "lat", center.Lat, "lng", center.Lng, "radius_m", radiusMeters)
}

func (le *LogEngine) Close() {
	le.log.Debug("map: closed")
}
