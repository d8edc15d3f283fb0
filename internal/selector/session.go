package selector

import (
	"github.com/UnknownOlympus/pinpoint/internal/mapengine"
	"github.com/google/uuid"
)

// session owns the live map engine for one open picker dialog. It is created
// by Open, destroyed by Close, and never shared or reused: every async
// callback compares session ids before touching map state, so a response that
// arrives after teardown hits nothing.
type session struct {
	id        string
	engine    mapengine.Engine
	layer     mapengine.LayerMode
	hasMarker bool
}

func newSession(engine mapengine.Engine) *session {
	return &session{
		id:     uuid.NewString(),
		engine: engine,
		layer:  mapengine.LayerStreet,
	}
}
