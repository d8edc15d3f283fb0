package selector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/UnknownOlympus/pinpoint/internal/config"
	"github.com/UnknownOlympus/pinpoint/internal/geocoding"
	"github.com/UnknownOlympus/pinpoint/internal/geolocation"
	"github.com/UnknownOlympus/pinpoint/internal/mapengine"
	"github.com/UnknownOlympus/pinpoint/internal/metrics"
	"github.com/UnknownOlympus/pinpoint/internal/models"
	"github.com/UnknownOlympus/pinpoint/internal/search"
	"github.com/UnknownOlympus/pinpoint/internal/storage"
)

// Zoom levels used when centering the map.
const (
	regionZoom = 13 // overview of the default region
	focusZoom  = 17 // zoomed in on a chosen point
)

// accuracyCircleMaxMeters is the accuracy threshold under which the picker
// renders an accuracy-radius overlay for a GPS fix on mobile devices.
const accuracyCircleMaxMeters = 100

// defaultTypeAheadDelay is the quiet period for keystroke-driven suggestions.
const defaultTypeAheadDelay = 300 * time.Millisecond

// Config carries the collaborators and tuning for a Selector.
type Config struct {
	Logger         *slog.Logger
	Forward        geocoding.ForwardGeocoder // forward text search provider
	Reverse        geocoding.ReverseGeocoder // reverse geocoding, usually a fallback chain
	ProviderName   string                    // provider label for metrics
	Locator        geolocation.Locator       // device geolocation capability; nil when absent
	Engines        mapengine.Factory         // constructs a fresh map engine per session
	Store          storage.Store             // durable store backing the recent-search list
	Metrics        *metrics.Metrics
	Device         models.DeviceClass
	DefaultCenter  models.Coordinate // region shown when no coordinate is preset
	GPS            config.GPSConfig
	TypeAheadDelay time.Duration // quiet period for TypeAhead; 0 means the default
	Callbacks      Callbacks
}

// Selector is the interactive coordinate picker: it manages the map session
// lifecycle, click-to-pin, GPS fixes, text/coordinate search with caching and
// recent history, and the pending/committed selection contract. The committed
// value only ever changes through Save.
type Selector struct {
	mu sync.Mutex

	log      *slog.Logger
	forward  geocoding.ForwardGeocoder
	reverse  geocoding.ReverseGeocoder
	provider string
	locator  geolocation.Locator
	engines  mapengine.Factory
	metrics  *metrics.Metrics
	device   models.DeviceClass
	center   models.Coordinate
	gps      config.GPSConfig
	events   Callbacks

	cache    *search.Cache
	history  *search.History
	debounce *search.Debouncer

	session   *session
	pending   *models.Coordinate
	committed *models.Coordinate
	searchSeq uint64
}

// New creates a Selector. The recent-search history is loaded from the store
// once, here; everything else is lazy.
func New(cfg Config) *Selector {
	delay := cfg.TypeAheadDelay
	if delay <= 0 {
		delay = defaultTypeAheadDelay
	}

	return &Selector{
		log:      cfg.Logger,
		forward:  cfg.Forward,
		reverse:  cfg.Reverse,
		provider: cfg.ProviderName,
		locator:  cfg.Locator,
		engines:  cfg.Engines,
		metrics:  cfg.Metrics,
		device:   cfg.Device,
		center:   cfg.DefaultCenter.Round(),
		gps:      cfg.GPS,
		events:   cfg.Callbacks,
		cache:    search.NewCache(search.DefaultCacheCapacity),
		history:  search.NewHistory(cfg.Store, cfg.Logger),
		debounce: search.NewDebouncer(delay),
	}
}

// Open creates the map session. With an initial coordinate the map centers
// there with a pre-placed marker and that coordinate as the pending
// selection; otherwise it centers on the default region. Opening while a
// session is already live is a no-op.
func (s *Selector) Open(initial *models.Coordinate) {
	s.mu.Lock()

	if s.session != nil {
		s.mu.Unlock()
		s.log.Warn("Open called while a picker session is already active")
		return
	}

	sess := newSession(s.engines())
	s.session = sess
	s.metrics.ActiveSessions.Inc()

	if initial != nil && initial.Valid() {
		coord := initial.Round()
		s.pending = &coord
		sess.engine.SetCenter(coord, focusZoom)
		sess.engine.PlaceMarker(coord)
		sess.hasMarker = true
	} else {
		sess.engine.SetCenter(s.center, regionZoom)
	}

	s.mu.Unlock()
	s.log.Debug("Picker session opened", "session", sess.id)
}

// Close discards the pending selection and tears down the map session,
// releasing every engine resource. Idempotent: closing twice, or before open,
// is a no-op. The committed selection survives.
func (s *Selector) Close() {
	s.debounce.Cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return
	}
	s.teardownLocked()
}

// Search runs an explicit search action (button press or Enter). It is never
// debounced and supersedes any pending type-ahead trigger and any in-flight
// search: only the most recent query's results reach the caller.
func (s *Selector) Search(ctx context.Context, query string) {
	s.debounce.Cancel()
	s.runSearch(ctx, query)
}

// TypeAhead schedules a suggestion search after a quiet period, replacing any
// earlier pending trigger. An explicit Search cancels it.
func (s *Selector) TypeAhead(ctx context.Context, query string) {
	s.debounce.Trigger(func() {
		s.runSearch(ctx, query)
	})
}

// SelectResult makes a previously returned search result the pending
// selection, recenters the map on it, and resolves its address. Works the
// same whether the result came from cache or network.
func (s *Selector) SelectResult(ctx context.Context, result models.SearchResult) {
	sessionID, open := s.currentSessionID()
	if !open {
		return
	}

	coord := result.Coordinate()
	if s.applySelection(sessionID, coord) {
		s.resolveAddress(ctx, sessionID, coord)
	}
}

// ClickAt handles a map click: the clicked point becomes the pending
// selection, the marker moves there, and reverse geocoding starts. This is
// the lowest-level input path and is always available while a session exists.
func (s *Selector) ClickAt(ctx context.Context, coord models.Coordinate) {
	sessionID, open := s.currentSessionID()
	if !open || !coord.Valid() {
		return
	}

	if s.applySelection(sessionID, coord.Round()) {
		s.resolveAddress(ctx, sessionID, coord.Round())
	}
}

// UseCurrentLocation requests a device position fix and, on success, makes it
// the pending selection. Failures surface as remediation notices tailored to
// the device class; the pending selection is never touched on failure.
func (s *Selector) UseCurrentLocation(ctx context.Context) {
	sessionID, open := s.currentSessionID()
	if !open {
		return
	}

	if s.locator == nil {
		s.notify(NoticeError, geolocation.Remediation(geolocation.ErrUnsupported, s.device))
		return
	}

	// Asking for the permission state first avoids a silent prompt-then-fail
	// cycle when access is already blocked.
	if querier, ok := s.locator.(geolocation.PermissionQuerier); ok {
		state, err := querier.PermissionState(ctx)
		if err == nil && state == geolocation.PermissionDeniedState {
			s.notify(NoticeError, geolocation.Remediation(geolocation.ErrPermissionDenied, s.device))
			return
		}
	}

	opts := geolocation.Options{
		HighAccuracy: true,
		Timeout:      s.gps.Timeout(s.device),
		MaximumAge:   s.gps.MaxAge(s.device),
	}

	position, err := s.locator.CurrentPosition(ctx, opts)
	if err != nil {
		s.log.WarnContext(ctx, "Geolocation failed", "error", err)
		s.notify(NoticeError, geolocation.Remediation(err, s.device))
		return
	}

	coord := position.Coordinate.Round()
	if !coord.Valid() {
		s.notify(NoticeError, geolocation.Remediation(geolocation.ErrPositionUnavailable, s.device))
		return
	}

	if !s.applySelection(sessionID, coord) {
		return // session closed while the fix was in flight
	}

	if s.device.IsMobile() && position.Accuracy > 0 && position.Accuracy < accuracyCircleMaxMeters {
		s.showAccuracyCircle(sessionID, coord, position.Accuracy)
	}

	if position.Accuracy > 0 {
		s.notify(NoticeInfo, fmt.Sprintf("Location found (accuracy ±%.0fm).", position.Accuracy))
	} else {
		s.notify(NoticeInfo, "Location found.")
	}

	s.resolveAddress(ctx, sessionID, coord)
}

// Save commits the pending selection: the committed value is updated, the
// caller receives the "{lat}, {lng}" string exactly once, and the session
// closes. With nothing selected it reports a validation notice and changes
// no state. This is the picker's only hard precondition.
func (s *Selector) Save() {
	s.mu.Lock()

	if s.pending == nil {
		s.mu.Unlock()
		s.notify(NoticeWarning, "Select a location before saving.")
		return
	}

	coord := *s.pending
	s.committed = &coord

	if s.session != nil {
		s.teardownLocked()
	}
	s.mu.Unlock()

	if s.events.OnCoordinateCommitted != nil {
		s.events.OnCoordinateCommitted(coord.String())
	}
}

// Clear removes the marker and discards the pending selection, leaving the
// session open for a fresh pick.
func (s *Selector) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return
	}

	if s.session.hasMarker {
		s.session.engine.RemoveMarker()
		s.session.hasMarker = false
	}
	s.pending = nil
}

// SetLayer toggles between the street and satellite tile layers. Purely a
// rendering concern; the pending selection is untouched.
func (s *Selector) SetLayer(mode mapengine.LayerMode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil || s.session.layer == mode {
		return
	}
	s.session.engine.SetLayer(mode)
	s.session.layer = mode
}

// Pending returns a copy of the tentative selection, or nil.
func (s *Selector) Pending() *models.Coordinate {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return nil
	}
	coord := *s.pending
	return &coord
}

// Committed returns a copy of the last saved selection, or nil.
func (s *Selector) Committed() *models.Coordinate {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.committed == nil {
		return nil
	}
	coord := *s.committed
	return &coord
}

// IsOpen reports whether a picker session is live.
func (s *Selector) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session != nil
}

// RecentSearches returns the persisted recent-search list, most recent first.
func (s *Selector) RecentSearches() []string {
	return s.history.Entries()
}

// runSearch implements the search sub-protocol: coordinate jump, cache
// lookup, then network search with history append.
func (s *Selector) runSearch(ctx context.Context, query string) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		s.notify(NoticeInfo, "Type a place name or coordinates to search.")
		return
	}

	sessionID, open := s.currentSessionID()
	if !open {
		return
	}

	// Every search claims a sequence number no matter how it resolves, so a
	// coordinate jump or cache hit also invalidates any slower network search
	// still in flight.
	seq := s.nextSearchSeq()

	// Step 1: a strict "<lat>, <lng>" input jumps straight to the point.
	coord, err := models.ParseCoordinate(trimmed)
	switch {
	case err == nil:
		s.metrics.SearchesTotal.WithLabelValues("coordinate").Inc()
		if s.applySelection(sessionID, coord) {
			s.resolveAddress(ctx, sessionID, coord)
		}
		return
	case errors.Is(err, models.ErrOutOfRange):
		s.notify(NoticeError, "Those coordinates are out of range. Latitude must be within ±90 and longitude within ±180.")
		return
	}

	// Step 2: cached queries skip the network entirely. The recent-search
	// list still moves the query to its head; a repeat is a successful search.
	if results, hit := s.cache.Get(trimmed); hit {
		s.metrics.SearchesTotal.WithLabelValues("cache").Inc()
		s.history.Add(ctx, trimmed)
		s.emitResults(results)
		return
	}

	// Step 3: forward search. Only the latest issued query may publish its
	// results; a slow stale response is dropped on return.
	start := time.Now()
	results, err := s.forward.Search(ctx, trimmed)
	s.metrics.RequestSeconds.WithLabelValues(s.provider, "search").Observe(time.Since(start).Seconds())

	if !s.isCurrentSearch(sessionID, seq) {
		s.log.DebugContext(ctx, "Dropping stale search response", "query", trimmed)
		return
	}

	if err != nil {
		s.log.ErrorContext(ctx, "Forward search failed", "query", trimmed, "error", err)
		s.metrics.ProviderErrors.Inc()
		s.notify(NoticeError, "Search failed. Check your connection and try again.")
		return
	}

	s.metrics.SearchesTotal.WithLabelValues("network").Inc()

	if len(results) == 0 {
		s.emitResults(nil)
		s.notify(NoticeWarning, fmt.Sprintf("No places found for %q.", trimmed))
		return
	}

	s.cache.Put(trimmed, results)
	s.history.Add(ctx, trimmed)
	s.emitResults(results)
}

// applySelection sets the pending selection and re-pins the map, provided the
// originating session is still the live one. Reports whether it applied.
func (s *Selector) applySelection(sessionID string, coord models.Coordinate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil || s.session.id != sessionID {
		return false
	}

	coord = coord.Round()
	s.pending = &coord
	s.session.engine.SetCenter(coord, focusZoom)
	s.session.engine.PlaceMarker(coord)
	s.session.hasMarker = true
	return true
}

// resolveAddress enriches a chosen point with a human-readable address.
// Failure is absorbed: the coordinate is the primary output and an address is
// a convenience, so a miss is logged and nothing more.
func (s *Selector) resolveAddress(ctx context.Context, sessionID string, coord models.Coordinate) {
	start := time.Now()
	address, err := s.reverse.Reverse(ctx, coord)
	s.metrics.RequestSeconds.WithLabelValues(s.provider, "reverse").Observe(time.Since(start).Seconds())

	if err != nil {
		s.log.WarnContext(ctx, "Address resolution failed", "lat", coord.Lat, "lng", coord.Lng, "error", err)
		return
	}

	s.mu.Lock()
	current := s.session != nil && s.session.id == sessionID
	callback := s.events.OnAddressResolved
	s.mu.Unlock()

	if current && callback != nil {
		callback(address)
	}
}

// showAccuracyCircle renders the accuracy overlay if the session is still live.
func (s *Selector) showAccuracyCircle(sessionID string, coord models.Coordinate, radius float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil || s.session.id != sessionID {
		return
	}
	s.session.engine.ShowAccuracyCircle(coord, radius)
}

// teardownLocked releases the session. Caller holds the mutex.
func (s *Selector) teardownLocked() {
	s.session.engine.Close()
	s.session = nil
	s.pending = nil
	s.metrics.ActiveSessions.Dec()
}

func (s *Selector) currentSessionID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return "", false
	}
	return s.session.id, true
}

func (s *Selector) nextSearchSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.searchSeq++
	return s.searchSeq
}

func (s *Selector) isCurrentSearch(sessionID string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session != nil && s.session.id == sessionID && s.searchSeq == seq
}

func (s *Selector) notify(level NoticeLevel, message string) {
	if s.events.OnNotice != nil {
		s.events.OnNotice(Notice{Level: level, Message: message})
	}
}

func (s *Selector) emitResults(results []models.SearchResult) {
	if s.events.OnResults != nil {
		s.events.OnResults(results)
	}
}
