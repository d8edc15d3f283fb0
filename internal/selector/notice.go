package selector

import "github.com/UnknownOlympus/pinpoint/internal/models"

// NoticeLevel classifies a user-facing notice.
type NoticeLevel string

const (
	// NoticeInfo is a neutral status message.
	NoticeInfo NoticeLevel = "info"
	// NoticeWarning is a recoverable condition the user should act on.
	NoticeWarning NoticeLevel = "warning"
	// NoticeError is a failed operation; the picker stays interactive.
	NoticeError NoticeLevel = "error"
)

// Notice is a message surfaced to the user. Failures never propagate out of
// the picker as errors; they all arrive here.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// Callbacks is the event surface the picker's caller subscribes to. Any nil
// callback is skipped. OnCoordinateCommitted fires exactly once per
// successful save and never on cancel or close; OnAddressResolved is a
// best-effort enrichment whose absence is not an error.
type Callbacks struct {
	OnCoordinateCommitted func(coordinate string)
	OnAddressResolved     func(address string)
	OnResults             func(results []models.SearchResult)
	OnNotice              func(notice Notice)
}
