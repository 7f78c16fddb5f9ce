package domain

import "time"

// Activity event types recorded by the event log.
const (
	EventSearch    = "search"
	EventCopyLink  = "copy_link"
	EventEmailSent = "email_sent"
)

// ActivityEvent is one recorded user action.
type ActivityEvent struct {
	// Event is the event type (EventSearch, EventCopyLink, ...).
	Event string `json:"event"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Fields carries event-specific data (query text, result URL, ...).
	Fields map[string]string `json:"fields,omitempty"`
}

// Month returns the event's month bucket in "YYYY-MM" form, the
// granularity used by usage reports.
func (e ActivityEvent) Month() string {
	return e.Timestamp.Format("2006-01")
}
