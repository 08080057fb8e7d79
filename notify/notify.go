package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avelius/stockwatch/stats"
)

// Status classifies a notification or log event.
//
// Status is a closed set: [StatusSuccess], [StatusError], [StatusInfo],
// [StatusWarning]. Display colors and emoji are derived from the status
// through explicit lookup tables rather than scattered branching.
type Status string

const (
	// StatusSuccess marks a positive event, such as a restock.
	StatusSuccess Status = "success"

	// StatusError marks a failed check or delivery.
	StatusError Status = "error"

	// StatusInfo marks a neutral, informational event.
	StatusInfo Status = "info"

	// StatusWarning marks a non-fatal but unwanted observation, such as an
	// out-of-stock check.
	StatusWarning Status = "warning"
)

// String returns the string representation of the status.
// This implements the fmt.Stringer interface.
func (s Status) String() string {
	return string(s)
}

// embedColors maps each status to a Discord embed color integer.
var embedColors = map[Status]int{
	StatusSuccess: 0x00FF00, // green
	StatusError:   0xFF0000, // red
	StatusInfo:    0x00FFFF, // cyan
	StatusWarning: 0xFFFF00, // yellow
}

// statusEmoji maps each status to an emoji prefix for embed titles.
var statusEmoji = map[Status]string{
	StatusSuccess: "✅",
	StatusError:   "❌",
	StatusInfo:    "ℹ️",
	StatusWarning: "⚠️",
}

// EmbedColor returns the Discord embed color integer for the status.
// Unknown statuses map to the info color.
func (s Status) EmbedColor() int {
	if c, ok := embedColors[s]; ok {
		return c
	}
	return embedColors[StatusInfo]
}

// Emoji returns the emoji prefix for the status.
func (s Status) Emoji() string {
	if e, ok := statusEmoji[s]; ok {
		return e
	}
	return statusEmoji[StatusInfo]
}

// Event is a single notification to deliver.
//
// Event is immutable after creation via [NewEvent] and carries everything
// a delivery channel needs: a correlation ID for logs, the title and
// message, the event status, the statistics snapshot at dispatch time, and
// the dispatch timestamp.
type Event struct {
	// ID is a unique identifier correlating the event across notifiers and logs.
	ID string

	// Title is the notification headline.
	Title string

	// Message is the notification body text.
	Message string

	// Status classifies the event for color and emoji mapping.
	Status Status

	// Stats is the counter snapshot taken when the event was dispatched.
	Stats stats.Snapshot

	// Timestamp is when the event was created.
	Timestamp time.Time
}

// NewEvent creates an [Event] with a fresh correlation ID and the current
// timestamp.
func NewEvent(title, message string, status Status, snap stats.Snapshot) Event {
	return Event{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		Status:    status,
		Stats:     snap,
		Timestamp: time.Now().UTC(),
	}
}

// Notifier is the capability interface for notification delivery channels.
//
// Implementations must be safe to call from the watch loop and must fail
// softly: a delivery error is returned (and counted by the caller), never
// panicked. New channels are added by implementing this interface.
type Notifier interface {
	// Name identifies the channel in logs (e.g. "desktop", "discord").
	Name() string

	// Notify delivers the event. The context bounds the delivery attempt.
	Notify(ctx context.Context, event Event) error
}

// DeliveryError indicates that a notifier failed to deliver an event.
type DeliveryError struct {
	Notifier string
	Err      error
}

// Error implements the error interface.
func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s delivery failed: %v", e.Notifier, e.Err)
}

// Unwrap returns the underlying delivery error.
func (e *DeliveryError) Unwrap() error {
	return e.Err
}
