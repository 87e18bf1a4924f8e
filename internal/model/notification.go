package model

import "time"

// NotificationKind identifies what event produced a notification.
type NotificationKind string

const (
	NotificationTag      NotificationKind = "tag"
	NotificationComment  NotificationKind = "comment"
	NotificationReaction NotificationKind = "reaction"
	NotificationReport   NotificationKind = "report"
)

// Notification is a server-generated event record surfaced to the user.
// The client never creates one; it only fetches and marks them read.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID int `json:"id"`

	// Kind is the event type; unrecognized values render as a generic
	// notification.
	Kind NotificationKind `json:"type"`

	// Message is the human-readable notification text.
	Message string `json:"message"`

	// ShoutoutID references the shout-out this notification points at,
	// when there is one.
	ShoutoutID int `json:"shoutout_id,omitempty"`

	// CommentID references a specific comment, for comment-level events.
	CommentID int `json:"comment_id,omitempty"`

	// Read indicates whether the user has seen this notification.
	// Transitions false to true only, never back.
	Read bool `json:"is_read"`

	// CreatedAt is when this notification was generated server-side.
	CreatedAt time.Time `json:"created_at"`
}

// Title returns the headline text shown above the notification message.
func (n Notification) Title() string {
	switch n.Kind {
	case NotificationTag:
		return "You were recognized in a shout-out"
	case NotificationComment:
		return "New comment on your shout-out"
	case NotificationReaction:
		return "New reaction on your shout-out"
	case NotificationReport:
		return "New report submitted"
	default:
		return "Notification"
	}
}
