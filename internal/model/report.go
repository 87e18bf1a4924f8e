package model

import "time"

// ReportStatus tracks a report through the moderation workflow.
type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportReviewed ReportStatus = "reviewed"
	ReportResolved ReportStatus = "resolved"
)

// ReportStatuses lists the moderation states in workflow order.
var ReportStatuses = []ReportStatus{ReportPending, ReportReviewed, ReportResolved}

// Report is a user-submitted flag on a shout-out or comment.
type Report struct {
	ID             int          `json:"id"`
	ShoutoutID     int          `json:"shoutout_id,omitempty"`
	CommentID      int          `json:"comment_id,omitempty"`
	Reporter       *Reporter    `json:"reporter,omitempty"`
	Reason         string       `json:"reason,omitempty"`
	Status         ReportStatus `json:"status"`
	TargetType     string       `json:"target_type,omitempty"`
	TargetUserName string       `json:"target_user_name,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

// Reporter is the minimal identity of who filed a report. Nil when the
// reporting account has since been deleted.
type Reporter struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ReportCreate is the request body for POST /reports. At least one of
// ShoutoutID or CommentID must be set; the forms enforce this before
// dispatch.
type ReportCreate struct {
	ShoutoutID int    `json:"shoutout_id,omitempty"`
	CommentID  int    `json:"comment_id,omitempty"`
	Reason     string `json:"reason,omitempty"`
}
