package model

import (
	"time"

	"github.com/google/uuid"
)

// Draft is a locally saved, not-yet-posted shout-out. Drafts never leave
// the client until posted through the normal create call.
type Draft struct {
	ID           string    `json:"id"`
	Message      string    `json:"message"`
	RecipientIDs []int     `json:"recipient_ids"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewDraft creates a draft with a fresh id.
func NewDraft(message string, recipientIDs []int) Draft {
	return Draft{
		ID:           uuid.NewString(),
		Message:      message,
		RecipientIDs: recipientIDs,
		UpdatedAt:    time.Now(),
	}
}
