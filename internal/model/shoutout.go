package model

import "time"

// ReactionType enumerates the reactions a shout-out can receive.
type ReactionType string

const (
	ReactionLike ReactionType = "like"
	ReactionClap ReactionType = "clap"
	ReactionStar ReactionType = "star"
)

// ReactionTypes lists all reaction types in display order.
var ReactionTypes = []ReactionType{ReactionLike, ReactionClap, ReactionStar}

// ShoutOut is a public recognition message with tagged recipients.
type ShoutOut struct {
	ID             int             `json:"id"`
	SenderID       int             `json:"sender_id"`
	Message        string          `json:"message"`
	CreatedAt      time.Time       `json:"created_at"`
	Sender         User            `json:"sender"`
	Recipients     []User          `json:"recipients"`
	Comments       []Comment       `json:"comments"`
	ReactionCounts []ReactionCount `json:"reaction_counts"`

	// UserReaction is the current user's own reaction, if any.
	UserReaction *ReactionType `json:"user_reaction,omitempty"`
}

// Comment is a reply on a shout-out. Content may embed mention markup.
type Comment struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `json:"user"`
}

// ReactionCount aggregates reactions of one type on a shout-out.
type ReactionCount struct {
	Type  ReactionType `json:"type"`
	Count int          `json:"count"`
}

// Reaction pairs a reacting user with the reaction they chose.
type Reaction struct {
	User User         `json:"user"`
	Type ReactionType `json:"type"`
}

// ShoutOutCreate is the request body for POST /shoutouts.
type ShoutOutCreate struct {
	Message      string `json:"message"`
	RecipientIDs []int  `json:"recipient_ids"`
}

// ShoutOutFilter narrows the feed query. Zero values are omitted.
type ShoutOutFilter struct {
	Department string
	SenderID   int
	StartDate  string // YYYY-MM-DD
}
