package store

import (
	"context"

	"github.com/ndtran/shoutbox/internal/model"
)

// Store defines the local cache interface: the last fetched feed, a
// mirror of the notification set, and unposted shout-out drafts. The
// backend stays authoritative for everything except drafts; cached
// copies only bridge startup and offline gaps.
type Store interface {
	// === Feed cache ===

	ReplaceFeed(ctx context.Context, shoutouts []model.ShoutOut) error
	GetFeed(ctx context.Context) ([]model.ShoutOut, error)

	// === Notification mirror ===

	SaveNotifications(ctx context.Context, notifications []model.Notification) error
	LoadNotifications(ctx context.Context) ([]model.Notification, error)

	// === Drafts ===

	SaveDraft(ctx context.Context, draft model.Draft) error
	GetDrafts(ctx context.Context) ([]model.Draft, error)
	DeleteDraft(ctx context.Context, id string) error

	Close() error
}
