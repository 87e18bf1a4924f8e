package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/ndtran/shoutbox/internal/model"
	"github.com/ndtran/shoutbox/tests/testutil"
)

func TestFeedCacheRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	feed := []model.ShoutOut{
		{
			ID:        2,
			SenderID:  1,
			Message:   "great demo @[Bob](7)",
			CreatedAt: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
			Sender:    model.User{ID: 1, Name: "Alice"},
			Recipients: []model.User{
				{ID: 7, Name: "Bob"},
			},
			Comments: []model.Comment{
				{ID: 11, UserID: 7, Content: "thanks!"},
			},
			ReactionCounts: []model.ReactionCount{
				{Type: model.ReactionClap, Count: 3},
			},
		},
		{
			ID:        1,
			SenderID:  7,
			Message:   "shipped it",
			CreatedAt: time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC),
			Sender:    model.User{ID: 7, Name: "Bob"},
		},
	}

	if err := s.ReplaceFeed(ctx, feed); err != nil {
		t.Fatalf("ReplaceFeed: %v", err)
	}

	got, err := s.GetFeed(ctx)
	if err != nil {
		t.Fatalf("GetFeed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d shoutouts, want 2", len(got))
	}
	// Newest first.
	if got[0].ID != 2 || got[1].ID != 1 {
		t.Errorf("order = [%d, %d], want [2, 1]", got[0].ID, got[1].ID)
	}
	if got[0].Message != "great demo @[Bob](7)" {
		t.Errorf("message = %q", got[0].Message)
	}
	if len(got[0].Comments) != 1 || got[0].Comments[0].ID != 11 {
		t.Errorf("comments not preserved: %+v", got[0].Comments)
	}
	if len(got[0].ReactionCounts) != 1 || got[0].ReactionCounts[0].Count != 3 {
		t.Errorf("reaction counts not preserved: %+v", got[0].ReactionCounts)
	}
}

func TestReplaceFeedDropsOldRows(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	first := []model.ShoutOut{{ID: 1, Message: "old"}}
	second := []model.ShoutOut{{ID: 2, Message: "new"}}

	if err := s.ReplaceFeed(ctx, first); err != nil {
		t.Fatalf("ReplaceFeed: %v", err)
	}
	if err := s.ReplaceFeed(ctx, second); err != nil {
		t.Fatalf("ReplaceFeed: %v", err)
	}

	got, err := s.GetFeed(ctx)
	if err != nil {
		t.Fatalf("GetFeed: %v", err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("feed = %+v, want only the second set", got)
	}
}

func TestNotificationMirrorRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	ns := []model.Notification{
		{
			ID:         5,
			Kind:       model.NotificationComment,
			Message:    "Bob commented on your shout-out",
			ShoutoutID: 2,
			CommentID:  11,
			Read:       false,
			CreatedAt:  time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:        4,
			Kind:      model.NotificationTag,
			Message:   "Alice tagged you",
			Read:      true,
			CreatedAt: time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
		},
	}

	if err := s.SaveNotifications(ctx, ns); err != nil {
		t.Fatalf("SaveNotifications: %v", err)
	}

	got, err := s.LoadNotifications(ctx)
	if err != nil {
		t.Fatalf("LoadNotifications: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d notifications, want 2", len(got))
	}
	if got[0].ID != 5 {
		t.Errorf("expected newest first, got id %d", got[0].ID)
	}
	if got[0].Kind != model.NotificationComment || got[0].CommentID != 11 {
		t.Errorf("notification not preserved: %+v", got[0])
	}
	if got[0].Read || !got[1].Read {
		t.Errorf("read flags not preserved: %+v", got)
	}
}

func TestSaveNotificationsReplacesWholesale(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := s.SaveNotifications(ctx, []model.Notification{{ID: 1, Kind: model.NotificationTag}}); err != nil {
		t.Fatalf("SaveNotifications: %v", err)
	}
	if err := s.SaveNotifications(ctx, []model.Notification{{ID: 2, Kind: model.NotificationReaction}}); err != nil {
		t.Fatalf("SaveNotifications: %v", err)
	}

	got, err := s.LoadNotifications(ctx)
	if err != nil {
		t.Fatalf("LoadNotifications: %v", err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("mirror = %+v, want only the second set", got)
	}
}

func TestDraftLifecycle(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	d := model.NewDraft("wip @[Alice](5)", []int{5, 7})
	if err := s.SaveDraft(ctx, d); err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}

	// Re-saving the same id replaces the row, not adds one.
	d.Message = "wip, revised"
	if err := s.SaveDraft(ctx, d); err != nil {
		t.Fatalf("SaveDraft (update): %v", err)
	}

	drafts, err := s.GetDrafts(ctx)
	if err != nil {
		t.Fatalf("GetDrafts: %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("got %d drafts, want 1", len(drafts))
	}
	if drafts[0].Message != "wip, revised" {
		t.Errorf("message = %q", drafts[0].Message)
	}
	if len(drafts[0].RecipientIDs) != 2 || drafts[0].RecipientIDs[0] != 5 {
		t.Errorf("recipients = %v", drafts[0].RecipientIDs)
	}

	if err := s.DeleteDraft(ctx, d.ID); err != nil {
		t.Fatalf("DeleteDraft: %v", err)
	}
	drafts, err = s.GetDrafts(ctx)
	if err != nil {
		t.Fatalf("GetDrafts: %v", err)
	}
	if len(drafts) != 0 {
		t.Errorf("drafts remain after delete: %+v", drafts)
	}
}
