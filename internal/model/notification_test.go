package model

import (
	"encoding/json"
	"testing"
)

func TestNotificationWireFormat(t *testing.T) {
	raw := []byte(`{
		"id": 12,
		"type": "comment",
		"message": "Bob commented on your shout-out",
		"shoutout_id": 3,
		"comment_id": 7,
		"is_read": false,
		"created_at": "2026-08-30T10:00:00Z"
	}`)

	var n Notification
	if err := json.Unmarshal(raw, &n); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if n.ID != 12 || n.Kind != NotificationComment {
		t.Errorf("parsed %+v", n)
	}
	if n.ShoutoutID != 3 || n.CommentID != 7 {
		t.Errorf("target ids = %d, %d", n.ShoutoutID, n.CommentID)
	}
	if n.Read {
		t.Error("is_read false parsed as read")
	}
}

func TestNotificationTitle(t *testing.T) {
	cases := []struct {
		kind NotificationKind
		want string
	}{
		{NotificationTag, "You were recognized in a shout-out"},
		{NotificationComment, "New comment on your shout-out"},
		{NotificationReaction, "New reaction on your shout-out"},
		{NotificationReport, "New report submitted"},
		{"something-new", "Notification"},
	}

	for _, tc := range cases {
		n := Notification{Kind: tc.kind}
		if got := n.Title(); got != tc.want {
			t.Errorf("Title(%q) = %q, want %q", tc.kind, got, tc.want)
		}
	}
}
