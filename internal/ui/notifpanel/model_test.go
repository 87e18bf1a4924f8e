package notifpanel

import (
	"strings"
	"testing"

	"github.com/ndtran/shoutbox/internal/model"
)

func TestItemTitleShowsKindAndUnreadMarker(t *testing.T) {
	unread := Item{Notification: model.Notification{
		Kind:    model.NotificationComment,
		Message: "Dana commented",
	}}
	title := unread.Title()
	if !strings.Contains(title, "comment") {
		t.Errorf("title %q missing the kind label", title)
	}
	if !strings.Contains(title, "●") {
		t.Errorf("title %q missing the unread marker", title)
	}

	read := Item{Notification: model.Notification{
		Kind: model.NotificationTag,
		Read: true,
	}}
	if strings.Contains(read.Title(), "●") {
		t.Error("read notification carries the unread marker")
	}
}
