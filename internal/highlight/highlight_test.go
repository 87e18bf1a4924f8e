package highlight

import (
	"testing"

	"github.com/ndtran/shoutbox/internal/model"
)

func feedFixture() []model.ShoutOut {
	return []model.ShoutOut{
		{ID: 1},
		{ID: 3, Comments: []model.Comment{{ID: 7}, {ID: 9}}},
		{ID: 4, Comments: []model.Comment{{ID: 12}}},
	}
}

func TestNavigatorConsumeOnce(t *testing.T) {
	var n Navigator

	n.Set(Target{ShoutoutID: 3})
	if !n.HasPending() {
		t.Fatal("expected pending target after Set")
	}

	got, ok := n.Consume()
	if !ok || got.ShoutoutID != 3 {
		t.Fatalf("Consume = %+v, %v", got, ok)
	}

	if _, ok := n.Consume(); ok {
		t.Error("second Consume should report nothing pending")
	}
	if n.HasPending() {
		t.Error("HasPending should be false after Consume")
	}
}

func TestNavigatorIgnoresZeroTarget(t *testing.T) {
	var n Navigator
	n.Set(Target{})
	if n.HasPending() {
		t.Error("zero target must not become pending")
	}
}

func TestNavigatorReplacesPending(t *testing.T) {
	var n Navigator
	n.Set(Target{ShoutoutID: 1})
	n.Set(Target{ShoutoutID: 4})

	got, ok := n.Consume()
	if !ok || got.ShoutoutID != 4 {
		t.Errorf("Consume = %+v, %v; want the replacing target", got, ok)
	}
}

func TestResolveShoutout(t *testing.T) {
	idx, commentID, ok := Resolve(feedFixture(), Target{ShoutoutID: 3})
	if !ok || idx != 1 || commentID != 0 {
		t.Errorf("Resolve = (%d, %d, %v), want (1, 0, true)", idx, commentID, ok)
	}
}

func TestResolveCommentTakesPrecedence(t *testing.T) {
	// Both ids set: the comment decides, even though shout-out 1 exists.
	idx, commentID, ok := Resolve(feedFixture(), Target{ShoutoutID: 1, CommentID: 12})
	if !ok || idx != 2 || commentID != 12 {
		t.Errorf("Resolve = (%d, %d, %v), want (2, 12, true)", idx, commentID, ok)
	}
}

func TestResolveMissingCommentDoesNotFallBack(t *testing.T) {
	// The parent shout-out exists but the comment is gone; nothing is
	// highlighted.
	_, _, ok := Resolve(feedFixture(), Target{ShoutoutID: 3, CommentID: 999})
	if ok {
		t.Error("missing comment must not resolve to the parent shout-out")
	}
}

func TestResolveMissingShoutout(t *testing.T) {
	if _, _, ok := Resolve(feedFixture(), Target{ShoutoutID: 99}); ok {
		t.Error("missing shout-out must not resolve")
	}
}

func TestResolveEmptyFeed(t *testing.T) {
	if _, _, ok := Resolve(nil, Target{ShoutoutID: 1}); ok {
		t.Error("empty feed must not resolve")
	}
}
