// Package highlight implements the one-shot deep-link mechanism used
// when a user follows a notification to the feed: a pending target is
// attached to the navigation, consumed exactly once by the destination
// view, and never re-applied on later navigations.
package highlight

import (
	"sync"
	"time"

	"github.com/ndtran/shoutbox/internal/model"
)

// FlashDuration is how long the visual marker stays on the target row.
const FlashDuration = 2 * time.Second

// Target is the transient navigation payload. Either id may be zero;
// a set CommentID takes precedence over ShoutoutID.
type Target struct {
	ShoutoutID int
	CommentID  int
}

// IsZero reports whether the target references nothing.
func (t Target) IsZero() bool {
	return t.ShoutoutID == 0 && t.CommentID == 0
}

// Navigator holds at most one pending highlight. Setting a new target
// replaces any unconsumed one.
type Navigator struct {
	mu      sync.Mutex
	pending *Target
}

// Set attaches a pending highlight to the next arrival at the feed.
// Zero targets are ignored.
func (n *Navigator) Set(t Target) {
	if t.IsZero() {
		return
	}
	n.mu.Lock()
	n.pending = &t
	n.mu.Unlock()
}

// Consume atomically takes and clears the pending target, so that
// reloading or navigating back does not repeat the highlight. The second
// return is false when nothing is pending.
func (n *Navigator) Consume() (Target, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.pending == nil {
		return Target{}, false
	}
	t := *n.pending
	n.pending = nil
	return t, true
}

// HasPending reports whether a highlight is waiting to be applied.
func (n *Navigator) HasPending() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pending != nil
}

// Resolve locates the feed row a target refers to. A comment target
// resolves to the shout-out that carries the comment, with the comment
// id reported alongside so the view can mark the comment rather than the
// whole card. A target with no matching row reports ok=false; callers
// treat that as a silent no-op since the content may be gone.
func Resolve(shoutouts []model.ShoutOut, t Target) (index int, commentID int, ok bool) {
	if t.CommentID != 0 {
		for i, s := range shoutouts {
			for _, c := range s.Comments {
				if c.ID == t.CommentID {
					return i, c.ID, true
				}
			}
		}
		// No fallback to the parent shout-out: a comment-level target
		// whose comment is gone highlights nothing.
		return 0, 0, false
	}

	if t.ShoutoutID != 0 {
		for i, s := range shoutouts {
			if s.ID == t.ShoutoutID {
				return i, 0, true
			}
		}
	}

	return 0, 0, false
}
