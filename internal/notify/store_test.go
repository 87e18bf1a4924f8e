package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ndtran/shoutbox/internal/api"
	"github.com/ndtran/shoutbox/internal/model"
)

// notifBackend is a fake backend holding a mutable notification set.
type notifBackend struct {
	mu            sync.Mutex
	notifications []model.Notification
	failMarkRead  bool
	markReadCalls int
}

func (b *notifBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /notifications", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		json.NewEncoder(w).Encode(b.notifications)
	})
	mux.HandleFunc("POST /notifications/{id}/read", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.markReadCalls++
		if b.failMarkRead {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"detail":"boom"}`))
			return
		}
		w.Write([]byte(`{}`))
	})
	mux.HandleFunc("POST /notifications/mark-all-read", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i := range b.notifications {
			b.notifications[i].Read = true
		}
		w.Write([]byte(`{}`))
	})
	return mux
}

func threeUnreadTwoRead() []model.Notification {
	return []model.Notification{
		{ID: 1, Kind: model.NotificationTag, Message: "a", Read: false},
		{ID: 2, Kind: model.NotificationComment, Message: "b", Read: false},
		{ID: 3, Kind: model.NotificationReaction, Message: "c", Read: false},
		{ID: 4, Kind: model.NotificationTag, Message: "d", Read: true},
		{ID: 5, Kind: model.NotificationComment, Message: "e", Read: true},
	}
}

// newStartedStore spins up a store against the fake backend and waits
// for the first refresh result.
func newStartedStore(t *testing.T, b *notifBackend) *Store {
	t.Helper()

	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)

	s := New(api.NewClient(srv.URL), nil, time.Hour)
	cmd := s.Start()
	t.Cleanup(s.Stop)

	msg, ok := cmd().(RefreshedMsg)
	if !ok {
		t.Fatalf("first result is not a RefreshedMsg")
	}
	if msg.Err != nil {
		t.Fatalf("first refresh failed: %v", msg.Err)
	}
	return s
}

func TestRefreshCountsUnread(t *testing.T) {
	b := &notifBackend{notifications: threeUnreadTwoRead()}
	s := newStartedStore(t, b)

	if got := s.UnreadCount(); got != 3 {
		t.Errorf("UnreadCount = %d, want 3", got)
	}
	if got := len(s.Notifications()); got != 5 {
		t.Errorf("Notifications len = %d, want 5", got)
	}
}

func TestMarkRead(t *testing.T) {
	b := &notifBackend{notifications: threeUnreadTwoRead()}
	s := newStartedStore(t, b)

	if err := s.MarkRead(context.Background(), 2); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if got := s.UnreadCount(); got != 2 {
		t.Errorf("UnreadCount = %d, want 2", got)
	}
	for _, n := range s.Notifications() {
		if n.ID == 2 && !n.Read {
			t.Error("notification 2 not flipped locally")
		}
	}
}

func TestMarkReadAlreadyReadSkipsBackend(t *testing.T) {
	b := &notifBackend{notifications: threeUnreadTwoRead()}
	s := newStartedStore(t, b)

	if err := s.MarkRead(context.Background(), 4); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}

	b.mu.Lock()
	calls := b.markReadCalls
	b.mu.Unlock()
	if calls != 0 {
		t.Errorf("backend called %d times for an already-read notification", calls)
	}
	if got := s.UnreadCount(); got != 3 {
		t.Errorf("UnreadCount = %d, want 3 unchanged", got)
	}
}

func TestMarkReadFailureLeavesState(t *testing.T) {
	b := &notifBackend{notifications: threeUnreadTwoRead(), failMarkRead: true}
	s := newStartedStore(t, b)

	if err := s.MarkRead(context.Background(), 1); err == nil {
		t.Fatal("expected an error from the backend")
	}
	if got := s.UnreadCount(); got != 3 {
		t.Errorf("UnreadCount = %d, want 3 after failed mark", got)
	}
	for _, n := range s.Notifications() {
		if n.ID == 1 && n.Read {
			t.Error("notification flipped locally despite backend failure")
		}
	}
}

func TestMarkAllRead(t *testing.T) {
	b := &notifBackend{notifications: threeUnreadTwoRead()}
	s := newStartedStore(t, b)

	if err := s.MarkAllRead(context.Background()); err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	if got := s.UnreadCount(); got != 0 {
		t.Errorf("UnreadCount = %d, want 0", got)
	}
	for _, n := range s.Notifications() {
		if !n.Read {
			t.Errorf("notification %d still unread", n.ID)
		}
	}
}

func TestRefreshReplacesWholesale(t *testing.T) {
	b := &notifBackend{notifications: threeUnreadTwoRead()}
	s := newStartedStore(t, b)

	b.mu.Lock()
	b.notifications = []model.Notification{
		{ID: 9, Kind: model.NotificationTag, Message: "new", Read: false},
	}
	b.mu.Unlock()

	s.Refresh()
	msg, ok := s.WaitForNext()().(RefreshedMsg)
	if !ok || msg.Err != nil {
		t.Fatalf("refresh result: %+v", msg)
	}

	ns := s.Notifications()
	if len(ns) != 1 || ns[0].ID != 9 {
		t.Errorf("set not replaced wholesale: %+v", ns)
	}
	if got := s.UnreadCount(); got != 1 {
		t.Errorf("UnreadCount = %d, want 1", got)
	}
}

func TestStopUnblocksSubscriber(t *testing.T) {
	b := &notifBackend{notifications: threeUnreadTwoRead()}
	s := newStartedStore(t, b)

	done := make(chan tea.Msg, 1)
	go func() {
		done <- s.WaitForNext()()
	}()

	// Give the subscriber time to block on the empty channel.
	time.Sleep(20 * time.Millisecond)
	s.Stop()

	select {
	case msg := <-done:
		if msg != nil {
			t.Errorf("subscriber returned %+v after Stop, want nil", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber still blocked after Stop")
	}

	// A subscription taken after Stop returns immediately too.
	if msg := s.WaitForNext()(); msg != nil {
		t.Errorf("post-Stop subscription returned %+v, want nil", msg)
	}
}

func TestStartAfterStopIsRefused(t *testing.T) {
	b := &notifBackend{notifications: threeUnreadTwoRead()}
	s := newStartedStore(t, b)

	s.Stop()
	if msg := s.Start()(); msg != nil {
		t.Errorf("restart returned %+v, want nil", msg)
	}
	s.Refresh()
	time.Sleep(50 * time.Millisecond)
	if got := s.UnreadCount(); got != 3 {
		t.Errorf("UnreadCount = %d, want 3 untouched after refused restart", got)
	}
}

func TestStopDiscardsLateResults(t *testing.T) {
	b := &notifBackend{notifications: threeUnreadTwoRead()}
	s := newStartedStore(t, b)

	before := s.UnreadCount()
	s.Stop()

	// A trigger after Stop must not mutate the cached set.
	s.Refresh()
	time.Sleep(50 * time.Millisecond)

	if got := s.UnreadCount(); got != before {
		t.Errorf("UnreadCount changed after Stop: %d -> %d", before, got)
	}
}
