// Package notify maintains the client-local view of the user's
// notifications, kept approximately fresh by periodic polling against
// the backend.
package notify

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ndtran/shoutbox/internal/api"
	"github.com/ndtran/shoutbox/internal/model"
)

// RefreshedMsg is a tea.Msg sent when a refresh cycle completes.
type RefreshedMsg struct {
	Notifications []model.Notification
	Unread        int
	Err           error
}

// fetchTimeout is the maximum time allowed for a single refresh.
const fetchTimeout = 30 * time.Second

// DefaultPollInterval is how often the store refreshes when the config
// does not override it.
const DefaultPollInterval = 30 * time.Second

// Cache mirrors the notification set to local storage so the badge is
// populated immediately on the next start.
type Cache interface {
	SaveNotifications(ctx context.Context, notifications []model.Notification) error
	LoadNotifications(ctx context.Context) ([]model.Notification, error)
}

// Store caches the user's notifications and owns the polling loop.
// Refreshes replace the cached set wholesale: the backend returns the
// complete set, so last-fetch-wins is sufficient and any divergence from
// a racing mark-read is reconciled by the next poll.
type Store struct {
	client   *api.Client
	cache    Cache
	interval time.Duration

	resultCh  chan RefreshedMsg
	triggerCh chan struct{}
	stopCh    chan struct{}

	mu            sync.Mutex
	notifications []model.Notification
	unread        int
	running       bool
	stopped       bool
	fetchSeq      int // last started fetch; stale completions are dropped
}

// New creates a Store polling at the given interval. A zero interval
// falls back to DefaultPollInterval. cache may be nil.
func New(client *api.Client, cache Cache, interval time.Duration) *Store {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Store{
		client:    client,
		cache:     cache,
		interval:  interval,
		resultCh:  make(chan RefreshedMsg, 16),
		triggerCh: make(chan struct{}, 16),
		stopCh:    make(chan struct{}),
	}
}

// Start launches the polling goroutine (an immediate refresh, then one
// per interval) and returns the subscription command that delivers
// RefreshedMsg values to the program. Starting twice is a no-op. A
// stopped store cannot be restarted; create a new one instead.
func (s *Store) Start() tea.Cmd {
	s.mu.Lock()
	if s.running || s.stopped {
		s.mu.Unlock()
		return s.waitForResult()
	}
	s.running = true
	s.mu.Unlock()

	s.preloadFromCache()

	go s.poll()

	return s.waitForResult()
}

// Stop halts polling and releases the ticker. Results still in flight
// are discarded rather than applied, and closing the result channel
// unblocks any pending subscriber. Idempotent.
func (s *Store) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	close(s.stopCh)
	s.running = false
	s.stopped = true
	close(s.resultCh)
}

// Refresh requests an immediate poll outside the regular interval.
func (s *Store) Refresh() tea.Cmd {
	select {
	case s.triggerCh <- struct{}{}:
	default:
	}
	return nil
}

// WaitForNext returns a command that waits for the next refresh result.
// Call it after processing a RefreshedMsg to keep the subscription alive.
func (s *Store) WaitForNext() tea.Cmd {
	return s.waitForResult()
}

// Notifications returns a copy of the cached notification set.
func (s *Store) Notifications() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// UnreadCount returns the number of cached notifications with read=false.
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unread
}

// MarkRead marks one notification read: backend first, local copy only
// on success. Marking an already-read notification is a local no-op and
// skips the backend call. The unread counter never goes below zero.
func (s *Store) MarkRead(ctx context.Context, id int) error {
	s.mu.Lock()
	for _, n := range s.notifications {
		if n.ID == id && n.Read {
			s.mu.Unlock()
			return nil
		}
	}
	s.mu.Unlock()

	if err := s.client.MarkNotificationRead(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id && !s.notifications[i].Read {
			s.notifications[i].Read = true
			if s.unread > 0 {
				s.unread--
			}
			break
		}
	}
	return nil
}

// MarkAllRead marks every notification read: backend first, then all
// local copies, zeroing the counter.
func (s *Store) MarkAllRead(ctx context.Context) error {
	if err := s.client.MarkAllNotificationsRead(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		s.notifications[i].Read = true
	}
	s.unread = 0
	return nil
}

// poll runs the refresh loop until Stop.
func (s *Store) poll() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.fetch()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.fetch()
		case <-s.triggerCh:
			s.fetch()
		}
	}
}

// fetch performs one refresh. The sequence number captured at schedule
// time guards the apply: a result that arrives after Stop, or after a
// newer fetch started, is discarded.
func (s *Store) fetch() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.fetchSeq++
	seq := s.fetchSeq
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	notifications, err := s.client.ListNotifications(ctx)
	if err != nil {
		s.sendResult(RefreshedMsg{Err: err})
		return
	}

	unread := 0
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
	}

	s.mu.Lock()
	if !s.running || seq != s.fetchSeq {
		s.mu.Unlock()
		return
	}
	s.notifications = notifications
	s.unread = unread
	s.mu.Unlock()

	if s.cache != nil {
		_ = s.cache.SaveNotifications(ctx, notifications)
	}

	s.sendResult(RefreshedMsg{
		Notifications: notifications,
		Unread:        unread,
	})
}

// preloadFromCache seeds the in-memory set from local storage so the
// unread badge renders before the first fetch returns.
func (s *Store) preloadFromCache() {
	if s.cache == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cached, err := s.cache.LoadNotifications(ctx)
	if err != nil || len(cached) == 0 {
		return
	}

	unread := 0
	for _, n := range cached {
		if !n.Read {
			unread++
		}
	}

	s.mu.Lock()
	if len(s.notifications) == 0 {
		s.notifications = cached
		s.unread = unread
	}
	s.mu.Unlock()
}

// sendResult sends a result without blocking the poll loop. The lock is
// held for the send so a fetch finishing during Stop cannot send on the
// closed channel.
func (s *Store) sendResult(msg RefreshedMsg) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	select {
	case s.resultCh <- msg:
	default:
	}
}

// waitForResult returns a command that waits for the next result on the
// result channel.
func (s *Store) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-s.resultCh
		if !ok {
			return nil
		}
		return result
	}
}
