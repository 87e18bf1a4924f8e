package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ndtran/shoutbox/internal/api"
	"github.com/ndtran/shoutbox/internal/highlight"
	"github.com/ndtran/shoutbox/internal/keys"
	"github.com/ndtran/shoutbox/internal/model"
	"github.com/ndtran/shoutbox/internal/notify"
	"github.com/ndtran/shoutbox/internal/session"
	"github.com/ndtran/shoutbox/internal/store"
	"github.com/ndtran/shoutbox/internal/ui"
	"github.com/ndtran/shoutbox/internal/ui/admin"
	"github.com/ndtran/shoutbox/internal/ui/compose"
	"github.com/ndtran/shoutbox/internal/ui/feed"
	"github.com/ndtran/shoutbox/internal/ui/helpview"
	"github.com/ndtran/shoutbox/internal/ui/login"
	"github.com/ndtran/shoutbox/internal/ui/notifpanel"
	"github.com/ndtran/shoutbox/internal/ui/profile"
	"github.com/ndtran/shoutbox/internal/ui/userview"
)

// sessionResolvedMsg carries the startup session outcome.
type sessionResolvedMsg struct {
	state session.State
	user  *model.User
}

// sessionExpiredMsg is sent when the guard reports a global reset.
type sessionExpiredMsg struct{}

// usersLoadedMsg carries the colleague directory used for mention
// completion and the compose recipient list.
type usersLoadedMsg struct {
	users []model.User
	err   error
}

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLoading ViewState = iota
	ViewLogin
	ViewFeed
	ViewNotifications
	ViewCompose
	ViewProfile
	ViewUser
	ViewAdmin
	ViewHelp
)

// Model is the root Bubble Tea model that manages the session gate,
// view routing, layout, and the notification poller.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *keys.KeyMap

	client       *api.Client
	cache        store.Store
	guard        *session.Guard
	nav          *highlight.Navigator
	notifStore   *notify.Store
	pollInterval time.Duration

	loginView  login.Model
	feedView   feed.Model
	notifView  notifpanel.Model
	composer   compose.Model
	profileVw  profile.Model
	userVw     userview.Model
	adminView  admin.Model
	helpView   helpview.Model

	user      *model.User
	users     []model.User
	unread    int
	notice    string
	noticeErr bool
	ready     bool
}

// New creates the root application model.
func New(client *api.Client, cache store.Store, guard *session.Guard, pollInterval time.Duration) Model {
	km := keys.DefaultKeyMap()
	nav := &highlight.Navigator{}

	return Model{
		currentView:  ViewLoading,
		keys:         km,
		client:       client,
		cache:        cache,
		guard:        guard,
		nav:          nav,
		pollInterval: pollInterval,
		loginView:    login.New(guard, 80, 24),
		feedView:     feed.New(client, cache, nav, km, 80, 24),
		composer:     compose.New(client, cache, 80, 24),
		profileVw:    profile.New(client, cache, km, 80, 24),
		userVw:       userview.New(client, km, 80, 24),
		adminView:    admin.New(client, km, 80, 24),
		helpView:     helpview.New(km, 80, 24),
		notifView:    notifpanel.New(nil, km, 80, 24),
	}
}

// Init resolves the persisted session and starts watching for expiry.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.resolveSession(), m.watchExpiry())
}

// resolveSession performs the startup transition out of loading.
func (m Model) resolveSession() tea.Cmd {
	guard := m.guard
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		state := guard.Resolve(ctx)
		return sessionResolvedMsg{state: state, user: guard.User()}
	}
}

// watchExpiry blocks on the guard's expiry stream. Re-armed after every
// delivery.
func (m Model) watchExpiry() tea.Cmd {
	guard := m.guard
	return func() tea.Msg {
		<-guard.Expired()
		return sessionExpiredMsg{}
	}
}

// loadUsers fetches the colleague directory.
func (m Model) loadUsers() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		users, err := client.ListUsers(ctx, "")
		return usersLoadedMsg{users: users, err: err}
	}
}

// enterSession wires up the authenticated views and starts polling.
func (m *Model) enterSession(user *model.User) tea.Cmd {
	m.user = user
	m.feedView.SetUser(user)
	m.profileVw.SetUser(user)
	m.adminView.SetSelf(user.ID)

	// A stopped poller cannot restart, so each session gets a fresh one.
	m.notifStore = notify.New(m.client, m.cache, m.pollInterval)
	m.notifView = notifpanel.New(m.notifStore, m.keys, m.layout.ContentWidth(), m.layout.ContentHeight())

	m.currentView = ViewFeed
	m.notice = ""
	m.noticeErr = false

	return tea.Batch(
		m.notifStore.Start(),
		m.feedView.Load(),
		m.loadUsers(),
	)
}

// leaveSession tears down the authenticated state and shows the login
// form.
func (m *Model) leaveSession(notice string) tea.Cmd {
	if m.notifStore != nil {
		m.notifStore.Stop()
		m.notifStore = nil
	}
	m.user = nil
	m.unread = 0
	m.currentView = ViewLogin
	m.notice = notice
	m.noticeErr = notice != ""
	return m.loginView.Start()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.loginView.SetSize(w, h)
		m.feedView.SetSize(w, h)
		m.notifView.SetSize(w, h)
		m.composer.SetSize(w, h)
		m.profileVw.SetSize(w, h)
		m.userVw.SetSize(w, h)
		m.adminView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		return m.updateActiveView(msg)

	case sessionResolvedMsg:
		if msg.state == session.StateAuthenticated {
			return m, m.enterSession(msg.user)
		}
		m.currentView = ViewLogin
		return m, m.loginView.Start()

	case sessionExpiredMsg:
		cmd := m.leaveSession("Session expired. Please sign in again.")
		return m, tea.Batch(cmd, m.watchExpiry())

	case login.LoggedInMsg:
		return m, m.enterSession(msg.User)

	case usersLoadedMsg:
		if msg.err != nil {
			// The directory is a convenience; the feed still works.
			return m, nil
		}
		m.users = msg.users
		m.feedView.SetUsers(msg.users)
		if m.user != nil {
			m.composer.SetOptions(msg.users, m.user.ID)
		}
		return m, nil

	case notify.RefreshedMsg:
		if m.notifStore == nil {
			return m, nil
		}
		if msg.Err == nil {
			m.unread = msg.Unread
			m.notifView.SetNotifications(msg.Notifications)
		}
		return m, m.notifStore.WaitForNext()

	case notifpanel.OpenMsg:
		return m.openNotification(msg.Notification)

	case notifpanel.ActionDoneMsg:
		m.setNotice(msg.Notice, msg.Err)
		if m.notifStore != nil {
			m.notifView.SetNotifications(m.notifStore.Notifications())
			m.unread = m.notifStore.UnreadCount()
		}
		return m, nil

	case admin.OpenTargetMsg:
		m.nav.Set(highlight.Target{ShoutoutID: msg.ShoutoutID, CommentID: msg.CommentID})
		m.currentView = ViewFeed
		return m, m.feedView.Load()

	case admin.ActionDoneMsg:
		m.setNotice(msg.Notice, msg.Err)
		if msg.Err == nil {
			return m, m.adminView.Load()
		}
		return m, nil

	case feed.ActionDoneMsg:
		m.setNotice(msg.Notice, msg.Err)
		var cmds []tea.Cmd
		if msg.Reload {
			cmds = append(cmds, m.feedView.Load())
		}
		if msg.Err == nil && m.notifStore != nil {
			cmds = append(cmds, m.notifStore.Refresh())
		}
		return m, tea.Batch(cmds...)

	case compose.PostedMsg:
		m.currentView = ViewFeed
		m.setNotice("Shout-out posted.", nil)
		return m, m.feedView.Load()

	case compose.DraftSavedMsg:
		m.currentView = ViewFeed
		m.setNotice("Draft saved.", nil)
		return m, nil

	case compose.CancelMsg:
		m.currentView = ViewFeed
		return m, nil

	case compose.ErrMsg:
		m.currentView = ViewFeed
		m.setNotice("", msg.Err)
		return m, nil

	case profile.UpdatedMsg:
		m.guard.SetUser(msg.User)
		m.user = msg.User
		m.feedView.SetUser(msg.User)
		m.profileVw.SetUser(msg.User)
		m.setNotice("Profile updated.", nil)
		return m, nil

	case profile.OpenDraftMsg:
		m.previousView = m.currentView
		m.currentView = ViewCompose
		return m, m.composer.StartFromDraft(msg.Draft)

	case feed.OpenProfileMsg:
		m.currentView = ViewUser
		return m, m.userVw.Open(msg.UserID)

	case userview.ActionDoneMsg:
		m.setNotice("", msg.Err)
		m.currentView = ViewFeed
		return m, nil

	case profile.ActionDoneMsg:
		m.setNotice(msg.Notice, msg.Err)
		if msg.Err == nil {
			return m, m.profileVw.Load()
		}
		return m, nil

	case tea.KeyMsg:
		// A keypress dismisses the current notice unless a form owns
		// the keyboard.
		if !m.captured() {
			m.notice = ""
			m.noticeErr = false
		}
		if newModel, cmd, handled := m.handleGlobalKey(msg); handled {
			return newModel, cmd
		}
	}

	return m.updateActiveView(msg)
}

// openNotification routes a followed notification: report notifications
// take admins to the moderation queue, everything else deep-links into
// the feed.
func (m Model) openNotification(n model.Notification) (tea.Model, tea.Cmd) {
	if m.notifStore != nil {
		m.notifView.SetNotifications(m.notifStore.Notifications())
		m.unread = m.notifStore.UnreadCount()
	}

	if n.Kind == model.NotificationReport && m.user.IsAdmin() {
		m.adminView.FocusReports()
		m.currentView = ViewAdmin
		return m, m.adminView.Load()
	}

	if n.ShoutoutID != 0 {
		m.nav.Set(highlight.Target{ShoutoutID: n.ShoutoutID, CommentID: n.CommentID})
	}
	m.currentView = ViewFeed
	return m, m.feedView.Load()
}

// handleGlobalKey processes shortcuts that work across views. Keys are
// never intercepted while a form or prompt has focus.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		if m.notifStore != nil {
			m.notifStore.Stop()
		}
		return m, tea.Quit, true
	}

	if m.captured() {
		return m, nil, false
	}

	switch msg.String() {
	case "q":
		if m.currentView == ViewFeed {
			if m.notifStore != nil {
				m.notifStore.Stop()
			}
			return m, tea.Quit, true
		}

	case "esc":
		if m.currentView != ViewFeed && m.currentView != ViewLogin {
			m.currentView = ViewFeed
			return m, nil, true
		}

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		if m.currentView != ViewLogin {
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil, true
		}

	case "n":
		if m.authed() && m.currentView != ViewNotifications {
			m.currentView = ViewNotifications
			return m, nil, true
		}

	case "c":
		if m.authed() && m.currentView == ViewFeed {
			m.previousView = m.currentView
			m.currentView = ViewCompose
			return m, m.composer.Start(), true
		}

	case "p":
		if m.authed() && m.currentView != ViewProfile {
			m.currentView = ViewProfile
			return m, m.profileVw.Load(), true
		}

	case "a":
		if m.authed() && m.user.IsAdmin() && m.currentView != ViewAdmin {
			m.currentView = ViewAdmin
			return m, m.adminView.Load(), true
		}

	case "L":
		if m.authed() {
			m.guard.Logout()
			return m, m.leaveSession(""), true
		}
	}

	return m, nil, false
}

// captured reports whether the active view owns the keyboard outright.
func (m Model) captured() bool {
	switch m.currentView {
	case ViewLogin, ViewCompose:
		return true
	case ViewFeed:
		return m.feedView.InputActive()
	case ViewProfile:
		return m.profileVw.InputActive()
	}
	return false
}

func (m Model) authed() bool {
	return m.user != nil
}

func (m *Model) setNotice(notice string, err error) {
	if err != nil {
		m.notice = err.Error()
		m.noticeErr = true
		return
	}
	m.notice = notice
	m.noticeErr = false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewFeed:
		m.feedView, cmd = m.feedView.Update(msg)
	case ViewNotifications:
		m.notifView, cmd = m.notifView.Update(msg)
	case ViewCompose:
		m.composer, cmd = m.composer.Update(msg)
	case ViewProfile:
		m.profileVw, cmd = m.profileVw.Update(msg)
	case ViewUser:
		m.userVw, cmd = m.userVw.Update(msg)
	case ViewAdmin:
		m.adminView, cmd = m.adminView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Shoutbox", m.unread)
	statusBar := m.layout.RenderStatusBar(m.keyHints(), m.notice, m.noticeErr)

	return m.layout.RenderWithFrame(header, m.renderContent(), statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewFeed:
		return m.feedView.View()
	case ViewNotifications:
		return m.notifView.View()
	case ViewCompose:
		return m.composer.View()
	case ViewProfile:
		return m.profileVw.View()
	case ViewUser:
		return m.userVw.View()
	case ViewAdmin:
		return m.adminView.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return "Loading..."
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewLogin:
		return "enter next | esc quit form"
	case ViewFeed:
		return "j/k move | enter reactions | m comment | r react | v author | c new | n notifications | ? help"
	case ViewNotifications:
		return "enter open | A mark all read | esc back"
	case ViewCompose:
		return "enter next | esc cancel"
	case ViewProfile:
		return "tab switch | e edit | esc back"
	case ViewUser:
		return "j/k move | esc back"
	case ViewAdmin:
		return "tab switch | / filter reports | enter act | o open | esc back"
	case ViewHelp:
		return "? close help | esc back"
	default:
		return ""
	}
}
