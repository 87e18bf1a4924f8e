package notifpanel

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ndtran/shoutbox/internal/keys"
	"github.com/ndtran/shoutbox/internal/model"
	"github.com/ndtran/shoutbox/internal/notify"
	"github.com/ndtran/shoutbox/internal/theme"
)

// OpenMsg is sent when the user follows a notification. Marking it read
// is best-effort: the message is sent even if the mark-read call failed,
// so navigation always proceeds.
type OpenMsg struct {
	Notification model.Notification
}

// ActionDoneMsg reports the outcome of a panel action.
type ActionDoneMsg struct {
	Notice string
	Err    error
}

// Item adapts a notification for the list widget.
type Item struct {
	model.Notification
}

// Title renders the kind label and headline with an unread marker.
func (i Item) Title() string {
	kind := theme.KindStyle(string(i.Kind)).Render(string(i.Kind))
	title := kind + " " + i.Notification.Title()
	if !i.Read {
		return theme.UnreadStyle.Render("●") + " " + title
	}
	return title
}

// Description renders the message and age.
func (i Item) Description() string {
	return fmt.Sprintf("%s · %s", i.Message, relativeTime(i.CreatedAt))
}

// FilterValue implements list.Item.
func (i Item) FilterValue() string {
	return i.Message
}

// Model is the notifications panel view.
type Model struct {
	list   list.Model
	store  *notify.Store
	keys   *keys.KeyMap
	width  int
	height int
}

// New creates the notifications panel backed by the given store.
func New(store *notify.Store, k *keys.KeyMap, width, height int) Model {
	delegate := list.NewDefaultDelegate()
	l := list.New([]list.Item{}, delegate, width, height-2)
	l.Title = "Notifications"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		store:  store,
		keys:   k,
		width:  width,
		height: height,
	}
}

// SetNotifications replaces the listed items. The app calls this on
// every store refresh so the panel mirrors the cached set.
func (m *Model) SetNotifications(notifications []model.Notification) {
	items := make([]list.Item, len(notifications))
	for i, n := range notifications {
		items[i] = Item{Notification: n}
	}
	m.list.SetItems(items)
}

// Update handles messages for the panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Select):
			item, ok := m.list.SelectedItem().(Item)
			if !ok {
				return m, nil
			}
			return m, m.open(item.Notification)

		case key.Matches(msg, m.keys.MarkAllRead):
			return m, m.markAllRead()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// open marks the notification read as a side effect of navigation and
// emits OpenMsg. The mark-read failure is swallowed by contract: the
// next poll reconciles, and navigation must not be blocked.
func (m Model) open(n model.Notification) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		if !n.Read {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = store.MarkRead(ctx, n.ID)
		}
		return OpenMsg{Notification: n}
	}
}

// markAllRead flips every notification server-side then locally.
func (m Model) markAllRead() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := store.MarkAllRead(ctx); err != nil {
			return ActionDoneMsg{Err: err}
		}
		return ActionDoneMsg{Notice: "All notifications marked read"}
	}
}

// View renders the panel.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No notifications yet.")
	}
	return m.list.View()
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}

// relativeTime formats a timestamp as a short age like "5m ago".
func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
