// Package userview shows a colleague's public profile: their details
// and the shout-outs they have sent.
package userview

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ndtran/shoutbox/internal/api"
	"github.com/ndtran/shoutbox/internal/keys"
	"github.com/ndtran/shoutbox/internal/mention"
	"github.com/ndtran/shoutbox/internal/model"
	"github.com/ndtran/shoutbox/internal/theme"
)

// ActionDoneMsg reports a failed profile load.
type ActionDoneMsg struct {
	Err error
}

type loadedMsg struct {
	userID int
	user   *model.User
	sent   []model.ShoutOut
	err    error
}

// Model is the colleague profile view.
type Model struct {
	client *api.Client
	keys   *keys.KeyMap

	userID  int
	user    *model.User
	sent    []model.ShoutOut
	cursor  int
	loading bool

	width  int
	height int
}

// New creates the colleague profile view.
func New(client *api.Client, km *keys.KeyMap, width, height int) Model {
	return Model{
		client: client,
		keys:   km,
		width:  width,
		height: height,
	}
}

// Open points the view at a user and returns the command that loads
// their profile and sent shout-outs.
func (m *Model) Open(userID int) tea.Cmd {
	m.userID = userID
	m.user = nil
	m.sent = nil
	m.cursor = 0
	m.loading = true

	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		user, err := client.GetUser(ctx, userID)
		if err != nil {
			return loadedMsg{userID: userID, err: err}
		}
		sent, err := client.ListShoutouts(ctx, model.ShoutOutFilter{SenderID: userID})
		if err != nil {
			return loadedMsg{userID: userID, err: err}
		}
		return loadedMsg{userID: userID, user: user, sent: sent}
	}
}

// Update handles messages for the colleague profile view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		// A stale load for a previously opened user is dropped.
		if msg.userID != m.userID {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			return m, func() tea.Msg { return ActionDoneMsg{Err: msg.err} }
		}
		m.user = msg.user
		m.sent = msg.sent
		m.cursor = 0
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.sent)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		}
	}
	return m, nil
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the colleague profile view.
func (m Model) View() string {
	if m.loading {
		return theme.HelpStyle.Render("Loading profile...")
	}
	if m.user == nil {
		return theme.HelpStyle.Render("Profile unavailable.")
	}

	label := lipgloss.NewStyle().Bold(true).Width(12)
	var b strings.Builder
	b.WriteString(label.Render("Name") + m.user.Name + "\n")
	b.WriteString(label.Render("Department") + m.user.Department + "\n")
	b.WriteString(label.Render("Role") + theme.RoleStyle(string(m.user.Role)).Render(string(m.user.Role)) + "\n")
	b.WriteString(label.Render("Joined") + m.user.JoinedAt.Format("Jan 2, 2006") + "\n")
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Shout-outs sent") + "\n\n")

	if len(m.sent) == 0 {
		b.WriteString(theme.HelpStyle.Render(m.user.Name + " hasn't sent any shout-outs yet."))
	}
	for i, s := range m.sent {
		line := theme.HelpStyle.Render(s.CreatedAt.Format("Jan 2")) +
			"  " + mention.Display(s.Message)
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
