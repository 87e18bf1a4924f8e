package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ndtran/shoutbox/internal/api"
	"github.com/ndtran/shoutbox/internal/keys"
	"github.com/ndtran/shoutbox/internal/mention"
	"github.com/ndtran/shoutbox/internal/model"
	"github.com/ndtran/shoutbox/internal/store"
	"github.com/ndtran/shoutbox/internal/theme"
)

// UpdatedMsg is dispatched when the profile has been changed on the
// server, so the app can refresh its cached user.
type UpdatedMsg struct {
	User *model.User
}

// OpenDraftMsg asks the app to reopen a stashed draft in the compose
// form.
type OpenDraftMsg struct {
	Draft model.Draft
}

// ActionDoneMsg reports the outcome of a profile action.
type ActionDoneMsg struct {
	Notice string
	Err    error
}

type loadedMsg struct {
	mine   []model.ShoutOut
	tagged []model.ShoutOut
	drafts []model.Draft
	err    error
}

const (
	tabOverview = iota
	tabMine
	tabTagged
	tabDrafts
	tabCount
)

var tabTitles = [tabCount]string{"Overview", "Sent", "Mentions", "Drafts"}

const (
	modeView = iota
	modeEdit
	modePicture
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name    string
	email   string
	picPath string
}

// Model is the profile view: account details, the user's sent and
// mentioning shout-outs, and stashed drafts.
type Model struct {
	client *api.Client
	drafts store.Store
	keys   *keys.KeyMap
	user   *model.User

	tab       int
	cursor    int
	mode      int
	form      *huh.Form
	fb        *formBindings
	mine      []model.ShoutOut
	tagged    []model.ShoutOut
	draftList []model.Draft

	width  int
	height int
}

// New creates the profile view.
func New(client *api.Client, drafts store.Store, km *keys.KeyMap, width, height int) Model {
	return Model{
		client: client,
		drafts: drafts,
		keys:   km,
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// InputActive reports whether an edit form currently owns the keyboard.
func (m Model) InputActive() bool {
	return m.mode != modeView
}

// SetUser sets the profile being shown.
func (m *Model) SetUser(u *model.User) {
	m.user = u
}

// Load fetches the user's shout-outs and drafts.
func (m Model) Load() tea.Cmd {
	client := m.client
	drafts := m.drafts

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		mine, err := client.MyShoutouts(ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		tagged, err := client.TaggedShoutouts(ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		stashed, err := drafts.GetDrafts(ctx)
		if err != nil {
			return loadedMsg{mine: mine, tagged: tagged, err: err}
		}
		return loadedMsg{mine: mine, tagged: tagged, drafts: stashed}
	}
}

// Update handles messages for the profile view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			return m, func() tea.Msg { return ActionDoneMsg{Err: msg.err} }
		}
		m.mine = msg.mine
		m.tagged = msg.tagged
		m.draftList = msg.drafts
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeView {
			return m.updateForm(msg)
		}
		return m.handleKey(msg)
	}

	if m.mode != modeView {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Tab):
		m.tab = (m.tab + 1) % tabCount
		m.cursor = 0

	case key.Matches(msg, m.keys.Down):
		m.cursor++
		m.clampCursor()

	case key.Matches(msg, m.keys.Up):
		m.cursor--
		m.clampCursor()

	case key.Matches(msg, m.keys.Edit):
		if m.tab == tabOverview && m.user != nil {
			m.mode = modeEdit
			m.fb.name = m.user.Name
			m.fb.email = m.user.Email
			m.form = m.buildEditForm()
			return m, m.form.Init()
		}

	case key.Matches(msg, m.keys.Select):
		if m.tab == tabDrafts && m.cursor < len(m.draftList) {
			d := m.draftList[m.cursor]
			return m, func() tea.Msg { return OpenDraftMsg{Draft: d} }
		}

	case key.Matches(msg, m.keys.Delete):
		if m.tab == tabDrafts && m.cursor < len(m.draftList) {
			return m, m.deleteDraft(m.draftList[m.cursor].ID)
		}

	default:
		if m.tab == tabOverview {
			switch msg.String() {
			case "u":
				m.mode = modePicture
				m.fb.picPath = ""
				m.form = m.buildPictureForm()
				return m, m.form.Init()
			case "x":
				if m.user != nil && m.user.ProfilePictureURL != "" {
					return m, m.deletePicture()
				}
			}
		}
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		m.mode = modeView
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		mode := m.mode
		m.mode = modeView
		if mode == modePicture {
			return m, m.uploadPicture(strings.TrimSpace(m.fb.picPath))
		}
		return m, m.saveProfile()
	case huh.StateAborted:
		m.mode = modeView
		return m, nil
	}

	return m, cmd
}

func (m *Model) buildEditForm() *huh.Form {
	fb := m.fb
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}).
				Value(&fb.name),
			huh.NewInput().
				Title("Email").
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return fmt.Errorf("that doesn't look like an email address")
					}
					return nil
				}).
				Value(&fb.email),
		),
	).WithWidth(min(m.width-4, 64))
}

func (m *Model) buildPictureForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Picture file").
				Placeholder("/path/to/avatar.png").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path is required")
					}
					return nil
				}).
				Value(&m.fb.picPath),
		),
	).WithWidth(min(m.width-4, 64))
}

func (m Model) saveProfile() tea.Cmd {
	client := m.client
	name := strings.TrimSpace(m.fb.name)
	email := strings.TrimSpace(m.fb.email)

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		user, err := client.UpdateMe(ctx, model.UserUpdate{
			Name:  &name,
			Email: &email,
		})
		if err != nil {
			return ActionDoneMsg{Err: err}
		}
		return UpdatedMsg{User: user}
	}
}

func (m Model) uploadPicture(path string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		user, err := client.UploadProfilePicture(ctx, path)
		if err != nil {
			return ActionDoneMsg{Err: err}
		}
		return UpdatedMsg{User: user}
	}
}

func (m Model) deletePicture() tea.Cmd {
	client := m.client
	self := *m.user
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := client.DeleteProfilePicture(ctx); err != nil {
			return ActionDoneMsg{Err: err}
		}
		self.ProfilePictureURL = ""
		return UpdatedMsg{User: &self}
	}
}

func (m Model) deleteDraft(id string) tea.Cmd {
	drafts := m.drafts
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := drafts.DeleteDraft(ctx, id); err != nil {
			return ActionDoneMsg{Err: err}
		}
		return ActionDoneMsg{Notice: "Draft deleted."}
	}
}

func (m *Model) clampCursor() {
	var n int
	switch m.tab {
	case tabMine:
		n = len(m.mine)
	case tabTagged:
		n = len(m.tagged)
	case tabDrafts:
		n = len(m.draftList)
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the profile view.
func (m Model) View() string {
	if m.mode != modeView && m.form != nil {
		title := "Edit Profile"
		if m.mode == modePicture {
			title = "Upload Profile Picture"
		}
		header := lipgloss.NewStyle().Bold(true).MarginBottom(1).Render(title)
		return lipgloss.NewStyle().Padding(1, 2).Render(header + "\n" + m.form.View())
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.tab {
	case tabOverview:
		b.WriteString(m.renderOverview())
	case tabMine:
		b.WriteString(m.renderShoutouts(m.mine, "You haven't posted any shout-outs yet."))
	case tabTagged:
		b.WriteString(m.renderShoutouts(m.tagged, "Nobody has mentioned you yet."))
	case tabDrafts:
		b.WriteString(m.renderDrafts())
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Model) renderTabs() string {
	parts := make([]string, 0, tabCount)
	for i, title := range tabTitles {
		if i == m.tab {
			parts = append(parts, theme.SelectedItemStyle.Render(title))
		} else {
			parts = append(parts, theme.HelpStyle.Render(title))
		}
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderOverview() string {
	if m.user == nil {
		return theme.HelpStyle.Render("No profile loaded.")
	}

	label := lipgloss.NewStyle().Bold(true).Width(12)
	var b strings.Builder
	b.WriteString(label.Render("Name") + m.user.Name + "\n")
	b.WriteString(label.Render("Email") + m.user.Email + "\n")
	b.WriteString(label.Render("Department") + m.user.Department + "\n")
	b.WriteString(label.Render("Role") + theme.RoleStyle(string(m.user.Role)).Render(string(m.user.Role)) + "\n")
	b.WriteString(label.Render("Joined") + m.user.JoinedAt.Format("Jan 2, 2006") + "\n")
	if m.user.ProfilePictureURL != "" {
		b.WriteString(label.Render("Picture") + m.user.ProfilePictureURL + "\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("e edit • u upload picture • x remove picture"))
	return b.String()
}

func (m Model) renderShoutouts(shoutouts []model.ShoutOut, empty string) string {
	if len(shoutouts) == 0 {
		return theme.HelpStyle.Render(empty)
	}

	var b strings.Builder
	for i, s := range shoutouts {
		line := fmt.Sprintf("%s  %s",
			theme.HelpStyle.Render(s.CreatedAt.Format("Jan 2")),
			mention.Display(s.Message))
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) renderDrafts() string {
	if len(m.draftList) == 0 {
		return theme.HelpStyle.Render("No drafts. Save one from the compose form.")
	}

	var b strings.Builder
	for i, d := range m.draftList {
		line := fmt.Sprintf("%s  %s",
			theme.HelpStyle.Render(d.UpdatedAt.Format("Jan 2 15:04")),
			mention.Display(d.Message))
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("enter resume • d delete"))
	return b.String()
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
