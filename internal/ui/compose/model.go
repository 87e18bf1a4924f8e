package compose

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ndtran/shoutbox/internal/api"
	"github.com/ndtran/shoutbox/internal/model"
	"github.com/ndtran/shoutbox/internal/store"
	"github.com/ndtran/shoutbox/internal/theme"
)

// PostedMsg is dispatched when a shout-out has been posted.
type PostedMsg struct {
	ShoutOut *model.ShoutOut
}

// DraftSavedMsg is dispatched when the form content was stashed as a
// draft instead of posted.
type DraftSavedMsg struct {
	Draft model.Draft
}

// CancelMsg is dispatched when the user abandons the form.
type CancelMsg struct{}

// ErrMsg carries a post or save failure back to the app.
type ErrMsg struct {
	Err error
}

const (
	actionPost = "post"
	actionSave = "save"
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	recipientIDs []int
	message      string
	action       string
}

// Model is the shout-out compose form, with draft support.
type Model struct {
	form    *huh.Form
	fb      *formBindings
	client  *api.Client
	drafts  store.Store
	users   []model.User
	selfID  int
	draftID string
	width   int
	height  int
}

// New creates the compose form.
func New(client *api.Client, drafts store.Store, width, height int) Model {
	return Model{
		fb:     &formBindings{action: actionPost},
		client: client,
		drafts: drafts,
		width:  width,
		height: height,
	}
}

// SetOptions sets the recipient choices. The current user is excluded
// from their own recipient list.
func (m *Model) SetOptions(users []model.User, selfID int) {
	m.users = users
	m.selfID = selfID
}

// Start initializes an empty compose form.
func (m *Model) Start() tea.Cmd {
	m.draftID = ""
	m.fb.recipientIDs = nil
	m.fb.message = ""
	m.fb.action = actionPost
	m.form = m.buildForm()
	return m.form.Init()
}

// StartFromDraft initializes the form with a stashed draft. Posting or
// re-saving removes the original draft row.
func (m *Model) StartFromDraft(d model.Draft) tea.Cmd {
	m.draftID = d.ID
	m.fb.recipientIDs = append([]int(nil), d.RecipientIDs...)
	m.fb.message = d.Message
	m.fb.action = actionPost
	m.form = m.buildForm()
	return m.form.Init()
}

func (m *Model) buildForm() *huh.Form {
	opts := make([]huh.Option[int], 0, len(m.users))
	for _, u := range m.users {
		if u.ID == m.selfID {
			continue
		}
		label := u.Name
		if u.Department != "" {
			label = fmt.Sprintf("%s (%s)", u.Name, u.Department)
		}
		opts = append(opts, huh.NewOption(label, u.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title("Who are you recognizing?").
				Options(opts...).
				Validate(func(ids []int) error {
					if len(ids) == 0 {
						return fmt.Errorf("pick at least one recipient")
					}
					return nil
				}).
				Value(&m.fb.recipientIDs),
			huh.NewText().
				Title("Shout-out").
				Placeholder("What did they do?").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("message cannot be empty")
					}
					return nil
				}).
				Value(&m.fb.message),
			huh.NewSelect[string]().
				Title("Then").
				Options(
					huh.NewOption("Post it", actionPost),
					huh.NewOption("Save as draft", actionSave),
				).
				Value(&m.fb.action),
		),
	).WithWidth(min(m.width-4, 72))
}

// Update handles messages for the compose form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

func (m Model) handleSubmit() tea.Cmd {
	fb := *m.fb
	client := m.client
	drafts := m.drafts
	draftID := m.draftID

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if fb.action == actionSave {
			d := model.NewDraft(strings.TrimSpace(fb.message), fb.recipientIDs)
			if draftID != "" {
				d.ID = draftID
			}
			if err := drafts.SaveDraft(ctx, d); err != nil {
				return ErrMsg{Err: fmt.Errorf("saving draft: %w", err)}
			}
			return DraftSavedMsg{Draft: d}
		}

		s, err := client.CreateShoutout(ctx, model.ShoutOutCreate{
			Message:      strings.TrimSpace(fb.message),
			RecipientIDs: fb.recipientIDs,
		})
		if err != nil {
			return ErrMsg{Err: err}
		}
		if draftID != "" {
			// The draft has been posted; failing to clean it up only
			// leaves a stale row behind.
			_ = drafts.DeleteDraft(ctx, draftID)
		}
		return PostedMsg{ShoutOut: s}
	}
}

// View renders the compose form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := "New Shout-Out"
	if m.draftID != "" {
		title = "Resume Draft"
	}

	content := titleStyle.Render(title) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
