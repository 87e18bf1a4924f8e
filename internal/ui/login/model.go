package login

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
	"github.com/ndtran/shoutbox/internal/session"
	"github.com/ndtran/shoutbox/internal/theme"
)

// LoggedInMsg is sent when the session has been established.
type LoggedInMsg struct {
	User *model.User
}

// resultMsg carries the outcome of a login or register attempt.
type resultMsg struct {
	user *model.User
	err  error
}

const (
	modeLogin    = "login"
	modeRegister = "register"
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	mode       string
	email      string
	password   string
	name       string
	confirm    string
	department string
}

// Model is the login/registration view shown whenever the session is
// unauthenticated.
type Model struct {
	form       *huh.Form
	fb         *formBindings
	guard      *session.Guard
	submitting bool
	errMsg     string
	width      int
	height     int
}

// New creates the login view.
func New(guard *session.Guard, width, height int) Model {
	return Model{
		fb:     &formBindings{mode: modeLogin},
		guard:  guard,
		width:  width,
		height: height,
	}
}

// Start resets the form and returns its init command.
func (m *Model) Start() tea.Cmd {
	m.submitting = false
	m.fb.password = ""
	m.fb.confirm = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// buildForm assembles the combined sign-in / create-account form. All
// validation runs here, before anything is sent to the backend.
func (m *Model) buildForm() *huh.Form {
	fb := m.fb

	requireText := func(label string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", label)
			}
			return nil
		}
	}

	validateEmail := func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return fmt.Errorf("email is required")
		}
		if !strings.Contains(s, "@") {
			return fmt.Errorf("that doesn't look like an email address")
		}
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Welcome to Shoutbox").
				Options(
					huh.NewOption("Sign in", modeLogin),
					huh.NewOption("Create an account", modeRegister),
				).
				Value(&fb.mode),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Validate(validateEmail).
				Value(&fb.email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Validate(requireText("password")).
				Value(&fb.password),
		).WithHideFunc(func() bool { return fb.mode != modeLogin }),
		huh.NewGroup(
			huh.NewInput().
				Title("Full name").
				Validate(requireText("name")).
				Value(&fb.name),
			huh.NewInput().
				Title("Email").
				Validate(validateEmail).
				Value(&fb.email),
			huh.NewInput().
				Title("Department").
				Validate(requireText("department")).
				Value(&fb.department),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Validate(requireText("password")).
				Value(&fb.password),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Validate(func(s string) error {
					if s != fb.password {
						return fmt.Errorf("passwords do not match")
					}
					return nil
				}).
				Value(&fb.confirm),
		).WithHideFunc(func() bool { return fb.mode != modeRegister }),
	).WithWidth(min(m.width-4, 64))
}

// Update handles messages for the login view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if r, ok := msg.(resultMsg); ok {
		if r.err != nil {
			m.errMsg = loginErrorText(r.err)
			return m, m.Start()
		}
		m.errMsg = ""
		return m, func() tea.Msg {
			return LoggedInMsg{User: r.user}
		}
	}

	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted && !m.submitting {
		m.submitting = true
		return m, m.submit()
	}
	if m.form.State == huh.StateAborted {
		return m, m.Start()
	}

	return m, cmd
}

// submit runs the login or registration against the guard.
func (m Model) submit() tea.Cmd {
	guard := m.guard
	fb := *m.fb

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var user *model.User
		var err error
		if fb.mode == modeRegister {
			user, err = guard.Register(ctx, api.Registration{
				Name:       strings.TrimSpace(fb.name),
				Email:      strings.TrimSpace(fb.email),
				Password:   fb.password,
				Department: strings.TrimSpace(fb.department),
			})
		} else {
			user, err = guard.Login(ctx, strings.TrimSpace(fb.email), fb.password)
		}
		return resultMsg{user: user, err: err}
	}
}

// View renders the login view.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	content := m.form.View()
	if m.submitting {
		content = theme.HelpStyle.Render("Signing in...")
	}
	if m.errMsg != "" {
		content = theme.ErrorStyle.Render(m.errMsg) + "\n\n" + content
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// loginErrorText turns a backend failure into the inline notice shown
// above the form.
func loginErrorText(err error) string {
	if api.IsAuthError(err) {
		return "Invalid email or password."
	}
	return err.Error()
}
