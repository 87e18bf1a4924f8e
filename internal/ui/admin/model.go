package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ndtran/shoutbox/internal/api"
	"github.com/ndtran/shoutbox/internal/keys"
	"github.com/ndtran/shoutbox/internal/model"
	"github.com/ndtran/shoutbox/internal/theme"
)

// OpenTargetMsg asks the app to jump to the reported content in the
// feed, highlighting it on arrival.
type OpenTargetMsg struct {
	ShoutoutID int
	CommentID  int
}

// ActionDoneMsg reports the outcome of an admin action.
type ActionDoneMsg struct {
	Notice string
	Err    error
}

type loadedMsg struct {
	stats        *model.AdminStats
	contributors []model.TopContributor
	departments  []model.DepartmentStats
	reports      []model.Report
	users        []model.User
	err          error
}

const (
	tabStats = iota
	tabReports
	tabUsers
	tabCount
)

var tabTitles = [tabCount]string{"Stats", "Reports", "Users"}

// reportFilters cycles all -> pending -> reviewed -> resolved.
var reportFilters = []model.ReportStatus{"", model.ReportPending, model.ReportReviewed, model.ReportResolved}

// Model is the admin view: platform stats, the moderation queue, and
// user management. The app only routes here for admin users.
type Model struct {
	client *api.Client
	keys   *keys.KeyMap
	selfID int

	tab          int
	cursor       int
	filterIdx    int
	stats        *model.AdminStats
	contributors []model.TopContributor
	departments  []model.DepartmentStats
	reports      []model.Report
	users        []model.User

	width  int
	height int
}

// New creates the admin view.
func New(client *api.Client, km *keys.KeyMap, width, height int) Model {
	return Model{
		client: client,
		keys:   km,
		width:  width,
		height: height,
	}
}

// SetSelf records the signed-in admin, who cannot delete or demote
// themselves from the user list.
func (m *Model) SetSelf(id int) {
	m.selfID = id
}

// Load fetches everything the three tabs show.
func (m Model) Load() tea.Cmd {
	client := m.client
	filter := reportFilters[m.filterIdx]

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		stats, err := client.AdminStats(ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		contributors, err := client.TopContributors(ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		departments, err := client.ShoutoutsByDepartment(ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		reports, err := client.ListReports(ctx, filter)
		if err != nil {
			return loadedMsg{err: err}
		}
		users, err := client.ListUsers(ctx, "")
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{
			stats:        stats,
			contributors: contributors,
			departments:  departments,
			reports:      reports,
			users:        users,
		}
	}
}

// FocusReports switches to the moderation queue tab.
func (m *Model) FocusReports() {
	m.tab = tabReports
	m.cursor = 0
}

// Update handles messages for the admin view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			return m, func() tea.Msg { return ActionDoneMsg{Err: msg.err} }
		}
		m.stats = msg.stats
		m.contributors = msg.contributors
		m.departments = msg.departments
		m.reports = msg.reports
		m.users = msg.users
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
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

	case key.Matches(msg, m.keys.Filter):
		if m.tab == tabReports {
			m.filterIdx = (m.filterIdx + 1) % len(reportFilters)
			m.cursor = 0
			return m, m.Load()
		}

	case key.Matches(msg, m.keys.Select):
		switch m.tab {
		case tabReports:
			if m.cursor < len(m.reports) {
				return m, m.advanceReport(m.reports[m.cursor])
			}
		case tabUsers:
			if m.cursor < len(m.users) {
				return m, m.toggleRole(m.users[m.cursor])
			}
		}

	case key.Matches(msg, m.keys.Delete):
		if m.tab == tabUsers && m.cursor < len(m.users) {
			u := m.users[m.cursor]
			if u.ID == m.selfID {
				return m, func() tea.Msg {
					return ActionDoneMsg{Err: fmt.Errorf("you cannot delete your own account")}
				}
			}
			return m, m.deleteUser(u)
		}

	default:
		if m.tab == tabReports && msg.String() == "o" && m.cursor < len(m.reports) {
			r := m.reports[m.cursor]
			return m, func() tea.Msg {
				return OpenTargetMsg{ShoutoutID: r.ShoutoutID, CommentID: r.CommentID}
			}
		}
	}
	return m, nil
}

// advanceReport moves a report to the next moderation state. Resolved
// reports stay resolved.
func (m Model) advanceReport(r model.Report) tea.Cmd {
	var next model.ReportStatus
	switch r.Status {
	case model.ReportPending:
		next = model.ReportReviewed
	case model.ReportReviewed:
		next = model.ReportResolved
	default:
		return nil
	}

	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := client.UpdateReportStatus(ctx, r.ID, next); err != nil {
			return ActionDoneMsg{Err: err}
		}
		return ActionDoneMsg{Notice: fmt.Sprintf("Report #%d marked %s.", r.ID, next)}
	}
}

func (m Model) toggleRole(u model.User) tea.Cmd {
	if u.ID == m.selfID {
		return func() tea.Msg {
			return ActionDoneMsg{Err: fmt.Errorf("you cannot change your own role")}
		}
	}

	next := model.RoleAdmin
	if u.Role == model.RoleAdmin {
		next = model.RoleEmployee
	}

	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := client.UpdateUserRole(ctx, u.ID, next); err != nil {
			return ActionDoneMsg{Err: err}
		}
		return ActionDoneMsg{Notice: fmt.Sprintf("%s is now %s.", u.Name, next)}
	}
}

func (m Model) deleteUser(u model.User) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := client.DeleteUser(ctx, u.ID); err != nil {
			return ActionDoneMsg{Err: err}
		}
		return ActionDoneMsg{Notice: fmt.Sprintf("Deleted %s.", u.Name)}
	}
}

func (m *Model) clampCursor() {
	var n int
	switch m.tab {
	case tabReports:
		n = len(m.reports)
	case tabUsers:
		n = len(m.users)
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the admin view.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.tab {
	case tabStats:
		b.WriteString(m.renderStats())
	case tabReports:
		b.WriteString(m.renderReports())
	case tabUsers:
		b.WriteString(m.renderUsers())
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

func (m Model) renderStats() string {
	if m.stats == nil {
		return theme.HelpStyle.Render("Loading stats...")
	}

	heading := lipgloss.NewStyle().Bold(true).MarginTop(1)
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%d shout-outs across %d people\n",
		m.stats.TotalShoutouts, m.stats.TotalUsers))

	if len(m.stats.MostRecognizedUsers) > 0 {
		b.WriteString(heading.Render("Most recognized") + "\n")
		for _, u := range m.stats.MostRecognizedUsers {
			b.WriteString(fmt.Sprintf("  %-24s %d\n", u.Name, u.Count))
		}
	}

	if len(m.contributors) > 0 {
		b.WriteString(heading.Render("Top contributors") + "\n")
		for _, c := range m.contributors {
			b.WriteString(fmt.Sprintf("  %-24s %-16s %d\n", c.Name, c.Department, c.TotalShoutoutsSent))
		}
	}

	if len(m.departments) > 0 {
		b.WriteString(heading.Render("By department") + "\n")
		max := 0
		for _, d := range m.departments {
			if d.ShoutoutCount > max {
				max = d.ShoutoutCount
			}
		}
		for _, d := range m.departments {
			b.WriteString(fmt.Sprintf("  %-16s %s %d\n", d.Department, bar(d.ShoutoutCount, max, 24), d.ShoutoutCount))
		}
	}

	return b.String()
}

func (m Model) renderReports() string {
	filterLabel := "all"
	if f := reportFilters[m.filterIdx]; f != "" {
		filterLabel = string(f)
	}

	var b strings.Builder
	b.WriteString(theme.HelpStyle.Render("showing: "+filterLabel+"  (/ cycles, enter advances, o opens)") + "\n\n")

	if len(m.reports) == 0 {
		b.WriteString(theme.HelpStyle.Render("No reports."))
		return b.String()
	}

	for i, r := range m.reports {
		reporter := "someone"
		if r.Reporter != nil {
			reporter = r.Reporter.Name
		}
		target := "a shout-out"
		if r.CommentID != 0 {
			target = "a comment"
		}
		if r.TargetUserName != "" {
			target += " by " + r.TargetUserName
		}

		line := fmt.Sprintf("#%-4d %s  %s reported %s",
			r.ID,
			theme.ReportStatusStyle(string(r.Status)).Render(string(r.Status)),
			reporter,
			target)
		if r.Reason != "" {
			line += theme.HelpStyle.Render("  (" + r.Reason + ")")
		}
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) renderUsers() string {
	if len(m.users) == 0 {
		return theme.HelpStyle.Render("No users.")
	}

	var b strings.Builder
	b.WriteString(theme.HelpStyle.Render("enter toggles role, d deletes") + "\n\n")
	for i, u := range m.users {
		line := fmt.Sprintf("%-24s %-16s %s",
			u.Name,
			u.Department,
			theme.RoleStyle(string(u.Role)).Render(string(u.Role)))
		if u.ID == m.selfID {
			line += theme.HelpStyle.Render("  (you)")
		}
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// bar renders a proportional horizontal bar of at most width cells.
func bar(n, max, width int) string {
	if max <= 0 {
		return ""
	}
	filled := n * width / max
	if n > 0 && filled == 0 {
		filled = 1
	}
	return strings.Repeat("█", filled)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
