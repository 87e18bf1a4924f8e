package feed

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ndtran/shoutbox/internal/api"
	"github.com/ndtran/shoutbox/internal/highlight"
	"github.com/ndtran/shoutbox/internal/keys"
	"github.com/ndtran/shoutbox/internal/mention"
	"github.com/ndtran/shoutbox/internal/model"
	"github.com/ndtran/shoutbox/internal/store"
	"github.com/ndtran/shoutbox/internal/theme"
)

// LoadedMsg is sent when the feed has been loaded, either from the
// backend or, when the backend is unreachable, from the local cache.
type LoadedMsg struct {
	Shoutouts []model.ShoutOut
	FromCache bool
	Err       error
}

// ActionDoneMsg reports the outcome of a mutating feed action. Reload
// asks the app to refresh the feed so local state stays server-aligned.
type ActionDoneMsg struct {
	Notice string
	Err    error
	Reload bool
}

// OpenProfileMsg asks the app to show a colleague's profile.
type OpenProfileMsg struct {
	UserID int
}

// reactionsLoadedMsg carries the reaction listing for the overlay.
type reactionsLoadedMsg struct {
	Reactions []model.Reaction
	Err       error
}

// flashClearedMsg removes the highlight marker after its fixed duration.
type flashClearedMsg struct{}

type mode int

const (
	modeNormal mode = iota
	modeFilter
	modeComment
	modeReact
	modeReport
	modeReactions
)

// Model is the feed view: the list of shout-out cards with comment,
// reaction, report, and delete actions, plus the highlight application.
type Model struct {
	client *api.Client
	cache  store.Store
	nav    *highlight.Navigator
	keys   *keys.KeyMap

	user      *model.User
	users     []model.User
	shoutouts []model.ShoutOut
	fromCache bool

	cursor     int
	selComment int // -1 when the card itself is selected

	mode      mode
	input     textinput.Model
	filter    model.ShoutOutFilter
	reactions []model.Reaction

	flashShoutoutID int
	flashCommentID  int

	width  int
	height int
}

// New creates the feed view.
func New(
	client *api.Client,
	cache store.Store,
	nav *highlight.Navigator,
	k *keys.KeyMap,
	width, height int,
) Model {
	in := textinput.New()
	in.Width = width - 4

	return Model{
		client:     client,
		cache:      cache,
		nav:        nav,
		keys:       k,
		selComment: -1,
		input:      in,
		width:      width,
		height:     height,
	}
}

// Init returns the command that loads the initial feed.
func (m Model) Init() tea.Cmd {
	return m.Load()
}

// SetUser sets the current user, used for delete/report permissions.
func (m *Model) SetUser(u *model.User) {
	m.user = u
}

// SetUsers provides the directory used for mention completion.
func (m *Model) SetUsers(users []model.User) {
	m.users = users
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 4
}

// InputActive reports whether a prompt or overlay currently owns the
// keyboard, so global shortcuts must not fire.
func (m Model) InputActive() bool {
	return m.mode != modeNormal
}

// Load returns a command that fetches the feed with the current filter.
// When the backend is unreachable the cached copy is served instead.
func (m Model) Load() tea.Cmd {
	client := m.client
	cache := m.cache
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shoutouts, err := client.ListShoutouts(ctx, filter)
		if err != nil {
			if cache != nil {
				if cached, cacheErr := cache.GetFeed(ctx); cacheErr == nil && len(cached) > 0 {
					return LoadedMsg{Shoutouts: cached, FromCache: true}
				}
			}
			return LoadedMsg{Err: err}
		}

		if cache != nil {
			_ = cache.ReplaceFeed(ctx, shoutouts)
		}
		return LoadedMsg{Shoutouts: shoutouts}
	}
}

// Update handles messages for the feed view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.Err != nil {
			return m, func() tea.Msg {
				return ActionDoneMsg{Err: msg.Err}
			}
		}
		m.shoutouts = msg.Shoutouts
		m.fromCache = msg.FromCache
		if m.cursor >= len(m.shoutouts) {
			m.cursor = 0
		}
		m.selComment = -1
		return m, m.applyHighlight()

	case flashClearedMsg:
		m.flashShoutoutID = 0
		m.flashCommentID = 0
		return m, nil

	case reactionsLoadedMsg:
		if msg.Err != nil {
			m.mode = modeNormal
			return m, func() tea.Msg {
				return ActionDoneMsg{Err: msg.Err}
			}
		}
		m.reactions = msg.Reactions
		m.mode = modeReactions
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeFilter, modeComment, modeReport:
			return m.handleInputKeys(msg)
		case modeReact:
			return m.handleReactKeys(msg)
		case modeReactions:
			if msg.String() == "esc" || msg.String() == "q" {
				m.mode = modeNormal
				m.reactions = nil
			}
			return m, nil
		default:
			return m.handleNormalKeys(msg)
		}
	}

	return m, nil
}

// handleNormalKeys processes key input in normal (non-input) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.shoutouts)-1 {
			m.cursor++
			m.selComment = -1
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.selComment = -1
		}
		return m, nil

	case msg.String() == "left":
		if m.selComment >= 0 {
			m.selComment--
		}
		return m, nil

	case msg.String() == "right":
		if s := m.selected(); s != nil && m.selComment < len(s.Comments)-1 {
			m.selComment++
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if s := m.selected(); s != nil {
			return m, m.loadReactions(s.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Comment):
		if m.selected() == nil {
			return m, nil
		}
		m.mode = modeComment
		m.input.Placeholder = "Add a comment... (@name then tab to mention)"
		m.input.Reset()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.React):
		if m.selected() == nil {
			return m, nil
		}
		m.mode = modeReact
		return m, nil

	case key.Matches(msg, m.keys.Report):
		if m.selected() == nil || !m.canReport() {
			return m, nil
		}
		m.mode = modeReport
		m.input.Placeholder = "Reason for reporting..."
		m.input.Reset()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Delete):
		return m.deleteSelected()

	case key.Matches(msg, m.keys.Sender):
		// The selected comment's author, or the card's sender.
		if s := m.selected(); s != nil {
			id := s.SenderID
			if m.selComment >= 0 && m.selComment < len(s.Comments) {
				id = s.Comments[m.selComment].UserID
			}
			return m, func() tea.Msg { return OpenProfileMsg{UserID: id} }
		}
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.mode = modeFilter
		m.input.Placeholder = "Filter by department (empty clears)..."
		m.input.SetValue(m.filter.Department)
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.Load()
	}

	return m, nil
}

// handleInputKeys processes key input while a text prompt is active.
func (m Model) handleInputKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		activeMode := m.mode
		m.mode = modeNormal
		m.input.Blur()

		switch activeMode {
		case modeFilter:
			m.filter.Department = value
			return m, m.Load()

		case modeComment:
			// Validation failure stays local; nothing is sent.
			if value == "" {
				return m, nil
			}
			if s := m.selected(); s != nil {
				return m, m.postComment(s.ID, value)
			}
			return m, nil

		case modeReport:
			if value == "" {
				return m, func() tea.Msg {
					return ActionDoneMsg{Err: fmt.Errorf("a report needs a reason")}
				}
			}
			return m, m.submitReport(value)
		}
		return m, nil

	case "esc":
		m.mode = modeNormal
		m.input.Blur()
		m.input.Reset()
		return m, nil

	case "tab":
		if m.mode == modeComment {
			m.completeMention()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleReactKeys waits for a reaction choice after the react key.
func (m Model) handleReactKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.mode = modeNormal

	// Digits 1..n pick from the reaction types in display order.
	k := msg.String()
	if len(k) != 1 || k[0] < '1' || k[0] > '0'+byte(len(model.ReactionTypes)) {
		return m, nil
	}
	rt := model.ReactionTypes[k[0]-'1']

	s := m.selected()
	if s == nil {
		return m, nil
	}
	return m, m.toggleReaction(s.ID, rt)
}

// completeMention expands an "@prefix" immediately before the cursor
// into encoded mention markup for the first matching colleague.
func (m *Model) completeMention() {
	value := m.input.Value()
	pos := m.input.Position()
	if pos > len(value) {
		pos = len(value)
	}

	at := strings.LastIndex(value[:pos], "@")
	if at < 0 {
		return
	}
	prefix := strings.ToLower(value[at+1 : pos])
	if prefix == "" {
		return
	}

	for _, u := range m.users {
		if strings.HasPrefix(strings.ToLower(u.Name), prefix) {
			token := mention.Encode(u.Name, strconv.Itoa(u.ID))
			m.input.SetValue(value[:at] + token + value[pos:])
			m.input.SetCursor(at + len(token))
			return
		}
	}
}

// selected returns the shout-out under the cursor, or nil.
func (m *Model) selected() *model.ShoutOut {
	if m.cursor < 0 || m.cursor >= len(m.shoutouts) {
		return nil
	}
	return &m.shoutouts[m.cursor]
}

// canReport reports whether the current user may report the selection:
// admins moderate directly and owners cannot report themselves.
func (m *Model) canReport() bool {
	s := m.selected()
	if s == nil || m.user == nil {
		return false
	}
	if m.selComment >= 0 && m.selComment < len(s.Comments) {
		return !m.user.IsAdmin() && s.Comments[m.selComment].UserID != m.user.ID
	}
	return !m.user.IsAdmin() && s.SenderID != m.user.ID
}

// deleteSelected removes the selected comment or shout-out when the
// current user owns it or is an admin.
func (m Model) deleteSelected() (Model, tea.Cmd) {
	s := m.selected()
	if s == nil || m.user == nil {
		return m, nil
	}

	if m.selComment >= 0 && m.selComment < len(s.Comments) {
		c := s.Comments[m.selComment]
		if c.UserID != m.user.ID && !m.user.IsAdmin() {
			return m, nil
		}
		return m, m.deleteComment(c.ID)
	}

	if s.SenderID != m.user.ID && !m.user.IsAdmin() {
		return m, nil
	}
	return m, m.deleteShoutout(s.ID)
}

// applyHighlight consumes any pending highlight once the list is loaded
// and non-empty, moves the cursor to the target, and schedules the
// marker's removal. A missing target is a silent no-op; the payload is
// still consumed so it never re-fires.
func (m *Model) applyHighlight() tea.Cmd {
	if len(m.shoutouts) == 0 {
		return nil
	}

	target, ok := m.nav.Consume()
	if !ok {
		return nil
	}

	idx, commentID, ok := highlight.Resolve(m.shoutouts, target)
	if !ok {
		return nil
	}

	m.cursor = idx
	m.selComment = -1
	if commentID != 0 {
		m.flashCommentID = commentID
		m.flashShoutoutID = 0
	} else {
		m.flashShoutoutID = m.shoutouts[idx].ID
		m.flashCommentID = 0
	}

	return tea.Tick(highlight.FlashDuration, func(time.Time) tea.Msg {
		return flashClearedMsg{}
	})
}

// === Commands ===

func (m Model) loadReactions(shoutoutID int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		reactions, err := client.ListReactions(ctx, shoutoutID, 1, 50, "")
		return reactionsLoadedMsg{Reactions: reactions, Err: err}
	}
}

func (m Model) postComment(shoutoutID int, content string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := client.AddComment(ctx, shoutoutID, content); err != nil {
			return ActionDoneMsg{Err: err}
		}
		return ActionDoneMsg{Notice: "Comment added", Reload: true}
	}
}

func (m Model) toggleReaction(shoutoutID int, rt model.ReactionType) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := client.ToggleReaction(ctx, shoutoutID, rt); err != nil {
			return ActionDoneMsg{Err: err}
		}
		return ActionDoneMsg{Reload: true}
	}
}

func (m Model) submitReport(reason string) tea.Cmd {
	s := m.selected()
	if s == nil {
		return nil
	}

	req := model.ReportCreate{Reason: reason}
	if m.selComment >= 0 && m.selComment < len(s.Comments) {
		req.CommentID = s.Comments[m.selComment].ID
	} else {
		req.ShoutoutID = s.ID
	}

	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := client.SubmitReport(ctx, req); err != nil {
			return ActionDoneMsg{Err: err}
		}
		return ActionDoneMsg{Notice: "Your report has been submitted and sent to the admin."}
	}
}

func (m Model) deleteShoutout(id int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := client.DeleteShoutout(ctx, id); err != nil {
			return ActionDoneMsg{Err: err}
		}
		return ActionDoneMsg{Notice: "Shout-out deleted", Reload: true}
	}
}

func (m Model) deleteComment(id int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := client.DeleteComment(ctx, id); err != nil {
			return ActionDoneMsg{Err: err}
		}
		return ActionDoneMsg{Notice: "Comment deleted", Reload: true}
	}
}

// === Rendering ===

// View renders the feed view.
func (m Model) View() string {
	switch m.mode {
	case modeFilter, modeComment, modeReport:
		bar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.input.View())
		return lipgloss.JoinVertical(lipgloss.Left, bar, m.renderCards(m.height-1))

	case modeReact:
		parts := make([]string, len(model.ReactionTypes))
		for i, rt := range model.ReactionTypes {
			parts[i] = fmt.Sprintf("%d %s", i+1, rt)
		}
		hint := theme.HelpStyle.Render("react: " + strings.Join(parts, " · ") + " (repeat removes)")
		return lipgloss.JoinVertical(lipgloss.Left, hint, m.renderCards(m.height-1))

	case modeReactions:
		return m.renderReactionsOverlay()
	}

	if len(m.shoutouts) == 0 {
		return m.renderEmptyState()
	}
	return m.renderCards(m.height)
}

// renderCards renders as many cards as fit, keeping the cursor visible.
func (m Model) renderCards(maxHeight int) string {
	used := 0
	var rendered []string

	// Walk backward from the cursor so the selected card is always
	// on screen, then fill downward.
	for i := m.cursor; i >= 0; i-- {
		card := m.cardAt(i)
		h := lipgloss.Height(card)
		if used+h > maxHeight && len(rendered) > 0 {
			break
		}
		rendered = append([]string{card}, rendered...)
		used += h
		if used >= maxHeight {
			break
		}
	}
	for i := m.cursor + 1; i < len(m.shoutouts) && used < maxHeight; i++ {
		card := m.cardAt(i)
		h := lipgloss.Height(card)
		if used+h > maxHeight {
			break
		}
		rendered = append(rendered, card)
		used += h
	}

	header := ""
	if m.fromCache {
		header = theme.HelpStyle.Render("offline: showing cached feed") + "\n"
	}
	if m.filter.Department != "" {
		header += theme.HelpStyle.Render("department: "+m.filter.Department) + "\n"
	}

	return header + strings.Join(rendered, "\n")
}

// cardAt renders the card at index i with selection and flash state.
func (m Model) cardAt(i int) string {
	s := m.shoutouts[i]
	flashing := s.ID == m.flashShoutoutID
	flashComment := 0
	if m.flashCommentID != 0 {
		for _, c := range s.Comments {
			if c.ID == m.flashCommentID {
				flashComment = c.ID
			}
		}
	}
	return renderCard(s, i == m.cursor, flashing, flashComment, m.width)
}

// renderReactionsOverlay lists individual reactions on the selection.
func (m Model) renderReactionsOverlay() string {
	var b strings.Builder
	b.WriteString(theme.HeaderStyle.Render("Reactions") + "\n\n")
	if len(m.reactions) == 0 {
		b.WriteString(theme.HelpStyle.Render("No reactions yet."))
	}
	for _, r := range m.reactions {
		glyph := reactionGlyphs[r.Type]
		b.WriteString(fmt.Sprintf("%s %s\n", glyph, r.User.Name))
	}
	b.WriteString("\n" + theme.HelpStyle.Render("esc to close"))
	return theme.BorderStyle.Width(m.width - 4).Render(b.String())
}

// renderEmptyState shows guidance text when the feed is empty.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.filter.Department != "" {
		return style.Render("No shout-outs match this filter.\nPress / to change it.")
	}
	return style.Render("No shout-outs yet.\n\nPress c to recognize a colleague.")
}
