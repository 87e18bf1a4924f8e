package feed

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ndtran/shoutbox/internal/highlight"
	"github.com/ndtran/shoutbox/internal/keys"
	"github.com/ndtran/shoutbox/internal/model"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testModel() Model {
	m := New(nil, nil, &highlight.Navigator{}, keys.DefaultKeyMap(), 80, 24)
	m.shoutouts = []model.ShoutOut{
		{
			ID:       1,
			SenderID: 7,
			Comments: []model.Comment{{ID: 2, UserID: 9}},
		},
	}
	return m
}

func TestReactDigitSelection(t *testing.T) {
	m := testModel()
	m.mode = modeReact

	m, cmd := m.Update(runeKey('2'))
	if cmd == nil {
		t.Error("digit within range produced no command")
	}
	if m.mode != modeNormal {
		t.Error("react mode not left after a choice")
	}

	m.mode = modeReact
	m, cmd = m.Update(runeKey('9'))
	if cmd != nil {
		t.Error("digit out of range produced a command")
	}
	if m.mode != modeNormal {
		t.Error("react mode not left after a non-choice")
	}
}

func TestOpenAuthorProfile(t *testing.T) {
	m := testModel()

	_, cmd := m.Update(runeKey('v'))
	if cmd == nil {
		t.Fatal("no command for the author key")
	}
	open, ok := cmd().(OpenProfileMsg)
	if !ok || open.UserID != 7 {
		t.Errorf("card selection opened %+v, want sender 7", open)
	}

	// With a comment selected the comment's author is opened instead.
	m.selComment = 0
	_, cmd = m.Update(runeKey('v'))
	open, ok = cmd().(OpenProfileMsg)
	if !ok || open.UserID != 9 {
		t.Errorf("comment selection opened %+v, want author 9", open)
	}
}
