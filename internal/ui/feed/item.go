package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ndtran/shoutbox/internal/mention"
	"github.com/ndtran/shoutbox/internal/model"
	"github.com/ndtran/shoutbox/internal/theme"
)

// reactionGlyphs maps reaction types to their display glyphs.
var reactionGlyphs = map[model.ReactionType]string{
	model.ReactionLike: "👍",
	model.ReactionClap: "👏",
	model.ReactionStar: "⭐",
}

// renderMentions renders text with decoded mention segments styled.
func renderMentions(text string) string {
	var b strings.Builder
	for _, seg := range mention.Decode(text) {
		if seg.Mention {
			b.WriteString(theme.MentionStyle.Render("@" + seg.Text))
		} else {
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}

// renderCard renders one shout-out card. flashCommentID marks a single
// comment with the highlight style; flashing marks the whole card.
func renderCard(
	s model.ShoutOut,
	selected bool,
	flashing bool,
	flashCommentID int,
	width int,
) string {
	var b strings.Builder

	// Header: sender, recipients, age.
	names := make([]string, len(s.Recipients))
	for i, r := range s.Recipients {
		names[i] = theme.MentionStyle.Render("@" + r.Name)
	}
	header := fmt.Sprintf(
		"%s → %s",
		lipgloss.NewStyle().Bold(true).Render(s.Sender.Name),
		strings.Join(names, ", "),
	)
	age := theme.HelpStyle.Render(relativeTime(s.CreatedAt))
	b.WriteString(header + "  " + age + "\n\n")

	b.WriteString(renderMentions(s.Message))
	b.WriteString("\n")

	if line := renderReactions(s); line != "" {
		b.WriteString("\n" + line + "\n")
	}

	for _, c := range s.Comments {
		line := fmt.Sprintf(
			"%s %s",
			lipgloss.NewStyle().Bold(true).Render(c.User.Name+":"),
			renderMentions(c.Content),
		)
		if c.ID == flashCommentID {
			line = theme.HighlightedCardStyle.
				Padding(0, 1).
				Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		b.WriteString("\n" + line)
	}

	style := theme.CardStyle
	if flashing {
		style = theme.HighlightedCardStyle
	}
	card := style.Width(width - 4).Render(b.String())

	if selected {
		return theme.SelectedItemStyle.Render(card)
	}
	return lipgloss.NewStyle().PaddingLeft(2).Render(card)
}

// renderReactions renders the aggregate reaction line, marking the
// current user's own reaction.
func renderReactions(s model.ShoutOut) string {
	var parts []string
	for _, rc := range s.ReactionCounts {
		if rc.Count == 0 {
			continue
		}
		glyph := reactionGlyphs[rc.Type]
		text := fmt.Sprintf("%s %d", glyph, rc.Count)
		if s.UserReaction != nil && *s.UserReaction == rc.Type {
			text = theme.ReactionStyle(string(rc.Type)).Render(text) + "•"
		} else {
			text = theme.ReactionStyle(string(rc.Type)).Render(text)
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "  ")
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
