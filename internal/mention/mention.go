// Package mention encodes and decodes the inline user-mention markup
// embedded in shout-out and comment text. The durable form is
// @[name](id), which survives storage as plain text; decoding is a
// small-state tokenizer rather than a regex so malformed tokens are
// handled by explicit transitions and never partially consumed.
package mention

import "strings"

// Segment is one run of decoded text: either a plain-text run or a
// resolved mention carrying the referenced user.
type Segment struct {
	// Text is the plain text run, or the display name for a mention.
	Text string

	// UserID is the referenced user id; empty for plain-text runs.
	UserID string

	// Mention reports whether this segment is a resolved mention.
	Mention bool
}

// Encode produces the durable token for a mention of the given user.
// The caller embeds it at the cursor position in the composed text.
func Encode(name, id string) string {
	return "@[" + name + "](" + id + ")"
}

// Decode scans text and returns the finite sequence of plain-text runs
// interleaved with mention segments. It holds no state between calls;
// every render recomputes from scratch. Empty input yields a single
// empty plain-text segment. Unterminated or malformed tokens are
// emitted as literal text.
func Decode(text string) []Segment {
	if text == "" {
		return []Segment{{Text: ""}}
	}

	var segments []Segment
	var plain strings.Builder

	i := 0
	for i < len(text) {
		name, id, next, ok := scanToken(text, i)
		if !ok {
			plain.WriteByte(text[i])
			i++
			continue
		}

		if plain.Len() > 0 {
			segments = append(segments, Segment{Text: plain.String()})
			plain.Reset()
		}
		segments = append(segments, Segment{
			Text:    name,
			UserID:  id,
			Mention: true,
		})
		i = next
	}

	if plain.Len() > 0 {
		segments = append(segments, Segment{Text: plain.String()})
	}

	return segments
}

// scanToken attempts to read a complete @[name](id) token starting at
// position i. It reports the parsed name, id, and the position just
// past the token. A token missing any terminator fails as a whole; the
// caller then treats text[i] as a literal byte.
func scanToken(text string, i int) (name, id string, next int, ok bool) {
	// state: expect "@["
	if text[i] != '@' || i+1 >= len(text) || text[i+1] != '[' {
		return "", "", 0, false
	}

	// state: reading name, terminated by ']'
	nameEnd := strings.IndexByte(text[i+2:], ']')
	if nameEnd < 0 {
		return "", "", 0, false
	}
	nameEnd += i + 2

	// state: expect "("
	if nameEnd+1 >= len(text) || text[nameEnd+1] != '(' {
		return "", "", 0, false
	}

	// state: reading id, terminated by ')'
	idEnd := strings.IndexByte(text[nameEnd+2:], ')')
	if idEnd < 0 {
		return "", "", 0, false
	}
	idEnd += nameEnd + 2

	return text[i+2 : nameEnd], text[nameEnd+2 : idEnd], idEnd + 1, true
}

// Display renders text with mention markup collapsed to @name, for
// contexts that cannot style segments individually.
func Display(text string) string {
	var b strings.Builder
	for _, seg := range Decode(text) {
		if seg.Mention {
			b.WriteString("@")
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}
