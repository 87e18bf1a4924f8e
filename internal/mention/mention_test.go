package mention

import (
	"reflect"
	"testing"
)

func TestDecodeInterleaving(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []Segment
	}{
		{
			name: "empty input",
			in:   "",
			want: []Segment{{Text: ""}},
		},
		{
			name: "plain text only",
			in:   "great job today",
			want: []Segment{{Text: "great job today"}},
		},
		{
			name: "single mention",
			in:   "@[Alice](5)",
			want: []Segment{{Text: "Alice", UserID: "5", Mention: true}},
		},
		{
			name: "mention surrounded by text",
			in:   "thanks @[Alice](5) for the help",
			want: []Segment{
				{Text: "thanks "},
				{Text: "Alice", UserID: "5", Mention: true},
				{Text: " for the help"},
			},
		},
		{
			name: "adjacent mentions",
			in:   "@[Alice](5)@[Bob](7)",
			want: []Segment{
				{Text: "Alice", UserID: "5", Mention: true},
				{Text: "Bob", UserID: "7", Mention: true},
			},
		},
		{
			name: "missing closing bracket stays literal",
			in:   "@[Alice(5)",
			want: []Segment{{Text: "@[Alice(5)"}},
		},
		{
			name: "missing id parens stays literal",
			in:   "@[Alice] waves",
			want: []Segment{{Text: "@[Alice] waves"}},
		},
		{
			name: "unterminated id stays literal",
			in:   "hi @[Alice](5",
			want: []Segment{{Text: "hi @[Alice](5"}},
		},
		{
			name: "bare at sign stays literal",
			in:   "mail me @ work",
			want: []Segment{{Text: "mail me @ work"}},
		},
		{
			name: "name runs to the first closing bracket",
			in:   "@[x @[Alice](5)",
			want: []Segment{
				{Text: "x @[Alice", UserID: "5", Mention: true},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Decode(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Decode(%q) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	token := Encode("Dana Petrov", "42")
	if token != "@[Dana Petrov](42)" {
		t.Fatalf("Encode produced %q", token)
	}

	segs := Decode("before " + token + " after")
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d: %#v", len(segs), segs)
	}
	m := segs[1]
	if !m.Mention || m.Text != "Dana Petrov" || m.UserID != "42" {
		t.Errorf("round trip lost mention data: %#v", m)
	}
}

func TestDisplayCollapsesMentions(t *testing.T) {
	got := Display("thanks @[Alice](5)!")
	want := "thanks @Alice!"
	if got != want {
		t.Errorf("Display = %q, want %q", got, want)
	}
}
