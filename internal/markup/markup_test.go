package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func rejoin(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Raw())
	}
	return b.String()
}

func TestParse_Example(t *testing.T) {
	got := Parse("Hello **world** [intro] end")
	want := []Span{
		{Kind: Plain, Text: "Hello "},
		{Kind: Emphasis, Text: "world"},
		{Kind: Plain, Text: " "},
		{Kind: Bookmark, Text: "intro", Anchor: "intro"},
		{Kind: Plain, Text: " end"},
	}
	assert.Equal(t, want, got)
}

func TestParse_Cases(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Span
	}{
		{"empty", "", nil},
		{"plain only", "just text", []Span{{Kind: Plain, Text: "just text"}}},
		{"unclosed emphasis", "a **b", []Span{{Kind: Plain, Text: "a **b"}}},
		{"unclosed bookmark", "a [b", []Span{{Kind: Plain, Text: "a [b"}}},
		{"empty emphasis", "****", []Span{{Kind: Plain, Text: "****"}}},
		{"empty bookmark", "[]", []Span{{Kind: Plain, Text: "[]"}}},
		{"bookmark label spaces", "[Part  two\tend]", []Span{{Kind: Bookmark, Text: "Part  two\tend", Anchor: "Part-two-end"}}},
		{"adjacent", "**a**[b]", []Span{{Kind: Emphasis, Text: "a"}, {Kind: Bookmark, Text: "b", Anchor: "b"}}},
		{"emphasis does not cross lines", "**a\nb**", []Span{{Kind: Plain, Text: "**a\nb**"}}},
		{"bracket inside emphasis", "**see [x]**", []Span{{Kind: Emphasis, Text: "see [x]"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.in))
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"Hello **world** [intro] end",
		"***x*** [[y]] ]z[",
		"multi\nline **bold**\n[mark one]\n",
		"unicode: **héllo** [日本 語] ✓",
		"** ** [ ] **",
		"a*b**c***d****e",
	}
	for _, in := range inputs {
		assert.Equal(t, in, rejoin(Parse(in)), "input %q", in)
	}
}

func TestSpans_StopsEarly(t *testing.T) {
	n := 0
	for range Spans("a **b** c [d] e") {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestBookmarksAndStrip(t *testing.T) {
	text := "[Intro] hi **there** [Act two]"
	marks := Bookmarks(text)
	if assert.Len(t, marks, 2) {
		assert.Equal(t, "Intro", marks[0].Anchor)
		assert.Equal(t, "Act-two", marks[1].Anchor)
	}
	assert.Equal(t, "Intro hi there Act two", Strip(text))
}
