// Package markup splits script text into plain, emphasis and bookmark spans.
//
// Two inline forms are recognised: **emphasis** and [bookmark label]. There
// is no nesting and no escaping; an unclosed delimiter is plain text.
package markup

import (
	"iter"
	"regexp"
)

// Kind is the type of a span.
type Kind int

const (
	Plain Kind = iota
	Emphasis
	Bookmark
)

func (k Kind) String() string {
	switch k {
	case Emphasis:
		return "emphasis"
	case Bookmark:
		return "bookmark"
	default:
		return "plain"
	}
}

// Span is one segment of parsed text. Text has the delimiters removed.
type Span struct {
	Kind   Kind
	Text   string
	Anchor string // jump target id, bookmarks only
}

// Raw returns the span as it appeared in the source, delimiters included.
func (s Span) Raw() string {
	switch s.Kind {
	case Emphasis:
		return "**" + s.Text + "**"
	case Bookmark:
		return "[" + s.Text + "]"
	default:
		return s.Text
	}
}

var (
	// Leftmost match wins; the two alternatives never overlap a single match.
	tokenPattern = regexp.MustCompile(`\*\*[^\n]+?\*\*|\[[^\[\]\n]+\]`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// AnchorFor normalises a bookmark label into a jump target id.
func AnchorFor(label string) string {
	return whitespace.ReplaceAllString(label, "-")
}

// Spans lazily yields the spans of text in order.
func Spans(text string) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		rest := text
		for len(rest) > 0 {
			loc := tokenPattern.FindStringIndex(rest)
			if loc == nil {
				yield(Span{Kind: Plain, Text: rest})
				return
			}
			if loc[0] > 0 {
				if !yield(Span{Kind: Plain, Text: rest[:loc[0]]}) {
					return
				}
			}
			if !yield(tokenSpan(rest[loc[0]:loc[1]])) {
				return
			}
			rest = rest[loc[1]:]
		}
	}
}

func tokenSpan(tok string) Span {
	if tok[0] == '[' {
		label := tok[1 : len(tok)-1]
		return Span{Kind: Bookmark, Text: label, Anchor: AnchorFor(label)}
	}
	return Span{Kind: Emphasis, Text: tok[2 : len(tok)-2]}
}

// Parse collects all spans of text.
func Parse(text string) []Span {
	var out []Span
	for s := range Spans(text) {
		out = append(out, s)
	}
	return out
}

// Bookmarks returns only the bookmark spans, in order.
func Bookmarks(text string) []Span {
	var out []Span
	for s := range Spans(text) {
		if s.Kind == Bookmark {
			out = append(out, s)
		}
	}
	return out
}

// Strip returns text with all markup delimiters removed.
func Strip(text string) string {
	var b []byte
	for s := range Spans(text) {
		b = append(b, s.Text...)
	}
	return string(b)
}
