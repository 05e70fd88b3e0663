// Package markdown renders the small markdown subset the assistant emits
// into structural display nodes. It is deliberately not a compliant
// markdown parser: malformed input degrades to plain paragraphs.
package markdown

import "strings"

type Kind int

const (
	KindHeading Kind = iota
	KindParagraph
	KindList
	KindLineBreak
)

type SpanStyle int

const (
	StylePlain SpanStyle = iota
	StyleStrong
	StyleEmphasis
)

// Span is an inline run of text with a single style.
type Span struct {
	Style SpanStyle
	Text  string
}

// Node is one structural unit of rendered output. Level is set for
// headings (1-3), Spans for headings and paragraphs, Items for lists.
type Node struct {
	Kind  Kind
	Level int
	Spans []Span
	Items [][]Span
}

// Render converts text into display nodes line by line. Consecutive bullet
// lines ("* " or "- ") group into one list node, flushed by the first
// non-list line or end of input. Blank lines become explicit break nodes.
// Node order equals input line order. Empty or all-whitespace input yields
// no nodes.
func Render(text string) []Node {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var nodes []Node
	var items [][]Span

	flushList := func() {
		if len(items) > 0 {
			nodes = append(nodes, Node{Kind: KindList, Items: items})
			items = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "* ") || strings.HasPrefix(trimmed, "- ") {
			items = append(items, parseInline(trimmed[2:]))
			continue
		}
		flushList()

		switch {
		case strings.HasPrefix(trimmed, "### "):
			nodes = append(nodes, Node{Kind: KindHeading, Level: 3, Spans: parseInline(trimmed[4:])})
		case strings.HasPrefix(trimmed, "## "):
			nodes = append(nodes, Node{Kind: KindHeading, Level: 2, Spans: parseInline(trimmed[3:])})
		case strings.HasPrefix(trimmed, "# "):
			nodes = append(nodes, Node{Kind: KindHeading, Level: 1, Spans: parseInline(trimmed[2:])})
		case trimmed == "":
			nodes = append(nodes, Node{Kind: KindLineBreak})
		default:
			nodes = append(nodes, Node{Kind: KindParagraph, Spans: parseInline(trimmed)})
		}
	}
	flushList()

	return nodes
}

// parseInline splits a line into styled spans in a single left-to-right
// pass: **x** becomes a strong span, *x* an emphasis span. Nested or
// overlapping markers are not handled; an unbalanced marker passes through
// literally.
func parseInline(text string) []Span {
	var spans []Span
	var plain strings.Builder

	flushPlain := func() {
		if plain.Len() > 0 {
			spans = append(spans, Span{Style: StylePlain, Text: plain.String()})
			plain.Reset()
		}
	}

	for i := 0; i < len(text); {
		if strings.HasPrefix(text[i:], "**") {
			if end := strings.Index(text[i+2:], "**"); end >= 0 {
				flushPlain()
				spans = append(spans, Span{Style: StyleStrong, Text: text[i+2 : i+2+end]})
				i += end + 4
				continue
			}
			// Unmatched double marker stays literal; it must not pair
			// with itself as an empty emphasis.
			plain.WriteString("**")
			i += 2
			continue
		}
		if text[i] == '*' {
			if end := strings.IndexByte(text[i+1:], '*'); end >= 0 {
				flushPlain()
				spans = append(spans, Span{Style: StyleEmphasis, Text: text[i+1 : i+1+end]})
				i += end + 2
				continue
			}
		}
		plain.WriteByte(text[i])
		i++
	}
	flushPlain()

	return spans
}
