package telegram

import (
	"html"
	"strings"

	"github.com/leafwise/florabot/internal/markdown"
)

// FormatHTML lays out rendered display nodes as Telegram HTML. Headings
// become bold lines, lists become bullet lines, break nodes stay blank
// lines.
func FormatHTML(nodes []markdown.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		switch n.Kind {
		case markdown.KindHeading:
			b.WriteString("<b>")
			writeSpans(&b, n.Spans)
			b.WriteString("</b>\n")
		case markdown.KindParagraph:
			writeSpans(&b, n.Spans)
			b.WriteByte('\n')
		case markdown.KindList:
			for _, item := range n.Items {
				b.WriteString("• ")
				writeSpans(&b, item)
				b.WriteByte('\n')
			}
		case markdown.KindLineBreak:
			b.WriteByte('\n')
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderHTML renders message text straight to Telegram HTML.
func RenderHTML(text string) string {
	return FormatHTML(markdown.Render(text))
}

func writeSpans(b *strings.Builder, spans []markdown.Span) {
	for _, s := range spans {
		switch s.Style {
		case markdown.StyleStrong:
			b.WriteString("<b>")
			b.WriteString(html.EscapeString(s.Text))
			b.WriteString("</b>")
		case markdown.StyleEmphasis:
			b.WriteString("<i>")
			b.WriteString(html.EscapeString(s.Text))
			b.WriteString("</i>")
		default:
			b.WriteString(html.EscapeString(s.Text))
		}
	}
}
