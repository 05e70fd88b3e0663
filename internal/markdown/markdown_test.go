package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain(text string) []Span {
	return []Span{{Style: StylePlain, Text: text}}
}

func TestRender_Empty(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty string", ""},
		{"whitespace only", "   \n\t\n  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, Render(tt.in))
		})
	}
}

func TestRender_Headings(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantLevel int
		wantText  string
	}{
		{"h1", "# Monstera", 1, "Monstera"},
		{"h2", "## Watering", 2, "Watering"},
		{"h3", "### Soil", 3, "Soil"},
		{"h3 with surrounding whitespace", "  ### Soil  ", 3, "Soil"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := Render(tt.in)
			require.Len(t, nodes, 1)
			assert.Equal(t, KindHeading, nodes[0].Kind)
			assert.Equal(t, tt.wantLevel, nodes[0].Level)
			assert.Equal(t, plain(tt.wantText), nodes[0].Spans)
		})
	}
}

func TestRender_HeadingWithoutSpaceIsParagraph(t *testing.T) {
	nodes := Render("#NoSpace")
	require.Len(t, nodes, 1)
	assert.Equal(t, KindParagraph, nodes[0].Kind)
}

func TestRender_ListGrouping(t *testing.T) {
	nodes := Render("* sun\n- water\n* soil\nAnd that's it.")

	require.Len(t, nodes, 2)
	require.Equal(t, KindList, nodes[0].Kind)
	require.Len(t, nodes[0].Items, 3)
	assert.Equal(t, plain("sun"), nodes[0].Items[0])
	assert.Equal(t, plain("water"), nodes[0].Items[1])
	assert.Equal(t, plain("soil"), nodes[0].Items[2])
	assert.Equal(t, KindParagraph, nodes[1].Kind)
}

func TestRender_ListFlushedAtEndOfInput(t *testing.T) {
	nodes := Render("Tips:\n* morning light\n* weekly water")

	require.Len(t, nodes, 2)
	assert.Equal(t, KindParagraph, nodes[0].Kind)
	require.Equal(t, KindList, nodes[1].Kind)
	assert.Len(t, nodes[1].Items, 2)
}

func TestRender_BlankLinesNotCollapsed(t *testing.T) {
	nodes := Render("one\n\n\ntwo")

	require.Len(t, nodes, 4)
	assert.Equal(t, KindParagraph, nodes[0].Kind)
	assert.Equal(t, KindLineBreak, nodes[1].Kind)
	assert.Equal(t, KindLineBreak, nodes[2].Kind)
	assert.Equal(t, KindParagraph, nodes[3].Kind)
}

func TestRender_NodeOrderMatchesLineOrder(t *testing.T) {
	nodes := Render("# Title\nintro\n* a\n* b\noutro")

	require.Len(t, nodes, 4)
	assert.Equal(t, KindHeading, nodes[0].Kind)
	assert.Equal(t, KindParagraph, nodes[1].Kind)
	assert.Equal(t, KindList, nodes[2].Kind)
	assert.Equal(t, KindParagraph, nodes[3].Kind)
}

func TestParseInline(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Span
	}{
		{
			"plain",
			"just text",
			plain("just text"),
		},
		{
			"strong",
			"a **bold** word",
			[]Span{{StylePlain, "a "}, {StyleStrong, "bold"}, {StylePlain, " word"}},
		},
		{
			"emphasis",
			"an *italic* word",
			[]Span{{StylePlain, "an "}, {StyleEmphasis, "italic"}, {StylePlain, " word"}},
		},
		{
			"strong then emphasis",
			"**Ficus** is *thirsty*",
			[]Span{{StyleStrong, "Ficus"}, {StylePlain, " is "}, {StyleEmphasis, "thirsty"}},
		},
		{
			"unbalanced double marker passes through",
			"broken **bold",
			plain("broken **bold"),
		},
		{
			"unbalanced single marker passes through",
			"broken *italic",
			plain("broken *italic"),
		},
		{
			"unmatched double marker does not pair with itself",
			"**trailing",
			plain("**trailing"),
		},
		{
			"unmatched double marker before balanced emphasis",
			"broken ** but *ok*",
			[]Span{{StylePlain, "broken ** but "}, {StyleEmphasis, "ok"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseInline(tt.in))
		})
	}
}

func TestRender_InlineInsideListAndHeading(t *testing.T) {
	nodes := Render("## **Care** plan\n* water *daily*")

	require.Len(t, nodes, 2)
	assert.Equal(t, []Span{{StyleStrong, "Care"}, {StylePlain, " plan"}}, nodes[0].Spans)
	require.Len(t, nodes[1].Items, 1)
	assert.Equal(t, []Span{{StylePlain, "water "}, {StyleEmphasis, "daily"}}, nodes[1].Items[0])
}
