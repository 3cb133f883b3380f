package convert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustTokenize(t *testing.T, text string) []span {
	t.Helper()
	spans, err := tokenizeInline(text, 0, true)
	require.NoError(t, err)
	return spans
}

func TestTokenize_PlainText(t *testing.T) {
	spans := mustTokenize(t, "just words")
	require.Equal(t, []span{{kind: spanText, text: "just words"}}, spans)
}

func TestTokenize_CodeShieldsEmphasis(t *testing.T) {
	spans := mustTokenize(t, "`**not bold**`")
	require.Len(t, spans, 1)
	require.Equal(t, spanCode, spans[0].kind)
	require.Equal(t, "**not bold**", spans[0].text)
}

func TestTokenize_DoubleBacktickCode(t *testing.T) {
	spans := mustTokenize(t, "``a `tick` b``")
	require.Len(t, spans, 1)
	require.Equal(t, spanCode, spans[0].kind)
	require.Equal(t, "a `tick` b", spans[0].text)
}

func TestTokenize_UnmatchedBacktickIsLiteral(t *testing.T) {
	spans := mustTokenize(t, "a ` b")
	require.Equal(t, []span{{kind: spanText, text: "a ` b"}}, spans)
}

func TestTokenize_UnmatchedBoldIsLiteral(t *testing.T) {
	spans := mustTokenize(t, "**dangling")
	require.Equal(t, []span{{kind: spanText, text: "**dangling"}}, spans)
}

func TestTokenize_UnmatchedItalicIsLiteral(t *testing.T) {
	spans := mustTokenize(t, "a * b")
	require.Equal(t, []span{{kind: spanText, text: "a * b"}}, spans)
}

func TestTokenize_SpaceFlankedAsteriskStaysLiteral(t *testing.T) {
	spans := mustTokenize(t, "5 * 3 * 2")
	require.Equal(t, []span{{kind: spanText, text: "5 * 3 * 2"}}, spans)
}

func TestTokenize_UnderscoreEmphasis(t *testing.T) {
	spans := mustTokenize(t, "__bold__ and _italic_")
	require.Len(t, spans, 3)
	require.Equal(t, spanBold, spans[0].kind)
	require.Equal(t, "bold", spans[0].children[0].text)
	require.Equal(t, " and ", spans[1].text)
	require.Equal(t, spanItalic, spans[2].kind)
	require.Equal(t, "italic", spans[2].children[0].text)
}

func TestTokenize_IntrawordUnderscoreStaysLiteral(t *testing.T) {
	spans := mustTokenize(t, "snake_case_name stays")
	require.Equal(t, []span{{kind: spanText, text: "snake_case_name stays"}}, spans)
}

func TestTokenize_Strikethrough(t *testing.T) {
	spans := mustTokenize(t, "~~gone~~")
	require.Len(t, spans, 1)
	require.Equal(t, spanStrike, spans[0].kind)
	require.Equal(t, "gone", spans[0].children[0].text)
}

func TestTokenize_LinkTextAllowsEmphasisNotLinks(t *testing.T) {
	spans := mustTokenize(t, "[**bold** label](http://e)")
	require.Len(t, spans, 1)
	link := spans[0]
	require.Equal(t, spanLink, link.kind)
	require.Equal(t, "http://e", link.href)
	require.Len(t, link.children, 2)
	require.Equal(t, spanBold, link.children[0].kind)
	require.Equal(t, " label", link.children[1].text)
}

func TestTokenize_ImageDetectedBeforeLink(t *testing.T) {
	spans := mustTokenize(t, "![alt](http://i)")
	require.Len(t, spans, 1)
	require.Equal(t, spanImage, spans[0].kind)
	require.Equal(t, "alt", spans[0].text)
	require.Equal(t, "http://i", spans[0].href)
}

func TestTokenize_BareBracketIsLiteral(t *testing.T) {
	spans := mustTokenize(t, "see [1] for details")
	require.Equal(t, []span{{kind: spanText, text: "see [1] for details"}}, spans)
}

func TestTokenize_MixedDelimitersResolveDeterministically(t *testing.T) {
	// At each delimiter the scanner is greedy left to right: bold is tried
	// before italic, and an opener without a closer is literal.
	spans := mustTokenize(t, "*bold**text**")
	require.Len(t, spans, 3)
	require.Equal(t, spanItalic, spans[0].kind)
	require.Equal(t, "bold", spans[0].children[0].text)
	require.Equal(t, spanItalic, spans[1].kind)
	require.Equal(t, "text", spans[1].children[0].text)
	require.Equal(t, span{kind: spanText, text: "*"}, spans[2])
}

func TestTokenize_AdjacentTextMerged(t *testing.T) {
	// Two literalized delimiters around plain text collapse to one span.
	spans := mustTokenize(t, "a ** b ~~ c")
	require.Equal(t, []span{{kind: spanText, text: "a ** b ~~ c"}}, spans)
}

func TestTokenize_EmptyEmphasisIsLiteral(t *testing.T) {
	spans := mustTokenize(t, "****")
	require.Equal(t, []span{{kind: spanText, text: "****"}}, spans)
}
