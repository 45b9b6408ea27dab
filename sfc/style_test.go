package sfc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scopedEnds(t *testing.T, css string) Style {
	t.Helper()
	doc, err := Parse("<style scoped>" + css + "</style>")
	require.NoError(t, err)
	require.Len(t, doc.Styles, 1)
	require.True(t, doc.Styles[0].Scoped)
	return doc.Styles[0]
}

// The scanner records an offset at the colon that opens a pseudo-class and
// at a rule's opening brace unless it directly follows a pseudo-class;
// combinators record nothing.
func TestScopedStyleSelectorEnds(t *testing.T) {
	tests := []struct {
		name    string
		css     string
		endings string // the characters the recorded offsets point at
		first   string // selector text before the first offset
	}{
		{"single selector", "h1 { color: red; }", "{", "h1"},
		{"pseudo class", "a:hover{ color: red; }", ":", "a"},
		{"pseudo class then space", "a:hover { color: red; }", ":{", "a"},
		{"compound selector", ".foo > .bar { color: red; }", "{", ".foo > .bar"},
		{"two rules", "h1 { color: red; } h2 { color: blue; }", "{{", "h1"},
		{"attribute selector", "input[type=text] { color: red; }", "{", "input[type=text]"},
		{"comment before selector", "/* note */ h1 { color: red; }", "{", "/* note */ h1"},
		{"empty style", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := scopedEnds(t, tt.css)
			src := []rune("<style scoped>" + tt.css + "</style>")

			require.Len(t, style.SelectorEnds, len(tt.endings))
			for i, end := range style.SelectorEnds {
				assert.GreaterOrEqual(t, end, style.Content.Lo)
				assert.Less(t, end, style.Content.Hi)
				assert.Equal(t, string(tt.endings[i]), string(src[end]))
			}
			if len(style.SelectorEnds) > 0 {
				got := strings.TrimSpace(string(src[style.Content.Lo:style.SelectorEnds[0]]))
				assert.Equal(t, tt.first, got)
			}
		})
	}
}

func TestScopedStyleContentSpan(t *testing.T) {
	doc, err := Parse("<style scoped>h1 { color: red; }</style>")
	require.NoError(t, err)
	assert.Equal(t, "h1 { color: red; }", doc.Text(doc.Styles[0].Content))
}

func TestNonScopedStyleHasNoSelectorEnds(t *testing.T) {
	doc, err := Parse("<style>h1 { color: red; }</style>")
	require.NoError(t, err)
	assert.False(t, doc.Styles[0].Scoped)
	assert.Empty(t, doc.Styles[0].SelectorEnds)
}
