package sfc

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func element(t *testing.T, children []Child, idx int) *Element {
	t.Helper()
	require.Greater(t, len(children), idx)
	el, ok := children[idx].(*Element)
	require.True(t, ok, "child %d is %T, want *Element", idx, children[idx])
	return el
}

func textContent(t *testing.T, doc *Document, children []Child, idx int) string {
	t.Helper()
	require.Greater(t, len(children), idx)
	text, ok := children[idx].(*Text)
	require.True(t, ok, "child %d is %T, want *Text", idx, children[idx])
	return doc.Text(text.Span)
}

func TestTemplateStructure(t *testing.T) {
	doc, err := Parse(`<template>
		<div>
			<h1>idk</h1>
			<test1/>
			<test2 />
			<test3>
				abc
				<p>def</p>
				ghi
				{{ jkl }}
			</test3>
		</div>
	</template>`)
	require.NoError(t, err)

	children := doc.Template.Children
	require.Len(t, children, 1)

	div := element(t, children, 0)
	assert.Equal(t, "div", doc.Text(div.Tag.Name))
	require.Len(t, div.Children, 4)

	h1 := element(t, div.Children, 0)
	assert.Equal(t, "h1", doc.Text(h1.Tag.Name))
	assert.Equal(t, "idk", textContent(t, doc, h1.Children, 0))

	test1 := element(t, div.Children, 1)
	assert.Equal(t, "test1", doc.Text(test1.Tag.Name))
	assert.Equal(t, TagOpenAndClose, test1.Tag.Type)
	assert.Empty(t, test1.Children)

	test2 := element(t, div.Children, 2)
	assert.Equal(t, "test2", doc.Text(test2.Tag.Name))
	assert.Equal(t, TagOpenAndClose, test2.Tag.Type)

	test3 := element(t, div.Children, 3)
	assert.Equal(t, "test3", doc.Text(test3.Tag.Name))
	assert.Equal(t, TagOpen, test3.Tag.Type)
	require.Len(t, test3.Children, 4)

	assert.Equal(t, "abc", strings.TrimSpace(textContent(t, doc, test3.Children, 0)))
	p := element(t, test3.Children, 1)
	assert.Equal(t, "def", textContent(t, doc, p.Children, 0))
	assert.Equal(t, "ghi", strings.TrimSpace(textContent(t, doc, test3.Children, 2)))

	jkl, ok := test3.Children[3].(*Interpolation)
	require.True(t, ok)
	assert.Equal(t, " jkl ", doc.Text(jkl.Span))
	require.Len(t, jkl.Refs, 1)
	assert.Equal(t, "jkl", doc.Text(jkl.Refs[0]))
}

func TestTemplateTagClassification(t *testing.T) {
	doc, err := Parse(`<template><div><custom-c/><slot></slot><template></template></div></template>`)
	require.NoError(t, err)

	div := element(t, doc.Template.Children, 0)
	require.Len(t, div.Children, 3)
	assert.Equal(t, KindCustomComponent, element(t, div.Children, 0).Tag.Kind)
	assert.Equal(t, KindSlot, element(t, div.Children, 1).Tag.Kind)
	assert.Equal(t, KindTemplate, element(t, div.Children, 2).Tag.Kind)
	assert.Equal(t, KindHTMLElement, div.Tag.Kind)
}

// Tolerant recovery: unmatched closing tags are dropped, unclosed elements
// are implicitly closed by an ancestor's closing tag, and the parse always
// produces a finite tree.
func TestTemplateTolerantRecovery(t *testing.T) {
	cases := []string{
		"<div>",            // open tag with no closing tag
		"</div>",           // only a closing tag
		"<div><h1></div>",  // h1 implicitly closed by </div>
		"<div><h1></span>", // closing a tag unrelated to any open
		"</div></div>",     // two closing tags without opens
	}
	for _, tc := range cases {
		t.Run(tc, func(t *testing.T) {
			input := fmt.Sprintf("<template>%s</template><script>export default {}</script>", tc)
			_, err := Parse(input)
			require.NoError(t, err)
		})
	}
}

func TestTemplateImplicitClose(t *testing.T) {
	doc, err := Parse("<template><div><h1></div></template>")
	require.NoError(t, err)

	div := element(t, doc.Template.Children, 0)
	assert.Equal(t, "div", doc.Text(div.Tag.Name))
	require.Len(t, div.Children, 1)
	h1 := element(t, div.Children, 0)
	assert.Equal(t, "h1", doc.Text(h1.Tag.Name))
	assert.Empty(t, h1.Children)
}

func TestTemplateTextAroundInterpolation(t *testing.T) {
	doc, err := Parse("<template><p>a {{ b }} c</p></template>")
	require.NoError(t, err)

	p := element(t, doc.Template.Children, 0)
	require.Len(t, p.Children, 3)
	assert.Equal(t, "a ", textContent(t, doc, p.Children, 0))
	iv, ok := p.Children[1].(*Interpolation)
	require.True(t, ok)
	assert.Equal(t, " b ", doc.Text(iv.Span))
	assert.Equal(t, " c", textContent(t, doc, p.Children, 2))
}

func TestTemplateWhitespaceOnlyTextDiscarded(t *testing.T) {
	doc, err := Parse("<template>\n\t <div>\n\t </div>\n\t </template>")
	require.NoError(t, err)
	require.Len(t, doc.Template.Children, 1)
	div := element(t, doc.Template.Children, 0)
	assert.Empty(t, div.Children)
}
