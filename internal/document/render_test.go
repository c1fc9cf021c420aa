package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRenderer(t *testing.T, allowedImageHosts ...string) *Renderer {
	t.Helper()
	return NewRenderer(zap.NewNop(), allowedImageHosts)
}

func TestRenderParagraphs(t *testing.T) {
	r := newTestRenderer(t)

	node, err := Parse(`{
		"type": "document",
		"content": [
			{"type": "paragraph", "content": [{"type": "text", "text": "Hello"}]},
			{"type": "paragraph", "content": [{"type": "text", "text": "World"}]}
		]
	}`)
	require.NoError(t, err)

	out := r.Render(node)
	assert.Contains(t, out, "<p>Hello</p>")
	assert.Contains(t, out, "<p>World</p>")
}

func TestRenderIsDeterministic(t *testing.T) {
	r := newTestRenderer(t)

	node, err := Parse(sampleDoc)
	require.NoError(t, err)

	first := r.Render(node)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, r.Render(node))
	}
}

func TestRenderMarkNestingOrder(t *testing.T) {
	r := newTestRenderer(t)

	// Marks stored inner-first still come out in the canonical nesting.
	node, err := Parse(`{
		"type": "paragraph",
		"content": [{
			"type": "text",
			"text": "hi",
			"marks": [{"type": "italic"}, {"type": "bold"}]
		}]
	}`)
	require.NoError(t, err)

	assert.Contains(t, r.Render(node), "<strong><em>hi</em></strong>")
}

func TestRenderLinkMark(t *testing.T) {
	r := newTestRenderer(t)

	node, err := Parse(`{
		"type": "paragraph",
		"content": [{
			"type": "text",
			"text": "click",
			"marks": [{"type": "link", "attrs": {"href": "https://example.com/page"}}]
		}]
	}`)
	require.NoError(t, err)

	out := r.Render(node)
	assert.Contains(t, out, `href="https://example.com/page"`)
	assert.Contains(t, out, ">click</a>")
}

func TestRenderTextColorMark(t *testing.T) {
	r := newTestRenderer(t)

	node, err := Parse(`{
		"type": "paragraph",
		"content": [{
			"type": "text",
			"text": "red",
			"marks": [{"type": "textColor", "attrs": {"color": "#ff0000"}}]
		}]
	}`)
	require.NoError(t, err)
	assert.Contains(t, r.Render(node), "#ff0000")

	invalid, err := Parse(`{
		"type": "paragraph",
		"content": [{
			"type": "text",
			"text": "plain",
			"marks": [{"type": "textColor", "attrs": {"color": "red; background:url(x)"}}]
		}]
	}`)
	require.NoError(t, err)

	out := r.Render(invalid)
	assert.Contains(t, out, "plain")
	assert.NotContains(t, out, "url(")
}

func TestRenderHeadingLevelClamped(t *testing.T) {
	r := newTestRenderer(t)

	cases := []struct {
		level    int
		expected string
	}{
		{2, "<h2>t</h2>"},
		{0, "<h1>t</h1>"},
		{9, "<h6>t</h6>"},
	}
	for _, tc := range cases {
		node := &Node{
			Type:    TypeHeading,
			Attrs:   map[string]any{"level": tc.level},
			Content: []*Node{{Type: TypeText, Text: "t"}},
		}
		assert.Contains(t, r.Render(node), tc.expected)
	}
}

func TestRenderEscapesText(t *testing.T) {
	r := newTestRenderer(t)

	node, err := Parse(`{
		"type": "paragraph",
		"content": [{"type": "text", "text": "<script>alert(1)</script>"}]
	}`)
	require.NoError(t, err)

	out := r.Render(node)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestRenderCodeBlockEscapes(t *testing.T) {
	r := newTestRenderer(t)

	node, err := Parse(`{
		"type": "codeBlock",
		"content": [{"type": "text", "text": "if a < b { return }"}]
	}`)
	require.NoError(t, err)

	out := r.Render(node)
	assert.Contains(t, out, "<pre><code>")
	assert.Contains(t, out, "if a &lt; b { return }")
}

func TestRenderLists(t *testing.T) {
	r := newTestRenderer(t)

	node, err := Parse(`{
		"type": "document",
		"content": [{
			"type": "bulletList",
			"content": [
				{"type": "listItem", "content": [{"type": "paragraph", "content": [{"type": "text", "text": "one"}]}]},
				{"type": "listItem", "content": [{"type": "paragraph", "content": [{"type": "text", "text": "two"}]}]}
			]
		}]
	}`)
	require.NoError(t, err)

	out := r.Render(node)
	assert.Contains(t, out, "<ul>")
	assert.Contains(t, out, "<li>")
	assert.Contains(t, out, "one")
	assert.Contains(t, out, "two")
}

func TestRenderImageHostAllowList(t *testing.T) {
	r := newTestRenderer(t, "pic.re")

	allowed, err := Parse(`{"type": "image", "attrs": {"src": "https://pic.re/image", "alt": "cat"}}`)
	require.NoError(t, err)

	out := r.Render(allowed)
	assert.Contains(t, out, "<img")
	assert.Contains(t, out, "https://pic.re/image")

	blocked, err := Parse(`{"type": "image", "attrs": {"src": "https://evil.example/x.png"}}`)
	require.NoError(t, err)
	assert.Contains(t, r.Render(blocked), "Image unavailable")
}

func TestRenderImageEmptyAllowListAllowsAll(t *testing.T) {
	r := newTestRenderer(t)

	node, err := Parse(`{"type": "image", "attrs": {"src": "https://anywhere.example/x.png"}}`)
	require.NoError(t, err)
	assert.Contains(t, r.Render(node), "<img")
}

func TestRenderUnknownNodeKeepsChildren(t *testing.T) {
	r := newTestRenderer(t)

	node, err := Parse(`{
		"type": "document",
		"content": [{
			"type": "futureWidget",
			"content": [{"type": "paragraph", "content": [{"type": "text", "text": "survives"}]}]
		}]
	}`)
	require.NoError(t, err)
	assert.Contains(t, r.Render(node), "<p>survives</p>")
}

func TestRenderEmptyDocument(t *testing.T) {
	r := newTestRenderer(t)
	assert.Equal(t, "", r.Render(Empty()))
}

func TestRenderStoredFallback(t *testing.T) {
	r := newTestRenderer(t)

	assert.Equal(t, RenderFallback, r.RenderStored("{broken json"))
	assert.Equal(t, RenderFallback, r.RenderStored(12345))
}

func TestRenderHardBreakAndRule(t *testing.T) {
	r := newTestRenderer(t)

	node, err := Parse(`{
		"type": "document",
		"content": [
			{"type": "paragraph", "content": [
				{"type": "text", "text": "a"},
				{"type": "hardBreak"},
				{"type": "text", "text": "b"}
			]},
			{"type": "horizontalRule"}
		]
	}`)
	require.NoError(t, err)

	out := r.Render(node)
	assert.Contains(t, out, "<br")
	assert.Contains(t, out, "<hr")
}
