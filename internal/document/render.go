package document

import (
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/ForumApp/forum-service/internal/metrics"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// RenderFallback is returned whenever content cannot be rendered. Read
// paths degrade to it instead of surfacing an error to the client.
const RenderFallback = "<p>Could not render content</p>"

const imageFallback = "<p>Image unavailable</p>"

var (
	colorRegexp = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	alignRegexp = regexp.MustCompile(`^(left|center|right|justify)$`)
)

// markOrder is the fixed outer-to-inner nesting of inline tags, applied
// regardless of the order marks were stored in.
var markOrder = []string{MarkLink, MarkBold, MarkItalic, MarkUnderline, MarkStrike, MarkCode, MarkTextColor}

var markTags = map[string]string{
	MarkBold:      "strong",
	MarkItalic:    "em",
	MarkUnderline: "u",
	MarkStrike:    "s",
	MarkCode:      "code",
}

// Renderer converts document trees into sanitized HTML for read-only
// display. Rendering is pure: identical input yields identical output.
type Renderer struct {
	logger       *zap.Logger
	policy       *bluemonday.Policy
	allowedHosts map[string]struct{}
}

func NewRenderer(logger *zap.Logger, allowedImageHosts []string) *Renderer {
	policy := bluemonday.UGCPolicy()
	policy.AllowImages()
	policy.AllowElements("u", "s", "span", "br", "hr")
	policy.AllowAttrs("alt").OnElements("img")
	policy.AllowStyles("color").Matching(colorRegexp).OnElements("span")
	policy.AllowStyles("text-align").Matching(alignRegexp).Globally()

	hosts := make(map[string]struct{}, len(allowedImageHosts))
	for _, host := range allowedImageHosts {
		hosts[strings.ToLower(host)] = struct{}{}
	}

	return &Renderer{
		logger:       logger,
		policy:       policy,
		allowedHosts: hosts,
	}
}

// RenderStored renders content in its stored form (a tree, raw JSON, or a
// JSON-encoded string). Malformed content yields RenderFallback.
func (r *Renderer) RenderStored(raw any) string {
	node, err := Parse(raw)
	if err != nil {
		r.logger.Sugar().Errorf("failed to parse stored content for rendering: %s", err.Error())
		metrics.RenderFallbacks.Inc()
		return RenderFallback
	}

	return r.Render(node)
}

// Render converts a document tree to an HTML string. It never panics to
// the caller; unrenderable input yields RenderFallback.
func (r *Renderer) Render(node *Node) (out string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Sugar().Errorf("recovered from panic while rendering content: %v", rec)
			metrics.RenderFallbacks.Inc()
			out = RenderFallback
		}
	}()

	if node.IsEmpty() {
		return ""
	}

	var b strings.Builder
	if node.Type == TypeDocument {
		r.renderChildren(&b, node)
	} else {
		r.renderNode(&b, node)
	}

	return r.policy.Sanitize(b.String())
}

func (r *Renderer) renderChildren(b *strings.Builder, node *Node) {
	for _, child := range node.Content {
		r.renderNode(b, child)
	}
}

func (r *Renderer) renderNode(b *strings.Builder, node *Node) {
	if node == nil {
		return
	}

	switch node.Type {
	case TypeParagraph:
		r.renderBlock(b, "p", node)
	case TypeHeading:
		level := intAttr(node.Attrs, "level", 1)
		if level < 1 {
			level = 1
		}
		if level > 6 {
			level = 6
		}
		r.renderBlock(b, fmt.Sprintf("h%d", level), node)
	case TypeBulletList:
		r.renderBlock(b, "ul", node)
	case TypeOrderedList:
		r.renderBlock(b, "ol", node)
	case TypeListItem:
		r.renderBlock(b, "li", node)
	case TypeBlockquote:
		r.renderBlock(b, "blockquote", node)
	case TypeCodeBlock:
		b.WriteString("<pre><code>")
		for _, child := range node.Content {
			if child != nil && child.Type == TypeText {
				b.WriteString(html.EscapeString(child.Text))
			}
		}
		b.WriteString("</code></pre>")
	case TypeHorizontalRule:
		b.WriteString("<hr>")
	case TypeHardBreak:
		b.WriteString("<br>")
	case TypeImage:
		r.renderImage(b, node)
	case TypeText:
		r.renderText(b, node)
	default:
		// Unknown block kinds are skipped but their children survive.
		r.renderChildren(b, node)
	}
}

func (r *Renderer) renderBlock(b *strings.Builder, tag string, node *Node) {
	b.WriteString("<")
	b.WriteString(tag)
	if align := stringAttr(node.Attrs, "textAlign"); alignRegexp.MatchString(align) {
		b.WriteString(` style="text-align:` + align + `"`)
	}
	b.WriteString(">")
	r.renderChildren(b, node)
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">")
}

func (r *Renderer) renderText(b *strings.Builder, node *Node) {
	present := make(map[string]Mark, len(node.Marks))
	for _, mark := range node.Marks {
		present[mark.Type] = mark
	}

	var opened []string
	for _, markType := range markOrder {
		mark, ok := present[markType]
		if !ok {
			continue
		}

		switch markType {
		case MarkLink:
			href := stringAttr(mark.Attrs, "href")
			if href == "" {
				continue
			}
			b.WriteString(`<a href="` + html.EscapeString(href) + `">`)
			opened = append(opened, "a")
		case MarkTextColor:
			color := stringAttr(mark.Attrs, "color")
			if !colorRegexp.MatchString(color) {
				continue
			}
			b.WriteString(`<span style="color:` + color + `">`)
			opened = append(opened, "span")
		default:
			tag := markTags[markType]
			b.WriteString("<" + tag + ">")
			opened = append(opened, tag)
		}
	}

	b.WriteString(html.EscapeString(node.Text))

	for i := len(opened) - 1; i >= 0; i-- {
		b.WriteString("</" + opened[i] + ">")
	}
}

func (r *Renderer) renderImage(b *strings.Builder, node *Node) {
	src := stringAttr(node.Attrs, "src")
	if !r.imageHostAllowed(src) {
		metrics.RenderFallbacks.Inc()
		b.WriteString(imageFallback)
		return
	}

	b.WriteString(`<img src="` + html.EscapeString(src) + `"`)
	if alt := stringAttr(node.Attrs, "alt"); alt != "" {
		b.WriteString(` alt="` + html.EscapeString(alt) + `"`)
	}
	b.WriteString(">")
}

// imageHostAllowed is a presentation-layer gate, not a security boundary:
// an image outside the allow-list is a render error, nothing more.
func (r *Renderer) imageHostAllowed(src string) bool {
	parsed, err := url.Parse(src)
	if err != nil || parsed.Host == "" {
		return false
	}

	if len(r.allowedHosts) == 0 {
		return true
	}

	_, ok := r.allowedHosts[strings.ToLower(parsed.Hostname())]
	return ok
}

func stringAttr(attrs map[string]any, key string) string {
	value, _ := attrs[key].(string)
	return value
}

func intAttr(attrs map[string]any, key string, fallback int) int {
	switch v := attrs[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}
