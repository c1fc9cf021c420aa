package document

import "strings"

// blockTypes are nodes whose boundaries separate extracted text.
var blockTypes = map[string]struct{}{
	TypeParagraph:  {},
	TypeHeading:    {},
	TypeListItem:   {},
	TypeCodeBlock:  {},
	TypeBlockquote: {},
}

// ExtractStored flattens content in its stored form to plain text.
// Malformed content yields the empty string.
func ExtractStored(raw any) string {
	node, err := Parse(raw)
	if err != nil {
		return ""
	}

	return ExtractText(node)
}

// ExtractText flattens a document tree into a single plain-text string for
// preview snippets. Marks are discarded, images contribute nothing, block
// boundaries and hard breaks become newlines. Truncation for card previews
// is the caller's concern.
func ExtractText(node *Node) string {
	if node == nil {
		return ""
	}

	var b strings.Builder
	extract(&b, node)

	return strings.TrimSpace(b.String())
}

func extract(b *strings.Builder, node *Node) {
	if node == nil {
		return
	}

	switch node.Type {
	case TypeText:
		b.WriteString(node.Text)
		return
	case TypeHardBreak:
		b.WriteString("\n")
		return
	case TypeImage, TypeHorizontalRule:
		return
	}

	for _, child := range node.Content {
		extract(b, child)
	}

	// A nested block (a paragraph inside a list item) already wrote its
	// boundary newline; never stack a second one.
	if _, isBlock := blockTypes[node.Type]; isBlock {
		if out := b.String(); out != "" && !strings.HasSuffix(out, "\n") {
			b.WriteString("\n")
		}
	}
}
