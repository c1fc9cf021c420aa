package document

import (
	"encoding/json"
	"errors"
)

// Node types of the rich-text document tree.
const (
	TypeDocument       = "document"
	TypeParagraph      = "paragraph"
	TypeHeading        = "heading"
	TypeText           = "text"
	TypeBulletList     = "bulletList"
	TypeOrderedList    = "orderedList"
	TypeListItem       = "listItem"
	TypeCodeBlock      = "codeBlock"
	TypeBlockquote     = "blockquote"
	TypeHorizontalRule = "horizontalRule"
	TypeImage          = "image"
	TypeHardBreak      = "hardBreak"
)

// Mark types applicable to text nodes.
const (
	MarkBold      = "bold"
	MarkItalic    = "italic"
	MarkUnderline = "underline"
	MarkStrike    = "strike"
	MarkCode      = "code"
	MarkLink      = "link"
	MarkTextColor = "textColor"
)

var ErrMalformedDocument = errors.New("malformed document content")

// Mark is an inline style annotation attached to a text node.
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// Node is a node of the document tree. Content and Text are mutually
// exclusive: container nodes carry Content, the text leaf carries Text.
// Unknown attrs are preserved as-is through a round-trip.
type Node struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
	Content []*Node        `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
}

// Empty returns the canonical empty document.
func Empty() *Node {
	return &Node{Type: TypeDocument, Content: []*Node{}}
}

// IsEmpty reports whether the node holds no renderable content.
func (n *Node) IsEmpty() bool {
	if n == nil {
		return true
	}
	if n.Text != "" {
		return false
	}
	if n.Type == TypeImage || n.Type == TypeHorizontalRule {
		return false
	}
	for _, child := range n.Content {
		if !child.IsEmpty() {
			return false
		}
	}
	return true
}

// MarshalJSON keeps an explicit "content" array for container nodes, even
// an empty one, so the canonical empty document round-trips structurally.
// Leaf nodes with no Content still omit the key.
func (n *Node) MarshalJSON() ([]byte, error) {
	type node Node
	if n.Content == nil {
		return json.Marshal((*node)(n))
	}

	return json.Marshal(struct {
		*node
		Content []*Node `json:"content"`
	}{(*node)(n), n.Content})
}

// Serialize encodes the tree into its storage form. The storage format is
// the tree itself as JSON; no lossy transformation is applied.
func Serialize(n *Node) ([]byte, error) {
	if n == nil {
		n = Empty()
	}
	return json.Marshal(n)
}

// Parse recovers a document tree from its stored form. It accepts an
// already-decoded *Node, raw JSON bytes, or a JSON-encoded string (the
// editor submits the tree stringified). A string that is not valid JSON
// yields ErrMalformedDocument together with an empty document, so read
// paths can degrade instead of failing; callers are expected to log it.
func Parse(raw any) (*Node, error) {
	switch v := raw.(type) {
	case nil:
		return Empty(), nil
	case *Node:
		if v == nil {
			return Empty(), nil
		}
		return v, nil
	case Node:
		return &v, nil
	case []byte:
		return parseBytes(v)
	case json.RawMessage:
		return parseBytes(v)
	case string:
		return parseBytes([]byte(v))
	case map[string]any:
		data, err := json.Marshal(v)
		if err != nil {
			return Empty(), ErrMalformedDocument
		}
		return parseBytes(data)
	default:
		return Empty(), ErrMalformedDocument
	}
}

func parseBytes(data []byte) (*Node, error) {
	if len(data) == 0 {
		return Empty(), nil
	}

	var node Node
	if err := json.Unmarshal(data, &node); err != nil {
		return Empty(), ErrMalformedDocument
	}
	if node.Type == "" {
		return Empty(), ErrMalformedDocument
	}
	if node.Type == TypeDocument && node.Content == nil {
		node.Content = []*Node{}
	}

	return &node, nil
}
