// Package doc defines the rich-text document tree produced by the
// normalizer: typed nodes, inline marks, identifier assignment, and
// structural sanitization.
package doc

// Node type names, matching the editor's document schema.
const (
	TypeDoc            = "doc"
	TypeParagraph      = "paragraph"
	TypeHeading        = "heading"
	TypeBulletList     = "bulletList"
	TypeOrderedList    = "orderedList"
	TypeListItem       = "listItem"
	TypeBlockquote     = "blockquote"
	TypeCodeBlock      = "codeBlock"
	TypeHorizontalRule = "horizontalRule"
	TypeTable          = "table"
	TypeTableRow       = "tableRow"
	TypeTableCell      = "tableCell"
	TypeTableHeader    = "tableHeader"
	TypeImage          = "image"
	TypeText           = "text"
	TypeAccordionGroup = "accordionGroup"
	TypeAccordionItem  = "accordionItem"
	TypeColumnSet      = "columnSet"
	TypeColumn         = "column"
)

// Mark type names for inline styling.
const (
	MarkBold   = "bold"
	MarkItalic = "italic"
	MarkStrike = "strike"
	MarkCode   = "code"
	MarkLink   = "link"
)

// Attribute keys used by the normalizer.
const (
	AttrBlockID  = "blockId"
	AttrLevel    = "level"
	AttrLanguage = "language"
	AttrChecked  = "checked"
	AttrURL      = "url"
	AttrAlt      = "alt"
	AttrHref     = "href"
)

// Node is one element of the document tree. Type determines which of
// Content, Text, and Marks may be populated: text leaves carry Text and
// optionally Marks, every other type carries Content (possibly empty).
type Node struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []*Node        `json:"content,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
	Text    string         `json:"text,omitempty"`
}

// Mark is an inline style applied to a text leaf.
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// New builds a container node of the given type.
func New(nodeType string, children ...*Node) *Node {
	return &Node{Type: nodeType, Content: children}
}

// NewDoc builds a document root.
func NewDoc(children ...*Node) *Node {
	return New(TypeDoc, children...)
}

// NewText builds a text leaf with optional marks.
func NewText(text string, marks ...Mark) *Node {
	return &Node{Type: TypeText, Text: text, Marks: marks}
}

// SetAttr sets a single attribute, allocating the map on first use.
func (n *Node) SetAttr(key string, value any) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]any)
	}
	n.Attrs[key] = value
}

// Attr returns the named attribute and whether it is present.
func (n *Node) Attr(key string) (any, bool) {
	value, ok := n.Attrs[key]
	return value, ok
}

// Walk visits n and all descendants in document (pre-order) order.
func Walk(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, child := range n.Content {
		Walk(child, visit)
	}
}

// PlainText concatenates every text leaf under n in document order.
func PlainText(n *Node) string {
	var out []byte
	Walk(n, func(node *Node) {
		if node.Type == TypeText {
			out = append(out, node.Text...)
		}
	})
	return string(out)
}
