package doc

import (
	"encoding/json"
	"fmt"
)

// Sanitize verifies a decoded document tree and returns a loadable one.
// The root is coerced to a doc node, and any node violating the
// children/text exclusivity rule is replaced with a paragraph carrying its
// JSON form, so a partially malformed tree still normalizes to something
// renderable. Nothing is dropped and nothing fails.
func Sanitize(root *Node) *Node {
	if root == nil {
		return NewDoc()
	}
	if violates(root) {
		return NewDoc(coerce(root))
	}

	out := &Node{Type: TypeDoc, Attrs: root.Attrs}
	for _, child := range root.Content {
		out.Content = append(out.Content, sanitizeNode(child))
	}
	return out
}

func sanitizeNode(n *Node) *Node {
	if n == nil || violates(n) {
		return coerce(n)
	}
	for i, child := range n.Content {
		n.Content[i] = sanitizeNode(child)
	}
	return n
}

// violates reports whether a node breaks the exclusivity invariant: text
// leaves carry only text, every other type carries only children.
func violates(n *Node) bool {
	if n.Type == "" {
		return true
	}
	if n.Type == TypeText {
		return len(n.Content) > 0
	}
	return n.Text != ""
}

// coerce replaces a malformed node with a paragraph of its stringified
// form. An existing blockId survives the coercion so downstream references
// stay anchored.
func coerce(n *Node) *Node {
	if n == nil {
		return New(TypeParagraph)
	}

	raw, err := json.Marshal(n)
	if err != nil {
		raw = fmt.Appendf(nil, "%v", n)
	}

	out := New(TypeParagraph, NewText(string(raw)))
	if id, ok := n.Attrs[AttrBlockID]; ok {
		out.SetAttr(AttrBlockID, id)
	}
	return out
}
