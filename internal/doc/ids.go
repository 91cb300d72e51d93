package doc

import (
	"github.com/google/uuid"
	"github.com/samber/oops"
)

// AssignIDs stamps a blockId attribute on every structural node that lacks
// one, in document order. Text leaves are skipped. Existing identifiers are
// never regenerated or replaced, so repeated calls are no-ops after the
// first.
//
// Passing a nil root is a caller contract violation, not a content defect,
// and is reported as an error.
func AssignIDs(root *Node) (*Node, error) {
	if root == nil {
		return nil, oops.
			Code("NIL_NODE").
			Hint("Normalize content before assigning identifiers").
			Errorf("assigning ids to nil document")
	}

	Walk(root, func(n *Node) {
		if n.Type == TypeText {
			return
		}
		if id, ok := n.Attrs[AttrBlockID]; ok && id != nil && id != "" {
			return
		}
		n.SetAttr(AttrBlockID, uuid.NewString())
	})

	return root, nil
}
