package blocks

import (
	"github.com/g5becks/blockdoc/internal/doc"
	"github.com/g5becks/blockdoc/internal/inline"
)

// BuildAccordionItem builds one accordion item node. The title is stored
// as a plain attribute and never inline-parsed. Content that is raw text
// becomes a single inline-parsed paragraph; nested blocks are lowered
// recursively. Icon and color fields pass through only when present, so
// downstream rendering applies its own defaults for absent ones.
func (e *Engine) BuildAccordionItem(item Item) *doc.Node {
	node := doc.New(doc.TypeAccordionItem, e.lowerFragment(item.Content)...)
	node.SetAttr("title", item.Title)
	if item.Icon != "" {
		node.SetAttr("icon", item.Icon)
	}
	if item.IconColor != "" {
		node.SetAttr("iconColor", item.IconColor)
	}
	if item.TitleColor != "" {
		node.SetAttr("titleColor", item.TitleColor)
	}
	return node
}

// BuildColumnSet builds a column-set node with exactly one column per
// entry. No minimum or maximum count is enforced here; layout is the
// renderer's concern.
func (e *Engine) BuildColumnSet(columns []Fragment) *doc.Node {
	set := doc.New(doc.TypeColumnSet)
	for _, fragment := range columns {
		set.Content = append(set.Content, doc.New(doc.TypeColumn, e.lowerFragment(fragment)...))
	}
	return set
}

func (e *Engine) lowerAccordion(block Block) *doc.Node {
	group := doc.New(doc.TypeAccordionGroup)
	for _, item := range block.Items {
		group.Content = append(group.Content, e.BuildAccordionItem(item))
	}
	return group
}

func (e *Engine) lowerFragment(fragment Fragment) []*doc.Node {
	if fragment.IsBlocks() {
		return e.LowerAll(fragment.Blocks)
	}
	return single(doc.New(doc.TypeParagraph, inline.Parse(fragment.Text)...))
}
