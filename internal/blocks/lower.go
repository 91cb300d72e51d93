package blocks

import (
	"encoding/json"
	"fmt"

	"github.com/g5becks/blockdoc/internal/doc"
	"github.com/g5becks/blockdoc/internal/inline"
)

// DefaultLanguage is the code block language used when the input names
// none.
const DefaultLanguage = "plain"

const (
	minHeadingLevel = 1
	maxHeadingLevel = 6
)

// Engine lowers input blocks into document nodes.
type Engine struct {
	defaultLanguage string
}

func NewEngine(defaultLanguage string) *Engine {
	if defaultLanguage == "" {
		defaultLanguage = DefaultLanguage
	}
	return &Engine{defaultLanguage: defaultLanguage}
}

// LowerValue decodes one element of a simplified block array and lowers
// it. Values that do not decode as a block degrade to a stringified
// paragraph; nothing is dropped.
func (e *Engine) LowerValue(value any) []*doc.Node {
	raw, err := json.Marshal(value)
	if err != nil {
		return []*doc.Node{stringifiedParagraph(value)}
	}

	var block Block
	if err := json.Unmarshal(raw, &block); err != nil {
		return []*doc.Node{stringifiedParagraph(value)}
	}
	block.raw = raw

	return e.Lower(block)
}

// LowerAll lowers a block sequence in order, concatenating results.
func (e *Engine) LowerAll(input []Block) []*doc.Node {
	var nodes []*doc.Node
	for _, block := range input {
		nodes = append(nodes, e.Lower(block)...)
	}
	return nodes
}

// Lower maps one input block to its document nodes. A well-formed block
// produces exactly one node; an unrecognized type produces a paragraph
// carrying the block's JSON form.
func (e *Engine) Lower(block Block) []*doc.Node {
	switch block.Type {
	case TypeHeading:
		return single(e.lowerHeading(block))
	case TypeParagraph:
		return single(doc.New(doc.TypeParagraph, inline.Parse(block.Text)...))
	case TypeList:
		return single(e.lowerList(doc.TypeBulletList, block.Items, false))
	case TypeOrderedList:
		return single(e.lowerList(doc.TypeOrderedList, block.Items, false))
	case TypeChecklist:
		return single(e.lowerList(doc.TypeBulletList, block.Items, true))
	case TypeQuote:
		paragraph := doc.New(doc.TypeParagraph, inline.Parse(block.Text)...)
		return single(doc.New(doc.TypeBlockquote, paragraph))
	case TypeCode:
		return single(e.lowerCode(block))
	case TypeDivider:
		return single(doc.New(doc.TypeHorizontalRule))
	case TypeTable:
		return single(e.lowerTable(block))
	case TypeImage:
		return single(lowerImage(block))
	case TypeAccordion:
		return single(e.lowerAccordion(block))
	case TypeColumns:
		return single(e.BuildColumnSet(block.Columns))
	default:
		return single(fallbackParagraph(block))
	}
}

func (e *Engine) lowerHeading(block Block) *doc.Node {
	level := block.Level
	if level < minHeadingLevel {
		level = minHeadingLevel
	}
	if level > maxHeadingLevel {
		level = maxHeadingLevel
	}

	heading := doc.New(doc.TypeHeading, inline.Parse(block.Text)...)
	heading.SetAttr(doc.AttrLevel, level)
	return heading
}

func (e *Engine) lowerList(listType string, items []Item, checklist bool) *doc.Node {
	list := doc.New(listType)
	for _, item := range items {
		paragraph := doc.New(doc.TypeParagraph, inline.Parse(item.Text)...)
		entry := doc.New(doc.TypeListItem, paragraph)
		if checklist {
			entry.SetAttr(doc.AttrChecked, item.Checked != nil && *item.Checked)
		}
		list.Content = append(list.Content, entry)
	}
	return list
}

func (e *Engine) lowerCode(block Block) *doc.Node {
	language := block.Language
	if language == "" {
		language = e.defaultLanguage
	}

	// Code content stays raw; inline markdown is never parsed here.
	code := doc.New(doc.TypeCodeBlock, doc.NewText(block.Text))
	code.SetAttr(doc.AttrLanguage, language)
	return code
}

// lowerTable builds a table whose first row is the header row. The header
// length defines the column count: ragged body rows are padded with empty
// cells and excess cells are truncated.
func (e *Engine) lowerTable(block Block) *doc.Node {
	width := len(block.Headers)

	header := doc.New(doc.TypeTableRow)
	for _, title := range block.Headers {
		cell := doc.New(doc.TypeTableHeader,
			doc.New(doc.TypeParagraph, doc.NewText(title, doc.Mark{Type: doc.MarkBold})))
		header.Content = append(header.Content, cell)
	}

	table := doc.New(doc.TypeTable, header)
	for _, row := range block.Rows {
		out := doc.New(doc.TypeTableRow)
		for col := range width {
			var text string
			if col < len(row) {
				text = row[col]
			}
			cell := doc.New(doc.TypeTableCell, doc.New(doc.TypeParagraph, inline.Parse(text)...))
			out.Content = append(out.Content, cell)
		}
		table.Content = append(table.Content, out)
	}
	return table
}

func lowerImage(block Block) *doc.Node {
	image := doc.New(doc.TypeImage)
	image.SetAttr(doc.AttrURL, block.URL)
	image.SetAttr(doc.AttrAlt, block.Alt)
	return image
}

func single(n *doc.Node) []*doc.Node {
	return []*doc.Node{n}
}

// fallbackParagraph degrades an unrecognized block to a paragraph of its
// JSON form so no input is silently lost.
func fallbackParagraph(block Block) *doc.Node {
	raw := block.raw
	if len(raw) == 0 {
		encoded, err := json.Marshal(block)
		if err != nil {
			return stringifiedParagraph(block)
		}
		raw = encoded
	}
	return doc.New(doc.TypeParagraph, doc.NewText(string(raw)))
}

func stringifiedParagraph(value any) *doc.Node {
	if raw, err := json.Marshal(value); err == nil {
		return doc.New(doc.TypeParagraph, doc.NewText(string(raw)))
	}
	return doc.New(doc.TypeParagraph, doc.NewText(fmt.Sprintf("%v", value)))
}
