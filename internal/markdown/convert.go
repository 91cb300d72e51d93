// Package markdown converts Markdown source into the document tree using
// the gomarkdown AST.
package markdown

import (
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"

	"github.com/g5becks/blockdoc/internal/doc"
)

// Convert parses source with CommonMark extensions (tables, fenced code,
// strikethrough) and lowers the AST into a document tree. Conversion is
// total: constructs without a direct counterpart degrade to paragraphs of
// their plain text.
func Convert(source, defaultLanguage string) *doc.Node {
	if defaultLanguage == "" {
		defaultLanguage = "plain"
	}

	mdParser := parser.NewWithExtensions(parser.CommonExtensions)
	tree := mdParser.Parse([]byte(source))

	c := &converter{defaultLanguage: defaultLanguage}
	return doc.NewDoc(c.convertChildren(tree)...)
}

type converter struct {
	defaultLanguage string
}

func (c *converter) convertChildren(n ast.Node) []*doc.Node {
	var out []*doc.Node
	for _, child := range n.GetChildren() {
		out = append(out, c.convertBlock(child)...)
	}
	return out
}

func (c *converter) convertBlock(n ast.Node) []*doc.Node {
	switch node := n.(type) {
	case *ast.Heading:
		heading := doc.New(doc.TypeHeading, c.convertInlineChildren(node, nil)...)
		heading.SetAttr(doc.AttrLevel, node.Level)
		return []*doc.Node{heading}
	case *ast.Paragraph:
		return []*doc.Node{doc.New(doc.TypeParagraph, c.convertInlineChildren(node, nil)...)}
	case *ast.List:
		return []*doc.Node{c.convertList(node)}
	case *ast.BlockQuote:
		return []*doc.Node{doc.New(doc.TypeBlockquote, c.convertChildren(node)...)}
	case *ast.CodeBlock:
		return []*doc.Node{c.convertCodeBlock(node)}
	case *ast.HorizontalRule:
		return []*doc.Node{doc.New(doc.TypeHorizontalRule)}
	case *ast.Table:
		return []*doc.Node{c.convertTable(node)}
	case *ast.HTMLBlock:
		literal := strings.TrimSpace(string(node.Literal))
		if literal == "" {
			return nil
		}
		return []*doc.Node{doc.New(doc.TypeParagraph, doc.NewText(literal))}
	default:
		if len(n.GetChildren()) > 0 {
			return c.convertChildren(n)
		}
		if text := extractText(n); text != "" {
			return []*doc.Node{doc.New(doc.TypeParagraph, doc.NewText(text))}
		}
		return nil
	}
}

func (c *converter) convertList(list *ast.List) *doc.Node {
	listType := doc.TypeBulletList
	if list.ListFlags&ast.ListTypeOrdered != 0 {
		listType = doc.TypeOrderedList
	}

	out := doc.New(listType)
	for _, item := range list.GetChildren() {
		out.Content = append(out.Content, doc.New(doc.TypeListItem, c.convertChildren(item)...))
	}
	return out
}

func (c *converter) convertCodeBlock(node *ast.CodeBlock) *doc.Node {
	language := strings.TrimSpace(string(node.Info))
	if language == "" {
		language = c.defaultLanguage
	}

	text := strings.TrimSuffix(string(node.Literal), "\n")
	code := doc.New(doc.TypeCodeBlock, doc.NewText(text))
	code.SetAttr(doc.AttrLanguage, language)
	return code
}

func (c *converter) convertTable(node *ast.Table) *doc.Node {
	table := doc.New(doc.TypeTable)
	for _, section := range node.GetChildren() {
		for _, row := range section.GetChildren() {
			out := doc.New(doc.TypeTableRow)
			for _, cell := range row.GetChildren() {
				cellType := doc.TypeTableCell
				if tableCell, ok := cell.(*ast.TableCell); ok && tableCell.IsHeader {
					cellType = doc.TypeTableHeader
				}
				paragraph := doc.New(doc.TypeParagraph, c.convertInlineChildren(cell, nil)...)
				out.Content = append(out.Content, doc.New(cellType, paragraph))
			}
			table.Content = append(table.Content, out)
		}
	}
	return table
}

func (c *converter) convertInlineChildren(n ast.Node, marks []doc.Mark) []*doc.Node {
	var out []*doc.Node
	for _, child := range n.GetChildren() {
		out = append(out, c.convertInline(child, marks)...)
	}
	return out
}

func (c *converter) convertInline(n ast.Node, marks []doc.Mark) []*doc.Node {
	switch node := n.(type) {
	case *ast.Text:
		if len(node.Literal) == 0 {
			return nil
		}
		return []*doc.Node{doc.NewText(string(node.Literal), marks...)}
	case *ast.Strong:
		return c.convertInlineChildren(node, withMark(marks, doc.Mark{Type: doc.MarkBold}))
	case *ast.Emph:
		return c.convertInlineChildren(node, withMark(marks, doc.Mark{Type: doc.MarkItalic}))
	case *ast.Del:
		return c.convertInlineChildren(node, withMark(marks, doc.Mark{Type: doc.MarkStrike}))
	case *ast.Code:
		return []*doc.Node{doc.NewText(string(node.Literal), withMark(marks, doc.Mark{Type: doc.MarkCode})...)}
	case *ast.Link:
		mark := doc.Mark{Type: doc.MarkLink, Attrs: map[string]any{doc.AttrHref: string(node.Destination)}}
		return c.convertInlineChildren(node, withMark(marks, mark))
	case *ast.Image:
		image := doc.New(doc.TypeImage)
		image.SetAttr(doc.AttrURL, string(node.Destination))
		image.SetAttr(doc.AttrAlt, extractText(node))
		return []*doc.Node{image}
	case *ast.Hardbreak, *ast.Softbreak:
		return []*doc.Node{doc.NewText("\n", marks...)}
	case *ast.HTMLSpan:
		if len(node.Literal) == 0 {
			return nil
		}
		return []*doc.Node{doc.NewText(string(node.Literal), marks...)}
	default:
		if len(n.GetChildren()) > 0 {
			return c.convertInlineChildren(n, marks)
		}
		if text := extractText(n); text != "" {
			return []*doc.Node{doc.NewText(text, marks...)}
		}
		return nil
	}
}

func extractText(node ast.Node) string {
	var buf strings.Builder
	ast.WalkFunc(node, func(n ast.Node, entering bool) ast.WalkStatus {
		if entering {
			if text, ok := n.(*ast.Text); ok {
				buf.Write(text.Literal)
			}
		}
		return ast.GoToNext
	})
	return strings.TrimSpace(buf.String())
}

func withMark(marks []doc.Mark, mark doc.Mark) []doc.Mark {
	out := make([]doc.Mark, 0, len(marks)+1)
	out = append(out, marks...)
	return append(out, mark)
}
