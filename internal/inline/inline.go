// Package inline parses lightweight Markdown styling inside a single text
// run: bold, italic, strikethrough, inline code, and links.
package inline

import (
	"strings"

	"github.com/g5becks/blockdoc/internal/doc"
)

// Parse splits text into styled text leaves. Spans are recognized left to
// right and never overlap. Unmatched or empty delimiters are kept as
// literal text, so concatenating the returned leaves reproduces the input
// with only consumed span markers removed. Parse never fails and returns
// no nodes only for empty input.
func Parse(text string) []*doc.Node {
	return parseSpans(text, nil)
}

func parseSpans(text string, active []doc.Mark) []*doc.Node {
	var nodes []*doc.Node
	var literal strings.Builder

	flush := func() {
		if literal.Len() == 0 {
			return
		}
		nodes = append(nodes, doc.NewText(literal.String(), active...))
		literal.Reset()
	}

	i := 0
	for i < len(text) {
		if inner, rest, ok := matchDelimited(text[i:], "**"); ok {
			flush()
			nodes = append(nodes, parseSpans(inner, withMark(active, doc.Mark{Type: doc.MarkBold}))...)
			i = len(text) - len(rest)
			continue
		}
		if inner, rest, ok := matchDelimited(text[i:], "~~"); ok {
			flush()
			nodes = append(nodes, parseSpans(inner, withMark(active, doc.Mark{Type: doc.MarkStrike}))...)
			i = len(text) - len(rest)
			continue
		}
		if text[i] == '*' || text[i] == '_' {
			if inner, rest, ok := matchDelimited(text[i:], string(text[i])); ok {
				flush()
				nodes = append(nodes, parseSpans(inner, withMark(active, doc.Mark{Type: doc.MarkItalic}))...)
				i = len(text) - len(rest)
				continue
			}
		}
		if text[i] == '`' {
			if inner, rest, ok := matchDelimited(text[i:], "`"); ok {
				flush()
				// Code content is never reparsed.
				nodes = append(nodes, doc.NewText(inner, withMark(active, doc.Mark{Type: doc.MarkCode})...))
				i = len(text) - len(rest)
				continue
			}
		}
		if text[i] == '[' {
			if label, href, rest, ok := matchLink(text[i:]); ok {
				flush()
				mark := doc.Mark{Type: doc.MarkLink, Attrs: map[string]any{doc.AttrHref: href}}
				nodes = append(nodes, parseSpans(label, withMark(active, mark))...)
				i = len(text) - len(rest)
				continue
			}
		}

		literal.WriteByte(text[i])
		i++
	}

	flush()
	return nodes
}

// matchDelimited matches text starting with delim against a delim...delim
// span. It returns the inner content and the remainder after the closing
// delimiter. Empty spans do not match, so "****" stays literal.
func matchDelimited(text, delim string) (inner, rest string, ok bool) {
	if !strings.HasPrefix(text, delim) {
		return "", "", false
	}
	body := text[len(delim):]
	end := strings.Index(body, delim)
	if end <= 0 {
		return "", "", false
	}
	return body[:end], body[end+len(delim):], true
}

// matchLink matches [label](url) at the start of text. The label may carry
// nested spans; the url is stored verbatim.
func matchLink(text string) (label, href, rest string, ok bool) {
	if !strings.HasPrefix(text, "[") {
		return "", "", "", false
	}
	labelEnd := strings.Index(text, "](")
	if labelEnd < 0 {
		return "", "", "", false
	}
	urlStart := labelEnd + 2
	urlEnd := strings.Index(text[urlStart:], ")")
	if urlEnd < 0 {
		return "", "", "", false
	}
	return text[1:labelEnd], text[urlStart : urlStart+urlEnd], text[urlStart+urlEnd+1:], true
}

// withMark copies active and appends mark, so sibling spans never share a
// backing array.
func withMark(active []doc.Mark, mark doc.Mark) []doc.Mark {
	out := make([]doc.Mark, 0, len(active)+1)
	out = append(out, active...)
	return append(out, mark)
}
