// Package normalize classifies arbitrary content and routes it to the
// right lowering pipeline. Normalize is total: any JSON-representable
// value produces a loadable document tree.
package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/g5becks/blockdoc/internal/blocks"
	"github.com/g5becks/blockdoc/internal/doc"
	"github.com/g5becks/blockdoc/internal/markdown"
)

// Options configure a Normalizer. The zero value uses the package
// defaults.
type Options struct {
	// DefaultLanguage is the code block language applied when the input
	// names none.
	DefaultLanguage string
	// UnwrapDepth caps how many times a JSON-encoded string is unwrapped
	// before classification stops. Values below 1 are treated as 1.
	UnwrapDepth int
}

// Normalizer converts loose content into a validated document tree. It is
// stateless after construction and safe for concurrent use.
type Normalizer struct {
	engine          *blocks.Engine
	defaultLanguage string
	unwrapDepth     int
}

func New(opts Options) *Normalizer {
	language := opts.DefaultLanguage
	if language == "" {
		language = blocks.DefaultLanguage
	}
	depth := opts.UnwrapDepth
	if depth < 1 {
		depth = 1
	}

	return &Normalizer{
		engine:          blocks.NewEngine(language),
		defaultLanguage: language,
		unwrapDepth:     depth,
	}
}

// Normalize converts content into a document tree rooted at a doc node,
// with a blockId stamped on every structural node. It never fails:
// malformed content degrades, it does not error.
func Normalize(content any) *doc.Node {
	return New(Options{}).Normalize(content)
}

func (n *Normalizer) Normalize(content any) *doc.Node {
	root := n.classify(content, 0)
	stamped, err := doc.AssignIDs(root)
	if err != nil {
		// classify never returns nil; keep the totality contract anyway.
		stamped, _ = doc.AssignIDs(doc.NewDoc())
	}
	return stamped
}

// NormalizeBytes treats data as JSON when it parses and as raw text
// otherwise, then normalizes the result. This is the entry point for
// file and stdin content whose encoding is unknown.
func (n *Normalizer) NormalizeBytes(data []byte) *doc.Node {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err == nil {
		return n.Normalize(parsed)
	}
	return n.Normalize(string(data))
}

// Engine exposes the block lowering engine for callers that build
// composite nodes directly, such as accordion edit handlers.
func (n *Normalizer) Engine() *blocks.Engine {
	return n.engine
}

func (n *Normalizer) classify(content any, depth int) *doc.Node {
	switch value := content.(type) {
	case nil:
		return doc.NewDoc()
	case []any:
		if len(value) == 0 {
			return doc.NewDoc()
		}
		if isBlockArray(value) {
			var children []*doc.Node
			for _, element := range value {
				children = append(children, n.engine.LowerValue(element)...)
			}
			return doc.NewDoc(children...)
		}
		return textDoc(stringify(value))
	case map[string]any:
		if isDocShape(value) {
			return n.passThrough(value)
		}
		return textDoc(stringify(value))
	case string:
		return n.classifyString(value, depth)
	default:
		return textDoc(fmt.Sprintf("%v", value))
	}
}

func (n *Normalizer) classifyString(content string, depth int) *doc.Node {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return doc.NewDoc()
	}

	// A string that encodes JSON is unwrapped and reclassified until the
	// depth cap; a string that parses to another string at the cap stays
	// plain text. Invalid JSON falls through to text handling.
	if depth < n.unwrapDepth && looksLikeJSON(trimmed) {
		var parsed any
		if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
			if inner, ok := parsed.(string); ok {
				if depth+1 < n.unwrapDepth {
					return n.classifyString(inner, depth+1)
				}
				return textDoc(inner)
			}
			return n.classify(parsed, depth+1)
		}
	}

	if looksLikeMarkdown(content) {
		return markdown.Convert(content, n.defaultLanguage)
	}

	return textDoc(content)
}

// passThrough revalidates an already-structured document tree.
func (n *Normalizer) passThrough(value map[string]any) *doc.Node {
	raw, err := json.Marshal(value)
	if err != nil {
		return textDoc(fmt.Sprintf("%v", value))
	}

	var root doc.Node
	if err := json.Unmarshal(raw, &root); err != nil {
		return textDoc(string(raw))
	}
	if root.Type == "" {
		root.Type = doc.TypeDoc
	}
	return doc.Sanitize(&root)
}

// isBlockArray reports whether every element is an object carrying a type
// discriminator. Unknown discriminators still classify here; the lowering
// engine degrades them without dropping anything.
func isBlockArray(value []any) bool {
	for _, element := range value {
		object, ok := element.(map[string]any)
		if !ok {
			return false
		}
		if _, ok := object["type"].(string); !ok {
			return false
		}
	}
	return true
}

func isDocShape(value map[string]any) bool {
	if nodeType, ok := value["type"].(string); ok {
		return nodeType == doc.TypeDoc
	}
	if _, ok := value["content"].([]any); ok {
		_, hasText := value["text"]
		return !hasText
	}
	return false
}

func looksLikeJSON(trimmed string) bool {
	return trimmed[0] == '{' || trimmed[0] == '[' || trimmed[0] == '"'
}

// looksLikeMarkdown checks for sentinel characters or multiple lines
// before handing a string to the Markdown converter.
func looksLikeMarkdown(content string) bool {
	return strings.ContainsAny(content, "#*-`") ||
		strings.Contains(content, "](") ||
		strings.Contains(content, "\n")
}

// textDoc wraps plain text as a single paragraph text node.
func textDoc(text string) *doc.Node {
	return doc.NewDoc(doc.New(doc.TypeParagraph, doc.NewText(text)))
}

func stringify(value any) string {
	if raw, err := json.Marshal(value); err == nil {
		return string(raw)
	}
	return fmt.Sprintf("%v", value)
}
