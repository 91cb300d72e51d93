package normalize_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/g5becks/blockdoc/internal/doc"
	"github.com/g5becks/blockdoc/internal/normalize"
)

func TestNormalize_Totality(t *testing.T) {
	tests := []struct {
		name    string
		content any
	}{
		{"nil", nil},
		{"number", 42},
		{"float", 4.2},
		{"bool", true},
		{"empty array", []any{}},
		{"empty object", map[string]any{}},
		{"empty string", ""},
		{"nested junk", []any{map[string]any{"type": "paragraph"}, "loose string"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalize.Normalize(tt.content)
			if got == nil {
				t.Fatal("Normalize() returned nil")
			}
			if got.Type != doc.TypeDoc {
				t.Errorf("root type = %q, want doc", got.Type)
			}
		})
	}
}

func TestNormalize_NilIsEmptyDoc(t *testing.T) {
	got := normalize.Normalize(nil)
	if len(got.Content) != 0 {
		t.Errorf("children = %d, want 0", len(got.Content))
	}
}

func TestNormalize_BlockArray(t *testing.T) {
	input := []any{
		map[string]any{"type": "heading", "level": 1, "text": "Title"},
		map[string]any{"type": "divider"},
	}

	got := normalize.Normalize(input)

	if len(got.Content) != 2 {
		t.Fatalf("children = %d, want 2", len(got.Content))
	}

	heading := got.Content[0]
	if heading.Type != doc.TypeHeading {
		t.Fatalf("first child = %q, want heading", heading.Type)
	}
	if level, _ := heading.Attr(doc.AttrLevel); level != 1 {
		t.Errorf("heading level = %v, want 1", level)
	}
	if len(heading.Content) != 1 || heading.Content[0].Text != "Title" {
		t.Errorf("heading children = %+v, want one text leaf Title", heading.Content)
	}

	divider := got.Content[1]
	if divider.Type != doc.TypeHorizontalRule {
		t.Errorf("second child = %q, want horizontalRule", divider.Type)
	}
	if len(divider.Content) != 0 {
		t.Errorf("divider children = %d, want 0", len(divider.Content))
	}
}

func TestNormalize_EveryStructuralNodeHasID(t *testing.T) {
	got := normalize.Normalize([]any{
		map[string]any{"type": "paragraph", "text": "a"},
		map[string]any{"type": "table", "headers": []any{"H"}, "rows": []any{[]any{"1"}}},
	})

	doc.Walk(got, func(n *doc.Node) {
		if n.Type == doc.TypeText {
			return
		}
		if id, ok := n.Attr(doc.AttrBlockID); !ok || id == "" {
			t.Errorf("node %q missing blockId", n.Type)
		}
	})
}

func TestNormalize_PassThroughKeepsIDs(t *testing.T) {
	first := normalize.Normalize([]any{
		map[string]any{"type": "paragraph", "text": "stable"},
	})

	// Round-trip through JSON the way a caller re-submitting a stored
	// document would.
	raw, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var stored map[string]any
	if err := json.Unmarshal(raw, &stored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	second := normalize.Normalize(stored)

	firstIDs := idsByType(first)
	secondIDs := idsByType(second)
	for nodeType, id := range firstIDs {
		if secondIDs[nodeType] != id {
			t.Errorf("blockId for %q changed: %v -> %v", nodeType, id, secondIDs[nodeType])
		}
	}
}

func idsByType(root *doc.Node) map[string]any {
	ids := map[string]any{}
	doc.Walk(root, func(n *doc.Node) {
		if id, ok := n.Attr(doc.AttrBlockID); ok {
			ids[n.Type] = id
		}
	})
	return ids
}

func TestNormalize_MarkdownString(t *testing.T) {
	got := normalize.Normalize("# Title\n\nSome **bold** text")

	if len(got.Content) < 2 {
		t.Fatalf("children = %d, want heading and paragraph", len(got.Content))
	}
	if got.Content[0].Type != doc.TypeHeading {
		t.Errorf("first child = %q, want heading", got.Content[0].Type)
	}
	if got.Content[1].Type != doc.TypeParagraph {
		t.Errorf("second child = %q, want paragraph", got.Content[1].Type)
	}
	if text := doc.PlainText(got); !strings.Contains(text, "bold") {
		t.Errorf("plain text %q should contain bold", text)
	}
}

func TestNormalize_PlainString(t *testing.T) {
	got := normalize.Normalize("just a sentence without markup.")

	if len(got.Content) != 1 {
		t.Fatalf("children = %d, want 1", len(got.Content))
	}
	paragraph := got.Content[0]
	if paragraph.Type != doc.TypeParagraph {
		t.Fatalf("child = %q, want paragraph", paragraph.Type)
	}
	if len(paragraph.Content) != 1 || paragraph.Content[0].Text != "just a sentence without markup." {
		t.Errorf("paragraph should hold one literal text leaf, got %+v", paragraph.Content)
	}
}

func TestNormalize_JSONStringUnwrapped(t *testing.T) {
	got := normalize.Normalize(`[{"type":"heading","level":2,"text":"Inner"}]`)

	if len(got.Content) != 1 || got.Content[0].Type != doc.TypeHeading {
		t.Fatalf("JSON-encoded block array should unwrap, got %+v", got.Content)
	}
	if level, _ := got.Content[0].Attr(doc.AttrLevel); level != 2 {
		t.Errorf("level = %v, want 2", level)
	}
}

func TestNormalize_DoubleEncodedStringStaysText(t *testing.T) {
	got := normalize.Normalize(`"# not markdown"`)

	if len(got.Content) != 1 || got.Content[0].Type != doc.TypeParagraph {
		t.Fatalf("got %+v, want one paragraph", got.Content)
	}
	if text := doc.PlainText(got); text != "# not markdown" {
		t.Errorf("text = %q, want the unwrapped string as plain text", text)
	}
}

func TestNormalize_InvalidJSONFallsThrough(t *testing.T) {
	got := normalize.Normalize(`{not json at all`)

	if len(got.Content) != 1 || got.Content[0].Type != doc.TypeParagraph {
		t.Fatalf("got %+v, want one paragraph", got.Content)
	}
	if text := doc.PlainText(got); text != `{not json at all` {
		t.Errorf("text = %q, want the original string preserved", text)
	}
}

func TestNormalize_ScalarBecomesText(t *testing.T) {
	got := normalize.Normalize(42)

	if text := doc.PlainText(got); text != "42" {
		t.Errorf("text = %q, want 42", text)
	}
}

func TestNormalize_DocPassThrough(t *testing.T) {
	input := map[string]any{
		"type": "doc",
		"content": []any{
			map[string]any{
				"type":    "paragraph",
				"content": []any{map[string]any{"type": "text", "text": "kept"}},
			},
		},
	}

	got := normalize.Normalize(input)

	if len(got.Content) != 1 || got.Content[0].Type != doc.TypeParagraph {
		t.Fatalf("got %+v, want the paragraph passed through", got.Content)
	}
	if text := doc.PlainText(got); text != "kept" {
		t.Errorf("text = %q, want kept", text)
	}
}

func TestNormalize_UnwrapDepthConfigurable(t *testing.T) {
	wrapped := `"[{\"type\":\"divider\"}]"`

	t.Run("depth 1 stops at plain text", func(t *testing.T) {
		got := normalize.New(normalize.Options{}).Normalize(wrapped)
		if len(got.Content) != 1 || got.Content[0].Type != doc.TypeParagraph {
			t.Errorf("got %+v, want a paragraph of the inner text", got.Content)
		}
		if text := doc.PlainText(got); text != `[{"type":"divider"}]` {
			t.Errorf("text = %q, want the once-unwrapped string", text)
		}
	})

	t.Run("depth 2 unwraps the doubly encoded array", func(t *testing.T) {
		got := normalize.New(normalize.Options{UnwrapDepth: 2}).Normalize(wrapped)
		if len(got.Content) != 1 || got.Content[0].Type != doc.TypeHorizontalRule {
			t.Errorf("got %+v, want the inner divider", got.Content)
		}
	})

	t.Run("depth 3 unwraps a string chain to markdown", func(t *testing.T) {
		chained := `"\"# Deep Title\""`
		got := normalize.New(normalize.Options{UnwrapDepth: 3}).Normalize(chained)
		if len(got.Content) != 1 || got.Content[0].Type != doc.TypeHeading {
			t.Errorf("got %+v, want the inner heading", got.Content)
		}
	})
}

func TestNormalize_BlankStringIsEmptyDoc(t *testing.T) {
	for _, content := range []string{"", "   ", "\n\t"} {
		got := normalize.Normalize(content)
		if got.Type != doc.TypeDoc || len(got.Content) != 0 {
			t.Errorf("Normalize(%q) = %+v, want an empty doc", content, got)
		}
	}
}

func TestNormalizeBytes(t *testing.T) {
	n := normalize.New(normalize.Options{})

	t.Run("json bytes", func(t *testing.T) {
		got := n.NormalizeBytes([]byte(`[{"type":"divider"}]`))
		if len(got.Content) != 1 || got.Content[0].Type != doc.TypeHorizontalRule {
			t.Errorf("got %+v, want one horizontalRule", got.Content)
		}
	})

	t.Run("markdown bytes", func(t *testing.T) {
		got := n.NormalizeBytes([]byte("## Section"))
		if len(got.Content) != 1 || got.Content[0].Type != doc.TypeHeading {
			t.Errorf("got %+v, want one heading", got.Content)
		}
	})
}
