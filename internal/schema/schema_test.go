package schema_test

import (
	"strings"
	"testing"

	"github.com/g5becks/blockdoc/internal/schema"
)

func TestCheck_ValidBlocks(t *testing.T) {
	raw := []byte(`[
		{"type": "heading", "level": 2, "text": "Title"},
		{"type": "checklist", "items": [{"text": "done", "checked": true}, "pending"]},
		{"type": "table", "headers": ["A"], "rows": [["1"]]},
		{"type": "divider"}
	]`)

	issues, err := schema.Check(raw)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("issues = %+v, want none", issues)
	}
}

func TestCheck_UnknownBlockType(t *testing.T) {
	issues, err := schema.Check([]byte(`[{"type": "hologram"}]`))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(issues) == 0 {
		t.Fatal("expected an issue for an unknown block type")
	}
}

func TestCheck_MissingType(t *testing.T) {
	issues, err := schema.Check([]byte(`[{"text": "untyped"}]`))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(issues) == 0 {
		t.Fatal("expected an issue for a block without a type")
	}
	for _, issue := range issues {
		if issue.Message == "" {
			t.Errorf("issue %+v has no message", issue)
		}
	}
}

func TestCheck_HeadingLevelOutOfRange(t *testing.T) {
	issues, err := schema.Check([]byte(`[{"type": "heading", "level": 9, "text": "x"}]`))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(issues) == 0 {
		t.Fatal("expected an issue for heading level 9")
	}
	found := false
	for _, issue := range issues {
		if strings.Contains(issue.Location, "level") {
			found = true
		}
	}
	if !found {
		t.Errorf("no issue located at the level field: %+v", issues)
	}
}

func TestCheck_NotAnArray(t *testing.T) {
	issues, err := schema.Check([]byte(`{"type": "paragraph"}`))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(issues) == 0 {
		t.Fatal("expected an issue when the payload is not an array")
	}
}

func TestCheck_InvalidJSON(t *testing.T) {
	if _, err := schema.Check([]byte(`[{`)); err == nil {
		t.Error("Check() should fail on malformed JSON")
	}
}
