// Package schema validates simplified block JSON against the input
// contract and reports collected issues. The normalizer itself never
// rejects content; this is the diagnostics channel for callers that want
// sloppy input surfaced instead of silently degraded.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/samber/oops"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Issue is a single validation failure at a JSON location.
type Issue struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

// blockSchema describes the simplified block array contract.
var blockSchema = map[string]any{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type":    "array",
	"items": map[string]any{
		"type":     "object",
		"required": []string{"type"},
		"properties": map[string]any{
			"type": map[string]any{
				"type": "string",
				"enum": []string{
					"heading", "paragraph", "list", "checklist", "ordered_list",
					"quote", "code", "divider", "table", "image", "accordion", "columns",
				},
			},
			"text":     map[string]any{"type": "string"},
			"level":    map[string]any{"type": "integer", "minimum": 1, "maximum": 6},
			"language": map[string]any{"type": "string"},
			"items": map[string]any{
				"type": "array",
				"items": map[string]any{
					"anyOf": []any{
						map[string]any{"type": "string"},
						map[string]any{
							"type": "object",
							"properties": map[string]any{
								"text":       map[string]any{"type": "string"},
								"checked":    map[string]any{"type": "boolean"},
								"title":      map[string]any{"type": "string"},
								"content":    map[string]any{"$ref": "#/$defs/fragment"},
								"icon":       map[string]any{"type": "string"},
								"iconColor":  map[string]any{"type": "string"},
								"titleColor": map[string]any{"type": "string"},
							},
						},
					},
				},
			},
			"headers": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"rows": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"url": map[string]any{"type": "string"},
			"alt": map[string]any{"type": "string"},
			"columns": map[string]any{
				"type":  "array",
				"items": map[string]any{"$ref": "#/$defs/fragment"},
			},
		},
	},
	"$defs": map[string]any{
		"fragment": map[string]any{
			"anyOf": []any{
				map[string]any{"type": "string"},
				map[string]any{"type": "array"},
			},
		},
	},
}

// Check validates raw block JSON and returns any issues found. A non-nil
// error means the input was not valid JSON at all or the schema failed to
// compile, not that the content failed validation.
func Check(raw []byte) ([]Issue, error) {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, oops.
			Code("INPUT_INVALID").
			Hint("Input must be a JSON array of typed blocks").
			Wrapf(err, "parsing block JSON")
	}

	compiled, err := compile()
	if err != nil {
		return nil, err
	}

	if err := compiled.Validate(payload); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return collectIssues(validationErr), nil
		}
		return []Issue{{Message: err.Error()}}, nil
	}
	return nil, nil
}

func compile() (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(blockSchema)
	if err != nil {
		return nil, oops.Wrapf(err, "encoding block schema")
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("blocks.json", bytes.NewReader(encoded)); err != nil {
		return nil, oops.Code("SCHEMA_INVALID").Wrapf(err, "registering block schema")
	}

	compiled, err := compiler.Compile("blocks.json")
	if err != nil {
		return nil, oops.Code("SCHEMA_INVALID").Wrapf(err, "compiling block schema")
	}
	return compiled, nil
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	if err == nil {
		return nil
	}
	issues := []Issue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
