// Package blocks lowers the simplified "block JSON" input contract into
// document nodes. The input is a flat sequence of typed blocks written by
// tools or people, so decoding here is deliberately forgiving.
package blocks

import "encoding/json"

// Input block type discriminators.
const (
	TypeHeading     = "heading"
	TypeParagraph   = "paragraph"
	TypeList        = "list"
	TypeChecklist   = "checklist"
	TypeOrderedList = "ordered_list"
	TypeQuote       = "quote"
	TypeCode        = "code"
	TypeDivider     = "divider"
	TypeTable       = "table"
	TypeImage       = "image"
	TypeAccordion   = "accordion"
	TypeColumns     = "columns"
)

// KnownType reports whether blockType is part of the input contract.
func KnownType(blockType string) bool {
	switch blockType {
	case TypeHeading, TypeParagraph, TypeList, TypeChecklist, TypeOrderedList,
		TypeQuote, TypeCode, TypeDivider, TypeTable, TypeImage,
		TypeAccordion, TypeColumns:
		return true
	}
	return false
}

// Block is one element of the simplified input format. Fields are
// per-type: Level for headings, Items for lists/checklists/accordions,
// Headers and Rows for tables, Columns for column sets.
type Block struct {
	Type     string     `json:"type"`
	Text     string     `json:"text,omitempty"`
	Level    int        `json:"level,omitempty"`
	Language string     `json:"language,omitempty"`
	Items    []Item     `json:"items,omitempty"`
	Headers  []string   `json:"headers,omitempty"`
	Rows     [][]string `json:"rows,omitempty"`
	URL      string     `json:"url,omitempty"`
	Alt      string     `json:"alt,omitempty"`
	Columns  []Fragment `json:"columns,omitempty"`

	// raw keeps the original JSON for stringified fallbacks.
	raw json.RawMessage
}

// Item is one entry of a block's items list. Plain lists use the string
// form, checklists add Checked, accordions use Title/Content plus the
// optional presentation fields.
type Item struct {
	Text       string   `json:"text,omitempty"`
	Checked    *bool    `json:"checked,omitempty"`
	Title      string   `json:"title,omitempty"`
	Content    Fragment `json:"content,omitzero"`
	Icon       string   `json:"icon,omitempty"`
	IconColor  string   `json:"iconColor,omitempty"`
	TitleColor string   `json:"titleColor,omitempty"`
}

func (it *Item) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*it = Item{Text: text}
		return nil
	}

	type plain Item
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*it = Item(decoded)
	return nil
}

func (it Item) MarshalJSON() ([]byte, error) {
	if it.Checked == nil && it.Title == "" && !it.Content.IsSet() &&
		it.Icon == "" && it.IconColor == "" && it.TitleColor == "" {
		return json.Marshal(it.Text)
	}
	type plain Item
	return json.Marshal(plain(it))
}

// Fragment is nested block content: either a raw text run or a sequence of
// blocks. A raw text fragment lowers to a single paragraph, a block
// fragment lowers recursively.
type Fragment struct {
	Text   string
	Blocks []Block
	isText bool
}

// TextFragment builds a raw text fragment.
func TextFragment(text string) Fragment {
	return Fragment{Text: text, isText: true}
}

// BlockFragment builds a nested block fragment.
func BlockFragment(nested ...Block) Fragment {
	return Fragment{Blocks: nested}
}

// IsBlocks reports whether the fragment holds nested blocks.
func (f Fragment) IsBlocks() bool {
	return !f.isText && f.Blocks != nil
}

// IsSet reports whether the fragment holds anything at all.
func (f Fragment) IsSet() bool {
	return f.isText || f.Blocks != nil
}

// IsZero implements the json omitzero contract.
func (f Fragment) IsZero() bool {
	return !f.IsSet()
}

func (f *Fragment) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*f = TextFragment(text)
		return nil
	}

	var nested []Block
	if err := json.Unmarshal(data, &nested); err == nil {
		*f = BlockFragment(nested...)
		return nil
	}

	// Anything else is kept verbatim as text rather than rejected.
	*f = TextFragment(string(data))
	return nil
}

func (f Fragment) MarshalJSON() ([]byte, error) {
	if f.IsBlocks() {
		return json.Marshal(f.Blocks)
	}
	return json.Marshal(f.Text)
}
