package model

import (
	"fmt"

	"github.com/google/uuid"
)

// ElementType identifies the kind of a document element
type ElementType int

const (
	ElementTypeUnknown ElementType = iota
	ElementTypeTitle
	ElementTypeNarrativeText
	ElementTypeText
	ElementTypeListItem
	ElementTypeHeader
	ElementTypeFooter
	ElementTypeFigureCaption
	ElementTypeAddress
	ElementTypeEmailAddress
	ElementTypeFormula
	ElementTypeCodeSnippet
	ElementTypeImage
	ElementTypeTable
	ElementTypePageBreak
	ElementTypeCheckBox
	ElementTypeCompositeElement
	ElementTypeTableChunk
)

var elementTypeNames = map[ElementType]string{
	ElementTypeUnknown:          "UncategorizedText",
	ElementTypeTitle:            "Title",
	ElementTypeNarrativeText:    "NarrativeText",
	ElementTypeText:             "Text",
	ElementTypeListItem:         "ListItem",
	ElementTypeHeader:           "Header",
	ElementTypeFooter:           "Footer",
	ElementTypeFigureCaption:    "FigureCaption",
	ElementTypeAddress:          "Address",
	ElementTypeEmailAddress:     "EmailAddress",
	ElementTypeFormula:          "Formula",
	ElementTypeCodeSnippet:      "CodeSnippet",
	ElementTypeImage:            "Image",
	ElementTypeTable:            "Table",
	ElementTypePageBreak:        "PageBreak",
	ElementTypeCheckBox:         "CheckBox",
	ElementTypeCompositeElement: "CompositeElement",
	ElementTypeTableChunk:       "TableChunk",
}

func (et ElementType) String() string {
	if name, ok := elementTypeNames[et]; ok {
		return name
	}
	return elementTypeNames[ElementTypeUnknown]
}

// ParseElementType returns the ElementType with the given name. Unrecognized
// names map to ElementTypeUnknown.
func ParseElementType(name string) ElementType {
	for et, n := range elementTypeNames {
		if n == name {
			return et
		}
	}
	return ElementTypeUnknown
}

// MarshalText implements encoding.TextMarshaler.
func (et ElementType) MarshalText() ([]byte, error) {
	return []byte(et.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (et *ElementType) UnmarshalText(text []byte) error {
	*et = ParseElementType(string(text))
	return nil
}

// Element is a single typed unit of a partitioned document: a title, a block
// of text, a table, a page break and so on.
type Element struct {
	ID       string      `json:"element_id,omitempty"`
	Type     ElementType `json:"type"`
	Text     string      `json:"text"`
	Metadata Metadata    `json:"metadata"`
}

// NewElement creates an element of the given type with a fresh ID.
func NewElement(t ElementType, text string, metadata Metadata) *Element {
	return &Element{
		ID:       NewElementID(),
		Type:     t,
		Text:     text,
		Metadata: metadata,
	}
}

// NewElementID returns a new random element ID.
func NewElementID() string {
	return uuid.NewString()
}

// IsTable reports whether the element is a whole Table element.
func (e *Element) IsTable() bool {
	return e.Type == ElementTypeTable
}

// Clone returns a deep copy of the element.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	return &Element{
		ID:       e.ID,
		Type:     e.Type,
		Text:     e.Text,
		Metadata: e.Metadata.Clone(),
	}
}

func (e *Element) String() string {
	return fmt.Sprintf("%s(%q)", e.Type, e.Text)
}

// Title creates a Title element.
func Title(text string) *Element { return NewElement(ElementTypeTitle, text, Metadata{}) }

// Text creates a Text element.
func Text(text string) *Element { return NewElement(ElementTypeText, text, Metadata{}) }

// NarrativeText creates a NarrativeText element.
func NarrativeText(text string) *Element {
	return NewElement(ElementTypeNarrativeText, text, Metadata{})
}

// PageBreak creates a PageBreak element, which carries no text.
func PageBreak() *Element { return NewElement(ElementTypePageBreak, "", Metadata{}) }

// Table creates a Table element. html may be empty when the table structure
// was not captured.
func Table(text, html string) *Element {
	return NewElement(ElementTypeTable, text, Metadata{TextAsHTML: html})
}
