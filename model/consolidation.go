package model

import "strings"

// ConsolidationStrategy determines how the values of one metadata field,
// gathered from several elements, are merged into a single chunk-level value.
type ConsolidationStrategy int

const (
	// ConsolidationDrop omits the field from the consolidated metadata
	ConsolidationDrop ConsolidationStrategy = iota
	// ConsolidationFirst takes the first populated value
	ConsolidationFirst
	// ConsolidationListConcatenate concatenates lists, keeping order and duplicates
	ConsolidationListConcatenate
	// ConsolidationListUnique concatenates lists and removes duplicates, keeping first-seen order
	ConsolidationListUnique
	// ConsolidationStringConcatenate trims each value and joins them with a single space
	ConsolidationStringConcatenate
)

// String returns a human-readable representation of the strategy
func (cs ConsolidationStrategy) String() string {
	switch cs {
	case ConsolidationDrop:
		return "drop"
	case ConsolidationFirst:
		return "first"
	case ConsolidationListConcatenate:
		return "list_concatenate"
	case ConsolidationListUnique:
		return "list_unique"
	case ConsolidationStringConcatenate:
		return "string_concatenate"
	default:
		return "unknown"
	}
}

// Field describes one Metadata field and the strategy bound to it.
type Field struct {
	// Name is the serialized name of the field
	Name string

	// Strategy is how values of this field are consolidated
	Strategy ConsolidationStrategy

	merge func(dst *Metadata, srcs []*Metadata)
	clear func(m *Metadata)
}

// The strategy of each field is fixed by the constructor that declares it.
var fields = []Field{
	first("attached_to_filename", func(m *Metadata) *string { return &m.AttachedToFilename }),
	drop("category_depth", func(m *Metadata) *int { return &m.CategoryDepth }),
	drop("coordinates", func(m *Metadata) **Coordinates { return &m.Coordinates }),
	drop("detection_class_prob", func(m *Metadata) *float64 { return &m.DetectionClassProb }),
	listConcatenate("emphasized_text_contents", func(m *Metadata) *[]string { return &m.EmphasizedTextContents }),
	listConcatenate("emphasized_text_tags", func(m *Metadata) *[]string { return &m.EmphasizedTextTags }),
	first("file_directory", func(m *Metadata) *string { return &m.FileDirectory }),
	first("filename", func(m *Metadata) *string { return &m.Filename }),
	first("filetype", func(m *Metadata) *string { return &m.Filetype }),
	drop("header_footer_type", func(m *Metadata) *string { return &m.HeaderFooterType }),
	drop("image_path", func(m *Metadata) *string { return &m.ImagePath }),
	drop("is_continuation", func(m *Metadata) *bool { return &m.IsContinuation }),
	stringConcatenate("keywords", func(m *Metadata) *string { return &m.Keywords }),
	listUnique("languages", func(m *Metadata) *[]string { return &m.Languages }),
	first("last_modified", func(m *Metadata) *string { return &m.LastModified }),
	listConcatenate("link_texts", func(m *Metadata) *[]string { return &m.LinkTexts }),
	listConcatenate("link_urls", func(m *Metadata) *[]string { return &m.LinkURLs }),
	drop("orig_elements", func(m *Metadata) *[]*Element { return &m.OrigElements }),
	first("page_name", func(m *Metadata) *string { return &m.PageName }),
	first("page_number", func(m *Metadata) *int { return &m.PageNumber }),
	drop("parent_id", func(m *Metadata) *string { return &m.ParentID }),
	first("section", func(m *Metadata) *string { return &m.Section }),
	first("subject", func(m *Metadata) *string { return &m.Subject }),
	first("text_as_html", func(m *Metadata) *string { return &m.TextAsHTML }),
	first("url", func(m *Metadata) *string { return &m.URL }),
}

// Fields returns the descriptors of every Metadata field in declaration order.
func Fields() []Field {
	return append([]Field(nil), fields...)
}

// Consolidate merges the metadata of several elements, in element order, into
// the metadata of a single chunk by applying each field's strategy.
func Consolidate(sources []*Metadata) Metadata {
	var m Metadata
	for _, f := range fields {
		f.merge(&m, sources)
	}
	return m
}

// ClearDropped zeroes every field whose strategy is ConsolidationDrop.
func (m *Metadata) ClearDropped() {
	for _, f := range fields {
		if f.Strategy == ConsolidationDrop {
			f.clear(m)
		}
	}
}

func first[T comparable](name string, at func(*Metadata) *T) Field {
	return Field{
		Name:     name,
		Strategy: ConsolidationFirst,
		merge: func(dst *Metadata, srcs []*Metadata) {
			var zero T
			for _, src := range srcs {
				if v := *at(src); v != zero {
					*at(dst) = v
					return
				}
			}
		},
		clear: func(m *Metadata) {
			var zero T
			*at(m) = zero
		},
	}
}

func drop[T any](name string, at func(*Metadata) *T) Field {
	return Field{
		Name:     name,
		Strategy: ConsolidationDrop,
		merge:    func(*Metadata, []*Metadata) {},
		clear: func(m *Metadata) {
			var zero T
			*at(m) = zero
		},
	}
}

func listConcatenate(name string, at func(*Metadata) *[]string) Field {
	return Field{
		Name:     name,
		Strategy: ConsolidationListConcatenate,
		merge: func(dst *Metadata, srcs []*Metadata) {
			var out []string
			for _, src := range srcs {
				out = append(out, *at(src)...)
			}
			*at(dst) = out
		},
		clear: func(m *Metadata) { *at(m) = nil },
	}
}

func listUnique(name string, at func(*Metadata) *[]string) Field {
	return Field{
		Name:     name,
		Strategy: ConsolidationListUnique,
		merge: func(dst *Metadata, srcs []*Metadata) {
			var out []string
			seen := make(map[string]struct{})
			for _, src := range srcs {
				for _, v := range *at(src) {
					if _, ok := seen[v]; ok {
						continue
					}
					seen[v] = struct{}{}
					out = append(out, v)
				}
			}
			*at(dst) = out
		},
		clear: func(m *Metadata) { *at(m) = nil },
	}
}

func stringConcatenate(name string, at func(*Metadata) *string) Field {
	return Field{
		Name:     name,
		Strategy: ConsolidationStringConcatenate,
		merge: func(dst *Metadata, srcs []*Metadata) {
			var parts []string
			for _, src := range srcs {
				if v := *at(src); v != "" {
					parts = append(parts, strings.TrimSpace(v))
				}
			}
			*at(dst) = strings.Join(parts, " ")
		},
		clear: func(m *Metadata) { *at(m) = "" },
	}
}
