package model

// Metadata is the fixed set of fields an element may carry. A zero value in
// any field means the field is absent. PageNumber is 1-based; 0 means the
// element has no page number.
type Metadata struct {
	AttachedToFilename     string       `json:"attached_to_filename,omitempty"`
	CategoryDepth          int          `json:"category_depth,omitempty"`
	Coordinates            *Coordinates `json:"coordinates,omitempty"`
	DetectionClassProb     float64      `json:"detection_class_prob,omitempty"`
	EmphasizedTextContents []string     `json:"emphasized_text_contents,omitempty"`
	EmphasizedTextTags     []string     `json:"emphasized_text_tags,omitempty"`
	FileDirectory          string       `json:"file_directory,omitempty"`
	Filename               string       `json:"filename,omitempty"`
	Filetype               string       `json:"filetype,omitempty"`
	HeaderFooterType       string       `json:"header_footer_type,omitempty"`
	ImagePath              string       `json:"image_path,omitempty"`
	IsContinuation         bool         `json:"is_continuation,omitempty"`
	Keywords               string       `json:"keywords,omitempty"`
	Languages              []string     `json:"languages,omitempty"`
	LastModified           string       `json:"last_modified,omitempty"`
	LinkTexts              []string     `json:"link_texts,omitempty"`
	LinkURLs               []string     `json:"link_urls,omitempty"`
	OrigElements           []*Element   `json:"orig_elements,omitempty"`
	PageName               string       `json:"page_name,omitempty"`
	PageNumber             int          `json:"page_number,omitempty"`
	ParentID               string       `json:"parent_id,omitempty"`
	Section                string       `json:"section,omitempty"`
	Subject                string       `json:"subject,omitempty"`
	TextAsHTML             string       `json:"text_as_html,omitempty"`
	URL                    string       `json:"url,omitempty"`
}

// Clone returns a deep copy of the metadata, including any nested
// OrigElements.
func (m Metadata) Clone() Metadata {
	clone := m
	clone.Coordinates = m.Coordinates.Clone()
	clone.EmphasizedTextContents = cloneStrings(m.EmphasizedTextContents)
	clone.EmphasizedTextTags = cloneStrings(m.EmphasizedTextTags)
	clone.Languages = cloneStrings(m.Languages)
	clone.LinkTexts = cloneStrings(m.LinkTexts)
	clone.LinkURLs = cloneStrings(m.LinkURLs)
	if m.OrigElements != nil {
		clone.OrigElements = make([]*Element, len(m.OrigElements))
		for i, e := range m.OrigElements {
			clone.OrigElements[i] = e.Clone()
		}
	}
	return clone
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
