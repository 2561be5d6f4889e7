package chunking

import (
	"iter"
	"strings"

	"github.com/tsawler/chunkwise/htmltable"
	"github.com/tsawler/chunkwise/model"
)

// minHTMLSplitWindow is the smallest hard max for which table splits carry
// text_as_html. Below it the per-chunk HTML overhead would produce a very
// large number of very small chunks, so splitting falls back to text only.
const minHTMLSplitWindow = 50

// tableChunker forms Table or TableChunk elements from a table-only
// pre-chunk.
type tableChunker struct {
	table         *model.Element
	overlapPrefix string
	opts          *Options
}

func newTableChunker(table *model.Element, overlapPrefix string, opts *Options) *tableChunker {
	return &tableChunker{table: table, overlapPrefix: overlapPrefix, opts: opts}
}

// chunks yields the whole table when both its text and its compact HTML fit
// the hard max; otherwise TableChunk splits. A table with no text yields
// nothing.
func (tc *tableChunker) chunks() iter.Seq[*model.Element] {
	return func(yield func(*model.Element) bool) {
		if normalizeSpace(tc.table.Text) == "" {
			return
		}

		text := tc.textWithOverlap()
		htmlTable := tc.htmlTable()
		var compactHTML string
		if htmlTable != nil {
			compactHTML = htmlTable.HTML()
		}

		maxLen := tc.opts.hardMax
		if textLen(text) <= maxLen && textLen(compactHTML) <= maxLen {
			metadata := tc.metadata()
			metadata.TextAsHTML = compactHTML
			yield(model.NewElement(model.ElementTypeTable, text, metadata))
			return
		}

		if htmlTable == nil || maxLen < minHTMLSplitWindow {
			tc.opts.logger.Debug("splitting table on text only", "length", textLen(text), "has_html", htmlTable != nil)
			tc.textOnlyChunks(text, yield)
			return
		}

		tc.opts.logger.Debug("splitting table on rows", "rows", len(htmlTable.Rows()), "html_length", textLen(compactHTML))
		tc.textAndHTMLChunks(htmlTable, yield)
	}
}

// textAndHTMLChunks yields splits whose text_as_html is a parseable <table>
// holding exactly the text of the chunk.
func (tc *tableChunker) textAndHTMLChunks(table *htmltable.Table, yield func(*model.Element) bool) {
	isContinuation := false
	for sub := range newHTMLTableSplitter(table, tc.opts.hardMax).subtables() {
		metadata := tc.metadata()
		metadata.TextAsHTML = sub.HTML
		metadata.IsContinuation = isContinuation
		isContinuation = true

		if !yield(model.NewElement(model.ElementTypeTableChunk, sub.Text, metadata)) {
			return
		}
	}
}

// textOnlyChunks splits a table like ordinary text. The chunks carry no
// text_as_html.
func (tc *tableChunker) textOnlyChunks(text string, yield func(*model.Element) bool) {
	remainder := text
	isContinuation := false
	for remainder != "" {
		var chunkText string
		chunkText, remainder = tc.opts.Split(remainder)
		metadata := tc.metadata()
		metadata.TextAsHTML = ""
		metadata.IsContinuation = isContinuation
		isContinuation = true

		if !yield(model.NewElement(model.ElementTypeTableChunk, chunkText, metadata)) {
			return
		}
	}
}

// htmlTable parses the table's text_as_html. It returns nil when there is
// none or when it holds no parseable table.
func (tc *tableChunker) htmlTable() *htmltable.Table {
	textAsHTML := strings.TrimSpace(tc.table.Metadata.TextAsHTML)
	if textAsHTML == "" {
		return nil
	}
	table, err := htmltable.FromHTMLText(textAsHTML)
	if err != nil {
		tc.opts.logger.Debug("ignoring unusable text_as_html", "err", err)
		return nil
	}
	return table
}

// metadata returns a fresh copy of the table's metadata for one chunk, with
// dropped fields cleared. Each chunk gets its own copy because fields such as
// text_as_html differ between them.
func (tc *tableChunker) metadata() model.Metadata {
	metadata := tc.table.Metadata.Clone()
	metadata.ClearDropped()
	if tc.opts.includeOrigElements {
		metadata.OrigElements = []*model.Element{origElementCopy(tc.table)}
	}
	return metadata
}

// textWithOverlap is the table text with the overlap prefix, if any, on a
// line of its own before it.
func (tc *tableChunker) textWithOverlap() string {
	tableText := strings.TrimSpace(tc.table.Text)
	if tc.overlapPrefix == "" {
		return tableText
	}
	return tc.overlapPrefix + "\n" + tableText
}
