package chunking

import (
	"iter"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/chunkwise/htmltable"
)

// cellTableOverhead is len("<table><tr><td></td></tr></table>"), the HTML
// wrapped around the text of a split cell.
const cellTableOverhead = 33

// TextAndHTML is one split of a table: its text and the <table> fragment
// holding exactly that text.
type TextAndHTML struct {
	Text string
	HTML string
}

// htmlTableSplitter divides a table into sub-tables that each fit the
// window. Splits fall on row boundaries when possible, on cell boundaries when
// a row is too long by itself, and inside a cell's text when a single cell is
// too long.
type htmlTableSplitter struct {
	table  *htmltable.Table
	maxLen int
}

func newHTMLTableSplitter(table *htmltable.Table, maxLen int) *htmlTableSplitter {
	return &htmlTableSplitter{table: table, maxLen: maxLen}
}

// subtables yields sub-tables holding as many whole rows as will fit.
func (s *htmlTableSplitter) subtables() iter.Seq[TextAndHTML] {
	return func(yield func(TextAndHTML) bool) {
		accum := &rowAccumulator{maxLen: s.maxLen}

		for _, row := range s.table.Rows() {
			if !accum.willFit(row) {
				if sub, ok := accum.flush(); ok && !yield(sub) {
					return
				}
			}
			if accum.willFit(row) {
				accum.add(row)
				continue
			}
			if !s.rowSplits(row, yield) {
				return
			}
		}

		if sub, ok := accum.flush(); ok {
			yield(sub)
		}
	}
}

// rowSplits yields single-row sub-tables holding as many whole cells of an
// oversized row as will fit. It returns false when yield asked to stop.
func (s *htmlTableSplitter) rowSplits(row *htmltable.Row, yield func(TextAndHTML) bool) bool {
	accum := &cellAccumulator{maxLen: s.maxLen}

	for _, cell := range row.Cells() {
		if !accum.willFit(cell) {
			if sub, ok := accum.flush(); ok && !yield(sub) {
				return false
			}
		}
		if accum.willFit(cell) {
			accum.add(cell)
			continue
		}
		if !s.cellSplits(cell, yield) {
			return false
		}
	}

	if sub, ok := accum.flush(); ok {
		return yield(sub)
	}
	return true
}

// cellSplits text-splits an oversized cell, wrapping each piece in a
// single-cell table. It returns false when yield asked to stop.
func (s *htmlTableSplitter) cellSplits(cell *htmltable.Cell, yield func(TextAndHTML) bool) bool {
	splitter := newTextSplitter(s.maxLen-cellTableOverhead, 0, []string{"\n", " "})

	remainder := cell.Text()
	for remainder != "" {
		var text string
		text, remainder = splitter.split(remainder)
		sub := TextAndHTML{
			Text: text,
			HTML: "<table><tr><td>" + html.EscapeString(text) + "</td></tr></table>",
		}
		if !yield(sub) {
			return false
		}
	}
	return true
}

// rowAccumulator collects whole rows until the window is full.
type rowAccumulator struct {
	maxLen int
	rows   []*htmltable.Row
}

// add appends row. The caller checks willFit first.
func (a *rowAccumulator) add(row *htmltable.Row) {
	a.rows = append(a.rows, row)
}

func (a *rowAccumulator) willFit(row *htmltable.Row) bool {
	return a.remainingSpace() >= row.TextLen()
}

// remainingSpace counts one separating space after each accumulated row,
// including the last, which would precede the next row.
func (a *rowAccumulator) remainingSpace() int {
	remaining := a.maxLen - len(a.rows)
	for _, r := range a.rows {
		remaining -= r.TextLen()
	}
	return remaining
}

func (a *rowAccumulator) flush() (TextAndHTML, bool) {
	if len(a.rows) == 0 {
		return TextAndHTML{}, false
	}
	var texts []string
	var sb strings.Builder
	sb.WriteString("<table>")
	for _, r := range a.rows {
		texts = append(texts, r.CellTexts()...)
		sb.WriteString(r.HTML())
	}
	sb.WriteString("</table>")
	a.rows = nil
	return TextAndHTML{Text: strings.Join(texts, " "), HTML: sb.String()}, true
}

// cellAccumulator collects whole cells of one row until the window is full.
type cellAccumulator struct {
	maxLen int
	cells  []*htmltable.Cell
}

// add appends cell. The caller checks willFit first.
func (a *cellAccumulator) add(cell *htmltable.Cell) {
	a.cells = append(a.cells, cell)
}

func (a *cellAccumulator) willFit(cell *htmltable.Cell) bool {
	return a.remainingSpace() >= textLen(cell.Text())
}

func (a *cellAccumulator) remainingSpace() int {
	remaining := a.maxLen - len(a.cells)
	for _, c := range a.cells {
		remaining -= textLen(c.Text())
	}
	return remaining
}

func (a *cellAccumulator) flush() (TextAndHTML, bool) {
	if len(a.cells) == 0 {
		return TextAndHTML{}, false
	}
	var texts []string
	var sb strings.Builder
	sb.WriteString("<table><tr>")
	for _, c := range a.cells {
		if c.Text() != "" {
			texts = append(texts, c.Text())
		}
		sb.WriteString(c.HTML())
	}
	sb.WriteString("</tr></table>")
	a.cells = nil
	return TextAndHTML{Text: strings.Join(texts, " "), HTML: sb.String()}, true
}
