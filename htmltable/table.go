// Package htmltable provides a read-only view of an HTML table as rows and
// cells, each able to report its text and its HTML fragment.
package htmltable

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoTable is returned when the HTML text contains no <table> element.
var ErrNoTable = errors.New("no <table> element found")

// Table is a compacted HTML table. Row-group wrappers (thead, tbody, tfoot),
// attributes, comments and insignificant whitespace are removed on parsing so
// the rendered HTML is as short as possible.
type Table struct {
	html string
	rows []*Row
}

// Row is a single <tr> of a Table.
type Row struct {
	html  string
	cells []*Cell
}

// Cell is a single <td> or <th> of a Row.
type Cell struct {
	text string
	html string
}

// FromHTMLText parses the first <table> found in text.
func FromHTMLText(text string) (*Table, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(text), context)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var tableNode *html.Node
	for _, n := range nodes {
		if tableNode = findElement(n, atom.Table); tableNode != nil {
			break
		}
	}
	if tableNode == nil {
		return nil, ErrNoTable
	}

	unwrapRowGroups(tableNode)
	compact(tableNode)

	table := &Table{html: render(tableNode)}
	for c := tableNode.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Tr {
			table.rows = append(table.rows, newRow(c))
		}
	}
	return table, nil
}

// HTML returns the compact HTML of the whole table.
func (t *Table) HTML() string { return t.html }

// Rows returns the rows of the table in document order.
func (t *Table) Rows() []*Row { return t.rows }

// Text returns the non-empty cell texts of the table joined by single spaces.
func (t *Table) Text() string {
	var texts []string
	for _, r := range t.rows {
		texts = append(texts, r.CellTexts()...)
	}
	return strings.Join(texts, " ")
}

func newRow(tr *html.Node) *Row {
	row := &Row{html: render(tr)}
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
			row.cells = append(row.cells, &Cell{
				text: getTextContent(c),
				html: render(c),
			})
		}
	}
	return row
}

// HTML returns the <tr> fragment for this row.
func (r *Row) HTML() string { return r.html }

// Cells returns the cells of the row in document order.
func (r *Row) Cells() []*Cell { return r.cells }

// CellTexts returns the text of each cell, skipping empty cells.
func (r *Row) CellTexts() []string {
	texts := make([]string, 0, len(r.cells))
	for _, c := range r.cells {
		if c.text != "" {
			texts = append(texts, c.text)
		}
	}
	return texts
}

// TextLen is the length in characters of the row's cell texts joined by
// single spaces.
func (r *Row) TextLen() int {
	return utf8.RuneCountInString(strings.Join(r.CellTexts(), " "))
}

// Text returns the whitespace-normalized text of the cell.
func (c *Cell) Text() string { return c.text }

// HTML returns the <td> or <th> fragment for this cell.
func (c *Cell) HTML() string { return c.html }

// unwrapRowGroups replaces thead, tbody and tfoot children of table with their
// own children so every row is a direct child of the table.
func unwrapRowGroups(table *html.Node) {
	for c := table.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode {
			switch c.DataAtom {
			case atom.Thead, atom.Tbody, atom.Tfoot:
				for gc := c.FirstChild; gc != nil; {
					gcNext := gc.NextSibling
					c.RemoveChild(gc)
					table.InsertBefore(gc, c)
					gc = gcNext
				}
				table.RemoveChild(c)
			}
		}
		c = next
	}
}

// compact strips attributes and comments and collapses whitespace in text
// nodes, dropping text nodes left empty.
func compact(n *html.Node) {
	n.Attr = nil
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch c.Type {
		case html.CommentNode:
			n.RemoveChild(c)
		case html.TextNode:
			c.Data = strings.Join(strings.Fields(c.Data), " ")
			if c.Data == "" {
				n.RemoveChild(c)
			}
		case html.ElementNode:
			compact(c)
		}
		c = next
	}
}

// findElement finds the first element with the given tag.
func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, a); result != nil {
			return result
		}
	}
	return nil
}

// getTextContent joins the text nodes below n with single spaces.
func getTextContent(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode && n.Data != "" {
			parts = append(parts, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

func render(n *html.Node) string {
	var sb strings.Builder
	// Rendering into a strings.Builder cannot fail.
	_ = html.Render(&sb, n)
	return sb.String()
}
