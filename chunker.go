package chunkwise

import (
	"fmt"
	"io"
	"iter"
	"slices"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/chunkwise/chunking"
	"github.com/tsawler/chunkwise/model"
)

// Chunker provides a fluent interface for chunking document elements.
// Each configuration method returns a new Chunker instance, making it
// safe for concurrent use and allowing method chaining.
type Chunker struct {
	// Source (exactly one is used)
	filename string
	reader   io.Reader
	elements []*model.Element
	loaded   bool // true if elements were supplied directly

	// Configuration
	options ChunkOptions
}

// clone creates a shallow copy of the Chunker with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (c *Chunker) clone() *Chunker {
	return &Chunker{
		filename: c.filename,
		reader:   c.reader,
		elements: c.elements,
		loaded:   c.loaded,
		options:  c.options.clone(),
	}
}

// ============================================================================
// Configuration Methods (return new Chunker instance)
// ============================================================================

// ByTitle selects the by-title strategy: every Title element starts a new
// chunk and small sections are combined.
//
// Example:
//
//	chunks, err := chunkwise.Open("elements.json").ByTitle().Chunks()
func (c *Chunker) ByTitle() *Chunker {
	newC := c.clone()
	newC.options.strategy = chunking.StrategyByTitle
	return newC
}

// Strategy selects the boundary strategy explicitly.
func (c *Chunker) Strategy(strategy chunking.Strategy) *Chunker {
	newC := c.clone()
	newC.options.strategy = strategy
	return newC
}

// MaxCharacters sets the hard maximum length of a chunk's text.
func (c *Chunker) MaxCharacters(n int) *Chunker {
	newC := c.clone()
	newC.options.maxCharacters = &n
	return newC
}

// NewAfterNChars sets the soft maximum: once a chunk reaches this length no
// further elements are added to it.
func (c *Chunker) NewAfterNChars(n int) *Chunker {
	newC := c.clone()
	newC.options.newAfterNChars = &n
	return newC
}

// CombineTextUnderNChars sets the length below which a chunk absorbs the
// following one when both fit.
func (c *Chunker) CombineTextUnderNChars(n int) *Chunker {
	newC := c.clone()
	newC.options.combineTextUnderNChars = &n
	return newC
}

// Overlap sets the number of characters repeated between the pieces of a
// split oversized element.
func (c *Chunker) Overlap(n int) *Chunker {
	newC := c.clone()
	newC.options.overlap = n
	return newC
}

// OverlapAll applies the overlap between all chunks, not only between the
// pieces of a split element.
func (c *Chunker) OverlapAll() *Chunker {
	newC := c.clone()
	newC.options.overlapAll = true
	return newC
}

// Separators sets the separators tried, in order, when splitting oversized
// text. The default is a newline followed by a space.
func (c *Chunker) Separators(separators ...string) *Chunker {
	newC := c.clone()
	newC.options.separators = append([]string{}, separators...)
	return newC
}

// ExcludeOrigElements omits the source elements from chunk metadata.
func (c *Chunker) ExcludeOrigElements() *Chunker {
	newC := c.clone()
	newC.options.excludeOrigElements = true
	return newC
}

// SinglePageSections starts a new chunk on every page change. Only the
// by-title strategy respects page boundaries.
func (c *Chunker) SinglePageSections() *Chunker {
	newC := c.clone()
	newC.options.singlePageSections = true
	return newC
}

// NormalizeUnicode applies NFC normalization to element text and
// text_as_html before chunking, so composed and decomposed forms of the
// same character are measured alike.
func (c *Chunker) NormalizeUnicode() *Chunker {
	newC := c.clone()
	newC.options.normalizeUnicode = true
	return newC
}

// Logger sets the logger that receives chunking debug events. A
// *log.Logger from github.com/charmbracelet/log satisfies chunking.Logger.
func (c *Chunker) Logger(logger chunking.Logger) *Chunker {
	newC := c.clone()
	newC.options.logger = logger
	return newC
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Options validates the configuration and returns the resolved chunking
// options.
func (c *Chunker) Options() (*chunking.Options, error) {
	opts, err := chunking.NewOptions(c.options.chunkingOptions()...)
	if err != nil {
		return nil, fmt.Errorf("%s chunking: %w", c.options.strategy, err)
	}
	return opts, nil
}

// Elements returns the input elements after preprocessing. Elements supplied
// with FromElements are returned as copies when preprocessing changes them.
func (c *Chunker) Elements() ([]*model.Element, error) {
	elements, err := c.loadElements()
	if err != nil {
		return nil, err
	}
	if c.options.normalizeUnicode {
		elements = normalizeElements(elements)
	}
	return elements, nil
}

// All returns the chunks as a lazily evaluated sequence. Elements are loaded
// and options validated before All returns.
//
// Example:
//
//	chunks, err := chunkwise.Open("elements.json").All()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for chunk := range chunks {
//	    fmt.Println(chunk.Text)
//	}
func (c *Chunker) All() (iter.Seq[*model.Element], error) {
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}
	elements, err := c.Elements()
	if err != nil {
		return nil, err
	}
	return chunking.Chunk(slices.Values(elements), opts), nil
}

// Chunks chunks the elements and returns the result.
//
// Example:
//
//	chunks, err := chunkwise.Open("elements.json").
//	    ByTitle().
//	    MaxCharacters(1000).
//	    Chunks()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, chunk := range chunks {
//	    fmt.Printf("[%s] %s\n", chunk.Type, chunk.Text)
//	}
func (c *Chunker) Chunks() ([]*model.Element, error) {
	chunks, err := c.All()
	if err != nil {
		return nil, err
	}
	return slices.Collect(chunks), nil
}

// WriteChunks chunks the elements and writes the chunks to w as a JSON
// element array.
func (c *Chunker) WriteChunks(w io.Writer) error {
	chunks, err := c.Chunks()
	if err != nil {
		return err
	}
	return model.WriteElements(w, chunks)
}

// ============================================================================
// Internal helpers
// ============================================================================

// loadElements returns the source elements, reading them if necessary.
func (c *Chunker) loadElements() ([]*model.Element, error) {
	switch {
	case c.loaded:
		return c.elements, nil
	case c.reader != nil:
		elements, err := model.ReadElements(c.reader)
		if err != nil {
			return nil, fmt.Errorf("failed to read elements: %w", err)
		}
		return elements, nil
	case c.filename != "":
		elements, err := model.ReadElementsFile(c.filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", c.filename, err)
		}
		return elements, nil
	default:
		return nil, fmt.Errorf("no elements specified")
	}
}

// normalizeElements returns NFC-normalized copies of the elements whose text
// or text_as_html is not already in NFC form.
func normalizeElements(elements []*model.Element) []*model.Element {
	out := make([]*model.Element, len(elements))
	for i, e := range elements {
		if norm.NFC.IsNormalString(e.Text) && norm.NFC.IsNormalString(e.Metadata.TextAsHTML) {
			out[i] = e
			continue
		}
		normalized := e.Clone()
		normalized.Text = norm.NFC.String(e.Text)
		normalized.Metadata.TextAsHTML = norm.NFC.String(e.Metadata.TextAsHTML)
		out[i] = normalized
	}
	return out
}
