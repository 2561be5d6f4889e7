package chunking

import (
	"iter"

	"github.com/tsawler/chunkwise/model"
)

// chunker forms CompositeElement chunks from any pre-chunk other than a
// table-only one.
type chunker struct {
	elements []*model.Element
	text     string
	opts     *Options
}

func newChunker(elements []*model.Element, text string, opts *Options) *chunker {
	return &chunker{elements: elements, text: text, opts: opts}
}

// chunks yields one chunk when the text fits, otherwise the pieces of the
// split text. The second and later pieces are marked as continuations. A
// pre-chunk with no text, such as a lone PageBreak, yields nothing.
func (c *chunker) chunks() iter.Seq[*model.Element] {
	return func(yield func(*model.Element) bool) {
		if c.text == "" {
			return
		}

		metadata := c.consolidatedMetadata()
		text, remainder := c.opts.Split(c.text)
		if remainder != "" {
			c.opts.logger.Debug("splitting oversized pre-chunk", "length", textLen(c.text), "max", c.opts.hardMax)
		}
		if !yield(model.NewElement(model.ElementTypeCompositeElement, text, metadata)) {
			return
		}

		for remainder != "" {
			text, remainder = c.opts.Split(remainder)
			continuation := metadata.Clone()
			continuation.IsContinuation = true
			if !yield(model.NewElement(model.ElementTypeCompositeElement, text, continuation)) {
				return
			}
		}
	}
}

// consolidatedMetadata merges the metadata of the pre-chunk's elements field
// by field. The same rules apply to a single-element pre-chunk.
func (c *chunker) consolidatedMetadata() model.Metadata {
	sources := make([]*model.Metadata, len(c.elements))
	for i, e := range c.elements {
		sources[i] = &e.Metadata
	}
	metadata := model.Consolidate(sources)
	if c.opts.includeOrigElements {
		metadata.OrigElements = origElements(c.elements)
	}
	return metadata
}

// origElements copies elements for use as Metadata.OrigElements, clearing
// their own OrigElements so chunking chunks does not nest without bound.
func origElements(elements []*model.Element) []*model.Element {
	orig := make([]*model.Element, len(elements))
	for i, e := range elements {
		orig[i] = origElementCopy(e)
	}
	return orig
}

func origElementCopy(e *model.Element) *model.Element {
	stripped := *e
	stripped.Metadata.OrigElements = nil
	return stripped.Clone()
}
