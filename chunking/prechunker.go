package chunking

import (
	"iter"

	"github.com/tsawler/chunkwise/model"
)

// PreChunks groups the element stream into pre-chunks. A new pre-chunk starts
// whenever an element begins a new semantic unit or will not fit in the one
// being built. An element that exceeds the hard max by itself gets a
// pre-chunk of its own and is split when rendered.
func PreChunks(elements iter.Seq[*model.Element], opts *Options) iter.Seq[*PreChunk] {
	return func(yield func(*PreChunk) bool) {
		builder := NewPreChunkBuilder(opts)
		predicates := opts.BoundaryPredicates()

		for e := range elements {
			if isInNewSemanticUnit(predicates, e) || !builder.WillFit(e) {
				if pc, ok := builder.Flush(); ok && !yield(pc) {
					return
				}
			}
			builder.AddElement(e)
		}

		if pc, ok := builder.Flush(); ok {
			yield(pc)
		}
	}
}

// PreChunkBuilder accumulates elements into a pre-chunk while tracking the
// length the rendered text would have.
type PreChunkBuilder struct {
	opts         *Options
	separatorLen int
	elements     []*model.Element

	// overlap is only between pre-chunks so it starts empty
	overlapPrefix string
	// count of non-empty text segments, the overlap prefix included
	textSegments int
	// combined length of the text segments, separators excluded
	textLen int
}

// NewPreChunkBuilder returns an empty builder.
func NewPreChunkBuilder(opts *Options) *PreChunkBuilder {
	return &PreChunkBuilder{
		opts:         opts,
		separatorLen: textLen(opts.TextSeparator()),
	}
}

// AddElement adds e to the pre-chunk being built. The caller checks WillFit
// first.
func (b *PreChunkBuilder) AddElement(e *model.Element) {
	b.elements = append(b.elements, e)
	if text := normalizeSpace(e.Text); text != "" {
		b.textSegments++
		b.textLen += textLen(text)
	}
}

// Flush returns the accumulated pre-chunk and resets the builder. ok is false
// when no element has been added since the last flush.
func (b *PreChunkBuilder) Flush() (pc *PreChunk, ok bool) {
	if len(b.elements) == 0 {
		return nil, false
	}
	pc = NewPreChunk(b.elements, b.overlapPrefix, b.opts)
	b.reset(pc.OverlapTail())

	b.opts.logger.Debug("pre-chunk flushed", "elements", len(pc.elements), "length", textLen(pc.text))
	return pc, true
}

// WillFit reports whether e can join the pre-chunk being built.
//
// An empty pre-chunk accepts any element, even an oversized one. A Table
// only goes into an empty pre-chunk and nothing joins a pre-chunk holding a
// Table. A pre-chunk at or past the soft max is full. Otherwise e fits when
// its text, plus the separator before it, stays within the hard max.
func (b *PreChunkBuilder) WillFit(e *model.Element) bool {
	if len(b.elements) == 0 {
		return true
	}
	if e.IsTable() || b.elements[0].IsTable() {
		return false
	}
	if b.textSegments > 0 && b.textLength() >= b.opts.softMax {
		return false
	}
	return b.remainingSpace() >= textLen(normalizeSpace(e.Text))
}

// remainingSpace is the longest element text that can still be added,
// leaving room for the separator that would precede it.
func (b *PreChunkBuilder) remainingSpace() int {
	return b.opts.hardMax - b.textLen - b.separatorLen*b.textSegments
}

// textLength is the length of the pre-chunk's text if flushed now.
func (b *PreChunkBuilder) textLength() int {
	separators := max(b.textSegments-1, 0)
	return b.textLen + separators*b.separatorLen
}

func (b *PreChunkBuilder) reset(overlapPrefix string) {
	b.overlapPrefix = overlapPrefix
	b.elements = nil
	b.textSegments = 0
	b.textLen = 0
	if overlapPrefix != "" {
		b.textSegments = 1
		b.textLen = textLen(overlapPrefix)
	}
}
