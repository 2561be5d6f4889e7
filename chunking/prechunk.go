package chunking

import (
	"iter"
	"strings"

	"github.com/tsawler/chunkwise/model"
)

// PreChunk is a sequence of whole elements staged to form one chunk, plus any
// overlap text carried over from the previous pre-chunk. A PreChunk is never
// modified after construction.
type PreChunk struct {
	elements      []*model.Element
	overlapPrefix string
	opts          *Options
	text          string
}

// NewPreChunk creates a pre-chunk from elements. The element slice is copied.
func NewPreChunk(elements []*model.Element, overlapPrefix string, opts *Options) *PreChunk {
	pc := &PreChunk{
		elements:      append([]*model.Element(nil), elements...),
		overlapPrefix: overlapPrefix,
		opts:          opts,
	}
	pc.text = pc.renderText()
	return pc
}

// Elements returns the elements of the pre-chunk.
func (pc *PreChunk) Elements() []*model.Element {
	return append([]*model.Element(nil), pc.elements...)
}

// OverlapPrefix is the text carried over from the previous pre-chunk.
func (pc *PreChunk) OverlapPrefix() string { return pc.overlapPrefix }

// Text is the joined text of the pre-chunk, including the overlap prefix.
// Whitespace in each element's text is collapsed to single spaces and element
// texts are separated by a blank line.
func (pc *PreChunk) Text() string { return pc.text }

// CanCombine reports whether other can be merged into this pre-chunk. This
// pre-chunk must be shorter than the combine threshold and the combined text
// must fit the hard max. Tables are never combined with anything.
func (pc *PreChunk) CanCombine(other *PreChunk) bool {
	if pc.containsTable() || other.containsTable() {
		return false
	}
	if textLen(pc.text) >= pc.opts.combineTextUnderNChars {
		return false
	}
	return textLen(pc.Combine(other).text) <= pc.opts.hardMax
}

// Combine returns a new pre-chunk holding the elements of both. It keeps this
// pre-chunk's overlap prefix; the prefix of other is the tail of this one and
// so is already present at the join.
func (pc *PreChunk) Combine(other *PreChunk) *PreChunk {
	elements := make([]*model.Element, 0, len(pc.elements)+len(other.elements))
	elements = append(elements, pc.elements...)
	elements = append(elements, other.elements...)
	return NewPreChunk(elements, pc.overlapPrefix, pc.opts)
}

// OverlapTail is the trailing text repeated as the prefix of the next
// pre-chunk. It is empty unless inter-chunk overlap is enabled.
func (pc *PreChunk) OverlapTail() string {
	overlap := pc.opts.interChunkOverlap
	if overlap == 0 {
		return ""
	}
	runes := []rune(pc.text)
	return strings.TrimSpace(string(runes[max(0, len(runes)-overlap):]))
}

// Chunks renders the pre-chunk into one or more chunk elements that each fit
// the hard max. A table-only pre-chunk produces Table or TableChunk elements;
// any other produces CompositeElement chunks.
func (pc *PreChunk) Chunks() iter.Seq[*model.Element] {
	if len(pc.elements) == 1 && pc.elements[0].IsTable() {
		return newTableChunker(pc.elements[0], pc.overlapPrefix, pc.opts).chunks()
	}
	return newChunker(pc.elements, pc.text, pc.opts).chunks()
}

func (pc *PreChunk) containsTable() bool {
	for _, e := range pc.elements {
		if e.IsTable() {
			return true
		}
	}
	return false
}

func (pc *PreChunk) renderText() string {
	segments := make([]string, 0, len(pc.elements)+1)
	if pc.overlapPrefix != "" {
		segments = append(segments, pc.overlapPrefix)
	}
	for _, e := range pc.elements {
		if text := normalizeSpace(e.Text); text != "" {
			segments = append(segments, text)
		}
	}
	return strings.Join(segments, pc.opts.TextSeparator())
}
