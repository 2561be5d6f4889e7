package chunking

import (
	"fmt"
	"iter"
	"slices"

	"github.com/tsawler/chunkwise/model"
)

// Chunk runs the whole pipeline over an element stream: elements are grouped
// into pre-chunks, undersized pre-chunks are combined, and each pre-chunk is
// rendered into chunks. The stream is consumed lazily.
func Chunk(elements iter.Seq[*model.Element], opts *Options) iter.Seq[*model.Element] {
	return func(yield func(*model.Element) bool) {
		for pc := range CombinePreChunks(PreChunks(elements, opts), opts) {
			for chunk := range pc.Chunks() {
				if !yield(chunk) {
					return
				}
			}
		}
	}
}

// ChunkElements chunks elements with the basic strategy, filling each chunk
// as far as the size limits allow.
func ChunkElements(elements []*model.Element, opts ...Option) ([]*model.Element, error) {
	return chunkWith(StrategyBasic, elements, opts)
}

// ChunkByTitle chunks elements so that each Title starts a new chunk. With
// WithMultipageSections(false) each page change does too. Small sections are
// combined unless WithCombineTextUnderNChars(0) is given.
func ChunkByTitle(elements []*model.Element, opts ...Option) ([]*model.Element, error) {
	return chunkWith(StrategyByTitle, elements, opts)
}

func chunkWith(strategy Strategy, elements []*model.Element, opts []Option) ([]*model.Element, error) {
	o, err := NewOptions(append([]Option{WithStrategy(strategy)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("%s chunking: %w", strategy, err)
	}
	return slices.Collect(Chunk(slices.Values(elements), o)), nil
}
