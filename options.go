package chunkwise

import "github.com/tsawler/chunkwise/chunking"

// ChunkOptions holds the configuration collected by a Chunker.
type ChunkOptions struct {
	strategy chunking.Strategy

	// Size limits (nil means the chunking package default)
	maxCharacters          *int
	newAfterNChars         *int
	combineTextUnderNChars *int

	// Overlap
	overlap    int
	overlapAll bool

	// Text splitting
	separators []string

	// Output
	excludeOrigElements bool
	singlePageSections  bool

	// Preprocessing
	normalizeUnicode bool

	logger chunking.Logger
}

// defaultOptions returns the default chunking options.
func defaultOptions() ChunkOptions {
	return ChunkOptions{
		strategy:            chunking.StrategyBasic,
		overlap:             0,
		overlapAll:          false,
		excludeOrigElements: false,
		singlePageSections:  false,
		normalizeUnicode:    false,
	}
}

// clone creates a deep copy of ChunkOptions.
func (o ChunkOptions) clone() ChunkOptions {
	newOpts := o

	// Deep copy separators slice
	if o.separators != nil {
		newOpts.separators = make([]string, len(o.separators))
		copy(newOpts.separators, o.separators)
	}

	return newOpts
}

// chunkingOptions translates the collected configuration into chunking
// package options. Limits left unset are not passed so the chunking
// package's strategy-dependent defaults apply.
func (o ChunkOptions) chunkingOptions() []chunking.Option {
	opts := []chunking.Option{
		chunking.WithStrategy(o.strategy),
		chunking.WithOverlap(o.overlap),
		chunking.WithOverlapAll(o.overlapAll),
		chunking.WithIncludeOrigElements(!o.excludeOrigElements),
		chunking.WithMultipageSections(!o.singlePageSections),
	}
	if o.maxCharacters != nil {
		opts = append(opts, chunking.WithMaxCharacters(*o.maxCharacters))
	}
	if o.newAfterNChars != nil {
		opts = append(opts, chunking.WithNewAfterNChars(*o.newAfterNChars))
	}
	if o.combineTextUnderNChars != nil {
		opts = append(opts, chunking.WithCombineTextUnderNChars(*o.combineTextUnderNChars))
	}
	if o.separators != nil {
		opts = append(opts, chunking.WithTextSplittingSeparators(o.separators...))
	}
	if o.logger != nil {
		opts = append(opts, chunking.WithLogger(o.logger))
	}
	return opts
}
