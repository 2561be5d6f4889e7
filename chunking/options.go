package chunking

import (
	"errors"
	"fmt"
)

// DefaultMaxCharacters is the hard-max chunk length used when no
// max-characters option is given.
const DefaultMaxCharacters = 500

// textSeparator is inserted between element texts when they are joined into
// a single chunk.
const textSeparator = "\n\n"

// ErrInvalidConfiguration is returned by NewOptions for an option set that
// cannot produce valid chunks.
var ErrInvalidConfiguration = errors.New("invalid chunking configuration")

// Strategy selects which semantic boundaries are respected while chunking
type Strategy int

const (
	// StrategyBasic fills each chunk as far as size limits allow, ignoring
	// section and page boundaries
	StrategyBasic Strategy = iota
	// StrategyByTitle starts a new chunk at every Title element and, unless
	// multipage sections are allowed, at every page change
	StrategyByTitle
)

// String returns a human-readable representation of the strategy
func (s Strategy) String() string {
	switch s {
	case StrategyBasic:
		return "basic"
	case StrategyByTitle:
		return "by_title"
	default:
		return "unknown"
	}
}

// ParseStrategy returns the Strategy with the given name.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "basic", "":
		return StrategyBasic, nil
	case "by_title", "by-title":
		return StrategyByTitle, nil
	default:
		return StrategyBasic, fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfiguration, name)
	}
}

// settings holds the raw option values. A nil pointer means the option was
// not given and its default applies.
type settings struct {
	maxCharacters          *int
	newAfterNChars         *int
	combineTextUnderNChars *int
	overlap                int
	overlapAll             bool
	includeOrigElements    *bool
	separators             []string
	strategy               Strategy
	multipageSections      *bool
	boundaryPredicates     func() []BoundaryPredicate
	logger                 Logger
}

// Option configures a chunking run.
type Option func(*settings)

// WithMaxCharacters sets the hard maximum length of any chunk's text.
func WithMaxCharacters(n int) Option {
	return func(s *settings) { s.maxCharacters = &n }
}

// WithNewAfterNChars sets the soft maximum: a pre-chunk this long or longer
// accepts no further elements. 0 puts every element in a chunk of its own.
func WithNewAfterNChars(n int) Option {
	return func(s *settings) { s.newAfterNChars = &n }
}

// WithCombineTextUnderNChars sets the length below which a pre-chunk is
// combined with the one that follows it, when both fit the window.
func WithCombineTextUnderNChars(n int) Option {
	return func(s *settings) { s.combineTextUnderNChars = &n }
}

// WithOverlap sets the number of characters repeated from the end of one
// text-split chunk at the start of the next.
func WithOverlap(n int) Option {
	return func(s *settings) { s.overlap = n }
}

// WithOverlapAll applies overlap between all chunks, not only between the
// pieces of a split oversized element.
func WithOverlapAll(on bool) Option {
	return func(s *settings) { s.overlapAll = on }
}

// WithIncludeOrigElements controls whether chunks record the elements they
// were formed from in Metadata.OrigElements.
func WithIncludeOrigElements(on bool) Option {
	return func(s *settings) { s.includeOrigElements = &on }
}

// WithTextSplittingSeparators sets the separators tried, in order, when
// splitting oversized text. The empty string is reserved as the implicit
// last resort and may not be given.
func WithTextSplittingSeparators(separators ...string) Option {
	return func(s *settings) { s.separators = append([]string{}, separators...) }
}

// WithStrategy selects the boundary strategy.
func WithStrategy(strategy Strategy) Option {
	return func(s *settings) { s.strategy = strategy }
}

// WithMultipageSections controls whether a by-title chunk may span pages.
// The default is true.
func WithMultipageSections(on bool) Option {
	return func(s *settings) { s.multipageSections = &on }
}

// WithBoundaryPredicates replaces the strategy's boundary predicates. newPredicates
// is called once per chunking run so stateful predicates start fresh.
func WithBoundaryPredicates(newPredicates func() []BoundaryPredicate) Option {
	return func(s *settings) { s.boundaryPredicates = newPredicates }
}

// WithLogger sets the logger that receives debug events.
func WithLogger(logger Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// Options is a validated, immutable chunking configuration.
type Options struct {
	hardMax                int
	softMax                int
	combineTextUnderNChars int
	overlap                int
	interChunkOverlap      int
	includeOrigElements    bool
	separators             []string
	strategy               Strategy
	multipageSections      bool
	boundaryPredicates     func() []BoundaryPredicate
	logger                 Logger
	splitter               *textSplitter
}

// NewOptions resolves defaults and validates the option set.
func NewOptions(opts ...Option) (*Options, error) {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}

	o := &Options{
		hardMax:            DefaultMaxCharacters,
		overlap:            s.overlap,
		strategy:           s.strategy,
		boundaryPredicates: s.boundaryPredicates,
		logger:             s.logger,
	}
	if s.maxCharacters != nil {
		o.hardMax = *s.maxCharacters
	}
	if o.hardMax <= 0 {
		return nil, fmt.Errorf("%w: 'max_characters' argument must be > 0, got %d", ErrInvalidConfiguration, o.hardMax)
	}

	o.softMax = o.hardMax
	if s.newAfterNChars != nil {
		if *s.newAfterNChars < 0 {
			return nil, fmt.Errorf("%w: 'new_after_n_chars' argument must be >= 0, got %d", ErrInvalidConfiguration, *s.newAfterNChars)
		}
		o.softMax = min(*s.newAfterNChars, o.hardMax)
	}

	if o.overlap < 0 {
		return nil, fmt.Errorf("%w: 'overlap' argument must be >= 0, got %d", ErrInvalidConfiguration, o.overlap)
	}
	if o.overlap >= o.hardMax {
		return nil, fmt.Errorf("%w: 'overlap' argument must be less than 'max_characters', got %d >= %d", ErrInvalidConfiguration, o.overlap, o.hardMax)
	}
	if s.overlapAll {
		o.interChunkOverlap = o.overlap
	}

	if s.combineTextUnderNChars != nil {
		o.combineTextUnderNChars = *s.combineTextUnderNChars
	} else if o.strategy == StrategyByTitle {
		o.combineTextUnderNChars = o.hardMax
	}
	if o.combineTextUnderNChars < 0 {
		return nil, fmt.Errorf("%w: 'combine_text_under_n_chars' argument must be >= 0, got %d", ErrInvalidConfiguration, o.combineTextUnderNChars)
	}

	o.includeOrigElements = s.includeOrigElements == nil || *s.includeOrigElements
	o.multipageSections = s.multipageSections == nil || *s.multipageSections

	o.separators = []string{"\n", " "}
	if s.separators != nil {
		o.separators = s.separators
	}
	for _, sep := range o.separators {
		if sep == "" {
			return nil, fmt.Errorf("%w: 'text_splitting_separators' must not contain the empty string", ErrInvalidConfiguration)
		}
	}

	if o.logger == nil {
		o.logger = nopLogger{}
	}
	o.splitter = newTextSplitter(o.hardMax, o.overlap, o.separators)
	return o, nil
}

// HardMax is the maximum length of any chunk's text.
func (o *Options) HardMax() int { return o.hardMax }

// SoftMax is the length at which a pre-chunk is considered full.
func (o *Options) SoftMax() int { return o.softMax }

// CombineTextUnderNChars is the length below which a pre-chunk may absorb
// the next one.
func (o *Options) CombineTextUnderNChars() int { return o.combineTextUnderNChars }

// Overlap is the overlap length applied between text-split chunks.
func (o *Options) Overlap() int { return o.overlap }

// InterChunkOverlap is the overlap length applied between chunks formed from
// whole elements; 0 unless overlap-all is set.
func (o *Options) InterChunkOverlap() int { return o.interChunkOverlap }

// IncludeOrigElements reports whether chunks carry their source elements.
func (o *Options) IncludeOrigElements() bool { return o.includeOrigElements }

// TextSeparator is the blank-line string placed between element texts.
func (o *Options) TextSeparator() string { return textSeparator }

// TextSplittingSeparators returns the separators in order of preference.
func (o *Options) TextSplittingSeparators() []string {
	return append([]string(nil), o.separators...)
}

// Strategy returns the boundary strategy.
func (o *Options) Strategy() Strategy { return o.strategy }

// BoundaryPredicates returns a fresh set of semantic-boundary detectors. The
// result holds per-run state and must be used for one element stream only.
func (o *Options) BoundaryPredicates() []BoundaryPredicate {
	if o.boundaryPredicates != nil {
		return o.boundaryPredicates()
	}
	if o.strategy != StrategyByTitle {
		return nil
	}
	predicates := []BoundaryPredicate{IsTitle}
	if !o.multipageSections {
		predicates = append(predicates, NewPageBoundary())
	}
	return predicates
}

// Split divides s into a fragment no longer than HardMax and the remainder.
// A remainder of "" means s was consumed.
func (o *Options) Split(s string) (fragment, remainder string) {
	return o.splitter.split(s)
}
