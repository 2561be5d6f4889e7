package chunking

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/chunkwise/model"
)

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Debug(msg any, _ ...any) {
	l.messages = append(l.messages, fmt.Sprint(msg))
}

func TestChunkByTitle_SectionsAreKeptApart(t *testing.T) {
	elements := []*model.Element{
		model.Title("A"), model.Text(strings.Repeat("x", 10)),
		model.Title("B"), model.Text(strings.Repeat("y", 10)),
	}

	chunks, err := ChunkByTitle(elements, WithMaxCharacters(100), WithCombineTextUnderNChars(0))
	require.NoError(t, err)

	require.Len(t, chunks, 2)
	assert.Equal(t, []string{"A\n\nxxxxxxxxxx", "B\n\nyyyyyyyyyy"}, chunkTexts(chunks))
	for _, c := range chunks {
		assert.Equal(t, model.ElementTypeCompositeElement, c.Type)
		assert.Len(t, c.Metadata.OrigElements, 2)
	}
}

func TestChunkByTitle_CombinesSmallSections(t *testing.T) {
	elements := []*model.Element{
		model.Title("A"), model.Text("x"),
		model.Title("B"), model.Text("y"),
	}

	chunks, err := ChunkByTitle(elements, WithMaxCharacters(100))
	require.NoError(t, err)
	assert.Equal(t, []string{"A\n\nx\n\nB\n\ny"}, chunkTexts(chunks))
}

func TestChunkElements_SplitsOversizedText(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantLen []int
	}{
		{"no overlap", []Option{WithMaxCharacters(500)}, []int{500, 500, 200}},
		{"with overlap", []Option{WithMaxCharacters(500), WithOverlap(10)}, []int{500, 500, 220}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := mustChunk(t, []*model.Element{model.Text(strings.Repeat("a", 1200))}, tt.opts...)

			var lengths []int
			var continuations []bool
			for _, c := range chunks {
				lengths = append(lengths, textLen(c.Text))
				continuations = append(continuations, c.Metadata.IsContinuation)
				assert.Equal(t, model.ElementTypeCompositeElement, c.Type)
			}
			assert.Equal(t, tt.wantLen, lengths)
			assert.Equal(t, []bool{false, true, true}, continuations)
		})
	}
}

func TestChunkElements_ConsolidatesMetadata(t *testing.T) {
	one := model.Text("one")
	one.Metadata = model.Metadata{
		Filename:   "a.pdf",
		PageNumber: 1,
		Languages:  []string{"eng"},
		LinkURLs:   []string{"https://one.example"},
		ParentID:   "p1",
		Keywords:   " alpha ",
	}
	two := model.Text("two")
	two.Metadata = model.Metadata{
		Filename:   "a.pdf",
		PageNumber: 2,
		Languages:  []string{"eng", "fra"},
		LinkURLs:   []string{"https://two.example"},
		Keywords:   "beta",
	}

	chunks := mustChunk(t, []*model.Element{one, two})

	require.Len(t, chunks, 1)
	m := chunks[0].Metadata
	assert.Equal(t, "a.pdf", m.Filename)
	assert.Equal(t, 1, m.PageNumber)
	assert.Equal(t, []string{"eng", "fra"}, m.Languages)
	assert.Equal(t, []string{"https://one.example", "https://two.example"}, m.LinkURLs)
	assert.Equal(t, "alpha beta", m.Keywords)
	assert.Empty(t, m.ParentID)

	require.Len(t, m.OrigElements, 2)
	assert.Equal(t, one.ID, m.OrigElements[0].ID)
	assert.Equal(t, two.ID, m.OrigElements[1].ID)
}

func TestChunkElements_SingleElementMetadataIsConsolidated(t *testing.T) {
	e := model.Text("alone")
	e.Metadata.ParentID = "parent"
	e.Metadata.CategoryDepth = 2
	e.Metadata.Filename = "a.txt"

	chunks := mustChunk(t, []*model.Element{e})

	require.Len(t, chunks, 1)
	assert.Empty(t, chunks[0].Metadata.ParentID)
	assert.Zero(t, chunks[0].Metadata.CategoryDepth)
	assert.Equal(t, "a.txt", chunks[0].Metadata.Filename)
}

func TestChunkElements_OrigElementsAreNotNested(t *testing.T) {
	first := mustChunk(t, []*model.Element{model.Text("one"), model.Text("two")})
	require.Len(t, first, 1)

	second := mustChunk(t, first)

	require.Len(t, second, 1)
	orig := second[0].Metadata.OrigElements
	require.Len(t, orig, 1)
	assert.Nil(t, orig[0].Metadata.OrigElements)
	assert.Len(t, first[0].Metadata.OrigElements, 2, "input chunk must keep its own orig elements")
}

func TestChunkElements_WithoutOrigElements(t *testing.T) {
	chunks := mustChunk(t,
		[]*model.Element{model.Text("one"), model.Table("a", "")},
		WithIncludeOrigElements(false),
	)

	require.Len(t, chunks, 2)
	for _, c := range chunks {
		assert.Nil(t, c.Metadata.OrigElements)
	}
}

func TestChunkElements_DoesNotModifyInput(t *testing.T) {
	elements := []*model.Element{
		model.Title("Heading"),
		model.Text(strings.Repeat("lorem ipsum ", 60)),
		model.Table(threeRowText, threeRowTable),
	}
	elements[1].Metadata.Languages = []string{"eng"}
	elements[1].Metadata.ParentID = "p"

	before := make([]*model.Element, len(elements))
	for i, e := range elements {
		before[i] = e.Clone()
	}

	_ = mustChunk(t, elements, WithMaxCharacters(50), WithOverlap(5), WithOverlapAll(true))

	assert.Equal(t, before, elements)
}

func TestChunkElements_EmptyInput(t *testing.T) {
	chunks, err := ChunkElements(nil)
	require.NoError(t, err)
	assert.Empty(t, chunks)

	chunks, err = ChunkElements([]*model.Element{model.PageBreak(), model.Text("   ")})
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestChunkElements_InvalidOptions(t *testing.T) {
	_, err := ChunkElements([]*model.Element{model.Text("x")}, WithMaxCharacters(0))
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), "basic chunking")

	_, err = ChunkByTitle([]*model.Element{model.Text("x")}, WithOverlap(600))
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), "by_title chunking")
}

func TestChunkElements_ChunkIDsAreUnique(t *testing.T) {
	chunks := mustChunk(t, []*model.Element{model.Text(strings.Repeat("word ", 200))}, WithMaxCharacters(100))

	seen := make(map[string]bool)
	for _, c := range chunks {
		require.NotEmpty(t, c.ID)
		assert.False(t, seen[c.ID], "duplicate chunk id %s", c.ID)
		seen[c.ID] = true
	}
}

func TestChunkElements_Logs(t *testing.T) {
	logger := &recordingLogger{}

	_ = mustChunk(t, []*model.Element{model.Text(strings.Repeat("a", 30))}, WithMaxCharacters(10), WithLogger(logger))

	assert.Contains(t, logger.messages, "pre-chunk flushed")
	assert.Contains(t, logger.messages, "splitting oversized pre-chunk")
}

func TestChunk_StopsEarly(t *testing.T) {
	o := mustOptions(t, WithMaxCharacters(10))
	elements := []*model.Element{model.Text(strings.Repeat("a", 100))}

	var got []*model.Element
	for c := range Chunk(slices.Values(elements), o) {
		got = append(got, c)
		if len(got) == 2 {
			break
		}
	}
	assert.Len(t, got, 2)
}

func TestChunk_NeverExceedsHardMax(t *testing.T) {
	elements := []*model.Element{
		onPage(model.Title("Quarterly Report"), 1),
		onPage(model.NarrativeText(strings.Repeat("The quick brown fox jumps over the lazy dog. ", 12)), 1),
		onPage(model.Text(strings.Repeat("x", 170)), 1),
		onPage(model.Table(threeRowText, threeRowTable), 2),
		onPage(model.Title("Appendix"), 2),
		onPage(model.Text("line one\nline two\nline three\n"+strings.Repeat("tail ", 30)), 3),
		onPage(model.Table(strings.Repeat("cell ", 40), ""), 3),
		model.PageBreak(),
		onPage(model.Text("ünïcödé "+strings.Repeat("é", 90)), 4),
	}

	for _, maxLen := range []int{20, 50, 80, 500} {
		for _, overlap := range []int{0, 5} {
			for _, overlapAll := range []bool{false, true} {
				for _, strategy := range []Strategy{StrategyBasic, StrategyByTitle} {
					name := fmt.Sprintf("max=%d/overlap=%d/all=%t/%s", maxLen, overlap, overlapAll, strategy)
					t.Run(name, func(t *testing.T) {
						o := mustOptions(t,
							WithStrategy(strategy),
							WithMaxCharacters(maxLen),
							WithOverlap(overlap),
							WithOverlapAll(overlapAll),
							WithMultipageSections(false),
						)
						chunks := slices.Collect(Chunk(slices.Values(elements), o))
						require.NotEmpty(t, chunks)
						for _, c := range chunks {
							assert.LessOrEqual(t, textLen(c.Text), maxLen, "chunk %q", c.Text)
							assert.NotEmpty(t, c.Text)
						}
					})
				}
			}
		}
	}
}
