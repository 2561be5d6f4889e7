package chunkwise

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/chunkwise/chunking"
	"github.com/tsawler/chunkwise/model"
)

const sampleElements = `[
  {"type": "Title", "element_id": "t1", "text": "Getting Started", "metadata": {"page_number": 1, "filename": "guide.pdf"}},
  {"type": "NarrativeText", "element_id": "n1", "text": "Install the package.", "metadata": {"page_number": 1, "filename": "guide.pdf"}},
  {"type": "Title", "element_id": "t2", "text": "Usage", "metadata": {"page_number": 2, "filename": "guide.pdf"}},
  {"type": "NarrativeText", "element_id": "n2", "text": "Call Chunks.", "metadata": {"page_number": 2, "filename": "guide.pdf"}}
]`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "elements.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleElements), 0o600))
	return path
}

func TestOpen(t *testing.T) {
	chunks, err := Open(writeSample(t)).Chunks()
	require.NoError(t, err)

	require.Len(t, chunks, 1)
	assert.Equal(t, "Getting Started\n\nInstall the package.\n\nUsage\n\nCall Chunks.", chunks[0].Text)
	assert.Equal(t, "guide.pdf", chunks[0].Metadata.Filename)
	assert.Equal(t, 1, chunks[0].Metadata.PageNumber)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.json")).Chunks()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFromReader(t *testing.T) {
	chunks, err := FromReader(strings.NewReader(sampleElements)).
		ByTitle().
		CombineTextUnderNChars(0).
		Chunks()
	require.NoError(t, err)

	assert.Len(t, chunks, 2)
}

func TestNoSource(t *testing.T) {
	_, err := (&Chunker{options: defaultOptions()}).Chunks()
	assert.Error(t, err)
}

func TestChunker_Immutable(t *testing.T) {
	elements := []*model.Element{model.Text(strings.Repeat("a", 30))}
	base := FromElements(elements)
	small := base.MaxCharacters(10)

	baseChunks, err := base.Chunks()
	require.NoError(t, err)
	smallChunks, err := small.Chunks()
	require.NoError(t, err)

	assert.Len(t, baseChunks, 1)
	assert.Len(t, smallChunks, 3)
}

func TestChunker_SeparatorsAreCopied(t *testing.T) {
	seps := []string{"|"}
	c := FromElements(nil).Separators(seps...)
	seps[0] = ""

	_, err := c.Options()
	assert.NoError(t, err)
}

func TestChunker_Options(t *testing.T) {
	opts, err := FromElements(nil).
		ByTitle().
		MaxCharacters(300).
		NewAfterNChars(200).
		Overlap(20).
		OverlapAll().
		ExcludeOrigElements().
		Options()
	require.NoError(t, err)

	assert.Equal(t, chunking.StrategyByTitle, opts.Strategy())
	assert.Equal(t, 300, opts.HardMax())
	assert.Equal(t, 200, opts.SoftMax())
	assert.Equal(t, 300, opts.CombineTextUnderNChars())
	assert.Equal(t, 20, opts.InterChunkOverlap())
	assert.False(t, opts.IncludeOrigElements())
}

func TestChunker_InvalidOptions(t *testing.T) {
	_, err := FromElements([]*model.Element{model.Text("x")}).MaxCharacters(10).Overlap(10).Chunks()
	assert.ErrorIs(t, err, chunking.ErrInvalidConfiguration)
}

func TestChunker_SinglePageSections(t *testing.T) {
	elements := []*model.Element{model.Text("one"), model.Text("two")}
	elements[0].Metadata.PageNumber = 1
	elements[1].Metadata.PageNumber = 2

	chunks, err := FromElements(elements).
		Strategy(chunking.StrategyByTitle).
		SinglePageSections().
		CombineTextUnderNChars(0).
		Chunks()
	require.NoError(t, err)
	assert.Len(t, chunks, 2)

	chunks, err = FromElements(elements).ByTitle().Chunks()
	require.NoError(t, err)
	assert.Len(t, chunks, 1)
}

func TestChunker_NormalizeUnicode(t *testing.T) {
	decomposed := model.Text("cafe\u0301")
	elements := []*model.Element{decomposed}

	normalized, err := FromElements(elements).NormalizeUnicode().Elements()
	require.NoError(t, err)
	assert.Equal(t, "caf\u00e9", normalized[0].Text)
	assert.Equal(t, "cafe\u0301", decomposed.Text, "input must not change")

	chunks, err := FromElements(elements).MaxCharacters(4).NormalizeUnicode().Chunks()
	require.NoError(t, err)
	assert.Len(t, chunks, 1)

	chunks, err = FromElements(elements).MaxCharacters(4).Chunks()
	require.NoError(t, err)
	assert.Len(t, chunks, 2)
}

func TestChunker_All(t *testing.T) {
	seq, err := FromElements([]*model.Element{model.Text(strings.Repeat("b", 25))}).MaxCharacters(10).All()
	require.NoError(t, err)

	var texts []string
	for chunk := range seq {
		texts = append(texts, chunk.Text)
	}
	assert.Equal(t, []string{"bbbbbbbbbb", "bbbbbbbbbb", "bbbbb"}, texts)
}

func TestChunker_WriteChunks(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Open(writeSample(t)).ExcludeOrigElements().WriteChunks(&buf))

	chunks, err := model.ReadElements(&buf)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, model.ElementTypeCompositeElement, chunks[0].Type)
	assert.Nil(t, chunks[0].Metadata.OrigElements)
}

func TestMust(t *testing.T) {
	assert.Equal(t, 3, Must(3, nil))
	assert.Panics(t, func() {
		Must(Open("does-not-exist.json").Chunks())
	})
}
