// Package chunking partitions a sequence of document elements into chunks
// whose text never exceeds a configured length, keeping sections, pages and
// table structure intact where it can.
//
// # Pipeline
//
// Chunking runs in three lazy stages over an element stream:
//
//  1. [PreChunks] groups whole elements into pre-chunks, starting a new one
//     at each semantic boundary or when the next element will not fit.
//  2. [CombinePreChunks] merges adjacent undersized pre-chunks.
//  3. [PreChunk.Chunks] renders each pre-chunk, splitting oversized text and
//     tables.
//
// [Chunk] composes the three stages; [ChunkElements] and [ChunkByTitle] are
// the slice-based entry points:
//
//	chunks, err := chunking.ChunkByTitle(elements,
//	    chunking.WithMaxCharacters(1000),
//	    chunking.WithNewAfterNChars(800),
//	    chunking.WithOverlap(50),
//	)
//
// # Size Limits
//
//   - Hard max - no chunk text is longer than this (WithMaxCharacters)
//   - Soft max - a pre-chunk this long accepts no more elements (WithNewAfterNChars)
//   - Combine threshold - pre-chunks shorter than this absorb the next one
//     when both fit (WithCombineTextUnderNChars)
//
// Lengths are counted in characters (runes).
//
// # Output
//
// Chunks are [model.Element] values of type CompositeElement, Table or
// TableChunk. Their metadata is consolidated from the source elements and,
// unless disabled, lists those elements in OrigElements. The second and later
// pieces of a split element or table have IsContinuation set.
//
// Chunking never modifies the elements passed to it.
package chunking
