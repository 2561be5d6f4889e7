// Package chunkwise provides a fluent API for splitting partitioned document
// elements into size-bounded chunks.
//
// Basic usage:
//
//	chunks, err := chunkwise.Open("elements.json").Chunks()
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	chunks, err := chunkwise.FromElements(elements).
//	    ByTitle().
//	    MaxCharacters(1000).
//	    NewAfterNChars(800).
//	    Overlap(50).
//	    Chunks()
//
// For streaming or custom boundary rules, the lower-level chunking package is
// also available.
package chunkwise

import (
	"io"

	"github.com/tsawler/chunkwise/model"
)

// Open returns a Chunker that reads its elements from the JSON element file
// at filename. The file is read when a terminal operation such as Chunks is
// called.
//
// Example:
//
//	chunks, err := chunkwise.Open("elements.json").Chunks()
func Open(filename string) *Chunker {
	return &Chunker{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader returns a Chunker that decodes its elements from r. The reader
// is consumed by the first terminal operation; the caller remains
// responsible for closing it.
//
// Example:
//
//	chunks, err := chunkwise.FromReader(os.Stdin).ByTitle().Chunks()
func FromReader(r io.Reader) *Chunker {
	return &Chunker{
		reader:  r,
		options: defaultOptions(),
	}
}

// FromElements returns a Chunker over elements that are already in memory.
// The elements are not modified.
//
// Example:
//
//	chunks, err := chunkwise.FromElements(elements).MaxCharacters(200).Chunks()
func FromElements(elements []*model.Element) *Chunker {
	return &Chunker{
		elements: append([]*model.Element(nil), elements...),
		loaded:   true,
		options:  defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	chunks := chunkwise.Must(chunkwise.Open("elements.json").Chunks())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
