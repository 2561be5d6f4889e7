package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadElements decodes a JSON array of elements.
func ReadElements(r io.Reader) ([]*Element, error) {
	var elements []*Element
	if err := json.NewDecoder(r).Decode(&elements); err != nil {
		return nil, fmt.Errorf("decoding elements: %w", err)
	}
	for i, e := range elements {
		if e == nil {
			return nil, fmt.Errorf("element %d is null", i)
		}
	}
	return elements, nil
}

// ReadElementsFile decodes the JSON element file at path.
func ReadElementsFile(path string) ([]*Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return ReadElements(f)
}

// WriteElements encodes elements as an indented JSON array.
func WriteElements(w io.Writer, elements []*Element) error {
	if elements == nil {
		elements = []*Element{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(elements); err != nil {
		return fmt.Errorf("encoding elements: %w", err)
	}
	return nil
}
