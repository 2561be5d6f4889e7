// Package model provides the element representation consumed and produced by
// chunking.
//
// # Elements
//
// An [Element] is a typed unit of a partitioned document. The [ElementType]
// tag distinguishes titles, narrative text, list items, tables, page breaks
// and the chunk types produced by chunking:
//
//   - [ElementTypeCompositeElement] - text merged from one or more elements
//   - [ElementTypeTable] - a whole table that fits the chunking window
//   - [ElementTypeTableChunk] - one fragment of an oversized table
//
// Elements are treated as caller-owned. Code that needs to change an element
// works on a copy made with [Element.Clone].
//
// # Metadata
//
// [Metadata] is a fixed set of fields. Each field is bound to exactly one
// [ConsolidationStrategy] that decides how values from several elements are
// merged when those elements are combined into a chunk:
//
//	meta := model.Consolidate([]*model.Metadata{&a.Metadata, &b.Metadata})
//
// [Fields] lists the field descriptors in declaration order.
//
// # Serialization
//
// Elements serialize to JSON objects with "type", "element_id", "text" and
// "metadata" keys. [ReadElements] and [WriteElements] handle whole element
// files.
package model
