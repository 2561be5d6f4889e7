package chunking

import "github.com/tsawler/chunkwise/model"

// BoundaryPredicate reports whether an element starts a new semantic unit,
// such as a section or a page, that must not share a chunk with what came
// before it.
type BoundaryPredicate func(e *model.Element) bool

// IsTitle reports whether e is a Title element.
func IsTitle(e *model.Element) bool {
	return e.Type == model.ElementTypeTitle
}

// PageTracker detects page changes in a single element stream. It must not
// be shared between streams since it remembers the current page.
type PageTracker struct {
	currentPageNumber int
	isFirst           bool
}

// NewPageTracker returns a tracker positioned before the first element.
func NewPageTracker() *PageTracker {
	return &PageTracker{currentPageNumber: 1, isFirst: true}
}

// IsOnNextPage reports whether e is on a different page than the elements
// before it and advances the tracked page.
//
// The first element never starts a new page. An element without a page
// number continues the current page and leaves it unchanged. Any other page
// number, including a lower one, is a page change.
func (pt *PageTracker) IsOnNextPage(e *model.Element) bool {
	pageNumber := e.Metadata.PageNumber

	if pt.isFirst {
		pt.isFirst = false
		if pageNumber != 0 {
			pt.currentPageNumber = pageNumber
		}
		return false
	}

	if pageNumber == 0 || pageNumber == pt.currentPageNumber {
		return false
	}

	pt.currentPageNumber = pageNumber
	return true
}

// NewPageBoundary returns a predicate that triggers on each new page, backed
// by a fresh PageTracker.
func NewPageBoundary() BoundaryPredicate {
	return NewPageTracker().IsOnNextPage
}

// isInNewSemanticUnit evaluates every predicate, without short-circuiting, so
// each can advance its own state.
func isInNewSemanticUnit(predicates []BoundaryPredicate, e *model.Element) bool {
	isNew := false
	for _, p := range predicates {
		if p(e) {
			isNew = true
		}
	}
	return isNew
}
