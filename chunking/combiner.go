package chunking

import "iter"

// CombinePreChunks merges runs of undersized pre-chunks in a single
// left-to-right pass. A pre-chunk that cannot join the accumulated one
// flushes it; combining is never retried across a flush.
func CombinePreChunks(preChunks iter.Seq[*PreChunk], opts *Options) iter.Seq[*PreChunk] {
	return func(yield func(*PreChunk) bool) {
		accum := &preChunkAccumulator{opts: opts}

		for pc := range preChunks {
			if !accum.willFit(pc) {
				if combined, ok := accum.flush(); ok && !yield(combined) {
					return
				}
			}
			accum.add(pc)
		}

		if combined, ok := accum.flush(); ok {
			yield(combined)
		}
	}
}

// preChunkAccumulator holds at most one pre-chunk, the combination of those
// added since the last flush.
type preChunkAccumulator struct {
	opts     *Options
	preChunk *PreChunk
}

func (a *preChunkAccumulator) add(pc *PreChunk) {
	if a.preChunk == nil {
		a.preChunk = pc
		return
	}
	a.preChunk = a.preChunk.Combine(pc)
	a.opts.logger.Debug("pre-chunks combined", "elements", len(a.preChunk.elements), "length", textLen(a.preChunk.text))
}

func (a *preChunkAccumulator) flush() (*PreChunk, bool) {
	pc := a.preChunk
	a.preChunk = nil
	return pc, pc != nil
}

// willFit reports whether pc can be combined with the accumulated pre-chunk.
// An empty accumulator always has room.
func (a *preChunkAccumulator) willFit(pc *PreChunk) bool {
	return a.preChunk == nil || a.preChunk.CanCombine(pc)
}
