package search

import (
	"sync"

	"github.com/pdfraven/pdfraven/internal/domain"
)

// Partitioner hands out contiguous candidate-index chunks in strictly
// ascending order and folds out-of-order completions back into a single
// contiguous completed offset. The claimed cursor tracks what is in
// flight; the completed cursor only advances once every chunk below it is
// done, so a persisted checkpoint is always a true lower bound on fully
// tried candidates.
type Partitioner struct {
	mu        sync.Mutex
	total     uint64
	claimed   uint64
	completed uint64
	finished  map[uint64]uint64 // start -> end of done chunks above the completed cursor
}

func NewPartitioner(total, completed uint64) *Partitioner {
	if completed > total {
		completed = total
	}
	return &Partitioner{
		total:     total,
		claimed:   completed,
		completed: completed,
		finished:  make(map[uint64]uint64),
	}
}

// NextChunk claims the next unclaimed range of up to size candidates.
// ok is false once the whole space has been claimed.
func (p *Partitioner) NextChunk(size uint64) (c domain.WorkChunk, ok bool) {
	if size == 0 {
		size = 1
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.claimed >= p.total {
		return domain.WorkChunk{}, false
	}

	start := p.claimed
	end := start + size
	if end > p.total || end < start {
		end = p.total
	}
	p.claimed = end
	return domain.WorkChunk{Start: start, End: end}, true
}

// Complete records a fully tried chunk and returns the new completed
// offset. Chunks may finish out of order; the offset advances only
// through a contiguous prefix.
func (p *Partitioner) Complete(c domain.WorkChunk) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.finished[c.Start] = c.End
	for {
		end, ok := p.finished[p.completed]
		if !ok {
			break
		}
		delete(p.finished, p.completed)
		p.completed = end
	}
	return p.completed
}

func (p *Partitioner) CompletedOffset() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.completed
}

// Done reports whether every candidate has been claimed and completed.
func (p *Partitioner) Done() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.completed == p.total
}
