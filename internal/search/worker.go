package search

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/pdfraven/pdfraven/internal/domain"
)

// chunkResult reports one chunk's outcome. Exactly one of the three
// shapes is meaningful: err (fatal), found (success at found.Offset), or
// neither (chunk fully tried, no hit).
type chunkResult struct {
	chunk domain.WorkChunk
	found *domain.FoundMsg
	err   error
}

func (e *Engine) workerLoop(
	ctx context.Context,
	rt *runState,
	req StartRequest,
	limiter *rate.Limiter,
	jobs <-chan domain.WorkChunk,
	results chan<- chunkResult,
) {
	for {
		select {
		case <-ctx.Done():
			return

		case c, ok := <-jobs:
			if !ok {
				return
			}

			res := e.runChunk(ctx, rt, req, limiter, c)
			if res == nil {
				// Cancelled mid-chunk; the chunk stays incomplete and is
				// retried on the next resume.
				return
			}

			select {
			case results <- *res:
			case <-ctx.Done():
				return
			}
		}
	}
}

// runChunk tries every candidate in [c.Start, c.End). Cancellation is
// checked per candidate; an in-flight oracle call is never aborted.
func (e *Engine) runChunk(
	ctx context.Context,
	rt *runState,
	req StartRequest,
	limiter *rate.Limiter,
	c domain.WorkChunk,
) *chunkResult {
	for i := c.Start; i < c.End; i++ {
		if !rt.waitIfPaused() {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil
			}
		}

		cand, err := req.Generator.Nth(i)
		if err != nil {
			return &chunkResult{chunk: c, err: fmt.Errorf("candidate %d: %w", i, err)}
		}

		hit, err := req.Oracle.Try(ctx, cand)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				// The oracle refused an attempt because the run is
				// stopping. The candidate was never tried, so the chunk
				// must stay incomplete and be retried on resume.
				return nil
			}
			return &chunkResult{chunk: c, err: fmt.Errorf("oracle at %d: %w", i, err)}
		}
		if hit {
			return &chunkResult{
				chunk: c,
				found: &domain.FoundMsg{SessionID: req.SessionID, Password: cand, Offset: i},
			}
		}
	}
	return &chunkResult{chunk: c}
}

// feedChunks claims chunks in ascending order and hands them to workers.
func feedChunks(
	ctx context.Context,
	rt *runState,
	part *Partitioner,
	chunkSize uint64,
	jobs chan<- domain.WorkChunk,
) {
	defer close(jobs)
	for {
		if rt != nil && !rt.waitIfPaused() {
			return
		}
		c, ok := part.NextChunk(chunkSize)
		if !ok {
			return
		}
		select {
		case <-ctx.Done():
			return
		case jobs <- c:
		}
	}
}
