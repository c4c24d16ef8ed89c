package search

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdfraven/pdfraven/internal/domain"
)

func (e *Engine) runSearch(rt *runState, req StartRequest) Result {
	if req.Spec == nil || req.Generator == nil || req.Oracle == nil {
		return Result{Err: errors.New("search: spec, generator and oracle are required")}
	}

	ctx := rt.ctx
	logger := e.logger.With("session", req.SessionID)

	workers := sanitizeWorkers(req.Workers)
	chunkSize := req.ChunkSize
	if chunkSize == 0 {
		chunkSize = defaultChunkSize
	}

	total := req.Generator.Count()
	key := domain.SessionKey(req.Document, req.Spec)

	var session *domain.SearchSession
	if req.Resume && e.sessions != nil {
		prev, err := e.sessions.Load(key)
		if err != nil {
			logger.Warn("session load failed, starting fresh", "err", err)
		} else if prev != nil {
			if prev.TotalCount == total {
				session = prev
				session.ID = req.SessionID
			} else {
				logger.Warn("stored session count mismatch, starting fresh",
					"stored", prev.TotalCount, "current", total)
			}
		}
	}
	if session == nil {
		session = &domain.SearchSession{
			ID:         req.SessionID,
			Key:        key,
			Document:   req.Document,
			Spec:       *req.Spec,
			TotalCount: total,
			StartedAt:  time.Now().UTC().Format(time.RFC3339),
		}
	}
	session.Status = domain.StatusRunning

	priorElapsed := session.ElapsedSeconds
	runStart := time.Now()

	dirty := false
	flush := func(force bool) {
		if e.sessions == nil || (!force && !dirty) {
			return
		}
		session.ElapsedSeconds = priorElapsed + time.Since(runStart).Seconds()
		if err := e.sessions.Save(session); err != nil {
			// Checkpoint write failure is never fatal; the next cadence
			// tick retries, a lost checkpoint just means more re-work on
			// the next resume.
			logger.Warn("checkpoint save failed", "err", err)
			return
		}
		dirty = false
	}

	if st := rt.desiredStatusSnapshot(); st != "" {
		session.Status = st
		dirty = true
	}
	flush(true)

	e.emit(domain.EventSearchStarted, domain.SearchStartedMsg{
		SessionID:   session.ID,
		Document:    session.Document,
		Mode:        session.Spec.Mode,
		TotalCount:  total,
		ResumedFrom: session.CompletedOffset,
		Workers:     workers,
		StartedAt:   session.StartedAt,
	})

	var limiter *rate.Limiter
	if req.RatePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(req.RatePerSec), req.RatePerSec)
	}

	part := NewPartitioner(total, session.CompletedOffset)

	// Keep the jobs buffer small so pause and stop take effect quickly.
	jobs := make(chan domain.WorkChunk, workers)
	results := make(chan chunkResult, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			e.workerLoop(ctx, rt, req, limiter, jobs, results)
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go feedChunks(ctx, rt, part, chunkSize, jobs)

	var deadline <-chan time.Time
	if req.Timeout > 0 {
		t := time.NewTimer(req.Timeout)
		defer t.Stop()
		deadline = t.C
	}

	flushTicker := time.NewTicker(checkpointInterval)
	defer flushTicker.Stop()

	prog := newProgressTracker(total, session.CompletedOffset)

	var found *domain.FoundMsg
	var fatal error
	timedOut := false

	for {
		select {
		case st := <-rt.statusCh:
			session.Status = st
			dirty = true
			flush(true)

		case <-deadline:
			// The monitor only flips the cancellation signal; workers
			// finish their current candidate and stop.
			timedOut = true
			deadline = nil
			rt.cancel()

		case <-flushTicker.C:
			flush(false)

		case res, ok := <-results:
			if !ok {
				return e.finishSearch(rt, session, part, prog, found, fatal, timedOut, priorElapsed, runStart, flush)
			}

			if res.err != nil {
				if fatal == nil {
					fatal = res.err
					logger.Error("fatal attempt failure, aborting run", "err", fatal)
					rt.cancel()
				}
				continue
			}

			if res.found != nil {
				if found == nil {
					found = res.found
					e.emit(domain.EventFound, *found)
					rt.cancel()
				}
				continue
			}

			off := part.Complete(res.chunk)
			if off != session.CompletedOffset {
				session.CompletedOffset = off
				dirty = true
				e.emit(domain.EventChunkCompleted, domain.ChunkCompletedMsg{SessionID: session.ID, Offset: off})
				if send, msg := prog.maybeEmit(session.ID, off, time.Now()); send {
					e.emit(domain.EventProgress, msg)
				}
			}
		}
	}
}

func (e *Engine) finishSearch(
	rt *runState,
	session *domain.SearchSession,
	part *Partitioner,
	prog *progressTracker,
	found *domain.FoundMsg,
	fatal error,
	timedOut bool,
	priorElapsed float64,
	runStart time.Time,
	flush func(bool),
) Result {
	session.CompletedOffset = part.CompletedOffset()
	session.ElapsedSeconds = priorElapsed + time.Since(runStart).Seconds()

	switch {
	case found != nil:
		session.Status = domain.StatusSucceeded
		pw := found.Password
		off := found.Offset
		session.FoundPassword = &pw
		session.FoundOffset = &off
	case fatal != nil:
		session.Status = domain.StatusError
	case part.Done():
		session.Status = domain.StatusExhausted
	case rt.desiredStatusSnapshot() == domain.StatusStopped:
		session.Status = domain.StatusStopped
	case timedOut:
		session.Status = domain.StatusTimedOut
	default:
		session.Status = domain.StatusStopped
	}

	if e.sessions != nil {
		switch session.Status {
		case domain.StatusSucceeded, domain.StatusExhausted:
			if err := e.sessions.Clear(session.Key); err != nil {
				e.logger.Warn("session clear failed", "key", session.Key, "err", err)
			}
		default:
			flush(true)
		}
	}

	if send, msg := prog.maybeEmit(session.ID, session.CompletedOffset, time.Now()); send {
		e.emit(domain.EventProgress, msg)
	}

	done := domain.SearchDoneMsg{
		SessionID:      session.ID,
		Status:         session.Status,
		Checked:        session.CompletedOffset,
		Total:          session.TotalCount,
		ElapsedSeconds: session.ElapsedSeconds,
	}
	if fatal != nil {
		done.Error = fatal.Error()
	}
	e.emit(domain.EventSearchDone, done)

	return Result{Session: session, Err: fatal}
}
