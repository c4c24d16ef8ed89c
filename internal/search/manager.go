package search

import (
	"context"
	"sync"

	"github.com/pdfraven/pdfraven/internal/domain"
)

type manager struct {
	engine *Engine

	mu   sync.Mutex
	runs map[string]*runState
}

func newManager(e *Engine) *manager {
	return &manager{
		engine: e,
		runs:   make(map[string]*runState),
	}
}

func (m *manager) Start(req StartRequest) (string, <-chan Result) {
	id := req.SessionID
	if id == "" {
		id = domain.NewSessionID()
		req.SessionID = id
	}

	m.mu.Lock()
	if existing, ok := m.runs[id]; ok {
		m.mu.Unlock()
		return id, existing.done
	}
	rt := &runState{
		id:       id,
		statusCh: make(chan domain.SearchStatus, 1),
		done:     make(chan Result, 1),
	}
	rt.ctx, rt.cancel = context.WithCancel(context.Background())
	m.runs[id] = rt
	m.mu.Unlock()

	go func() {
		res := m.engine.runSearch(rt, req)
		rt.cancel()

		m.mu.Lock()
		delete(m.runs, id)
		m.mu.Unlock()

		rt.done <- res
		close(rt.done)
	}()

	return id, rt.done
}

func (m *manager) IsActive(id string) bool {
	m.mu.Lock()
	_, ok := m.runs[id]
	m.mu.Unlock()
	return ok
}

func (m *manager) Pause(id string) bool {
	m.mu.Lock()
	rt := m.runs[id]
	m.mu.Unlock()
	if rt == nil {
		return false
	}

	rt.mu.Lock()
	if rt.paused {
		rt.mu.Unlock()
		rt.signalStatus(domain.StatusPaused)
		return true
	}
	rt.paused = true
	if rt.resumeCh == nil {
		rt.resumeCh = make(chan struct{})
	}
	rt.mu.Unlock()

	rt.signalStatus(domain.StatusPaused)
	return true
}

func (m *manager) Resume(id string) bool {
	m.mu.Lock()
	rt := m.runs[id]
	m.mu.Unlock()
	if rt == nil {
		return false
	}

	var ch chan struct{}

	rt.mu.Lock()
	if !rt.paused {
		rt.mu.Unlock()
		rt.signalStatus(domain.StatusRunning)
		return true
	}
	rt.paused = false
	ch = rt.resumeCh
	rt.resumeCh = nil
	rt.mu.Unlock()

	if ch != nil {
		close(ch)
	}

	rt.signalStatus(domain.StatusRunning)
	return true
}

func (m *manager) Stop(id string) bool {
	m.mu.Lock()
	rt := m.runs[id]
	m.mu.Unlock()
	if rt == nil {
		return false
	}

	// Unblock waiters if paused
	var ch chan struct{}
	rt.mu.Lock()
	ch = rt.resumeCh
	rt.paused = false
	rt.resumeCh = nil
	rt.mu.Unlock()
	if ch != nil {
		close(ch)
	}

	rt.signalStatus(domain.StatusStopped)
	rt.cancel()

	return true
}

type runState struct {
	id     string
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	paused   bool
	resumeCh chan struct{}

	desiredStatus domain.SearchStatus
	statusCh      chan domain.SearchStatus

	done chan Result
}

func (rt *runState) signalStatus(status domain.SearchStatus) {
	if rt == nil {
		return
	}
	rt.mu.Lock()
	rt.desiredStatus = status
	ch := rt.statusCh
	rt.mu.Unlock()

	if ch == nil {
		return
	}
	select {
	case ch <- status:
	default:
	}
}

func (rt *runState) desiredStatusSnapshot() domain.SearchStatus {
	if rt == nil {
		return ""
	}
	rt.mu.Lock()
	st := rt.desiredStatus
	rt.mu.Unlock()
	return st
}

// waitIfPaused blocks while paused; returns false if the search is
// stopping.
func (rt *runState) waitIfPaused() bool {
	if rt == nil {
		return true
	}

	for {
		rt.mu.Lock()
		paused := rt.paused
		ch := rt.resumeCh
		ctx := rt.ctx
		rt.mu.Unlock()

		if !paused {
			return true
		}

		select {
		case <-ctx.Done():
			return false
		case <-ch:
			// resumed, loop to re-check state
		}
	}
}
