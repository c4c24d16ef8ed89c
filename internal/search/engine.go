// Package search drives a resumable, chunked password search: a fixed
// worker pool pulls candidate-index chunks from a partitioner, asks the
// attempt oracle about each candidate, and a single coordinator loop owns
// all mutable run state, checkpointing the completed offset at a bounded
// cadence.
package search

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/pdfraven/pdfraven/internal/domain"
	"github.com/pdfraven/pdfraven/internal/gen"
)

const (
	defaultChunkSize   = 1024
	checkpointInterval = 2 * time.Second
)

// StartRequest describes one search run. Generator and Oracle are built
// by the caller; the engine never opens files itself.
type StartRequest struct {
	SessionID string
	Document  string
	Spec      *domain.AttackSpec
	Generator gen.Generator
	Oracle    domain.AttemptOracle

	Workers    int
	ChunkSize  uint64
	Timeout    time.Duration
	RatePerSec int

	// Resume restores the completed offset from a stored session with a
	// matching key instead of starting at zero.
	Resume bool
}

// Result is the final outcome of a run. Err is set only for fatal
// failures (oracle breakage, generator fault); "not found" is a normal
// exhausted session.
type Result struct {
	Session *domain.SearchSession
	Err     error
}

type Engine struct {
	sessions domain.SessionStore
	emitter  domain.Emitter
	logger   *slog.Logger
	mgr      *manager
}

func New(sessions domain.SessionStore, emitter domain.Emitter, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{sessions: sessions, emitter: emitter, logger: logger}
	e.mgr = newManager(e)
	return e
}

// Start launches a search and returns its run id plus a channel that
// yields the final Result.
func (e *Engine) Start(req StartRequest) (string, <-chan Result) { return e.mgr.Start(req) }

func (e *Engine) Pause(id string) bool    { return e.mgr.Pause(id) }
func (e *Engine) Resume(id string) bool   { return e.mgr.Resume(id) }
func (e *Engine) Stop(id string) bool     { return e.mgr.Stop(id) }
func (e *Engine) IsActive(id string) bool { return e.mgr.IsActive(id) }

func (e *Engine) emit(event string, payload any) {
	if e != nil && e.emitter != nil {
		e.emitter.Emit(event, payload)
	}
}

func sanitizeWorkers(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}
