package search

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pdfraven/pdfraven/internal/domain"
	"github.com/pdfraven/pdfraven/internal/gen"
	"github.com/pdfraven/pdfraven/internal/pattern"
)

// fakeOracle matches one exact candidate and records everything it was
// asked about.
type fakeOracle struct {
	target string
	failAt string
	delay  time.Duration

	mu    sync.Mutex
	tried map[string]int
}

func newFakeOracle(target string) *fakeOracle {
	return &fakeOracle{target: target, tried: make(map[string]int)}
}

func (o *fakeOracle) Try(ctx context.Context, candidate string) (bool, error) {
	// Like the real document adapters, a cancelled attempt surfaces the
	// context error instead of posing as a tried-and-wrong candidate.
	if o.delay > 0 {
		select {
		case <-time.After(o.delay):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	o.mu.Lock()
	o.tried[candidate]++
	o.mu.Unlock()

	if o.failAt != "" && candidate == o.failAt {
		return false, errors.New("document handle broke")
	}
	return candidate == o.target, nil
}

func (o *fakeOracle) triedCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.tried)
}

func (o *fakeOracle) wasTried(candidate string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.tried[candidate] > 0
}

// memStore is an in-memory SessionStore. Save snapshots the session value
// so later coordinator mutations do not leak in.
type memStore struct {
	mu        sync.Mutex
	m         map[string]domain.SearchSession
	failSaves bool
}

func newMemStore() *memStore {
	return &memStore{m: make(map[string]domain.SearchSession)}
}

func (s *memStore) Load(key string) (*domain.SearchSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.m[key]
	if !ok {
		return nil, nil
	}
	cp := sess
	return &cp, nil
}

func (s *memStore) Save(sess *domain.SearchSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSaves {
		return errors.New("disk full")
	}
	s.m[sess.Key] = *sess
	return nil
}

func (s *memStore) Clear(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

func (s *memStore) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.m[key]
	return ok
}

// recordingEmitter collects every emitted event in order.
type recordingEmitter struct {
	mu     sync.Mutex
	events []struct {
		name    string
		payload any
	}
}

func (r *recordingEmitter) Emit(event string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, struct {
		name    string
		payload any
	}{event, payload})
}

func (r *recordingEmitter) find(event string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.name == event {
			return e.payload, true
		}
	}
	return nil, false
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func rangeGenerator(t *testing.T, min, max uint64) (*domain.AttackSpec, gen.Generator) {
	t.Helper()
	spec, err := pattern.NumericRange(min, max)
	require.NoError(t, err)
	g, err := gen.Compile(spec, nil)
	require.NoError(t, err)
	return spec, g
}

func TestRunFindsPassword(t *testing.T) {
	store := newMemStore()
	emitter := &recordingEmitter{}
	engine := New(store, emitter, quietLogger())

	spec, g := rangeGenerator(t, 0, 999)
	oracle := newFakeOracle("421")

	_, done := engine.Start(StartRequest{
		Document:  "vault.pdf",
		Spec:      spec,
		Generator: g,
		Oracle:    oracle,
		Workers:   4,
		ChunkSize: 50,
	})

	res := <-done
	require.NoError(t, res.Err)
	require.Equal(t, domain.StatusSucceeded, res.Session.Status)
	require.NotNil(t, res.Session.FoundPassword)
	require.Equal(t, "421", *res.Session.FoundPassword)
	require.NotNil(t, res.Session.FoundOffset)
	require.Equal(t, uint64(421), *res.Session.FoundOffset)

	// A solved session leaves no checkpoint behind.
	require.False(t, store.has(res.Session.Key))

	payload, ok := emitter.find(domain.EventFound)
	require.True(t, ok)
	require.Equal(t, "421", payload.(domain.FoundMsg).Password)
}

func TestRunExhaustsSpace(t *testing.T) {
	store := newMemStore()
	engine := New(store, nil, quietLogger())

	spec, g := rangeGenerator(t, 0, 499)
	oracle := newFakeOracle("not-in-space")

	_, done := engine.Start(StartRequest{
		Document:  "vault.pdf",
		Spec:      spec,
		Generator: g,
		Oracle:    oracle,
		Workers:   2,
		ChunkSize: 64,
	})

	res := <-done
	require.NoError(t, res.Err)
	require.Equal(t, domain.StatusExhausted, res.Session.Status)
	require.Equal(t, uint64(500), res.Session.CompletedOffset)
	require.Equal(t, 500, oracle.triedCount())
	require.False(t, store.has(res.Session.Key))
}

func TestRunResumeSkipsCompletedPrefix(t *testing.T) {
	store := newMemStore()
	emitter := &recordingEmitter{}
	engine := New(store, emitter, quietLogger())

	spec, g := rangeGenerator(t, 0, 999)
	key := domain.SessionKey("vault.pdf", spec)

	require.NoError(t, store.Save(&domain.SearchSession{
		ID:              "prior-run",
		Key:             key,
		Document:        "vault.pdf",
		Spec:            *spec,
		TotalCount:      1000,
		CompletedOffset: 600,
		StartedAt:       time.Now().UTC().Format(time.RFC3339),
		Status:          domain.StatusStopped,
	}))

	oracle := newFakeOracle("not-in-space")

	_, done := engine.Start(StartRequest{
		Document:  "vault.pdf",
		Spec:      spec,
		Generator: g,
		Oracle:    oracle,
		Workers:   1,
		ChunkSize: 100,
		Resume:    true,
	})

	res := <-done
	require.NoError(t, res.Err)
	require.Equal(t, domain.StatusExhausted, res.Session.Status)

	// Exactly the ordinals [600, 1000) were visited.
	require.Equal(t, 400, oracle.triedCount())
	require.True(t, oracle.wasTried("600"))
	require.True(t, oracle.wasTried("999"))
	require.False(t, oracle.wasTried("599"))

	payload, ok := emitter.find(domain.EventSearchStarted)
	require.True(t, ok)
	require.Equal(t, uint64(600), payload.(domain.SearchStartedMsg).ResumedFrom)
}

func TestRunResumeCountMismatchStartsFresh(t *testing.T) {
	store := newMemStore()
	engine := New(store, nil, quietLogger())

	spec, g := rangeGenerator(t, 0, 999)
	key := domain.SessionKey("vault.pdf", spec)

	require.NoError(t, store.Save(&domain.SearchSession{
		ID:              "prior-run",
		Key:             key,
		Document:        "vault.pdf",
		Spec:            *spec,
		TotalCount:      999, // stale: the space has a different size now
		CompletedOffset: 600,
		StartedAt:       time.Now().UTC().Format(time.RFC3339),
	}))

	oracle := newFakeOracle("not-in-space")

	_, done := engine.Start(StartRequest{
		Document:  "vault.pdf",
		Spec:      spec,
		Generator: g,
		Oracle:    oracle,
		Workers:   1,
		ChunkSize: 128,
		Resume:    true,
	})

	res := <-done
	require.Equal(t, domain.StatusExhausted, res.Session.Status)
	require.Equal(t, 1000, oracle.triedCount())
}

func TestRunFatalOracleError(t *testing.T) {
	store := newMemStore()
	engine := New(store, nil, quietLogger())

	spec, g := rangeGenerator(t, 0, 999)
	oracle := newFakeOracle("not-in-space")
	oracle.failAt = "123"

	_, done := engine.Start(StartRequest{
		Document:  "vault.pdf",
		Spec:      spec,
		Generator: g,
		Oracle:    oracle,
		Workers:   2,
		ChunkSize: 50,
	})

	res := <-done
	require.Error(t, res.Err)
	require.Equal(t, domain.StatusError, res.Session.Status)

	// The partial progress is checkpointed for a later retry.
	require.True(t, store.has(res.Session.Key))
}

func TestRunStopCheckpointsProgress(t *testing.T) {
	store := newMemStore()
	engine := New(store, nil, quietLogger())

	spec, g := rangeGenerator(t, 0, 9_999_999)
	oracle := newFakeOracle("not-in-space")
	oracle.delay = 200 * time.Microsecond

	id, done := engine.Start(StartRequest{
		Document:  "vault.pdf",
		Spec:      spec,
		Generator: g,
		Oracle:    oracle,
		Workers:   2,
		ChunkSize: 16,
	})

	time.Sleep(50 * time.Millisecond)
	require.True(t, engine.Stop(id))

	res := <-done
	require.NoError(t, res.Err)
	require.Equal(t, domain.StatusStopped, res.Session.Status)
	require.Less(t, res.Session.CompletedOffset, res.Session.TotalCount)
	require.True(t, store.has(res.Session.Key))

	// Offsets below the checkpoint must all have been truly attempted,
	// even when cancellation raced the last candidates of a chunk.
	require.LessOrEqual(t, res.Session.CompletedOffset, uint64(oracle.triedCount()))
}

func TestRunTimeout(t *testing.T) {
	store := newMemStore()
	engine := New(store, nil, quietLogger())

	spec, g := rangeGenerator(t, 0, 9_999_999)
	oracle := newFakeOracle("not-in-space")
	oracle.delay = 200 * time.Microsecond

	_, done := engine.Start(StartRequest{
		Document:  "vault.pdf",
		Spec:      spec,
		Generator: g,
		Oracle:    oracle,
		Workers:   2,
		ChunkSize: 16,
		Timeout:   60 * time.Millisecond,
	})

	res := <-done
	require.NoError(t, res.Err)
	require.Equal(t, domain.StatusTimedOut, res.Session.Status)
	require.Less(t, res.Session.CompletedOffset, res.Session.TotalCount)
	require.True(t, store.has(res.Session.Key))

	// The checkpoint never claims more than was actually verified.
	require.LessOrEqual(t, res.Session.CompletedOffset, uint64(oracle.triedCount()))
}

func TestRunSurvivesCheckpointFailure(t *testing.T) {
	store := newMemStore()
	store.failSaves = true
	engine := New(store, nil, quietLogger())

	spec, g := rangeGenerator(t, 0, 199)
	oracle := newFakeOracle("not-in-space")

	_, done := engine.Start(StartRequest{
		Document:  "vault.pdf",
		Spec:      spec,
		Generator: g,
		Oracle:    oracle,
		Workers:   2,
		ChunkSize: 32,
	})

	res := <-done
	require.NoError(t, res.Err)
	require.Equal(t, domain.StatusExhausted, res.Session.Status)
	require.Equal(t, 200, oracle.triedCount())
}

func TestRunRejectsIncompleteRequest(t *testing.T) {
	engine := New(newMemStore(), nil, quietLogger())

	_, done := engine.Start(StartRequest{Document: "vault.pdf"})
	res := <-done
	require.Error(t, res.Err)
}

func TestRunEmptySpace(t *testing.T) {
	store := newMemStore()
	engine := New(store, nil, quietLogger())

	spec, err := pattern.Wordlist("empty.txt")
	require.NoError(t, err)
	g, err := gen.Compile(spec, emptyWords{})
	require.NoError(t, err)

	_, done := engine.Start(StartRequest{
		Document:  "vault.pdf",
		Spec:      spec,
		Generator: g,
		Oracle:    newFakeOracle("x"),
		Workers:   2,
	})

	res := <-done
	require.NoError(t, res.Err)
	require.Equal(t, domain.StatusExhausted, res.Session.Status)
	require.Equal(t, uint64(0), res.Session.TotalCount)
}

type emptyWords struct{}

func (emptyWords) Open(path string) (domain.WordSource, error) { return emptySource{}, nil }

type emptySource struct{}

func (emptySource) Count() uint64                 { return 0 }
func (emptySource) LineAt(uint64) (string, error) { return "", errors.New("empty") }
