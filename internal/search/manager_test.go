package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pdfraven/pdfraven/internal/domain"
)

func TestPauseAndResume(t *testing.T) {
	store := newMemStore()
	engine := New(store, nil, quietLogger())

	spec, g := rangeGenerator(t, 0, 499)
	oracle := newFakeOracle("not-in-space")
	oracle.delay = time.Millisecond

	id, done := engine.Start(StartRequest{
		Document:  "vault.pdf",
		Spec:      spec,
		Generator: g,
		Oracle:    oracle,
		Workers:   2,
		ChunkSize: 8,
	})
	require.True(t, engine.IsActive(id))

	time.Sleep(20 * time.Millisecond)
	require.True(t, engine.Pause(id))

	// Let in-flight candidates drain, then progress must be frozen.
	time.Sleep(50 * time.Millisecond)
	before := oracle.triedCount()
	time.Sleep(150 * time.Millisecond)
	require.Equal(t, before, oracle.triedCount())

	require.True(t, engine.Resume(id))

	res := <-done
	require.NoError(t, res.Err)
	require.Equal(t, domain.StatusExhausted, res.Session.Status)
	require.Equal(t, 500, oracle.triedCount())
	require.False(t, engine.IsActive(id))
}

func TestStopWhilePaused(t *testing.T) {
	store := newMemStore()
	engine := New(store, nil, quietLogger())

	spec, g := rangeGenerator(t, 0, 99_999)
	oracle := newFakeOracle("not-in-space")
	oracle.delay = time.Millisecond

	id, done := engine.Start(StartRequest{
		Document:  "vault.pdf",
		Spec:      spec,
		Generator: g,
		Oracle:    oracle,
		Workers:   2,
		ChunkSize: 8,
	})

	time.Sleep(20 * time.Millisecond)
	require.True(t, engine.Pause(id))
	time.Sleep(20 * time.Millisecond)

	// Stop must release paused workers instead of hanging them.
	require.True(t, engine.Stop(id))

	res := <-done
	require.NoError(t, res.Err)
	require.Equal(t, domain.StatusStopped, res.Session.Status)
}

func TestControlsOnUnknownRun(t *testing.T) {
	engine := New(newMemStore(), nil, quietLogger())

	require.False(t, engine.Pause("no-such-run"))
	require.False(t, engine.Resume("no-such-run"))
	require.False(t, engine.Stop("no-such-run"))
	require.False(t, engine.IsActive("no-such-run"))
}

func TestStartDuplicateSessionID(t *testing.T) {
	engine := New(newMemStore(), nil, quietLogger())

	spec, g := rangeGenerator(t, 0, 99_999)
	oracle := newFakeOracle("not-in-space")
	oracle.delay = time.Millisecond

	id1, done1 := engine.Start(StartRequest{
		SessionID: "same-run",
		Document:  "vault.pdf",
		Spec:      spec,
		Generator: g,
		Oracle:    oracle,
		Workers:   2,
		ChunkSize: 8,
	})

	// A second start under the same id attaches to the running search
	// instead of launching a rival.
	id2, done2 := engine.Start(StartRequest{
		SessionID: "same-run",
		Document:  "vault.pdf",
		Spec:      spec,
		Generator: g,
		Oracle:    oracle,
		Workers:   2,
		ChunkSize: 8,
	})
	require.Equal(t, id1, id2)
	require.True(t, done1 == done2, "both starts must share one result channel")

	require.True(t, engine.Stop(id1))
	res := <-done1
	require.Equal(t, domain.StatusStopped, res.Session.Status)
}

func TestStartAssignsSessionID(t *testing.T) {
	engine := New(newMemStore(), nil, quietLogger())

	spec, g := rangeGenerator(t, 0, 9)
	id, done := engine.Start(StartRequest{
		Document:  "vault.pdf",
		Spec:      spec,
		Generator: g,
		Oracle:    newFakeOracle("not-in-space"),
		Workers:   1,
	})
	require.NotEmpty(t, id)

	res := <-done
	require.Equal(t, id, res.Session.ID)
}
