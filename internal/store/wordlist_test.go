package store

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeWordlist(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestWordlistLines(t *testing.T) {
	w, err := OpenWordlist(writeWordlist(t, "admin\nletmein\nsecret\n"))
	require.NoError(t, err)
	defer w.Close()

	require.Equal(t, uint64(3), w.Count())
	for i, want := range []string{"admin", "letmein", "secret"} {
		got, err := w.LineAt(uint64(i))
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err = w.LineAt(3)
	require.Error(t, err)
}

func TestWordlistCRLFAndNoTrailingNewline(t *testing.T) {
	w, err := OpenWordlist(writeWordlist(t, "one\r\ntwo\r\nthree"))
	require.NoError(t, err)
	defer w.Close()

	require.Equal(t, uint64(3), w.Count())
	for i, want := range []string{"one", "two", "three"} {
		got, err := w.LineAt(uint64(i))
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestWordlistEmptyFile(t *testing.T) {
	w, err := OpenWordlist(writeWordlist(t, ""))
	require.NoError(t, err)
	defer w.Close()
	require.Equal(t, uint64(0), w.Count())
}

func TestWordlistKeepsBlankLines(t *testing.T) {
	w, err := OpenWordlist(writeWordlist(t, "a\n\nb\n"))
	require.NoError(t, err)
	defer w.Close()

	require.Equal(t, uint64(3), w.Count())
	got, err := w.LineAt(1)
	require.NoError(t, err)
	require.Equal(t, "", got)
}

func TestWordlistConcurrentReads(t *testing.T) {
	w, err := OpenWordlist(writeWordlist(t, "alpha\nbravo\ncharlie\ndelta\n"))
	require.NoError(t, err)
	defer w.Close()

	want := []string{"alpha", "bravo", "charlie", "delta"}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 200; n++ {
				k := uint64(n % len(want))
				got, err := w.LineAt(k)
				if err != nil || got != want[k] {
					t.Errorf("LineAt(%d) = %q, %v", k, got, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestWordlistOpenerClosesAll(t *testing.T) {
	o := &WordlistOpener{}
	src, err := o.Open(writeWordlist(t, "a\nb\n"))
	require.NoError(t, err)
	require.Equal(t, uint64(2), src.Count())

	require.NoError(t, o.Close())

	// The underlying file is closed, so reads now fail.
	_, err = src.LineAt(0)
	require.Error(t, err)
}

func TestWordlistOpenMissing(t *testing.T) {
	_, err := OpenWordlist(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
}
