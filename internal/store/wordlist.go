package store

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pdfraven/pdfraven/internal/domain"
)

// WordlistFile is an index-stable line source over a wordlist on disk.
// One pass at open time records every line's offset and length; LineAt
// then reads with ReadAt, which carries no seek state, so any number of
// workers can pull lines concurrently.
type WordlistFile struct {
	f     *os.File
	lines []lineSpan
}

type lineSpan struct {
	off int64
	len int32
}

func OpenWordlist(path string) (*WordlistFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	w := &WordlistFile{f: f}

	r := bufio.NewReaderSize(f, 256*1024)
	var off int64
	for {
		line, err := r.ReadBytes('\n')
		n := len(line)
		if n > 0 {
			content := line
			if content[len(content)-1] == '\n' {
				content = content[:len(content)-1]
			}
			if len(content) > 0 && content[len(content)-1] == '\r' {
				content = content[:len(content)-1]
			}
			w.lines = append(w.lines, lineSpan{off: off, len: int32(len(content))})
			off += int64(n)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			f.Close()
			return nil, err
		}
	}

	return w, nil
}

func (w *WordlistFile) Count() uint64 { return uint64(len(w.lines)) }

func (w *WordlistFile) LineAt(k uint64) (string, error) {
	if k >= uint64(len(w.lines)) {
		return "", fmt.Errorf("wordlist: line %d out of range [0,%d)", k, len(w.lines))
	}
	span := w.lines[k]
	buf := make([]byte, span.len)
	if _, err := w.f.ReadAt(buf, span.off); err != nil {
		return "", err
	}
	return string(buf), nil
}

func (w *WordlistFile) Close() error { return w.f.Close() }

// WordlistOpener resolves wordlist paths for the generator and keeps the
// opened sources so they can be closed after the run.
type WordlistOpener struct {
	open []*WordlistFile
}

func (o *WordlistOpener) Open(path string) (domain.WordSource, error) {
	w, err := OpenWordlist(path)
	if err != nil {
		return nil, err
	}
	o.open = append(o.open, w)
	return w, nil
}

func (o *WordlistOpener) Close() error {
	var first error
	for _, w := range o.open {
		if err := w.Close(); err != nil && first == nil {
			first = err
		}
	}
	o.open = nil
	return first
}
