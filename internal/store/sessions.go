package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdfraven/pdfraven/internal/domain"
)

// SessionStore keeps one JSON checkpoint file per search session under a
// directory, named by the session key (a 64-char hex fingerprint, so the
// key is always a safe file name).
type SessionStore struct {
	dir string
}

func NewSessionStore(dir string) (*SessionStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &SessionStore{dir: dir}, nil
}

func (s *SessionStore) Dir() string { return s.dir }

func (s *SessionStore) path(key string) string {
	return filepath.Join(s.dir, key+".session.json")
}

// Load returns the stored session for key, or (nil, nil) when none
// exists.
func (s *SessionStore) Load(key string) (*domain.SearchSession, error) {
	if !domain.IsValidSessionKey(key) {
		return nil, nil
	}
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var sess domain.SearchSession
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *SessionStore) Save(sess *domain.SearchSession) error {
	return writeJSONAtomic(s.path(sess.Key), sess)
}

func (s *SessionStore) Clear(key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// List returns every stored session, most recently started first.
func (s *SessionStore) List() ([]domain.SearchSession, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var out []domain.SearchSession
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".session.json") {
			continue
		}
		b, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		var sess domain.SearchSession
		if json.Unmarshal(b, &sess) == nil {
			out = append(out, sess)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt > out[j].StartedAt })
	return out, nil
}
