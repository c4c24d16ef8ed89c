package store

import (
	"path/filepath"

	"github.com/syndtr/goleveldb/leveldb"
)

// PasswordCache remembers recovered passwords per document so a repeat
// run can skip the attack entirely. Keys are absolute document paths.
type PasswordCache struct {
	db *leveldb.DB
}

func OpenPasswordCache(path string) (*PasswordCache, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &PasswordCache{db: db}, nil
}

func cacheKey(document string) ([]byte, error) {
	abs, err := filepath.Abs(document)
	if err != nil {
		return nil, err
	}
	return []byte(abs), nil
}

// Get returns the cached password for a document; ok is false when no
// entry exists.
func (c *PasswordCache) Get(document string) (password string, ok bool, err error) {
	key, err := cacheKey(document)
	if err != nil {
		return "", false, err
	}
	v, err := c.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(v), true, nil
}

func (c *PasswordCache) Put(document, password string) error {
	key, err := cacheKey(document)
	if err != nil {
		return err
	}
	return c.db.Put(key, []byte(password), nil)
}

// Delete drops a stale entry, e.g. when the cached password no longer
// opens the document.
func (c *PasswordCache) Delete(document string) error {
	key, err := cacheKey(document)
	if err != nil {
		return err
	}
	return c.db.Delete(key, nil)
}

func (c *PasswordCache) Close() error { return c.db.Close() }
