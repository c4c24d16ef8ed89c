package oracle

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/yeka/zip"
)

// zipOracle tries passwords against the first encrypted entry of a ZIP
// archive. Both AES and legacy ZipCrypto entries report a wrong password
// as an open or read error, so any failure past SetPassword counts as a
// miss.
type zipOracle struct {
	data  []byte
	entry string
}

func NewZip(data []byte) (*zipOracle, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("oracle: open zip: %w", err)
	}

	for _, f := range r.File {
		if f.IsEncrypted() {
			return &zipOracle{data: data, entry: f.Name}, nil
		}
	}
	return nil, ErrNotEncrypted
}

func (o *zipOracle) Try(ctx context.Context, candidate string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	// SetPassword mutates the file entry, so each attempt gets a fresh
	// reader over the shared bytes.
	r, err := zip.NewReader(bytes.NewReader(o.data), int64(len(o.data)))
	if err != nil {
		return false, fmt.Errorf("oracle: zip: %w", err)
	}

	for _, f := range r.File {
		if f.Name != o.entry {
			continue
		}
		f.SetPassword(candidate)
		rc, err := f.Open()
		if err != nil {
			return false, nil
		}
		_, err = io.Copy(io.Discard, rc)
		rc.Close()
		return err == nil, nil
	}
	return false, fmt.Errorf("oracle: zip entry %q disappeared", o.entry)
}
