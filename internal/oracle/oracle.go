// Package oracle adapts encrypted document formats to the engine's
// attempt interface. Every adapter holds the document bytes in memory and
// builds per-call readers, so Try is safe from any number of workers.
package oracle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfraven/pdfraven/internal/domain"
)

var (
	// ErrUnsupported means no adapter exists for the document type.
	ErrUnsupported = errors.New("oracle: unsupported document type")
	// ErrNotEncrypted means the document opens without any password.
	ErrNotEncrypted = errors.New("oracle: document is not encrypted")
)

// Open selects an adapter by file extension and loads the document.
func Open(path string) (domain.AttemptOracle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("oracle: read document: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return NewPDF(data)
	case ".zip":
		return NewZip(data)
	case ".rar":
		return NewRar(data)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
}
