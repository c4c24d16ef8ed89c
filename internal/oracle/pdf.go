package oracle

import (
	"bytes"
	"context"
	"fmt"

	"seehuhn.de/go/pdf"
)

// pdfOracle tries user passwords against an encrypted PDF. The library
// asks for passwords through the ReadPassword callback; returning the
// candidate once and then giving up turns the reader's retry loop into a
// single attempt.
type pdfOracle struct {
	data []byte
}

func NewPDF(data []byte) (*pdfOracle, error) {
	o := &pdfOracle{data: data}

	// A document that opens with no password at all needs no search.
	asked := 0
	opt := &pdf.ReaderOptions{
		ReadPassword: func(_ []byte, _ int) string {
			asked++
			return ""
		},
	}
	_, err := pdf.NewReader(bytes.NewReader(data), opt)
	if err == nil {
		// Opens without a password (or with the empty one): no search
		// needed.
		return nil, ErrNotEncrypted
	}
	if asked == 0 {
		// Failed before any password was requested: structural problem.
		return nil, fmt.Errorf("oracle: open pdf: %w", err)
	}

	return o, nil
}

func (o *pdfOracle) Try(ctx context.Context, candidate string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	asked := 0
	opt := &pdf.ReaderOptions{
		ReadPassword: func(_ []byte, _ int) string {
			asked++
			if asked == 1 {
				return candidate
			}
			return ""
		},
	}

	_, err := pdf.NewReader(bytes.NewReader(o.data), opt)
	if err != nil {
		if asked > 0 {
			// The reader asked again after the candidate: rejected.
			return false, nil
		}
		return false, fmt.Errorf("oracle: pdf: %w", err)
	}
	return true, nil
}
