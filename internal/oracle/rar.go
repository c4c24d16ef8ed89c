package oracle

import (
	"bytes"
	"context"
	"io"

	"github.com/nwaples/rardecode"
)

// rarOracle tries passwords against a RAR archive. A wrong password shows
// up as a reader construction error, a failed first header read, or a
// CRC mismatch while decoding; a clean header read means the password
// fits.
type rarOracle struct {
	data []byte
}

func NewRar(data []byte) (*rarOracle, error) {
	return &rarOracle{data: data}, nil
}

func (o *rarOracle) Try(ctx context.Context, candidate string) (bool, error) {
	if err := ctx.Err(); err != nil {
		// Never report an untried candidate as a miss.
		return false, err
	}

	rdr, err := rardecode.NewReader(bytes.NewReader(o.data), candidate)
	if err != nil {
		return false, nil
	}

	if _, err := rdr.Next(); err != nil {
		return false, nil
	}
	if _, err := io.Copy(io.Discard, rdr); err != nil {
		return false, nil
	}
	return true, nil
}
