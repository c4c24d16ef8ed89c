package gen

import (
	"github.com/pdfraven/pdfraven/internal/domain"
	"github.com/pdfraven/pdfraven/internal/pattern"
)

// maskSubspaceCap bounds the number of fixed-length sub-spaces Nth may
// scan. Past this the locate step is no longer cheap and the total is
// astronomical anyway.
const maskSubspaceCap = 1 << 16

// subspace is one fixed choice of every segment's length.
type subspace struct {
	lengths []int
	size    uint64
}

// maskGen treats a mask as a concatenation of fixed-length sub-spaces,
// ordered by ascending segment-length tuple (lexicographic over the
// segment list, shortest first). Within a sub-space candidates follow
// mixed-radix order with the last character varying fastest. Nth locates
// the sub-space by subtracting sizes, then decodes digits directly.
type maskGen struct {
	segs  []domain.MaskSegment
	subs  []subspace
	total uint64
}

func newMaskGen(segs []domain.MaskSegment, fragment string) (*maskGen, error) {
	g := &maskGen{segs: segs}

	lengths := make([]int, len(segs))
	for k, s := range segs {
		lengths[k] = s.MinLen
	}

	for {
		size := uint64(1)
		for k, s := range segs {
			p, ok := powCheck(uint64(len(s.Charset)), lengths[k])
			if !ok {
				return nil, pattern.ErrSpaceTooLarge(fragment)
			}
			if size, ok = mulCheck(size, p); !ok {
				return nil, pattern.ErrSpaceTooLarge(fragment)
			}
		}

		total, ok := addCheck(g.total, size)
		if !ok {
			return nil, pattern.ErrSpaceTooLarge(fragment)
		}
		g.total = total

		tuple := make([]int, len(lengths))
		copy(tuple, lengths)
		g.subs = append(g.subs, subspace{lengths: tuple, size: size})
		if len(g.subs) > maskSubspaceCap {
			return nil, pattern.ErrSpaceTooLarge(fragment)
		}

		// Odometer over length tuples, last segment fastest.
		k := len(lengths) - 1
		for k >= 0 {
			lengths[k]++
			if lengths[k] <= segs[k].MaxLen {
				break
			}
			lengths[k] = segs[k].MinLen
			k--
		}
		if k < 0 {
			break
		}
	}

	return g, nil
}

func (g *maskGen) Count() uint64 { return g.total }

func (g *maskGen) Nth(i uint64) (string, error) {
	if i >= g.total {
		return "", errOutOfRange(i, g.total)
	}

	rem := i
	for _, ss := range g.subs {
		if rem < ss.size {
			return g.decode(ss.lengths, rem), nil
		}
		rem -= ss.size
	}
	// Unreachable: sub-space sizes sum to total.
	return "", errOutOfRange(i, g.total)
}

// decode turns an ordinal within a fixed-length sub-space into its
// candidate by peeling mixed-radix digits from the right.
func (g *maskGen) decode(lengths []int, rem uint64) string {
	n := 0
	for _, l := range lengths {
		n += l
	}
	out := make([]byte, n)

	pos := n - 1
	for k := len(g.segs) - 1; k >= 0; k-- {
		charset := g.segs[k].Charset
		base := uint64(len(charset))
		for c := 0; c < lengths[k]; c++ {
			out[pos] = charset[rem%base]
			rem /= base
			pos--
		}
	}
	return string(out)
}
