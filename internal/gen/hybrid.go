package gen

import "github.com/pdfraven/pdfraven/internal/pattern"

// hybridGen is the Cartesian concatenation of two sub-generators. The
// right side varies fastest: nth(i) = left[i / rc] + right[i % rc].
type hybridGen struct {
	left, right Generator
	rightCount  uint64
	total       uint64
}

func newHybridGen(left, right Generator) (*hybridGen, error) {
	total, ok := mulCheck(left.Count(), right.Count())
	if !ok {
		return nil, pattern.ErrSpaceTooLarge("hybrid")
	}
	return &hybridGen{left: left, right: right, rightCount: right.Count(), total: total}, nil
}

func (g *hybridGen) Count() uint64 { return g.total }

func (g *hybridGen) Nth(i uint64) (string, error) {
	if i >= g.total {
		return "", errOutOfRange(i, g.total)
	}
	l, err := g.left.Nth(i / g.rightCount)
	if err != nil {
		return "", err
	}
	r, err := g.right.Nth(i % g.rightCount)
	if err != nil {
		return "", err
	}
	return l + r, nil
}
