package gen

import "github.com/pdfraven/pdfraven/internal/domain"

type wordlistGen struct {
	src domain.WordSource
}

func (g *wordlistGen) Count() uint64 { return g.src.Count() }

func (g *wordlistGen) Nth(i uint64) (string, error) {
	if i >= g.src.Count() {
		return "", errOutOfRange(i, g.src.Count())
	}
	return g.src.LineAt(i)
}
