package gen

import (
	"strconv"

	"github.com/pdfraven/pdfraven/internal/domain"
	"github.com/pdfraven/pdfraven/internal/pattern"
)

type rangeGen struct {
	min, max uint64
	total    uint64
}

func newRangeGen(min, max uint64) (*rangeGen, error) {
	span := max - min
	total, ok := addCheck(span, 1)
	if !ok {
		return nil, pattern.ErrSpaceTooLarge(strconv.FormatUint(min, 10) + "-" + strconv.FormatUint(max, 10))
	}
	return &rangeGen{min: min, max: max, total: total}, nil
}

func (g *rangeGen) Count() uint64 { return g.total }

func (g *rangeGen) Nth(i uint64) (string, error) {
	if i >= g.total {
		return "", errOutOfRange(i, g.total)
	}
	return strconv.FormatUint(g.min+i, 10), nil
}

type fixedGen struct {
	length int
	total  uint64
}

func newFixedGen(length int) (*fixedGen, error) {
	total, ok := powCheck(10, length)
	if !ok {
		return nil, pattern.ErrSpaceTooLarge(strconv.Itoa(length))
	}
	return &fixedGen{length: length, total: total}, nil
}

func (g *fixedGen) Count() uint64 { return g.total }

func (g *fixedGen) Nth(i uint64) (string, error) {
	if i >= g.total {
		return "", errOutOfRange(i, g.total)
	}
	return padUint(i, g.length), nil
}

type queryGen struct {
	prefix, suffix string
	min            uint64
	width          int
	total          uint64
}

func newQueryGen(spec *domain.AttackSpec) (*queryGen, error) {
	total, ok := addCheck(spec.Max-spec.Min, 1)
	if !ok {
		return nil, pattern.ErrSpaceTooLarge(spec.Prefix + "{...}" + spec.Suffix)
	}
	width := 0
	if spec.ZeroPad {
		width = spec.Length
	}
	return &queryGen{prefix: spec.Prefix, suffix: spec.Suffix, min: spec.Min, width: width, total: total}, nil
}

func (g *queryGen) Count() uint64 { return g.total }

func (g *queryGen) Nth(i uint64) (string, error) {
	if i >= g.total {
		return "", errOutOfRange(i, g.total)
	}
	return g.prefix + padUint(g.min+i, g.width) + g.suffix, nil
}

// padUint renders n in decimal, left-padded with zeros to width. A width
// of zero (or one the number already fills) pads nothing.
func padUint(n uint64, width int) string {
	s := strconv.FormatUint(n, 10)
	for len(s) < width {
		s = "0" + s
	}
	return s
}
