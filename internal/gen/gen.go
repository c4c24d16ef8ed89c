// Package gen produces deterministic, index-addressable candidate
// sequences from attack specs. A Generator is immutable once built, so
// Count and Nth are safe to call from any number of workers; Nth(i) costs
// O(representation size), never O(i). That is what lets the search engine
// partition work by ordinal and resume from a bare offset.
package gen

import (
	"fmt"
	"math"

	"github.com/pdfraven/pdfraven/internal/domain"
)

type Generator interface {
	// Count is the exact number of candidates, computed without
	// enumeration. Zero is a valid (empty) space.
	Count() uint64
	// Nth returns the candidate at ordinal i, 0 <= i < Count().
	Nth(i uint64) (string, error)
}

// WordSources resolves a wordlist path into an index-stable line source.
// Resolution happens once, at generator build time.
type WordSources interface {
	Open(path string) (domain.WordSource, error)
}

// Compile builds the generator for a spec, resolving wordlist sources and
// proving the total count fits in 64 bits. An overflowing space is a
// *pattern.CompileError with kind SpaceTooLarge.
func Compile(spec *domain.AttackSpec, words WordSources) (Generator, error) {
	if spec == nil {
		return nil, fmt.Errorf("gen: nil attack spec")
	}

	switch spec.Mode {
	case domain.ModeWordlist:
		if words == nil {
			return nil, fmt.Errorf("gen: wordlist attack needs a word source resolver")
		}
		src, err := words.Open(spec.WordlistPath)
		if err != nil {
			return nil, fmt.Errorf("gen: open wordlist: %w", err)
		}
		return &wordlistGen{src: src}, nil

	case domain.ModeNumericRange:
		return newRangeGen(spec.Min, spec.Max)

	case domain.ModeFixedNumeric:
		return newFixedGen(spec.Length)

	case domain.ModeDate:
		return newDateGen(spec.YearStart, spec.YearEnd, spec.DateLayout, spec.Separator)

	case domain.ModeCustomQuery:
		return newQueryGen(spec)

	case domain.ModeMask:
		if len(spec.Segments) == 0 {
			return nil, fmt.Errorf("gen: mask spec has no segments")
		}
		return newMaskGen(spec.Segments, "mask")

	case domain.ModeCustomBrute:
		seg := domain.MaskSegment{Charset: spec.Charset, MinLen: spec.MinLen, MaxLen: spec.MaxLen}
		return newMaskGen([]domain.MaskSegment{seg}, "brute")

	case domain.ModeHybrid:
		left, err := Compile(spec.Left, words)
		if err != nil {
			return nil, err
		}
		right, err := Compile(spec.Right, words)
		if err != nil {
			return nil, err
		}
		return newHybridGen(left, right)
	}

	return nil, fmt.Errorf("gen: unknown attack mode %q", spec.Mode)
}

func errOutOfRange(i, count uint64) error {
	return fmt.Errorf("gen: ordinal %d out of range [0,%d)", i, count)
}

// Overflow-checked arithmetic. A false result means the true value does
// not fit in uint64.

func addCheck(a, b uint64) (uint64, bool) {
	if a > math.MaxUint64-b {
		return 0, false
	}
	return a + b, true
}

func mulCheck(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxUint64/b {
		return 0, false
	}
	return a * b, true
}

func powCheck(base uint64, exp int) (uint64, bool) {
	out := uint64(1)
	for i := 0; i < exp; i++ {
		var ok bool
		if out, ok = mulCheck(out, base); !ok {
			return 0, false
		}
	}
	return out, true
}
