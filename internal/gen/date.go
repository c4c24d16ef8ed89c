package gen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pdfraven/pdfraven/internal/domain"
)

// dateGen enumerates every valid calendar day in [Jan 1 yearStart,
// Dec 31 yearEnd] in chronological order. Nth walks year and month
// lengths arithmetically, so memory stays O(1) whatever the span.
type dateGen struct {
	yearStart, yearEnd int
	tokens             []string
	separator          string
	total              uint64
}

func newDateGen(yearStart, yearEnd int, layout, separator string) (*dateGen, error) {
	tokens, ok := domain.DateLayoutTokens(layout)
	if !ok {
		return nil, fmt.Errorf("gen: invalid date layout %q", layout)
	}
	var total uint64
	for y := yearStart; y <= yearEnd; y++ {
		total += uint64(daysInYear(y))
	}
	return &dateGen{
		yearStart: yearStart,
		yearEnd:   yearEnd,
		tokens:    tokens,
		separator: separator,
		total:     total,
	}, nil
}

func (g *dateGen) Count() uint64 { return g.total }

func (g *dateGen) Nth(i uint64) (string, error) {
	if i >= g.total {
		return "", errOutOfRange(i, g.total)
	}

	year := g.yearStart
	for {
		d := uint64(daysInYear(year))
		if i < d {
			break
		}
		i -= d
		year++
	}

	month := 1
	for {
		d := uint64(daysInMonth(year, month))
		if i < d {
			break
		}
		i -= d
		month++
	}
	day := int(i) + 1

	parts := make([]string, 0, len(g.tokens))
	for _, tok := range g.tokens {
		switch tok {
		case "DD":
			parts = append(parts, pad2(day))
		case "MM":
			parts = append(parts, pad2(month))
		case "YYYY":
			parts = append(parts, strconv.Itoa(year))
		case "YY":
			parts = append(parts, pad2(year%100))
		}
	}
	return strings.Join(parts, g.separator), nil
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func isLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

func daysInYear(y int) int {
	if isLeapYear(y) {
		return 366
	}
	return 365
}

var monthLengths = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func daysInMonth(y, m int) int {
	if m == 2 && isLeapYear(y) {
		return 29
	}
	return monthLengths[m]
}
