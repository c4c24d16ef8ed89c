// Package pattern turns attack-mode descriptors (mask strings, numeric
// bounds, date layouts, custom-query templates) into validated AttackSpec
// values. Compilation is pure: no file or clock access happens here.
package pattern

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdfraven/pdfraven/internal/domain"
)

const maxNumericLength = 19 // 10^20 does not fit in uint64

// Wordlist describes a line-source attack. The path is opaque here; the
// store resolves it when the generator is built.
func Wordlist(path string) (*domain.AttackSpec, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errSyntax(path, "wordlist path must not be empty")
	}
	return &domain.AttackSpec{Mode: domain.ModeWordlist, WordlistPath: path}, nil
}

// NumericRange covers the integers min..=max rendered without padding.
func NumericRange(min, max uint64) (*domain.AttackSpec, error) {
	if min > max {
		return nil, errRange(strconv.FormatUint(min, 10)+"-"+strconv.FormatUint(max, 10), "min must be <= max")
	}
	return &domain.AttackSpec{Mode: domain.ModeNumericRange, Min: min, Max: max}, nil
}

var rangeRe = regexp.MustCompile(`^(\d+)-(\d+)$`)

// RangeString parses a "MIN-MAX" descriptor.
func RangeString(s string) (*domain.AttackSpec, error) {
	m := rangeRe.FindStringSubmatch(s)
	if m == nil {
		return nil, errSyntax(s, "range must look like MIN-MAX")
	}
	min, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return nil, errRange(m[1], "min does not fit in 64 bits")
	}
	max, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil {
		return nil, errRange(m[2], "max does not fit in 64 bits")
	}
	return NumericRange(min, max)
}

// FixedNumeric covers 0 .. 10^length, zero-padded to length digits.
func FixedNumeric(length int) (*domain.AttackSpec, error) {
	if length <= 0 {
		return nil, errRange(strconv.Itoa(length), "length must be positive")
	}
	if length > maxNumericLength {
		return nil, ErrSpaceTooLarge(strconv.Itoa(length))
	}
	return &domain.AttackSpec{Mode: domain.ModeFixedNumeric, Length: length}, nil
}

// Date covers every valid calendar day from Jan 1 of yearStart through
// Dec 31 of yearEnd, rendered per the token layout joined by separator.
func Date(yearStart, yearEnd int, layout, separator string) (*domain.AttackSpec, error) {
	if yearStart <= 0 || yearEnd <= 0 {
		return nil, errRange(strconv.Itoa(yearStart)+".."+strconv.Itoa(yearEnd), "years must be positive")
	}
	if yearStart > yearEnd {
		return nil, errRange(strconv.Itoa(yearStart)+".."+strconv.Itoa(yearEnd), "start year must be <= end year")
	}
	if _, ok := domain.DateLayoutTokens(layout); !ok {
		return nil, errSyntax(layout, "layout needs exactly one day, month and year token (DD, MM, YYYY or YY)")
	}
	return &domain.AttackSpec{
		Mode:       domain.ModeDate,
		YearStart:  yearStart,
		YearEnd:    yearEnd,
		DateLayout: layout,
		Separator:  separator,
	}, nil
}

var queryRe = regexp.MustCompile(`^(.*)\{(\d+)-(\d+)\}(.*)$`)

// Query parses a PREFIX{MIN-MAX}SUFFIX template. With zeroPad the number
// is left-padded to the width of MAX as written.
func Query(template string, zeroPad bool) (*domain.AttackSpec, error) {
	m := queryRe.FindStringSubmatch(template)
	if m == nil {
		return nil, errSyntax(template, "template must look like PREFIX{MIN-MAX}SUFFIX")
	}
	min, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil {
		return nil, errRange(m[2], "min does not fit in 64 bits")
	}
	max, err := strconv.ParseUint(m[3], 10, 64)
	if err != nil {
		return nil, errRange(m[3], "max does not fit in 64 bits")
	}
	if min > max {
		return nil, errRange(m[2]+"-"+m[3], "min must be <= max")
	}
	spec := &domain.AttackSpec{
		Mode:    domain.ModeCustomQuery,
		Prefix:  m[1],
		Suffix:  m[4],
		Min:     min,
		Max:     max,
		ZeroPad: zeroPad,
	}
	if zeroPad {
		spec.Length = len(m[3])
	}
	return spec, nil
}

// Mask parses a mask like "w{3}d{1,2}" into charset segments. A bare class
// letter means length 1; "{n}" a fixed length; "{min,max}" a range, where
// an empty min defaults to 1 and an empty max to min.
func Mask(mask string) (*domain.AttackSpec, error) {
	if mask == "" {
		return nil, errSyntax(mask, "mask must not be empty")
	}

	var segs []domain.MaskSegment
	for i := 0; i < len(mask); {
		class := mask[i]
		charset, ok := CharsetMap[class]
		if !ok {
			return nil, errClass(string(class), "unknown mask class")
		}
		i++

		minLen, maxLen := 1, 1
		if i < len(mask) && mask[i] == '{' {
			end := strings.IndexByte(mask[i:], '}')
			if end < 0 {
				return nil, errSyntax(mask[i:], "unterminated '{' in mask")
			}
			body := mask[i+1 : i+end]
			i += end + 1

			var err error
			if comma := strings.IndexByte(body, ','); comma >= 0 {
				minStr, maxStr := body[:comma], body[comma+1:]
				minLen = 1
				if minStr != "" {
					if minLen, err = strconv.Atoi(minStr); err != nil {
						return nil, errSyntax(body, "mask length must be numeric")
					}
				}
				maxLen = minLen
				if maxStr != "" {
					if maxLen, err = strconv.Atoi(maxStr); err != nil {
						return nil, errSyntax(body, "mask length must be numeric")
					}
				}
			} else if body != "" {
				if minLen, err = strconv.Atoi(body); err != nil {
					return nil, errSyntax(body, "mask length must be numeric")
				}
				maxLen = minLen
			}

			if minLen < 0 {
				return nil, errRange(body, "mask length must be >= 0")
			}
			if minLen > maxLen {
				return nil, errRange(body, "mask min length must be <= max length")
			}
		}

		segs = append(segs, domain.MaskSegment{Charset: charset, MinLen: minLen, MaxLen: maxLen})
	}

	return &domain.AttackSpec{Mode: domain.ModeMask, Segments: segs}, nil
}

// Brute covers all strings over a literal charset with lengths in
// [minLen, maxLen], shorter lengths first.
func Brute(charset string, minLen, maxLen int) (*domain.AttackSpec, error) {
	if charset == "" {
		return nil, errSyntax(charset, "charset must not be empty")
	}
	if minLen < 1 {
		return nil, errRange(strconv.Itoa(minLen), "min length must be >= 1")
	}
	if minLen > maxLen {
		return nil, errRange(strconv.Itoa(minLen)+".."+strconv.Itoa(maxLen), "min length must be <= max length")
	}
	return &domain.AttackSpec{Mode: domain.ModeCustomBrute, Charset: charset, MinLen: minLen, MaxLen: maxLen}, nil
}

// Hybrid concatenates two sub-attacks; the right side varies fastest.
func Hybrid(left, right *domain.AttackSpec) (*domain.AttackSpec, error) {
	if left == nil || right == nil {
		return nil, errSyntax("", "hybrid needs two sub-attacks")
	}
	return &domain.AttackSpec{Mode: domain.ModeHybrid, Left: left, Right: right}, nil
}
