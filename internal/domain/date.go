package domain

import "strings"

// DateLayoutTokens splits a date layout such as "DDMMYYYY" or "YYMMDD"
// into its ordered tokens. A layout is valid when it contains exactly one
// day token, one month token, and one year token (long or short form).
func DateLayoutTokens(layout string) ([]string, bool) {
	var tokens []string
	var day, month, year int

	rest := layout
	for rest != "" {
		switch {
		case strings.HasPrefix(rest, "YYYY"):
			tokens = append(tokens, "YYYY")
			year++
			rest = rest[4:]
		case strings.HasPrefix(rest, "YY"):
			tokens = append(tokens, "YY")
			year++
			rest = rest[2:]
		case strings.HasPrefix(rest, "DD"):
			tokens = append(tokens, "DD")
			day++
			rest = rest[2:]
		case strings.HasPrefix(rest, "MM"):
			tokens = append(tokens, "MM")
			month++
			rest = rest[2:]
		default:
			return nil, false
		}
	}

	if day != 1 || month != 1 || year != 1 {
		return nil, false
	}
	return tokens, true
}
