package parser

import (
	"strconv"
	"strings"
	"unicode"
)

// normaliseInput lowercases raw and keeps letters and digits. Separators
// (including the underscores of catalog keys) collapse to single spaces.
func normaliseInput(raw string) string {
	mapped := strings.Map(func(r rune) rune {
		r = unicode.ToLower(r)
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case unicode.IsSpace(r), r == '-', r == '_', r == '/', r == '\'':
			return ' '
		default:
			return -1
		}
	}, raw)
	return strings.Join(strings.Fields(mapped), " ")
}

var (
	pronouns = map[string]bool{"it": true, "that": true, "them": true, "this": true, "those": true}
	fillers  = map[string]bool{
		"a": true, "an": true, "the": true, "some": true, "please": true,
		"in": true, "on": true, "into": true, "at": true,
		"plot": true, "slot": true, "field": true, "number": true,
	}
)

// plotNumber reports whether token is a plot number. Negative numbers are not.
func plotNumber(token string) (int, bool) {
	n, err := strconv.Atoi(token)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// takePlot removes the first plot number from tokens.
func takePlot(tokens []string) ([]string, *int) {
	rest := make([]string, 0, len(tokens))
	var plot *int
	for _, tok := range tokens {
		if plot == nil {
			if n, ok := plotNumber(tok); ok {
				plot = &n
				continue
			}
		}
		rest = append(rest, tok)
	}
	return rest, plot
}

func hasWord(normalised, word string) bool {
	return strings.Contains(" "+normalised+" ", " "+word+" ")
}
