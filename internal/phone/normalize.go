// Package phone turns free-form user text into canonical Syrian numbers and
// classifies them against the national numbering plan.
package phone

import (
	"strings"
	"unicode"
)

const (
	// CountryCode is the Syrian calling code without the leading plus.
	CountryCode = "963"
	// CountryPrefix is the canonical international prefix.
	CountryPrefix = "+" + CountryCode
)

// Normalizer rewrites local dialing forms into "+<code><subscriber>".
type Normalizer struct {
	prefix string
	code   string
}

// NewNormalizer builds a normalizer for the given international prefix, e.g. "+963".
func NewNormalizer(prefix string) *Normalizer {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = CountryPrefix
	}
	if !strings.HasPrefix(prefix, "+") {
		prefix = "+" + prefix
	}
	return &Normalizer{prefix: prefix, code: strings.TrimPrefix(prefix, "+")}
}

var defaultNormalizer = NewNormalizer(CountryPrefix)

// Normalize rewrites raw using the Syrian prefix. It never fails; input that
// matches no rule is returned cleaned but otherwise untouched.
func Normalize(raw string) string {
	return defaultNormalizer.Normalize(raw)
}

// Normalize applies the prefix rules in order, first match wins.
func (n *Normalizer) Normalize(raw string) string {
	s := clean(raw)
	switch {
	case len(s) == 10 && strings.HasPrefix(s, "09"):
		return n.prefix + s[1:]
	case len(s) == 9 && strings.HasPrefix(s, "9"):
		return n.prefix + s
	case len(s) == 10 && strings.HasPrefix(s, "0"):
		// second digit is not 9 here, the mobile case matched above
		return n.prefix + s[1:]
	case strings.HasPrefix(s, n.prefix):
		return s
	case strings.HasPrefix(s, n.code):
		return "+" + s
	default:
		return s
	}
}

func clean(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		switch r {
		case '-', '(', ')':
			return -1
		}
		return r
	}, raw)
}
