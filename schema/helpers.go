package schema

import (
	"strings"
	"unicode"
)

// NormalizeName trims surrounding punctuation and collapses inner whitespace,
// so "  Ana   Horvat;" and "Ana Horvat" refer to the same worker.
func NormalizeName(name string) string {
	parts := strings.Fields(name)
	var cleaned []string
	for _, p := range parts {
		cp := strings.TrimFunc(p, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '-' && r != '\'' && r != '.'
		})
		if cp != "" {
			cleaned = append(cleaned, cp)
		}
	}
	return strings.Join(cleaned, " ")
}

// NormalizeNames normalizes every name and drops empty and duplicate entries,
// keeping first-appearance order.
func NormalizeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	var out []string
	for _, n := range names {
		nn := NormalizeName(n)
		if nn == "" {
			continue
		}
		if _, ok := seen[nn]; ok {
			continue
		}
		seen[nn] = struct{}{}
		out = append(out, nn)
	}
	return out
}
