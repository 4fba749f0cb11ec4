package mapper

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripDiacritics removes combining marks, turning "miércoles" into "miercoles".
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Fold canonicalizes free text for comparisons: diacritics stripped, case
// folded and whitespace collapsed.
func Fold(s string) string {
	s = cases.Fold().String(StripDiacritics(s))
	return strings.Join(strings.Fields(s), " ")
}

// EqualFold reports whether a and b are the same label ignoring case,
// accents and surrounding whitespace.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// DedupeLabels trims labels, drops empty ones and keeps the first occurrence
// of every folded label.
func DedupeLabels(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		key := Fold(label)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, label)
	}
	return out
}
