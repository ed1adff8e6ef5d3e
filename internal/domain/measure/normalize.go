package measure

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	parentheticalRe = regexp.MustCompile(`\(.*\)`)
	disallowedRe    = regexp.MustCompile(`[^a-z0-9ñ ]`)

	// NFD decomposition followed by removal of combining marks turns
	// "plátano" into "platano".
	stripMarks = transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
)

// NormalizeName canonicalizes an ingredient name into a matching key.
// The key is never shown to the user; it only decides whether two entries
// refer to the same food item. The function is idempotent.
func NormalizeName(name string) string {
	if name == "" {
		return ""
	}
	s := strings.ToLower(name)
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}
	s = parentheticalRe.ReplaceAllString(s, "")
	s = disallowedRe.ReplaceAllString(s, "")
	// Crude singularization: one trailing "s", then one trailing "es".
	// The order is load-bearing ("tomates" must become "tomate", not
	// "tomat") and is not re-applied.
	s = strings.TrimSuffix(s, "s")
	s = strings.TrimSuffix(s, "es")
	return strings.TrimSpace(s)
}

// SameItem reports whether two normalized names refer to the same
// ingredient: equality or either-direction substring containment.
// The containment rule is deliberately permissive so that "tomate" and
// "tomate pera" merge; it also means very short names can conflate
// unrelated items ("te" matches "aceite"). That looseness is accepted
// product behavior.
func SameItem(a, b string) bool {
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}
