package rules

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer strips combining marks after NFD decomposition, so
// "José Çelik" folds to "Jose Celik" before comparison.
var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// FoldName strips diacritics and uppercases a name for matching. OCR
// output and typed applicant names rarely agree on accents.
func FoldName(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToUpper(strings.TrimSpace(folded))
}

// nameTokens splits a folded name into its word tokens.
func nameTokens(s string) []string {
	return strings.FieldsFunc(FoldName(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// nameMatches reports whether the first and last tokens of the applicant
// name both appear in the haystack (extracted text or a detected name
// field), after folding both sides.
func nameMatches(applicantName, haystack string) bool {
	tokens := nameTokens(applicantName)
	if len(tokens) == 0 {
		return false
	}
	folded := FoldName(haystack)
	first, last := tokens[0], tokens[len(tokens)-1]
	return strings.Contains(folded, first) && strings.Contains(folded, last)
}
