package consistency

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/intakeworks/docvalid/internal/model"
)

// nameSimilarityThreshold is the minimum Jaccard overlap of two name
// token sets before the pair is flagged.
const nameSimilarityThreshold = 0.8

// nameFieldNames are the extracted fields treated as name-like.
var nameFieldNames = []string{"full_name", "surname", "given_names", "name"}

type nameValue struct {
	documentID string
	raw        string
	tokens     map[string]struct{}
}

// checkNames collects every name-like field across the documents and
// flags every pair whose token-set similarity falls below the threshold.
// All failing pairs are returned, not just the first.
func checkNames(records []*model.DocumentRecord) CheckResult {
	var values []nameValue
	for _, rec := range records {
		for _, fieldName := range nameFieldNames {
			f, ok := rec.Fields[fieldName]
			if !ok || f.NormalizedValue == "" {
				continue
			}
			values = append(values, nameValue{
				documentID: rec.DocumentID,
				raw:        f.NormalizedValue,
				tokens:     nameTokenSet(f.NormalizedValue),
			})
		}
	}

	if len(values) < 2 {
		return CheckResult{Status: StatusInsufficientData}
	}

	var findings []model.ConsistencyFinding
	for i := 0; i < len(values); i++ {
		for j := i + 1; j < len(values); j++ {
			a, b := values[i], values[j]
			if a.documentID == b.documentID {
				continue
			}
			sim := jaccard(a.tokens, b.tokens)
			if sim >= nameSimilarityThreshold {
				continue
			}
			findings = append(findings, model.ConsistencyFinding{
				Kind:              model.FindingName,
				DocumentsInvolved: []string{a.documentID, b.documentID},
				Description: fmt.Sprintf("name %q does not match %q (similarity %.2f)",
					a.raw, b.raw, sim),
				Severity: model.SeverityImportant,
			})
		}
	}

	if len(findings) > 0 {
		return CheckResult{Status: StatusInconsistent, Findings: findings}
	}
	return CheckResult{Status: StatusConsistent}
}

// nameTokenSet lower-cases, strips punctuation, and splits a name into
// its token set.
func nameTokenSet(s string) map[string]struct{} {
	tokens := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// jaccard is |A∩B| / |A∪B|. A containment shortcut keeps
// "CARLOS SILVA" consistent with "Carlos Eduardo Silva": when one set
// fully contains the other, overlap is measured against the smaller set.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	smaller := len(a)
	if len(b) < smaller {
		smaller = len(b)
	}
	if inter == smaller {
		return 1.0
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
