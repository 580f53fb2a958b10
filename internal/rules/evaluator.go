package rules

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/intakeworks/docvalid/internal/model"
)

// EvalInput carries the raw-text and context signals the evaluator needs
// beyond the extracted fields.
type EvalInput struct {
	RawText       string
	OCRConfidence float64 // overall OCR confidence, 0..1; <=0 means unreported
	ApplicantName string
}

// Evaluator applies per-document-type rule sets.
type Evaluator struct {
	ruleSets         map[string]RuleSet
	minTextLength    int
	minOCRConfidence float64
}

// NewEvaluator builds an evaluator over the given rule table. Zero gate
// thresholds fall back to the defaults.
func NewEvaluator(ruleSets map[string]RuleSet, minTextLength int, minOCRConfidence float64) *Evaluator {
	if ruleSets == nil {
		ruleSets = DefaultRuleSets()
	}
	if minTextLength <= 0 {
		minTextLength = DefaultMinTextLength
	}
	if minOCRConfidence <= 0 {
		minOCRConfidence = DefaultMinOCRConfidence
	}
	return &Evaluator{
		ruleSets:         ruleSets,
		minTextLength:    minTextLength,
		minOCRConfidence: minOCRConfidence,
	}
}

// Evaluate runs the rule checks for the record's declared type, appends
// issues, computes the quality score, and finalizes the decision.
// Order: legibility gate (fail-fast), expiry, required fields (collected,
// not short-circuited), name match (warning only).
func (ev *Evaluator) Evaluate(rec *model.DocumentRecord, in EvalInput) model.Decision {
	rs, known := ev.ruleSets[rec.DeclaredType]
	if !known {
		rec.AddIssue(model.ValidationIssue{
			Code:       "unknown_document_type",
			Severity:   model.SeverityImportant,
			Message:    fmt.Sprintf("no rule set for document type %q", rec.DeclaredType),
			Suggestion: "verify the declared document type",
		})
	}

	// Legibility gate. Downstream checks are meaningless on illegible
	// input, so this is the only fail-fast path.
	if len(in.RawText) < ev.minTextLength {
		rec.AddIssue(model.ValidationIssue{
			Code:       "illegible_text",
			Severity:   model.SeverityCritical,
			Message:    fmt.Sprintf("extracted text too short (%d chars, minimum %d)", len(in.RawText), ev.minTextLength),
			Suggestion: "rescan the document at higher quality",
		})
		return ev.finalize(rec)
	}
	if in.OCRConfidence > 0 && in.OCRConfidence < ev.minOCRConfidence {
		rec.AddIssue(model.ValidationIssue{
			Code:       "low_ocr_confidence",
			Severity:   model.SeverityCritical,
			Message:    fmt.Sprintf("OCR confidence %.2f below minimum %.2f", in.OCRConfidence, ev.minOCRConfidence),
			Suggestion: "rescan the document at higher quality",
		})
		return ev.finalize(rec)
	}

	if known {
		if rs.ExpiryCheck {
			ev.checkExpiry(rec, rs)
		}
		ev.checkRequired(rec, rs)
		if rs.NameMatch && in.ApplicantName != "" {
			ev.checkName(rec, in)
		}
	}

	return ev.finalize(rec)
}

func (ev *Evaluator) finalize(rec *model.DocumentRecord) model.Decision {
	rec.QualityScore = qualityScore(rec)
	decision := rec.FinalizeDecision()
	zap.L().Debug("document evaluated",
		zap.String("component", "rules"),
		zap.String("document_id", rec.DocumentID),
		zap.String("decision", string(decision)),
		zap.Int("quality_score", rec.QualityScore),
	)
	return decision
}

// checkExpiry locates an expiry-like field by alias priority and fails
// the document when it is expired or under the type's minimum remaining
// validity. The D/S marker carries no calendar expiry and passes.
func (ev *Evaluator) checkExpiry(rec *model.DocumentRecord, rs RuleSet) {
	var value string
	found := false
	for _, alias := range expiryAliases {
		if f, ok := rec.Fields[alias]; ok && f.NormalizedValue != "" {
			value = f.NormalizedValue
			found = true
			break
		}
	}
	if !found {
		rec.AddIssue(model.ValidationIssue{
			Code:       "expiry_not_found",
			Severity:   model.SeverityImportant,
			Message:    "no expiry date could be located",
			Suggestion: "confirm the document shows an expiration date",
		})
		return
	}
	if value == "D/S" {
		return
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		rec.AddIssue(model.ValidationIssue{
			Code:     "expiry_unparseable",
			Severity: model.SeverityImportant,
			Message:  fmt.Sprintf("expiry value %q is not a date", value),
		})
		return
	}

	now := time.Now().UTC()
	if t.Before(now) {
		rec.AddIssue(model.ValidationIssue{
			Code:       "document_expired",
			Severity:   model.SeverityCritical,
			Message:    fmt.Sprintf("document expired on %s", value),
			Suggestion: "obtain a renewed document",
		})
		return
	}
	if rs.MinValidityMonths > 0 && t.Before(now.AddDate(0, rs.MinValidityMonths, 0)) {
		rec.AddIssue(model.ValidationIssue{
			Code:     "insufficient_validity",
			Severity: model.SeverityCritical,
			Message: fmt.Sprintf("document expires %s, less than %d months remaining",
				value, rs.MinValidityMonths),
			Suggestion: "renew the document before filing",
		})
	}
}

// checkRequired collects an issue for every absent or empty required
// field; it never short-circuits.
func (ev *Evaluator) checkRequired(rec *model.DocumentRecord, rs RuleSet) {
	for _, name := range rs.RequiredFields {
		f, ok := rec.Fields[name]
		if !ok || f.NormalizedValue == "" {
			rec.AddIssue(model.ValidationIssue{
				Code:       "missing_required_field",
				Severity:   model.SeverityCritical,
				Message:    fmt.Sprintf("required field %q was not extracted", name),
				Suggestion: "check the scan covers the full document",
			})
		}
	}
}

// checkName requires the applicant's first and last name tokens to both
// appear in the extracted text or detected name field. Mismatch is a
// warning, not a hard failure.
func (ev *Evaluator) checkName(rec *model.DocumentRecord, in EvalInput) {
	haystack := in.RawText
	if f, ok := rec.Fields["full_name"]; ok {
		haystack += "\n" + f.NormalizedValue
	}
	if nameMatches(in.ApplicantName, haystack) {
		return
	}
	rec.AddIssue(model.ValidationIssue{
		Code:       "name_mismatch",
		Severity:   model.SeverityImportant,
		Message:    fmt.Sprintf("applicant name %q not found on document", in.ApplicantName),
		Suggestion: "confirm the document belongs to the applicant",
	})
}

// qualityScore derives the 0-100 document quality score: mean field
// confidence scaled to 100, minus 25 per critical and 10 per important
// issue, clamped.
func qualityScore(rec *model.DocumentRecord) int {
	score := 0.0
	if len(rec.Fields) > 0 {
		sum := 0.0
		for _, f := range rec.Fields {
			sum += f.Confidence
		}
		score = 100 * sum / float64(len(rec.Fields))
	}
	for _, issue := range rec.Issues {
		switch issue.Severity {
		case model.SeverityCritical:
			score -= 25
		case model.SeverityImportant:
			score -= 10
		}
	}
	return int(math.Round(math.Max(0, math.Min(100, score))))
}
