package rules

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intakeworks/docvalid/internal/model"
)

func legibleText() string {
	return strings.Repeat("passport document text ", 10)
}

func passportRecord(t *testing.T, expiry string) *model.DocumentRecord {
	t.Helper()
	rec := model.NewDocumentRecord("doc-1", "passport")
	rec.Fields["passport_number"] = model.ExtractedField{
		FieldName: "passport_number", NormalizedValue: "123456789", Confidence: 0.9,
	}
	rec.Fields["full_name"] = model.ExtractedField{
		FieldName: "full_name", NormalizedValue: "ANNA ERIKSSON", Confidence: 0.8,
	}
	rec.Fields["expiry_date"] = model.ExtractedField{
		FieldName: "expiry_date", NormalizedValue: expiry, Confidence: 0.9,
	}
	return rec
}

func futureDate(years int) string {
	return time.Now().UTC().AddDate(years, 0, 0).Format("2006-01-02")
}

func TestEvaluate_Pass(t *testing.T) {
	ev := NewEvaluator(nil, 0, 0)
	rec := passportRecord(t, futureDate(3))

	decision := ev.Evaluate(rec, EvalInput{RawText: legibleText()})
	assert.Equal(t, model.DecisionPass, decision)
	assert.Empty(t, rec.Issues)
	assert.True(t, rec.Finalized())
}

func TestEvaluate_LegibilityFailFast(t *testing.T) {
	ev := NewEvaluator(nil, 0, 0)
	rec := model.NewDocumentRecord("doc-1", "passport")

	decision := ev.Evaluate(rec, EvalInput{RawText: "short"})
	assert.Equal(t, model.DecisionFail, decision)
	require.Len(t, rec.Issues, 1)
	assert.Equal(t, "illegible_text", rec.Issues[0].Code)
	// Fail-fast: no required-field issues despite every field missing.
}

func TestEvaluate_LowOCRConfidence(t *testing.T) {
	ev := NewEvaluator(nil, 0, 0)
	rec := passportRecord(t, futureDate(3))

	decision := ev.Evaluate(rec, EvalInput{RawText: legibleText(), OCRConfidence: 0.2})
	assert.Equal(t, model.DecisionFail, decision)
	require.Len(t, rec.Issues, 1)
	assert.Equal(t, "low_ocr_confidence", rec.Issues[0].Code)
}

func TestEvaluate_Expired(t *testing.T) {
	ev := NewEvaluator(nil, 0, 0)
	rec := passportRecord(t, "2020-01-01")

	decision := ev.Evaluate(rec, EvalInput{RawText: legibleText()})
	assert.Equal(t, model.DecisionFail, decision)
	require.NotEmpty(t, rec.Issues)
	assert.Equal(t, "document_expired", rec.Issues[0].Code)
}

func TestEvaluate_InsufficientValidity(t *testing.T) {
	ev := NewEvaluator(nil, 0, 0)
	// Valid for three months, passport rules demand six.
	rec := passportRecord(t, time.Now().UTC().AddDate(0, 3, 0).Format("2006-01-02"))

	decision := ev.Evaluate(rec, EvalInput{RawText: legibleText()})
	assert.Equal(t, model.DecisionFail, decision)
	assert.Equal(t, "insufficient_validity", rec.Issues[0].Code)
}

func TestEvaluate_DurationOfStatusSkipsExpiry(t *testing.T) {
	sets := DefaultRuleSets()
	ev := NewEvaluator(sets, 0, 0)
	rec := model.NewDocumentRecord("doc-1", "i94_record")
	rec.Fields["i94_number"] = model.ExtractedField{
		FieldName: "i94_number", NormalizedValue: "12345678901", Confidence: 0.9,
	}
	rec.Fields["expiry_date"] = model.ExtractedField{
		FieldName: "expiry_date", NormalizedValue: "D/S", Confidence: 1.0,
	}

	decision := ev.Evaluate(rec, EvalInput{RawText: legibleText()})
	assert.Equal(t, model.DecisionPass, decision)
}

func TestEvaluate_MissingRequiredCollectsAll(t *testing.T) {
	ev := NewEvaluator(nil, 0, 0)
	rec := model.NewDocumentRecord("doc-1", "passport")
	rec.Fields["expiry_date"] = model.ExtractedField{
		FieldName: "expiry_date", NormalizedValue: futureDate(2), Confidence: 0.9,
	}

	decision := ev.Evaluate(rec, EvalInput{RawText: legibleText()})
	assert.Equal(t, model.DecisionFail, decision)

	missing := 0
	for _, issue := range rec.Issues {
		if issue.Code == "missing_required_field" {
			missing++
		}
	}
	// passport_number and full_name both reported, no short-circuit.
	assert.Equal(t, 2, missing)
}

func TestEvaluate_ExpiryAliasPriority(t *testing.T) {
	ev := NewEvaluator(nil, 0, 0)
	rec := passportRecord(t, futureDate(2))
	delete(rec.Fields, "expiry_date")
	rec.Fields["valid_until"] = model.ExtractedField{
		FieldName: "valid_until", NormalizedValue: "2019-01-01", Confidence: 0.9,
	}

	decision := ev.Evaluate(rec, EvalInput{RawText: legibleText()})
	assert.Equal(t, model.DecisionFail, decision)
	assert.Equal(t, "document_expired", rec.Issues[0].Code)
}

func TestEvaluate_NameMismatchIsWarning(t *testing.T) {
	ev := NewEvaluator(nil, 0, 0)
	rec := passportRecord(t, futureDate(3))

	decision := ev.Evaluate(rec, EvalInput{
		RawText:       legibleText(),
		ApplicantName: "João Pereira",
	})
	assert.Equal(t, model.DecisionAlert, decision)
	require.Len(t, rec.Issues, 1)
	assert.Equal(t, "name_mismatch", rec.Issues[0].Code)
	assert.Equal(t, model.SeverityImportant, rec.Issues[0].Severity)
}

func TestEvaluate_NameMatchWithDiacritics(t *testing.T) {
	ev := NewEvaluator(nil, 0, 0)
	rec := passportRecord(t, futureDate(3))
	rec.Fields["full_name"] = model.ExtractedField{
		FieldName: "full_name", NormalizedValue: "JOSE DA SILVA", Confidence: 0.8,
	}

	decision := ev.Evaluate(rec, EvalInput{
		RawText:       legibleText(),
		ApplicantName: "José da Silva",
	})
	assert.Equal(t, model.DecisionPass, decision)
	assert.Empty(t, rec.Issues)
}

func TestEvaluate_UnknownType(t *testing.T) {
	ev := NewEvaluator(nil, 0, 0)
	rec := model.NewDocumentRecord("doc-1", "mystery_document")

	decision := ev.Evaluate(rec, EvalInput{RawText: legibleText()})
	assert.Equal(t, model.DecisionAlert, decision)
	assert.Equal(t, "unknown_document_type", rec.Issues[0].Code)
}

// Decision invariant: zero issues is always PASS; any critical issue is
// always FAIL, whatever the ordering.
func TestFinalizeDecision_Invariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	severities := []model.Severity{
		model.SeverityCritical, model.SeverityImportant, model.SeverityOptional,
	}

	for trial := 0; trial < 200; trial++ {
		rec := model.NewDocumentRecord(fmt.Sprintf("doc-%d", trial), "passport")
		n := rng.Intn(6)
		hasCritical := false
		for i := 0; i < n; i++ {
			sev := severities[rng.Intn(len(severities))]
			if sev == model.SeverityCritical {
				hasCritical = true
			}
			rec.AddIssue(model.ValidationIssue{Code: "x", Severity: sev})
		}

		decision := rec.FinalizeDecision()
		if n == 0 {
			assert.Equal(t, model.DecisionPass, decision)
		}
		if hasCritical {
			assert.Equal(t, model.DecisionFail, decision)
		} else {
			assert.NotEqual(t, model.DecisionFail, decision)
		}
	}
}

func TestQualityScore(t *testing.T) {
	rec := passportRecord(t, futureDate(3))
	// Mean confidence (0.9+0.8+0.9)/3 rounds to 87.
	assert.Equal(t, 87, qualityScore(rec))

	rec.AddIssue(model.ValidationIssue{Code: "x", Severity: model.SeverityCritical})
	assert.Equal(t, 62, qualityScore(rec))

	empty := model.NewDocumentRecord("doc-2", "passport")
	assert.Equal(t, 0, qualityScore(empty))
}
