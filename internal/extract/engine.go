package extract

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/intakeworks/docvalid/internal/model"
	"github.com/intakeworks/docvalid/internal/validate"
)

// Confidence blend weights. A candidate's final confidence is a fixed
// weighted mix of pattern specificity, document topic relevance, and the
// field validator's own confidence.
const (
	patternBlendWeight   = 0.6
	contextBlendWeight   = 0.2
	validatorBlendWeight = 0.2
)

// Result is the full extraction output for one document.
type Result struct {
	// Fields holds the winning candidate per field name.
	Fields map[string]model.ExtractedField
	// Candidates holds every deduplicated candidate per field, sorted by
	// confidence descending.
	Candidates map[string][]model.ExtractedField
	// MRZ is set when a machine-readable zone was found and verified.
	MRZ *validate.MRZData
	// DetectedType is the best-scoring known document type, or "unknown".
	DetectedType string
}

// Engine applies the field catalog to raw document text.
type Engine struct {
	catalog map[FieldKind]FieldSpec
}

// NewEngine builds an engine over the built-in catalog.
func NewEngine() *Engine {
	return &Engine{catalog: Catalog()}
}

// Extract runs every catalog pattern over the text, scores and
// deduplicates candidates, scans for an MRZ block, and detects the
// document type.
func (e *Engine) Extract(text string, ctx Context) *Result {
	res := &Result{
		Fields:     make(map[string]model.ExtractedField),
		Candidates: make(map[string][]model.ExtractedField),
	}
	lower := strings.ToLower(text)

	for kind, spec := range e.catalog {
		topic := contextScore(lower, spec.Keywords)
		candidates := e.extractField(text, string(kind), spec, topic, ctx)
		if len(candidates) == 0 {
			continue
		}
		res.Candidates[string(kind)] = candidates
		res.Fields[string(kind)] = candidates[0]
	}

	if mrz := ScanMRZ(text); mrz != nil {
		res.MRZ = mrz
		e.backfillFromMRZ(res, mrz, ctx)
	}

	res.DetectedType = DetectType(lower)
	zap.L().Debug("extraction complete",
		zap.String("component", "extract"),
		zap.Int("fields", len(res.Fields)),
		zap.Bool("mrz", res.MRZ != nil),
		zap.String("detected_type", res.DetectedType),
	)
	return res
}

// extractField applies one field spec: every pattern, every match,
// blended confidence, then dedup by normalized value keeping the
// highest-confidence occurrence.
func (e *Engine) extractField(text, name string, spec FieldSpec, topic float64, ctx Context) []model.ExtractedField {
	var candidates []model.ExtractedField

	for i, re := range spec.Patterns {
		weight := spec.Weights[i]
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			raw := strings.TrimSpace(m[len(m)-1])
			if raw == "" {
				continue
			}
			vres := spec.Validate(raw, ctx)
			normalized := vres.Normalized
			if normalized == "" {
				normalized = raw
			}
			confidence := patternBlendWeight*weight +
				contextBlendWeight*topic +
				validatorBlendWeight*vres.Confidence

			field := model.ExtractedField{
				FieldName:        name,
				RawValue:         raw,
				NormalizedValue:  normalized,
				Confidence:       clamp01(confidence),
				ValidationMethod: "pattern+validator",
			}
			if !vres.Valid && vres.Message != "" {
				field.Issues = append(field.Issues, vres.Message)
			}
			candidates = append(candidates, field)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})

	seen := make(map[string]struct{}, len(candidates))
	deduped := candidates[:0]
	for _, c := range candidates {
		if _, dup := seen[c.NormalizedValue]; dup {
			continue
		}
		seen[c.NormalizedValue] = struct{}{}
		deduped = append(deduped, c)
	}
	return deduped
}

// backfillFromMRZ feeds verified MRZ values into the field map. The MRZ
// passed all four check digits, so its values outrank pattern matches
// unless a pattern candidate is already more confident.
func (e *Engine) backfillFromMRZ(res *Result, mrz *validate.MRZData, ctx Context) {
	name := strings.TrimSpace(mrz.GivenNames + " " + mrz.Surname)
	backfill := map[string]string{
		string(FieldPassportNumber): mrz.DocumentNumber,
		string(FieldBirthDate):      mrz.BirthDate,
		string(FieldExpiryDate):     mrz.ExpiryDate,
		string(FieldNationality):    mrz.Nationality,
		string(FieldFullName):       name,
	}
	for fieldName, value := range backfill {
		if value == "" {
			continue
		}
		field := model.ExtractedField{
			FieldName:        fieldName,
			RawValue:         value,
			NormalizedValue:  value,
			Confidence:       0.95,
			ValidationMethod: "mrz_td3",
		}
		if existing, ok := res.Fields[fieldName]; !ok || existing.Confidence < field.Confidence {
			res.Fields[fieldName] = field
		}
		res.Candidates[fieldName] = append(res.Candidates[fieldName], field)
	}
}

// ScanMRZ looks for two adjacent MRZ-shaped lines anywhere in the text
// and returns the parsed zone when the check digits verify.
func ScanMRZ(text string) *validate.MRZData {
	lines := strings.Split(text, "\n")
	for i := 0; i+1 < len(lines); i++ {
		l1 := strings.TrimSpace(lines[i])
		l2 := strings.TrimSpace(lines[i+1])
		if !validate.LooksLikeMRZLine(l1) || !validate.LooksLikeMRZLine(l2) {
			continue
		}
		if mrz, ok := validate.ParseMRZTD3(l1, l2); ok {
			return mrz
		}
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
