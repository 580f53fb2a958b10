// Package docproc wires the extraction engine, the rule evaluator, the
// consistency checker, and the metrics log into the document processing
// entry points the surrounding application calls.
package docproc

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/intakeworks/docvalid/internal/config"
	"github.com/intakeworks/docvalid/internal/consistency"
	"github.com/intakeworks/docvalid/internal/extract"
	"github.com/intakeworks/docvalid/internal/metrics"
	"github.com/intakeworks/docvalid/internal/model"
	"github.com/intakeworks/docvalid/internal/rules"
	"github.com/intakeworks/docvalid/internal/validate"
)

// DocumentInput is one document's raw material from the OCR collaborator.
type DocumentInput struct {
	DocumentID    string  `json:"document_id"`
	DeclaredType  string  `json:"declared_type"`
	RawText       string  `json:"raw_text"`
	OCRConfidence float64 `json:"ocr_confidence,omitempty"`
	ByteSize      int64   `json:"byte_size,omitempty"`
	MimeType      string  `json:"mime_type,omitempty"`
	// GroundTruth optionally maps field names to known-correct values,
	// for calibration runs that feed the exact-match KPIs.
	GroundTruth map[string]string `json:"ground_truth,omitempty"`
}

// ProcessedDocument is the per-document output bundle.
type ProcessedDocument struct {
	Record   *model.DocumentRecord  `json:"record"`
	Policy   []extract.PolicyResult `json:"policy,omitempty"`
	MRZ      *validate.MRZData      `json:"mrz,omitempty"`
	Duration time.Duration          `json:"-"`
}

// CaseResult is the case-level output bundle.
type CaseResult struct {
	Documents   []*ProcessedDocument       `json:"documents"`
	Analysis    *model.CaseAnalysis        `json:"analysis"`
	Consistency *consistency.Report        `json:"consistency"`
	Findings    []model.ConsistencyFinding `json:"findings,omitempty"`
}

// Processor is the engine facade. All components it wires are pure and
// synchronous; only the metrics log carries shared state.
type Processor struct {
	engine         *extract.Engine
	evaluator      *rules.Evaluator
	aggregator     *metrics.Aggregator
	policyFields   []extract.PolicyField
	preferDayFirst bool
	maxConcurrent  int
}

// NewProcessor builds a processor from configuration, an optional rule
// table (nil means the built-in table), and optional policy fields.
func NewProcessor(cfg config.EngineConfig, ruleSets map[string]rules.RuleSet, policyFields []extract.PolicyField, aggregator *metrics.Aggregator) *Processor {
	if aggregator == nil {
		aggregator = metrics.NewAggregator(metrics.NewSampleLog())
	}
	maxConcurrent := cfg.MaxConcurrentDocuments
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &Processor{
		engine:         extract.NewEngine(),
		evaluator:      rules.NewEvaluator(ruleSets, cfg.MinTextLength, cfg.MinOCRConfidence),
		aggregator:     aggregator,
		policyFields:   policyFields,
		preferDayFirst: cfg.PreferDayFirstDates,
		maxConcurrent:  maxConcurrent,
	}
}

// Aggregator exposes the KPI aggregator for report generation.
func (p *Processor) Aggregator() *metrics.Aggregator { return p.aggregator }

// ProcessDocument runs the full per-document flow: extraction,
// validation, rule evaluation, quality scoring, and metrics recording.
// The result is always total; malformed input yields a rejected record,
// never an error.
func (p *Processor) ProcessDocument(ctx context.Context, in DocumentInput, caseCtx model.CaseContext) *ProcessedDocument {
	start := time.Now()

	extraction := p.engine.Extract(in.RawText, extract.Context{
		Nationality:    caseCtx.Nationality,
		PreferDayFirst: p.preferDayFirst,
	})

	rec := model.NewDocumentRecord(in.DocumentID, in.DeclaredType)
	rec.DetectedType = extraction.DetectedType
	for name, field := range extraction.Fields {
		rec.Fields[name] = field
	}

	var policy []extract.PolicyResult
	if len(p.policyFields) > 0 {
		policy = p.engine.ExtractPolicy(in.RawText, p.policyFields, extract.Context{
			Nationality: caseCtx.Nationality,
		})
		for _, pr := range policy {
			if pr.Field.Required && !pr.Satisfied {
				rec.AddIssue(model.ValidationIssue{
					Code:       "missing_policy_field",
					Severity:   model.SeverityImportant,
					Message:    "policy field " + pr.Field.Name + " was not found",
					Suggestion: pr.Field.Description,
				})
			}
		}
	}

	decision := p.evaluator.Evaluate(rec, rules.EvalInput{
		RawText:       in.RawText,
		OCRConfidence: in.OCRConfidence,
		ApplicantName: caseCtx.ApplicantName,
	})

	elapsed := time.Since(start)
	p.recordSample(in, rec, decision, elapsed)

	zap.L().Info("document processed",
		zap.String("component", "docproc"),
		zap.String("document_id", rec.DocumentID),
		zap.String("declared_type", rec.DeclaredType),
		zap.String("detected_type", rec.DetectedType),
		zap.String("decision", string(decision)),
		zap.Duration("elapsed", elapsed),
	)

	return &ProcessedDocument{
		Record:   rec,
		Policy:   policy,
		MRZ:      extraction.MRZ,
		Duration: elapsed,
	}
}

// recordSample appends this document's metrics sample. Exact-match
// results are recorded only when the caller supplied ground truth; FAIL
// decisions are flagged for review, which is the documented proxy the
// false-fail KPI relies on.
func (p *Processor) recordSample(in DocumentInput, rec *model.DocumentRecord, decision model.Decision, elapsed time.Duration) {
	sample := model.MetricsSample{
		DocumentID:            rec.DocumentID,
		DocType:               rec.DeclaredType,
		ClassificationCorrect: rec.DetectedType == rec.DeclaredType,
		Decision:              decision,
		FlaggedForReview:      decision == model.DecisionFail,
		ProcessingTimeMS:      elapsed.Milliseconds(),
		Timestamp:             time.Now().UTC(),
	}
	for name, truth := range in.GroundTruth {
		field, ok := rec.Fields[name]
		sample.FieldExtractions = append(sample.FieldExtractions, model.FieldExtractionResult{
			FieldName:  name,
			ExactMatch: ok && field.NormalizedValue == truth,
			Confidence: field.Confidence,
		})
	}
	p.aggregator.Log().Append(sample)
}
