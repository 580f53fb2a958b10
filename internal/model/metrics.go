package model

import "time"

// KPITargets holds the process-wide extraction quality targets. Read-only
// after initialization; shared by all metrics computations.
type KPITargets struct {
	ClassificationF1       float64 `json:"classification_f1"`
	IdentityExactMatch     float64 `json:"identity_exact_match"`
	DatesExactMatch        float64 `json:"dates_exact_match"`
	FormattedNumbersExact  float64 `json:"formatted_numbers_exact_match"`
	FalseFailRate          float64 `json:"false_fail_rate"`
	ProcessingTimeTargetMS int64   `json:"processing_time_target_ms"`
}

// DefaultKPITargets returns the fixed target table.
func DefaultKPITargets() KPITargets {
	return KPITargets{
		ClassificationF1:       0.95,
		IdentityExactMatch:     0.98,
		DatesExactMatch:        0.97,
		FormattedNumbersExact:  0.995,
		FalseFailRate:          0.01,
		ProcessingTimeTargetMS: 5000,
	}
}

// FieldExtractionResult records whether a single field extraction matched
// ground truth exactly, for KPI accounting.
type FieldExtractionResult struct {
	FieldName  string  `json:"field_name"`
	ExactMatch bool    `json:"exact_match"`
	Confidence float64 `json:"confidence"`
}

// MetricsSample is one document's contribution to the quality log.
// Appended once, never mutated; windowing is a read-time filter.
type MetricsSample struct {
	DocumentID            string                  `json:"document_id"`
	DocType               string                  `json:"doc_type"`
	ClassificationCorrect bool                    `json:"classification_correct"`
	FieldExtractions      []FieldExtractionResult `json:"field_extractions"`
	Decision              Decision                `json:"decision"`
	FlaggedForReview      bool                    `json:"flagged_for_review"`
	ProcessingTimeMS      int64                   `json:"processing_time_ms"`
	Timestamp             time.Time               `json:"timestamp"`
}
