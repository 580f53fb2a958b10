package model

import (
	"time"

	"github.com/google/uuid"
)

// Decision is the per-document outcome of rule evaluation.
type Decision string

const (
	DecisionPass  Decision = "PASS"
	DecisionAlert Decision = "ALERT"
	DecisionFail  Decision = "FAIL"
)

// Severity classifies how strongly a validation issue affects a document.
type Severity string

const (
	SeverityCritical  Severity = "critical"
	SeverityImportant Severity = "important"
	SeverityOptional  Severity = "optional"
)

// ExtractedField is one extraction attempt for a (document, field) pair.
// Immutable once produced.
type ExtractedField struct {
	FieldName        string   `json:"field_name"`
	RawValue         string   `json:"raw_value"`
	NormalizedValue  string   `json:"normalized_value"`
	Confidence       float64  `json:"confidence"`
	ValidationMethod string   `json:"validation_method"`
	Issues           []string `json:"issues,omitempty"`
}

// ValidationIssue is a policy or format finding attached to a document.
type ValidationIssue struct {
	Code       string   `json:"code"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// DocumentRecord is the validated result for one processed document.
// The rule evaluator appends issues and finalizes the decision; after
// FinalizeDecision the record must not be mutated.
type DocumentRecord struct {
	DocumentID   string                    `json:"document_id"`
	DeclaredType string                    `json:"declared_type"`
	DetectedType string                    `json:"detected_type"`
	Fields       map[string]ExtractedField `json:"extracted_fields"`
	QualityScore int                       `json:"quality_score"`
	Decision     Decision                  `json:"decision"`
	Issues       []ValidationIssue         `json:"issues"`
	ProcessedAt  time.Time                 `json:"processed_at"`

	finalized bool
}

// NewDocumentRecord creates a record for a document. A fresh UUID is
// assigned when the caller supplies no document ID.
func NewDocumentRecord(documentID, declaredType string) *DocumentRecord {
	if documentID == "" {
		documentID = uuid.NewString()
	}
	return &DocumentRecord{
		DocumentID:   documentID,
		DeclaredType: declaredType,
		Fields:       make(map[string]ExtractedField),
		ProcessedAt:  time.Now().UTC(),
	}
}

// AddIssue appends a validation issue. Issues added after finalization
// are dropped.
func (r *DocumentRecord) AddIssue(issue ValidationIssue) {
	if r.finalized {
		return
	}
	r.Issues = append(r.Issues, issue)
}

// Finalized reports whether the decision has been frozen.
func (r *DocumentRecord) Finalized() bool { return r.finalized }

// FinalizeDecision derives the decision from accumulated issues and
// freezes the record: any critical issue means FAIL, any important issue
// means ALERT, otherwise PASS.
func (r *DocumentRecord) FinalizeDecision() Decision {
	if r.finalized {
		return r.Decision
	}
	decision := DecisionPass
	for _, issue := range r.Issues {
		switch issue.Severity {
		case SeverityCritical:
			decision = DecisionFail
		case SeverityImportant:
			if decision != DecisionFail {
				decision = DecisionAlert
			}
		}
	}
	r.Decision = decision
	r.finalized = true
	return decision
}

// HasCritical reports whether any attached issue is critical.
func (r *DocumentRecord) HasCritical() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// FindingKind distinguishes cross-document consistency findings.
type FindingKind string

const (
	FindingName FindingKind = "name"
	FindingDate FindingKind = "date"
)

// ConsistencyFinding reports a cross-document contradiction. It always
// references at least two distinct documents.
type ConsistencyFinding struct {
	Kind              FindingKind `json:"kind"`
	DocumentsInvolved []string    `json:"documents_involved"`
	Description       string      `json:"description"`
	Severity          Severity    `json:"severity"`
}
