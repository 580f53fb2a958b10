package model

// CaseContext carries the applicant-level context an engine call needs.
// All context travels explicitly; the engine holds no global state.
type CaseContext struct {
	CaseID        string `json:"case_id"`
	VisaType      string `json:"visa_type"`
	ApplicantName string `json:"applicant_name"`
	Nationality   string `json:"nationality"`
}

// CaseStatus classifies the aggregate state of a case's document set.
type CaseStatus string

const (
	// CaseRequiresCorrection: at least one document failed validation.
	CaseRequiresCorrection CaseStatus = "requires_correction"
	// CaseIncomplete: a required document type is missing.
	CaseIncomplete CaseStatus = "incomplete"
	// CaseAcceptableWithWarnings: complete and valid, but with warnings.
	CaseAcceptableWithWarnings CaseStatus = "acceptable_with_warnings"
	// CaseSatisfactory: complete, valid, no warnings.
	CaseSatisfactory CaseStatus = "satisfactory"
)

// CaseAnalysis is the case-level aggregate over all document records.
type CaseAnalysis struct {
	Status          CaseStatus `json:"status"`
	CoverageScore   float64    `json:"coverage_score"`
	MissingRequired []string   `json:"missing_required,omitempty"`
	Warnings        []string   `json:"warnings,omitempty"`
}
