// Package consistency cross-checks extracted fields between the
// documents of one case: name agreement by token-set similarity and
// chronological invariants between date buckets.
package consistency

import (
	"github.com/intakeworks/docvalid/internal/model"
)

// Status summarizes one consistency check over a document set.
type Status string

const (
	// StatusInsufficientData: fewer than two qualifying values existed.
	StatusInsufficientData Status = "insufficient_data"
	StatusConsistent       Status = "consistent"
	StatusInconsistent     Status = "inconsistent"
)

// CheckResult pairs a status with the full list of findings.
type CheckResult struct {
	Status   Status                     `json:"status"`
	Findings []model.ConsistencyFinding `json:"findings,omitempty"`
}

// Report is the combined output of all cross-document checks for a case.
type Report struct {
	Names CheckResult `json:"names"`
	Dates CheckResult `json:"dates"`
}

// Check runs every cross-document check over the case's records.
// It requires at least two records to produce anything other than
// insufficient_data.
func Check(records []*model.DocumentRecord) *Report {
	return &Report{
		Names: checkNames(records),
		Dates: checkDates(records),
	}
}

// Findings flattens the report into a single finding list.
func (r *Report) Findings() []model.ConsistencyFinding {
	out := append([]model.ConsistencyFinding{}, r.Names.Findings...)
	return append(out, r.Dates.Findings...)
}

// Consistent reports whether no check found a contradiction.
func (r *Report) Consistent() bool {
	return r.Names.Status != StatusInconsistent && r.Dates.Status != StatusInconsistent
}
