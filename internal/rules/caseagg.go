package rules

import (
	"fmt"
	"sort"

	"github.com/intakeworks/docvalid/internal/model"
)

// AnalyzeCase aggregates all of a case's document records into one
// case-level analysis. Coverage is the fraction of the visa type's
// required document types that are present and not failed. Status
// priority, strict: requires_correction, incomplete,
// acceptable_with_warnings, satisfactory.
func AnalyzeCase(records []*model.DocumentRecord, visaType string) *model.CaseAnalysis {
	analysis := &model.CaseAnalysis{CoverageScore: 1.0}

	required := RequiredDocTypes()[visaType]
	validTypes := make(map[string]bool, len(records))
	anyFailed := false
	anyWarning := false

	for _, rec := range records {
		if rec.Decision == model.DecisionFail {
			anyFailed = true
			continue
		}
		if rec.Decision == model.DecisionAlert {
			anyWarning = true
		}
		validTypes[rec.DeclaredType] = true
		for _, issue := range rec.Issues {
			if issue.Severity == model.SeverityImportant {
				analysis.Warnings = append(analysis.Warnings,
					fmt.Sprintf("%s: %s", rec.DeclaredType, issue.Message))
			}
		}
	}

	if len(required) > 0 {
		present := 0
		for _, docType := range required {
			if validTypes[docType] {
				present++
			} else {
				analysis.MissingRequired = append(analysis.MissingRequired, docType)
			}
		}
		analysis.CoverageScore = float64(present) / float64(len(required))
		sort.Strings(analysis.MissingRequired)
	} else if visaType != "" {
		analysis.Warnings = append(analysis.Warnings,
			fmt.Sprintf("no document checklist defined for case type %q", visaType))
	}

	switch {
	case anyFailed:
		analysis.Status = model.CaseRequiresCorrection
	case len(analysis.MissingRequired) > 0:
		analysis.Status = model.CaseIncomplete
	case anyWarning || len(analysis.Warnings) > 0:
		analysis.Status = model.CaseAcceptableWithWarnings
	default:
		analysis.Status = model.CaseSatisfactory
	}
	return analysis
}
