package docproc

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intakeworks/docvalid/internal/config"
	"github.com/intakeworks/docvalid/internal/model"
)

const noticeText = `U.S. CITIZENSHIP AND IMMIGRATION SERVICES
I-797 NOTICE OF ACTION
Receipt Number: SRC1234567890
Case Type: I129 PETITION FOR NONIMMIGRANT WORKER
Beneficiary: ANNA MARIA ERIKSSON
Notice Date: Jan 5, 2024
`

func h1bInputs() []DocumentInput {
	return []DocumentInput{
		{DocumentID: "passport-1", DeclaredType: "passport", RawText: passportText(futureExpiry())},
		{DocumentID: "i797-1", DeclaredType: "i797_notice", RawText: noticeText},
	}
}

func TestAnalyzeCase_Satisfactory(t *testing.T) {
	p := newTestProcessor()

	result, err := p.AnalyzeCase(context.Background(), h1bInputs(), model.CaseContext{
		CaseID:        "case-1",
		VisaType:      "h1b",
		ApplicantName: "Anna Eriksson",
	})
	require.NoError(t, err)

	require.Len(t, result.Documents, 2)
	assert.Equal(t, "passport-1", result.Documents[0].Record.DocumentID)
	assert.Equal(t, "i797-1", result.Documents[1].Record.DocumentID)

	assert.Equal(t, model.CaseSatisfactory, result.Analysis.Status)
	assert.Equal(t, 1.0, result.Analysis.CoverageScore)
	assert.True(t, result.Consistency.Consistent())
	assert.Empty(t, result.Findings)
}

func TestAnalyzeCase_MissingDocument(t *testing.T) {
	p := newTestProcessor()

	result, err := p.AnalyzeCase(context.Background(), h1bInputs()[:1], model.CaseContext{
		CaseID:        "case-1",
		VisaType:      "h1b",
		ApplicantName: "Anna Eriksson",
	})
	require.NoError(t, err)

	assert.Equal(t, model.CaseIncomplete, result.Analysis.Status)
	assert.Equal(t, []string{"i797_notice"}, result.Analysis.MissingRequired)
	assert.Equal(t, 0.5, result.Analysis.CoverageScore)
}

func TestAnalyzeCase_NameContradictionSurfacesFinding(t *testing.T) {
	p := newTestProcessor()
	inputs := h1bInputs()
	inputs[1].RawText = `U.S. CITIZENSHIP AND IMMIGRATION SERVICES
I-797 NOTICE OF ACTION
Receipt Number: SRC1234567890
Beneficiary: PETER JONES
Notice Date: Jan 5, 2024
`

	result, err := p.AnalyzeCase(context.Background(), inputs, model.CaseContext{
		CaseID:   "case-1",
		VisaType: "h1b",
	})
	require.NoError(t, err)

	assert.False(t, result.Consistency.Consistent())
	require.NotEmpty(t, result.Findings)
	assert.Equal(t, model.FindingName, result.Findings[0].Kind)
	assert.ElementsMatch(t, []string{"passport-1", "i797-1"},
		result.Findings[0].DocumentsInvolved)
}

func TestAnalyzeCase_OrderingStableUnderConcurrency(t *testing.T) {
	p := NewProcessor(config.EngineConfig{MaxConcurrentDocuments: 3}, nil, nil, nil)

	inputs := make([]DocumentInput, 12)
	for i := range inputs {
		inputs[i] = DocumentInput{
			DocumentID:   fmt.Sprintf("doc-%02d", i),
			DeclaredType: "passport",
			RawText:      passportText(futureExpiry()),
		}
	}

	result, err := p.AnalyzeCase(context.Background(), inputs, model.CaseContext{CaseID: "case-1"})
	require.NoError(t, err)
	require.Len(t, result.Documents, len(inputs))
	for i, doc := range result.Documents {
		assert.Equal(t, fmt.Sprintf("doc-%02d", i), doc.Record.DocumentID)
	}
}

func TestAnalyzeCase_CanceledContext(t *testing.T) {
	p := newTestProcessor()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.AnalyzeCase(ctx, h1bInputs(), model.CaseContext{CaseID: "case-1"})
	assert.Error(t, err)
}

func TestAnalyzeCase_EmptyCase(t *testing.T) {
	p := newTestProcessor()

	result, err := p.AnalyzeCase(context.Background(), nil, model.CaseContext{
		CaseID:   "case-1",
		VisaType: "h1b",
	})
	require.NoError(t, err)
	assert.Empty(t, result.Documents)
	assert.Equal(t, model.CaseIncomplete, result.Analysis.Status)
	assert.Equal(t, 0.0, result.Analysis.CoverageScore)
}
