package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompilePolicyFields(t *testing.T) {
	fields, err := CompilePolicyFields([]PolicyField{
		{Name: "case_number", Pattern: `CASE-\d{6}`, Required: true},
	})
	require.NoError(t, err)
	assert.Len(t, fields, 1)

	_, err = CompilePolicyFields([]PolicyField{{Name: "bad", Pattern: `([`}})
	assert.Error(t, err)

	_, err = CompilePolicyFields([]PolicyField{{Pattern: `x`}})
	assert.Error(t, err)
}

func TestLoadPolicyFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	content := `fields:
  - name: case_number
    pattern: 'CASE-(\d{6})'
    description: internal case tracking number
    required: true
  - name: office_code
    pattern: 'OFFICE ([A-Z]{2})'
    required: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	fields, err := LoadPolicyFields(path)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "case_number", fields[0].Name)
	assert.True(t, fields[0].Required)
	assert.False(t, fields[1].Required)
}

func TestLoadPolicyFields_Missing(t *testing.T) {
	_, err := LoadPolicyFields("/nonexistent/policy.yaml")
	assert.Error(t, err)
}

func TestExtractPolicy(t *testing.T) {
	engine := NewEngine()
	fields, err := CompilePolicyFields([]PolicyField{
		{Name: "case_number", Pattern: `CASE-(\d{6})`, Description: "case tracking number", Required: true},
		{Name: "missing_field", Pattern: `NEVER-\d+`, Required: true},
	})
	require.NoError(t, err)

	text := "Case tracking number CASE-004217 opened for review."
	results := engine.ExtractPolicy(text, fields, Context{})
	require.Len(t, results, 2)

	assert.True(t, results[0].Satisfied)
	require.NotNil(t, results[0].Extraction)
	assert.Equal(t, "004217", results[0].Extraction.NormalizedValue)
	assert.Equal(t, "case_number", results[0].Extraction.FieldName)
	assert.Greater(t, results[0].Extraction.Confidence, 0.5)

	assert.False(t, results[1].Satisfied)
	assert.Nil(t, results[1].Extraction)
}

func TestExtractPolicy_ReportedIndependentlyOfCatalog(t *testing.T) {
	engine := NewEngine()
	fields, _ := CompilePolicyFields([]PolicyField{
		{Name: "receipt_copy", Pattern: `(SRC\d{10})`},
	})
	text := "Receipt Number: SRC1234567890"

	catalog := engine.Extract(text, Context{})
	policy := engine.ExtractPolicy(text, fields, Context{})

	// Both see the value, through independent scoring paths.
	assert.Equal(t, "SRC1234567890", catalog.Fields["uscis_receipt"].NormalizedValue)
	require.True(t, policy[0].Satisfied)
	assert.Equal(t, "SRC1234567890", policy[0].Extraction.NormalizedValue)
}
