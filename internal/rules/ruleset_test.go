package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intakeworks/docvalid/internal/extract"
)

// Every document type the detector can report must have a rule set, or
// correctly classified documents would be evaluated as unknown types.
func TestDefaultRuleSets_CoverDetectableTypes(t *testing.T) {
	sets := DefaultRuleSets()
	for _, docType := range extract.KnownTypes() {
		_, ok := sets[docType]
		assert.True(t, ok, "no rule set for detectable type %q", docType)
	}
}

func TestDefaultRuleSets_RequiredDocTypesResolve(t *testing.T) {
	sets := DefaultRuleSets()
	for visaType, docTypes := range RequiredDocTypes() {
		for _, docType := range docTypes {
			_, ok := sets[docType]
			assert.True(t, ok, "case type %q requires %q, which has no rule set",
				visaType, docType)
		}
	}
}

func TestLoadRuleSets_MergesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `types:
  passport:
    required_fields: [passport_number]
    expiry_check: true
    min_validity_months: 3
    name_match: false
  drivers_license:
    required_fields: [full_name]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	sets, err := LoadRuleSets(path)
	require.NoError(t, err)

	passport := sets["passport"]
	assert.Equal(t, []string{"passport_number"}, passport.RequiredFields)
	assert.Equal(t, 3, passport.MinValidityMonths)
	assert.False(t, passport.NameMatch)

	// New types are added, untouched defaults survive.
	assert.Contains(t, sets, "drivers_license")
	assert.Contains(t, sets, "i94_record")
}

func TestLoadRuleSets_EmptyPathUsesDefaults(t *testing.T) {
	sets, err := LoadRuleSets("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRuleSets(), sets)
}

func TestLoadRuleSets_Errors(t *testing.T) {
	_, err := LoadRuleSets(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("types: [not, a, map]"), 0o644))
	_, err = LoadRuleSets(path)
	assert.Error(t, err)
}
