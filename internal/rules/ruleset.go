// Package rules evaluates extraction output against per-document-type
// rule sets and aggregates document records into a case-level analysis.
package rules

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// RuleSet holds the checks applied to one document type.
type RuleSet struct {
	RequiredFields    []string `yaml:"required_fields" json:"required_fields"`
	ExpiryCheck       bool     `yaml:"expiry_check" json:"expiry_check"`
	MinValidityMonths int      `yaml:"min_validity_months" json:"min_validity_months"`
	NameMatch         bool     `yaml:"name_match" json:"name_match"`
}

// Legibility gate defaults. Text shorter than the minimum or OCR
// confidence under the threshold is rejected before any other check.
const (
	DefaultMinTextLength    = 40
	DefaultMinOCRConfidence = 0.5
)

// expiryAliases is the priority-ordered list of field names checked for
// an expiry value.
var expiryAliases = []string{
	"expiry_date",
	"date_of_expiry",
	"expiration_date",
	"valid_until",
	"expires",
}

// DefaultRuleSets returns the built-in per-type rule table.
func DefaultRuleSets() map[string]RuleSet {
	return map[string]RuleSet{
		"passport": {
			RequiredFields:    []string{"passport_number", "full_name", "expiry_date"},
			ExpiryCheck:       true,
			MinValidityMonths: 6,
			NameMatch:         true,
		},
		"visa_stamp": {
			RequiredFields: []string{"passport_number", "expiry_date"},
			ExpiryCheck:    true,
			NameMatch:      true,
		},
		"i797_notice": {
			RequiredFields: []string{"uscis_receipt"},
			NameMatch:      true,
		},
		"i94_record": {
			RequiredFields: []string{"i94_number"},
			ExpiryCheck:    true,
			NameMatch:      true,
		},
		"i20_form": {
			RequiredFields: []string{"sevis_id", "full_name"},
			NameMatch:      true,
		},
		"birth_certificate": {
			RequiredFields: []string{"full_name", "birth_date"},
			NameMatch:      true,
		},
		"marriage_certificate": {
			RequiredFields: []string{"full_name", "issue_date"},
			NameMatch:      true,
		},
		"employment_verification_letter": {
			RequiredFields: []string{"full_name"},
			NameMatch:      true,
		},
	}
}

// LoadRuleSets reads rule-set overrides from a YAML file and merges them
// over the built-in table. Unknown types are added as-is.
func LoadRuleSets(path string) (map[string]RuleSet, error) {
	sets := DefaultRuleSets()
	if path == "" {
		return sets, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "rules: read rule sets %s", path)
	}
	var doc struct {
		Types map[string]RuleSet `yaml:"types"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrapf(err, "rules: parse rule sets %s", path)
	}
	for docType, rs := range doc.Types {
		sets[docType] = rs
	}
	return sets, nil
}

// RequiredDocTypes maps visa/case types to the document types a complete
// case must include.
func RequiredDocTypes() map[string][]string {
	return map[string][]string{
		"h1b":             {"passport", "i797_notice"},
		"f1":              {"passport", "i20_form"},
		"b2":              {"passport"},
		"k1":              {"passport", "birth_certificate"},
		"i485_adjustment": {"passport", "birth_certificate", "i94_record"},
		"h1b_extension":   {"passport", "i797_notice", "i94_record", "employment_verification_letter"},
		"f1_opt":          {"passport", "i20_form", "i94_record"},
		"marriage_based":  {"passport", "birth_certificate", "marriage_certificate"},
	}
}
