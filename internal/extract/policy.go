package extract

import (
	"os"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/intakeworks/docvalid/internal/model"
	"github.com/intakeworks/docvalid/internal/validate"
)

// policyBaseWeight is the pattern weight given to caller-defined fields;
// they carry one pattern each, so there is no specificity ordering.
const policyBaseWeight = 0.8

// PolicyField is a caller-supplied extraction rule, independent of the
// built-in catalog.
type PolicyField struct {
	Name        string `yaml:"name" json:"name"`
	Pattern     string `yaml:"pattern" json:"pattern"`
	Description string `yaml:"description" json:"description"`
	Required    bool   `yaml:"required" json:"required"`

	compiled *regexp.Regexp
}

// PolicyResult pairs a policy field with its extraction outcome.
type PolicyResult struct {
	Field      PolicyField           `json:"field"`
	Extraction *model.ExtractedField `json:"extraction,omitempty"`
	Satisfied  bool                  `json:"satisfied"`
}

// CompilePolicyFields validates and compiles a policy field list.
func CompilePolicyFields(fields []PolicyField) ([]PolicyField, error) {
	out := make([]PolicyField, 0, len(fields))
	for _, f := range fields {
		if f.Name == "" || f.Pattern == "" {
			return nil, eris.Errorf("extract: policy field %q missing name or pattern", f.Name)
		}
		re, err := regexp.Compile(f.Pattern)
		if err != nil {
			return nil, eris.Wrapf(err, "extract: compile policy field %q", f.Name)
		}
		f.compiled = re
		out = append(out, f)
	}
	return out, nil
}

// LoadPolicyFields reads and compiles policy fields from a YAML file.
// The file holds a top-level `fields` list.
func LoadPolicyFields(path string) ([]PolicyField, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: read policy fields %s", path)
	}
	var doc struct {
		Fields []PolicyField `yaml:"fields"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrapf(err, "extract: parse policy fields %s", path)
	}
	return CompilePolicyFields(doc.Fields)
}

// ExtractPolicy applies caller-defined fields to the text. Scoring uses
// the same confidence blend as the catalog, with the field's description
// and name words as context keywords and the trivial non-empty validator.
func (e *Engine) ExtractPolicy(text string, fields []PolicyField, ctx Context) []PolicyResult {
	lower := strings.ToLower(text)
	results := make([]PolicyResult, 0, len(fields))

	for _, f := range fields {
		if f.compiled == nil {
			if re, err := regexp.Compile(f.Pattern); err == nil {
				f.compiled = re
			} else {
				results = append(results, PolicyResult{Field: f})
				continue
			}
		}
		keywords := strings.Fields(strings.ToLower(f.Name + " " + f.Description))
		topic := contextScore(lower, keywords)

		spec := FieldSpec{
			Patterns: []*regexp.Regexp{f.compiled},
			Weights:  []float64{policyBaseWeight},
			Validate: func(raw string, ctx Context) validate.Result {
				return validate.NonEmpty(raw)
			},
		}
		candidates := e.extractField(text, f.Name, spec, topic, ctx)

		pr := PolicyResult{Field: f}
		if len(candidates) > 0 {
			top := candidates[0]
			pr.Extraction = &top
			pr.Satisfied = true
		}
		results = append(results, pr)
	}
	return results
}
