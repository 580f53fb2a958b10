package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/intakeworks/docvalid/internal/docproc"
	"github.com/intakeworks/docvalid/internal/extract"
	"github.com/intakeworks/docvalid/internal/metrics"
	"github.com/intakeworks/docvalid/internal/model"
	"github.com/intakeworks/docvalid/internal/rules"
)

// caseFile is the on-disk shape of one case: context plus documents.
type caseFile struct {
	Context   model.CaseContext       `json:"context"`
	Documents []docproc.DocumentInput `json:"documents"`
}

// initProcessor builds a processor from the loaded configuration,
// including any rule-set and policy-field overrides it points at.
func initProcessor() (*docproc.Processor, error) {
	ruleSets, err := rules.LoadRuleSets(cfg.Rules.RuleSetsPath)
	if err != nil {
		return nil, eris.Wrap(err, "init rule sets")
	}

	var policyFields []extract.PolicyField
	if cfg.Rules.PolicyFieldsPath != "" {
		policyFields, err = extract.LoadPolicyFields(cfg.Rules.PolicyFieldsPath)
		if err != nil {
			return nil, eris.Wrap(err, "init policy fields")
		}
	}

	aggregator := metrics.NewAggregator(metrics.NewSampleLog())
	return docproc.NewProcessor(cfg.Engine, ruleSets, policyFields, aggregator), nil
}

// readCaseFile loads and decodes a case JSON file.
func readCaseFile(path string) (*caseFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read case file %s", path)
	}
	var cf caseFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, eris.Wrapf(err, "parse case file %s", path)
	}
	return &cf, nil
}

// printJSON writes v to stdout, indented.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
