// Package extract implements the pattern-based field extraction engine:
// a typed catalog of field kinds, confidence-blended candidate scoring,
// caller-defined policy fields, and MRZ block detection.
package extract

import (
	"regexp"
	"strings"

	"github.com/intakeworks/docvalid/internal/validate"
)

// FieldKind identifies a built-in catalog field.
type FieldKind string

const (
	FieldPassportNumber FieldKind = "passport_number"
	FieldBirthDate      FieldKind = "birth_date"
	FieldExpiryDate     FieldKind = "expiry_date"
	FieldIssueDate      FieldKind = "issue_date"
	FieldFullName       FieldKind = "full_name"
	FieldNationality    FieldKind = "nationality"
	FieldUSCISReceipt   FieldKind = "uscis_receipt"
	FieldSSN            FieldKind = "ssn"
	FieldAlienNumber    FieldKind = "alien_number"
	FieldSEVISID        FieldKind = "sevis_id"
	FieldI94Number      FieldKind = "i94_number"
)

// Context carries the per-call context that influences validation.
type Context struct {
	Nationality    string
	PreferDayFirst bool
}

// FieldSpec holds the extraction recipe for one field kind: regex
// patterns ordered most to least specific, a parallel base-weight list,
// context keywords for topic relevance, and the validator to invoke on
// each raw match.
type FieldSpec struct {
	Patterns []*regexp.Regexp
	Weights  []float64
	Keywords []string
	Validate func(raw string, ctx Context) validate.Result
}

const dateCapture = `((?:\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})|(?:\d{4}-\d{2}-\d{2})|(?:[A-Za-z]{3,9}\.?\s+\d{1,2},?\s+\d{4})|(?:\d{1,2}\s+[A-Za-z]{3,9}\.?\s+\d{4})|(?:D/?S))`

func dateSpec(kind validate.DateKind, labels string, keywords []string) FieldSpec {
	return FieldSpec{
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:` + labels + `)\s*[:.]?\s*` + dateCapture),
			regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`),
		},
		Weights:  []float64{0.9, 0.5},
		Keywords: keywords,
		Validate: func(raw string, ctx Context) validate.Result {
			return validate.ValidateDateField(raw, kind, ctx.PreferDayFirst)
		},
	}
}

// Catalog returns the built-in field registry. Patterns and validators
// are bound at construction so every kind is covered exhaustively.
func Catalog() map[FieldKind]FieldSpec {
	return map[FieldKind]FieldSpec{
		FieldPassportNumber: {
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)passport\s*(?:no|number|#)\.?\s*:?\s*([A-Z0-9]{6,9})\b`),
				regexp.MustCompile(`(?i)document\s*(?:no|number)\.?\s*:?\s*([A-Z0-9]{6,9})\b`),
				regexp.MustCompile(`\b([A-Z]{1,2}\d{6,8})\b`),
			},
			Weights:  []float64{0.9, 0.75, 0.45},
			Keywords: []string{"passport", "nationality", "surname", "place of birth", "authority"},
			Validate: func(raw string, ctx Context) validate.Result {
				return validate.ValidatePassportNumber(raw, ctx.Nationality)
			},
		},
		FieldBirthDate: dateSpec(validate.DateBirth,
			`date\s+of\s+birth|birth\s*date|dob|born(?:\s+on)?`,
			[]string{"birth", "born", "dob"}),
		FieldExpiryDate: dateSpec(validate.DateExpiry,
			`date\s+of\s+expir\w+|expir\w+(?:\s+date)?|expires|valid\s+until`,
			[]string{"expiry", "expiration", "valid until", "expires"}),
		FieldIssueDate: dateSpec(validate.DateIssue,
			`date\s+of\s+issue|issue\s*date|issued(?:\s+on)?`,
			[]string{"issue", "issued", "issuing authority"}),
		FieldFullName: {
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(?:full\s+)?name\s*[:.]\s*([A-Z][A-Za-z' -]{2,60})`),
				regexp.MustCompile(`(?i)surname\s*[:.]?\s*([A-Z][A-Za-z' -]{1,40})`),
				regexp.MustCompile(`(?i)(?:beneficiary|applicant)\s*[:.]?\s*([A-Z][A-Za-z' -]{2,60})`),
			},
			Weights:  []float64{0.85, 0.8, 0.7},
			Keywords: []string{"name", "surname", "given", "applicant", "beneficiary"},
			Validate: func(raw string, ctx Context) validate.Result {
				return validate.NonEmpty(raw)
			},
		},
		FieldNationality: {
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)nationality\s*[:.]?\s*([A-Za-z][A-Za-z ]{2,30})`),
				regexp.MustCompile(`(?i)country\s+of\s+(?:birth|citizenship)\s*[:.]?\s*([A-Za-z][A-Za-z ]{2,30})`),
			},
			Weights:  []float64{0.9, 0.7},
			Keywords: []string{"nationality", "citizen", "country"},
			Validate: func(raw string, ctx Context) validate.Result {
				return validate.NonEmpty(raw)
			},
		},
		FieldUSCISReceipt: {
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`\b((?:EAC|WAC|LIN|SRC|NBC|MSC|IOE|YSC|NSC|TSC)\d{10})\b`),
				regexp.MustCompile(`\b([A-Z]{3}\d{10})\b`),
			},
			Weights:  []float64{0.95, 0.6},
			Keywords: []string{"receipt", "uscis", "notice", "petition", "case type"},
			Validate: func(raw string, ctx Context) validate.Result {
				return validate.ValidateUSCISReceipt(raw)
			},
		},
		FieldSSN: {
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(?:ssn|social\s+security)\s*(?:no|number|#)?\s*[:.]?\s*(\d{3}-?\d{2}-?\d{4})\b`),
				regexp.MustCompile(`\b(\d{3}-\d{2}-\d{4})\b`),
			},
			Weights:  []float64{0.95, 0.7},
			Keywords: []string{"social security", "ssn"},
			Validate: func(raw string, ctx Context) validate.Result {
				return validate.ValidateSSN(raw)
			},
		},
		FieldAlienNumber: {
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(?:alien|uscis|a)\s*(?:registration\s*)?(?:no|number|#)\s*[:.]?\s*(A?\d{8,9})\b`),
				regexp.MustCompile(`\b(A\d{8,9})\b`),
			},
			Weights:  []float64{0.9, 0.65},
			Keywords: []string{"alien", "registration", "uscis"},
			Validate: func(raw string, ctx Context) validate.Result {
				return validate.ValidateAlienNumber(raw)
			},
		},
		FieldSEVISID: {
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)sevis\s*(?:id|no|number)?\s*[:.]?\s*(N\d{10})\b`),
				regexp.MustCompile(`\b(N\d{10})\b`),
			},
			Weights:  []float64{0.95, 0.6},
			Keywords: []string{"sevis", "student", "exchange visitor", "program"},
			Validate: func(raw string, ctx Context) validate.Result {
				return validate.ValidateSEVISID(raw)
			},
		},
		FieldI94Number: {
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(?:i-?94|admission)\s*(?:record\s*)?(?:no|number|#)?\s*[:.]?\s*(\d{9}[A-Z0-9]{2})\b`),
			},
			Weights:  []float64{0.9},
			Keywords: []string{"admission", "i-94", "arrival", "departure", "class of admission"},
			Validate: func(raw string, ctx Context) validate.Result {
				return validate.ValidateI94Number(raw)
			},
		},
	}
}

// contextScore is the fraction of a spec's keywords present in the text,
// capped at 1.0.
func contextScore(lowerText string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(lowerText, kw) {
			hits++
		}
	}
	score := float64(hits) / float64(len(keywords))
	if score > 1.0 {
		score = 1.0
	}
	return score
}
