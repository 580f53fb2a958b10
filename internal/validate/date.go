package validate

import (
	"fmt"
	"strings"
	"time"
)

// DateKind selects the contextual rules applied on top of date parsing.
type DateKind string

const (
	DateBirth   DateKind = "birth_date"
	DateExpiry  DateKind = "expiry_date"
	DateIssue   DateKind = "issue_date"
	DateGeneral DateKind = "general"
)

// durationOfStatus is the canonical form of the D/S admission marker found
// on I-94 records and visa stamps.
const durationOfStatus = "D/S"

var dayFirstLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2/1/06",
}

var monthFirstLayouts = []string{
	"1/2/2006",
	"1-2-2006",
	"1.2.2006",
	"1/2/06",
}

var textualLayouts = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2 2006",
}

// NormalizeDate parses a date string in the formats OCR output commonly
// carries and returns it as ISO-8601 (YYYY-MM-DD). The duration-of-status
// literals "D/S" and "DS" pass through as "D/S". preferDayFirst only
// changes the order the numeric families are tried, which is what resolves
// inputs valid in both (e.g. 03/04/2025); a string valid in exactly one
// family is accepted either way.
func NormalizeDate(input string, preferDayFirst bool) (string, bool) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", false
	}

	upper := strings.ToUpper(s)
	if upper == "D/S" || upper == "DS" {
		return durationOfStatus, true
	}

	families := [][]string{dayFirstLayouts, monthFirstLayouts}
	if !preferDayFirst {
		families = [][]string{monthFirstLayouts, dayFirstLayouts}
	}
	families = append(families, textualLayouts, []string{"2006-01-02"})

	for _, layouts := range families {
		for _, layout := range layouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format("2006-01-02"), true
			}
			// OCR text frequently uppercases month names.
			if t, err := time.Parse(layout, titleCaseMonth(s)); err == nil {
				return t.Format("2006-01-02"), true
			}
		}
	}
	return "", false
}

// titleCaseMonth rewrites "12 MAY 2025" into "12 May 2025" so the textual
// layouts match.
func titleCaseMonth(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		trimmed := strings.TrimSuffix(w, ",")
		if len(trimmed) < 3 {
			continue
		}
		lower := strings.ToLower(trimmed)
		cased := strings.ToUpper(lower[:1]) + lower[1:]
		if _, ok := monthNames[strings.ToLower(trimmed)]; ok {
			words[i] = strings.Replace(w, trimmed, cased, 1)
		}
	}
	return strings.Join(words, " ")
}

var monthNames = map[string]struct{}{
	"jan": {}, "feb": {}, "mar": {}, "apr": {}, "may": {}, "jun": {},
	"jul": {}, "aug": {}, "sep": {}, "oct": {}, "nov": {}, "dec": {},
	"january": {}, "february": {}, "march": {}, "april": {}, "june": {},
	"july": {}, "august": {}, "september": {}, "october": {},
	"november": {}, "december": {},
}

// ValidateDateField normalizes a date and applies the field-kind rules:
// birth years must be 1900..now, expiry dates must not already be past,
// issue dates must not be in the future. Confidence is 0.95 for any
// accepted calendar date and 1.0 for the D/S literal. preferDayFirst
// resolves ambiguous numeric dates, as in NormalizeDate.
func ValidateDateField(input string, kind DateKind, preferDayFirst bool) Result {
	normalized, ok := NormalizeDate(input, preferDayFirst)
	if !ok {
		return Reject(0, fmt.Sprintf("unrecognized date format: %q", strings.TrimSpace(input)))
	}
	if normalized == durationOfStatus {
		if kind == DateBirth || kind == DateIssue {
			return Reject(0, "duration-of-status marker is not a calendar date")
		}
		return Accept(durationOfStatus, 1.0)
	}

	t, err := time.Parse("2006-01-02", normalized)
	if err != nil {
		return Reject(0, "unparseable normalized date")
	}
	now := time.Now().UTC()

	// Context-rule failures keep the normalized form: downstream checks
	// still need the parsed date to report what is wrong with it.
	rejectKeepingDate := func(message string) Result {
		r := Reject(0, message)
		r.Normalized = normalized
		return r
	}

	switch kind {
	case DateBirth:
		if t.Year() < 1900 {
			return rejectKeepingDate(fmt.Sprintf("birth year %d before 1900", t.Year()))
		}
		if t.After(now) {
			return rejectKeepingDate("birth date in the future")
		}
	case DateExpiry:
		if t.Before(now.Truncate(24 * time.Hour)) {
			return rejectKeepingDate(fmt.Sprintf("document expired on %s", normalized))
		}
	case DateIssue:
		if t.After(now) {
			return rejectKeepingDate("issue date in the future")
		}
	}
	return Accept(normalized, 0.95)
}
