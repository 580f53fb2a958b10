package extract

import "strings"

// typeSignals maps each known document type to the phrases that indicate
// it. Detection scores each type by the fraction of its signals present.
var typeSignals = map[string][]string{
	"passport": {
		"passport", "nationality", "place of birth", "date of expiry", "authority",
	},
	"visa_stamp": {
		"visa", "entries", "annotation", "issuing post", "control number",
	},
	"i797_notice": {
		"i-797", "notice of action", "receipt number", "petitioner", "beneficiary",
	},
	"i94_record": {
		"i-94", "admission", "arrival/departure", "class of admission", "admit until",
	},
	"i20_form": {
		"i-20", "sevis", "certificate of eligibility", "student", "program of study",
	},
	"birth_certificate": {
		"birth certificate", "certificate of live birth", "place of birth", "registrar",
	},
	"marriage_certificate": {
		"marriage", "spouse", "solemnized", "certificate of marriage",
	},
	"employment_verification_letter": {
		"employment", "employer", "salary", "position", "letterhead",
	},
}

// DetectType scores each known document type by signal-phrase coverage
// over the lower-cased text and returns the best match, or "unknown"
// when nothing scores.
func DetectType(lowerText string) string {
	best := "unknown"
	bestScore := 0.0
	for docType, signals := range typeSignals {
		hits := 0
		for _, s := range signals {
			if strings.Contains(lowerText, s) {
				hits++
			}
		}
		score := float64(hits) / float64(len(signals))
		if score > bestScore {
			bestScore = score
			best = docType
		}
	}
	if bestScore == 0 {
		return "unknown"
	}
	return best
}

// KnownTypes lists the document types the detector can report.
func KnownTypes() []string {
	types := make([]string, 0, len(typeSignals))
	for t := range typeSignals {
		types = append(types, t)
	}
	return types
}
