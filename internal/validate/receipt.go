package validate

import "regexp"

var receiptPattern = regexp.MustCompile(`^[A-Z]{3}\d{10}$`)

// uscisServiceCenters is the allow-list of known issuing-office prefixes.
// A syntactically correct receipt with an unlisted prefix is rejected.
var uscisServiceCenters = map[string]struct{}{
	"EAC": {}, // Eastern Adjudication Center (Vermont)
	"WAC": {}, // Western Adjudication Center (California)
	"LIN": {}, // Lincoln (Nebraska)
	"SRC": {}, // Southern Regional Center (Texas)
	"NBC": {}, // National Benefits Center
	"MSC": {}, // Missouri Service Center
	"IOE": {}, // ELIS electronic filing
	"YSC": {}, // Potomac Service Center
	"NSC": {}, // Nebraska Service Center
	"TSC": {}, // Texas Service Center
}

// ValidUSCISReceipt reports whether s is a well-formed receipt number
// issued by a known service center: three letters from the allow-list
// followed by exactly ten digits.
func ValidUSCISReceipt(s string) bool {
	if !receiptPattern.MatchString(s) {
		return false
	}
	_, ok := uscisServiceCenters[s[:3]]
	return ok
}

// ValidateUSCISReceipt is the Result-shaped form used by the extraction
// catalog.
func ValidateUSCISReceipt(s string) Result {
	if ValidUSCISReceipt(s) {
		return Accept(s, 0.98)
	}
	if receiptPattern.MatchString(s) {
		return Reject(0.2, "unknown service center prefix "+s[:3])
	}
	return Reject(0, "not a receipt number (expect 3 letters + 10 digits)")
}
