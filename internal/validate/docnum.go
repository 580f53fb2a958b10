package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// passportFormats maps ISO 3166-1 alpha-3 nationality codes to the
// passport-number shape that country issues.
var passportFormats = map[string]*regexp.Regexp{
	"USA": regexp.MustCompile(`^\d{9}$`),
	"GBR": regexp.MustCompile(`^\d{9}$`),
	"CAN": regexp.MustCompile(`^[A-Z]{2}\d{6}$`),
	"IND": regexp.MustCompile(`^[A-Z]\d{7}$`),
	"CHN": regexp.MustCompile(`^[EG]\d{8}$`),
	"BRA": regexp.MustCompile(`^[A-Z]{2}\d{6}$`),
	"DEU": regexp.MustCompile(`^[CFGHJKLMNPRTVWXYZ0-9]{9}$`),
	"MEX": regexp.MustCompile(`^[A-Z]\d{8}$`),
	"PHL": regexp.MustCompile(`^[A-Z]\d{7}[A-Z]?$`),
	"NGA": regexp.MustCompile(`^[A-Z]\d{8}$`),
}

var (
	genericPassport  = regexp.MustCompile(`^[A-Z0-9]{6,9}$`)
	nearMissPassport = regexp.MustCompile(`^[A-Z0-9]{5,12}$`)
)

// ValidatePassportNumber checks a travel-document number against the
// issuing country's format when the nationality is recognized, and a
// generic alphanumeric shape otherwise. Confidence reflects how specific
// the matching rule was.
func ValidatePassportNumber(num, nationality string) Result {
	n := strings.ToUpper(strings.TrimSpace(num))
	if n == "" {
		return Reject(0, "empty document number")
	}

	country := strings.ToUpper(strings.TrimSpace(nationality))
	if re, ok := passportFormats[country]; ok {
		if re.MatchString(n) {
			return Accept(n, 0.98)
		}
		if nearMissPassport.MatchString(n) {
			return Reject(0.3, fmt.Sprintf("does not match %s passport format", country))
		}
		return Reject(0.2, fmt.Sprintf("not a plausible %s passport number", country))
	}

	if genericPassport.MatchString(n) {
		return Accept(n, 0.85)
	}
	if nearMissPassport.MatchString(n) {
		return Reject(0.3, "length outside the usual 6-9 character range")
	}
	return Reject(0.2, "not a plausible travel document number")
}

var (
	alienNumberPattern = regexp.MustCompile(`^A?(\d{8,9})$`)
	sevisPattern       = regexp.MustCompile(`^N\d{10}$`)
	i94Pattern         = regexp.MustCompile(`^[0-9]{9}[A-Z0-9]{2}$`)
)

// ValidateAlienNumber checks an A-number (8 or 9 digits, optional A
// prefix) and normalizes to the prefixed form.
func ValidateAlienNumber(s string) Result {
	m := alienNumberPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(s)))
	if m == nil {
		return Reject(0, "not an A-number (expect A + 8-9 digits)")
	}
	return Accept("A"+m[1], 0.95)
}

// ValidateSEVISID checks a SEVIS identifier (N + 10 digits).
func ValidateSEVISID(s string) Result {
	n := strings.ToUpper(strings.TrimSpace(s))
	if !sevisPattern.MatchString(n) {
		return Reject(0, "not a SEVIS ID (expect N + 10 digits)")
	}
	return Accept(n, 0.95)
}

// ValidateI94Number checks an I-94 admission number (11 characters,
// 9 digits then 2 alphanumerics).
func ValidateI94Number(s string) Result {
	n := strings.ToUpper(strings.TrimSpace(s))
	if !i94Pattern.MatchString(n) {
		return Reject(0, "not an I-94 admission number")
	}
	return Accept(n, 0.9)
}
