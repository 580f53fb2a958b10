package validate

import (
	"regexp"
	"strconv"
)

var ssnPattern = regexp.MustCompile(`^(\d{3})-?(\d{2})-?(\d{4})$`)

const (
	ssnReservedArea     = 666
	ssnHighReservedArea = 900
)

// PlausibleSSN applies the SSA allocation rules that reject structurally
// impossible numbers: all-zero area, group, or serial, the reserved 666
// area, and areas at or above 900.
func PlausibleSSN(s string) bool {
	m := ssnPattern.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	area, _ := strconv.Atoi(m[1])
	group, _ := strconv.Atoi(m[2])
	serial, _ := strconv.Atoi(m[3])

	if area == 0 || group == 0 || serial == 0 {
		return false
	}
	if area == ssnReservedArea || area >= ssnHighReservedArea {
		return false
	}
	return true
}

// ValidateSSN is the Result-shaped form used by the extraction catalog.
// The normalized form keeps the dashed grouping.
func ValidateSSN(s string) Result {
	m := ssnPattern.FindStringSubmatch(s)
	if m == nil {
		return Reject(0, "not an SSN-shaped number")
	}
	if !PlausibleSSN(s) {
		return Reject(0.1, "SSN fails allocation plausibility rules")
	}
	return Accept(m[1]+"-"+m[2]+"-"+m[3], 0.95)
}
