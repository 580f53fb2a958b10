package validate

import (
	"fmt"
	"strings"
	"time"
)

// MRZData is the decoded content of a TD3 machine-readable zone.
type MRZData struct {
	DocumentNumber string `json:"document_number"`
	IssuingState   string `json:"issuing_state"`
	Nationality    string `json:"nationality"`
	BirthDate      string `json:"birth_date"`
	ExpiryDate     string `json:"expiry_date"`
	Sex            string `json:"sex"`
	Surname        string `json:"surname"`
	GivenNames     string `json:"given_names"`
}

const td3LineLength = 44

// mrzWeights is the repeating weight cycle of the ICAO check-digit scheme.
var mrzWeights = [3]int{7, 3, 1}

// mrzCharValue maps an MRZ character to its check-digit contribution:
// digits are themselves, letters are A=10..Z=35, the filler is 0.
func mrzCharValue(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10, true
	case c == '<':
		return 0, true
	}
	return 0, false
}

// mrzCheckDigit computes the weighted check digit for a field, or -1 when
// the field contains a character outside the MRZ alphabet.
func mrzCheckDigit(field string) int {
	sum := 0
	for i := 0; i < len(field); i++ {
		v, ok := mrzCharValue(field[i])
		if !ok {
			return -1
		}
		sum += v * mrzWeights[i%3]
	}
	return sum % 10
}

func mrzCheckPasses(field string, declared byte) bool {
	if declared < '0' || declared > '9' {
		return false
	}
	d := mrzCheckDigit(field)
	return d >= 0 && d == int(declared-'0')
}

// mrzDate converts a YYMMDD field to ISO-8601, disambiguating the century:
// for birth dates an implied age of 50 or more selects the 1900s,
// otherwise the 2000s; expiry dates always map to the 2000s.
func mrzDate(yymmdd string, birth bool) (string, bool) {
	if len(yymmdd) != 6 {
		return "", false
	}
	for i := 0; i < 6; i++ {
		if yymmdd[i] < '0' || yymmdd[i] > '9' {
			return "", false
		}
	}
	yy := int(yymmdd[0]-'0')*10 + int(yymmdd[1]-'0')

	var year int
	if birth {
		ageHint := time.Now().UTC().Year() - (2000 + yy)
		if ageHint < 0 {
			ageHint += 100
		}
		if ageHint >= 50 {
			year = 1900 + yy
		} else {
			year = 2000 + yy
		}
	} else {
		year = 2000 + yy
	}

	iso := fmt.Sprintf("%04d-%s-%s", year, yymmdd[2:4], yymmdd[4:6])
	if _, err := time.Parse("2006-01-02", iso); err != nil {
		return "", false
	}
	return iso, true
}

// ParseMRZTD3 decodes and verifies a two-line TD3 machine-readable zone.
// Both lines must be exactly 44 characters and all four check digits
// (document number, birth date, expiry date, composite) must verify, or
// the whole zone is rejected; partial results are never exposed.
func ParseMRZTD3(line1, line2 string) (*MRZData, bool) {
	line1 = strings.ToUpper(strings.TrimSpace(line1))
	line2 = strings.ToUpper(strings.TrimSpace(line2))
	if len(line1) != td3LineLength || len(line2) != td3LineLength {
		return nil, false
	}

	docNumber := line2[0:9]
	docCheck := line2[9]
	nationality := line2[10:13]
	birthRaw := line2[13:19]
	birthCheck := line2[19]
	sex := line2[20:21]
	expiryRaw := line2[21:27]
	expiryCheck := line2[27]
	compositeCheck := line2[43]

	if !mrzCheckPasses(docNumber, docCheck) {
		return nil, false
	}
	if !mrzCheckPasses(birthRaw, birthCheck) {
		return nil, false
	}
	if !mrzCheckPasses(expiryRaw, expiryCheck) {
		return nil, false
	}
	// Composite field: document number+check, birth+check, expiry+check,
	// personal number+check.
	composite := line2[0:10] + line2[13:20] + line2[21:43]
	if !mrzCheckPasses(composite, compositeCheck) {
		return nil, false
	}

	birthISO, ok := mrzDate(birthRaw, true)
	if !ok {
		return nil, false
	}
	expiryISO, ok := mrzDate(expiryRaw, false)
	if !ok {
		return nil, false
	}

	surname, givenNames := splitMRZName(line1[5:])

	return &MRZData{
		DocumentNumber: strings.Trim(docNumber, "<"),
		IssuingState:   strings.Trim(line1[2:5], "<"),
		Nationality:    strings.Trim(nationality, "<"),
		BirthDate:      birthISO,
		ExpiryDate:     expiryISO,
		Sex:            sex,
		Surname:        surname,
		GivenNames:     givenNames,
	}, true
}

// splitMRZName splits the name field on the double-filler separator and
// turns single fillers back into spaces.
func splitMRZName(field string) (surname, given string) {
	parts := strings.SplitN(field, "<<", 2)
	surname = strings.ReplaceAll(strings.Trim(parts[0], "<"), "<", " ")
	if len(parts) == 2 {
		given = strings.ReplaceAll(strings.Trim(parts[1], "<"), "<", " ")
	}
	return surname, given
}

// LooksLikeMRZLine reports whether a text line is shaped like a TD3 MRZ
// line: 44 characters from the MRZ alphabet.
func LooksLikeMRZLine(line string) bool {
	line = strings.TrimSpace(line)
	if len(line) != td3LineLength {
		return false
	}
	for i := 0; i < len(line); i++ {
		if _, ok := mrzCharValue(upperByte(line[i])); !ok {
			return false
		}
	}
	return true
}

func upperByte(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
