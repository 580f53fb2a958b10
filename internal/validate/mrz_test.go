package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Specimen TD3 zone with verifiable check digits.
const (
	specimenLine1 = "P<UTOERIKSSON<<ANNA<MARIA<<<<<<<<<<<<<<<<<<<"
	specimenLine2 = "L898902C36UTO7408122F1204159ZE184226B<<<<<10"
)

func TestParseMRZTD3_Specimen(t *testing.T) {
	mrz, ok := ParseMRZTD3(specimenLine1, specimenLine2)
	require.True(t, ok)
	assert.Equal(t, "L898902C3", mrz.DocumentNumber)
	assert.Equal(t, "UTO", mrz.IssuingState)
	assert.Equal(t, "UTO", mrz.Nationality)
	assert.Equal(t, "1974-08-12", mrz.BirthDate)
	assert.Equal(t, "2012-04-15", mrz.ExpiryDate)
	assert.Equal(t, "F", mrz.Sex)
	assert.Equal(t, "ERIKSSON", mrz.Surname)
	assert.Equal(t, "ANNA MARIA", mrz.GivenNames)
}

func TestParseMRZTD3_WrongLength(t *testing.T) {
	_, ok := ParseMRZTD3(specimenLine1[:43], specimenLine2)
	assert.False(t, ok)

	_, ok = ParseMRZTD3(specimenLine1, specimenLine2+"<")
	assert.False(t, ok)

	_, ok = ParseMRZTD3("", "")
	assert.False(t, ok)
}

// Flipping any single check digit must reject the whole zone; partial
// validation is never exposed.
func TestParseMRZTD3_FlippedCheckDigits(t *testing.T) {
	checkPositions := []int{9, 19, 27, 43}
	for _, pos := range checkPositions {
		line2 := []byte(specimenLine2)
		orig := line2[pos]
		line2[pos] = '0' + byte((int(orig-'0')+1)%10)
		_, ok := ParseMRZTD3(specimenLine1, string(line2))
		assert.False(t, ok, "flipped check digit at position %d", pos)
	}
}

func TestParseMRZTD3_CorruptedDataField(t *testing.T) {
	// Altering a data character breaks its field checksum.
	line2 := []byte(specimenLine2)
	line2[0] = 'M' // document number
	_, ok := ParseMRZTD3(specimenLine1, string(line2))
	assert.False(t, ok)

	line2 = []byte(specimenLine2)
	line2[14] = '5' // birth date
	_, ok = ParseMRZTD3(specimenLine1, string(line2))
	assert.False(t, ok)
}

func TestMRZCheckDigit(t *testing.T) {
	// Worked example from the check-digit scheme: digits weigh
	// themselves, letters weigh A=10..Z=35, filler weighs 0, cycle 7,3,1.
	assert.Equal(t, 6, mrzCheckDigit("L898902C3"))
	assert.Equal(t, 2, mrzCheckDigit("740812"))
	assert.Equal(t, 9, mrzCheckDigit("120415"))
	assert.Equal(t, 0, mrzCheckDigit("<<<<<<"))
	assert.Equal(t, -1, mrzCheckDigit("ABC?"))
}

func TestMRZDate_CenturyRule(t *testing.T) {
	// yy far enough in the past that the implied age reaches 50 maps to
	// the 1900s; recent years map to the 2000s.
	iso, ok := mrzDate("740812", true)
	require.True(t, ok)
	assert.Equal(t, "1974-08-12", iso)

	iso, ok = mrzDate("150309", true)
	require.True(t, ok)
	assert.Equal(t, "2015-03-09", iso)

	// Expiry dates always land in the 2000s.
	iso, ok = mrzDate("470101", false)
	require.True(t, ok)
	assert.Equal(t, "2047-01-01", iso)
}

func TestMRZDate_Invalid(t *testing.T) {
	for _, in := range []string{"741301", "740832", "74081", "74O812"} {
		_, ok := mrzDate(in, true)
		assert.False(t, ok, in)
	}
}

func TestLooksLikeMRZLine(t *testing.T) {
	assert.True(t, LooksLikeMRZLine(specimenLine1))
	assert.True(t, LooksLikeMRZLine(specimenLine2))
	assert.False(t, LooksLikeMRZLine("PASSPORT"))
	assert.False(t, LooksLikeMRZLine(specimenLine1+"X"))
}
