package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassportNumber_CountrySpecific(t *testing.T) {
	tests := []struct {
		num         string
		nationality string
		valid       bool
		confidence  float64
	}{
		{"123456789", "USA", true, 0.98},
		{"A1234567", "USA", false, 0.3}, // near-miss for the US format
		{"K1234567", "IND", true, 0.98},
		{"E12345678", "CHN", true, 0.98},
		{"AB123456", "CAN", true, 0.98},
		{"ab123456", "can", true, 0.98}, // case-folded input
	}
	for _, tc := range tests {
		t.Run(tc.nationality+"/"+tc.num, func(t *testing.T) {
			res := ValidatePassportNumber(tc.num, tc.nationality)
			assert.Equal(t, tc.valid, res.Valid)
			assert.Equal(t, tc.confidence, res.Confidence)
		})
	}
}

func TestValidatePassportNumber_GenericFallback(t *testing.T) {
	res := ValidatePassportNumber("X9284712", "UTOPIA")
	assert.True(t, res.Valid)
	assert.Equal(t, 0.85, res.Confidence)

	// Too long for the generic shape, but still alphanumeric: near-miss.
	res = ValidatePassportNumber("X92847121234", "UTOPIA")
	assert.False(t, res.Valid)
	assert.Equal(t, 0.3, res.Confidence)

	res = ValidatePassportNumber("!!", "UTOPIA")
	assert.False(t, res.Valid)
	assert.Equal(t, 0.2, res.Confidence)

	res = ValidatePassportNumber("", "")
	assert.False(t, res.Valid)
	assert.Equal(t, 0.0, res.Confidence)
}

func TestValidateAlienNumber(t *testing.T) {
	res := ValidateAlienNumber("A12345678")
	assert.True(t, res.Valid)
	assert.Equal(t, "A12345678", res.Normalized)

	res = ValidateAlienNumber("123456789")
	assert.True(t, res.Valid)
	assert.Equal(t, "A123456789", res.Normalized)

	assert.False(t, ValidateAlienNumber("A123").Valid)
	assert.False(t, ValidateAlienNumber("B12345678").Valid)
}

func TestValidateSEVISID(t *testing.T) {
	assert.True(t, ValidateSEVISID("N0012345678").Valid)
	assert.False(t, ValidateSEVISID("0012345678").Valid)
	assert.False(t, ValidateSEVISID("N001234567").Valid)
}

func TestValidateI94Number(t *testing.T) {
	assert.True(t, ValidateI94Number("12345678901").Valid)
	assert.True(t, ValidateI94Number("123456789A1").Valid)
	assert.False(t, ValidateI94Number("12345").Valid)
}
