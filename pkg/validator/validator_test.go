package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type patientForm struct {
	EGN       string `json:"egn" validate:"required,egn"`
	BirthDate string `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Gender    string `json:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
}

func TestIsValidEGN(t *testing.T) {
	assert.True(t, IsValidEGN("1234567890"))
	assert.False(t, IsValidEGN("12345"))
	assert.False(t, IsValidEGN("12345678901"))
	assert.False(t, IsValidEGN("12345abcde"))
	assert.False(t, IsValidEGN(""))
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&patientForm{EGN: "12345", BirthDate: "01/02/1990", Gender: "X"})
	assert.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Equal(t, "egn must be exactly 10 digits", errs["egn"])
	assert.Equal(t, "birth_date must be a date in the format YYYY-MM-DD", errs["birth_date"])
	assert.Contains(t, errs["gender"], "must be one of")
}

func TestValidate_Accepts(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&patientForm{EGN: "1234567890", BirthDate: "1990-02-01", Gender: "FEMALE"})
	assert.NoError(t, err)
}
