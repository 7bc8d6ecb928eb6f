// internal/formcheck/fields_test.go
package formcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"leasing-workers/internal/models"
)

func TestValidateField(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		wantErr bool
	}{
		{"first name present", "firstName", "Jordan", false},
		{"first name missing", "firstName", "", true},
		{"valid email", "email", "jordan@example.com", false},
		{"bad email", "email", "jordan@", true},
		{"email missing", "email", "", true},
		{"formatted phone", "phone", "(512) 555-1234", false},
		{"short phone", "phone", "555-1234", true},
		{"full ssn", "ssn", "123-45-6789", false},
		{"short ssn", "ssn", "123-45-678", true},
		{"valid dob", "dob", "03/14/1992", false},
		{"underage dob", "dob", "03/14/2020", true},
		{"move-in date masked", "moveInDate", "09/01/2026", false},
		{"move-in date unmasked", "moveInDate", "9/1/26", true},
		{"zip five digits", "zip", "78701", false},
		{"zip four digits", "zip", "7870", true},
		{"zip letters", "zip", "7870a", true},
		{"unknown field never blocks", "favoriteColor", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := ValidateField(tt.field, tt.value, &models.ApplicationForm{})
			if tt.wantErr {
				assert.NotEmpty(t, msg)
			} else {
				assert.Empty(t, msg)
			}
		})
	}
}

func TestValidateField_EmploymentShortCircuit(t *testing.T) {
	employed := &models.ApplicationForm{}
	employed.Applicant.Employers = []models.Employer{{Status: models.EmploymentFullTime}}
	assert.NotEmpty(t, ValidateField("employerName", "", employed))
	assert.NotEmpty(t, ValidateField("income", "", employed))
	assert.NotEmpty(t, ValidateField("income", "abc", employed))
	assert.Empty(t, ValidateField("income", "65,000", employed))

	unemployed := &models.ApplicationForm{}
	unemployed.Applicant.Employers = []models.Employer{{Status: models.EmploymentUnemployed}}
	assert.Empty(t, ValidateField("employerName", "", unemployed))
	assert.Empty(t, ValidateField("industry", "", unemployed))
	assert.Empty(t, ValidateField("position", "", unemployed))
	assert.Empty(t, ValidateField("income", "", unemployed))
}
