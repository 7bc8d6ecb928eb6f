// internal/formcheck/submission_test.go
package formcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leasing-workers/internal/models"
)

func submittableForm() *models.ApplicationForm {
	yes := true
	holder := models.Person{
		ID: "lh-1", FirstName: "Casey", LastName: "Reyes",
		DOB: "07/21/1990", USCitizen: &yes,
		CurrentAddress: models.Address{
			Street: "100 Congress Ave", Duration: models.DurationTwoPlus,
		},
	}
	return &models.ApplicationForm{
		Applicant:    completeApplicant(),
		LeaseHolders: []models.Person{holder},
		EmergencyContact: models.EmergencyContact{
			Name: "Chris Reyes", Phone: "5125559999", Relation: "Sibling",
		},
		BackgroundCheck: true,
	}
}

func TestValidateSubmission_Valid(t *testing.T) {
	assert.Nil(t, ValidateSubmission(submittableForm()))
}

func TestValidateSubmission_OrderedFirstFailureWins(t *testing.T) {
	form := submittableForm()

	// Break two invariants at once; the earlier check in the battery wins.
	form.LeaseHolders[0].USCitizen = nil
	form.EmergencyContact.Relation = ""

	err := ValidateSubmission(form)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "Citizenship")
	assert.Equal(t, StepLeaseHolders, err.Step)
}

func TestValidateSubmission_CitizenshipOrder(t *testing.T) {
	form := submittableForm()
	form.Applicant.USCitizen = nil
	form.LeaseHolders[0].USCitizen = nil

	err := ValidateSubmission(form)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "applicant")
	assert.Equal(t, StepPersonalInfo, err.Step)
}

func TestValidateSubmission_DurationNavigatesToHousing(t *testing.T) {
	form := submittableForm()
	form.Applicant.CurrentAddress.Duration = ""

	err := ValidateSubmission(form)
	require.NotNil(t, err)
	assert.Equal(t, StepHousingHistory, err.Step)
}

func TestValidateSubmission_InvalidHolderDOB(t *testing.T) {
	form := submittableForm()
	form.LeaseHolders[0].DOB = "02/30/1990"

	err := ValidateSubmission(form)
	require.NotNil(t, err)
	assert.Equal(t, StepLeaseHolders, err.Step)
}

func TestValidateSubmission_AdultOccupantNeedsDOB(t *testing.T) {
	form := submittableForm()
	form.Occupants = []models.AdditionalOccupant{
		{ID: "o-1", FirstName: "Sam", LastName: "Reyes", Age: 22},
	}

	err := ValidateSubmission(form)
	require.NotNil(t, err)
	assert.Equal(t, StepOccupants, err.Step)

	form.Occupants[0].DOB = "01/02/2000"
	assert.Nil(t, ValidateSubmission(form))
}

func TestValidateSubmission_VehicleYear(t *testing.T) {
	form := submittableForm()
	form.HasVehicles = true
	form.Vehicles = []models.Vehicle{{Type: "Car", Make: "Honda", Model: "Civic"}}

	err := ValidateSubmission(form)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "Year is required")
	assert.Equal(t, StepAdditionalInfo, err.Step)

	form.Vehicles[0].Year = "1899"
	err = ValidateSubmission(form)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "4-digit year")

	form.Vehicles[0].Year = "2019"
	assert.Nil(t, ValidateSubmission(form))

	// Vehicles are only checked when the form says there are vehicles.
	form.Vehicles[0].Year = ""
	form.HasVehicles = false
	assert.Nil(t, ValidateSubmission(form))
}

func TestValidateSubmission_EmergencyRelation(t *testing.T) {
	form := submittableForm()
	form.EmergencyContact.Relation = ""

	err := ValidateSubmission(form)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "relation")
	assert.Equal(t, StepAdditionalInfo, err.Step)
}

func TestValidateSubmission_OccupantAgeZeroRejected(t *testing.T) {
	// Age 0 with no DOB is "no age provided", not a valid child entry.
	form := submittableForm()
	form.Occupants = []models.AdditionalOccupant{
		{ID: "o-1", FirstName: "Ana", LastName: "Reyes", Age: 0},
	}

	err := ValidateSubmission(form)
	require.NotNil(t, err)
	assert.Equal(t, StepOccupants, err.Step)

	form.Occupants[0].Age = -3
	err = ValidateSubmission(form)
	require.NotNil(t, err)

	form.Occupants[0].Age = 9
	assert.Nil(t, ValidateSubmission(form))
}

func TestValidateSubmission_PetVitals(t *testing.T) {
	form := submittableForm()
	form.Pets = []models.Pet{{Type: "Dog", Name: "Rex", Age: "abc", Weight: "38"}}

	// Non-numeric input strips to nothing and reads as missing.
	err := ValidateSubmission(form)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "Age is required")

	form.Pets[0].Age = "4"
	form.Pets[0].Weight = ""
	err = ValidateSubmission(form)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "Weight is required")

	form.Pets[0].Weight = "38 lbs"
	assert.Nil(t, ValidateSubmission(form))
}
