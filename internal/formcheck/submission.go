// internal/formcheck/submission.go
package formcheck

import (
	"fmt"

	"leasing-workers/internal/fieldformat"
	"leasing-workers/internal/models"
)

// SubmissionError is the first violated invariant found at submit time,
// with the step the user should be returned to. Submission checks span
// steps, so they report one at a time instead of batching.
type SubmissionError struct {
	Message string `json:"message"`
	Step    Step   `json:"step"`
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission invalid at step %q: %s", e.Step, e.Message)
}

// ValidateSubmission runs the ordered submit-time battery over the whole
// form and stops at the first failure. Returns nil when the form is
// submittable.
func ValidateSubmission(form *models.ApplicationForm) *SubmissionError {
	checks := []func(*models.ApplicationForm) *SubmissionError{
		checkCitizenship,
		checkCurrentDuration,
		checkDOBs,
		checkAdultOccupantDOBs,
		checkVehicles,
		checkEmergencyRelation,
		checkOccupantAgeExclusivity,
		checkPetVitals,
	}
	for _, check := range checks {
		if err := check(form); err != nil {
			return err
		}
	}
	return nil
}

// personsInOrder walks applicant, then lease holders, then guarantors,
// which is the reporting order for every person-level check.
func personsInOrder(form *models.ApplicationForm, visit func(p models.Person, label string, step Step) *SubmissionError) *SubmissionError {
	if err := visit(form.Applicant.Person, "applicant", StepPersonalInfo); err != nil {
		return err
	}
	for i, h := range form.LeaseHolders {
		if err := visit(h, fmt.Sprintf("lease holder %d", i+1), StepLeaseHolders); err != nil {
			return err
		}
	}
	for i, g := range form.Guarantors {
		if err := visit(g, fmt.Sprintf("guarantor %d", i+1), StepLeaseHolders); err != nil {
			return err
		}
	}
	return nil
}

func checkCitizenship(form *models.ApplicationForm) *SubmissionError {
	return personsInOrder(form, func(p models.Person, label string, step Step) *SubmissionError {
		if p.USCitizen == nil {
			return &SubmissionError{
				Message: fmt.Sprintf("Citizenship status is required for %s", label),
				Step:    step,
			}
		}
		return nil
	})
}

func checkCurrentDuration(form *models.ApplicationForm) *SubmissionError {
	return personsInOrder(form, func(p models.Person, label string, step Step) *SubmissionError {
		if p.CurrentAddress.Duration == "" {
			if step == StepPersonalInfo {
				step = StepHousingHistory
			}
			return &SubmissionError{
				Message: fmt.Sprintf("Time at current address is required for %s", label),
				Step:    step,
			}
		}
		return nil
	})
}

func checkDOBs(form *models.ApplicationForm) *SubmissionError {
	return personsInOrder(form, func(p models.Person, label string, step Step) *SubmissionError {
		if p.DOB == "" {
			return &SubmissionError{
				Message: fmt.Sprintf("Date of birth is required for %s", label),
				Step:    step,
			}
		}
		if msg := fieldformat.ValidateDOB(p.DOB); msg != "" {
			return &SubmissionError{
				Message: fmt.Sprintf("Date of birth for %s: %s", label, msg),
				Step:    step,
			}
		}
		return nil
	})
}

func checkAdultOccupantDOBs(form *models.ApplicationForm) *SubmissionError {
	for i, o := range form.Occupants {
		if o.Age < 18 {
			continue
		}
		if o.DOB == "" {
			return &SubmissionError{
				Message: fmt.Sprintf("Date of birth is required for occupant %d (18 or older)", i+1),
				Step:    StepOccupants,
			}
		}
		if msg := fieldformat.ValidateDOB(o.DOB); msg != "" {
			return &SubmissionError{
				Message: fmt.Sprintf("Date of birth for occupant %d: %s", i+1, msg),
				Step:    StepOccupants,
			}
		}
	}
	return nil
}

func checkVehicles(form *models.ApplicationForm) *SubmissionError {
	if !form.HasVehicles {
		return nil
	}
	for i, v := range form.Vehicles {
		if v.Year == "" {
			return &SubmissionError{
				Message: fmt.Sprintf("Year is required for vehicle %d", i+1),
				Step:    StepAdditionalInfo,
			}
		}
		if !fieldformat.ValidVehicleYear(v.Year) {
			return &SubmissionError{
				Message: fmt.Sprintf("Vehicle %d year must be a 4-digit year between 1900 and this year", i+1),
				Step:    StepAdditionalInfo,
			}
		}
	}
	return nil
}

func checkEmergencyRelation(form *models.ApplicationForm) *SubmissionError {
	if form.EmergencyContact.Relation == "" {
		return &SubmissionError{
			Message: "Emergency contact relation is required",
			Step:    StepAdditionalInfo,
		}
	}
	return nil
}

// checkOccupantAgeExclusivity enforces that every occupant is either a
// minor with a positive age or an adult with a DOB. An age of zero or below
// counts as no age provided.
func checkOccupantAgeExclusivity(form *models.ApplicationForm) *SubmissionError {
	for i, o := range form.Occupants {
		minor := o.Age > 0 && o.Age < 18
		adult := o.Age >= 18 && o.DOB != ""
		if !minor && !adult {
			return &SubmissionError{
				Message: fmt.Sprintf("Occupant %d needs an age under 18 or a date of birth", i+1),
				Step:    StepOccupants,
			}
		}
	}
	return nil
}

// checkPetVitals requires numeric age and weight for every pet. Non-numeric
// characters are stripped first, so "abc" counts as missing rather than
// invalid-but-present.
func checkPetVitals(form *models.ApplicationForm) *SubmissionError {
	for i, p := range form.Pets {
		if fieldformat.Digits(p.Age) == "" {
			return &SubmissionError{
				Message: fmt.Sprintf("Age is required for pet %d", i+1),
				Step:    StepAdditionalInfo,
			}
		}
		if fieldformat.Digits(p.Weight) == "" {
			return &SubmissionError{
				Message: fmt.Sprintf("Weight is required for pet %d", i+1),
				Step:    StepAdditionalInfo,
			}
		}
	}
	return nil
}
