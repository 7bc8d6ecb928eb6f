// internal/formcheck/step_check.go
package formcheck

import (
	"fmt"

	"leasing-workers/internal/fieldformat"
	"leasing-workers/internal/models"
)

// StepResult is the batch report for one step: every outstanding error at
// once so the user can fix them together.
type StepResult struct {
	IsValid       bool              `json:"isValid"`
	Errors        map[string]string `json:"errors"`
	MissingFields []string          `json:"missingFields"`
}

// ValidateStep gates forward navigation out of a step. Steps without custom
// rules are valid by default; the submission battery re-checks them at the
// end regardless.
func ValidateStep(step Step, form *models.ApplicationForm) StepResult {
	res := StepResult{Errors: map[string]string{}}

	switch step {
	case StepPersonalInfo:
		a := form.Applicant
		res.check(form, "firstName", a.FirstName)
		res.check(form, "lastName", a.LastName)
		res.check(form, "email", a.Email)
		res.check(form, "phone", a.Phone)
		res.check(form, "dob", a.DOB)
		res.check(form, "ssn", a.SSN)
		res.check(form, "moveInDate", a.MoveInDate)

	case StepFinancialInfo:
		emp := form.Applicant.PrimaryEmployer()
		res.check(form, "employment", string(emp.Status))
		if emp.Status != models.EmploymentUnemployed {
			// Industry and position come from the first employer entry.
			res.check(form, "employerName", emp.Name)
			res.check(form, "industry", emp.Industry)
			res.check(form, "position", emp.Position)
			res.check(form, "income", emp.Income)
		}

	case StepHousingHistory:
		cur := form.Applicant.CurrentAddress
		res.check(form, "street", cur.Street)
		res.check(form, "city", cur.City)
		res.check(form, "state", cur.State)
		res.check(form, "zip", cur.Zip)
		if cur.Duration == "" {
			res.add("currentDuration", "Time at current address is required")
		}
		if cur.Duration == models.DurationUnderTwoYears {
			prev := form.Applicant.PreviousAddress
			res.checkAs(form, "previousStreet", "street", prev.Street)
			res.checkAs(form, "previousCity", "city", prev.City)
			res.checkAs(form, "previousState", "state", prev.State)
			res.checkAs(form, "previousZip", "zip", prev.Zip)
		}

	case StepLeaseHolders:
		// DOB validity is recomputed over the current slices at check time,
		// keyed by stable entity id, so removed entries can never leave a
		// stale error behind.
		for _, h := range form.LeaseHolders {
			if msg := dobRule(h.DOB, form); msg != "" {
				res.add(fmt.Sprintf("leaseHolder.%s.dob", h.ID), msg)
			}
		}
		for _, g := range form.Guarantors {
			if msg := dobRule(g.DOB, form); msg != "" {
				res.add(fmt.Sprintf("guarantor.%s.dob", g.ID), msg)
			}
		}

	case StepDocuments:
		if len(form.Documents) == 0 {
			res.add("documents", "Upload at least one ID document")
		}

	case StepReview:
		// Background-check consent cannot be granted implicitly.
		if !form.BackgroundCheck {
			res.add("backgroundCheck", "Background check authorization is required")
		}
	}

	res.IsValid = len(res.Errors) == 0
	return res
}

// PetInfoComplete reports whether every pet entry carries numeric age and
// weight, the prerequisite for pet-insurance checkout.
func PetInfoComplete(form *models.ApplicationForm) bool {
	if len(form.Pets) == 0 {
		return false
	}
	for _, p := range form.Pets {
		if fieldformat.Digits(p.Age) == "" || fieldformat.Digits(p.Weight) == "" {
			return false
		}
	}
	return true
}

func (r *StepResult) check(form *models.ApplicationForm, field, value string) {
	r.checkAs(form, field, field, value)
}

// checkAs validates value with rule's table entry but records the error
// under an alternate field key (previous-address fields reuse the current
// address rules).
func (r *StepResult) checkAs(form *models.ApplicationForm, key, rule, value string) {
	if msg := ValidateField(rule, value, form); msg != "" {
		r.add(key, msg)
	}
}

func (r *StepResult) add(field, msg string) {
	r.Errors[field] = msg
	r.MissingFields = append(r.MissingFields, field)
}
