// internal/formcheck/fields.go
package formcheck

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"leasing-workers/internal/fieldformat"
	"leasing-workers/internal/models"
)

// fieldRule validates one named field. The form is passed for the handful
// of rules whose applicability depends on sibling state (employment).
type fieldRule func(value string, form *models.ApplicationForm) string

var fieldRules = map[string]fieldRule{
	"firstName":  requiredRule("First name is required"),
	"lastName":   requiredRule("Last name is required"),
	"email":      emailRule,
	"phone":      phoneRule,
	"ssn":        ssnRule,
	"dob":        dobRule,
	"moveInDate": moveInDateRule,
	"street":     requiredRule("Street address is required"),
	"city":       requiredRule("City is required"),
	"state":      requiredRule("State is required"),
	"zip":        zipRule,
	"employment": requiredRule("Employment status is required"),

	// Employer fields short-circuit clean when the applicant is unemployed.
	"employerName": employedRule("Employer name is required"),
	"industry":     employedRule("Industry is required"),
	"position":     employedRule("Position is required"),
	"income":       incomeRule,

	"emergencyName":     requiredRule("Emergency contact name is required"),
	"emergencyPhone":    phoneRule,
	"emergencyRelation": requiredRule("Relation is required"),
}

// ValidateField runs the per-field rule for name. Unknown fields validate
// clean so new UI fields never block input.
func ValidateField(name, value string, form *models.ApplicationForm) string {
	rule, ok := fieldRules[name]
	if !ok {
		return ""
	}
	return rule(value, form)
}

func requiredRule(msg string) fieldRule {
	return func(value string, _ *models.ApplicationForm) string {
		if value == "" {
			return msg
		}
		return ""
	}
}

func emailRule(value string, _ *models.ApplicationForm) string {
	if value == "" {
		return "Email is required"
	}
	if err := validation.Validate(value, is.Email); err != nil {
		return "Enter a valid email address"
	}
	return ""
}

func phoneRule(value string, _ *models.ApplicationForm) string {
	if value == "" {
		return "Phone number is required"
	}
	if len(fieldformat.Digits(value)) != 10 {
		return "Phone number must have 10 digits"
	}
	return ""
}

func ssnRule(value string, _ *models.ApplicationForm) string {
	if value == "" {
		return "SSN is required"
	}
	if len(fieldformat.Digits(value)) != 9 {
		return "SSN must have 9 digits"
	}
	return ""
}

func zipRule(value string, _ *models.ApplicationForm) string {
	if value == "" {
		return "ZIP code is required"
	}
	if err := validation.Validate(value, is.Digit, validation.Length(5, 5)); err != nil {
		return "ZIP code must be 5 digits"
	}
	return ""
}

func dobRule(value string, _ *models.ApplicationForm) string {
	if value == "" {
		return "Date of birth is required"
	}
	return fieldformat.ValidateDOB(value)
}

func moveInDateRule(value string, _ *models.ApplicationForm) string {
	if value == "" {
		return "Move-in date is required"
	}
	// Move-in dates sit in the future, outside ValidateDate's year range,
	// so only the MM/DD/YYYY shape is checked here.
	if fieldformat.ISODate(value) == value {
		return "Date must be in MM/DD/YYYY format"
	}
	return ""
}

func employedRule(msg string) fieldRule {
	return func(value string, form *models.ApplicationForm) string {
		if unemployed(form) {
			return ""
		}
		if value == "" {
			return msg
		}
		return ""
	}
}

func incomeRule(value string, form *models.ApplicationForm) string {
	if unemployed(form) {
		return ""
	}
	if fieldformat.NormalizeIncome(value) == "" {
		return "Income is required"
	}
	return ""
}

func unemployed(form *models.ApplicationForm) bool {
	return form != nil && form.Applicant.PrimaryEmployer().Status == models.EmploymentUnemployed
}
