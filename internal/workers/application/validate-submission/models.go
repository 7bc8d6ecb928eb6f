// internal/workers/application/validate-submission/models.go
package validatesubmission

import "leasing-workers/internal/models"

type Input struct {
	Form models.ApplicationForm `json:"applicationForm"`
}

type Output struct {
	IsValid bool `json:"isValid"`
}

// StepFailure reports the first incomplete step or violated submit-time
// rule, with the step index the applicant should be navigated back to.
type StepFailure struct {
	Message     string            `json:"message"`
	Step        int               `json:"step"`
	StepName    string            `json:"stepName"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}
