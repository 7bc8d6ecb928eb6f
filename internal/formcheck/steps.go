// internal/formcheck/steps.go

// Package formcheck validates the applicant aggregate at three
// granularities: single fields as the user types, whole steps to gate
// forward navigation, and a final ordered submission battery. Validation
// results are always data, never panics or thrown errors.
package formcheck

// Step indexes the intake wizard. Values double as the navigation targets
// reported by submission errors.
type Step int

const (
	StepPersonalInfo Step = iota
	StepFinancialInfo
	StepHousingHistory
	StepLeaseHolders
	StepOccupants
	StepAdditionalInfo
	StepDocuments
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepPersonalInfo:
		return "Personal Info"
	case StepFinancialInfo:
		return "Financial Info"
	case StepHousingHistory:
		return "Housing History"
	case StepLeaseHolders:
		return "Lease Holders & Guarantors"
	case StepOccupants:
		return "Additional Occupants"
	case StepAdditionalInfo:
		return "Additional Info"
	case StepDocuments:
		return "Documents"
	case StepReview:
		return "Review & Submit"
	default:
		return "Unknown"
	}
}
