// internal/workers/application/send-confirmation/models.go
package sendconfirmation

type Input struct {
	ApplicationID string `json:"applicationId"`
	ApplicantName string `json:"applicantName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"` // E.164, optional
}

type Output struct {
	EmailSent bool `json:"emailSent"`
	SMSSent   bool `json:"smsSent"`
}
