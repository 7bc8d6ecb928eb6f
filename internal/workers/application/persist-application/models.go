// internal/workers/application/persist-application/models.go
package persistapplication

import "leasing-workers/internal/models"

type Input struct {
	Form      models.ApplicationForm `json:"applicationForm"`
	SessionID string                 `json:"sessionId,omitempty"`
}

type Output struct {
	ApplicationID string `json:"applicationId"`
}
