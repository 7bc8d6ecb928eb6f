// internal/workers/application/build-screening-payload/models.go
package buildscreeningpayload

import (
	"leasing-workers/internal/models"
	"leasing-workers/internal/normalize"
)

type Input struct {
	Form models.ApplicationForm `json:"applicationForm"`
}

type Output struct {
	Payload              *normalize.VendorPayload `json:"screeningPayload"`
	ScreeningReferenceID string                   `json:"screeningReferenceId"`
}
