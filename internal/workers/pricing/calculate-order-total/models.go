// internal/workers/pricing/calculate-order-total/models.go
package calculateordertotal

import (
	"leasing-workers/internal/models"
	"leasing-workers/internal/pricing"
)

type Input struct {
	Unit            *models.Unit  `json:"unit,omitempty"`
	BaseRent        float64       `json:"baseRent,omitempty"`
	CreditScore     int           `json:"creditScore"`
	LeaseTermMonths int           `json:"leaseTermMonths"`
	HasPetInfo      bool          `json:"hasPetInfo"`
	Order           pricing.Order `json:"order"`
}

type Output struct {
	MonthlyRent float64        `json:"monthlyRent"`
	Totals      pricing.Totals `json:"totals"`
}
