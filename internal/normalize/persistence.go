// internal/normalize/persistence.go
package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"leasing-workers/internal/fieldformat"
	"leasing-workers/internal/models"
)

// PersistenceRecord is the flattened shape written to the document store.
// It is deliberately not the vendor payload: one submission produces both.
type PersistenceRecord struct {
	ID              string    `json:"id"`
	ApplicantName   string    `json:"applicantName"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	CurrentAddress  string    `json:"currentAddress"`
	AnnualIncome    int64     `json:"annualIncome"`
	PetDetails      string    `json:"petDetails"`
	PropertyID      string    `json:"propertyId"`
	UnitID          string    `json:"unitId"`
	LeaseTermMonths int       `json:"leaseTermMonths"`
	MoveInDate      string    `json:"moveInDate"`
	SubmittedAt     time.Time `json:"submittedAt"`
}

// BuildPersistenceRecord flattens the form for the durable application
// record. The record ID is assigned by the store at insert time.
func BuildPersistenceRecord(form *models.ApplicationForm) *PersistenceRecord {
	a := form.Applicant

	var income int64
	if digits := fieldformat.NormalizeIncome(a.PrimaryEmployer().Income); digits != "" {
		income, _ = strconv.ParseInt(digits, 10, 64)
	}

	pets := make([]string, 0, len(form.Pets))
	for _, p := range form.Pets {
		pets = append(pets, fmt.Sprintf("%s: %s (%s years, %s lbs)",
			p.Type, p.Name, fieldformat.Digits(p.Age), fieldformat.Digits(p.Weight)))
	}

	return &PersistenceRecord{
		ApplicantName:   strings.TrimSpace(a.FirstName + " " + a.LastName),
		Email:           a.Email,
		Phone:           fieldformat.PhoneE164(a.Phone),
		CurrentAddress:  joinAddress(a.CurrentAddress),
		AnnualIncome:    income,
		PetDetails:      strings.Join(pets, "; "),
		PropertyID:      form.PropertyID,
		UnitID:          form.UnitID,
		LeaseTermMonths: a.LeaseTermMonths,
		MoveInDate:      fieldformat.ISODate(a.MoveInDate),
	}
}

// joinAddress concatenates address parts into one display string, skipping
// blanks.
func joinAddress(addr models.Address) string {
	parts := []string{}
	for _, p := range []string{addr.Street, addr.City, addr.State, addr.Zip} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
