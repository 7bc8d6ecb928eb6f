// internal/models/property.go
package models

// LeaseTerm is a tenancy duration offered for a unit with its monthly rent
// and optional promotional concession.
type LeaseTerm struct {
	Months     int      `json:"months"`
	Rent       float64  `json:"rent"`
	Popular    bool     `json:"popular,omitempty"`
	Savings    *float64 `json:"savings,omitempty"`
	Concession *string  `json:"concession,omitempty"`
}

type Unit struct {
	ID            string      `json:"id"`
	Number        string      `json:"number"`
	Bedrooms      int         `json:"bedrooms"`
	Bathrooms     float64     `json:"bathrooms"`
	SquareFeet    int         `json:"squareFeet"`
	Floor         int         `json:"floor"`
	Available     bool        `json:"available"`
	Qualified     bool        `json:"qualified"`
	LeaseTerms    []LeaseTerm `json:"leaseTerms"`
	Amenities     []string    `json:"amenities,omitempty"`
	Images        []string    `json:"images,omitempty"`
	Deposit       float64     `json:"deposit"`
	AvailableDate string      `json:"availableDate,omitempty"`
}

// TermRent returns the rent for the requested lease term and whether that
// term is offered for the unit.
func (u Unit) TermRent(months int) (float64, bool) {
	for _, t := range u.LeaseTerms {
		if t.Months == months {
			return t.Rent, true
		}
	}
	return 0, false
}

type PetPolicy struct {
	Allowed bool    `json:"allowed"`
	Fee     float64 `json:"fee,omitempty"`
	Deposit float64 `json:"deposit,omitempty"`
}

type Property struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Street    string    `json:"street"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Zip       string    `json:"zip"`
	Amenities []string  `json:"amenities,omitempty"`
	Latitude  float64   `json:"latitude,omitempty"`
	Longitude float64   `json:"longitude,omitempty"`
	PetPolicy PetPolicy `json:"petPolicy"`
	Units     []Unit    `json:"units,omitempty"`
}
