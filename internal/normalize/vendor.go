// internal/normalize/vendor.go

// Package normalize reshapes the validated form aggregate into the two
// outbound contracts: the screening-vendor JSON payload and the flat
// persistence record. Everything here is a pure mapping.
package normalize

import (
	"strings"

	"leasing-workers/internal/fieldformat"
	"leasing-workers/internal/models"
)

// Vendor contract types. Field names are an external contract and must not
// change.

type VendorAddress struct {
	Street   string `json:"Street"`
	City     string `json:"City"`
	State    string `json:"State"`
	Zip      string `json:"Zip"`
	Duration string `json:"Duration"`
}

type VendorEmployer struct {
	Name     string `json:"Name"`
	Industry string `json:"Industry,omitempty"`
	Position string `json:"Position,omitempty"`
	Income   string `json:"Income"`
	Status   string `json:"Status,omitempty"`
}

type VendorPerson struct {
	FirstName         string           `json:"FirstName"`
	MiddleInitial     string           `json:"MiddleInitial,omitempty"`
	LastName          string           `json:"LastName"`
	DOB               string           `json:"DOB"`
	SSN               string           `json:"SSN"`
	Email             string           `json:"Email"`
	Phone             string           `json:"Phone"`
	CitizenshipStatus string           `json:"CitizenshipStatus"`
	Addresses         []VendorAddress  `json:"Addresses"`
	Employers         []VendorEmployer `json:"Employers"`
}

type VendorOccupant struct {
	FirstName     string `json:"FirstName"`
	MiddleInitial string `json:"MiddleInitial,omitempty"`
	LastName      string `json:"LastName"`
	DOB           string `json:"DOB,omitempty"`
	Age           *int   `json:"Age,omitempty"`
	SSN           string `json:"SSN,omitempty"`
}

type VendorPet struct {
	Type          string `json:"Type"`
	Breed         string `json:"Breed,omitempty"`
	Age           string `json:"Age"`
	Weight        string `json:"Weight"`
	ServiceAnimal bool   `json:"ServiceAnimal,omitempty"`
}

type VendorVehicle struct {
	Type         string `json:"Type"`
	Make         string `json:"Make"`
	Model        string `json:"Model"`
	Year         string `json:"Year"`
	Color        string `json:"Color,omitempty"`
	LicensePlate string `json:"LicensePlate,omitempty"`
}

type VendorEmergencyContact struct {
	Name     string `json:"Name"`
	Phone    string `json:"Phone"`
	Email    string `json:"Email,omitempty"`
	Relation string `json:"Relation"`
}

type VendorAdditionalInfo struct {
	Pets             []VendorPet            `json:"Pets"`
	Vehicles         []VendorVehicle        `json:"Vehicles"`
	EmergencyContact VendorEmergencyContact `json:"EmergencyContact"`
	Notes            string                 `json:"Notes,omitempty"`
}

type VendorPayload struct {
	FirstName           string               `json:"FirstName"`
	MiddleInitial       string               `json:"MiddleInitial,omitempty"`
	LastName            string               `json:"LastName"`
	Email               string               `json:"Email"`
	Phone               string               `json:"Phone"`
	DOB                 string               `json:"DOB"`
	SSN                 string               `json:"SSN"`
	CitizenshipStatus   string               `json:"CitizenshipStatus"`
	MoveInDate          string               `json:"MoveInDate"`
	LeaseTerm           int                  `json:"LeaseTerm"`
	Addresses           []VendorAddress      `json:"Addresses"`
	Employers           []VendorEmployer     `json:"Employers"`
	LeaseHolders        []VendorPerson       `json:"LeaseHolders"`
	Guarantors          []VendorPerson       `json:"Guarantors"`
	AdditionalOccupants []VendorOccupant     `json:"AdditionalOccupants"`
	AdditionalInfo      VendorAdditionalInfo `json:"AdditionalInfo"`
}

// durationLabel translates an address duration bucket into the vendor's
// human-readable wording.
func durationLabel(bucket string) string {
	switch bucket {
	case models.DurationUnderTwoYears:
		return "Less than 2 years"
	case models.DurationTwoPlus, models.DurationTwoToFive, models.DurationFivePlus:
		return "More than 2 years"
	default:
		return "Current"
	}
}

// MapAddresses emits the current address when its street is non-empty, then
// the previous address under the "Previous" tag with the same rule.
func MapAddresses(current, previous models.Address) []VendorAddress {
	out := []VendorAddress{}
	if current.Street != "" {
		out = append(out, VendorAddress{
			Street:   current.Street,
			City:     current.City,
			State:    current.State,
			Zip:      current.Zip,
			Duration: durationLabel(current.Duration),
		})
	}
	if previous.Street != "" {
		out = append(out, VendorAddress{
			Street:   previous.Street,
			City:     previous.City,
			State:    previous.State,
			Zip:      previous.Zip,
			Duration: "Previous",
		})
	}
	return out
}

// MapEmployers drops unnamed employer rows and strips display commas off
// income before emission.
func MapEmployers(employers []models.Employer) []VendorEmployer {
	out := []VendorEmployer{}
	for _, e := range employers {
		if e.Name == "" {
			continue
		}
		out = append(out, VendorEmployer{
			Name:     e.Name,
			Industry: e.Industry,
			Position: e.Position,
			Income:   fieldformat.NormalizeIncome(e.Income),
			Status:   string(e.Status),
		})
	}
	return out
}

func citizenshipStatus(usCitizen *bool) string {
	if usCitizen != nil && *usCitizen {
		return "Citizen"
	}
	return "Non-Citizen"
}

// MapPerson maps a lease holder into the vendor person record.
func MapPerson(p models.Person) VendorPerson {
	return VendorPerson{
		FirstName:         p.FirstName,
		MiddleInitial:     p.MiddleInitial,
		LastName:          p.LastName,
		DOB:               fieldformat.ISODate(p.DOB),
		SSN:               fieldformat.Digits(p.SSN),
		Email:             p.Email,
		Phone:             fieldformat.PhoneE164(p.Phone),
		CitizenshipStatus: citizenshipStatus(p.USCitizen),
		Addresses:         MapAddresses(p.CurrentAddress, p.PreviousAddress),
		Employers:         MapEmployers(p.Employers),
	}
}

// MapGuarantor maps a guarantor. Guarantor records are additionally
// title-cased on name, employer and state fields; applicants and lease
// holders are not. The asymmetry is preserved for vendor-payload
// compatibility.
func MapGuarantor(p models.Person) VendorPerson {
	rec := MapPerson(p)
	rec.FirstName = titleCase(rec.FirstName)
	rec.LastName = titleCase(rec.LastName)
	for i := range rec.Addresses {
		rec.Addresses[i].State = strings.ToUpper(rec.Addresses[i].State)
	}
	for i := range rec.Employers {
		rec.Employers[i].Name = titleCase(rec.Employers[i].Name)
	}
	return rec
}

// MapOccupant emits DOB only for adults with one on file, Age only for
// minors with a positive age, and neither when the age is unresolvable.
func MapOccupant(o models.AdditionalOccupant) VendorOccupant {
	rec := VendorOccupant{
		FirstName:     o.FirstName,
		MiddleInitial: o.MiddleInitial,
		LastName:      o.LastName,
	}
	switch {
	case o.Age >= 18 && o.DOB != "":
		rec.DOB = fieldformat.ISODate(o.DOB)
		rec.SSN = fieldformat.Digits(o.SSN)
	case o.Age > 0 && o.Age < 18:
		age := o.Age
		rec.Age = &age
	}
	return rec
}

// BuildVendorPayload assembles the full screening submission for one
// application form.
func BuildVendorPayload(form *models.ApplicationForm) *VendorPayload {
	a := form.Applicant

	holders := make([]VendorPerson, 0, len(form.LeaseHolders))
	for _, h := range form.LeaseHolders {
		holders = append(holders, MapPerson(h))
	}
	guarantors := make([]VendorPerson, 0, len(form.Guarantors))
	for _, g := range form.Guarantors {
		guarantors = append(guarantors, MapGuarantor(g))
	}
	occupants := make([]VendorOccupant, 0, len(form.Occupants))
	for _, o := range form.Occupants {
		occupants = append(occupants, MapOccupant(o))
	}

	pets := make([]VendorPet, 0, len(form.Pets))
	for _, p := range form.Pets {
		pets = append(pets, VendorPet{
			Type:          p.Type,
			Breed:         p.Breed,
			Age:           fieldformat.Digits(p.Age),
			Weight:        fieldformat.Digits(p.Weight) + " lbs",
			ServiceAnimal: p.ServiceAnimal,
		})
	}
	vehicles := make([]VendorVehicle, 0, len(form.Vehicles))
	for _, v := range form.Vehicles {
		vehicles = append(vehicles, VendorVehicle{
			Type:         v.Type,
			Make:         v.Make,
			Model:        v.Model,
			Year:         v.Year,
			Color:        v.Color,
			LicensePlate: strings.ToUpper(v.LicensePlate),
		})
	}

	return &VendorPayload{
		FirstName:           a.FirstName,
		MiddleInitial:       a.MiddleInitial,
		LastName:            a.LastName,
		Email:               a.Email,
		Phone:               fieldformat.PhoneE164(a.Phone),
		DOB:                 fieldformat.ISODate(a.DOB),
		SSN:                 fieldformat.Digits(a.SSN),
		CitizenshipStatus:   citizenshipStatus(a.USCitizen),
		MoveInDate:          fieldformat.ISODate(a.MoveInDate),
		LeaseTerm:           a.LeaseTermMonths,
		Addresses:           MapAddresses(a.CurrentAddress, a.PreviousAddress),
		Employers:           MapEmployers(a.Employers),
		LeaseHolders:        holders,
		Guarantors:          guarantors,
		AdditionalOccupants: occupants,
		AdditionalInfo: VendorAdditionalInfo{
			Pets:     pets,
			Vehicles: vehicles,
			EmergencyContact: VendorEmergencyContact{
				Name:     form.EmergencyContact.Name,
				Phone:    fieldformat.PhoneE164(form.EmergencyContact.Phone),
				Email:    form.EmergencyContact.Email,
				Relation: form.EmergencyContact.Relation,
			},
			Notes: form.Notes,
		},
	}
}

// titleCase upper-cases the first letter of each space- or hyphen-separated
// word and lower-cases the rest.
func titleCase(s string) string {
	runes := []rune(strings.ToLower(s))
	start := true
	for i, r := range runes {
		if start && r >= 'a' && r <= 'z' {
			runes[i] = r - 'a' + 'A'
		}
		start = r == ' ' || r == '-'
	}
	return string(runes)
}
