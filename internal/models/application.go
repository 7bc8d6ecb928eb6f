// internal/models/application.go
package models

// EmploymentStatus is the fixed employment enum used across the form.
type EmploymentStatus string

const (
	EmploymentFullTime     EmploymentStatus = "full-time"
	EmploymentPartTime     EmploymentStatus = "part-time"
	EmploymentContract     EmploymentStatus = "contract"
	EmploymentSelfEmployed EmploymentStatus = "self-employed"
	EmploymentStudent      EmploymentStatus = "student"
	EmploymentRetired      EmploymentStatus = "retired"
	EmploymentUnemployed   EmploymentStatus = "unemployed"
)

// DurationBucket values for "how long at current address".
const (
	DurationUnderTwoYears = "0-2"
	DurationTwoPlus       = "2+"
	DurationTwoToFive     = "2-5"
	DurationFivePlus      = "5+"
)

type Address struct {
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	Duration string `json:"duration,omitempty"` // bucket, current address only
}

type Employer struct {
	Name     string           `json:"name"`
	Industry string           `json:"industry"`
	Position string           `json:"position"`
	Income   string           `json:"income"` // digit string, comma-grouped on blur
	Status   EmploymentStatus `json:"status"`
}

// Person carries the fields shared by the applicant, lease holders and
// guarantors. ID is a stable uuid assigned at entry creation so per-person
// validation state survives list reordering and removals.
type Person struct {
	ID              string     `json:"id"`
	FirstName       string     `json:"firstName"`
	MiddleInitial   string     `json:"middleInitial,omitempty"`
	LastName        string     `json:"lastName"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	DOB             string     `json:"dob"` // MM/DD/YYYY
	SSN             string     `json:"ssn"` // raw digits, never the display mask
	USCitizen       *bool      `json:"usCitizen,omitempty"`
	CurrentAddress  Address    `json:"currentAddress"`
	PreviousAddress Address    `json:"previousAddress,omitempty"`
	Employers       []Employer `json:"employers,omitempty"`
	SameAsPrimary   bool       `json:"sameAsPrimary,omitempty"` // lease holders / guarantors only
}

// PrimaryEmployer returns the first employer entry, which sources the
// industry/position fields on the financial-info step.
func (p Person) PrimaryEmployer() Employer {
	if len(p.Employers) == 0 {
		return Employer{}
	}
	return p.Employers[0]
}

type Applicant struct {
	Person
	MoveInDate      string `json:"moveInDate"` // MM/DD/YYYY
	LeaseTermMonths int    `json:"leaseTermMonths"`
}

// AdditionalOccupant is a household member who is not on the lease. Age and
// DOB are mutually exclusive by the adult threshold: minors report Age,
// adults report DOB (and SSN).
type AdditionalOccupant struct {
	ID            string `json:"id"`
	FirstName     string `json:"firstName"`
	MiddleInitial string `json:"middleInitial,omitempty"`
	LastName      string `json:"lastName"`
	Age           int    `json:"age,omitempty"`
	DOB           string `json:"dob,omitempty"`
	SSN           string `json:"ssn,omitempty"`
}

type Pet struct {
	Type          string `json:"type"`
	Name          string `json:"name,omitempty"`
	Breed         string `json:"breed,omitempty"`
	Age           string `json:"age"`    // numeric digits
	Weight        string `json:"weight"` // numeric digits, lbs
	ServiceAnimal bool   `json:"serviceAnimal,omitempty"`
}

type Vehicle struct {
	Type         string `json:"type"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         string `json:"year"` // 4 digits, 1900..current year
	Color        string `json:"color,omitempty"`
	LicensePlate string `json:"licensePlate,omitempty"` // upper-cased on input
}

type EmergencyContact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	Relation string `json:"relation"`
}

type Document struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ApplicationForm is the whole applicant aggregate collected across the
// intake steps. It is transient session state until submission, at which
// point it is normalized into the vendor payload and the persistence record.
type ApplicationForm struct {
	Applicant        Applicant            `json:"applicant"`
	LeaseHolders     []Person             `json:"leaseHolders"`
	Guarantors       []Person             `json:"guarantors"`
	Occupants        []AdditionalOccupant `json:"occupants"`
	Pets             []Pet                `json:"pets"`
	HasVehicles      bool                 `json:"hasVehicles"`
	Vehicles         []Vehicle            `json:"vehicles"`
	EmergencyContact EmergencyContact     `json:"emergencyContact"`
	Documents        []Document           `json:"documents"`
	BackgroundCheck  bool                 `json:"backgroundCheckAuthorized"`
	Notes            string               `json:"notes,omitempty"`
	PropertyID       string               `json:"propertyId,omitempty"`
	UnitID           string               `json:"unitId,omitempty"`
}
