// internal/pricing/catalog.go

// Package pricing computes order totals for a selected unit, lease term and
// optional add-on products. All math is pure; the engine holds only the
// resolved inputs for a single quote.
package pricing

import "math"

// ProductID identifies an add-on product in the fixed catalog.
type ProductID string

const (
	RentersInsurance   ProductID = "renters-insurance"
	DepositAlternative ProductID = "deposit-alternative"
	PersonalContents   ProductID = "personal-contents"
	FlexRent           ProductID = "flex-rent"
	CreditReporting    ProductID = "credit-reporting"
	PetInsurance       ProductID = "pet-insurance"
)

// ContentsTiers maps personal-contents coverage amounts to monthly price.
var ContentsTiers = map[int]float64{
	3000:  3,
	7500:  4.5,
	15000: 6,
	30000: 8,
}

// DefaultContentsTier is pre-selected in new orders but inactive until the
// user opts into the product.
const DefaultContentsTier = 7500

const (
	rentersInsurancePrice = 11
	flexRentFee           = 30
	creditReportingPrice  = 7
	petInsurancePrice     = 4

	// Flex rent pulls this share of base rent into the monthly-only bucket.
	flexRentShare = 0.5

	depositAltRentRate = 0.02
	annualDiscountRate = 0.07
)

// Product describes one catalog entry. Tiered tells callers whether the
// selection carries a coverage option; flat products cannot have one.
type Product struct {
	ID       ProductID
	Name     string
	Required bool
	Tiered   bool
}

// Catalog is the fixed product lineup, in display order.
var Catalog = []Product{
	{ID: RentersInsurance, Name: "Renter's Insurance", Required: true},
	{ID: DepositAlternative, Name: "Security Deposit Alternative", Required: true},
	{ID: PersonalContents, Name: "Personal Contents Coverage", Tiered: true},
	{ID: FlexRent, Name: "Flex Rent Payments"},
	{ID: CreditReporting, Name: "Credit Reporting"},
	{ID: PetInsurance, Name: "Pet Insurance"},
}

// depositAltFee is the credit-score step function added on top of the
// rent-proportional component of the deposit alternative.
func depositAltFee(creditScore int) float64 {
	switch {
	case creditScore >= 725:
		return 0
	case creditScore >= 675:
		return 15
	case creditScore >= 625:
		return 25
	default:
		return 35
	}
}

// annualEligible products can be billed as one discounted annual charge.
// Flex rent is the exception: both its fee and the rent share it pulls in
// stay monthly regardless of the annual toggle.
func annualEligible(id ProductID) bool {
	return id != FlexRent
}

// DepositAlternativePrice is round(rent*0.02) plus the credit tier fee.
func DepositAlternativePrice(baseRent float64, creditScore int) float64 {
	return math.Round(baseRent*depositAltRentRate) + depositAltFee(creditScore)
}
