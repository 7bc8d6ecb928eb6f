// internal/pricing/engine.go
package pricing

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidCoupon       = errors.New("INVALID_COUPON")
	ErrInvalidContentsTier = errors.New("INVALID_CONTENTS_TIER")
	ErrPetInfoRequired     = errors.New("PET_INFO_REQUIRED")
)

// Selection is the user's state for one product. Tier is meaningful only for
// tiered products; the typed catalog keeps flat products from carrying one.
type Selection struct {
	Selected bool `json:"selected"`
	Tier     int  `json:"tier,omitempty"`
}

// Order is the mutable product-selection state for one checkout.
type Order struct {
	Selections map[ProductID]Selection `json:"selections"`
	Annual     bool                    `json:"annual"`
	CouponCode string                  `json:"couponCode,omitempty"`
}

// NewOrder returns an empty order with the personal-contents default tier
// pre-set but not selected.
func NewOrder() Order {
	return Order{
		Selections: map[ProductID]Selection{
			PersonalContents: {Selected: false, Tier: DefaultContentsTier},
		},
	}
}

// RentCurve derives the monthly rent for a non-baseline lease term. Real
// deployments supply this from a pricing collaborator; DefaultRentCurve is a
// linear month-distance fallback.
type RentCurve func(baseRent float64, months int) float64

// DefaultRentCurve marks up shorter terms 5% per month under 12 and marks
// down longer terms 2% per month over, rounded to the nearest dollar.
func DefaultRentCurve(baseRent float64, months int) float64 {
	switch {
	case months == 12 || months <= 0:
		return baseRent
	case months < 12:
		return math.Round(baseRent * (1 + float64(12-months)*0.05))
	default:
		return math.Round(baseRent * (1 - float64(months-12)*0.02))
	}
}

// Engine prices orders against one resolved unit + lease-term context.
type Engine struct {
	baseRent    float64
	creditScore int
	rentForTerm RentCurve
	coupons     map[string]float64 // code -> percent off
}

// DefaultCoupons is the shipped coupon table.
var DefaultCoupons = map[string]float64{"111": 5}

func NewEngine(baseRent float64, creditScore int, opts ...Option) *Engine {
	e := &Engine{
		baseRent:    baseRent,
		creditScore: creditScore,
		rentForTerm: DefaultRentCurve,
		coupons:     DefaultCoupons,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type Option func(*Engine)

// WithRentCurve replaces the fallback lease-term pricing strategy.
func WithRentCurve(curve RentCurve) Option {
	return func(e *Engine) { e.rentForTerm = curve }
}

// WithCoupons replaces the coupon table.
func WithCoupons(coupons map[string]float64) Option {
	return func(e *Engine) { e.coupons = coupons }
}

// RentForTerm resolves the monthly rent for a lease term when the unit did
// not supply an explicit one.
func (e *Engine) RentForTerm(months int) float64 {
	return e.rentForTerm(e.baseRent, months)
}

// ValidateCoupon resolves a coupon code to its discount percent. An empty
// code is simply "no coupon"; any other unknown code is a user-facing error.
// There is no memory of previously valid codes: changing the field away from
// a valid code revokes the discount on the next calculation.
func (e *Engine) ValidateCoupon(code string) (float64, error) {
	if code == "" {
		return 0, nil
	}
	pct, ok := e.coupons[code]
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a valid promo code", ErrInvalidCoupon, code)
	}
	return pct, nil
}

// Price returns the monthly price of one product given the engine context.
func (e *Engine) Price(id ProductID, sel Selection) (float64, error) {
	switch id {
	case RentersInsurance:
		return rentersInsurancePrice, nil
	case DepositAlternative:
		return DepositAlternativePrice(e.baseRent, e.creditScore), nil
	case PersonalContents:
		tier := sel.Tier
		if tier == 0 {
			tier = DefaultContentsTier
		}
		price, ok := ContentsTiers[tier]
		if !ok {
			return 0, fmt.Errorf("%w: no coverage tier %d", ErrInvalidContentsTier, tier)
		}
		return price, nil
	case FlexRent:
		return flexRentFee, nil
	case CreditReporting:
		return creditReportingPrice, nil
	case PetInsurance:
		return petInsurancePrice, nil
	default:
		return 0, fmt.Errorf("unknown product %q", id)
	}
}

// Totals is the payment summary handed to the checkout collaborator.
type Totals struct {
	MonthlyOnly     float64 `json:"monthlyOnly"`
	FlexiblePayment float64 `json:"flexiblePayment"`
	Subtotal        float64 `json:"subtotal"`
	AnnualFlexible  float64 `json:"annualFlexible"`
	AnnualDiscount  float64 `json:"annualDiscount"`
	CouponDiscount  float64 `json:"couponDiscount"`
	Total           float64 `json:"total"`
}

// CalculateTotal prices the order. Required products are always included;
// optional products only when selected. Products split into an
// annual-eligible bucket (discountable when the annual toggle is on) and a
// monthly-only bucket (the flex-rent fee plus its rent share), which the
// annual toggle never touches. The coupon percent applies to the
// pre-annual-discount subtotal.
func (e *Engine) CalculateTotal(order Order) (Totals, error) {
	var monthlyOnly, flexible float64

	for _, product := range Catalog {
		sel := order.Selections[product.ID]
		if !product.Required && !sel.Selected {
			continue
		}

		price, err := e.Price(product.ID, sel)
		if err != nil {
			return Totals{}, err
		}

		if annualEligible(product.ID) {
			flexible += price
		} else {
			monthlyOnly += price + e.baseRent*flexRentShare
		}
	}

	subtotal := monthlyOnly + flexible

	var annualFlexible, annualDiscount float64
	if order.Annual {
		annualDiscount = flexible * 12 * annualDiscountRate
		annualFlexible = flexible*12 - annualDiscount
	}

	couponPct, err := e.ValidateCoupon(order.CouponCode)
	if err != nil {
		return Totals{}, err
	}
	couponDiscount := couponPct / 100 * subtotal

	total := monthlyOnly + flexible - couponDiscount
	if order.Annual {
		total = monthlyOnly + annualFlexible - couponDiscount
	}

	return Totals{
		MonthlyOnly:     round2(monthlyOnly),
		FlexiblePayment: round2(flexible),
		Subtotal:        round2(subtotal),
		AnnualFlexible:  round2(annualFlexible),
		AnnualDiscount:  round2(annualDiscount),
		CouponDiscount:  round2(couponDiscount),
		Total:           round2(total),
	}, nil
}

// ValidateCheckout enforces cross-cutting prerequisites before the totals
// are handed to the payment collaborator. Pet insurance needs pet info on
// the application first.
func (e *Engine) ValidateCheckout(order Order, hasPetInfo bool) error {
	if order.Selections[PetInsurance].Selected && !hasPetInfo {
		return fmt.Errorf("%w: add pet details before checking out with pet insurance", ErrPetInfoRequired)
	}
	return nil
}

// round2 rounds to cents.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
