// internal/workers/pricing/calculate-order-total/handler_test.go
package calculateordertotal

import (
	"context"
	"testing"
	"time"

	"leasing-workers/internal/common/errors"
	"leasing-workers/internal/common/logger"
	"leasing-workers/internal/models"
	"leasing-workers/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestHandler(t *testing.T) *Handler {
	config := &Config{
		Timeout: 10 * time.Second,
		Coupons: map[string]float64{"111": 5},
	}
	return NewHandler(config, logger.NewTestLogger(t))
}

func testUnit() *models.Unit {
	return &models.Unit{
		ID:        "unit-14",
		Number:    "214",
		Bedrooms:  2,
		Available: true,
		Qualified: true,
		LeaseTerms: []models.LeaseTerm{
			{Months: 12, Rent: 2000},
			{Months: 6, Rent: 2200},
		},
	}
}

func createInput() *Input {
	return &Input{
		Unit:            testUnit(),
		CreditScore:     700,
		LeaseTermMonths: 12,
		Order:           pricing.NewOrder(),
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_RequiredProductsOnly(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(), createInput())

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, 2000.0, output.MonthlyRent)
	// Renter's insurance 11 plus deposit alternative round(2000*0.02)+15.
	assert.Equal(t, 66.0, output.Totals.Subtotal)
	assert.Equal(t, 66.0, output.Totals.Total)
	assert.Equal(t, 0.0, output.Totals.MonthlyOnly)
}

func TestHandler_Execute_UnitTermTableWins(t *testing.T) {
	handler := createTestHandler(t)
	input := createInput()
	input.LeaseTermMonths = 6
	input.BaseRent = 9999 // ignored, the unit publishes a 6-month rent

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, 2200.0, output.MonthlyRent)
}

func TestHandler_Execute_CurveFallbackWithoutUnit(t *testing.T) {
	handler := createTestHandler(t)
	input := createInput()
	input.Unit = nil
	input.BaseRent = 2000
	input.LeaseTermMonths = 6

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	// 5% markup per month under twelve.
	assert.Equal(t, 2600.0, output.MonthlyRent)
}

func TestHandler_Execute_CouponApplied(t *testing.T) {
	handler := createTestHandler(t)
	input := createInput()
	input.Order.CouponCode = "111"

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, 3.3, output.Totals.CouponDiscount)
	assert.Equal(t, 62.7, output.Totals.Total)
}

func TestHandler_Execute_ConfiguredCurveSlopes(t *testing.T) {
	config := &Config{
		Timeout:        10 * time.Second,
		Coupons:        map[string]float64{"111": 5},
		ShortTermSlope: 0.10,
		LongTermSlope:  0.01,
	}
	handler := NewHandler(config, logger.NewTestLogger(t))

	input := createInput()
	input.Unit = nil
	input.BaseRent = 2000
	input.LeaseTermMonths = 6

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	// 10% markup per month under twelve with the configured slope.
	assert.Equal(t, 3200.0, output.MonthlyRent)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_InvalidCoupon(t *testing.T) {
	handler := createTestHandler(t)
	input := createInput()
	input.Order.CouponCode = "999"

	output, err := handler.Execute(context.Background(), input)

	assert.Nil(t, output)
	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInvalidCoupon, stdErr.Code)
	assert.False(t, stdErr.Retryable)
}

func TestHandler_Execute_PetInsuranceRequiresPetInfo(t *testing.T) {
	handler := createTestHandler(t)
	input := createInput()
	input.Order.Selections[pricing.PetInsurance] = pricing.Selection{Selected: true}
	input.HasPetInfo = false

	output, err := handler.Execute(context.Background(), input)

	assert.Nil(t, output)
	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodePetInfoRequired, stdErr.Code)

	input.HasPetInfo = true
	output, err = handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.NotNil(t, output)
}

func TestHandler_Execute_LeaseTermNotFound(t *testing.T) {
	handler := createTestHandler(t)
	input := createInput()
	input.LeaseTermMonths = 9 // not in the unit's table
	input.BaseRent = 0

	output, err := handler.Execute(context.Background(), input)

	assert.Nil(t, output)
	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeLeaseTermNotFound, stdErr.Code)
}

func TestHandler_Execute_MissingRentContext(t *testing.T) {
	handler := createTestHandler(t)
	input := createInput()
	input.Unit = nil
	input.BaseRent = 0

	output, err := handler.Execute(context.Background(), input)

	assert.Nil(t, output)
	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeLeaseTermNotFound, stdErr.Code)
}
