// internal/fieldformat/validate_test.go
package fieldformat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Fixed reference date so age math does not drift with the wall clock.
var testNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestValidateDate(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{"valid date", "06/15/1990", false},
		{"leap day on leap year", "02/29/2024", false},
		{"leap day on non-leap year", "02/29/2023", true},
		{"thirty-first of june", "06/31/2000", true},
		{"month zero", "00/15/1990", true},
		{"month thirteen", "13/15/1990", true},
		{"year before 1900", "06/15/1899", true},
		{"year in the future", "06/15/2030", true},
		{"iso format rejected", "1990-06-15", true},
		{"partial input", "06/15/19", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateDate(tt.date, testNow)
			if tt.wantErr {
				assert.NotEmpty(t, msg)
			} else {
				assert.Empty(t, msg)
			}
		})
	}
}

func TestValidateDOB(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{"well over 18", "06/15/1990", false},
		{"exactly 18 today", "06/15/2008", false},
		{"18th birthday tomorrow", "06/16/2008", true},
		{"17 years old", "06/15/2009", true},
		{"invalid date short-circuits", "02/30/1990", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateDOB(tt.date, testNow)
			if tt.wantErr {
				assert.NotEmpty(t, msg)
			} else {
				assert.Empty(t, msg)
			}
		})
	}
}

func TestValidVehicleYear(t *testing.T) {
	assert.True(t, validVehicleYear("1900", testNow))
	assert.True(t, validVehicleYear("2026", testNow))
	assert.False(t, validVehicleYear("2027", testNow))
	assert.False(t, validVehicleYear("1899", testNow))
	assert.False(t, validVehicleYear("199", testNow))
	assert.False(t, validVehicleYear("19991", testNow))
	assert.False(t, validVehicleYear("20x6", testNow))
}
