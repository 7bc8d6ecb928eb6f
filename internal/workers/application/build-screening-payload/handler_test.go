// internal/workers/application/build-screening-payload/handler_test.go
package buildscreeningpayload

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"leasing-workers/internal/common/errors"
	"leasing-workers/internal/common/logger"
	"leasing-workers/internal/models"
	"leasing-workers/internal/screening"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}

func createTestHandler(t *testing.T, vendorURL string) *Handler {
	testLog := logger.NewTestLogger(t)
	client := screening.NewClient(vendorURL, "test-key", 5*time.Second, testLog)
	return NewHandler(createTestConfig(), client, testLog)
}

func screenableForm() *models.ApplicationForm {
	yes := true
	return &models.ApplicationForm{
		Applicant: models.Applicant{
			Person: models.Person{
				ID:        "app-1",
				FirstName: "Jordan",
				LastName:  "Reyes",
				Email:     "jordan@example.com",
				Phone:     "(512) 555-1234",
				DOB:       "03/14/1992",
				SSN:       "123-45-6789",
				USCitizen: &yes,
				CurrentAddress: models.Address{
					Street:   "100 Congress Ave",
					City:     "Austin",
					State:    "TX",
					Zip:      "78701",
					Duration: models.DurationTwoToFive,
				},
				Employers: []models.Employer{{
					Name:     "Acme Corp",
					Industry: "Technology",
					Position: "Engineer",
					Income:   "85,000",
					Status:   models.EmploymentFullTime,
				}},
			},
			MoveInDate:      "09/01/2026",
			LeaseTermMonths: 12,
		},
		EmergencyContact: models.EmergencyContact{
			Name: "Chris Reyes", Phone: "5125559999", Relation: "Sibling",
		},
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_SubmitsNormalizedPayload(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"referenceId":"scr-77","status":"Received"}`))
	}))
	defer server.Close()

	handler := createTestHandler(t, server.URL)
	output, err := handler.Execute(context.Background(), &Input{Form: *screenableForm()})

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "scr-77", output.ScreeningReferenceID)
	require.NotNil(t, output.Payload)

	// The wire shape is the vendor's capitalized contract, with the
	// client-side formats already normalized.
	assert.Equal(t, "+15125551234", received["Phone"])
	assert.Equal(t, "1992-03-14", received["DOB"])
	assert.Equal(t, "123456789", received["SSN"])
	assert.Equal(t, "Citizen", received["CitizenshipStatus"])
}

func TestHandler_Execute_InvalidPayloadNeverReachesVendor(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	form := screenableForm()
	form.Applicant.SSN = "123"

	handler := createTestHandler(t, server.URL)
	output, err := handler.Execute(context.Background(), &Input{Form: *form})

	assert.Nil(t, output)
	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodePayloadValidationFailed, stdErr.Code)
	assert.False(t, stdErr.Retryable)
	assert.False(t, called)
}

func TestHandler_Execute_VendorOutage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	handler := createTestHandler(t, server.URL)
	output, err := handler.Execute(context.Background(), &Input{Form: *screenableForm()})

	assert.Nil(t, output)
	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeScreeningSubmitFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}
