// internal/workers/application/persist-application/handler_test.go
package persistapplication

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"leasing-workers/internal/common/errors"
	"leasing-workers/internal/common/logger"
	"leasing-workers/internal/draft"
	"leasing-workers/internal/models"
	"leasing-workers/internal/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
	}
}

func createTestHandler(t *testing.T, db *sql.DB) *Handler {
	testLog := logger.NewTestLogger(t)
	return NewHandler(createTestConfig(), store.NewApplicationStore(db, testLog), nil, testLog)
}

func submittedForm() *models.ApplicationForm {
	return &models.ApplicationForm{
		Applicant: models.Applicant{
			Person: models.Person{
				FirstName: "Dana",
				LastName:  "Reyes",
				Email:     "dana@example.com",
				Phone:     "(555) 123-4567",
				CurrentAddress: models.Address{
					Street: "12 Oak St", City: "Austin", State: "TX", Zip: "78701",
				},
				Employers: []models.Employer{{
					Name:   "Acme Corp",
					Income: "85,000",
					Status: models.EmploymentFullTime,
				}},
			},
			MoveInDate:      "10/01/2026",
			LeaseTermMonths: 12,
		},
		PropertyID: "prop-9",
		UnitID:     "unit-14",
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_PersistsFlattenedRecord(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM applications`).
		WithArgs("dana@example.com", "unit-14").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO applications`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	handler := createTestHandler(t, db)
	output, err := handler.Execute(context.Background(), &Input{Form: *submittedForm()})

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.NotEmpty(t, output.ApplicationID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_ClearsDraftAfterInsert(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM applications`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO applications`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	testLog := logger.NewTestLogger(t)
	drafts := draft.NewStore(rdb, "applicationFormData", time.Hour, testLog)

	form := submittedForm()
	require.NoError(t, drafts.Save(context.Background(), "sess-1", form))
	require.True(t, mr.Exists("applicationFormData:sess-1"))

	handler := NewHandler(createTestConfig(), store.NewApplicationStore(db, testLog), drafts, testLog)
	output, err := handler.Execute(context.Background(), &Input{Form: *form, SessionID: "sess-1"})

	require.NoError(t, err)
	assert.NotEmpty(t, output.ApplicationID)
	assert.False(t, mr.Exists("applicationFormData:sess-1"))
}

func TestHandler_Execute_DuplicateApplication(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM applications`).
		WithArgs("dana@example.com", "unit-14").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("existing-123"))

	handler := createTestHandler(t, db)
	output, err := handler.Execute(context.Background(), &Input{Form: *submittedForm()})

	assert.Nil(t, output)
	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeDuplicateApplication, stdErr.Code)
	assert.False(t, stdErr.Retryable)
}

func TestHandler_Execute_InsertFailureIsRetryable(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM applications`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO applications`).
		WillReturnError(assert.AnError)

	handler := createTestHandler(t, db)
	output, err := handler.Execute(context.Background(), &Input{Form: *submittedForm()})

	assert.Nil(t, output)
	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeDatabaseInsertFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}
