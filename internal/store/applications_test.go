package store

import (
	"context"
	"database/sql"
	"testing"

	"leasing-workers/internal/common/errors"
	"leasing-workers/internal/common/logger"
	"leasing-workers/internal/normalize"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord() *normalize.PersistenceRecord {
	return &normalize.PersistenceRecord{
		ApplicantName:   "Dana Reyes",
		Email:           "dana@example.com",
		Phone:           "+15551234567",
		CurrentAddress:  "12 Oak St, Austin, TX, 78701",
		AnnualIncome:    85000,
		PropertyID:      "prop-9",
		UnitID:          "unit-14",
		LeaseTermMonths: 12,
		MoveInDate:      "2026-10-01",
	}
}

func TestApplicationStore_Insert(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM applications`).
		WithArgs("dana@example.com", "unit-14").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO applications`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := NewApplicationStore(db, logger.NewNoOpLogger())
	id, err := s.Insert(context.Background(), testRecord())

	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationStore_InsertDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM applications`).
		WithArgs("dana@example.com", "unit-14").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("existing-123"))

	s := NewApplicationStore(db, logger.NewNoOpLogger())
	_, err = s.Insert(context.Background(), testRecord())

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeDuplicateApplication, stdErr.Code)
	assert.False(t, stdErr.Retryable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationStore_InsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM applications`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO applications`).
		WillReturnError(assert.AnError)

	s := NewApplicationStore(db, logger.NewNoOpLogger())
	_, err = s.Insert(context.Background(), testRecord())

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeDatabaseInsertFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}
