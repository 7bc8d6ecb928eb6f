// Package store writes durable application records to Postgres.
package store

import (
	"context"
	"database/sql"
	"time"

	"leasing-workers/internal/common/errors"
	"leasing-workers/internal/common/logger"
	"leasing-workers/internal/normalize"

	"github.com/google/uuid"
)

type ApplicationStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewApplicationStore(db *sql.DB, log logger.Logger) *ApplicationStore {
	return &ApplicationStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "applications"}),
	}
}

const duplicateCheckQuery = `SELECT id FROM applications WHERE email = $1 AND unit_id = $2`

const insertQuery = `
	INSERT INTO applications (
		id, applicant_name, email, phone, current_address, annual_income,
		pet_details, property_id, unit_id, lease_term_months, move_in_date,
		submitted_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

// Insert writes the record and returns its assigned ID. One application
// per applicant and unit: a matching email/unit pair is rejected as a
// duplicate rather than overwritten.
func (s *ApplicationStore) Insert(ctx context.Context, rec *normalize.PersistenceRecord) (string, error) {
	var existingID string
	err := s.db.QueryRowContext(ctx, duplicateCheckQuery, rec.Email, rec.UnitID).Scan(&existingID)
	switch {
	case err == nil:
		return "", errors.NewDuplicateApplicationError("existing application " + existingID)
	case err != sql.ErrNoRows:
		return "", errors.NewDatabaseInsertError(err.Error())
	}

	rec.ID = uuid.NewString()
	rec.SubmittedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, insertQuery,
		rec.ID,
		rec.ApplicantName,
		rec.Email,
		rec.Phone,
		rec.CurrentAddress,
		rec.AnnualIncome,
		rec.PetDetails,
		rec.PropertyID,
		rec.UnitID,
		rec.LeaseTermMonths,
		rec.MoveInDate,
		rec.SubmittedAt,
	)
	if err != nil {
		return "", errors.NewDatabaseInsertError(err.Error())
	}

	s.logger.Info("application record inserted", map[string]interface{}{
		"applicationId": rec.ID,
		"unitId":        rec.UnitID,
	})
	return rec.ID, nil
}
