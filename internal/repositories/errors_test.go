package repositories

import (
	"errors"
	"testing"

	"nautikos_backend/pkg/apperrors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantNil bool
		details interface{}
	}{
		{name: "nil", err: nil, wantNil: true},
		{name: "plain error", err: errors.New("connection reset"), wantNil: true},
		{name: "record not found", err: gorm.ErrRecordNotFound, wantNil: true},
		{
			name:    "postgres unique by constraint name",
			err:     &pgconn.PgError{Code: "23505", ConstraintName: "uq_evaluation_job_seeker_moderator"},
			details: map[string]string{"jobSeekerId": "You have already evaluated this candidate"},
		},
		{
			name:    "postgres check constraint",
			err:     &pgconn.PgError{Code: "23514", ConstraintName: "chk_assignment_status"},
			details: map[string]string{"status": "Status must be active or completed"},
		},
		{
			name:    "postgres unknown constraint",
			err:     &pgconn.PgError{Code: "23503", ConstraintName: "fk_something_else"},
			details: nil,
		},
		{name: "postgres other code", err: &pgconn.PgError{Code: "40001"}, wantNil: true},
		{name: "gorm duplicated key", err: gorm.ErrDuplicatedKey, details: nil},
		{
			name:    "sqlite unique",
			err:     errors.New("UNIQUE constraint failed: target_companies.job_seeker_id, target_companies.company_id"),
			details: map[string]string{"targetCompaniesList": "Each company can only be selected once"},
		},
		{
			name:    "sqlite check",
			err:     errors.New("CHECK constraint failed: chk_assignment_ended_at"),
			details: map[string]string{"endedAt": "Ended at must be empty while active and set otherwise"},
		},
		{name: "sqlite foreign key", err: errors.New("FOREIGN KEY constraint failed"), details: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranslateError(tt.err)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, apperrors.CodeConstraintViolation, got.Code)
			assert.ErrorIs(t, got, tt.err)
			if tt.details == nil {
				assert.Nil(t, got.Details)
			} else {
				assert.Equal(t, tt.details, got.Details)
			}
		})
	}
}
