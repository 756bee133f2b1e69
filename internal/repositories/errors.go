package repositories

import (
	"errors"
	"strings"

	"nautikos_backend/pkg/apperrors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrJobSeekerNotFound    = errors.New("job seeker not found")
	ErrAssignmentNotFound   = errors.New("assignment not found")
	ErrReviewNotFound       = errors.New("review comment not found")
	ErrInvitationNotFound   = errors.New("invitation not found")
	ErrVerificationNotFound = errors.New("verification not found")
)

type constraintField struct {
	field   string
	message string
}

// Constraint and table names as generated by gorm AutoMigrate, mapped to the
// request field a client can fix.
var constraintFields = map[string]constraintField{
	"uq_job_seeker_skill":                     {"skills", "Each skill can only be selected once"},
	"job_seeker_skills":                       {"skills", "Each skill can only be selected once"},
	"uq_target_company":                       {"targetCompaniesList", "Each company can only be selected once"},
	"target_companies":                        {"targetCompaniesList", "Each company can only be selected once"},
	"fk_target_companies_company":             {"targetCompaniesList", "Unknown company"},
	"uq_evaluation_job_seeker_moderator":      {"jobSeekerId", "You have already evaluated this candidate"},
	"moderator_evaluations":                   {"jobSeekerId", "You have already evaluated this candidate"},
	"uq_review_job_seeker_section":            {"section", "This section already has a review comment"},
	"moderator_reviews":                       {"section", "This section already has a review comment"},
	"idx_moderator_assignments_job_seeker_id": {"jobSeekerId", "Candidate already has an assignment"},
	"moderator_assignments":                   {"jobSeekerId", "Candidate already has an assignment"},
	"chk_assignment_status":                   {"status", "Status must be active or completed"},
	"chk_assignment_ended_at":                 {"endedAt", "Ended at must be empty while active and set otherwise"},
	"chk_assignment_ended_after_assigned":     {"endedAt", "Ended at cannot be before assigned at"},
	"idx_users_email":                         {"email", "An account with that email already exists"},
	"users":                                   {"email", "An account with that email already exists"},
	"idx_user_invitations_email":              {"email", "This email has already been invited"},
	"user_invitations":                        {"email", "This email has already been invited"},
	"idx_companies_name":                      {"name", "A company with this name already exists"},
	"companies":                               {"name", "A company with this name already exists"},
}

// TranslateError maps a database constraint violation to a
// ConstraintViolation AppError with field details. It returns nil when err
// is not a constraint violation.
func TranslateError(err error) *apperrors.AppError {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "23503", "23514":
			return apperrors.ConstraintViolation(err, fieldsFor(pgErr.ConstraintName, pgErr.TableName))
		}
		return nil
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return apperrors.ConstraintViolation(err, nil)
	}

	// SQLite reports constraints only through the message.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed: "):
		return apperrors.ConstraintViolation(err, fieldsFor("", tableFromSQLite(msg, "UNIQUE constraint failed: ")))
	case strings.Contains(msg, "CHECK constraint failed: "):
		name := strings.TrimSpace(msg[strings.Index(msg, "CHECK constraint failed: ")+len("CHECK constraint failed: "):])
		return apperrors.ConstraintViolation(err, fieldsFor(name, ""))
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return apperrors.ConstraintViolation(err, nil)
	}
	return nil
}

func fieldsFor(constraint, table string) map[string]string {
	if cf, ok := constraintFields[constraint]; ok {
		return map[string]string{cf.field: cf.message}
	}
	if cf, ok := constraintFields[table]; ok {
		return map[string]string{cf.field: cf.message}
	}
	return nil
}

// tableFromSQLite extracts "job_seeker_skills" from
// "UNIQUE constraint failed: job_seeker_skills.job_seeker_id, job_seeker_skills.skill".
func tableFromSQLite(msg, prefix string) string {
	rest := msg[strings.Index(msg, prefix)+len(prefix):]
	if dot := strings.Index(rest, "."); dot > 0 {
		return rest[:dot]
	}
	return ""
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
