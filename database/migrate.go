package database

import (
	"fmt"

	"nautikos_backend/internal/logger"
	"nautikos_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.UserProfile{},
		&models.Company{},
		&models.Country{},
		&models.MembershipBody{},
		&models.JobSeeker{},
		&models.Education{},
		&models.ProfessionalCertification{},
		&models.Membership{},
		&models.WorkExperience{},
		&models.JobSeekerSkill{},
		&models.SeagoingExperience{},
		&models.TargetCompany{},
		&models.JobSeekerQuestions{},
		&models.Publication{},
		&models.AvailabilitySlot{},
		&models.ModeratorAssignment{},
		&models.ModeratorEvaluation{},
		&models.ModeratorReview{},
		&models.Verification{},
		&models.UserInvitation{},
	}
}

// Connect opens Postgres. Driver errors are left untranslated so that
// constraint names stay available to repositories.TranslateError.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if db.Dialector.Name() == "postgres" {
		for _, stmt := range candidateNumberSequenceSQL() {
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("candidate number sequence: %w", err)
			}
		}
	}
	logger.Info("AutoMigrate completed", "tables", len(Models()))
	return nil
}

// candidateNumberSequenceSQL creates the sequence behind
// job_seekers.candidate_number and moves it past any number already issued.
// Every statement is safe to run on each start.
func candidateNumberSequenceSQL() []string {
	seq := models.CandidateNumberSequence
	return []string{
		fmt.Sprintf("CREATE SEQUENCE IF NOT EXISTS %s START WITH %d MINVALUE %d OWNED BY job_seekers.candidate_number",
			seq, models.CandidateNumberStart, models.CandidateNumberStart),
		fmt.Sprintf(`SELECT setval('%[1]s', m) FROM (SELECT MAX(candidate_number) AS m FROM job_seekers) t
WHERE m IS NOT NULL AND m >= (SELECT CASE WHEN is_called THEN last_value ELSE last_value - 1 END FROM %[1]s)`, seq),
		fmt.Sprintf("ALTER TABLE job_seekers ALTER COLUMN candidate_number SET DEFAULT nextval('%s')", seq),
	}
}
