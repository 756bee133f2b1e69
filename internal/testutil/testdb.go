// Package testutil opens throwaway SQLite databases and seeds the fixtures
// shared by repository, service and handler tests.
package testutil

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"nautikos_backend/database"
	"nautikos_backend/internal/auth"
	"nautikos_backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Password is the plain-text password of every fixture user.
const Password = "correct-horse-battery"

var (
	seq          atomic.Int64
	passwordHash string
)

func init() {
	hash, err := auth.HashPassword(Password)
	if err != nil {
		panic(err)
	}
	passwordHash = hash
}

// NewDB returns a migrated SQLite database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "nautikos.db") + "?_foreign_keys=on&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

func nextEmail(prefix string) string {
	return fmt.Sprintf("%s%d@nautikos.test", prefix, seq.Add(1))
}

// CreateUser inserts user, filling in an email, password hash and profile
// when they are empty.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) *models.User {
	t.Helper()

	if user.Email == "" {
		user.Email = nextEmail(string(user.Role))
	}
	if user.PasswordHash == "" {
		user.PasswordHash = passwordHash
	}
	if user.Role == "" {
		user.Role = models.UserRoleJobSeeker
	}
	if user.Profile == nil {
		user.Profile = &models.UserProfile{FirstName: "Test", LastName: string(user.Role)}
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateJobSeekerUser inserts a verified job seeker who has not finished onboarding.
func CreateJobSeekerUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateUser(t, db, &models.User{Role: models.UserRoleJobSeeker, IsVerified: true})
}

func CreateAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateUser(t, db, &models.User{Role: models.UserRoleAdmin, IsVerified: true, IsOnboarded: true})
}

func CreateModerator(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateUser(t, db, &models.User{Role: models.UserRoleModerator, IsVerified: true, IsOnboarded: true})
}

// CreateCandidate inserts a verified, onboarded job seeker with an empty
// profile, ready for moderator assignment.
func CreateCandidate(t *testing.T, db *gorm.DB) (*models.User, *models.JobSeeker) {
	t.Helper()

	user := CreateUser(t, db, &models.User{Role: models.UserRoleJobSeeker, IsVerified: true, IsOnboarded: true})
	js := CreateJobSeeker(t, db, user.ID)
	return user, js
}

// CreateJobSeeker inserts a bare profile for userID with the next candidate number.
func CreateJobSeeker(t *testing.T, db *gorm.DB, userID string) *models.JobSeeker {
	t.Helper()

	var maxNumber int64
	require.NoError(t, db.Model(&models.JobSeeker{}).Select("COALESCE(MAX(candidate_number), 999)").Scan(&maxNumber).Error)

	js := &models.JobSeeker{UserID: userID, CandidateNumber: maxNumber + 1}
	require.NoError(t, db.Create(js).Error)
	return js
}

func CreateCompany(t *testing.T, db *gorm.DB, name string) *models.Company {
	t.Helper()

	company := &models.Company{Name: name, IsVerified: true}
	require.NoError(t, db.Create(company).Error)
	return company
}

func CreateCountry(t *testing.T, db *gorm.DB, name, code string) *models.Country {
	t.Helper()

	country := &models.Country{Name: name, Code: code}
	require.NoError(t, db.Create(country).Error)
	return country
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
