package repositories

import (
	"sort"
	"time"

	"nautikos_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JobSeekerFields is a partial update of the job seeker row.
// Nil fields are left untouched on conflict.
type JobSeekerFields struct {
	TotalYearsExperience       *int
	PeopleManagementExperience *models.PeopleManagementExperience
	ArabicSpeaking             *bool
	DubaiTradePortal           *bool
	UAECustoms                 *bool
	FreeZoneProcess            *bool
	AvailableFrom              *time.Time
	EmiratesPreference         []string
	PersonalWebsiteURL         *string
	CVFileS3Key                *string
	CVFileName                 *string
	CVUploadedAt               *time.Time
	VideoCVURL                 *string
}

// Columns returns the provided fields keyed by column name.
func (f JobSeekerFields) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if f.TotalYearsExperience != nil {
		cols["total_years_experience"] = *f.TotalYearsExperience
	}
	if f.PeopleManagementExperience != nil {
		cols["people_management_experience"] = string(*f.PeopleManagementExperience)
	}
	if f.ArabicSpeaking != nil {
		cols["arabic_speaking"] = *f.ArabicSpeaking
	}
	if f.DubaiTradePortal != nil {
		cols["dubai_trade_portal"] = *f.DubaiTradePortal
	}
	if f.UAECustoms != nil {
		cols["uae_customs"] = *f.UAECustoms
	}
	if f.FreeZoneProcess != nil {
		cols["free_zone_process"] = *f.FreeZoneProcess
	}
	if f.AvailableFrom != nil {
		cols["available_from"] = *f.AvailableFrom
	}
	if f.EmiratesPreference != nil {
		cols["emirates_preference"] = datatypes.JSONSlice[string](f.EmiratesPreference)
	}
	if f.PersonalWebsiteURL != nil {
		cols["personal_website_url"] = *f.PersonalWebsiteURL
	}
	if f.CVFileS3Key != nil {
		cols["cv_file_s3_key"] = *f.CVFileS3Key
	}
	if f.CVFileName != nil {
		cols["cv_file_name"] = *f.CVFileName
	}
	if f.CVUploadedAt != nil {
		cols["cv_uploaded_at"] = *f.CVUploadedAt
	}
	if f.VideoCVURL != nil {
		cols["video_cv_url"] = *f.VideoCVURL
	}
	return cols
}

type JobSeekerRepository interface {
	// Parent
	UpsertByUserID(db *gorm.DB, userID string, fields JobSeekerFields) (*models.JobSeeker, error)
	// LockByUserID reads the profile with a row lock held until the
	// transaction ends.
	LockByUserID(db *gorm.DB, userID string) (*models.JobSeeker, error)
	FindByID(db *gorm.DB, id string) (*models.JobSeeker, error)
	FindByUserID(db *gorm.DB, userID string) (*models.JobSeeker, error)
	FindWithChildren(db *gorm.DB, id string) (*models.JobSeeker, error)
	ListEligibleForReview(db *gorm.DB) ([]models.JobSeeker, error)

	// Child collections, each replaced wholesale
	ReplaceEducations(db *gorm.DB, jobSeekerID string, rows []models.Education) ([]models.Education, error)
	ReplaceCertifications(db *gorm.DB, jobSeekerID string, rows []models.ProfessionalCertification) ([]models.ProfessionalCertification, error)
	ReplaceMemberships(db *gorm.DB, jobSeekerID string, rows []models.Membership) ([]models.Membership, error)
	ReplaceWorkExperiences(db *gorm.DB, jobSeekerID string, rows []models.WorkExperience) ([]models.WorkExperience, error)
	ReplaceSkills(db *gorm.DB, jobSeekerID string, rows []models.JobSeekerSkill) ([]models.JobSeekerSkill, error)
	ReplaceTargetCompanies(db *gorm.DB, jobSeekerID string, rows []models.TargetCompany) ([]models.TargetCompany, error)
	ReplacePublications(db *gorm.DB, jobSeekerID string, rows []models.Publication) ([]models.Publication, error)
	ReplaceAvailabilitySlots(db *gorm.DB, jobSeekerID string, rows []models.AvailabilitySlot) ([]models.AvailabilitySlot, error)

	// One-to-one children, upserted on job_seeker_id
	UpsertSeagoingExperience(db *gorm.DB, row *models.SeagoingExperience) error
	UpsertQuestions(db *gorm.DB, row *models.JobSeekerQuestions) error

	// Completion reads
	CountChildren(db *gorm.DB, model interface{}, jobSeekerID string) (int64, error)
}

type JobSeekerRepositoryImpl struct{}

func NewJobSeekerRepository() JobSeekerRepository {
	return &JobSeekerRepositoryImpl{}
}

// UpsertByUserID inserts the profile or, on user_id conflict, overwrites only
// the provided columns. A new row gets the next candidate number. The
// conflict path always touches updated_at so the existing row is locked.
func (r *JobSeekerRepositoryImpl) UpsertByUserID(db *gorm.DB, userID string, fields JobSeekerFields) (*models.JobSeeker, error) {
	now := time.Now().UTC()
	values := fields.Columns()

	updateCols := make([]string, 0, len(values)+1)
	for col := range values {
		updateCols = append(updateCols, col)
	}
	sort.Strings(updateCols)

	if _, ok := values["emirates_preference"]; !ok {
		values["emirates_preference"] = datatypes.JSONSlice[string]{}
	}
	values["id"] = models.NewID()
	values["user_id"] = userID
	values["candidate_number"] = candidateNumberExpr(db.Dialector.Name())
	values["created_at"] = now
	values["updated_at"] = now

	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns(append(updateCols, "updated_at")),
	}

	if err := db.Model(&models.JobSeeker{}).Clauses(onConflict).Create(values).Error; err != nil {
		return nil, err
	}

	return r.FindByUserID(db, userID)
}

// candidateNumberExpr allocates the next candidate number. Postgres draws
// from the sequence created by database.AutoMigrate. SQLite allows a single
// writer at a time, so MAX+1 cannot collide there.
func candidateNumberExpr(dialect string) clause.Expr {
	if dialect == "postgres" {
		return gorm.Expr("nextval('" + models.CandidateNumberSequence + "')")
	}
	return gorm.Expr("(SELECT COALESCE(MAX(candidate_number), ?) + 1 FROM job_seekers)", models.CandidateNumberStart-1)
}

func (r *JobSeekerRepositoryImpl) LockByUserID(db *gorm.DB, userID string) (*models.JobSeeker, error) {
	var js models.JobSeeker
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&js, "user_id = ?", userID).Error
	if err != nil {
		if isNotFound(err) {
			return nil, ErrJobSeekerNotFound
		}
		return nil, err
	}
	return &js, nil
}

func (r *JobSeekerRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.JobSeeker, error) {
	var js models.JobSeeker
	if err := db.First(&js, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrJobSeekerNotFound
		}
		return nil, err
	}
	return &js, nil
}

func (r *JobSeekerRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.JobSeeker, error) {
	var js models.JobSeeker
	if err := db.First(&js, "user_id = ?", userID).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrJobSeekerNotFound
		}
		return nil, err
	}
	return &js, nil
}

func (r *JobSeekerRepositoryImpl) FindWithChildren(db *gorm.DB, id string) (*models.JobSeeker, error) {
	var js models.JobSeeker
	err := db.
		Preload("User.Profile").
		Preload("Educations").
		Preload("ProfessionalCertifications").
		Preload("Memberships").
		Preload("WorkExperiences").
		Preload("Skills").
		Preload("SeagoingExperience").
		Preload("TargetCompanies.Company").
		Preload("Questions").
		Preload("Publications").
		Preload("AvailabilitySlots").
		First(&js, "id = ?", id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, ErrJobSeekerNotFound
		}
		return nil, err
	}
	return &js, nil
}

// ListEligibleForReview returns profiles whose user is verified and onboarded.
func (r *JobSeekerRepositoryImpl) ListEligibleForReview(db *gorm.DB) ([]models.JobSeeker, error) {
	var list []models.JobSeeker
	err := db.
		Joins("JOIN users ON users.id = job_seekers.user_id").
		Where("users.is_verified = ? AND users.is_onboarded = ?", true, true).
		Preload("User.Profile").
		Order("job_seekers.candidate_number ASC").
		Find(&list).Error
	return list, err
}

func (r *JobSeekerRepositoryImpl) ReplaceEducations(db *gorm.DB, jobSeekerID string, rows []models.Education) ([]models.Education, error) {
	return replaceChildren(db, jobSeekerID, rows)
}

func (r *JobSeekerRepositoryImpl) ReplaceCertifications(db *gorm.DB, jobSeekerID string, rows []models.ProfessionalCertification) ([]models.ProfessionalCertification, error) {
	return replaceChildren(db, jobSeekerID, rows)
}

func (r *JobSeekerRepositoryImpl) ReplaceMemberships(db *gorm.DB, jobSeekerID string, rows []models.Membership) ([]models.Membership, error) {
	return replaceChildren(db, jobSeekerID, rows)
}

func (r *JobSeekerRepositoryImpl) ReplaceWorkExperiences(db *gorm.DB, jobSeekerID string, rows []models.WorkExperience) ([]models.WorkExperience, error) {
	return replaceChildren(db, jobSeekerID, rows)
}

func (r *JobSeekerRepositoryImpl) ReplaceSkills(db *gorm.DB, jobSeekerID string, rows []models.JobSeekerSkill) ([]models.JobSeekerSkill, error) {
	return replaceChildren(db, jobSeekerID, rows)
}

func (r *JobSeekerRepositoryImpl) ReplaceTargetCompanies(db *gorm.DB, jobSeekerID string, rows []models.TargetCompany) ([]models.TargetCompany, error) {
	return replaceChildren(db, jobSeekerID, rows)
}

func (r *JobSeekerRepositoryImpl) ReplacePublications(db *gorm.DB, jobSeekerID string, rows []models.Publication) ([]models.Publication, error) {
	return replaceChildren(db, jobSeekerID, rows)
}

func (r *JobSeekerRepositoryImpl) ReplaceAvailabilitySlots(db *gorm.DB, jobSeekerID string, rows []models.AvailabilitySlot) ([]models.AvailabilitySlot, error) {
	return replaceChildren(db, jobSeekerID, rows)
}

func (r *JobSeekerRepositoryImpl) UpsertSeagoingExperience(db *gorm.DB, row *models.SeagoingExperience) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "job_seeker_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"sea_rank", "total_years_sea_going_experience", "updated_at"}),
	}).Create(row).Error
}

func (r *JobSeekerRepositoryImpl) UpsertQuestions(db *gorm.DB, row *models.JobSeekerQuestions) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "job_seeker_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"next_job_seek", "motivation", "work_environment", "top_values_in_next_job", "updated_at"}),
	}).Create(row).Error
}

func (r *JobSeekerRepositoryImpl) CountChildren(db *gorm.DB, model interface{}, jobSeekerID string) (int64, error) {
	var n int64
	err := db.Model(model).Where("job_seeker_id = ?", jobSeekerID).Count(&n).Error
	return n, err
}

type jobSeekerChild[T any] interface {
	*T
	SetJobSeekerID(id string)
}

// replaceChildren deletes every row of T owned by the job seeker, then
// bulk-inserts rows. An empty rows slice leaves the collection empty.
func replaceChildren[T any, PT jobSeekerChild[T]](db *gorm.DB, jobSeekerID string, rows []T) ([]T, error) {
	if err := db.Where("job_seeker_id = ?", jobSeekerID).Delete(new(T)).Error; err != nil {
		return nil, err
	}

	out := make([]T, len(rows))
	copy(out, rows)
	if len(out) == 0 {
		return out, nil
	}

	for i := range out {
		PT(&out[i]).SetJobSeekerID(jobSeekerID)
	}
	if err := db.Create(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
