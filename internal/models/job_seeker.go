package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	// CandidateNumberStart is the first candidate number handed out.
	CandidateNumberStart = 1000
	// CandidateNumberSequence backs job_seekers.candidate_number on Postgres.
	CandidateNumberSequence = "job_seekers_candidate_number_seq"
)

// JobSeeker is the onboarding profile, one per job_seeker user.
type JobSeeker struct {
	BaseModel
	UserID          string `gorm:"type:varchar(36);uniqueIndex;not null" json:"userId"`
	User            *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CandidateNumber int64  `gorm:"uniqueIndex;not null" json:"candidateNumber"`

	TotalYearsExperience       *int                        `gorm:"column:total_years_experience" json:"totalYearsExperience"`
	PeopleManagementExperience *PeopleManagementExperience `gorm:"column:people_management_experience;type:varchar(20)" json:"peopleManagementExperience"`
	ArabicSpeaking             *bool                       `gorm:"column:arabic_speaking" json:"arabicSpeaking"`
	DubaiTradePortal           *bool                       `gorm:"column:dubai_trade_portal" json:"dubaiTradePortal"`
	UAECustoms                 *bool                       `gorm:"column:uae_customs" json:"uaeCustoms"`
	FreeZoneProcess            *bool                       `gorm:"column:free_zone_process" json:"freeZoneProcess"`

	AvailableFrom      *time.Time                  `gorm:"column:available_from" json:"availableFrom"`
	EmiratesPreference datatypes.JSONSlice[string] `gorm:"column:emirates_preference" json:"emiratesPreference"`

	PersonalWebsiteURL *string    `gorm:"column:personal_website_url" json:"personalWebsiteUrl"`
	CVFileS3Key        *string    `gorm:"column:cv_file_s3_key" json:"cvFileS3Key"`
	CVFileName         *string    `gorm:"column:cv_file_name" json:"cvFileName"`
	CVUploadedAt       *time.Time `gorm:"column:cv_uploaded_at" json:"cvUploadedAt"`
	VideoCVURL         *string    `gorm:"column:video_cv_url" json:"videoCVUrl"`

	Educations                 []Education                 `gorm:"foreignKey:JobSeekerID;constraint:OnDelete:CASCADE" json:"educations,omitempty"`
	ProfessionalCertifications []ProfessionalCertification `gorm:"foreignKey:JobSeekerID;constraint:OnDelete:CASCADE" json:"professionalCertifications,omitempty"`
	Memberships                []Membership                `gorm:"foreignKey:JobSeekerID;constraint:OnDelete:CASCADE" json:"memberships,omitempty"`
	WorkExperiences            []WorkExperience            `gorm:"foreignKey:JobSeekerID;constraint:OnDelete:CASCADE" json:"workExperiences,omitempty"`
	Skills                     []JobSeekerSkill            `gorm:"foreignKey:JobSeekerID;constraint:OnDelete:CASCADE" json:"skills,omitempty"`
	SeagoingExperience         *SeagoingExperience         `gorm:"foreignKey:JobSeekerID;constraint:OnDelete:CASCADE" json:"seagoingExperience,omitempty"`
	TargetCompanies            []TargetCompany             `gorm:"foreignKey:JobSeekerID;constraint:OnDelete:CASCADE" json:"targetCompanies,omitempty"`
	Questions                  *JobSeekerQuestions         `gorm:"foreignKey:JobSeekerID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	Publications               []Publication               `gorm:"foreignKey:JobSeekerID;constraint:OnDelete:CASCADE" json:"publications,omitempty"`
	AvailabilitySlots          []AvailabilitySlot          `gorm:"foreignKey:JobSeekerID;constraint:OnDelete:CASCADE" json:"availabilitySlots,omitempty"`
}

// --- Academy ---

type Education struct {
	BaseModel
	JobSeekerID    string         `gorm:"type:varchar(36);not null;index" json:"jobSeekerId"`
	EducationLevel EducationLevel `gorm:"type:varchar(20);not null" json:"educationLevel"`
	Institution    string         `gorm:"not null" json:"institution"`
	DegreeName     string         `gorm:"not null" json:"degreeName"`
	FieldOfStudy   string         `gorm:"not null" json:"fieldOfStudy"`
	StartYear      int            `gorm:"not null" json:"educationStartYear"`
	EndYear        *int           `json:"educationEndYear,omitempty"`
	IsOngoing      bool           `gorm:"not null;default:false" json:"isOngoing"`
}

type ProfessionalCertification struct {
	BaseModel
	JobSeekerID       string `gorm:"type:varchar(36);not null;index" json:"jobSeekerId"`
	Institute         string `gorm:"not null" json:"proInstitute"`
	CertificationName string `gorm:"not null" json:"proCertificationName"`
}

type Membership struct {
	BaseModel
	JobSeekerID           string `gorm:"type:varchar(36);not null;index" json:"jobSeekerId"`
	MembershipBodyName    string `gorm:"not null" json:"membershipBodyName"`
	MembershipJoiningYear int    `gorm:"not null" json:"membershipJoiningYear"`
	MembershipCertificate string `gorm:"not null" json:"membershipCertificate"`
}

// --- Experience ---

type WorkExperience struct {
	BaseModel
	JobSeekerID            string  `gorm:"type:varchar(36);not null;index" json:"jobSeekerId"`
	Company                string  `gorm:"not null" json:"company"`
	CountryID              string  `gorm:"type:varchar(36);not null" json:"countryId"`
	State                  *string `json:"state,omitempty"`
	Role                   string  `gorm:"not null" json:"role"`
	JobType                JobType `gorm:"type:varchar(20);not null" json:"jobType"`
	MeasurableAchievements string  `gorm:"type:text;not null" json:"measurableAchievements"`
	StartYear              int     `gorm:"not null" json:"workStartYear"`
	StartMonth             int     `gorm:"not null" json:"workStartMonth"`
	EndYear                *int    `json:"workEndYear,omitempty"`
	EndMonth               *int    `json:"workEndMonth,omitempty"`
	IsOngoing              bool    `gorm:"not null;default:false" json:"isOngoing"`
}

type JobSeekerSkill struct {
	BaseModel
	JobSeekerID string `gorm:"type:varchar(36);not null;uniqueIndex:uq_job_seeker_skill" json:"jobSeekerId"`
	Skill       Skill  `gorm:"type:varchar(64);not null;uniqueIndex:uq_job_seeker_skill" json:"skill"`
}

type SeagoingExperience struct {
	BaseModel
	JobSeekerID                  string  `gorm:"type:varchar(36);not null;uniqueIndex" json:"jobSeekerId"`
	SeaRank                      SeaRank `gorm:"type:varchar(32);not null" json:"seaRank"`
	TotalYearsSeaGoingExperience int     `gorm:"not null" json:"totalYearsSeaGoingExperience"`
}

// --- Culture ---

type TargetCompany struct {
	BaseModel
	JobSeekerID string   `gorm:"type:varchar(36);not null;uniqueIndex:uq_target_company" json:"jobSeekerId"`
	CompanyID   string   `gorm:"type:varchar(36);not null;uniqueIndex:uq_target_company" json:"companyId"`
	Company     *Company `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"company,omitempty"`
}

type JobSeekerQuestions struct {
	BaseModel
	JobSeekerID        string                      `gorm:"type:varchar(36);not null;uniqueIndex" json:"jobSeekerId"`
	NextJobSeek        string                      `gorm:"type:text;not null" json:"nextJobSeek"`
	Motivation         string                      `gorm:"type:text;not null" json:"motivation"`
	WorkEnvironment    string                      `gorm:"not null" json:"workEnvironment"`
	TopValuesInNextJob datatypes.JSONSlice[string] `gorm:"column:top_values_in_next_job" json:"topValuesInNextJob"`
}

// --- Media ---

type Publication struct {
	BaseModel
	JobSeekerID     string `gorm:"type:varchar(36);not null;index" json:"jobSeekerId"`
	PublicationLink string `gorm:"not null" json:"publicationLink"`
}

// --- Screening ---

type AvailabilitySlot struct {
	BaseModel
	JobSeekerID string `gorm:"type:varchar(36);not null;index" json:"jobSeekerId"`
	Day         Day    `gorm:"type:varchar(10);not null" json:"day"`
	StartTime   string `gorm:"type:varchar(5);not null" json:"startTime"`
	EndTime     string `gorm:"type:varchar(5);not null" json:"endTime"`
}

// SetJobSeekerID lets repositories attach a replaced child collection to its parent.
func (e *Education) SetJobSeekerID(id string)                 { e.JobSeekerID = id }
func (c *ProfessionalCertification) SetJobSeekerID(id string) { c.JobSeekerID = id }
func (m *Membership) SetJobSeekerID(id string)                { m.JobSeekerID = id }
func (w *WorkExperience) SetJobSeekerID(id string)            { w.JobSeekerID = id }
func (s *JobSeekerSkill) SetJobSeekerID(id string)            { s.JobSeekerID = id }
func (t *TargetCompany) SetJobSeekerID(id string)             { t.JobSeekerID = id }
func (p *Publication) SetJobSeekerID(id string)               { p.JobSeekerID = id }
func (a *AvailabilitySlot) SetJobSeekerID(id string)          { a.JobSeekerID = id }
