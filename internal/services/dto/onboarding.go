package dto

import (
	"fmt"

	"nautikos_backend/internal/models"
)

// --- Academy ---

type EducationInput struct {
	EducationLevel models.EducationLevel `json:"educationLevel" validate:"required,is-education-level"`
	Institution    string                `json:"institution" validate:"required,max=255"`
	DegreeName     string                `json:"degreeName" validate:"required,max=255"`
	FieldOfStudy   string                `json:"fieldOfStudy" validate:"required,max=255"`
	StartYear      int                   `json:"educationStartYear" validate:"required,min=1900,max=2100"`
	EndYear        *int                  `json:"educationEndYear" validate:"omitempty,min=1900,max=2100"`
	IsOngoing      bool                  `json:"isOngoing"`
}

type CertificationInput struct {
	Institute         string `json:"proInstitute" validate:"required,max=255"`
	CertificationName string `json:"proCertificationName" validate:"required,max=255"`
}

type MembershipInput struct {
	MembershipBodyName    string `json:"membershipBodyName" validate:"required,max=255"`
	MembershipJoiningYear int    `json:"membershipJoiningYear" validate:"required,min=1900,max=2100"`
	MembershipCertificate string `json:"membershipCertificate" validate:"required,max=255"`
}

type AcademyRequest struct {
	Educations     []EducationInput     `json:"educationFieldList" validate:"required,min=1,dive"`
	Certifications []CertificationInput `json:"proCertFieldList" validate:"dive"`
	Memberships    []MembershipInput    `json:"membershipFieldList" validate:"dive"`
}

func (r *AcademyRequest) Validate() map[string]string {
	errs := map[string]string{}
	for i, e := range r.Educations {
		key := fmt.Sprintf("educationFieldList[%d].educationEndYear", i)
		switch {
		case !e.IsOngoing && e.EndYear == nil:
			errs[key] = "Education end year is required when not ongoing"
		case e.EndYear != nil && *e.EndYear < e.StartYear:
			errs[key] = "Education end year cannot be before start year"
		}
	}
	return errs
}

// --- Experience ---

type ExperienceFields struct {
	TotalYearsExperience       *int                               `json:"totalYearsExperience" validate:"required,min=1,max=80"`
	PeopleManagementExperience *models.PeopleManagementExperience `json:"peopleManagementExperience" validate:"required,is-people-mgmt"`
	ArabicSpeaking             *bool                              `json:"arabicSpeaking" validate:"required"`
	DubaiTradePortal           *bool                              `json:"dubaiTradePortal" validate:"required"`
	UAECustoms                 *bool                              `json:"uaeCustoms" validate:"required"`
	FreeZoneProcess            *bool                              `json:"freeZoneProcess" validate:"required"`
}

// SeagoingInput is optional; it is stored only when both fields are present.
type SeagoingInput struct {
	SeaRank                      *models.SeaRank `json:"seaRank" validate:"omitempty,is-sea-rank"`
	TotalYearsSeaGoingExperience *int            `json:"totalYearsSeaGoingExperience" validate:"omitempty,min=1,max=80"`
}

func (s *SeagoingInput) Complete() bool {
	return s != nil && s.SeaRank != nil && s.TotalYearsSeaGoingExperience != nil
}

type WorkExperienceInput struct {
	Company                string         `json:"company" validate:"required,max=255"`
	CountryID              string         `json:"countryId" validate:"required"`
	State                  *string        `json:"state" validate:"omitempty,max=100"`
	Role                   string         `json:"role" validate:"required,max=255"`
	JobType                models.JobType `json:"jobType" validate:"required,is-job-type"`
	MeasurableAchievements string         `json:"measurableAchievements" validate:"required"`
	StartYear              int            `json:"workStartYear" validate:"required,min=1900,max=2100"`
	StartMonth             int            `json:"workStartMonth" validate:"required,min=1,max=12"`
	EndYear                *int           `json:"workEndYear" validate:"omitempty,min=1900,max=2100"`
	EndMonth               *int           `json:"workEndMonth" validate:"omitempty,min=1,max=12"`
	IsOngoing              bool           `json:"isOngoing"`
}

type ExperienceRequest struct {
	JobSeekerFieldSet ExperienceFields      `json:"jobSeekerFieldSet"`
	Seagoing          *SeagoingInput        `json:"seaGoingExperienceFieldSet"`
	Skills            []models.Skill        `json:"skills" validate:"required,min=3,unique,dive,is-skill"`
	WorkExperiences   []WorkExperienceInput `json:"workExperienceFieldList" validate:"required,min=1,max=3,dive"`
}

func (r *ExperienceRequest) Validate() map[string]string {
	errs := map[string]string{}
	ongoing := 0
	for i, w := range r.WorkExperiences {
		if w.IsOngoing {
			ongoing++
			continue
		}
		if w.EndYear == nil {
			errs[fmt.Sprintf("workExperienceFieldList[%d].workEndYear", i)] = "Work end year is required when not ongoing"
		} else if *w.EndYear < w.StartYear {
			errs[fmt.Sprintf("workExperienceFieldList[%d].workEndYear", i)] = "Work end year cannot be before start year"
		}
	}
	if ongoing > 1 {
		errs["workExperienceFieldList"] = "You can have at most 1 ongoing work experience"
	}
	return errs
}

// --- Culture ---

type CultureFields struct {
	AvailableFrom      string           `json:"availableFrom" validate:"required,datetime=2006-01-02"`
	EmiratesPreference []models.Emirate `json:"emiratesPreference" validate:"required,min=1,unique,dive,is-emirate"`
}

type QuestionsInput struct {
	NextJobSeek        string   `json:"nextJobSeek" validate:"required,max=2000"`
	Motivation         string   `json:"motivation" validate:"required,max=2000"`
	WorkEnvironment    string   `json:"workEnvironment" validate:"required,is-work-environment"`
	TopValuesInNextJob []string `json:"topValuesInNextJob" validate:"required,min=1,max=2,unique,dive,is-job-value"`
}

type CultureRequest struct {
	JobSeekerFieldSet CultureFields  `json:"jobSeekerFieldSet"`
	TargetCompanyIDs  []string       `json:"targetCompaniesList" validate:"required,min=1,max=2,unique,dive,required"`
	Questions         QuestionsInput `json:"jobSeekerQA"`
}

// --- Media ---

type MediaFields struct {
	PersonalWebsiteURL string `json:"personalWebsiteUrl" validate:"required,url,max=2048"`
}

type PublicationInput struct {
	PublicationLink string `json:"publicationLink" validate:"required,url,max=2048"`
}

type MediaRequest struct {
	JobSeekerFieldSet MediaFields        `json:"jobSeekerFieldSet"`
	Publications      []PublicationInput `json:"publicationsFieldList" validate:"dive"`
}

// --- Video resume ---

type VideoResumeRequest struct {
	VideoCVURL string `json:"videoCVUrl" validate:"required,url,max=2048"`
}

// --- Screening ---

type AvailabilitySlotInput struct {
	Day       models.Day `json:"day" validate:"required,is-day"`
	StartTime string     `json:"startTime" validate:"required,hhmm"`
	EndTime   string     `json:"endTime" validate:"required,hhmm"`
}

type ScreeningRequest struct {
	AvailabilitySlots []AvailabilitySlotInput `json:"availabilitySlots" validate:"required,len=3,dive"`
}

func (r *ScreeningRequest) Validate() map[string]string {
	errs := map[string]string{}
	for i, s := range r.AvailabilitySlots {
		// HH:MM compares correctly as a string.
		if s.StartTime != "" && s.EndTime != "" && s.EndTime <= s.StartTime {
			errs[fmt.Sprintf("availabilitySlots[%d].endTime", i)] = "End time must be after start time"
		}
	}
	return errs
}

// --- CV ---

type PresignCVRequest struct {
	FileName    string `json:"fileName" validate:"required,max=255"`
	ContentType string `json:"contentType" validate:"required,eq=application/pdf"`
}

type PresignCVResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
	ViewURL   string `json:"viewUrl"`
	ExpiresIn int    `json:"expiresIn"`
}

type AttachCVRequest struct {
	Key      string `json:"key" validate:"required,max=512"`
	FileName string `json:"fileName" validate:"required,max=255"`
}

// --- Completion ---

type AcademyCompletion struct {
	IsComplete         bool  `json:"isComplete"`
	EducationCount     int64 `json:"educationCount"`
	CertificationCount int64 `json:"certificationCount"`
	MembershipCount    int64 `json:"membershipCount"`
}

// ExperienceCompletion reports WorkExperienceStatus for display only;
// it does not feed IsComplete.
type ExperienceCompletion struct {
	IsComplete            bool  `json:"isComplete"`
	LocalMarketAnswered   bool  `json:"localMarketAnswered"`
	TotalYearsSet         bool  `json:"totalYearsSet"`
	PeopleManagementSet   bool  `json:"peopleManagementSet"`
	SkillCount            int64 `json:"skillCount"`
	WorkExperienceCount   int64 `json:"workExperienceCount"`
	WorkExperienceStatus  bool  `json:"workExperienceStatus"`
	SeagoingExperienceSet bool  `json:"seagoingExperienceSet"`
}

type CultureCompletion struct {
	IsComplete         bool  `json:"isComplete"`
	HasQuestions       bool  `json:"hasQuestions"`
	AvailableFromSet   bool  `json:"availableFromSet"`
	EmiratesSet        bool  `json:"emiratesSet"`
	TargetCompanyCount int64 `json:"targetCompanyCount"`
}

type PublicationsCompletion struct {
	IsComplete       bool  `json:"isComplete"`
	CVUploaded       bool  `json:"cvUploaded"`
	WebsiteSet       bool  `json:"websiteSet"`
	PublicationCount int64 `json:"publicationCount"`
}

type VideoCompletion struct {
	IsComplete bool `json:"isComplete"`
}

type AvailabilityCompletion struct {
	IsComplete bool  `json:"isComplete"`
	SlotCount  int64 `json:"slotCount"`
}

// SectionCompletion groups the six section checks.
type SectionCompletion struct {
	Academy      AcademyCompletion      `json:"academy"`
	Experience   ExperienceCompletion   `json:"experience"`
	Culture      CultureCompletion      `json:"culture"`
	Publications PublicationsCompletion `json:"publications"`
	Video        VideoCompletion        `json:"video"`
	Availability AvailabilityCompletion `json:"availability"`
}

// AllComplete is the logical AND of the six checks.
func (s SectionCompletion) AllComplete() bool {
	return s.Academy.IsComplete &&
		s.Experience.IsComplete &&
		s.Culture.IsComplete &&
		s.Publications.IsComplete &&
		s.Video.IsComplete &&
		s.Availability.IsComplete
}

type StageStatus struct {
	Stage      string `json:"stage"`
	IsComplete bool   `json:"isComplete"`
}

type OnboardingStatus struct {
	RedirectTo  string             `json:"redirectTo,omitempty"`
	JobSeekerID string             `json:"jobSeekerId,omitempty"`
	Stages      []StageStatus      `json:"stages,omitempty"`
	Sections    *SectionCompletion `json:"sections,omitempty"`
	HasAccess   bool               `json:"hasAccess"`
	CanComplete bool               `json:"canComplete"`
	NextStage   string             `json:"nextStage,omitempty"`
}

type CompleteOnboardingResponse struct {
	IsOnboarded bool   `json:"isOnboarded"`
	RedirectTo  string `json:"redirectTo"`
}
