package validator_test

import (
	"testing"

	"nautikos_backend/internal/models"
	"nautikos_backend/internal/services/dto"
	"nautikos_backend/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	verr, ok := err.(*validator.ValidationError)
	require.True(t, ok, "expected *ValidationError, got %T", err)
	return verr.Errors
}

func TestScreeningRequest(t *testing.T) {
	v := validator.New()

	valid := &dto.ScreeningRequest{AvailabilitySlots: []dto.AvailabilitySlotInput{
		{Day: "Monday", StartTime: "09:00", EndTime: "10:00"},
		{Day: "Tuesday", StartTime: "13:30", EndTime: "15:00"},
		{Day: "Sunday", StartTime: "00:00", EndTime: "23:59"},
	}}
	assert.NoError(t, v.Validate(valid))

	t.Run("exactly three slots", func(t *testing.T) {
		req := &dto.ScreeningRequest{AvailabilitySlots: valid.AvailabilitySlots[:2]}
		errs := fieldErrors(t, v.Validate(req))
		assert.Equal(t, "Must be exactly 3 items/characters long", errs["availabilitySlots"])
	})

	t.Run("time format", func(t *testing.T) {
		req := &dto.ScreeningRequest{AvailabilitySlots: []dto.AvailabilitySlotInput{
			valid.AvailabilitySlots[0],
			{Day: "Friday", StartTime: "9:00", EndTime: "24:00"},
			valid.AvailabilitySlots[2],
		}}
		errs := fieldErrors(t, v.Validate(req))
		assert.Equal(t, "Must be a time in HH:MM format", errs["availabilitySlots[1].startTime"])
		assert.Equal(t, "Must be a time in HH:MM format", errs["availabilitySlots[1].endTime"])
	})

	t.Run("end after start", func(t *testing.T) {
		req := &dto.ScreeningRequest{AvailabilitySlots: []dto.AvailabilitySlotInput{
			valid.AvailabilitySlots[0],
			{Day: "Friday", StartTime: "12:00", EndTime: "12:00"},
			valid.AvailabilitySlots[2],
		}}
		errs := fieldErrors(t, v.Validate(req))
		assert.Equal(t, "End time must be after start time", errs["availabilitySlots[1].endTime"])
	})

	t.Run("unknown day", func(t *testing.T) {
		req := &dto.ScreeningRequest{AvailabilitySlots: []dto.AvailabilitySlotInput{
			valid.AvailabilitySlots[0],
			{Day: "Funday", StartTime: "12:00", EndTime: "13:00"},
			valid.AvailabilitySlots[2],
		}}
		errs := fieldErrors(t, v.Validate(req))
		assert.Equal(t, "Not an allowed value", errs["availabilitySlots[1].day"])
	})
}

func TestAcademyRequest_EndYear(t *testing.T) {
	v := validator.New()
	education := dto.EducationInput{
		EducationLevel: models.EducationDiploma,
		Institution:    "Dubai Maritime College",
		DegreeName:     "Diploma",
		FieldOfStudy:   "Port Operations",
		StartYear:      2015,
	}

	errs := fieldErrors(t, v.Validate(&dto.AcademyRequest{Educations: []dto.EducationInput{education}}))
	assert.Equal(t, "Education end year is required when not ongoing", errs["educationFieldList[0].educationEndYear"])

	education.IsOngoing = true
	assert.NoError(t, v.Validate(&dto.AcademyRequest{Educations: []dto.EducationInput{education}}))

	errs = fieldErrors(t, v.Validate(&dto.AcademyRequest{}))
	assert.Contains(t, errs, "educationFieldList")
}

func TestExperienceRequest_Skills(t *testing.T) {
	v := validator.New()
	years := 5
	mgmt := models.PeopleManagementNone
	yes := true
	req := &dto.ExperienceRequest{
		JobSeekerFieldSet: dto.ExperienceFields{
			TotalYearsExperience:       &years,
			PeopleManagementExperience: &mgmt,
			ArabicSpeaking:             &yes,
			DubaiTradePortal:           &yes,
			UAECustoms:                 &yes,
			FreeZoneProcess:            &yes,
		},
		Skills: []models.Skill{"Chartering", "Crewing", "Legal"},
		WorkExperiences: []dto.WorkExperienceInput{{
			Company:                "Gulf Agency",
			CountryID:              "ae",
			Role:                   "Agent",
			JobType:                models.JobTypePartTime,
			MeasurableAchievements: "Handled 300 port calls",
			StartYear:              2019,
			StartMonth:             1,
			IsOngoing:              true,
		}},
	}
	require.NoError(t, v.Validate(req))

	req.Skills = []models.Skill{"Chartering", "Chartering", "Legal"}
	errs := fieldErrors(t, v.Validate(req))
	assert.Equal(t, "Values must not repeat", errs["skills"])

	req.Skills = []models.Skill{"Chartering", "Legal", "Basket weaving"}
	errs = fieldErrors(t, v.Validate(req))
	assert.Equal(t, "Not an allowed value", errs["skills[2]"])

	req.Skills = []models.Skill{"Chartering", "Legal", "Crewing"}
	second := req.WorkExperiences[0]
	req.WorkExperiences = append(req.WorkExperiences, second)
	errs = fieldErrors(t, v.Validate(req))
	assert.Equal(t, "You can have at most 1 ongoing work experience", errs["workExperienceFieldList"])
}

func TestInviteUserRequest(t *testing.T) {
	v := validator.New()

	assert.NoError(t, v.Validate(&dto.InviteUserRequest{Email: "a@example.com", Role: models.UserRoleModerator}))

	errs := fieldErrors(t, v.Validate(&dto.InviteUserRequest{Email: "a@example.com", Role: models.UserRoleOrgMember}))
	assert.Equal(t, "Organization name is required for organization members", errs["organizationName"])

	errs = fieldErrors(t, v.Validate(&dto.InviteUserRequest{Email: "not-an-email", Role: "captain"}))
	assert.Equal(t, "Must be a valid email address", errs["email"])
	assert.Equal(t, "Not an allowed value", errs["role"])
}
