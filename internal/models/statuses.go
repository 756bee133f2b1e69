package models

// --- Users ---

type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleJobSeeker UserRole = "job_seeker"
	UserRoleOrgMember UserRole = "org_member"
	UserRoleModerator UserRole = "moderator"
)

var UserRoles = []UserRole{UserRoleAdmin, UserRoleJobSeeker, UserRoleOrgMember, UserRoleModerator}

// Label is the human-readable role name used in invitation emails.
func (r UserRole) Label() string {
	switch r {
	case UserRoleAdmin:
		return "Administrator"
	case UserRoleModerator:
		return "Content Moderator"
	case UserRoleOrgMember:
		return "Organization Member"
	default:
		return "Job Candidate"
	}
}

// --- Invitations ---

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusDeclined InvitationStatus = "declined"
	InvitationStatusRevoked  InvitationStatus = "revoked"
)

type VerificationType string

const (
	VerificationTypeOnboarding    VerificationType = "onboarding"
	VerificationTypeResetPassword VerificationType = "reset-password"
)

// --- Moderation ---

type AssignmentStatus string

const (
	AssignmentStatusActive    AssignmentStatus = "active"
	AssignmentStatusCompleted AssignmentStatus = "completed"
)

type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "Pending"
	ReviewStatusResolved ReviewStatus = "Resolved"
)

type ReviewSection string

const (
	ReviewSectionPersonalInfo               ReviewSection = "personal_info"
	ReviewSectionCVAndResume                ReviewSection = "cv_and_resume"
	ReviewSectionIntroVideo                 ReviewSection = "intro_video"
	ReviewSectionEducation                  ReviewSection = "education"
	ReviewSectionMemberships                ReviewSection = "memberships"
	ReviewSectionProfessionalCertifications ReviewSection = "professional_certifications"
	ReviewSectionCorporateExperience        ReviewSection = "corporate_experience"
	ReviewSectionSeagoingExperience         ReviewSection = "seagoing_experience"
	ReviewSectionWorkExperience             ReviewSection = "work_experience"
	ReviewSectionCulture                    ReviewSection = "culture"
	ReviewSectionQuestionsAndAnswers        ReviewSection = "questions_and_answers"
	ReviewSectionPublications               ReviewSection = "publications"
)

var ReviewSections = []ReviewSection{
	ReviewSectionPersonalInfo,
	ReviewSectionCVAndResume,
	ReviewSectionIntroVideo,
	ReviewSectionEducation,
	ReviewSectionMemberships,
	ReviewSectionProfessionalCertifications,
	ReviewSectionCorporateExperience,
	ReviewSectionSeagoingExperience,
	ReviewSectionWorkExperience,
	ReviewSectionCulture,
	ReviewSectionQuestionsAndAnswers,
	ReviewSectionPublications,
}

type Rating string

const (
	RatingGood           Rating = "Good"
	RatingAverage        Rating = "Average"
	RatingUnsatisfactory Rating = "Unsatisfactory"
)

var Ratings = []Rating{RatingGood, RatingAverage, RatingUnsatisfactory}

type PlacementArea string

const (
	PlacementFreightForwarding    PlacementArea = "Freight_Forwarding"
	PlacementWarehousing          PlacementArea = "Warehousing"
	PlacementCharteringCommercial PlacementArea = "Chartering_Commercial"
	PlacementCharteringOperations PlacementArea = "Chartering_Operations"
	PlacementShipbroking          PlacementArea = "Shipbroking"
	PlacementShipManagement       PlacementArea = "Ship_Management"
	PlacementCustomerService      PlacementArea = "Customer_Service"
	PlacementDocumentation        PlacementArea = "Documentation"
	PlacementPricing              PlacementArea = "Pricing"
	PlacementSales                PlacementArea = "Sales"
)

var PlacementAreas = []PlacementArea{
	PlacementFreightForwarding,
	PlacementWarehousing,
	PlacementCharteringCommercial,
	PlacementCharteringOperations,
	PlacementShipbroking,
	PlacementShipManagement,
	PlacementCustomerService,
	PlacementDocumentation,
	PlacementPricing,
	PlacementSales,
}

// --- Job seeker profile ---

type PeopleManagementExperience string

const (
	PeopleManagementFivePlus  PeopleManagementExperience = "5+ years"
	PeopleManagementOneToFive PeopleManagementExperience = "1-5 years"
	PeopleManagementNone      PeopleManagementExperience = "No experience"
)

var PeopleManagementExperiences = []PeopleManagementExperience{
	PeopleManagementFivePlus, PeopleManagementOneToFive, PeopleManagementNone,
}

type EducationLevel string

const (
	EducationPostgraduate EducationLevel = "Postgraduate"
	EducationGraduate     EducationLevel = "Graduate"
	EducationDiploma      EducationLevel = "Diploma"
)

var EducationLevels = []EducationLevel{EducationPostgraduate, EducationGraduate, EducationDiploma}

type JobType string

const (
	JobTypeInternship JobType = "Internship"
	JobTypeConsultant JobType = "Consultant"
	JobTypePartTime   JobType = "Part-time"
	JobTypeFullTime   JobType = "Full-time"
)

var JobTypes = []JobType{JobTypeInternship, JobTypeConsultant, JobTypePartTime, JobTypeFullTime}

type Day string

var Days = []Day{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

type SeaRank string

var SeaRanks = []SeaRank{
	"Chief Officer",
	"Chief Engineer",
	"2nd Officer",
	"2nd Engineer",
	"3rd Officer",
	"3rd Engineer",
	"4th Engineer",
	"Cadet",
	"Radio Officer",
}

type Emirate string

var Emirates = []Emirate{
	"Abu Dhabi",
	"Dubai",
	"Sharjah",
	"Ajman",
	"Umm Al Quwain",
	"Ras Al Khaimah",
	"Fujairah",
}

type Skill string

var Skills = []Skill{
	"Chartering",
	"Ship broking",
	"Post-fixture",
	"Commercial managers",
	"Technical managers",
	"Crewing",
	"Bunkering",
	"Ship Chandling",
	"Stevedoring",
	"Customs clearance",
	"Port agents",
	"Container Line",
	"NVOCC",
	"Freight Forwarder",
	"Project cargo / Break-bulk",
	"Cruise industry",
	"Manufacturing",
	"Trading",
	"Road Transport",
	"Warehousing",
	"Oil / Chemicals Terminal",
	"Container Terminal",
	"Port",
	"Back office",
	"Customer Service",
	"IT solutions",
	"Legal",
	"Finance",
	"Training / Teaching",
	"Consultancy",
}

var WorkEnvironmentOptions = []string{
	"Defined roles and responsibilities with consistent feedback from management",
	"Dynamic roles requiring self-initiative and problem-solving",
}

var JobValueOptions = []string{
	"Having a say in what I work on and how I work",
	"Opportunities for career progression",
	"Learning from experienced team members",
	"Working for a company with strong growth potential",
	"Influencing the company's or team's direction",
	"Access to mentorship",
	"Developing new skills and knowledge",
	"Tackling challenging logistical problems",
	"Being part of a diverse team",
}

// Contains reports whether v is one of values.
func Contains[T ~string](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
