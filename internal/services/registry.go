package services

import (
	"nautikos_backend/internal/auth"
	"nautikos_backend/internal/email"
	"nautikos_backend/internal/repositories"
	"nautikos_backend/internal/storage"
)

// ServiceContainer holds every application service.
type ServiceContainer struct {
	SectionService    SectionService
	CompletionService CompletionService
	OnboardingService OnboardingService
	ModerationService ModerationService
	InvitationService InvitationService
	BillingService    BillingService
	CVService         CVService
	ReferenceService  ReferenceService
	AuthService       AuthService
	EmailService      *EmailService
}

// Dependencies are the collaborators services are built from.
type Dependencies struct {
	Storage       storage.Storage
	EmailProvider email.Provider
	Tokens        *auth.TokenManager
	Codes         *auth.CodeIssuer
	Checkout      CheckoutSessions
	PriceID       string
	AppName       string
	AppURL        string
}

func NewServiceContainer(deps Dependencies) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	jobSeekerRepo := repositories.NewJobSeekerRepository()
	assignmentRepo := repositories.NewAssignmentRepository()
	reviewRepo := repositories.NewReviewRepository()
	invitationRepo := repositories.NewInvitationRepository()
	referenceRepo := repositories.NewReferenceRepository()

	sectionService := NewSectionService(userRepo, jobSeekerRepo, referenceRepo)
	completionService := NewCompletionService(jobSeekerRepo)

	return &ServiceContainer{
		SectionService:    sectionService,
		CompletionService: completionService,
		OnboardingService: NewOnboardingService(userRepo, jobSeekerRepo, completionService),
		ModerationService: NewModerationService(userRepo, jobSeekerRepo, assignmentRepo, reviewRepo, deps.AppURL),
		InvitationService: NewInvitationService(userRepo, invitationRepo, deps.Codes, deps.AppURL),
		BillingService:    NewBillingService(userRepo, deps.Checkout, deps.PriceID, deps.AppURL),
		CVService:         NewCVService(sectionService, deps.Storage),
		ReferenceService:  NewReferenceService(referenceRepo),
		AuthService:       NewAuthService(userRepo, invitationRepo, deps.Tokens, deps.Codes, deps.AppURL),
		EmailService:      NewEmailService(deps.EmailProvider, deps.AppName),
	}
}
