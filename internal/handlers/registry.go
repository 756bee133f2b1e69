package handlers

// AppHandlers holds every HTTP handler.
type AppHandlers struct {
	AuthHandler       *AuthHandler
	OnboardingHandler *OnboardingHandler
	ModerationHandler *ModerationHandler
	InvitationHandler *InvitationHandler
	ReferenceHandler  *ReferenceHandler
	BillingHandler    *BillingHandler
}
