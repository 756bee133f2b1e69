package dto

type NotificationEvent string

const (
	EventModeratorAssigned NotificationEvent = "moderator_assigned"
	EventUserInvited       NotificationEvent = "user_invited"
	EventVerifyEmail       NotificationEvent = "verify_email"
	EventPasswordReset     NotificationEvent = "password_reset"
)

// Notification is returned by operations that should trigger an email.
// Services only describe it; delivery happens in the notification service.
type Notification struct {
	Recipient string            `json:"-"`
	Event     NotificationEvent `json:"-"`
	Data      map[string]string `json:"-"`
}
