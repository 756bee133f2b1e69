package services

import (
	"context"
	"fmt"

	"nautikos_backend/internal/email"
	"nautikos_backend/internal/logger"
	"nautikos_backend/internal/services/dto"
)

// EmailService delivers notifications produced by other services.
type EmailService struct {
	provider email.Provider
	appName  string
}

func NewEmailService(provider email.Provider, appName string) *EmailService {
	if appName == "" {
		appName = "Nautikos"
	}
	return &EmailService{provider: provider, appName: appName}
}

type notificationTemplate struct {
	name    string
	subject string
}

func (s *EmailService) template(event dto.NotificationEvent) (notificationTemplate, bool) {
	switch event {
	case dto.EventModeratorAssigned:
		return notificationTemplate{email.TemplateModeratorAssigned, "A candidate has been assigned to you"}, true
	case dto.EventUserInvited:
		return notificationTemplate{email.TemplateUserInvited, fmt.Sprintf("Welcome to %s", s.appName)}, true
	case dto.EventVerifyEmail:
		return notificationTemplate{email.TemplateVerifyEmail, fmt.Sprintf("Welcome to %s", s.appName)}, true
	case dto.EventPasswordReset:
		return notificationTemplate{email.TemplatePasswordReset, "Reset your password"}, true
	}
	return notificationTemplate{}, false
}

// Send renders and sends one notification.
func (s *EmailService) Send(ctx context.Context, n *dto.Notification) error {
	if n == nil {
		return nil
	}
	tpl, ok := s.template(n.Event)
	if !ok {
		return fmt.Errorf("no email template for event %q", n.Event)
	}

	data := make(email.TemplateData, len(n.Data))
	for k, v := range n.Data {
		data[k] = v
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	return s.provider.SendTemplate([]string{n.Recipient}, tpl.subject, tpl.name, data)
}

// Notify sends n and logs a failure instead of returning it. The operation
// that produced n has already committed.
func (s *EmailService) Notify(ctx context.Context, n *dto.Notification) {
	if n == nil {
		return
	}
	if err := s.Send(ctx, n); err != nil {
		logger.CtxWithError(ctx, "Failed to send notification", err, "event", n.Event)
		return
	}
	logger.CtxInfo(ctx, "Notification sent", "event", n.Event)
}

// Validate checks the provider configuration.
func (s *EmailService) Validate() error {
	return s.provider.Validate()
}
