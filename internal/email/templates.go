package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

const (
	TemplateModeratorAssigned = "moderator_assigned"
	TemplateUserInvited       = "user_invited"
	TemplateVerifyEmail       = "verify_email"
	TemplatePasswordReset     = "password_reset"
)

var defaultTemplates = map[string]string{
	TemplateModeratorAssigned: `<p>Hello {{.ModeratorName}},</p>
<p>You have been assigned to review candidate #{{.CandidateNumber}} ({{.CandidateName}}).</p>
<p><a href="{{.CandidateURL}}">Open the candidate profile</a></p>`,
	TemplateUserInvited: `<p>You have been invited to join Nautikos as {{.RoleLabel}}.</p>
<p>Your verification code is <strong>{{.Code}}</strong>. It expires in {{.ExpiresIn}}.</p>
<p><a href="{{.AcceptURL}}">Accept the invitation</a></p>`,
	TemplateVerifyEmail: `<p>Welcome to Nautikos.</p>
<p>Your verification code is <strong>{{.Code}}</strong>. It expires in {{.ExpiresIn}}.</p>
<p><a href="{{.VerifyURL}}">Verify your email</a></p>`,
	TemplatePasswordReset: `<p>We received a request to reset your Nautikos password.</p>
<p>Your reset code is <strong>{{.Code}}</strong>. It expires in {{.ExpiresIn}}.</p>
<p><a href="{{.ResetURL}}">Choose a new password</a></p>
<p>If you did not ask for this, you can ignore this email.</p>`,
}

// TemplateManager implements TemplateRenderer.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	return &TemplateManager{
		templates: make(map[string]*template.Template),
	}
}

// NewDefaultTemplateManager returns a manager preloaded with the platform templates.
func NewDefaultTemplateManager() (*TemplateManager, error) {
	tm := NewTemplateManager()
	for name, body := range defaultTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			return nil, err
		}
	}
	return tm, nil
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Option("missingkey=error").Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}
