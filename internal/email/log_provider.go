package email

import (
	"sync"

	"nautikos_backend/internal/logger"
)

// LogProvider records messages instead of sending them. Used when email is
// disabled and in tests.
type LogProvider struct {
	renderer TemplateRenderer

	mu   sync.Mutex
	sent []Email
}

func NewLogProvider(renderer TemplateRenderer) *LogProvider {
	return &LogProvider{renderer: renderer}
}

func (p *LogProvider) Send(email *Email) error {
	p.mu.Lock()
	p.sent = append(p.sent, *email)
	p.mu.Unlock()

	logger.Info("email not sent (delivery disabled)", "to", email.To, "subject", email.Subject)
	return nil
}

func (p *LogProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	msg := &Email{To: to, Subject: subject}
	if p.renderer != nil {
		body, err := p.renderer.Render(templateName, data)
		if err != nil {
			return err
		}
		msg.HTMLBody = body
	}
	return p.Send(msg)
}

// Sent returns a copy of every recorded message.
func (p *LogProvider) Sent() []Email {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Email, len(p.sent))
	copy(out, p.sent)
	return out
}

func (p *LogProvider) Validate() error { return nil }
func (p *LogProvider) Close() error    { return nil }
