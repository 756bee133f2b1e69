package email

// Provider sends email.
type Provider interface {
	Send(email *Email) error

	// SendTemplate renders templateName with data and sends it to every recipient.
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	// Validate checks provider configuration
	Validate() error

	Close() error
}

// TemplateRenderer renders named templates.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
}
