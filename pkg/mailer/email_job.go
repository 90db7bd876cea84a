package mailer

// Template names understood by the email worker.
const (
	TemplateWelcome       = "welcome"
	TemplateVerifyEmail   = "verify_email"
	TemplateResetPassword = "reset_password"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// When Template is set, Subject/Text/HTML are rendered by the worker from
// Data; otherwise they are sent as-is.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}
