package utils

import (
	"fmt" // Message formatting

	"github.com/sendgrid/sendgrid-go"              // SendGrid client
	"github.com/sendgrid/sendgrid-go/helpers/mail" // SendGrid mail helpers
)

// Mailer sends transactional mail through SendGrid
type Mailer struct {
	APIKey string // SendGrid API key
	From   string // Sender address
}

// NewMailer returns a Mailer, or nil when no API key is configured
func NewMailer(apiKey, from string) *Mailer {
	if apiKey == "" {
		return nil // Mail dispatch disabled
	}
	return &Mailer{APIKey: apiKey, From: from}
}

// SendTempPassword emails a freshly generated temporary password to a user
func (m *Mailer) SendTempPassword(toName, toEmail, tempPassword string) error {
	from := mail.NewEmail("Pet Contest", m.From) // Sender identity
	to := mail.NewEmail(toName, toEmail)         // Recipient
	subject := "Sua senha temporária"            // Subject line

	plainTextContent := fmt.Sprintf("Olá %s, sua senha temporária é: %s", toName, tempPassword)
	htmlContent := fmt.Sprintf("Olá %s, sua senha temporária é: <strong>%s</strong>", toName, tempPassword)

	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)
	client := sendgrid.NewSendClient(m.APIKey) // SendGrid client
	_, err := client.Send(message)             // Dispatch the mail
	return err                                 // Return send result
}
