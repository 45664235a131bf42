package mailer

import (
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// Mailer defines the interface for notification mail
type Mailer interface {
	SendApplicationStatusMail(toEmail, toName, jobTitle, status string) error
	SendInterviewScheduledMail(toEmail, toName, jobTitle, when string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// SMTPMailer implements Mailer over plain SMTP
type SMTPMailer struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSMTPMailer creates a new SMTPMailer
func NewSMTPMailer(config SMTPConfig, logger zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{
		config: config,
		logger: logger,
	}
}

// SendApplicationStatusMail notifies an intern that their application moved to a new status
func (m *SMTPMailer) SendApplicationStatusMail(toEmail, toName, jobTitle, status string) error {
	subject := fmt.Sprintf("Your application for %q was updated", jobTitle)
	body := fmt.Sprintf("Hi %s,\n\nYour application for %q is now %s.\n\nThe InternFinder Team", toName, jobTitle, status)
	return m.send(toEmail, subject, body)
}

// SendInterviewScheduledMail notifies an intern about a scheduled interview
func (m *SMTPMailer) SendInterviewScheduledMail(toEmail, toName, jobTitle, when string) error {
	subject := fmt.Sprintf("Interview scheduled for %q", jobTitle)
	body := fmt.Sprintf("Hi %s,\n\nAn interview for %q has been scheduled for %s.\n\nThe InternFinder Team", toName, jobTitle, when)
	return m.send(toEmail, subject, body)
}

// send delivers the mail, or logs it when SMTP credentials are not configured
// so local development works without a mail server.
func (m *SMTPMailer) send(toEmail, subject, body string) error {
	if m.config.Username == "" || m.config.Password == "" {
		m.logger.Info().
			Str("toEmail", toEmail).
			Str("subject", subject).
			Msg("SMTP credentials not configured - notification mail logged instead of sent")
		return nil
	}

	msg := []byte("From: " + m.config.FromName + " <" + m.config.FromEmail + ">\r\n" +
		"To: " + toEmail + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")

	addr := m.config.Host + ":" + strconv.Itoa(m.config.Port)
	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)

	if err := smtp.SendMail(addr, auth, m.config.FromEmail, []string{toEmail}, msg); err != nil {
		m.logger.Error().Err(err).Str("toEmail", toEmail).Msg("Failed to send notification mail")
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}
