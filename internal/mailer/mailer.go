package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
	"time"
)

//go:embed templates/login_notice.html
var templateFS embed.FS

// LoginNotifier sends a notification when a user signs in.
type LoginNotifier interface {
	NotifyLogin(ctx context.Context, recipient, username string) error
}

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer delivers notification emails over SMTP with STARTTLS.
type SMTPMailer struct {
	cfg  Config
	tmpl *template.Template
}

// NewSMTPMailer creates a mailer from SMTP settings.
func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/login_notice.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse mail template: %w", err)
	}
	return &SMTPMailer{cfg: cfg, tmpl: tmpl}, nil
}

// NotifyLogin sends a login notification email to the recipient.
func (m *SMTPMailer) NotifyLogin(ctx context.Context, recipient, username string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := m.renderLoginNotice(username, time.Now())
	if err != nil {
		return err
	}

	msg := buildMessage(m.cfg.From, recipient, "New login to your account", body)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{recipient}, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}

func (m *SMTPMailer) renderLoginNotice(username string, loginAt time.Time) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Username string
		LoginAt  string
	}{
		Username: username,
		LoginAt:  loginAt.UTC().Format("2006-01-02 15:04 UTC"),
	}
	if err := m.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render mail template: %w", err)
	}
	return buf.String(), nil
}

// buildMessage assembles an RFC 5322 message with an HTML body.
func buildMessage(from, to, subject, htmlBody string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")
	return []byte(b.String())
}
