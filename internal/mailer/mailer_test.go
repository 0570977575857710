package mailer

import (
	"strings"
	"testing"
	"time"
)

func TestRenderLoginNotice(t *testing.T) {
	t.Parallel()

	m, err := NewSMTPMailer(Config{Host: "smtp.example.com", Port: 587, From: "noreply@example.com"})
	if err != nil {
		t.Fatalf("NewSMTPMailer failed: %v", err)
	}

	loginAt := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	body, err := m.renderLoginNotice("alice", loginAt)
	if err != nil {
		t.Fatalf("renderLoginNotice failed: %v", err)
	}

	if !strings.Contains(body, "alice") {
		t.Error("Expected rendered body to contain the username")
	}
	if !strings.Contains(body, "2025-06-01 12:30 UTC") {
		t.Error("Expected rendered body to contain the login time")
	}
}

func TestRenderLoginNotice_EscapesHTML(t *testing.T) {
	t.Parallel()

	m, err := NewSMTPMailer(Config{Host: "smtp.example.com", Port: 587, From: "noreply@example.com"})
	if err != nil {
		t.Fatalf("NewSMTPMailer failed: %v", err)
	}

	body, err := m.renderLoginNotice("<script>alert(1)</script>", time.Now())
	if err != nil {
		t.Fatalf("renderLoginNotice failed: %v", err)
	}

	if strings.Contains(body, "<script>") {
		t.Error("Expected username to be HTML-escaped")
	}
}

func TestBuildMessage(t *testing.T) {
	t.Parallel()

	msg := string(buildMessage("noreply@example.com", "alice@example.com", "New login to your account", "<p>hi</p>"))

	for _, want := range []string{
		"From: noreply@example.com\r\n",
		"To: alice@example.com\r\n",
		"Subject: New login to your account\r\n",
		"Content-Type: text/html; charset=\"utf-8\"\r\n",
		"\r\n\r\n",
		"<p>hi</p>",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("Expected message to contain %q", want)
		}
	}

	if !strings.HasSuffix(msg, "\r\n") {
		t.Error("Expected message to end with CRLF")
	}
}
