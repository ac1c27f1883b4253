// utils/email.go
package utils

import (
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/gomail.v2"
)

// smtpDialer builds a gomail dialer from SMTP_* environment variables.
func smtpDialer() (*gomail.Dialer, string) {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")
	smtpPort := 2525
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		fmt.Sscanf(portStr, "%d", &smtpPort)
	}
	return gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass), smtpUser
}

// SendEmail sends a plain-text email via SMTP.
func SendEmail(to, subject, body string) error {
	d, from := smtpDialer()
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return d.DialAndSend(m)
}

// SendWelcomeEmail greets a newly registered user. Best-effort: failures are
// logged and never bubble up to fail the registration.
func SendWelcomeEmail(to, fullName string) {
	body := fmt.Sprintf("Dear %s,\n\nWelcome to OausConnect! Your account has been created successfully.\nJoin a community, share a post and connect with fellow students.\n\nBest regards,\nThe OausConnect Team", fullName)
	if err := SendEmail(to, "Welcome to OausConnect", body); err != nil {
		log.Printf("Failed to send welcome email to %s: %v", MaskEmail(to), err)
	}
}

// SendPasswordResetEmail delivers the reset link for the given token.
func SendPasswordResetEmail(to, fullName, token string) error {
	baseURL := os.Getenv("FRONTEND_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	link := fmt.Sprintf("%s/reset-password/%s", strings.TrimRight(baseURL, "/"), token)
	body := fmt.Sprintf("Dear %s,\n\nWe received a request to reset your OausConnect password.\nOpen the link below within 15 minutes to choose a new password:\n\n%s\n\nIf you did not request this, you can safely ignore this email.\n\nBest regards,\nThe OausConnect Team", fullName, link)
	return SendEmail(to, "Reset your OausConnect password", body)
}

// MaskEmail hides most of the local part for display, e.g. j***e@uni.edu.
func MaskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 1 {
		return email
	}
	local := email[:at]
	if len(local) <= 2 {
		return local[:1] + "***" + email[at:]
	}
	return local[:1] + "***" + local[len(local)-1:] + email[at:]
}
