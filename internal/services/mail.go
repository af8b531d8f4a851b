package services

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"os"
)

// MailService sends transactional mail over SMTP. It satisfies Notifier;
// when the SMTP environment is not configured Send fails, so callers that
// must not report false success (OTP issuance) see a real error.
type MailService struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Enabled  bool
}

func NewMailService() *MailService {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")

	enabled := host != "" && port != "" && user != "" && pass != "" && from != ""
	if !enabled {
		log.Println("⚠️ MailService disabled: Missing SMTP environment variables.")
	}

	return &MailService{
		Host:     host,
		Port:     port,
		Username: user,
		Password: pass,
		From:     from,
		Enabled:  enabled,
	}
}

func (s *MailService) Send(_ context.Context, to, subject, body string) error {
	if !s.Enabled {
		return fmt.Errorf("mail service is not configured")
	}

	auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
	addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: Wordlink <%s>\r\n"+
		"Subject: %s\r\n"+
		"MIME-version: 1.0;\nContent-Type: text/plain; charset=\"UTF-8\";\n\n%s", to, s.From, subject, body))

	if err := smtp.SendMail(addr, auth, s.From, []string{to}, msg); err != nil {
		log.Printf("❌ Failed to send email to %s: %v", to, err)
		return err
	}
	log.Printf("✅ Email sent to %s: %s", to, subject)
	return nil
}
