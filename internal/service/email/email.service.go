package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Mailer is the notification gateway the auth usecase depends on. A send
// failure is reported, not retried, here; the caller decides what to do.
type Mailer interface {
	Send(to, subject, body string) error
}

type EmailSender struct {
	smtpHost string
	smtpPort string
	username string
	password string
	from     string
}

func NewEmailSender(host, port, user, pass, from string) *EmailSender {
	if from == "" {
		from = user
	}
	return &EmailSender{
		smtpHost: host,
		smtpPort: port,
		username: user,
		password: pass,
		from:     from,
	}
}

// Send delivers one message over implicit TLS (port 465 style).
func (e *EmailSender) Send(to, subject, body string) error {
	msg := []byte(
		fmt.Sprintf("From: %s\r\n", e.from) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body,
	)

	serverAddr := e.smtpHost + ":" + e.smtpPort

	tlsConfig := &tls.Config{
		ServerName: e.smtpHost,
	}

	conn, err := tls.Dial("tcp", serverAddr, tlsConfig)
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, e.smtpHost)
	if err != nil {
		return err
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", e.username, e.password, e.smtpHost)
	if err := client.Auth(auth); err != nil {
		return err
	}

	if err := client.Mail(e.from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

// FormatPurpose turns a snake_case OTP purpose into a mail-subject title,
// e.g. "password_reset" -> "Password Reset".
func FormatPurpose(purpose string) string {
	p := strings.ReplaceAll(purpose, "_", " ")
	return cases.Title(language.English).String(p)
}

// OTPSubject and OTPBody build the standard one-time-code mail content.
func OTPSubject(purpose string) string {
	return fmt.Sprintf("%s Code", FormatPurpose(purpose))
}

func OTPBody(email, purpose, code string, ttl time.Duration) string {
	return fmt.Sprintf(
		"Your %s code for %s is %s. It expires in %d minutes.",
		strings.ToLower(FormatPurpose(purpose)), email, code, int(ttl.Minutes()),
	)
}
