// Package email delivers Dayflow's outbound mail. When SMTP is disabled the
// noop mailer keeps signup working in development and tests.
package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"dayflow/internal/platform/config"
)

type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type noopMailer struct{}

func (noopMailer) Send(context.Context, string, string, string, string) error {
	return nil
}

type smtpMailer struct {
	host     string
	port     int
	user     string
	password string
}

func New(cfg config.Config) Mailer {
	if !cfg.EmailEnabled || cfg.SMTPHost == "" {
		return noopMailer{}
	}
	return &smtpMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
	}
}

// VerificationMessage composes the signup mail around the single-use token
// issued by the accounts service. The wording matches the token's 24 hour
// lifetime.
func VerificationMessage(token string) (subject, body string) {
	subject = "Verify your Dayflow account"
	body = fmt.Sprintf(
		"Welcome to Dayflow. Use this token to verify your email address: %s\nThe token expires in 24 hours.",
		token,
	)
	return subject, body
}

func (m *smtpMailer) Send(ctx context.Context, from, to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return nil
	}

	dialer := net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(m.host, strconv.Itoa(m.port)))
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := m.negotiate(client); err != nil {
		return err
	}
	return submit(client, from, to, message(from, to, subject, body))
}

// negotiate upgrades to TLS when the server offers it and authenticates
// when credentials are configured.
func (m *smtpMailer) negotiate(client *smtp.Client) error {
	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
			return err
		}
	}
	if m.user == "" {
		return nil
	}
	return client.Auth(smtp.PlainAuth("", m.user, m.password, m.host))
}

func submit(client *smtp.Client, from, to string, msg []byte) error {
	if err := client.Mail(from); err != nil {
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
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func message(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\nTo: %s\r\nSubject: %s\r\n", from, to, subject)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
