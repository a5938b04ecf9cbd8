// Package mail delivers one-time signup codes to users over SMTP.
package mail

//go:generate mockgen -source=mailer.go -destination=../mock/mailer_mock.go -package=mock

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	gomail "github.com/wneessen/go-mail"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
)

// ErrDeliveryFailed wraps any SMTP-level failure so callers can treat all
// delivery problems uniformly and roll back the pending signup record.
var ErrDeliveryFailed = errors.New("failed to send email")

// Mailer sends one-time signup codes to prospective users.
type Mailer interface {
	// SendOTP delivers the given code to the recipient, addressing them by
	// name. The context bounds the whole dispatch including connection
	// setup; an expired context is a delivery failure.
	SendOTP(ctx context.Context, email string, name string, otp string) error
}

const otpSubject = "Your OTP for NoteTaking App"

var otpBodyTemplate = template.Must(template.New("otp").Parse(`
      <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
        <h2 style="color: #333;">Hello {{.Name}}!</h2>
        <p>Your OTP for the NoteTaking App is:</p>
        <div style="background-color: #f4f4f4; padding: 20px; text-align: center; border-radius: 5px;">
          <h1 style="color: #007bff; font-size: 32px; margin: 0;">{{.OTP}}</h1>
        </div>
        <p>This OTP will expire in 10 minutes.</p>
        <p>If you didn't request this OTP, please ignore this email.</p>
        <p>Best regards,<br>NoteTaking Team</p>
      </div>
    `))

// smtpMailer is the go-mail backed implementation of [Mailer].
type smtpMailer struct {
	client *gomail.Client
	from   string
	logger *logger.Logger
}

// NewSMTPMailer constructs a [Mailer] that dispatches through the SMTP
// server described by cfg. Port 465 style implicit TLS is selected with
// cfg.Secure; otherwise the client attempts opportunistic STARTTLS.
func NewSMTPMailer(cfg config.Email, logger *logger.Logger) (Mailer, error) {
	tlsPolicy := gomail.TLSOpportunistic
	if cfg.Secure {
		tlsPolicy = gomail.TLSMandatory
	}

	options := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
		gomail.WithTLSPolicy(tlsPolicy),
		gomail.WithTimeout(cfg.Timeout),
	}
	if cfg.Secure {
		options = append(options, gomail.WithSSL())
	}

	client, err := gomail.NewClient(cfg.Host, options...)
	if err != nil {
		return nil, fmt.Errorf("creating smtp client: %w", err)
	}

	logger.Debug().Str("host", cfg.Host).Int("port", cfg.Port).Msg("creating smtp mailer")
	return &smtpMailer{
		client: client,
		from:   cfg.From,
		logger: logger,
	}, nil
}

// SendOTP renders the code email and dispatches it. Every failure, from
// template rendering to the SMTP conversation, comes back wrapped in
// [ErrDeliveryFailed].
func (m *smtpMailer) SendOTP(ctx context.Context, email string, name string, otp string) error {
	log := logger.FromContext(ctx)

	body, err := renderOTPBody(name, otp)
	if err != nil {
		log.Err(err).Str("func", "*smtpMailer.SendOTP").Msg("error: rendering email body")
		return errors.Join(ErrDeliveryFailed, err)
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return errors.Join(ErrDeliveryFailed, err)
	}
	if err := msg.To(email); err != nil {
		return errors.Join(ErrDeliveryFailed, err)
	}
	msg.Subject(otpSubject)
	msg.SetBodyString(gomail.TypeTextHTML, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		log.Err(err).Str("func", "*smtpMailer.SendOTP").Str("email", email).Msg("error: sending signup code email")
		return errors.Join(ErrDeliveryFailed, err)
	}

	log.Info().Str("email", email).Msg("signup code email sent")
	return nil
}

// renderOTPBody produces the HTML body of the signup code email.
func renderOTPBody(name string, otp string) (string, error) {
	builder := new(strings.Builder)
	err := otpBodyTemplate.Execute(builder, struct {
		Name string
		OTP  string
	}{Name: name, OTP: otp})
	if err != nil {
		return "", err
	}
	return builder.String(), nil
}
