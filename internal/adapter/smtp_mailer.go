package adapter

import (
	"context"
	"fmt"
	"net/smtp"

	"campus-quiz/internal/config"
	"campus-quiz/internal/domain"
	"campus-quiz/internal/logger"

	"go.uber.org/zap"
)

// SMTPMailer delivers verification codes over plain SMTP with auth.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// NewSMTPMailer creates a mailer from SMTP config.
func NewSMTPMailer(cfg config.SMTPConfig) domain.Mailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendOTP(ctx context.Context, email, code string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Your verification code\r\n\r\nYour verification code is %s. It expires in 10 minutes.\r\n",
		m.cfg.From, email, code,
	)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{email}, []byte(msg)); err != nil {
		logger.Get().Error("failed to send OTP email", zap.String("email", email), zap.Error(err))
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

// LogMailer writes the code to the application log instead of sending mail.
// Used in development when no SMTP credentials are configured.
type LogMailer struct{}

func NewLogMailer() domain.Mailer {
	return &LogMailer{}
}

func (m *LogMailer) SendOTP(ctx context.Context, email, code string) error {
	logger.Get().Info("OTP issued (log mailer)", zap.String("email", email), zap.String("code", code))
	return nil
}
