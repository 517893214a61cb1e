// Package mail adaptadores de ports.Mailer: SMTP (gomail) y un mailer que solo registra en el log.
package mail

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/lancei-admin/internal/application/ports"
	"github.com/jhoicas/lancei-admin/pkg/config"
)

var (
	_ ports.Mailer = (*SMTPMailer)(nil)
	_ ports.Mailer = (*LogMailer)(nil)
)

// Dialer abre la conexión SMTP y envía. Implementado por *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer envía correos HTML por SMTP.
type SMTPMailer struct {
	dialer Dialer
	from   string
}

// NewSMTPMailer construye el mailer desde la configuración.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return NewSMTPMailerWithDialer(gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password), cfg.From)
}

// NewSMTPMailerWithDialer construye el mailer sobre un Dialer propio (tests).
func NewSMTPMailerWithDialer(d Dialer, from string) *SMTPMailer {
	return &SMTPMailer{dialer: d, from: from}
}

// Send compone el mensaje y lo entrega. gomail no admite cancelación: ctx solo se consulta antes de conectar.
func (m *SMTPMailer) Send(ctx context.Context, msg ports.EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.To == "" {
		return fmt.Errorf("mail: destinatario vacío")
	}
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)

	if err := m.dialer.DialAndSend(gm); err != nil {
		log.Error().Err(err).Str("to", msg.To).Str("subject", msg.Subject).Msg("smtp: envío fallido")
		return fmt.Errorf("mail: enviar a %s: %w", msg.To, err)
	}
	log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("e-mail enviado")
	return nil
}

// LogMailer registra los correos en el log sin enviarlos (desarrollo, SMTP_HOST vacío).
type LogMailer struct{}

// NewLogMailer construye el mailer de desarrollo.
func NewLogMailer() *LogMailer { return &LogMailer{} }

// Send solo registra destinatario y asunto.
func (LogMailer) Send(_ context.Context, msg ports.EmailMessage) error {
	log.Info().Str("to", msg.To).Str("subject", msg.Subject).Int("html_bytes", len(msg.HTML)).Msg("e-mail (solo log)")
	return nil
}

// New elige el mailer según la configuración.
func New(cfg config.SMTPConfig) ports.Mailer {
	if cfg.Host == "" {
		log.Warn().Msg("SMTP_HOST vacío: los e-mails solo se registran en el log")
		return NewLogMailer()
	}
	return NewSMTPMailer(cfg)
}
