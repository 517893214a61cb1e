package mail_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/lancei-admin/internal/application/ports"
	"github.com/jhoicas/lancei-admin/internal/infrastructure/mail"
	"github.com/jhoicas/lancei-admin/pkg/config"
)

type recordingDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *recordingDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

func TestSMTPMailer_Send(t *testing.T) {
	d := &recordingDialer{}
	m := mail.NewSMTPMailerWithDialer(d, "Lancei <nao-responda@lancei.com.br>")

	err := m.Send(context.Background(), ports.EmailMessage{To: "maria@souza.com.br", Subject: "Bem-vindo", HTML: "<p>Olá</p>"})

	require.NoError(t, err)
	require.Len(t, d.sent, 1)
	assert.Equal(t, []string{"maria@souza.com.br"}, d.sent[0].GetHeader("To"))
	var buf bytes.Buffer
	_, err = d.sent[0].WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "text/html")
}

func TestSMTPMailer_Errors(t *testing.T) {
	d := &recordingDialer{err: errors.New("connection refused")}
	m := mail.NewSMTPMailerWithDialer(d, "x@y.com")

	err := m.Send(context.Background(), ports.EmailMessage{To: "a@b.com", Subject: "s"})
	assert.ErrorContains(t, err, "connection refused")

	err = m.Send(context.Background(), ports.EmailMessage{Subject: "s"})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = m.Send(ctx, ports.EmailMessage{To: "a@b.com"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_PicksLogMailerWithoutHost(t *testing.T) {
	_, isLog := mail.New(config.SMTPConfig{}).(*mail.LogMailer)
	assert.True(t, isLog)

	_, isSMTP := mail.New(config.SMTPConfig{Host: "smtp.example.com", Port: 587}).(*mail.SMTPMailer)
	assert.True(t, isSMTP)
}
