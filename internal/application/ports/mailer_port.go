package ports

import "context"

// EmailMessage correo HTML saliente.
type EmailMessage struct {
	To      string
	Subject string
	HTML    string
}

// Mailer puerto de salida para el envío de correos transaccionales.
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}
