package entity

import "time"

// Audiencias de una notificación (notificacoes.destinatario).
const (
	AudienceAll    = "todos"
	AudienceTrial  = "teste"
	AudienceActive = "ativo"
)

// Estados de envío. pendente → enviando → enviado | falhou.
const (
	NotificationPending = "pendente"
	NotificationSending = "enviando"
	NotificationSent    = "enviado"
	NotificationFailed  = "falhou"
)

// Notification aviso masivo del personal interno a las empresas clientes.
type Notification struct {
	ID        string
	Title     string
	Message   string
	Audience  string
	SendAt    time.Time // data_envio: ahora para envío inmediato o la fecha programada
	Status    string
	SentAt    *time.Time
	FailedAt  *time.Time
	Error     string // motivo del fallo, vacío si no falló
	CreatedAt time.Time
}

// IsValidAudience informa si a es una audiencia conocida.
func IsValidAudience(a string) bool {
	switch a {
	case AudienceAll, AudienceTrial, AudienceActive:
		return true
	}
	return false
}

// IsDue informa si la notificación pendiente ya debe enviarse.
func (n *Notification) IsDue(now time.Time) bool {
	return n.Status == NotificationPending && !n.SendAt.After(now)
}
