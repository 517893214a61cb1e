package dto

import "time"

// CreateNotificationRequest nueva notificación. Sin enviar_agora, data_agendamento es obligatoria y futura.
type CreateNotificationRequest struct {
	Title       string     `json:"titulo" validate:"required,min=2,max=200"`
	Message     string     `json:"mensagem" validate:"required,max=5000"`
	Audience    string     `json:"destinatario" validate:"required,oneof=todos teste ativo"`
	SendNow     bool       `json:"enviar_agora"`
	ScheduledAt *time.Time `json:"data_agendamento"`
}

// NotificationResponse salida de una notificación.
type NotificationResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"titulo"`
	Message   string     `json:"mensagem"`
	Audience  string     `json:"destinatario"`
	SendAt    time.Time  `json:"data_envio"`
	Status    string     `json:"status"`
	SentAt    *time.Time `json:"enviado_em,omitempty"`
	FailedAt  *time.Time `json:"falhou_em,omitempty"`
	Error     string     `json:"erro,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NotificationListResponse listado de notificaciones.
type NotificationListResponse struct {
	Items []NotificationResponse `json:"items"`
}
