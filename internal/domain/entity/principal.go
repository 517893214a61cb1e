package entity

import "time"

// Principal identidad autenticable en el proveedor de identidad (credenciales).
// Su perfil de aplicación vive en User, con el mismo ID.
type Principal struct {
	ID             string
	Email          string
	EmailConfirmed bool
	Metadata       PrincipalMetadata
	CreatedAt      time.Time
}

// PrincipalMetadata datos adjuntos al principal al crearlo.
type PrincipalMetadata struct {
	Name           string `json:"nome"`
	TenantID       string `json:"empresa_id,omitempty"`
	Classification string `json:"tipo"`
}

// NewPrincipal datos para aprovisionar un principal.
type NewPrincipal struct {
	Email          string
	Password       string
	EmailConfirmed bool
	Metadata       PrincipalMetadata
}
