package entity

import "time"

// Clasificación del usuario (usuarios.tipo_usuario). Decide el área a la que tiene acceso.
const (
	ClassificationInternal = "interno"
	ClassificationCustomer = "cliente"
)

// Funciones del personal interno (usuarios.funcao).
const (
	FunctionSuperAdmin = "super_admin_lancei"
	FunctionAdmin      = "admin_lancei"
	FunctionOperator   = "operador_lancei"
)

// Rutas de inicio de cada área.
const (
	InternalHome = "/admin/dashboard"
	CustomerHome = "/dashboard"
)

// AdminFunctions funciones autorizadas a crear/eliminar planes y dar de alta personal interno.
var AdminFunctions = []string{FunctionSuperAdmin, FunctionAdmin}

// User perfil de aplicación de un principal autenticado.
// El ID coincide con el ID del principal en el proveedor de identidad.
type User struct {
	ID             string
	TenantID       *string // nil para personal interno
	Name           string
	Email          string
	Classification string  // interno | cliente
	Function       *string // solo personal interno
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsInternal informa si el usuario pertenece al personal interno.
func (u *User) IsInternal() bool { return u.Classification == ClassificationInternal }

// HomePath ruta de inicio según la clasificación.
func (u *User) HomePath() string { return HomeFor(u.Classification) }

// HomeFor ruta de inicio para una clasificación.
func HomeFor(classification string) string {
	if classification == ClassificationInternal {
		return InternalHome
	}
	return CustomerHome
}

// IsValidFunction informa si f es una función interna conocida.
func IsValidFunction(f string) bool {
	switch f {
	case FunctionSuperAdmin, FunctionAdmin, FunctionOperator:
		return true
	}
	return false
}
