package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/lancei-admin/internal/application/auth"
	"github.com/jhoicas/lancei-admin/internal/application/dto"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
)

// LocalSession key de c.Locals con la *auth.Session resuelta por el gate.
const LocalSession = "session"

// Rutas con tratamiento especial en el gate.
const (
	LoginPath         = "/auth/login"
	RequestAccessPath = "/auth/solicitar-acesso"
)

// SessionResolver resuelve el token de sesión. Implementado por *auth.AuthUseCase.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*auth.Session, error)
}

// Gate middleware global de acceso por ruta. Decide, para cada petición:
//
//	/health, /docs*                → sin control
//	/, /auth/solicitar-acesso       → público
//	/auth/login                     → público; con sesión válida redirige al inicio del área
//	resto sin sesión válida         → 303 a /auth/login
//	interno en /dashboard*          → 303 a /admin/dashboard
//	cliente en /admin*              → 303 a /dashboard
//
// La sesión se resuelve en cada petición, sin caché, y queda en c.Locals(LocalSession).
func Gate(resolver SessionResolver, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := normalizePath(c.Path())
		if isExempt(path) || path == "/" || path == RequestAccessPath {
			return c.Next()
		}

		token := sessionToken(c, cookieName)
		if path == LoginPath {
			if token != "" {
				if s, err := resolver.Resolve(c.UserContext(), token); err == nil {
					return c.Redirect(s.Home(), fiber.StatusSeeOther)
				}
			}
			return c.Next()
		}

		if token == "" {
			return c.Redirect(LoginPath, fiber.StatusSeeOther)
		}
		s, err := resolver.Resolve(c.UserContext(), token)
		if err != nil {
			log.Debug().Err(err).Str("path", path).Msg("gate: sesión rechazada")
			return c.Redirect(LoginPath, fiber.StatusSeeOther)
		}

		switch {
		case s.IsInternal() && underPrefix(path, "/dashboard"):
			return c.Redirect(entity.InternalHome, fiber.StatusSeeOther)
		case !s.IsInternal() && underPrefix(path, "/admin"):
			return c.Redirect(entity.CustomerHome, fiber.StatusSeeOther)
		}

		c.Locals(LocalSession, s)
		return c.Next()
	}
}

// RequireFunction exige que la sesión interna tenga una de las funciones indicadas.
func RequireFunction(fns ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := GetSession(c)
		if s == nil || !s.HasFunction(fns...) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    CodeForbidden,
				Message: "sua função não permite esta ação",
			})
		}
		return c.Next()
	}
}

// GetSession devuelve la sesión resuelta por el gate (nil en rutas públicas).
func GetSession(c *fiber.Ctx) *auth.Session {
	s, _ := c.Locals(LocalSession).(*auth.Session)
	return s
}

// sessionToken toma el token de la cookie de sesión o, si no está, del header Bearer.
func sessionToken(c *fiber.Ctx, cookieName string) string {
	if v := strings.TrimSpace(c.Cookies(cookieName)); v != "" {
		return v
	}
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func isExempt(path string) bool {
	return path == "/health" || underPrefix(path, "/docs")
}

// underPrefix informa si path es prefix o cuelga de prefix ("/admin" no cubre "/administrar").
func underPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func normalizePath(p string) string {
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	if p == "" {
		return "/"
	}
	return p
}
