package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/lancei-admin/internal/domain"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre la tabla usuarios.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, empresa_id, nome, email, tipo_usuario, funcao, ativo, created_at, updated_at`

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO usuarios (id, empresa_id, nome, email, tipo_usuario, funcao, ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.TenantID, u.Name, strings.ToLower(u.Email), u.Classification, u.Function, u.Active,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID (= ID del principal).
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM usuarios WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email (sin distinguir mayúsculas).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM usuarios WHERE lower(email) = lower($1)`, email))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario by email: %w", err)
	}
	return u, nil
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM usuarios WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete usuario: %w", err)
	}
	return nil
}

// ListByClassification usuarios de un tipo, más recientes primero.
func (r *UserRepo) ListByClassification(ctx context.Context, classification string) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+userColumns+` FROM usuarios WHERE tipo_usuario = $1 ORDER BY created_at DESC`, classification)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	list, err := scanAll(rows, scanUser)
	if err != nil {
		return nil, fmt.Errorf("scan usuario: %w", err)
	}
	return list, nil
}

// SetActive activa o desactiva un usuario.
func (r *UserRepo) SetActive(ctx context.Context, id string, active bool, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE usuarios SET ativo = $2, updated_at = $3 WHERE id = $1`, id, active, at)
	if err != nil {
		return fmt.Errorf("update ativo usuario: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountActive cantidad de usuarios activos.
func (r *UserRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM usuarios WHERE ativo`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count usuarios ativos: %w", err)
	}
	return n, nil
}

// ListRecipients usuarios cliente activos cuya empresa pertenece a la audiencia:
// todos = empresa no inactiva; teste = status teste o plano teste; ativo = status ativo.
func (r *UserRepo) ListRecipients(ctx context.Context, audience string) ([]*entity.User, error) {
	query := `
		SELECT u.id, u.empresa_id, u.nome, u.email, u.tipo_usuario, u.funcao, u.ativo, u.created_at, u.updated_at
		FROM usuarios u
		JOIN empresas e ON e.id = u.empresa_id
		WHERE u.ativo AND u.tipo_usuario = $2
		  AND (
		        ($1::text = 'todos' AND e.status <> 'inativo')
		     OR ($1::text = 'teste' AND (e.status = 'teste' OR e.plano = 'teste'))
		     OR ($1::text = 'ativo' AND e.status = 'ativo')
		  )
		ORDER BY u.email`
	rows, err := r.q.Query(ctx, query, audience, entity.ClassificationCustomer)
	if err != nil {
		return nil, fmt.Errorf("list destinatarios: %w", err)
	}
	list, err := scanAll(rows, scanUser)
	if err != nil {
		return nil, fmt.Errorf("scan usuario: %w", err)
	}
	return list, nil
}

func scanUser(row pgxScanner) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.TenantID, &u.Name, &u.Email, &u.Classification, &u.Function, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
