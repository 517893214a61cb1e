package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/lancei-admin/internal/domain"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
)

// PrincipalRecord fila de auth_principals con el hash de la contraseña.
type PrincipalRecord struct {
	Principal    entity.Principal
	PasswordHash string
}

// PrincipalStore credenciales del proveedor de identidad local (tabla auth_principals).
type PrincipalStore struct {
	q Querier
}

// NewPrincipalStore construye el store. Pasar pool o tx (Querier).
func NewPrincipalStore(q Querier) *PrincipalStore {
	return &PrincipalStore{q: q}
}

// Create inserta el principal. Email duplicado devuelve domain.ErrEmailAlreadyExists.
func (s *PrincipalStore) Create(ctx context.Context, p *entity.Principal, passwordHash string) error {
	meta, err := json.Marshal(p.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	var confirmedAt *time.Time
	if p.EmailConfirmed {
		confirmedAt = &p.CreatedAt
	}
	query := `
		INSERT INTO auth_principals (id, email, password_hash, email_confirmed_at, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = s.q.Exec(ctx, query, p.ID, strings.ToLower(p.Email), passwordHash, confirmedAt, meta, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert principal: %w", err)
	}
	return nil
}

// GetByEmail devuelve nil, nil si no existe.
func (s *PrincipalStore) GetByEmail(ctx context.Context, email string) (*PrincipalRecord, error) {
	var (
		rec         PrincipalRecord
		confirmedAt *time.Time
		meta        []byte
	)
	err := s.q.QueryRow(ctx, `
		SELECT id, email, password_hash, email_confirmed_at, metadata, created_at
		FROM auth_principals WHERE email = lower($1)`, email,
	).Scan(&rec.Principal.ID, &rec.Principal.Email, &rec.PasswordHash, &confirmedAt, &meta, &rec.Principal.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get principal: %w", err)
	}
	rec.Principal.EmailConfirmed = confirmedAt != nil
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &rec.Principal.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}
	}
	return &rec, nil
}

// SetPassword reemplaza el hash de la contraseña.
func (s *PrincipalStore) SetPassword(ctx context.Context, id, passwordHash string) error {
	cmd, err := s.q.Exec(ctx, `UPDATE auth_principals SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el principal. No falla si ya no existía.
func (s *PrincipalStore) Delete(ctx context.Context, id string) error {
	if _, err := s.q.Exec(ctx, `DELETE FROM auth_principals WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete principal: %w", err)
	}
	return nil
}
