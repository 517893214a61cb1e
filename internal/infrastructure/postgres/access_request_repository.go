package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/internal/domain/repository"
)

var _ repository.AccessRequestRepository = (*AccessRequestRepo)(nil)

// AccessRequestRepo implementación sobre la tabla solicitacoes_acesso.
type AccessRequestRepo struct {
	q Querier
}

// NewAccessRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccessRequestRepository(q Querier) *AccessRequestRepo {
	return &AccessRequestRepo{q: q}
}

const accessRequestColumns = `id, nome, empresa_nome, cnpj, email, COALESCE(telefone, ''), justificativa, status, created_at, updated_at`

// Create persiste una solicitud.
func (r *AccessRequestRepo) Create(ctx context.Context, q *entity.AccessRequest) error {
	query := `
		INSERT INTO solicitacoes_acesso (id, nome, empresa_nome, cnpj, email, telefone, justificativa, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		q.ID, q.Name, q.CompanyName, q.CNPJ, q.Email, q.Phone, q.Justification, q.Status, q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert solicitacao: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID.
func (r *AccessRequestRepo) GetByID(ctx context.Context, id string) (*entity.AccessRequest, error) {
	req, err := scanAccessRequest(r.q.QueryRow(ctx, `SELECT `+accessRequestColumns+` FROM solicitacoes_acesso WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get solicitacao: %w", err)
	}
	return req, nil
}

// Update edita los datos de una solicitud solo si sigue pendiente. El estado no se toca.
func (r *AccessRequestRepo) Update(ctx context.Context, q *entity.AccessRequest) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE solicitacoes_acesso
		   SET nome = $2, empresa_nome = $3, cnpj = $4, email = $5, telefone = $6, justificativa = $7, updated_at = $8
		 WHERE id = $1 AND status = $9`,
		q.ID, q.Name, q.CompanyName, q.CNPJ, q.Email, q.Phone, q.Justification, q.UpdatedAt, entity.AccessRequestPending,
	)
	if err != nil {
		return false, fmt.Errorf("update solicitacao: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// List solicitudes por created_at descendente.
func (r *AccessRequestRepo) List(ctx context.Context) ([]*entity.AccessRequest, error) {
	rows, err := r.q.Query(ctx, `SELECT `+accessRequestColumns+` FROM solicitacoes_acesso ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list solicitacoes: %w", err)
	}
	list, err := scanAll(rows, scanAccessRequest)
	if err != nil {
		return nil, fmt.Errorf("scan solicitacao: %w", err)
	}
	return list, nil
}

// TransitionStatus cambia el estado solo si el actual es from. Dos decisiones concurrentes
// sobre la misma solicitud no pueden aplicarse ambas.
func (r *AccessRequestRepo) TransitionStatus(ctx context.Context, id, from, to string, at time.Time) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE solicitacoes_acesso SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`,
		id, from, to, at,
	)
	if err != nil {
		return false, fmt.Errorf("update status solicitacao: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

func scanAccessRequest(row pgxScanner) (*entity.AccessRequest, error) {
	var q entity.AccessRequest
	err := row.Scan(&q.ID, &q.Name, &q.CompanyName, &q.CNPJ, &q.Email, &q.Phone, &q.Justification, &q.Status, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}
