package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/lancei-admin/internal/domain"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/internal/domain/repository"
)

var _ repository.PlanRepository = (*PlanRepo)(nil)

// PlanRepo implementación del puerto PlanRepository sobre la tabla planos.
type PlanRepo struct {
	q Querier
}

// NewPlanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPlanRepository(q Querier) *PlanRepo {
	return &PlanRepo{q: q}
}

const planColumns = `id, nome, COALESCE(descricao, ''), preco_mensal, created_at, updated_at`

// Create persiste un nuevo plan.
func (r *PlanRepo) Create(ctx context.Context, p *entity.Plan) error {
	query := `
		INSERT INTO planos (id, nome, descricao, preco_mensal, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, p.ID, p.Name, p.Description, p.MonthlyPrice, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: já existe um plano com esse nome", domain.ErrConflict)
		}
		return fmt.Errorf("insert plano: %w", err)
	}
	return nil
}

// GetByID obtiene un plan por ID.
func (r *PlanRepo) GetByID(ctx context.Context, id string) (*entity.Plan, error) {
	p, err := scanPlan(r.q.QueryRow(ctx, `SELECT `+planColumns+` FROM planos WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plano: %w", err)
	}
	return p, nil
}

// Update actualiza nombre, descripción y precio.
func (r *PlanRepo) Update(ctx context.Context, p *entity.Plan) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE planos SET nome = $2, descricao = $3, preco_mensal = $4, updated_at = $5 WHERE id = $1`,
		p.ID, p.Name, p.Description, p.MonthlyPrice, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: já existe um plano com esse nome", domain.ErrConflict)
		}
		return fmt.Errorf("update plano: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina definitivamente. Las empresas que lo usaban quedan sin plan (ON DELETE SET NULL).
func (r *PlanRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM planos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete plano: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List planes por created_at descendente.
func (r *PlanRepo) List(ctx context.Context) ([]*entity.Plan, error) {
	rows, err := r.q.Query(ctx, `SELECT `+planColumns+` FROM planos ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list planos: %w", err)
	}
	list, err := scanAll(rows, scanPlan)
	if err != nil {
		return nil, fmt.Errorf("scan plano: %w", err)
	}
	return list, nil
}

// Count cantidad de planes.
func (r *PlanRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM planos`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count planos: %w", err)
	}
	return n, nil
}

func scanPlan(row pgxScanner) (*entity.Plan, error) {
	var p entity.Plan
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.MonthlyPrice, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
