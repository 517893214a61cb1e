package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/lancei-admin/internal/domain"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre la tabla empresas.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `
	e.id, e.nome, e.cnpj, e.email, e.status, e.plano_id, COALESCE(p.nome, ''),
	e.plano, e.data_inicio_teste, e.created_at, e.updated_at`

const companyFrom = `FROM empresas e LEFT JOIN planos p ON p.id = e.plano_id`

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO empresas (id, nome, cnpj, email, status, plano_id, plano, data_inicio_teste, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.CNPJ, c.Email, c.Status, c.PlanID, c.PlanTier, c.TrialStartedAt,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: cnpj já cadastrado", domain.ErrConflict)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: plano inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert empresa: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID con el nombre de su plan.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` ` + companyFrom + ` WHERE e.id = $1`
	c, err := scanCompany(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get empresa: %w", err)
	}
	return c, nil
}

// Update persiste nombre, CNPJ, email y plan.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	query := `
		UPDATE empresas SET nome = $2, cnpj = $3, email = $4, plano_id = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, c.ID, c.Name, c.CNPJ, c.Email, c.PlanID, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: cnpj já cadastrado", domain.ErrConflict)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: plano inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update empresa: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia el estado de la empresa.
func (r *CompanyRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE empresas SET status = $2, updated_at = $3 WHERE id = $1`, id, status, at)
	if err != nil {
		return fmt.Errorf("update status empresa: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve empresas por created_at descendente, opcionalmente filtradas por estado.
func (r *CompanyRepo) List(ctx context.Context, filter repository.CompanyFilter) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` ` + companyFrom + `
		WHERE ($1::text = '' OR e.status = $1)
		ORDER BY e.created_at DESC`
	rows, err := r.q.Query(ctx, query, filter.Status)
	if err != nil {
		return nil, fmt.Errorf("list empresas: %w", err)
	}
	list, err := scanAll(rows, scanCompany)
	if err != nil {
		return nil, fmt.Errorf("scan empresa: %w", err)
	}
	return list, nil
}

// Delete elimina una empresa por ID.
func (r *CompanyRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM empresas WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete empresa: %w", err)
	}
	return nil
}

// Count cantidad total de empresas.
func (r *CompanyRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM empresas`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count empresas: %w", err)
	}
	return n, nil
}

// CountByStatus cantidad exacta de empresas en el estado indicado.
func (r *CompanyRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM empresas WHERE status = $1`, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("count empresas %s: %w", status, err)
	}
	return n, nil
}

// ListOnTrial empresas marcadas con plano = 'teste'.
func (r *CompanyRepo) ListOnTrial(ctx context.Context) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` ` + companyFrom + `
		WHERE e.plano = $1
		ORDER BY e.data_inicio_teste`
	rows, err := r.q.Query(ctx, query, entity.PlanTierTrial)
	if err != nil {
		return nil, fmt.Errorf("list empresas em teste: %w", err)
	}
	list, err := scanAll(rows, scanCompany)
	if err != nil {
		return nil, fmt.Errorf("scan empresa: %w", err)
	}
	return list, nil
}

// MarkTrialExpired pasa plano de 'teste' a 'expirado' solo si sigue en prueba.
func (r *CompanyRepo) MarkTrialExpired(ctx context.Context, id string, at time.Time) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE empresas SET plano = $2, updated_at = $3 WHERE id = $1 AND plano = $4`,
		id, entity.PlanTierExpired, at, entity.PlanTierTrial,
	)
	if err != nil {
		return false, fmt.Errorf("expirar teste: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

func scanCompany(row pgxScanner) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.CNPJ, &c.Email, &c.Status, &c.PlanID, &c.PlanName,
		&c.PlanTier, &c.TrialStartedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
