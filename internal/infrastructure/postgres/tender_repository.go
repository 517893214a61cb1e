package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/lancei-admin/internal/domain"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/internal/domain/repository"
)

var _ repository.TenderRepository = (*TenderRepo)(nil)

// TenderRepo implementación sobre la tabla editais. Toda consulta filtra por empresa_id.
type TenderRepo struct {
	q Querier
}

// NewTenderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTenderRepository(q Querier) *TenderRepo {
	return &TenderRepo{q: q}
}

const tenderColumns = `id, empresa_id, nome_orgao, numero_edital, plataforma, link_edital, data_disputa, prazo_proposta, status, created_at, updated_at`

// Create persiste un edital.
func (r *TenderRepo) Create(ctx context.Context, t *entity.Tender) error {
	query := `
		INSERT INTO editais (id, empresa_id, nome_orgao, numero_edital, plataforma, link_edital, data_disputa, prazo_proposta, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.TenantID, t.Organ, t.Number, t.Platform, t.Link, t.DisputeAt, t.ProposalDeadline, t.Status,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert edital: %w", err)
	}
	return nil
}

// GetByID obtiene un edital del tenant.
func (r *TenderRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Tender, error) {
	t, err := scanTender(r.q.QueryRow(ctx,
		`SELECT `+tenderColumns+` FROM editais WHERE id = $1 AND empresa_id = $2`, id, tenantID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get edital: %w", err)
	}
	return t, nil
}

// Update actualiza un edital del tenant.
func (r *TenderRepo) Update(ctx context.Context, t *entity.Tender) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE editais
		   SET nome_orgao = $3, numero_edital = $4, plataforma = $5, link_edital = $6,
		       data_disputa = $7, prazo_proposta = $8, status = $9, updated_at = $10
		 WHERE id = $1 AND empresa_id = $2`,
		t.ID, t.TenantID, t.Organ, t.Number, t.Platform, t.Link, t.DisputeAt, t.ProposalDeadline, t.Status, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update edital: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List editais del tenant por data_disputa ascendente y created_at descendente.
func (r *TenderRepo) List(ctx context.Context, tenantID string) ([]*entity.Tender, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+tenderColumns+` FROM editais WHERE empresa_id = $1 ORDER BY data_disputa ASC, created_at DESC`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list editais: %w", err)
	}
	list, err := scanAll(rows, scanTender)
	if err != nil {
		return nil, fmt.Errorf("scan edital: %w", err)
	}
	return list, nil
}

// Summary contadores del panel del cliente. "Hoy" es el día calendario de now en su zona horaria;
// los plazos cuentan desde now hasta 7 días después.
func (r *TenderRepo) Summary(ctx context.Context, tenantID string, now time.Time) (*entity.TenderSummary, error) {
	y, m, d := now.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	query := `
		SELECT
			count(*) FILTER (WHERE status = $2),
			count(*) FILTER (WHERE status = $2 AND data_disputa >= $3 AND data_disputa < $4),
			count(*) FILTER (WHERE status = $2 AND prazo_proposta >= $5 AND prazo_proposta < $6),
			count(*) FILTER (WHERE status = $7)
		FROM editais WHERE empresa_id = $1`
	var s entity.TenderSummary
	err := r.q.QueryRow(ctx, query,
		tenantID, entity.TenderInProgress,
		dayStart, dayStart.AddDate(0, 0, 1),
		now, now.AddDate(0, 0, 7),
		entity.TenderFinished,
	).Scan(&s.InProgress, &s.DisputesToday, &s.DeadlinesThisWeek, &s.Finished)
	if err != nil {
		return nil, fmt.Errorf("resumo editais: %w", err)
	}
	return &s, nil
}

func scanTender(row pgxScanner) (*entity.Tender, error) {
	var t entity.Tender
	err := row.Scan(&t.ID, &t.TenantID, &t.Organ, &t.Number, &t.Platform, &t.Link,
		&t.DisputeAt, &t.ProposalDeadline, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
