package ports

import (
	"context"

	"github.com/jhoicas/lancei-admin/internal/domain/entity"
)

// ReportGenerator genera los reportes PDF exportables desde los listados.
type ReportGenerator interface {
	CompaniesReport(ctx context.Context, title string, companies []*entity.Company) ([]byte, error)
	TendersReport(ctx context.Context, company *entity.Company, tenders []*entity.Tender) ([]byte, error)
}
