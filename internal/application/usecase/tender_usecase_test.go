package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lancei-admin/internal/application/dto"
	"github.com/jhoicas/lancei-admin/internal/application/usecase"
	"github.com/jhoicas/lancei-admin/internal/domain"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/internal/testutil/fakes"
)

func newTenderUseCase(tenders *fakes.Tenders, reports *fakes.Reports) *usecase.TenderUseCase {
	companies := fakes.NewCompanies()
	companies.Put(entity.Company{ID: "t1", Name: "Souza Licitações", Status: entity.CompanyStatusActive})
	companies.Put(entity.Company{ID: "t2", Name: "Outra", Status: entity.CompanyStatusActive})
	return usecase.NewTenderUseCase(tenders, companies, reports).WithClock(func() time.Time { return base })
}

func TestTenderUseCase_CreateIsScopedToTenant(t *testing.T) {
	tenders := fakes.NewTenders()
	uc := newTenderUseCase(tenders, &fakes.Reports{})

	out, err := uc.Create(context.Background(), "t1", dto.CreateTenderRequest{
		Organ: "Prefeitura de Campinas", Number: "PE 12/2025", Platform: "ComprasNet",
		Link: "https://comprasnet.gov.br/12", DisputeAt: base.Add(24 * time.Hour), ProposalDeadline: base.Add(12 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TenderInProgress, out.Status)

	mine, err := uc.GetByID(context.Background(), "t1", out.ID)
	require.NoError(t, err)
	assert.NotNil(t, mine)

	other, err := uc.GetByID(context.Background(), "t2", out.ID)
	require.NoError(t, err)
	assert.Nil(t, other, "otro tenant no ve el edital")

	_, err = uc.Update(context.Background(), "t2", out.ID, dto.UpdateTenderRequest{Organ: "x", Number: "x", Platform: "x", Link: "https://x", Status: entity.TenderFinished})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTenderUseCase_Dashboard(t *testing.T) {
	tenders := fakes.NewTenders(
		entity.Tender{ID: "a", TenantID: "t1", Status: entity.TenderInProgress, DisputeAt: base.Add(2 * time.Hour), ProposalDeadline: base.Add(72 * time.Hour)},
		entity.Tender{ID: "b", TenantID: "t1", Status: entity.TenderInProgress, DisputeAt: base.Add(5 * 24 * time.Hour), ProposalDeadline: base.Add(30 * 24 * time.Hour)},
		entity.Tender{ID: "c", TenantID: "t1", Status: entity.TenderInProgress, DisputeAt: base.Add(-48 * time.Hour), ProposalDeadline: base.Add(-72 * time.Hour)},
		entity.Tender{ID: "d", TenantID: "t1", Status: entity.TenderFinished, DisputeAt: base.Add(-10 * 24 * time.Hour)},
		entity.Tender{ID: "e", TenantID: "t2", Status: entity.TenderInProgress, DisputeAt: base.Add(time.Hour)},
	)
	uc := newTenderUseCase(tenders, &fakes.Reports{})

	out, err := uc.Dashboard(context.Background(), "t1")

	require.NoError(t, err)
	assert.Equal(t, "Souza Licitações", out.CompanyName)
	assert.Equal(t, 3, out.InProgress)
	assert.Equal(t, 1, out.DisputesToday)
	assert.Equal(t, 1, out.DeadlinesThisWeek)
	assert.Equal(t, 1, out.Finished)
	require.Len(t, out.Upcoming, 2)
	assert.Equal(t, "a", out.Upcoming[0].ID)
	assert.Equal(t, "b", out.Upcoming[1].ID)
}

func TestTenderUseCase_Report(t *testing.T) {
	tenders := fakes.NewTenders(entity.Tender{ID: "a", TenantID: "t1", Status: entity.TenderInProgress})
	reports := &fakes.Reports{}
	uc := newTenderUseCase(tenders, reports)

	pdf, err := uc.Report(context.Background(), "t1")

	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	require.NotNil(t, reports.Company)
	assert.Equal(t, "t1", reports.Company.ID)
	assert.Len(t, reports.Tenders, 1)

	_, err = uc.Report(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
