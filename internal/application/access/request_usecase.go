// Package access implementa el flujo de solicitudes de acceso: envío público, revisión,
// aprobación (aprovisionamiento de empresa, identidad y usuario) y rechazo.
package access

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/lancei-admin/internal/application/dto"
	"github.com/jhoicas/lancei-admin/internal/domain"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/internal/domain/repository"
	"github.com/jhoicas/lancei-admin/pkg/cnpj"
)

// RequestUseCase casos de uso de consulta y edición de solicitudes.
type RequestUseCase struct {
	repo repository.AccessRequestRepository
	now  func() time.Time
}

// NewRequestUseCase construye el caso de uso.
func NewRequestUseCase(repo repository.AccessRequestRepository) *RequestUseCase {
	return &RequestUseCase{repo: repo, now: time.Now}
}

// Submit registra una solicitud pública. Siempre nace pendiente.
func (uc *RequestUseCase) Submit(ctx context.Context, in dto.SubmitAccessRequest) (*dto.AccessRequestResponse, error) {
	now := uc.now()
	req := &entity.AccessRequest{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(in.Name),
		CompanyName:   strings.TrimSpace(in.CompanyName),
		CNPJ:          cnpj.Format(in.CNPJ),
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:         strings.TrimSpace(in.Phone),
		Justification: strings.TrimSpace(in.Justification),
		Status:        entity.AccessRequestPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return toAccessRequestResponse(req), nil
}

// List todas las solicitudes, más recientes primero.
func (uc *RequestUseCase) List(ctx context.Context) (*dto.AccessRequestListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AccessRequestResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toAccessRequestResponse(r))
	}
	return &dto.AccessRequestListResponse{Items: items}, nil
}

// GetByID detalle de una solicitud; nil si no existe.
func (uc *RequestUseCase) GetByID(ctx context.Context, id string) (*dto.AccessRequestResponse, error) {
	req, err := uc.repo.GetByID(ctx, id)
	if err != nil || req == nil {
		return nil, err
	}
	return toAccessRequestResponse(req), nil
}

// Update edita los datos de una solicitud pendiente.
func (uc *RequestUseCase) Update(ctx context.Context, id string, in dto.UpdateAccessRequest) (*dto.AccessRequestResponse, error) {
	req, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	if !req.IsActionable() {
		return nil, domain.ErrRequestNotPending
	}
	req.Name = strings.TrimSpace(in.Name)
	req.CompanyName = strings.TrimSpace(in.CompanyName)
	req.CNPJ = cnpj.Format(in.CNPJ)
	req.Email = strings.ToLower(strings.TrimSpace(in.Email))
	req.Phone = strings.TrimSpace(in.Phone)
	req.Justification = strings.TrimSpace(in.Justification)
	req.UpdatedAt = uc.now()

	ok, err := uc.repo.Update(ctx, req)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrRequestNotPending
	}
	return toAccessRequestResponse(req), nil
}

func toAccessRequestResponse(r *entity.AccessRequest) *dto.AccessRequestResponse {
	return &dto.AccessRequestResponse{
		ID:            r.ID,
		Name:          r.Name,
		CompanyName:   r.CompanyName,
		CNPJ:          r.CNPJ,
		Email:         r.Email,
		Phone:         r.Phone,
		Justification: r.Justification,
		Status:        r.Status,
		Actionable:    r.IsActionable(),
		CreatedAt:     r.CreatedAt,
	}
}
