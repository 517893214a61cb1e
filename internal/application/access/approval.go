package access

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/lancei-admin/internal/application/dto"
	"github.com/jhoicas/lancei-admin/internal/application/emails"
	"github.com/jhoicas/lancei-admin/internal/application/ports"
	"github.com/jhoicas/lancei-admin/internal/application/workflow"
	"github.com/jhoicas/lancei-admin/internal/domain"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/internal/domain/repository"
)

// Pasos del flujo de aprobación, en orden de ejecución.
const (
	StepPassword = "senha_temporaria"
	StepCompany  = "empresa"
	StepIdentity = "principal"
	StepUser     = "usuario"
	StepRequest  = "solicitacao"
)

// EmailFailedMessage texto devuelto al panel cuando la decisión se guardó pero el correo no salió.
const EmailFailedMessage = "não foi possível enviar o e-mail ao solicitante"

// ApprovalUseCase aprueba o rechaza solicitudes de acceso.
//
// Aprobar ejecuta, en orden y deteniéndose en el primer fallo:
//
//	contraseña temporal → empresa → principal → usuario → solicitud aprovado → e-mail
//
// Con compensación activa, un fallo deshace los pasos ya completados en orden inverso.
// El e-mail se envía después de confirmar los pasos: su fallo se informa pero no deshace nada.
type ApprovalUseCase struct {
	requests   repository.AccessRequestRepository
	companies  repository.CompanyRepository
	plans      repository.PlanRepository
	users      repository.UserRepository
	identity   ports.IdentityProvider
	mailer     ports.Mailer
	composer   *emails.Composer
	compensate bool
	password   PasswordGenerator
	now        func() time.Time
}

// NewApprovalUseCase construye el caso de uso. compensate activa la compensación de pasos.
func NewApprovalUseCase(
	requests repository.AccessRequestRepository,
	companies repository.CompanyRepository,
	plans repository.PlanRepository,
	users repository.UserRepository,
	identity ports.IdentityProvider,
	mailer ports.Mailer,
	composer *emails.Composer,
	compensate bool,
) *ApprovalUseCase {
	return &ApprovalUseCase{
		requests:   requests,
		companies:  companies,
		plans:      plans,
		users:      users,
		identity:   identity,
		mailer:     mailer,
		composer:   composer,
		compensate: compensate,
		password:   TemporaryPassword,
		now:        time.Now,
	}
}

// WithPasswordGenerator reemplaza el generador de contraseñas (tests).
func (uc *ApprovalUseCase) WithPasswordGenerator(g PasswordGenerator) *ApprovalUseCase {
	uc.password = g
	return uc
}

// WithClock reemplaza el reloj (tests).
func (uc *ApprovalUseCase) WithClock(now func() time.Time) *ApprovalUseCase {
	uc.now = now
	return uc
}

// Approve aprovisiona la empresa y su usuario a partir de la solicitud y el plan elegido.
// Errores: domain.ErrNotFound, domain.ErrRequestNotPending, domain.ErrInvalidInput (plan),
// o *workflow.StepError con el paso que falló.
func (uc *ApprovalUseCase) Approve(ctx context.Context, requestID string, in dto.ApproveAccessRequest) (*dto.ApprovalResponse, error) {
	req, err := uc.actionable(ctx, requestID)
	if err != nil {
		return nil, err
	}
	plan, err := uc.plans.GetByID(ctx, in.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil || !entity.IsApprovalPlan(plan.Name) {
		return nil, fmt.Errorf("%w: plano não disponível para aprovação", domain.ErrInvalidInput)
	}

	now := uc.now()
	var (
		password  string
		company   *entity.Company
		principal *entity.Principal
		user      *entity.User
	)

	saga := workflow.New("aprovacao_solicitacao", uc.compensate).
		Step(StepPassword, func(context.Context) error {
			p, err := uc.password()
			if err != nil {
				return err
			}
			password = p
			return nil
		}, nil).
		Step(StepCompany, func(ctx context.Context) error {
			company = newApprovedCompany(req, plan, now)
			return uc.companies.Create(ctx, company)
		}, func(ctx context.Context) error {
			return uc.companies.Delete(ctx, company.ID)
		}).
		Step(StepIdentity, func(ctx context.Context) error {
			p, err := uc.identity.CreatePrincipal(ctx, entity.NewPrincipal{
				Email:          req.Email,
				Password:       password,
				EmailConfirmed: true,
				Metadata: entity.PrincipalMetadata{
					Name:           req.Name,
					TenantID:       company.ID,
					Classification: entity.ClassificationCustomer,
				},
			})
			if err != nil {
				return err
			}
			principal = p
			return nil
		}, func(ctx context.Context) error {
			return uc.identity.DeletePrincipal(ctx, principal)
		}).
		Step(StepUser, func(ctx context.Context) error {
			tenantID := company.ID
			user = &entity.User{
				ID:             principal.ID,
				TenantID:       &tenantID,
				Name:           req.Name,
				Email:          req.Email,
				Classification: entity.ClassificationCustomer,
				Active:         true,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			return uc.users.Create(ctx, user)
		}, func(ctx context.Context) error {
			return uc.users.Delete(ctx, user.ID)
		}).
		Step(StepRequest, func(ctx context.Context) error {
			ok, err := uc.requests.TransitionStatus(ctx, req.ID, entity.AccessRequestPending, entity.AccessRequestApproved, now)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrRequestNotPending
			}
			return nil
		}, func(ctx context.Context) error {
			_, err := uc.requests.TransitionStatus(ctx, req.ID, entity.AccessRequestApproved, entity.AccessRequestPending, uc.now())
			return err
		})

	if err := saga.Execute(ctx); err != nil {
		return nil, err
	}

	req.Status = entity.AccessRequestApproved
	req.UpdatedAt = now
	out := &dto.ApprovalResponse{
		Request:   *toAccessRequestResponse(req),
		CompanyID: company.ID,
		UserID:    user.ID,
	}
	out.EmailSent, out.EmailError = uc.notify(ctx, req.ID, func() (ports.EmailMessage, error) {
		return uc.composer.Approval(req.Name, req.Email, password)
	})
	log.Info().Str("request_id", req.ID).Str("company_id", company.ID).Str("user_id", user.ID).
		Bool("email_sent", out.EmailSent).Msg("solicitação aprovada")
	return out, nil
}

// Reject marca la solicitud como rechazada y avisa al solicitante.
// Un fallo del e-mail no revierte el estado: se informa en EmailError.
func (uc *ApprovalUseCase) Reject(ctx context.Context, requestID string) (*dto.RejectionResponse, error) {
	req, err := uc.actionable(ctx, requestID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	ok, err := uc.requests.TransitionStatus(ctx, req.ID, entity.AccessRequestPending, entity.AccessRequestRejected, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrRequestNotPending
	}
	req.Status = entity.AccessRequestRejected
	req.UpdatedAt = now

	out := &dto.RejectionResponse{Request: *toAccessRequestResponse(req)}
	out.EmailSent, out.EmailError = uc.notify(ctx, req.ID, func() (ports.EmailMessage, error) {
		return uc.composer.Rejection(req.Name, req.Email)
	})
	log.Info().Str("request_id", req.ID).Bool("email_sent", out.EmailSent).Msg("solicitação rejeitada")
	return out, nil
}

// actionable carga la solicitud y exige que siga pendiente.
func (uc *ApprovalUseCase) actionable(ctx context.Context, id string) (*entity.AccessRequest, error) {
	req, err := uc.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	if !req.IsActionable() {
		return nil, domain.ErrRequestNotPending
	}
	return req, nil
}

// notify compone y envía el correo de la decisión. Devuelve (enviado, mensaje de error para el panel).
func (uc *ApprovalUseCase) notify(ctx context.Context, requestID string, compose func() (ports.EmailMessage, error)) (bool, string) {
	msg, err := compose()
	if err == nil {
		err = uc.mailer.Send(ctx, msg)
	}
	if err != nil {
		log.Error().Err(err).Str("request_id", requestID).Msg("e-mail da decisão não enviado")
		return false, EmailFailedMessage
	}
	return true, ""
}

// newApprovedCompany empresa activa creada a partir de la solicitud. Con el plan de prueba
// también queda marcada para el barrido de vencimiento.
func newApprovedCompany(req *entity.AccessRequest, plan *entity.Plan, now time.Time) *entity.Company {
	planID := plan.ID
	c := &entity.Company{
		ID:        uuid.New().String(),
		Name:      req.CompanyName,
		CNPJ:      req.CNPJ,
		Email:     req.Email,
		Status:    entity.CompanyStatusActive,
		PlanID:    &planID,
		PlanName:  plan.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if plan.IsTrial() {
		tier := entity.PlanTierTrial
		start := now
		c.PlanTier = &tier
		c.TrialStartedAt = &start
	}
	return c
}
