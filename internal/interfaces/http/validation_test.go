package http_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/lancei-admin/internal/application/dto"
	apphttp "github.com/jhoicas/lancei-admin/internal/interfaces/http"
)

func TestValidate_PlanName(t *testing.T) {
	for _, name := range []string{"teste", "Básico", "basico", "AVANÇADO"} {
		assert.NoError(t, apphttp.Validate(dto.CreatePlanRequest{Name: name}), name)
	}
	err := apphttp.Validate(dto.CreatePlanRequest{Name: "enterprise"})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "nome deve ser um dos planos")
	}
}

func TestValidate_CNPJ(t *testing.T) {
	in := dto.CreateCompanyRequest{Name: "Souza", Email: "contato@souza.com.br"}

	in.CNPJ = "11.222.333/0001-81"
	assert.NoError(t, apphttp.Validate(in))

	for _, bad := range []string{"11222333000181", "11.222.333/0001-82", "11.222.333-0001/81", ""} {
		in.CNPJ = bad
		assert.Error(t, apphttp.Validate(in), bad)
	}
}

func TestValidate_NotificationAudience(t *testing.T) {
	in := dto.CreateNotificationRequest{Title: "Aviso", Message: "x", Audience: "vip"}
	err := apphttp.Validate(in)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "destinatario")
	}

	in.Audience = "teste"
	assert.NoError(t, apphttp.Validate(in))
}
