package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lancei-admin/internal/application/dto"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/pkg/cnpj"
)

var validate = newValidator()

// newValidator validator con los tags propios y nombres de campo tomados del tag json.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	// cnpj: máscara 00.000.000/0000-00 y dígitos verificadores.
	_ = v.RegisterValidation("cnpj", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return cnpj.HasMask(s) && cnpj.IsValid(s)
	})
	// plan_name: catálogo de planes del panel, sin distinguir mayúsculas ni acentos.
	_ = v.RegisterValidation("plan_name", func(fl validator.FieldLevel) bool {
		return entity.InCatalog(fl.Field().String())
	})
	return v
}

// Validate valida un DTO y devuelve un mensaje legible con el primer campo inválido.
func Validate(in interface{}) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	return errors.New(fieldMessage(verrs[0]))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s é obrigatório", fe.Field())
	case "email":
		return fmt.Sprintf("%s deve ser um e-mail válido", fe.Field())
	case "cnpj":
		return fmt.Sprintf("%s deve seguir o formato 00.000.000/0000-00 com dígitos válidos", fe.Field())
	case "plan_name":
		return fmt.Sprintf("%s deve ser um dos planos: %s", fe.Field(), strings.Join(entity.PlanCatalog, ", "))
	case "oneof":
		return fmt.Sprintf("%s deve ser um de: %s", fe.Field(), fe.Param())
	case "http_url":
		return fmt.Sprintf("%s deve ser uma URL http(s)", fe.Field())
	case "min", "max":
		return fmt.Sprintf("%s fora do tamanho permitido (%s=%s)", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s inválido (%s)", fe.Field(), fe.Tag())
}

// bind parsea el cuerpo en out y lo valida. Devuelve false si ya respondió con 400.
func bind(c *fiber.Ctx, out interface{}) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, badBody(c)
	}
	if err := Validate(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeValidation, Message: err.Error()})
	}
	return true, nil
}
