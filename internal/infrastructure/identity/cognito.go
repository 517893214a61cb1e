package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/lancei-admin/internal/application/ports"
	"github.com/jhoicas/lancei-admin/internal/domain"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/pkg/config"
)

var _ ports.IdentityProvider = (*CognitoProvider)(nil)

// Atributos del user pool. Los custom:* deben existir en el esquema del pool.
const (
	attrSub            = "sub"
	attrEmail          = "email"
	attrEmailVerified  = "email_verified"
	attrName           = "name"
	attrTenantID       = "custom:empresa_id"
	attrClassification = "custom:tipo"
)

// CognitoAPI subconjunto del cliente de Cognito que usa el proveedor.
type CognitoAPI interface {
	AdminCreateUser(ctx context.Context, in *cip.AdminCreateUserInput, optFns ...func(*cip.Options)) (*cip.AdminCreateUserOutput, error)
	AdminSetUserPassword(ctx context.Context, in *cip.AdminSetUserPasswordInput, optFns ...func(*cip.Options)) (*cip.AdminSetUserPasswordOutput, error)
	AdminDeleteUser(ctx context.Context, in *cip.AdminDeleteUserInput, optFns ...func(*cip.Options)) (*cip.AdminDeleteUserOutput, error)
	InitiateAuth(ctx context.Context, in *cip.InitiateAuthInput, optFns ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
	GetUser(ctx context.Context, in *cip.GetUserInput, optFns ...func(*cip.Options)) (*cip.GetUserOutput, error)
}

// CognitoProvider identidad en un user pool de AWS Cognito. El username es el email.
type CognitoProvider struct {
	api        CognitoAPI
	userPoolID string
	clientID   string
}

// NewCognitoProvider carga credenciales AWS de la cadena por defecto y construye el proveedor.
func NewCognitoProvider(ctx context.Context, cfg config.IdentityConfig) (*CognitoProvider, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.CognitoRegion != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.CognitoRegion))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("cognito: cargar configuración AWS: %w", err)
	}
	return NewCognitoProviderFromAPI(cip.NewFromConfig(awsCfg), cfg.CognitoUserPoolID, cfg.CognitoClientID), nil
}

// NewCognitoProviderFromAPI construye el proveedor sobre un cliente ya creado (tests).
func NewCognitoProviderFromAPI(api CognitoAPI, userPoolID, clientID string) *CognitoProvider {
	return &CognitoProvider{api: api, userPoolID: userPoolID, clientID: clientID}
}

// SignIn autentica con USER_PASSWORD_AUTH y lee los atributos del usuario.
func (p *CognitoProvider) SignIn(ctx context.Context, email, password string) (*entity.Principal, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	out, err := p.api.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(p.clientID),
		AuthParameters: map[string]string{
			"USERNAME": email,
			"PASSWORD": password,
		},
	})
	if err != nil {
		return nil, mapCognitoError(err)
	}
	if out.AuthenticationResult == nil || out.AuthenticationResult.AccessToken == nil {
		// Desafíos pendientes (NEW_PASSWORD_REQUIRED, MFA) no se soportan.
		log.Warn().Str("email", email).Str("challenge", string(out.ChallengeName)).Msg("cognito: desafío no soportado")
		return nil, domain.ErrInvalidCredentials
	}
	user, err := p.api.GetUser(ctx, &cip.GetUserInput{AccessToken: out.AuthenticationResult.AccessToken})
	if err != nil {
		return nil, mapCognitoError(err)
	}
	principal := principalFromAttributes(user.UserAttributes)
	if principal.Email == "" {
		principal.Email = email
	}
	return principal, nil
}

// CreatePrincipal crea el usuario sin enviar invitación, con email verificado y contraseña permanente.
func (p *CognitoProvider) CreatePrincipal(ctx context.Context, in entity.NewPrincipal) (*entity.Principal, error) {
	if in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	attrs := []types.AttributeType{
		{Name: aws.String(attrEmail), Value: aws.String(email)},
		{Name: aws.String(attrEmailVerified), Value: aws.String(fmt.Sprint(in.EmailConfirmed))},
		{Name: aws.String(attrName), Value: aws.String(in.Metadata.Name)},
	}
	if in.Metadata.TenantID != "" {
		attrs = append(attrs, types.AttributeType{Name: aws.String(attrTenantID), Value: aws.String(in.Metadata.TenantID)})
	}
	if in.Metadata.Classification != "" {
		attrs = append(attrs, types.AttributeType{Name: aws.String(attrClassification), Value: aws.String(in.Metadata.Classification)})
	}

	out, err := p.api.AdminCreateUser(ctx, &cip.AdminCreateUserInput{
		UserPoolId:     aws.String(p.userPoolID),
		Username:       aws.String(email),
		MessageAction:  types.MessageActionTypeSuppress,
		UserAttributes: attrs,
	})
	if err != nil {
		return nil, mapCognitoError(err)
	}

	if _, err := p.api.AdminSetUserPassword(ctx, &cip.AdminSetUserPasswordInput{
		UserPoolId: aws.String(p.userPoolID),
		Username:   aws.String(email),
		Password:   aws.String(in.Password),
		Permanent:  true,
	}); err != nil {
		// Sin contraseña el usuario queda inutilizable: se elimina.
		if _, delErr := p.api.AdminDeleteUser(ctx, &cip.AdminDeleteUserInput{
			UserPoolId: aws.String(p.userPoolID),
			Username:   aws.String(email),
		}); delErr != nil {
			log.Error().Err(delErr).Str("email", email).Msg("cognito: no se pudo eliminar usuario sin contraseña")
		}
		return nil, mapCognitoError(err)
	}

	principal := &entity.Principal{Email: email, EmailConfirmed: in.EmailConfirmed, Metadata: in.Metadata, CreatedAt: time.Now()}
	if out.User != nil {
		created := principalFromAttributes(out.User.Attributes)
		principal.ID = created.ID
		if out.User.UserCreateDate != nil {
			principal.CreatedAt = *out.User.UserCreateDate
		}
	}
	if principal.ID == "" {
		return nil, fmt.Errorf("cognito: usuario %s creado sin atributo sub", email)
	}
	return principal, nil
}

// DeletePrincipal elimina el usuario del pool. Un usuario inexistente no es error.
func (p *CognitoProvider) DeletePrincipal(ctx context.Context, principal *entity.Principal) error {
	if principal == nil {
		return nil
	}
	_, err := p.api.AdminDeleteUser(ctx, &cip.AdminDeleteUserInput{
		UserPoolId: aws.String(p.userPoolID),
		Username:   aws.String(principal.Email),
	})
	var notFound *types.UserNotFoundException
	if errors.As(err, &notFound) {
		return nil
	}
	if err != nil {
		return mapCognitoError(err)
	}
	return nil
}

func principalFromAttributes(attrs []types.AttributeType) *entity.Principal {
	p := &entity.Principal{}
	for _, a := range attrs {
		name, value := aws.ToString(a.Name), aws.ToString(a.Value)
		switch name {
		case attrSub:
			p.ID = value
		case attrEmail:
			p.Email = strings.ToLower(value)
		case attrEmailVerified:
			p.EmailConfirmed = value == "true"
		case attrName:
			p.Metadata.Name = value
		case attrTenantID:
			p.Metadata.TenantID = value
		case attrClassification:
			p.Metadata.Classification = value
		}
	}
	return p
}

// mapCognitoError traduce las excepciones conocidas a errores de dominio.
func mapCognitoError(err error) error {
	var (
		notAuthorized *types.NotAuthorizedException
		notFound      *types.UserNotFoundException
		exists        *types.UsernameExistsException
		badPassword   *types.InvalidPasswordException
	)
	switch {
	case errors.As(err, &notAuthorized), errors.As(err, &notFound):
		return domain.ErrInvalidCredentials
	case errors.As(err, &exists):
		return domain.ErrEmailAlreadyExists
	case errors.As(err, &badPassword):
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, aws.ToString(badPassword.Message))
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("cognito %s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	return fmt.Errorf("cognito: %w", err)
}
