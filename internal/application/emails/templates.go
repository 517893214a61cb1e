// Package emails compone los correos transaccionales en HTML (português do Brasil).
package emails

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/jhoicas/lancei-admin/internal/application/ports"
)

// Asuntos fijos de los correos.
const (
	SubjectApproval  = "Sua solicitação foi aprovada!"
	SubjectRejection = "Sobre sua solicitação de acesso"
	SubjectWelcome   = "Seu acesso ao painel Lancei"
)

const layout = `{{define "layout"}}<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #1F2937;">Olá {{.Name}},</h2>
{{template "body" .}}
  <p style="color: #4B5563; line-height: 1.5;">
    Atenciosamente,<br>
    Equipe Lancei
  </p>
</div>{{end}}`

const credentials = `{{define "credentials"}}  <div style="background-color: #F3F4F6; padding: 16px; border-radius: 8px; margin: 16px 0;">
    <p style="margin: 0; color: #1F2937;">
      <strong>E-mail:</strong> {{.Email}}<br>
      <strong>Senha temporária:</strong> {{.Password}}
    </p>
  </div>
  <p style="color: #4B5563; line-height: 1.5;">
    Por questões de segurança, recomendamos que você altere sua senha após o primeiro acesso.
  </p>
  <a href="{{.LoginURL}}" style="display: inline-block; background-color: #2563EB; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin: 16px 0;">
    Acessar minha conta
  </a>{{end}}`

const approvalBody = `{{define "body"}}  <p style="color: #4B5563; line-height: 1.5;">
    Sua solicitação de acesso ao Lancei foi aprovada! Estamos muito felizes em tê-lo(a) conosco.
  </p>
  <p style="color: #4B5563; line-height: 1.5;">
    Para acessar sua conta, utilize as seguintes credenciais:
  </p>
{{template "credentials" .}}
  <p style="color: #4B5563; line-height: 1.5;">
    Se tiver alguma dúvida, não hesite em entrar em contato conosco.
  </p>{{end}}`

const rejectionBody = `{{define "body"}}  <p style="color: #4B5563; line-height: 1.5;">
    Agradecemos seu interesse em utilizar o Lancei. Após análise, infelizmente não pudemos aprovar sua solicitação de acesso no momento.
  </p>
  <p style="color: #4B5563; line-height: 1.5;">
    Se desejar, você pode entrar em contato conosco para entender melhor os critérios de aprovação e submeter uma nova solicitação no futuro.
  </p>
  <p style="color: #4B5563; line-height: 1.5;">
    Agradecemos sua compreensão.
  </p>{{end}}`

const welcomeBody = `{{define "body"}}  <p style="color: #4B5563; line-height: 1.5;">
    Você foi cadastrado(a) como membro da equipe interna do Lancei.
  </p>
{{template "credentials" .}}{{end}}`

const broadcastBody = `{{define "body"}}  <h3 style="color: #1F2937;">{{.Title}}</h3>
  <p style="color: #4B5563; line-height: 1.5; white-space: pre-line;">{{.Message}}</p>{{end}}`

var (
	approvalTmpl  = template.Must(template.Must(template.New("approval").Parse(layout + credentials)).Parse(approvalBody))
	rejectionTmpl = template.Must(template.New("rejection").Parse(layout + rejectionBody))
	welcomeTmpl   = template.Must(template.Must(template.New("welcome").Parse(layout + credentials)).Parse(welcomeBody))
	broadcastTmpl = template.Must(template.New("broadcast").Parse(layout + broadcastBody))
)

// Composer arma los mensajes con la URL pública de la aplicación.
type Composer struct {
	loginURL string
}

// NewComposer construye el compositor. publicURL sin barra final (ej. https://lancei.com.br).
func NewComposer(publicURL string) *Composer {
	return &Composer{loginURL: publicURL + "/auth/login"}
}

type credentialsData struct {
	Name     string
	Email    string
	Password string
	LoginURL string
}

// Approval correo de solicitud aprobada con la contraseña temporal.
func (c *Composer) Approval(name, email, password string) (ports.EmailMessage, error) {
	html, err := render(approvalTmpl, credentialsData{Name: name, Email: email, Password: password, LoginURL: c.loginURL})
	if err != nil {
		return ports.EmailMessage{}, err
	}
	return ports.EmailMessage{To: email, Subject: SubjectApproval, HTML: html}, nil
}

// Rejection correo de solicitud rechazada.
func (c *Composer) Rejection(name, email string) (ports.EmailMessage, error) {
	html, err := render(rejectionTmpl, struct{ Name string }{Name: name})
	if err != nil {
		return ports.EmailMessage{}, err
	}
	return ports.EmailMessage{To: email, Subject: SubjectRejection, HTML: html}, nil
}

// Welcome correo de alta de personal interno con la contraseña temporal.
func (c *Composer) Welcome(name, email, password string) (ports.EmailMessage, error) {
	html, err := render(welcomeTmpl, credentialsData{Name: name, Email: email, Password: password, LoginURL: c.loginURL})
	if err != nil {
		return ports.EmailMessage{}, err
	}
	return ports.EmailMessage{To: email, Subject: SubjectWelcome, HTML: html}, nil
}

// Broadcast correo de una notificación masiva para un destinatario.
func (c *Composer) Broadcast(name, email, title, message string) (ports.EmailMessage, error) {
	html, err := render(broadcastTmpl, struct{ Name, Title, Message string }{name, title, message})
	if err != nil {
		return ports.EmailMessage{}, err
	}
	return ports.EmailMessage{To: email, Subject: title, HTML: html}, nil
}

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", fmt.Errorf("emails: render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}
