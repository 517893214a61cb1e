package emails_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lancei-admin/internal/application/emails"
)

func TestApproval_IncluyeCredenciales(t *testing.T) {
	c := emails.NewComposer("https://lancei.com.br")
	msg, err := c.Approval("Maria", "maria@acme.com.br", "Ab12Cd34")
	require.NoError(t, err)

	assert.Equal(t, "maria@acme.com.br", msg.To)
	assert.Equal(t, emails.SubjectApproval, msg.Subject)
	assert.Contains(t, msg.HTML, "Olá Maria")
	assert.Contains(t, msg.HTML, "Ab12Cd34")
	assert.Contains(t, msg.HTML, "https://lancei.com.br/auth/login")
}

func TestRejection(t *testing.T) {
	msg, err := emails.NewComposer("http://localhost:8080").Rejection("João", "joao@x.com")
	require.NoError(t, err)
	assert.Equal(t, emails.SubjectRejection, msg.Subject)
	assert.Contains(t, msg.HTML, "não pudemos aprovar")
	assert.NotContains(t, msg.HTML, "Senha temporária")
}

func TestBroadcast_EscapaHTML(t *testing.T) {
	msg, err := emails.NewComposer("http://localhost").Broadcast("Ana", "ana@x.com", "Aviso", "<script>x</script>")
	require.NoError(t, err)
	assert.Equal(t, "Aviso", msg.Subject)
	assert.NotContains(t, msg.HTML, "<script>")
}
