package workflow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lancei-admin/internal/application/workflow"
)

// recorder registra el orden de ejecución y compensación de los pasos.
type recorder struct {
	ran  []string
	undo []string
}

func (r *recorder) run(name string, err error) workflow.StepFunc {
	return func(context.Context) error {
		r.ran = append(r.ran, name)
		return err
	}
}

func (r *recorder) comp(name string, err error) workflow.StepFunc {
	return func(context.Context) error {
		r.undo = append(r.undo, name)
		return err
	}
}

func TestSaga_TodosLosPasos(t *testing.T) {
	r := &recorder{}
	s := workflow.New("test", true).
		Step("a", r.run("a", nil), r.comp("a", nil)).
		Step("b", r.run("b", nil), r.comp("b", nil))

	require.NoError(t, s.Execute(context.Background()))
	assert.Equal(t, []string{"a", "b"}, r.ran)
	assert.Empty(t, r.undo)
	assert.Equal(t, []string{"a", "b"}, s.Completed())
}

func TestSaga_FallaSinCompensacion(t *testing.T) {
	r := &recorder{}
	boom := errors.New("boom")
	s := workflow.New("test", false).
		Step("a", r.run("a", nil), r.comp("a", nil)).
		Step("b", r.run("b", boom), r.comp("b", nil)).
		Step("c", r.run("c", nil), r.comp("c", nil))

	err := s.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	step, ok := workflow.FailedStep(err)
	assert.True(t, ok)
	assert.Equal(t, "b", step)
	assert.Equal(t, []string{"a", "b"}, r.ran, "c nunca se ejecuta")
	assert.Empty(t, r.undo)
	assert.Equal(t, []string{"a"}, s.Completed())
}

func TestSaga_FallaConCompensacionEnOrdenInverso(t *testing.T) {
	r := &recorder{}
	s := workflow.New("test", true).
		Step("a", r.run("a", nil), r.comp("a", nil)).
		Step("sin-efecto", r.run("sin-efecto", nil), nil).
		Step("b", r.run("b", nil), r.comp("b", nil)).
		Step("c", r.run("c", errors.New("x")), r.comp("c", nil))

	err := s.Execute(context.Background())
	var se *workflow.StepError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "c", se.Step)
	assert.Equal(t, []string{"b", "a"}, r.undo)
	assert.Equal(t, []string{"b", "a"}, se.Compensated)
	assert.NoError(t, se.CompensationErr)
	assert.Equal(t, []string{"sin-efecto"}, s.Completed())
}

func TestSaga_CompensacionParcial(t *testing.T) {
	r := &recorder{}
	undoErr := errors.New("no se pudo deshacer")
	s := workflow.New("test", true).
		Step("a", r.run("a", nil), r.comp("a", nil)).
		Step("b", r.run("b", nil), r.comp("b", undoErr)).
		Step("c", r.run("c", errors.New("x")), nil)

	err := s.Execute(context.Background())
	var se *workflow.StepError
	require.ErrorAs(t, err, &se)
	assert.ErrorIs(t, se.CompensationErr, undoErr)
	assert.Equal(t, []string{"b", "a"}, r.undo, "sigue compensando los pasos anteriores")
	assert.Equal(t, []string{"a"}, se.Compensated)
	assert.Equal(t, []string{"b"}, s.Completed())
	assert.Contains(t, err.Error(), "compensación incompleta")
}
