// Package workflow ejecuta flujos de varios pasos dependientes con registro de pasos completados
// y compensación opcional en orden inverso.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// StepFunc acción de un paso.
type StepFunc func(ctx context.Context) error

// step paso registrado. compensate puede ser nil (paso sin efectos que deshacer).
type step struct {
	name       string
	run        StepFunc
	compensate StepFunc
}

// StepError error del primer paso que falló, con el resultado de la compensación.
type StepError struct {
	Flow            string
	Step            string
	Err             error
	Compensated     []string // pasos deshechos, en el orden en que se deshicieron
	CompensationErr error    // primer error al compensar, si hubo
}

func (e *StepError) Error() string {
	msg := fmt.Sprintf("%s: paso %q falló: %v", e.Flow, e.Step, e.Err)
	if e.CompensationErr != nil {
		msg += fmt.Sprintf(" (compensación incompleta: %v)", e.CompensationErr)
	}
	return msg
}

func (e *StepError) Unwrap() error { return e.Err }

// Saga secuencia ordenada de pasos. No es segura para uso concurrente: se crea una por ejecución.
type Saga struct {
	name       string
	compensate bool
	steps      []step
	completed  []step
}

// New crea una saga. Con compensate=false los efectos de los pasos completados permanecen al fallar.
func New(name string, compensate bool) *Saga {
	return &Saga{name: name, compensate: compensate}
}

// Step agrega un paso al final.
func (s *Saga) Step(name string, run, compensate StepFunc) *Saga {
	s.steps = append(s.steps, step{name: name, run: run, compensate: compensate})
	return s
}

// Completed nombres de los pasos cuyos efectos siguen vigentes, en orden.
func (s *Saga) Completed() []string {
	return names(s.completed)
}

// Execute corre los pasos en orden y se detiene en el primero que falla.
// Devuelve *StepError envolviendo el error del paso.
func (s *Saga) Execute(ctx context.Context) error {
	for _, st := range s.steps {
		if err := st.run(ctx); err != nil {
			se := &StepError{Flow: s.name, Step: st.name, Err: err}
			log.Warn().Err(err).Str("flow", s.name).Str("step", st.name).
				Strs("completed", names(s.completed)).Msg("paso del flujo falló")
			if s.compensate {
				s.rollback(ctx, se)
			}
			return se
		}
		s.completed = append(s.completed, st)
		log.Debug().Str("flow", s.name).Str("step", st.name).Msg("paso completado")
	}
	return nil
}

// rollback deshace los pasos completados en orden inverso. Un fallo de compensación se registra
// y no detiene la compensación de los pasos anteriores.
func (s *Saga) rollback(ctx context.Context, se *StepError) {
	var kept []step
	for i := len(s.completed) - 1; i >= 0; i-- {
		st := s.completed[i]
		if st.compensate == nil {
			kept = append([]step{st}, kept...)
			continue
		}
		if err := st.compensate(context.WithoutCancel(ctx)); err != nil {
			log.Error().Err(err).Str("flow", s.name).Str("step", st.name).Msg("compensación falló")
			if se.CompensationErr == nil {
				se.CompensationErr = err
			}
			kept = append([]step{st}, kept...)
			continue
		}
		se.Compensated = append(se.Compensated, st.name)
	}
	s.completed = kept
	if len(se.Compensated) > 0 {
		log.Info().Str("flow", s.name).Str("compensated", strings.Join(se.Compensated, ",")).Msg("flujo compensado")
	}
}

// FailedStep devuelve el nombre del paso que falló si err proviene de una saga.
func FailedStep(err error) (string, bool) {
	var se *StepError
	if errors.As(err, &se) {
		return se.Step, true
	}
	return "", false
}

func names(steps []step) []string {
	out := make([]string, 0, len(steps))
	for _, st := range steps {
		out = append(out, st.name)
	}
	return out
}
