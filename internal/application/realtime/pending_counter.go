// Package realtime mantiene el contador de empresas pendientes que el panel muestra en vivo.
package realtime

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// CountFunc consulta exacta del valor a publicar.
type CountFunc func(ctx context.Context) (int, error)

// PendingCounter vuelve a contar en cada evento de cambio y publica el valor completo a los
// suscriptores. Nunca aplica diferencias: cada publicación es el resultado de una consulta.
type PendingCounter struct {
	count CountFunc

	mu    sync.Mutex
	subs  map[chan int]struct{}
	last  int
	known bool
}

// NewPendingCounter construye el contador.
func NewPendingCounter(count CountFunc) *PendingCounter {
	return &PendingCounter{count: count, subs: map[chan int]struct{}{}}
}

// Subscribe registra un suscriptor. El canal conserva solo el valor más reciente;
// si ya hay un valor conocido se entrega de inmediato. cancel debe llamarse al terminar.
func (p *PendingCounter) Subscribe() (<-chan int, func()) {
	ch := make(chan int, 1)
	p.mu.Lock()
	p.subs[ch] = struct{}{}
	if p.known {
		ch <- p.last
	}
	p.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subs, ch)
			p.mu.Unlock()
		})
	}
}

// Subscribers cantidad de suscriptores activos.
func (p *PendingCounter) Subscribers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.subs)
}

// Refresh cuenta de nuevo y publica el resultado.
func (p *PendingCounter) Refresh(ctx context.Context) (int, error) {
	n, err := p.count(ctx)
	if err != nil {
		return 0, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last, p.known = n, true
	for ch := range p.subs {
		select {
		case <-ch:
		default:
		}
		ch <- n
	}
	return n, nil
}

// Run recuenta con cada evento recibido hasta que ctx termine o events se cierre.
// Hace un primer conteo al arrancar.
func (p *PendingCounter) Run(ctx context.Context, events <-chan struct{}) {
	if _, err := p.Refresh(ctx); err != nil {
		log.Error().Err(err).Msg("contagem inicial de pendentes falhou")
	}
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			if _, err := p.Refresh(ctx); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Msg("recontagem de pendentes falhou")
			}
		}
	}
}
