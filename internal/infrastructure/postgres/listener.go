package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// ChangesChannel canal NOTIFY emitido por el trigger de empresas.
const ChangesChannel = "empresas_changes"

const (
	listenerMinBackoff = time.Second
	listenerMaxBackoff = 30 * time.Second
)

// ChangeListener escucha NOTIFY de PostgreSQL en una conexión dedicada del pool y publica
// un evento sin datos por cada notificación. Al (re)conectar publica un evento sintético para
// que los consumidores vuelvan a consultar lo que pudieron perder.
type ChangeListener struct {
	pool    *pgxpool.Pool
	channel string
	events  chan struct{}
}

// NewChangeListener construye el listener para channel.
func NewChangeListener(pool *pgxpool.Pool, channel string) *ChangeListener {
	return &ChangeListener{pool: pool, channel: channel, events: make(chan struct{}, 1)}
}

// Events canal de eventos. Los eventos se coalescen: si el consumidor va atrasado se descartan duplicados.
func (l *ChangeListener) Events() <-chan struct{} {
	return l.events
}

// Run escucha hasta que ctx se cancela, reconectando con backoff exponencial.
func (l *ChangeListener) Run(ctx context.Context) {
	backoff := listenerMinBackoff
	for {
		connected, err := l.listen(ctx)
		if ctx.Err() != nil {
			return
		}
		if connected {
			backoff = listenerMinBackoff
		}
		log.Warn().Err(err).Str("canal", l.channel).Dur("reintento_en", backoff).Msg("listener desconectado")
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > listenerMaxBackoff {
			backoff = listenerMaxBackoff
		}
	}
}

// listen informa si llegó a suscribirse al canal antes de fallar.
func (l *ChangeListener) listen(ctx context.Context) (bool, error) {
	pooled, err := l.pool.Acquire(ctx)
	if err != nil {
		return false, err
	}
	// La conexión queda con LISTEN activo; se saca del pool y se cierra al salir.
	conn := pooled.Hijack()
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+l.channel); err != nil {
		return false, err
	}
	log.Info().Str("canal", l.channel).Msg("listener conectado")
	l.publish()

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return true, err
		}
		if n == nil {
			return true, errors.New("notificación vacía")
		}
		l.publish()
	}
}

func (l *ChangeListener) publish() {
	select {
	case l.events <- struct{}{}:
	default:
	}
}
