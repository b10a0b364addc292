package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/agroportal-api/pkg/logger"
)

// Listener mantiene una conexión dedicada a PostgreSQL escuchando el canal de
// notificaciones de cambios (triggers con pg_notify) y publica cada payload en
// el Hub. Si la conexión se cae, reintenta con una pausa fija.
type Listener struct {
	dsn     string
	channel string
	hub     *Hub
	log     *logger.Logger
}

const reconnectDelay = 3 * time.Second

// NewListener construye el listener. channel es el canal NOTIFY de los triggers.
func NewListener(dsn, channel string, hub *Hub, log *logger.Logger) *Listener {
	return &Listener{dsn: dsn, channel: channel, hub: hub, log: log}
}

// Run bloquea escuchando notificaciones hasta que ctx se cancele.
// Pensado para correr en su propia goroutine desde main.
func (l *Listener) Run(ctx context.Context) {
	for {
		if err := l.listen(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			l.log.Warn().Err(err).Msg("Conexión de notificaciones perdida, reintentando")
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.dsn)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = conn.Close(closeCtx)
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return err
	}
	l.log.Info().Str("channel", l.channel).Msg("Escuchando notificaciones de cambios")

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		var ev Event
		if err := json.Unmarshal([]byte(n.Payload), &ev); err != nil {
			l.log.Warn().Err(err).Str("payload", n.Payload).Msg("Payload de notificación inválido")
			continue
		}
		l.hub.Publish(ev)
	}
}
