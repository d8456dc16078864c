// Package redisfeed implementa el feed de cambios sobre Redis pub/sub para
// que varios procesos del API compartan las notificaciones por colección.
package redisfeed

import (
	"context"
	"sync"

	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/tienda-pos-api/internal/application/ports"
)

var _ ports.ChangeFeed = (*Feed)(nil)

const channelPrefix = "tienda:feed:"

// Feed publica y suscribe ticks de cambio por colección vía Redis pub/sub.
type Feed struct {
	client *redis.Client
}

// New construye el feed sobre un cliente Redis nuevo.
func New(addr, password string, db int) *Feed {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Feed{client: client}
}

// Ping verifica la conexión con Redis.
func (f *Feed) Ping(ctx context.Context) error {
	return f.client.Ping(ctx).Err()
}

// Close cierra el cliente Redis.
func (f *Feed) Close() error {
	return f.client.Close()
}

// Publish emite el tick de la colección. Un fallo de publicación no tumba
// la operación de negocio que lo origina: se registra y se sigue; los
// suscriptores recogerán el estado en su próxima relectura.
func (f *Feed) Publish(ctx context.Context, collection string) {
	if err := f.client.Publish(ctx, channelPrefix+collection, "1").Err(); err != nil {
		log.Warn().Err(err).Str("collection", collection).Msg("publicar tick en redis")
	}
}

// Subscribe abre una suscripción pub/sub a la colección y la adapta al canal
// de ticks del puerto. La cancelación es idempotente y cierra la suscripción.
func (f *Feed) Subscribe(ctx context.Context, collection string) (<-chan struct{}, func()) {
	sub := f.client.Subscribe(ctx, channelPrefix+collection)
	ticks := make(chan struct{}, 1)
	done := make(chan struct{})

	go func() {
		defer close(ticks)
		msgs := sub.Channel()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case ticks <- struct{}{}:
				default:
					// tick coalescido: el snapshot que releerá el
					// suscriptor ya incluye este cambio
				}
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			if err := sub.Close(); err != nil {
				log.Warn().Err(err).Str("collection", collection).Msg("cerrar suscripción redis")
			}
		})
	}
	return ticks, cancel
}
