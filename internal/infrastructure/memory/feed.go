package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/tienda-pos-api/internal/application/ports"
)

var _ ports.ChangeFeed = (*FeedHub)(nil)

// FeedHub es un feed de cambios en proceso: un bus de ticks por colección.
// Sirve para el modo desarrollo y las pruebas; en producción el feed va
// sobre Redis pub/sub para que varios procesos compartan las notificaciones.
type FeedHub struct {
	mu   sync.Mutex
	subs map[string]map[int]chan struct{}
	next int
}

// NewFeedHub construye un hub vacío.
func NewFeedHub() *FeedHub {
	return &FeedHub{subs: make(map[string]map[int]chan struct{})}
}

// Publish despierta a todos los suscriptores de la colección. El tick es
// coalescible: si un suscriptor todavía no consumió el anterior, no se
// acumulan; el snapshot que releerá ya incluye ambos cambios.
func (h *FeedHub) Publish(ctx context.Context, collection string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs[collection] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribe registra un suscriptor y devuelve su canal de ticks junto con
// la función de cancelación. Cancelar dos veces es seguro.
func (h *FeedHub) Subscribe(ctx context.Context, collection string) (<-chan struct{}, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	ch := make(chan struct{}, 1)
	if h.subs[collection] == nil {
		h.subs[collection] = make(map[int]chan struct{})
	}
	h.subs[collection][id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs[collection], id)
		})
	}
	return ch, cancel
}
