package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-pos-api/internal/application/ports"
)

func recibeTick(t *testing.T, ticks <-chan struct{}) {
	t.Helper()
	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("se esperaba un tick y no llegó")
	}
}

func sinTick(t *testing.T, ticks <-chan struct{}) {
	t.Helper()
	select {
	case <-ticks:
		t.Fatal("no debía haber un tick pendiente")
	default:
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Entrega y coalescencia
// ─────────────────────────────────────────────────────────────────────────────

func TestFeedHub_PublishEntregaTick(t *testing.T) {
	ctx := context.Background()
	hub := NewFeedHub()
	ticks, cancel := hub.Subscribe(ctx, ports.CollectionProducts)
	defer cancel()

	hub.Publish(ctx, ports.CollectionProducts)
	recibeTick(t, ticks)
}

func TestFeedHub_TicksSeCoalescen(t *testing.T) {
	ctx := context.Background()
	hub := NewFeedHub()
	ticks, cancel := hub.Subscribe(ctx, ports.CollectionSales)
	defer cancel()

	// Tres cambios seguidos sin consumir: el suscriptor releerá un snapshot
	// que ya incluye los tres, así que basta con un solo tick pendiente.
	hub.Publish(ctx, ports.CollectionSales)
	hub.Publish(ctx, ports.CollectionSales)
	hub.Publish(ctx, ports.CollectionSales)

	recibeTick(t, ticks)
	sinTick(t, ticks)
}

func TestFeedHub_ColeccionesIndependientes(t *testing.T) {
	ctx := context.Background()
	hub := NewFeedHub()
	ticks, cancel := hub.Subscribe(ctx, ports.CollectionProducts)
	defer cancel()

	hub.Publish(ctx, ports.CollectionPurchases)
	sinTick(t, ticks)
}

// ─────────────────────────────────────────────────────────────────────────────
// Cancelación determinista e idempotente
// ─────────────────────────────────────────────────────────────────────────────

func TestFeedHub_CancelEsIdempotenteYSinFugas(t *testing.T) {
	ctx := context.Background()
	hub := NewFeedHub()

	ticksA, cancelA := hub.Subscribe(ctx, ports.CollectionProducts)
	ticksB, cancelB := hub.Subscribe(ctx, ports.CollectionProducts)

	cancelA()
	cancelA() // la segunda cancelación no debe hacer nada

	hub.mu.Lock()
	restantes := len(hub.subs[ports.CollectionProducts])
	hub.mu.Unlock()
	require.Equal(t, 1, restantes, "cancelar debe retirar exactamente la entrada del suscriptor")

	// El suscriptor cancelado ya no recibe; el otro sigue recibiendo.
	hub.Publish(ctx, ports.CollectionProducts)
	sinTick(t, ticksA)
	recibeTick(t, ticksB)

	cancelB()
	hub.mu.Lock()
	restantes = len(hub.subs[ports.CollectionProducts])
	hub.mu.Unlock()
	assert.Zero(t, restantes)

	// Publicar sin suscriptores es inocuo.
	hub.Publish(ctx, ports.CollectionProducts)
}
