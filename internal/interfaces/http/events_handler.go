package http

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/tienda-pos-api/internal/application/dto"
	"github.com/jhoicas/tienda-pos-api/internal/application/ports"
)

// SnapshotLoader lee el snapshot completo de una colección.
type SnapshotLoader func(ctx context.Context) (any, error)

// EventsHandler expone las colecciones como streams SSE: al conectar se
// emite el snapshot completo, y cada cambio publicado en el feed provoca
// una relectura y un nuevo snapshot completo. El cliente que se reconecta
// recupera el estado entero sin protocolo de deltas.
type EventsHandler struct {
	feed        ports.ChangeFeed
	loaders     map[string]SnapshotLoader
	readTimeout time.Duration
}

// NewEventsHandler construye el handler con un loader por colección.
func NewEventsHandler(feed ports.ChangeFeed, loaders map[string]SnapshotLoader, readTimeout time.Duration) *EventsHandler {
	return &EventsHandler{feed: feed, loaders: loaders, readTimeout: readTimeout}
}

// Stream godoc
// @Summary      Stream SSE de snapshots de una colección
// @Tags         events
// @Security     Bearer
// @Produce      text/event-stream
// @Param        collection  path  string  true  "products | purchases | sales"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/events/{collection} [get]
func (h *EventsHandler) Stream(c *fiber.Ctx) error {
	collection := c.Params("collection")
	loader, ok := h.loaders[collection]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_COLLECTION", Message: "colección desconocida"})
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	ctx, cancel := context.WithCancel(context.Background())
	ticks, unsubscribe := h.feed.Subscribe(ctx, collection)

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		defer unsubscribe()

		// sugerencia de reintento para EventSource
		fmt.Fprint(w, "retry: 3000\n\n")

		if err := h.writeSnapshot(ctx, w, loader); err != nil {
			log.Warn().Err(err).Str("collection", collection).Msg("snapshot inicial del stream")
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case _, open := <-ticks:
				if !open {
					return
				}
				if err := h.writeSnapshot(ctx, w, loader); err != nil {
					return
				}
			}
		}
	}))
	return nil
}

// writeSnapshot relee la colección con el timeout de lectura y emite el
// evento. Un error de escritura significa cliente desconectado.
func (h *EventsHandler) writeSnapshot(ctx context.Context, w *bufio.Writer, loader SnapshotLoader) error {
	readCtx, cancel := context.WithTimeout(ctx, h.readTimeout)
	defer cancel()

	data, err := loader(readCtx)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", payload); err != nil {
		return err
	}
	return w.Flush()
}
