package http

import (
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/davicafu/brokerlive/internal/broker/application"
	infraEvents "github.com/davicafu/brokerlive/internal/infra/events"
	"github.com/davicafu/brokerlive/pkg/utils"
)

// StreamHandler expone el stream de cambios del roster por Server-Sent
// Events. Cada conexión es un observador del bus: se suscribe al entrar y
// se da de baja al cortarse la conexión.
type StreamHandler struct {
	service *application.BrokerService
	bus     *infraEvents.InMemoryEventBus
	log     *zap.Logger
}

func NewStreamHandler(service *application.BrokerService, bus *infraEvents.InMemoryEventBus, log *zap.Logger) *StreamHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &StreamHandler{service: service, bus: bus, log: log}
}

// Stream endpoint GET /api/events
func (h *StreamHandler) Stream(c *gin.Context) {
	// suscribirse antes del snapshot: un cambio entre snapshot y primer
	// evento no se pierde, como mucho llega repetido y el cliente lo pisa
	ch := h.bus.Subscribe()
	defer h.bus.Unsubscribe(ch)

	brokers, err := h.service.ListBrokers(c.Request.Context())
	if err != nil {
		utils.SendInternalServerError(c, "failed to fetch brokers")
		return
	}

	h.log.Debug("stream client connected", zap.Int("subscribers", h.bus.Subscribers()))

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	// snapshot inicial: el observador arranca con el roster completo y
	// converge aunque se hubiera perdido algún evento anterior
	c.SSEvent("sync", brokers)
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case evt, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(evt.Type, evt)
			return true
		case <-c.Request.Context().Done():
			h.log.Debug("stream client disconnected")
			return false
		}
	})
}
