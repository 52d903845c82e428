package events

import (
	"context"
	"fmt"
	"sync"

	sharedEvents "github.com/davicafu/brokerlive/shared/events"
	sharedBus "github.com/davicafu/brokerlive/shared/platform/bus"
	"go.uber.org/zap"
)

// InMemoryEventBus reparte eventos de cambio a todas las sesiones suscritas.
// La entrega es best-effort y sin replay: un suscriptor con el buffer lleno
// se salta sin bloquear al resto ni a la mutación que originó el evento.
// El envío es síncrono bajo el lock, así que cada suscriptor recibe los
// eventos en el mismo orden en que se publicaron.
type InMemoryEventBus struct {
	mu          sync.RWMutex
	subscribers map[chan sharedEvents.IntegrationEvent]struct{}
	buffer      int
	log         *zap.Logger
}

// Verifica en tiempo de compilación que cumple la interfaz
var _ sharedBus.EventBus = (*InMemoryEventBus)(nil)

// NewInMemoryEventBus crea el bus de fan-out. buffer es el tamaño del canal
// de cada suscriptor; con cero se usa un mínimo razonable.
func NewInMemoryEventBus(buffer int, log *zap.Logger) *InMemoryEventBus {
	if buffer <= 0 {
		buffer = 16
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &InMemoryEventBus{
		subscribers: make(map[chan sharedEvents.IntegrationEvent]struct{}),
		buffer:      buffer,
		log:         log,
	}
}

// Subscribe registra un nuevo oyente y devuelve su canal. El caller debe
// llamar a Unsubscribe al terminar para no dejar el canal registrado.
func (b *InMemoryEventBus) Subscribe() <-chan sharedEvents.IntegrationEvent {
	ch := make(chan sharedEvents.IntegrationEvent, b.buffer)

	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()

	return ch
}

// Unsubscribe retira al oyente y cierra su canal. Es seguro llamarlo más de
// una vez o con un canal desconocido.
func (b *InMemoryEventBus) Unsubscribe(ch <-chan sharedEvents.IntegrationEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for sub := range b.subscribers {
		if sub == ch {
			delete(b.subscribers, sub)
			close(sub)
			break
		}
	}
}

// Publish entrega el evento a todos los suscriptores registrados en este
// momento. Nunca devuelve un fallo de entrega: si un canal no admite el
// evento, se descarta solo para ese suscriptor.
func (b *InMemoryEventBus) Publish(ctx context.Context, event interface{}) error {
	evt, ok := event.(sharedEvents.IntegrationEvent)
	if !ok {
		return fmt.Errorf("in-memory bus: unsupported event type %T", event)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers {
		select {
		case ch <- evt:
		default:
			// suscriptor lento: su buffer está lleno, el evento se pierde
			b.log.Debug("subscriber buffer full, event dropped",
				zap.String("type", evt.Type))
		}
	}
	return nil
}

// Subscribers devuelve cuántos oyentes hay registrados.
func (b *InMemoryEventBus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
