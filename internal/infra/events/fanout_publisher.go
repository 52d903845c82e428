package events

import (
	"context"

	sharedBus "github.com/davicafu/brokerlive/shared/platform/bus"
	"go.uber.org/zap"
)

// FanOutPublisher publica el mismo evento en varios buses (p.ej. el bus en
// memoria para las sesiones locales y Kafka para consumidores externos).
// Un fallo en un bus no corta la entrega en los demás ni llega al caller:
// la mutación ya está confirmada cuando se publica.
type FanOutPublisher struct {
	buses []sharedBus.EventBus
	log   *zap.Logger
}

var _ sharedBus.EventBus = (*FanOutPublisher)(nil)

func NewFanOutPublisher(log *zap.Logger, buses ...sharedBus.EventBus) *FanOutPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &FanOutPublisher{buses: buses, log: log}
}

func (p *FanOutPublisher) Publish(ctx context.Context, event interface{}) error {
	for _, b := range p.buses {
		if err := b.Publish(ctx, event); err != nil {
			p.log.Warn("event bus delivery failed", zap.Error(err))
		}
	}
	return nil
}
