package mocks

import (
	"context"
	"errors"
	"sync"

	sharedEvents "github.com/davicafu/brokerlive/shared/events"
	sharedBus "github.com/davicafu/brokerlive/shared/platform/bus"
)

// RecordingPublisher captura los eventos publicados para poder afirmar
// sobre ellos en los tests.
type RecordingPublisher struct {
	mu        sync.Mutex
	published []sharedEvents.IntegrationEvent
}

var _ sharedBus.EventBus = (*RecordingPublisher)(nil)

func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{}
}

func (p *RecordingPublisher) Publish(ctx context.Context, event interface{}) error {
	evt, ok := event.(sharedEvents.IntegrationEvent)
	if !ok {
		return errors.New("unexpected event type")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, evt)
	return nil
}

// Published devuelve una copia de los eventos capturados, en orden.
func (p *RecordingPublisher) Published() []sharedEvents.IntegrationEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]sharedEvents.IntegrationEvent, len(p.published))
	copy(out, p.published)
	return out
}
