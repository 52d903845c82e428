package bus

import "context"

// Keyer expone la clave de partición de un evento; los adapters que
// particionan (Kafka) la usan como key del mensaje.
type Keyer interface {
	PartitionKey() string
}

// EventBus publica eventos ya confirmados. La semántica de entrega
// (fan-out en memoria, topic de Kafka, ...) la decide cada adapter.
type EventBus interface {
	Publish(ctx context.Context, event interface{}) error
}
