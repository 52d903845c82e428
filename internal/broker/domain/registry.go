package domain

import (
	"encoding/json"
	"time"

	sharedEvents "github.com/davicafu/brokerlive/shared/events"
	"github.com/google/uuid"
)

// Los tipos de evento de cambio viajan como string, con los mismos valores
// que usa el protocolo de la referencia.
const (
	BrokerAdded   = "broker_added"
	BrokerUpdated = "broker_updated"
	StatusChanged = "status_changed"
	BrokerDeleted = "broker_deleted"
)

const BrokerTopic = "brokers"

// DeletedPayload es el payload mínimo de un borrado: los observadores solo
// necesitan el id para retirar el registro de su vista.
type DeletedPayload struct {
	ID uuid.UUID `json:"id"`
}

// NewChangeEvent construye el evento de integración de una mutación ya
// confirmada. key es la clave de partición (el id del corretor).
func NewChangeEvent(eventType, key string, payload interface{}) (sharedEvents.IntegrationEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return sharedEvents.IntegrationEvent{}, err
	}
	return sharedEvents.IntegrationEvent{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
		Key:       key,
	}, nil
}
