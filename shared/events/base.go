package events

import (
	"encoding/json"
	"time"
)

// IntegrationEvent es la base de todos los eventos de cambio que salen del
// proceso. Data lleva el payload específico ya serializado.
type IntegrationEvent struct {
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`

	// Key es la clave de partición; no viaja en el payload.
	Key string `json:"-"`
}

// PartitionKey implementa bus.Keyer.
func (e IntegrationEvent) PartitionKey() string {
	return e.Key
}
