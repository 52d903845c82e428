package domain

import (
	"fmt"

	sharedBus "github.com/davicafu/brokerlive/shared/platform/bus"
	"github.com/google/uuid"
)

// Region delimita la zona de actuación de un corretor. Solo existen las
// tres zonas fijas; cualquier otro valor se rechaza en la validación.
type Region string

const (
	RegionPraiaDoMorro Region = "Praia do Morro"
	RegionCentro       Region = "Centro"
	RegionEnseada      Region = "Enseada"
)

// DefaultRegion se aplica cuando el caller no indica región.
const DefaultRegion = RegionCentro

// Regions lista las zonas válidas, en el orden de la referencia.
func Regions() []Region {
	return []Region{RegionPraiaDoMorro, RegionCentro, RegionEnseada}
}

// ParseRegion valida la región recibida. La cadena vacía resuelve a
// DefaultRegion; un valor fuera del enum devuelve ErrInvalidRegion.
func ParseRegion(s string) (Region, error) {
	if s == "" {
		return DefaultRegion, nil
	}
	switch r := Region(s); r {
	case RegionPraiaDoMorro, RegionCentro, RegionEnseada:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRegion, s)
}

// Broker representa un corretor del roster.
type Broker struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
	PhotoURL string    `json:"photoUrl,omitempty"`
	Region   Region    `json:"region"`
	IsOnline bool      `json:"isOnline"`
}

func (b *Broker) PartitionKey() string {
	return b.ID.String()
}

// Verificación estática para asegurar que Broker implementa la interfaz
var _ sharedBus.Keyer = (*Broker)(nil)

// BrokerInput agrupa los campos editables de un corretor. ID e IsOnline
// nunca llegan por aquí: el ID lo asigna el store y el estado online solo
// cambia por la operación de status.
type BrokerInput struct {
	Name     string
	Email    string
	Phone    string
	PhotoURL string
	Region   Region
}
