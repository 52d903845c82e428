package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ---------- Errores de dominio ----------
var (
	ErrBrokerNotFound      = errors.New("broker not found")
	ErrBrokerAlreadyExists = errors.New("broker already exists")
	ErrInvalidRegion       = errors.New("invalid region")
)

// ---------- Interfaces (Ports) ----------

// BrokerRepository define las operaciones del almacén de corretores.
// Cada operación es atómica: o aplica completa o no deja efecto.
// Un id inexistente no es un fallo, es una rama normal: se señala con
// ErrBrokerNotFound y el caller decide.
type BrokerRepository interface {
	// Debe devolver ErrBrokerAlreadyExists si el id ya está ocupado.
	Create(ctx context.Context, b *Broker) error

	// Debe devolver ErrBrokerNotFound si no existe.
	GetByID(ctx context.Context, id uuid.UUID) (*Broker, error)

	// Update reemplaza todos los campos editables y conserva ID e IsOnline.
	// Debe devolver ErrBrokerNotFound si el corretor no existe.
	Update(ctx context.Context, id uuid.UUID, in BrokerInput) (*Broker, error)

	// UpdateStatus cambia únicamente IsOnline.
	// Debe devolver ErrBrokerNotFound si el corretor no existe.
	UpdateStatus(ctx context.Context, id uuid.UUID, isOnline bool) (*Broker, error)

	// Debe devolver ErrBrokerNotFound si el corretor no existe.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// List devuelve el roster completo; el orden no está garantizado.
	List(ctx context.Context) ([]*Broker, error)
}

// ---------- Helpers comunes (cache keys, etc.) ----------

// CacheKeyByID forma una key consistente para cache usando ID.
func CacheKeyByID(id uuid.UUID) string {
	return fmt.Sprintf("broker:id:%s", id.String())
}
