package memory

import (
	"context"
	"sync"

	"github.com/davicafu/brokerlive/internal/broker/domain"
	"github.com/google/uuid"
)

// BrokerRepoMemory guarda el roster en un mapa en memoria protegido por un
// único RWMutex: cada mutación se serializa completa, sin efectos parciales.
// El roster es volátil a propósito y no sobrevive al reinicio del proceso.
type BrokerRepoMemory struct {
	mu      sync.RWMutex
	brokers map[uuid.UUID]*domain.Broker
}

// Verificación estática para asegurar que implementa el port del dominio.
var _ domain.BrokerRepository = (*BrokerRepoMemory)(nil)

func NewBrokerRepoMemory() *BrokerRepoMemory {
	return &BrokerRepoMemory{
		brokers: make(map[uuid.UUID]*domain.Broker),
	}
}

func (r *BrokerRepoMemory) Create(ctx context.Context, b *domain.Broker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.brokers[b.ID]; ok {
		return domain.ErrBrokerAlreadyExists
	}

	clone := *b
	r.brokers[b.ID] = &clone
	return nil
}

func (r *BrokerRepoMemory) GetByID(ctx context.Context, id uuid.UUID) (*domain.Broker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.brokers[id]
	if !ok {
		return nil, domain.ErrBrokerNotFound
	}

	clone := *b
	return &clone, nil
}

// Update reemplaza los campos editables y conserva ID e IsOnline.
func (r *BrokerRepoMemory) Update(ctx context.Context, id uuid.UUID, in domain.BrokerInput) (*domain.Broker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.brokers[id]
	if !ok {
		return nil, domain.ErrBrokerNotFound
	}

	b.Name = in.Name
	b.Email = in.Email
	b.Phone = in.Phone
	b.PhotoURL = in.PhotoURL
	b.Region = in.Region

	clone := *b
	return &clone, nil
}

// UpdateStatus cambia únicamente IsOnline.
func (r *BrokerRepoMemory) UpdateStatus(ctx context.Context, id uuid.UUID, isOnline bool) (*domain.Broker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.brokers[id]
	if !ok {
		return nil, domain.ErrBrokerNotFound
	}

	b.IsOnline = isOnline

	clone := *b
	return &clone, nil
}

func (r *BrokerRepoMemory) DeleteByID(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.brokers[id]; !ok {
		return domain.ErrBrokerNotFound
	}

	delete(r.brokers, id)
	return nil
}

// List devuelve una copia del roster; el orden de iteración del mapa no
// está garantizado y el contrato tampoco lo exige.
func (r *BrokerRepoMemory) List(ctx context.Context) ([]*domain.Broker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*domain.Broker, 0, len(r.brokers))
	for _, b := range r.brokers {
		clone := *b
		list = append(list, &clone)
	}
	return list, nil
}
