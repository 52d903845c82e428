package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/davicafu/brokerlive/internal/broker/domain"
	sharedBus "github.com/davicafu/brokerlive/shared/platform/bus"
	sharedCache "github.com/davicafu/brokerlive/shared/platform/cache"
	"github.com/google/uuid"
)

// BrokerService define los casos de uso del roster de corretores. Cada
// mutación confirmada publica exactamente un evento de cambio; una mutación
// que no llega a confirmar (id inexistente, input inválido) no publica nada.
type BrokerService struct {
	repo   domain.BrokerRepository
	cache  sharedCache.Cache
	events sharedBus.EventBus
	log    *zap.Logger
}

// NewBrokerService constructor. cache y events pueden ser nil (tests,
// despliegues sin stream).
func NewBrokerService(repo domain.BrokerRepository, cache sharedCache.Cache, events sharedBus.EventBus, log *zap.Logger) *BrokerService {
	if log == nil {
		log = zap.NewNop()
	}
	return &BrokerService{
		repo:   repo,
		cache:  cache,
		events: events,
		log:    log,
	}
}

func retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil {
			return nil
		}

		select {
		case <-time.After(delay):
			// espera antes del siguiente intento
		case <-ctx.Done():
			return ctx.Err() // contexto cancelado
		}
	}
	return err
}

// publish emite el evento de una mutación ya confirmada. Los fallos de
// publicación se registran pero nunca llegan al caller de la mutación.
func (s *BrokerService) publish(ctx context.Context, eventType string, key string, payload interface{}) {
	if s.events == nil {
		return
	}

	evt, err := domain.NewChangeEvent(eventType, key, payload)
	if err != nil {
		s.log.Error("failed to build change event",
			zap.String("type", eventType), zap.Error(err))
		return
	}

	if err := s.events.Publish(ctx, evt); err != nil {
		s.log.Warn("change event not delivered",
			zap.String("type", eventType), zap.Error(err))
	}
}

func (s *BrokerService) cacheSet(b *domain.Broker) {
	if s.cache == nil {
		return
	}
	go func(b *domain.Broker) {
		ctxCache, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		_ = s.cache.Set(ctxCache, domain.CacheKeyByID(b.ID), b, 60)
	}(b)
}

// CreateBroker da de alta un corretor: id nuevo, siempre offline al nacer.
func (s *BrokerService) CreateBroker(ctx context.Context, in domain.BrokerInput) (*domain.Broker, error) {
	if in.Region == "" {
		in.Region = domain.DefaultRegion
	}

	broker := &domain.Broker{
		ID:       uuid.New(),
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		PhotoURL: in.PhotoURL,
		Region:   in.Region,
		IsOnline: false,
	}

	if err := s.repo.Create(ctx, broker); err != nil {
		return nil, err
	}

	s.publish(ctx, domain.BrokerAdded, broker.PartitionKey(), broker)
	s.cacheSet(broker)

	return broker, nil
}

// UpdateBroker reemplaza los campos editables; IsOnline conserva su valor.
func (s *BrokerService) UpdateBroker(ctx context.Context, id uuid.UUID, in domain.BrokerInput) (*domain.Broker, error) {
	broker, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.BrokerUpdated, broker.PartitionKey(), broker)
	s.cacheSet(broker)

	return broker, nil
}

// UpdateBrokerStatus cambia únicamente el estado online/offline.
func (s *BrokerService) UpdateBrokerStatus(ctx context.Context, id uuid.UUID, isOnline bool) (*domain.Broker, error) {
	broker, err := s.repo.UpdateStatus(ctx, id, isOnline)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.StatusChanged, broker.PartitionKey(), broker)
	s.cacheSet(broker)

	return broker, nil
}

// DeleteBroker elimina el corretor; los observadores reciben solo el id.
func (s *BrokerService) DeleteBroker(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, domain.BrokerDeleted, id.String(), domain.DeletedPayload{ID: id})

	// la baja del cache es síncrona: si la entrada sobreviviera, un
	// GetBroker posterior serviría un corretor ya borrado
	if s.cache != nil {
		if err := s.cache.Delete(ctx, domain.CacheKeyByID(id)); err != nil {
			s.log.Warn("cache delete failed",
				zap.String("id", id.String()), zap.Error(err))
		}
	}

	return nil
}

// GetBroker obtiene un corretor (primero intenta desde cache).
func (s *BrokerService) GetBroker(ctx context.Context, id uuid.UUID) (*domain.Broker, error) {
	// 1. Intentar cache
	if s.cache != nil {
		var b domain.Broker
		if ok, _ := s.cache.Get(ctx, domain.CacheKeyByID(id), &b); ok {
			return &b, nil
		}
	}

	// 2. Ir al repo con reintentos
	var broker *domain.Broker
	err := retry(ctx, 3, 100*time.Millisecond, func() error {
		var err error
		broker, err = s.repo.GetByID(ctx, id)
		if err == domain.ErrBrokerNotFound {
			return nil // not found no se reintenta
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if broker == nil {
		return nil, domain.ErrBrokerNotFound
	}

	// 3. Actualizar cache en background sin bloquear la respuesta
	s.cacheSet(broker)

	return broker, nil
}

// ListBrokers devuelve el roster completo.
func (s *BrokerService) ListBrokers(ctx context.Context) ([]*domain.Broker, error) {
	return s.repo.List(ctx)
}
