// Package persistence implements repository interfaces using specific storage backends.
package persistence

import (
	"context"
	"sync"

	"github.com/anthol-dao/anthol-common/modules/basket/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/ident"
)

// InMemoryRepository implements domain.Repository using in-memory storage.
// Baskets are keyed by the handle's comparison key, so lookups are
// case-insensitive.
type InMemoryRepository struct {
	mu      sync.RWMutex
	baskets map[ident.ActorKey]*domain.Basket
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		baskets: make(map[ident.ActorKey]*domain.Basket),
	}
}

// Compile-time interface check.
var _ domain.Repository = (*InMemoryRepository)(nil)

func (r *InMemoryRepository) Save(ctx context.Context, basket *domain.Basket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.baskets[basket.Handle().Key()] = basket
	return nil
}

func (r *InMemoryRepository) FindByHandle(ctx context.Context, handle ident.ActorID) (*domain.Basket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	basket, exists := r.baskets[handle.Key()]
	if !exists {
		return nil, domain.ErrBasketNotFound
	}
	return basket, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, handle ident.ActorID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.baskets, handle.Key())
	return nil
}
