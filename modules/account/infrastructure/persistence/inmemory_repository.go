// Package persistence implements repository interfaces using specific storage backends.
// This is the outermost layer - it implements ports defined in the domain layer.
package persistence

import (
	"context"
	"sort"
	"sync"

	"github.com/anthol-dao/anthol-common/modules/account/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/ident"
)

// InMemoryRepository implements domain.Repository using in-memory storage.
// Useful for testing and development. Accounts are keyed by the handle's
// comparison key, so lookups are case-insensitive.
type InMemoryRepository struct {
	mu       sync.RWMutex
	accounts map[ident.ActorKey]*domain.Account
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		accounts: make(map[ident.ActorKey]*domain.Account),
	}
}

// Compile-time interface check.
var _ domain.Repository = (*InMemoryRepository)(nil)

func (r *InMemoryRepository) Save(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[account.Handle().Key()] = account
	return nil
}

func (r *InMemoryRepository) FindByHandle(ctx context.Context, handle ident.ActorID) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, exists := r.accounts[handle.Key()]
	if !exists {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

func (r *InMemoryRepository) ExistsHandle(ctx context.Context, handle ident.ActorID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, exists := r.accounts[handle.Key()]
	return exists && account.Status() != domain.StatusDeleted, nil
}

func (r *InMemoryRepository) FindAll(ctx context.Context, offset, limit int) ([]*domain.Account, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Collect active accounts in handle order for stable pagination
	var active []*domain.Account
	for _, account := range r.accounts {
		if account.Status() != domain.StatusDeleted {
			active = append(active, account)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].Handle().Compare(active[j].Handle()) < 0
	})

	total := len(active)

	// Apply pagination
	if offset >= total {
		return []*domain.Account{}, total, nil
	}

	end := offset + limit
	if end > total {
		end = total
	}

	return active[offset:end], total, nil
}
