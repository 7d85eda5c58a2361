package domain

import (
	"context"

	"github.com/anthol-dao/anthol-common/modules/shared/ident"
)

// Repository defines the persistence interface for accounts.
// Defined in the domain layer, implemented in infrastructure.
// Lookups key off the handle's comparison key, so "Anthol_User" and
// "anthol_user" resolve to the same account.
type Repository interface {
	// Save persists an account (insert or update).
	Save(ctx context.Context, account *Account) error
	// FindByHandle retrieves an account by its handle.
	// Returns ErrAccountNotFound if it does not exist.
	FindByHandle(ctx context.Context, handle ident.ActorID) (*Account, error)
	// ExistsHandle reports whether an account with the handle exists.
	ExistsHandle(ctx context.Context, handle ident.ActorID) (bool, error)
	// FindAll retrieves accounts with pagination, plus the total count.
	FindAll(ctx context.Context, offset, limit int) ([]*Account, int, error)
}
