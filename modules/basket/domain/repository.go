package domain

import (
	"context"

	"github.com/anthol-dao/anthol-common/modules/shared/ident"
)

// Repository defines persistence operations for baskets. One basket per
// handle; lookups use the handle's case-insensitive comparison key.
type Repository interface {
	Save(ctx context.Context, basket *Basket) error
	// FindByHandle retrieves the handle's basket.
	// Returns ErrBasketNotFound if it does not exist.
	FindByHandle(ctx context.Context, handle ident.ActorID) (*Basket, error)
	Delete(ctx context.Context, handle ident.ActorID) error
}
