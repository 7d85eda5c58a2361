// Package domain contains business entities and rules for baskets.
package domain

import (
	"time"

	"github.com/shopspring/decimal"

	shareddomain "github.com/anthol-dao/anthol-common/modules/shared/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/ident"
	"github.com/anthol-dao/anthol-common/modules/shared/media"
	"github.com/anthol-dao/anthol-common/modules/shared/types"
	"github.com/anthol-dao/anthol-common/modules/shared/unit"
)

// ItemType distinguishes goods that ship from goods that download.
type ItemType string

const (
	ItemPhysical ItemType = "physical"
	ItemDigital  ItemType = "digital"
)

func (t ItemType) IsValid() bool {
	return t == ItemPhysical || t == ItemDigital
}

// ItemRef is the identity of a basket line: the listed item plus the
// attribute selection. Two lines with the same ref merge into one.
type ItemRef struct {
	MarketID types.MarketID
	StoreID  types.StoreID
	ItemID   types.ItemID
	Attrs    types.AttrKeys
}

func (r ItemRef) Equal(other ItemRef) bool {
	return r.MarketID == other.MarketID &&
		r.StoreID == other.StoreID &&
		r.ItemID == other.ItemID &&
		r.Attrs == other.Attrs
}

// BasketItem is one line in the basket. Name, store name, image, price and
// stock are snapshots taken from the market listing when the line was added.
type BasketItem struct {
	Ref       ItemRef
	Type      ItemType
	Name      string
	StoreName string
	Image     media.Data
	UnitPrice unit.Price
	Count     int
	Stock     int
}

// Subtotal is unit price times count, on exact decimals.
func (i BasketItem) Subtotal() unit.Price {
	subtotal, _ := i.UnitPrice.MulDecimal(decimal.NewFromInt(int64(i.Count)))
	return subtotal
}

// Basket is the aggregate root for the basket bounded context, one per
// account handle. All lines share a single currency; the first added item
// fixes it.
type Basket struct {
	shareddomain.AggregateRoot

	handle    ident.ActorID
	items     []BasketItem
	currency  unit.Currency
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewBasket creates an empty draft basket for a handle.
func NewBasket(handle ident.ActorID) *Basket {
	b := &Basket{
		handle:    handle,
		items:     make([]BasketItem, 0),
		status:    StatusDraft,
		createdAt: time.Now().UTC(),
		updatedAt: time.Now().UTC(),
	}
	b.AddDomainEvent(NewBasketCreatedEvent(b))
	return b
}

// Reconstitute rebuilds a basket from persistence.
func Reconstitute(
	handle ident.ActorID,
	items []BasketItem,
	currency unit.Currency,
	status Status,
	createdAt, updatedAt time.Time,
) *Basket {
	return &Basket{
		handle:    handle,
		items:     items,
		currency:  currency,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Getters

func (b *Basket) Handle() ident.ActorID    { return b.handle }
func (b *Basket) Items() []BasketItem      { return b.items }
func (b *Basket) Currency() unit.Currency  { return b.currency }
func (b *Basket) Status() Status           { return b.status }
func (b *Basket) CreatedAt() time.Time     { return b.createdAt }
func (b *Basket) UpdatedAt() time.Time     { return b.updatedAt }

// ItemCount is the number of units across all lines.
func (b *Basket) ItemCount() int {
	count := 0
	for _, item := range b.items {
		count += item.Count
	}
	return count
}

// Total sums the line subtotals.
func (b *Basket) Total() unit.Price {
	var total unit.Price
	for _, item := range b.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Business methods

// AddItem adds a line to the basket, merging counts when the same item and
// attribute selection is already present. The first line fixes the basket
// currency; later lines must match it.
func (b *Basket) AddItem(item BasketItem, currency unit.Currency) error {
	if b.status != StatusDraft {
		return ErrBasketNotDraft
	}
	if item.Count <= 0 {
		return ErrInvalidCount
	}
	if !item.Type.IsValid() {
		return ErrInvalidItemType
	}
	if len(b.items) == 0 {
		b.currency = currency
	} else if currency != b.currency {
		return ErrCurrencyMismatch
	}

	// Merge with an existing line for the same item and attrs
	for i, existing := range b.items {
		if existing.Ref.Equal(item.Ref) {
			merged := existing.Count + item.Count
			if merged > existing.Stock {
				return ErrInsufficientStock
			}
			b.items[i].Count = merged
			b.updatedAt = time.Now().UTC()
			return nil
		}
	}

	if item.Count > item.Stock {
		return ErrInsufficientStock
	}

	b.items = append(b.items, item)
	b.updatedAt = time.Now().UTC()
	return nil
}

// UpdateCount sets the count of an existing line.
func (b *Basket) UpdateCount(ref ItemRef, count int) error {
	if b.status != StatusDraft {
		return ErrBasketNotDraft
	}
	if count <= 0 {
		return ErrInvalidCount
	}

	for i, item := range b.items {
		if item.Ref.Equal(ref) {
			if count > item.Stock {
				return ErrInsufficientStock
			}
			b.items[i].Count = count
			b.updatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrItemNotFound
}

// RemoveItem removes a line from the basket. Removing the last line resets
// the currency so the next item can fix a new one.
func (b *Basket) RemoveItem(ref ItemRef) error {
	if b.status != StatusDraft {
		return ErrBasketNotDraft
	}

	for i, item := range b.items {
		if item.Ref.Equal(ref) {
			b.items = append(b.items[:i], b.items[i+1:]...)
			if len(b.items) == 0 {
				b.currency = ""
			}
			b.updatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrItemNotFound
}

// Checkout closes the basket. Adds BasketCheckedOutEvent to be dispatched
// within the checkout transaction.
func (b *Basket) Checkout() error {
	if b.status != StatusDraft {
		return ErrBasketNotDraft
	}
	if len(b.items) == 0 {
		return ErrBasketEmpty
	}

	b.status = StatusCheckedOut
	b.updatedAt = time.Now().UTC()
	b.AddDomainEvent(NewBasketCheckedOutEvent(b))
	return nil
}

// Clear empties the basket and returns it to draft, used when the owning
// account is deleted or after a completed checkout is archived.
func (b *Basket) Clear() {
	b.items = b.items[:0]
	b.currency = ""
	b.status = StatusDraft
	b.updatedAt = time.Now().UTC()
}
