// Package persistence implements repository interfaces for baskets.
package persistence

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	platformspanner "github.com/anthol-dao/anthol-common/internal/platform/spanner"
	"github.com/anthol-dao/anthol-common/modules/basket/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/ident"
	"github.com/anthol-dao/anthol-common/modules/shared/media"
	"github.com/anthol-dao/anthol-common/modules/shared/types"
	"github.com/anthol-dao/anthol-common/modules/shared/unit"
)

// SpannerRepository implements domain.Repository using Cloud Spanner.
//
// Baskets is keyed by HandleKey, the handle's case-folded comparison key
// bytes; BasketItems is interleaved in Baskets and keyed by (HandleKey,
// ItemIndex). Identifier columns hold the packed byte form and are restored
// through FromBytes; prices are stored as exact decimal strings.
type SpannerRepository struct {
	client *spanner.Client
}

func NewSpannerRepository(client *spanner.Client) *SpannerRepository {
	return &SpannerRepository{client: client}
}

// Compile-time interface check.
var _ domain.Repository = (*SpannerRepository)(nil)

// Save persists a basket.
// It uses an existing transaction if available, otherwise creates a new one.
func (r *SpannerRepository) Save(ctx context.Context, basket *domain.Basket) error {
	if txn, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return r.saveWithTx(txn, basket)
	}

	_, err := r.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		return r.saveWithTx(txn, basket)
	})
	if err != nil {
		return fmt.Errorf("failed to save basket: %w", err)
	}
	return nil
}

func (r *SpannerRepository) saveWithTx(tx *spanner.ReadWriteTransaction, basket *domain.Basket) error {
	handleKey := []byte(basket.Handle().StoreKey())

	// Delete existing items first (handles line removal on update)
	if err := tx.BufferWrite([]*spanner.Mutation{
		spanner.Delete("BasketItems", spanner.KeyRange{
			Start: spanner.Key{handleKey},
			End:   spanner.Key{handleKey},
			Kind:  spanner.ClosedClosed,
		}),
	}); err != nil {
		return fmt.Errorf("failed to delete existing items: %w", err)
	}

	mutations := []*spanner.Mutation{
		spanner.InsertOrUpdate("Baskets",
			[]string{"HandleKey", "Handle", "Currency", "Status", "CreatedAt", "UpdatedAt"},
			[]interface{}{
				handleKey,
				basket.Handle().String(),
				basket.Currency().String(),
				basket.Status().String(),
				basket.CreatedAt(),
				basket.UpdatedAt(),
			},
		),
	}

	for i, item := range basket.Items() {
		mutations = append(mutations, spanner.InsertOrUpdate("BasketItems",
			[]string{
				"HandleKey", "ItemIndex", "MarketID", "StoreID", "ItemID", "AttrKeys",
				"ItemType", "Name", "StoreName", "ImageURL", "ImageMime",
				"UnitPrice", "Count", "Stock",
			},
			[]interface{}{
				handleKey,
				int64(i),
				item.Ref.MarketID.Bytes(),
				item.Ref.StoreID.Bytes(),
				item.Ref.ItemID.Bytes(),
				int64(item.Ref.Attrs.Uint32()),
				string(item.Type),
				item.Name,
				item.StoreName,
				item.Image.Src.ToURL(),
				item.Image.Mime.String(),
				item.UnitPrice.Decimal().String(),
				int64(item.Count),
				int64(item.Stock),
			},
		))
	}

	return tx.BufferWrite(mutations)
}

func (r *SpannerRepository) FindByHandle(ctx context.Context, handle ident.ActorID) (*domain.Basket, error) {
	reader, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		// Reads from Baskets + BasketItems require ReadOnlyTransaction
		// for point-in-time consistency. Single() is only for one read.
		roTx := r.client.ReadOnlyTransaction()
		defer roTx.Close()
		reader = roTx
	}

	handleKey := []byte(handle.StoreKey())

	row, err := reader.ReadRow(ctx, "Baskets",
		spanner.Key{handleKey},
		[]string{"Handle", "Currency", "Status", "CreatedAt", "UpdatedAt"},
	)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrBasketNotFound
		}
		return nil, fmt.Errorf("failed to read basket: %w", err)
	}

	var handleStr, currency, status string
	var createdAt, updatedAt time.Time
	if err := row.Columns(&handleStr, &currency, &status, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan basket: %w", err)
	}

	items, err := r.readBasketItems(ctx, reader, handleKey)
	if err != nil {
		return nil, err
	}

	// Re-parse the display form; it restores the case bitmap
	parsedHandle, err := ident.ParseActorID(handleStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse handle: %w", err)
	}

	return domain.Reconstitute(
		parsedHandle,
		items,
		unit.Currency(currency),
		domain.Status(status),
		createdAt,
		updatedAt,
	), nil
}

func (r *SpannerRepository) Delete(ctx context.Context, handle ident.ActorID) error {
	mutations := []*spanner.Mutation{
		// ON DELETE CASCADE handles BasketItems automatically
		spanner.Delete("Baskets", spanner.Key{[]byte(handle.StoreKey())}),
	}

	// Use existing transaction if available
	if txn, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return txn.BufferWrite(mutations)
	}

	// Fallback: standalone mutation
	_, err := r.client.Apply(ctx, mutations)
	if err != nil {
		return fmt.Errorf("failed to delete basket: %w", err)
	}
	return nil
}

func (r *SpannerRepository) readBasketItems(ctx context.Context, reader platformspanner.ReadTransaction, handleKey []byte) ([]domain.BasketItem, error) {
	iter := reader.Read(ctx, "BasketItems",
		spanner.KeyRange{
			Start: spanner.Key{handleKey},
			End:   spanner.Key{handleKey},
			Kind:  spanner.ClosedClosed,
		},
		[]string{
			"MarketID", "StoreID", "ItemID", "AttrKeys",
			"ItemType", "Name", "StoreName", "ImageURL", "ImageMime",
			"UnitPrice", "Count", "Stock",
		},
	)
	defer iter.Stop()

	var items []domain.BasketItem
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read basket items: %w", err)
		}

		var marketBytes, storeBytes, itemBytes []byte
		var attrKeys, count, stock int64
		var itemType, name, storeName, imageURL, imageMime, unitPrice string

		if err := row.Columns(
			&marketBytes, &storeBytes, &itemBytes, &attrKeys,
			&itemType, &name, &storeName, &imageURL, &imageMime,
			&unitPrice, &count, &stock,
		); err != nil {
			return nil, fmt.Errorf("failed to scan basket item: %w", err)
		}

		item, err := restoreItem(
			marketBytes, storeBytes, itemBytes, attrKeys,
			itemType, name, storeName, imageURL, imageMime,
			unitPrice, count, stock,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func restoreItem(
	marketBytes, storeBytes, itemBytes []byte, attrKeys int64,
	itemType, name, storeName, imageURL, imageMime, unitPrice string,
	count, stock int64,
) (domain.BasketItem, error) {
	marketID, err := types.MarketIDFromBytes(marketBytes)
	if err != nil {
		return domain.BasketItem{}, fmt.Errorf("failed to restore market id: %w", err)
	}
	storeID, err := types.StoreIDFromBytes(storeBytes)
	if err != nil {
		return domain.BasketItem{}, fmt.Errorf("failed to restore store id: %w", err)
	}
	itemID, err := types.ItemIDFromBytes(itemBytes)
	if err != nil {
		return domain.BasketItem{}, fmt.Errorf("failed to restore item id: %w", err)
	}

	amount, err := decimal.NewFromString(unitPrice)
	if err != nil {
		return domain.BasketItem{}, fmt.Errorf("failed to restore unit price: %w", err)
	}
	price, err := unit.PriceFromDecimal(amount)
	if err != nil {
		return domain.BasketItem{}, fmt.Errorf("failed to restore unit price: %w", err)
	}

	item := domain.BasketItem{
		Ref: domain.ItemRef{
			MarketID: marketID,
			StoreID:  storeID,
			ItemID:   itemID,
			Attrs:    types.AttrKeysFromUint32(uint32(attrKeys)),
		},
		Type:      domain.ItemType(itemType),
		Name:      name,
		StoreName: storeName,
		UnitPrice: price,
		Count:     int(count),
		Stock:     int(stock),
	}
	if imageURL != "" {
		item.Image = media.Data{
			Src:  media.URLSrc(imageURL),
			Mime: media.ParseMime(imageMime),
			Alt:  name,
		}
	}
	return item, nil
}
