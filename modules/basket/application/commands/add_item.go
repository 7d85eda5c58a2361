// Package commands contains write use cases for the basket module.
package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthol-dao/anthol-common/modules/basket/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/events"
	"github.com/anthol-dao/anthol-common/modules/shared/ident"
	"github.com/anthol-dao/anthol-common/modules/shared/media"
	"github.com/anthol-dao/anthol-common/modules/shared/types"
	"github.com/anthol-dao/anthol-common/modules/shared/unit"
)

// AddItemCommand adds an item to a handle's basket. The snapshot fields
// (name, store name, image, price, stock) come from the market listing the
// caller is looking at.
type AddItemCommand struct {
	Handle    string
	MarketID  string
	StoreID   string
	ItemID    string
	AttrKeys  string
	ItemType  string
	Name      string
	StoreName string
	ImageURL  string
	ImageMime string
	UnitPrice unit.Price
	Currency  string
	Count     int
	Stock     int
}

type AddItemHandler struct {
	repo      domain.Repository
	publisher events.Publisher
}

func NewAddItemHandler(repo domain.Repository, publisher events.Publisher) *AddItemHandler {
	return &AddItemHandler{repo: repo, publisher: publisher}
}

// Handle executes the add item use case. A handle's basket is created
// implicitly on its first item.
func (h *AddItemHandler) Handle(ctx context.Context, cmd AddItemCommand) error {
	handle, err := ident.ParseActorID(cmd.Handle)
	if err != nil {
		return fmt.Errorf("invalid handle: %w", err)
	}

	item, currency, err := itemFromCommand(cmd)
	if err != nil {
		return err
	}

	basket, err := h.repo.FindByHandle(ctx, handle)
	created := false
	if errors.Is(err, domain.ErrBasketNotFound) {
		basket = domain.NewBasket(handle)
		created = true
	} else if err != nil {
		return fmt.Errorf("finding basket: %w", err)
	}

	if err := basket.AddItem(item, currency); err != nil {
		return err
	}

	if err := h.repo.Save(ctx, basket); err != nil {
		return fmt.Errorf("saving basket: %w", err)
	}

	if created && h.publisher != nil {
		for _, event := range basket.DomainEvents() {
			if err := h.publisher.Publish(ctx, event); err != nil {
				_ = err
			}
		}
		basket.ClearDomainEvents()
	}

	return nil
}

func itemFromCommand(cmd AddItemCommand) (domain.BasketItem, unit.Currency, error) {
	ref, err := parseItemRef(cmd.MarketID, cmd.StoreID, cmd.ItemID, cmd.AttrKeys)
	if err != nil {
		return domain.BasketItem{}, "", err
	}

	currency, err := unit.ParseCurrency(cmd.Currency)
	if err != nil {
		return domain.BasketItem{}, "", fmt.Errorf("invalid currency: %w", err)
	}

	item := domain.BasketItem{
		Ref:       ref,
		Type:      domain.ItemType(cmd.ItemType),
		Name:      cmd.Name,
		StoreName: cmd.StoreName,
		UnitPrice: cmd.UnitPrice,
		Count:     cmd.Count,
		Stock:     cmd.Stock,
	}
	if cmd.ImageURL != "" {
		item.Image = media.Data{
			Src:  media.URLSrc(cmd.ImageURL),
			Mime: media.ParseMime(cmd.ImageMime),
			Alt:  cmd.Name,
		}
	}
	return item, currency, nil
}

func parseItemRef(marketID, storeID, itemID, attrKeys string) (domain.ItemRef, error) {
	market, err := types.ParseMarketID(marketID)
	if err != nil {
		return domain.ItemRef{}, fmt.Errorf("invalid market ID: %w", err)
	}
	store, err := types.ParseStoreID(storeID)
	if err != nil {
		return domain.ItemRef{}, fmt.Errorf("invalid store ID: %w", err)
	}
	item, err := types.ParseItemID(itemID)
	if err != nil {
		return domain.ItemRef{}, fmt.Errorf("invalid item ID: %w", err)
	}
	attrs, err := types.ParseAttrKeys(attrKeys)
	if err != nil {
		return domain.ItemRef{}, fmt.Errorf("invalid attr keys: %w", err)
	}

	return domain.ItemRef{
		MarketID: market,
		StoreID:  store,
		ItemID:   item,
		Attrs:    attrs,
	}, nil
}
