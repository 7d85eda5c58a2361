// Package queries contains read use cases for the basket module.
package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/anthol-dao/anthol-common/modules/basket/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/ident"
	"github.com/anthol-dao/anthol-common/modules/shared/unit"
)

// BasketItemDTO is one line of the basket page.
type BasketItemDTO struct {
	MarketID  string     `json:"market_id"`
	StoreID   string     `json:"store_id"`
	ItemID    string     `json:"item_id"`
	AttrKeys  string     `json:"attr_keys"`
	Type      string     `json:"type"`
	Name      string     `json:"name"`
	ImageURL  string     `json:"image_url,omitempty"`
	UnitPrice unit.Price `json:"unit_price"`
	Count     int        `json:"count"`
	Stock     int        `json:"stock"`
	Subtotal  unit.Price `json:"subtotal"`
}

// StoreGroupDTO groups the physical lines bought from one store, which ship
// together.
type StoreGroupDTO struct {
	MarketID  string          `json:"market_id"`
	StoreID   string          `json:"store_id"`
	StoreName string          `json:"store_name"`
	Items     []BasketItemDTO `json:"items"`
	Subtotal  unit.Price      `json:"subtotal"`
}

// BasketPageDTO is the basket page read model: physical items grouped by
// store, digital items as a flat list.
type BasketPageDTO struct {
	Handle         string          `json:"handle"`
	Currency       string          `json:"currency,omitempty"`
	PhysicalGroups []StoreGroupDTO `json:"physical_groups"`
	DigitalItems   []BasketItemDTO `json:"digital_items"`
	ItemCount      int             `json:"item_count"`
	Total          unit.Price      `json:"total"`
	Status         string          `json:"status"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// GetBasketQuery retrieves a handle's basket page.
type GetBasketQuery struct {
	Handle string
}

type GetBasketHandler struct {
	repo domain.Repository
}

func NewGetBasketHandler(repo domain.Repository) *GetBasketHandler {
	return &GetBasketHandler{repo: repo}
}

func (h *GetBasketHandler) Handle(ctx context.Context, query GetBasketQuery) (*BasketPageDTO, error) {
	handle, err := ident.ParseActorID(query.Handle)
	if err != nil {
		return nil, fmt.Errorf("invalid handle: %w", err)
	}

	basket, err := h.repo.FindByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}

	return toBasketPageDTO(basket), nil
}

func toBasketPageDTO(basket *domain.Basket) *BasketPageDTO {
	page := &BasketPageDTO{
		Handle:         basket.Handle().String(),
		Currency:       basket.Currency().String(),
		PhysicalGroups: []StoreGroupDTO{},
		DigitalItems:   []BasketItemDTO{},
		ItemCount:      basket.ItemCount(),
		Total:          basket.Total(),
		Status:         basket.Status().String(),
		UpdatedAt:      basket.UpdatedAt(),
	}

	// Group physical lines by store, in first-seen order
	groupIndex := make(map[string]int)
	for _, item := range basket.Items() {
		dto := toBasketItemDTO(item)

		if item.Type == domain.ItemDigital {
			page.DigitalItems = append(page.DigitalItems, dto)
			continue
		}

		groupKey := item.Ref.MarketID.StoreKey() + item.Ref.StoreID.StoreKey()
		i, ok := groupIndex[groupKey]
		if !ok {
			i = len(page.PhysicalGroups)
			groupIndex[groupKey] = i
			page.PhysicalGroups = append(page.PhysicalGroups, StoreGroupDTO{
				MarketID:  item.Ref.MarketID.String(),
				StoreID:   item.Ref.StoreID.String(),
				StoreName: item.StoreName,
			})
		}
		page.PhysicalGroups[i].Items = append(page.PhysicalGroups[i].Items, dto)
		page.PhysicalGroups[i].Subtotal = page.PhysicalGroups[i].Subtotal.Add(item.Subtotal())
	}

	return page
}

func toBasketItemDTO(item domain.BasketItem) BasketItemDTO {
	dto := BasketItemDTO{
		MarketID:  item.Ref.MarketID.String(),
		StoreID:   item.Ref.StoreID.String(),
		ItemID:    item.Ref.ItemID.String(),
		AttrKeys:  item.Ref.Attrs.Hex(),
		Type:      string(item.Type),
		Name:      item.Name,
		UnitPrice: item.UnitPrice,
		Count:     item.Count,
		Stock:     item.Stock,
		Subtotal:  item.Subtotal(),
	}
	if !item.Image.Src.IsZero() {
		dto.ImageURL = item.Image.Src.ToURL()
	}
	return dto
}
