package domain_test

import (
	"testing"

	"github.com/anthol-dao/anthol-common/modules/basket/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/events/contracts"
	"github.com/anthol-dao/anthol-common/modules/shared/ident"
	"github.com/anthol-dao/anthol-common/modules/shared/media"
	"github.com/anthol-dao/anthol-common/modules/shared/types"
	"github.com/anthol-dao/anthol-common/modules/shared/unit"
)

func TestBasket_AddItem(t *testing.T) {
	basket := createTestBasket(t)

	item := testItem(t, "wiggle-stool", 2, 10)
	if err := basket.AddItem(item, unit.CurrencyUSD); err != nil {
		t.Fatalf("failed to add item: %v", err)
	}

	if basket.Currency() != unit.CurrencyUSD {
		t.Errorf("expected currency USD, got %s", basket.Currency())
	}
	if basket.ItemCount() != 2 {
		t.Errorf("expected item count 2, got %d", basket.ItemCount())
	}
	if !basket.Total().Equal(unit.MustPrice(49.98)) {
		t.Errorf("expected total 49.98, got %s", basket.Total())
	}
}

func TestBasket_AddItem_MergesSameRef(t *testing.T) {
	basket := createTestBasket(t)

	if err := basket.AddItem(testItem(t, "wiggle-stool", 2, 10), unit.CurrencyUSD); err != nil {
		t.Fatalf("failed to add item: %v", err)
	}
	if err := basket.AddItem(testItem(t, "wiggle-stool", 3, 10), unit.CurrencyUSD); err != nil {
		t.Fatalf("failed to merge item: %v", err)
	}

	if len(basket.Items()) != 1 {
		t.Fatalf("expected 1 line after merge, got %d", len(basket.Items()))
	}
	if basket.Items()[0].Count != 5 {
		t.Errorf("expected merged count 5, got %d", basket.Items()[0].Count)
	}
}

func TestBasket_AddItem_CurrencyMismatch(t *testing.T) {
	basket := createTestBasket(t)

	if err := basket.AddItem(testItem(t, "wiggle-stool", 1, 10), unit.CurrencyUSD); err != nil {
		t.Fatalf("failed to add item: %v", err)
	}

	err := basket.AddItem(testItem(t, "garden-gnome", 1, 10), unit.CurrencyEUR)
	if err != domain.ErrCurrencyMismatch {
		t.Errorf("expected ErrCurrencyMismatch, got %v", err)
	}
}

func TestBasket_AddItem_StockLimits(t *testing.T) {
	basket := createTestBasket(t)

	if err := basket.AddItem(testItem(t, "wiggle-stool", 5, 4), unit.CurrencyUSD); err != domain.ErrInsufficientStock {
		t.Errorf("expected ErrInsufficientStock, got %v", err)
	}

	if err := basket.AddItem(testItem(t, "wiggle-stool", 3, 4), unit.CurrencyUSD); err != nil {
		t.Fatalf("failed to add item: %v", err)
	}
	// 3 + 2 exceeds the stock of 4
	if err := basket.AddItem(testItem(t, "wiggle-stool", 2, 4), unit.CurrencyUSD); err != domain.ErrInsufficientStock {
		t.Errorf("expected ErrInsufficientStock on merge, got %v", err)
	}
}

func TestBasket_UpdateCount(t *testing.T) {
	basket := createTestBasket(t)
	item := testItem(t, "wiggle-stool", 1, 10)

	if err := basket.AddItem(item, unit.CurrencyUSD); err != nil {
		t.Fatalf("failed to add item: %v", err)
	}

	if err := basket.UpdateCount(item.Ref, 7); err != nil {
		t.Fatalf("failed to update count: %v", err)
	}
	if basket.Items()[0].Count != 7 {
		t.Errorf("expected count 7, got %d", basket.Items()[0].Count)
	}

	if err := basket.UpdateCount(item.Ref, 0); err != domain.ErrInvalidCount {
		t.Errorf("expected ErrInvalidCount, got %v", err)
	}
	if err := basket.UpdateCount(item.Ref, 11); err != domain.ErrInsufficientStock {
		t.Errorf("expected ErrInsufficientStock, got %v", err)
	}
}

func TestBasket_RemoveItem_ResetsCurrency(t *testing.T) {
	basket := createTestBasket(t)
	item := testItem(t, "wiggle-stool", 1, 10)

	if err := basket.AddItem(item, unit.CurrencyEUR); err != nil {
		t.Fatalf("failed to add item: %v", err)
	}
	if err := basket.RemoveItem(item.Ref); err != nil {
		t.Fatalf("failed to remove item: %v", err)
	}

	// An empty basket accepts a fresh currency
	if err := basket.AddItem(testItem(t, "garden-gnome", 1, 10), unit.CurrencyUSD); err != nil {
		t.Errorf("expected empty basket to accept new currency, got %v", err)
	}
}

func TestBasket_RemoveItem_NotFound(t *testing.T) {
	basket := createTestBasket(t)

	err := basket.RemoveItem(testItem(t, "wiggle-stool", 1, 10).Ref)
	if err != domain.ErrItemNotFound {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestBasket_Checkout(t *testing.T) {
	basket := createTestBasket(t)
	basket.ClearDomainEvents()

	if err := basket.Checkout(); err != domain.ErrBasketEmpty {
		t.Errorf("expected ErrBasketEmpty, got %v", err)
	}

	if err := basket.AddItem(testItem(t, "wiggle-stool", 2, 10), unit.CurrencyUSD); err != nil {
		t.Fatalf("failed to add item: %v", err)
	}
	if err := basket.Checkout(); err != nil {
		t.Fatalf("failed to checkout: %v", err)
	}

	if basket.Status() != domain.StatusCheckedOut {
		t.Errorf("expected status checked_out, got %s", basket.Status())
	}

	events := basket.DomainEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 domain event, got %d", len(events))
	}
	checkedOut, ok := events[0].(contracts.BasketCheckedOutEvent)
	if !ok {
		t.Fatalf("expected BasketCheckedOutEvent, got %T", events[0])
	}
	if checkedOut.ItemCount != 2 {
		t.Errorf("expected event item count 2, got %d", checkedOut.ItemCount)
	}
	if checkedOut.Total != "49.98" {
		t.Errorf("expected event total 49.98, got %s", checkedOut.Total)
	}
	if checkedOut.Currency != "USD" {
		t.Errorf("expected event currency USD, got %s", checkedOut.Currency)
	}

	// Checked-out baskets reject further mutation
	if err := basket.AddItem(testItem(t, "garden-gnome", 1, 10), unit.CurrencyUSD); err != domain.ErrBasketNotDraft {
		t.Errorf("expected ErrBasketNotDraft, got %v", err)
	}
}

// --- Helpers ---

func createTestBasket(t *testing.T) *domain.Basket {
	t.Helper()

	handle, err := ident.ParseActorID("Anthol_User")
	if err != nil {
		t.Fatalf("failed to parse handle: %v", err)
	}
	return domain.NewBasket(handle)
}

func testItem(t *testing.T, itemID string, count, stock int) domain.BasketItem {
	t.Helper()

	marketID, err := types.ParseMarketID("main-market")
	if err != nil {
		t.Fatalf("failed to parse market id: %v", err)
	}
	storeID, err := types.ParseStoreID("cozy-store")
	if err != nil {
		t.Fatalf("failed to parse store id: %v", err)
	}
	parsedItemID, err := types.ParseItemID(itemID)
	if err != nil {
		t.Fatalf("failed to parse item id: %v", err)
	}

	return domain.BasketItem{
		Ref: domain.ItemRef{
			MarketID: marketID,
			StoreID:  storeID,
			ItemID:   parsedItemID,
			Attrs:    types.NewAttrKeys(1, 0, 0, 0),
		},
		Type:      domain.ItemPhysical,
		Name:      "Wiggle Stool",
		StoreName: "Cozy Store",
		Image: media.Data{
			Src:  media.URLSrc("https://example.com/stool.png"),
			Mime: media.ImagePNG,
		},
		UnitPrice: unit.MustPrice(24.99),
		Count:     count,
		Stock:     stock,
	}
}
