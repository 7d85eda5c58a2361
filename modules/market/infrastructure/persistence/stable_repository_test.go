package persistence_test

import (
	"context"
	"errors"
	"testing"

	"github.com/anthol-dao/anthol-common/modules/market/domain"
	"github.com/anthol-dao/anthol-common/modules/market/infrastructure/persistence"
	"github.com/anthol-dao/anthol-common/modules/shared/media"
	"github.com/anthol-dao/anthol-common/modules/shared/types"
	"github.com/anthol-dao/anthol-common/modules/shared/unit"
)

func TestStableRepository_MarketRoundTrip(t *testing.T) {
	repo := persistence.NewStableRepository()
	ctx := context.Background()

	market := mustMarket(t, "main-market", "Main Market")
	if err := repo.SaveMarket(ctx, market); err != nil {
		t.Fatalf("failed to save market: %v", err)
	}

	found, err := repo.FindMarket(ctx, market.ID())
	if err != nil {
		t.Fatalf("failed to find market: %v", err)
	}
	if found.ID() != market.ID() {
		t.Errorf("expected ID %s, got %s", market.ID(), found.ID())
	}
	if found.Name() != "Main Market" {
		t.Errorf("expected name Main Market, got %q", found.Name())
	}
}

func TestStableRepository_FindMarket_NotFound(t *testing.T) {
	repo := persistence.NewStableRepository()

	_, err := repo.FindMarket(context.Background(), mustMarketID(t, "no-such-market"))
	if !errors.Is(err, domain.ErrMarketNotFound) {
		t.Errorf("expected ErrMarketNotFound, got %v", err)
	}
}

func TestStableRepository_SaveMarket_Upsert(t *testing.T) {
	repo := persistence.NewStableRepository()
	ctx := context.Background()

	if err := repo.SaveMarket(ctx, mustMarket(t, "main-market", "Main Market")); err != nil {
		t.Fatalf("failed to save market: %v", err)
	}
	if err := repo.SaveMarket(ctx, mustMarket(t, "main-market", "Renamed Market")); err != nil {
		t.Fatalf("failed to resave market: %v", err)
	}

	markets, err := repo.ListMarkets(ctx)
	if err != nil {
		t.Fatalf("failed to list markets: %v", err)
	}
	if len(markets) != 1 {
		t.Fatalf("expected 1 market, got %d", len(markets))
	}
	if markets[0].Name() != "Renamed Market" {
		t.Errorf("expected renamed market, got %q", markets[0].Name())
	}
}

func TestStableRepository_ListingRoundTrip(t *testing.T) {
	repo := persistence.NewStableRepository()
	ctx := context.Background()
	marketID := mustMarketID(t, "main-market")

	original := testListing(t)
	if err := repo.SaveListing(ctx, marketID, original); err != nil {
		t.Fatalf("failed to save listing: %v", err)
	}

	found, err := repo.FindListing(ctx, marketID, original.StoreID(), original.ItemID())
	if err != nil {
		t.Fatalf("failed to find listing: %v", err)
	}

	if found.Name() != original.Name() {
		t.Errorf("expected name %q, got %q", original.Name(), found.Name())
	}
	if found.StoreName() != original.StoreName() {
		t.Errorf("expected store name %q, got %q", original.StoreName(), found.StoreName())
	}
	if len(found.Tags()) != 1 || !found.Tags()[0].Equals(original.Tags()[0]) {
		t.Errorf("expected tags to round trip, got %v", found.Tags())
	}

	variant, ok := found.Variant(original.Attrs()[0].Attrs)
	if !ok {
		t.Fatal("expected variant to survive the round trip")
	}
	if !variant.InStock {
		t.Error("expected variant to be in stock")
	}
	if !variant.Prices[unit.CurrencyUSD].Equal(unit.MustPrice(24.99)) {
		t.Errorf("expected USD price 24.99, got %s", variant.Prices[unit.CurrencyUSD])
	}
	if !variant.Prices[unit.CurrencyEUR].Equal(unit.MustPrice(22.50)) {
		t.Errorf("expected EUR price 22.50, got %s", variant.Prices[unit.CurrencyEUR])
	}
	if variant.Image.Src.ToURL() != media.IPFSGateway+"bafybeigdyrstool" {
		t.Errorf("expected gateway image URL, got %q", variant.Image.Src.ToURL())
	}

	specs := found.Specs()
	if len(specs) != 1 || specs[0].Name != "Dimensions" {
		t.Fatalf("expected one Dimensions spec category, got %v", specs)
	}
	if len(specs[0].Labels) != 1 || specs[0].Labels[0].Values[0] != "45 cm" {
		t.Errorf("expected spec values to round trip, got %v", specs[0].Labels)
	}
}

func TestStableRepository_FindListing_NotFound(t *testing.T) {
	repo := persistence.NewStableRepository()

	_, err := repo.FindListing(
		context.Background(),
		mustMarketID(t, "main-market"),
		mustStoreID(t, "cozy-store"),
		mustItemID(t, "no-such-item"),
	)
	if !errors.Is(err, domain.ErrListingNotFound) {
		t.Errorf("expected ErrListingNotFound, got %v", err)
	}
}

func TestStableRepository_ListingsByMarket(t *testing.T) {
	repo := persistence.NewStableRepository()
	ctx := context.Background()
	mainMarket := mustMarketID(t, "main-market")
	otherMarket := mustMarketID(t, "other-market")

	if err := repo.SaveListing(ctx, mainMarket, testListing(t)); err != nil {
		t.Fatalf("failed to save listing: %v", err)
	}
	other := testListingFor(t, "cozy-store", "other-item")
	if err := repo.SaveListing(ctx, otherMarket, other); err != nil {
		t.Fatalf("failed to save listing: %v", err)
	}

	listings, err := repo.ListingsByMarket(ctx, mainMarket)
	if err != nil {
		t.Fatalf("failed to list listings: %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("expected 1 listing in main-market, got %d", len(listings))
	}
	if listings[0].ItemID() != mustItemID(t, "wiggle-stool") {
		t.Errorf("expected wiggle-stool, got %s", listings[0].ItemID())
	}
}

func TestStableRepository_DeleteListing(t *testing.T) {
	repo := persistence.NewStableRepository()
	ctx := context.Background()
	marketID := mustMarketID(t, "main-market")
	listing := testListing(t)

	if err := repo.SaveListing(ctx, marketID, listing); err != nil {
		t.Fatalf("failed to save listing: %v", err)
	}

	existed, err := repo.DeleteListing(ctx, marketID, listing.StoreID(), listing.ItemID())
	if err != nil {
		t.Fatalf("failed to delete listing: %v", err)
	}
	if !existed {
		t.Error("expected delete to report the listing existed")
	}

	existed, err = repo.DeleteListing(ctx, marketID, listing.StoreID(), listing.ItemID())
	if err != nil {
		t.Fatalf("failed to delete listing twice: %v", err)
	}
	if existed {
		t.Error("expected second delete to report not found")
	}
}

// Helpers

func mustMarketID(t *testing.T, s string) types.MarketID {
	t.Helper()
	id, err := types.ParseMarketID(s)
	if err != nil {
		t.Fatalf("invalid market ID %q: %v", s, err)
	}
	return id
}

func mustStoreID(t *testing.T, s string) types.StoreID {
	t.Helper()
	id, err := types.ParseStoreID(s)
	if err != nil {
		t.Fatalf("invalid store ID %q: %v", s, err)
	}
	return id
}

func mustItemID(t *testing.T, s string) types.ItemID {
	t.Helper()
	id, err := types.ParseItemID(s)
	if err != nil {
		t.Fatalf("invalid item ID %q: %v", s, err)
	}
	return id
}

func mustMarket(t *testing.T, id, name string) *domain.Market {
	t.Helper()
	market, err := domain.NewMarket(mustMarketID(t, id), name)
	if err != nil {
		t.Fatalf("failed to create market: %v", err)
	}
	return market
}

func testListing(t *testing.T) *domain.ItemListing {
	t.Helper()
	return testListingFor(t, "cozy-store", "wiggle-stool")
}

func testListingFor(t *testing.T, storeID, itemID string) *domain.ItemListing {
	t.Helper()

	tag, err := domain.NewTag("mid century")
	if err != nil {
		t.Fatalf("failed to create tag: %v", err)
	}
	attrs, err := types.ParseAttrKeys("01000000")
	if err != nil {
		t.Fatalf("failed to parse attr keys: %v", err)
	}

	listing, err := domain.NewItemListing(
		mustStoreID(t, storeID), mustItemID(t, itemID),
		"Wiggle Stool", "Cozy Store",
		[]domain.Tag{tag},
		[]domain.AttrVariant{{
			Attrs:   attrs,
			InStock: true,
			Prices: map[unit.Currency]unit.Price{
				unit.CurrencyUSD: unit.MustPrice(24.99),
				unit.CurrencyEUR: unit.MustPrice(22.50),
			},
			Image: media.Data{Src: media.CIDSrc("bafybeigdyrstool"), Mime: media.ImagePNG, Alt: "a wiggle stool"},
		}},
		[]domain.SpecCategory{{
			Name:   "Dimensions",
			Labels: []domain.SpecLabel{{Name: "Height", Values: []string{"45 cm"}}},
		}},
	)
	if err != nil {
		t.Fatalf("failed to create listing: %v", err)
	}
	return listing
}
