package domain_test

import (
	"errors"
	"testing"

	"github.com/anthol-dao/anthol-common/modules/market/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/media"
	"github.com/anthol-dao/anthol-common/modules/shared/types"
	"github.com/anthol-dao/anthol-common/modules/shared/unit"
)

func TestNewItemListing_Validation(t *testing.T) {
	storeID := mustStoreID(t, "cozy-store")
	itemID := mustItemID(t, "wiggle-stool")
	variant := testVariant(t, "00000000", true, 24.99)

	if _, err := domain.NewItemListing(storeID, itemID, "  ", "Cozy Store", nil, []domain.AttrVariant{variant}, nil); !errors.Is(err, domain.ErrListingNameRequired) {
		t.Errorf("expected ErrListingNameRequired, got %v", err)
	}
	if _, err := domain.NewItemListing(storeID, itemID, "Wiggle Stool", "Cozy Store", nil, nil, nil); !errors.Is(err, domain.ErrNoAttrVariants) {
		t.Errorf("expected ErrNoAttrVariants, got %v", err)
	}

	listing, err := domain.NewItemListing(storeID, itemID, "  Wiggle Stool  ", "Cozy Store", nil, []domain.AttrVariant{variant}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if listing.Name() != "Wiggle Stool" {
		t.Errorf("expected trimmed name, got %q", listing.Name())
	}
}

func TestItemListing_Variant(t *testing.T) {
	red := testVariant(t, "01000000", true, 24.99)
	blue := testVariant(t, "02000000", false, 26.99)
	listing := testListing(t, red, blue)

	got, ok := listing.Variant(blue.Attrs)
	if !ok {
		t.Fatal("expected variant to be found")
	}
	if got.InStock {
		t.Error("expected blue variant to be out of stock")
	}

	missing, _ := types.ParseAttrKeys("0f000000")
	if _, ok := listing.Variant(missing); ok {
		t.Error("expected unknown attrs to report not found")
	}
}

func TestItemListing_Glance_PrefersInStock(t *testing.T) {
	outOfStock := testVariant(t, "01000000", false, 24.99)
	inStock := testVariant(t, "02000000", true, 26.99)
	listing := testListing(t, outOfStock, inStock)

	glance, err := listing.Glance(unit.CurrencyUSD)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if glance.Attrs != inStock.Attrs {
		t.Errorf("expected the in-stock variant, got attrs %s", glance.Attrs.Hex())
	}
	if !glance.InStock {
		t.Error("expected glance to report in stock")
	}
	if !glance.Price.Equal(unit.MustPrice(26.99)) {
		t.Errorf("expected price 26.99, got %s", glance.Price)
	}
}

func TestItemListing_Glance_FallsBackToOutOfStock(t *testing.T) {
	first := testVariant(t, "01000000", false, 24.99)
	second := testVariant(t, "02000000", false, 26.99)
	listing := testListing(t, first, second)

	glance, err := listing.Glance(unit.CurrencyUSD)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if glance.Attrs != first.Attrs {
		t.Errorf("expected the first priced variant, got attrs %s", glance.Attrs.Hex())
	}
	if glance.InStock {
		t.Error("expected glance to report out of stock")
	}
}

func TestItemListing_Glance_UnpricedCurrency(t *testing.T) {
	listing := testListing(t, testVariant(t, "01000000", true, 24.99))

	if _, err := listing.Glance(unit.CurrencyJPY); !errors.Is(err, domain.ErrPriceUnavailable) {
		t.Errorf("expected ErrPriceUnavailable, got %v", err)
	}
}

func TestItemListing_Glance_DisplayTags(t *testing.T) {
	tag, err := domain.NewTag("mid century")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	listing, err := domain.NewItemListing(
		mustStoreID(t, "cozy-store"), mustItemID(t, "wiggle-stool"),
		"Wiggle Stool", "Cozy Store",
		[]domain.Tag{tag},
		[]domain.AttrVariant{testVariant(t, "00000000", true, 24.99)},
		nil,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	glance, err := listing.Glance(unit.CurrencyUSD)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(glance.Tags) != 1 || glance.Tags[0] != "Mid Century" {
		t.Errorf("expected title-case tags, got %v", glance.Tags)
	}
}

// Helpers

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

func testVariant(t *testing.T, attrKeys string, inStock bool, usd float64) domain.AttrVariant {
	t.Helper()
	attrs, err := types.ParseAttrKeys(attrKeys)
	if err != nil {
		t.Fatalf("invalid attr keys %q: %v", attrKeys, err)
	}
	return domain.AttrVariant{
		Attrs:   attrs,
		InStock: inStock,
		Prices:  map[unit.Currency]unit.Price{unit.CurrencyUSD: unit.MustPrice(usd)},
		Image:   media.Data{Src: media.CIDSrc("bafybeigdyrstool"), Mime: media.ImagePNG},
	}
}

func testListing(t *testing.T, variants ...domain.AttrVariant) *domain.ItemListing {
	t.Helper()
	listing, err := domain.NewItemListing(
		mustStoreID(t, "cozy-store"), mustItemID(t, "wiggle-stool"),
		"Wiggle Stool", "Cozy Store",
		nil, variants, nil,
	)
	if err != nil {
		t.Fatalf("failed to create listing: %v", err)
	}
	return listing
}
