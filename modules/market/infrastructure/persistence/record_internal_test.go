package persistence

import (
	"testing"

	"github.com/anthol-dao/anthol-common/modules/market/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/types"
)

// The record types implement encoding.BinaryMarshaler and also serialize
// themselves through the CBOR codec, which prefers BinaryMarshaler when a
// type provides it. These tests pin that the records encode their fields
// (through the method-less aliases) rather than re-entering MarshalBinary.

func TestMarketRecord_BinaryRoundTrip(t *testing.T) {
	record := marketRecord{Version: 1, Name: "Main Market"}

	encoded, err := record.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if len(encoded) == 0 {
		t.Fatal("expected non-empty encoding")
	}

	var decoded marketRecord
	if err := decoded.UnmarshalBinary(encoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded != record {
		t.Errorf("expected %+v, got %+v", record, decoded)
	}
}

func TestListingRecord_BinaryRoundTrip(t *testing.T) {
	storeID, err := types.ParseStoreID("cozy-store")
	if err != nil {
		t.Fatalf("invalid store ID: %v", err)
	}
	itemID, err := types.ParseItemID("wiggle-stool")
	if err != nil {
		t.Fatalf("invalid item ID: %v", err)
	}
	listing, err := domain.NewItemListing(
		storeID, itemID, "Wiggle Stool", "Cozy Store",
		nil,
		[]domain.AttrVariant{{InStock: true}},
		nil,
	)
	if err != nil {
		t.Fatalf("failed to create listing: %v", err)
	}

	record, err := newListingRecord(listing)
	if err != nil {
		t.Fatalf("failed to build record: %v", err)
	}
	encoded, err := record.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded listingRecord
	if err := decoded.UnmarshalBinary(encoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded.Version != 1 {
		t.Errorf("expected version 1, got %d", decoded.Version)
	}
	restored, err := decoded.toListing(storeID, itemID)
	if err != nil {
		t.Fatalf("failed to restore listing: %v", err)
	}
	if restored.Name() != "Wiggle Stool" {
		t.Errorf("expected name Wiggle Stool, got %q", restored.Name())
	}
}
