// Package types provides shared value objects and type definitions
// used across multiple modules (Shared Kernel pattern).
package types

import (
	"github.com/anthol-dao/anthol-common/modules/shared/ident"
)

// MarketID identifies a market. Distinct wrapper types over the catalog
// identifier prevent mixing up the ID kinds at compile time; all of them
// inherit the codec's parsing, serialization and storage behavior.
type MarketID struct {
	ident.CatalogID
}

func ParseMarketID(s string) (MarketID, error) {
	id, err := ident.ParseCatalogID(s)
	if err != nil {
		return MarketID{}, err
	}
	return MarketID{CatalogID: id}, nil
}

func MarketIDFromBytes(b []byte) (MarketID, error) {
	id, err := ident.CatalogIDFromBytes(b)
	if err != nil {
		return MarketID{}, err
	}
	return MarketID{CatalogID: id}, nil
}

// StoreID identifies a store within a market.
type StoreID struct {
	ident.CatalogID
}

func ParseStoreID(s string) (StoreID, error) {
	id, err := ident.ParseCatalogID(s)
	if err != nil {
		return StoreID{}, err
	}
	return StoreID{CatalogID: id}, nil
}

func StoreIDFromBytes(b []byte) (StoreID, error) {
	id, err := ident.CatalogIDFromBytes(b)
	if err != nil {
		return StoreID{}, err
	}
	return StoreID{CatalogID: id}, nil
}

// ItemID identifies an item within a store.
type ItemID struct {
	ident.CatalogID
}

func ParseItemID(s string) (ItemID, error) {
	id, err := ident.ParseCatalogID(s)
	if err != nil {
		return ItemID{}, err
	}
	return ItemID{CatalogID: id}, nil
}

func ItemIDFromBytes(b []byte) (ItemID, error) {
	id, err := ident.CatalogIDFromBytes(b)
	if err != nil {
		return ItemID{}, err
	}
	return ItemID{CatalogID: id}, nil
}
