package domain

import (
	"strings"

	"github.com/anthol-dao/anthol-common/modules/shared/types"
)

// Market is a named catalog that stores list their items into.
type Market struct {
	id   types.MarketID
	name string
}

// NewMarket creates a validated Market.
func NewMarket(id types.MarketID, name string) (*Market, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMarketNameRequired
	}
	return &Market{id: id, name: name}, nil
}

// ReconstituteMarket rebuilds a market from persistence.
func ReconstituteMarket(id types.MarketID, name string) *Market {
	return &Market{id: id, name: name}
}

func (m *Market) ID() types.MarketID { return m.id }
func (m *Market) Name() string       { return m.name }

// Rename changes the market's display name.
func (m *Market) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrMarketNameRequired
	}
	m.name = name
	return nil
}
