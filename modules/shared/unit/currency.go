// Package unit holds the pricing value objects shared across modules:
// Currency and the non-negative Price amount.
package unit

import (
	"errors"
	"fmt"
)

// Currency is a currency code accepted by the marketplace. Fiat codes follow
// ISO 4217; crypto codes follow their common ticker.
type Currency string

const (
	CurrencyUSD  Currency = "USD"
	CurrencyCNY  Currency = "CNY"
	CurrencyJPY  Currency = "JPY"
	CurrencyEUR  Currency = "EUR"
	CurrencyGBP  Currency = "GBP"
	CurrencyBTC  Currency = "BTC"
	CurrencyETH  Currency = "ETH"
	CurrencyICP  Currency = "ICP"
	CurrencyUSDT Currency = "USDT"
	CurrencyUSDC Currency = "USDC"
	CurrencyFLOS Currency = "FLOS"
)

var ErrUnknownCurrency = errors.New("unknown currency code")

var knownCurrencies = map[Currency]struct{}{
	CurrencyUSD:  {},
	CurrencyCNY:  {},
	CurrencyJPY:  {},
	CurrencyEUR:  {},
	CurrencyGBP:  {},
	CurrencyBTC:  {},
	CurrencyETH:  {},
	CurrencyICP:  {},
	CurrencyUSDT: {},
	CurrencyUSDC: {},
	CurrencyFLOS: {},
}

// ParseCurrency validates a currency code.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(s)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, s)
	}
	return c, nil
}

// IsValid reports whether c is one of the accepted codes.
func (c Currency) IsValid() bool {
	_, ok := knownCurrencies[c]
	return ok
}

func (c Currency) String() string {
	return string(c)
}
