package domain

import "errors"

var (
	ErrBasketNotFound    = errors.New("basket not found")
	ErrBasketNotDraft    = errors.New("basket is not in draft status")
	ErrBasketEmpty       = errors.New("basket has no items")
	ErrItemNotFound      = errors.New("item not found in basket")
	ErrInvalidCount      = errors.New("count must be positive")
	ErrInvalidItemType   = errors.New("item type must be physical or digital")
	ErrInsufficientStock = errors.New("count exceeds available stock")
	ErrCurrencyMismatch  = errors.New("item currency does not match basket currency")
)
