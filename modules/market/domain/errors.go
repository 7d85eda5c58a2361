package domain

import "errors"

var (
	ErrMarketNotFound      = errors.New("market not found")
	ErrMarketNameRequired  = errors.New("market name is required")
	ErrListingNotFound     = errors.New("listing not found")
	ErrListingNameRequired = errors.New("item name is required")
	ErrNoAttrVariants      = errors.New("listing has no attribute variants")
	ErrPriceUnavailable    = errors.New("no price listed for the currency")

	// Tag errors
	ErrTagEmpty             = errors.New("tag is empty")
	ErrTagTooLong           = errors.New("tag must be at most 48 characters")
	ErrTagInvalidCharacters = errors.New("tag contains invalid characters")
)
