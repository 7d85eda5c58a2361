package ident

import (
	"errors"
	"fmt"
)

// Validation failures returned by the Parse and FromBytes constructors.
var (
	ErrStringTooShort        = errors.New("identifier has fewer characters than the minimum")
	ErrStringTooLong         = errors.New("identifier has more characters than the maximum")
	ErrBytesTooShort         = errors.New("identifier byte representation is shorter than the minimum")
	ErrBytesTooLong          = errors.New("identifier byte representation is longer than the maximum")
	ErrInvalidHyphenPosition = errors.New("identifier cannot begin or end with a hyphen")
)

// InvalidCharacterError reports a character outside the identifier alphabet.
type InvalidCharacterError struct {
	Char rune
}

func (e InvalidCharacterError) Error() string {
	return fmt.Sprintf("invalid character %q in identifier", e.Char)
}
