package unit

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// Price arithmetic errors.
var (
	ErrInvalidPrice    = errors.New("price must be a finite number")
	ErrNegativePrice   = errors.New("price cannot be negative")
	ErrNegativeScalar  = errors.New("price cannot be scaled by a negative value")
	ErrZeroDenominator = errors.New("price cannot be divided by zero")
)

// Price is a non-negative monetary amount. Arithmetic runs on exact decimals
// (ratios on exact rationals), never on floats, so repeated operations do not
// accumulate rounding error. The zero value is a zero price.
type Price struct {
	amount decimal.Decimal
}

// NewPrice builds a Price from a floating-point amount. NaN, infinities and
// negative values are rejected.
func NewPrice(amount float64) (Price, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Price{}, ErrInvalidPrice
	}
	if amount < 0 {
		return Price{}, ErrNegativePrice
	}
	return Price{amount: decimal.NewFromFloat(amount)}, nil
}

// MustPrice is NewPrice for amounts known valid at compile time, typically
// literals in tests and fixtures. It panics on invalid input.
func MustPrice(amount float64) Price {
	p, err := NewPrice(amount)
	if err != nil {
		panic(fmt.Sprintf("unit: invalid price %v: %v", amount, err))
	}
	return p
}

// PriceFromDecimal builds a Price from an exact decimal amount.
func PriceFromDecimal(amount decimal.Decimal) (Price, error) {
	if amount.IsNegative() {
		return Price{}, ErrNegativePrice
	}
	return Price{amount: amount}, nil
}

// Float64 returns the amount as a float, possibly rounded.
func (p Price) Float64() float64 {
	f, _ := p.amount.Float64()
	return f
}

// Decimal returns the exact amount.
func (p Price) Decimal() decimal.Decimal {
	return p.amount
}

// Rat returns the exact amount as a rational number.
func (p Price) Rat() *big.Rat {
	return p.amount.Rat()
}

// Add returns p + other.
func (p Price) Add(other Price) Price {
	return Price{amount: p.amount.Add(other.amount)}
}

// Sub returns p - other, floored at zero: a subtraction that would go
// negative yields a zero price instead.
func (p Price) Sub(other Price) Price {
	result := p.amount.Sub(other.amount)
	if result.IsNegative() {
		return Price{}
	}
	return Price{amount: result}
}

// MulDecimal scales the price by a non-negative decimal factor.
func (p Price) MulDecimal(scalar decimal.Decimal) (Price, error) {
	if scalar.IsNegative() {
		return Price{}, ErrNegativeScalar
	}
	return Price{amount: p.amount.Mul(scalar)}, nil
}

// MulFloat scales the price by a non-negative float factor.
func (p Price) MulFloat(scalar float64) (Price, error) {
	if math.IsNaN(scalar) || math.IsInf(scalar, 0) {
		return Price{}, ErrInvalidPrice
	}
	if scalar < 0 {
		return Price{}, ErrNegativeScalar
	}
	return Price{amount: p.amount.Mul(decimal.NewFromFloat(scalar))}, nil
}

// ratPrecision is the decimal precision used when a rational result does not
// terminate (30 * 1/3 stays exact; 10 * 1/3 rounds here).
const ratPrecision = 16

// MulRat scales the price by a non-negative rational factor. The
// multiplication itself is exact; only the conversion back to decimal rounds,
// and only for non-terminating results.
func (p Price) MulRat(scalar *big.Rat) (Price, error) {
	if scalar.Sign() < 0 {
		return Price{}, ErrNegativeScalar
	}
	result := new(big.Rat).Mul(p.Rat(), scalar)
	return Price{amount: decimal.NewFromBigRat(result, ratPrecision)}, nil
}

// DivRat divides the price by a positive rational factor.
func (p Price) DivRat(scalar *big.Rat) (Price, error) {
	switch {
	case scalar.Sign() < 0:
		return Price{}, ErrNegativeScalar
	case scalar.Sign() == 0:
		return Price{}, ErrZeroDenominator
	}
	result := new(big.Rat).Quo(p.Rat(), scalar)
	return Price{amount: decimal.NewFromBigRat(result, ratPrecision)}, nil
}

// Ratio returns p / other as an exact rational, for proportional splits and
// discount math that must not round.
func (p Price) Ratio(other Price) (*big.Rat, error) {
	if other.IsZero() {
		return nil, ErrZeroDenominator
	}
	return new(big.Rat).Quo(p.Rat(), other.Rat()), nil
}

// IsZero reports whether the amount is zero.
func (p Price) IsZero() bool {
	return p.amount.IsZero()
}

// Equal reports whether two prices hold the same amount.
func (p Price) Equal(other Price) bool {
	return p.amount.Equal(other.amount)
}

// Cmp compares amounts: -1 if p < other, 0 if equal, 1 if p > other.
func (p Price) Cmp(other Price) int {
	return p.amount.Cmp(other.amount)
}

// String renders the amount with two decimal places.
func (p Price) String() string {
	return p.amount.StringFixed(2)
}

// MarshalJSON encodes the amount as a plain JSON number.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.amount.String()), nil
}

// UnmarshalJSON accepts a JSON number (or numeric string) and rejects
// negative amounts.
func (p *Price) UnmarshalJSON(data []byte) error {
	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(data); err != nil {
		return err
	}
	parsed, err := PriceFromDecimal(amount)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalBinary encodes the exact decimal for CBOR and stored records.
func (p Price) MarshalBinary() ([]byte, error) {
	return p.amount.MarshalBinary()
}

// UnmarshalBinary decodes a stored decimal, rejecting negative amounts.
func (p *Price) UnmarshalBinary(data []byte) error {
	var amount decimal.Decimal
	if err := amount.UnmarshalBinary(data); err != nil {
		return err
	}
	parsed, err := PriceFromDecimal(amount)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
