package ident

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/anthol-dao/anthol-common/modules/shared/stablestore"
)

// Catalog identifier limits. The byte maximum is the packed size of a
// maximum-length identifier: ceil(21 * 6 / 8).
const (
	CatalogMinLength = 3
	CatalogMaxLength = 21
	CatalogMinBytes  = 2
	CatalogMaxBytes  = 16
)

// CatalogID is the identifier of a market, store or item. The text form is
// case-insensitive: upper-case ASCII letters are folded before validation and
// the canonical form is lower-case. The zero value is not a valid identifier.
type CatalogID [CatalogMaxBytes]byte

// ParseCatalogID validates and packs a catalog identifier. Input is trimmed
// of surrounding whitespace and ASCII-lowercased; it must be 3 to 21
// characters of letters, digits and hyphens, with no hyphen in first or last
// position.
func ParseCatalogID(s string) (CatalogID, error) {
	s = strings.TrimSpace(s)

	n := utf8.RuneCountInString(s)
	if n > CatalogMaxLength {
		return CatalogID{}, ErrStringTooLong
	}
	if n < CatalogMinLength {
		return CatalogID{}, ErrStringTooShort
	}
	if s[0] == '-' || s[len(s)-1] == '-' {
		return CatalogID{}, ErrInvalidHyphenPosition
	}

	var id CatalogID
	index := 0
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		code, ok := lowerCode(r)
		if !ok {
			return CatalogID{}, InvalidCharacterError{Char: r}
		}
		packCode(id[:], 0, index, code)
		index++
	}
	return id, nil
}

// CatalogIDFromBytes reconstructs an identifier from its trimmed byte
// representation, as produced by Bytes or MarshalBinary.
func CatalogIDFromBytes(b []byte) (CatalogID, error) {
	if len(b) < CatalogMinBytes {
		return CatalogID{}, ErrBytesTooShort
	}
	if len(b) > CatalogMaxBytes {
		return CatalogID{}, ErrBytesTooLong
	}
	var id CatalogID
	copy(id[:], b)
	return id, nil
}

// MustCatalogIDFromBytes is CatalogIDFromBytes for bytes whose length is
// already known to be in range. It panics otherwise, so it must never see
// untrusted input.
func MustCatalogIDFromBytes(b []byte) CatalogID {
	id, err := CatalogIDFromBytes(b)
	if err != nil {
		panic("ident: catalog identifier bytes out of range")
	}
	return id
}

// String renders the canonical lower-case text form.
func (id CatalogID) String() string {
	var sb strings.Builder
	sb.Grow(CatalogMaxLength)
	for i := 0; i < CatalogMaxLength; i++ {
		code := unpackCode(id[:], 0, i)
		if code == 0 {
			break
		}
		sb.WriteByte(codeChar(code, false))
	}
	return sb.String()
}

// Bytes returns the packed representation with trailing zero bytes dropped.
// The result is always CatalogMinBytes to CatalogMaxBytes long.
func (id CatalogID) Bytes() []byte {
	for i := CatalogMinBytes; i < CatalogMaxBytes; i++ {
		if id[i] == 0 {
			return id[:i]
		}
	}
	return id[:]
}

// IsZero reports whether id is the zero value.
func (id CatalogID) IsZero() bool {
	return id == CatalogID{}
}

// Compare orders identifiers over their packed regions: a stable total order
// consistent with equality and with StoreKey iteration order. It is not
// lexicographic order of the text forms.
func (id CatalogID) Compare(other CatalogID) int {
	return bytes.Compare(id[:], other[:])
}

// MarshalText implements encoding.TextMarshaler using the canonical string.
func (id CatalogID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseCatalogID.
func (id *CatalogID) UnmarshalText(text []byte) error {
	parsed, err := ParseCatalogID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler using the trimmed bytes.
func (id CatalogID) MarshalBinary() ([]byte, error) {
	return id.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler via
// CatalogIDFromBytes.
func (id *CatalogID) UnmarshalBinary(data []byte) error {
	decoded, err := CatalogIDFromBytes(data)
	if err != nil {
		return err
	}
	*id = decoded
	return nil
}

// Bound declares the serialized-size contract for bounded stores.
func (CatalogID) Bound() stablestore.Bound {
	return stablestore.Bound{MaxSize: CatalogMaxBytes, IsFixedSize: false}
}

// StoreKey returns the canonical comparison key: the full zero-padded packed
// region. Equal identifiers produce equal keys and key order matches Compare.
func (id CatalogID) StoreKey() string {
	return string(id[:])
}
