package ident

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/anthol-dao/anthol-common/modules/shared/stablestore"
)

// Actor identifier limits. The packed layout is a 3-byte case bitmap followed
// by an 18-byte data region (24 characters at 6 bits each). The byte minimum
// covers the bitmap plus a minimum-length identifier.
const (
	ActorMinLength = 3
	ActorMaxLength = 24

	actorCaseMapSize = 3
	actorDataSize    = 18

	ActorMinBytes = actorCaseMapSize + 3
	ActorMaxBytes = actorCaseMapSize + actorDataSize
)

// ActorID is an account handle. The text form allows letters of either case,
// digits, hyphens and underscores. Letter codes are stored case-folded; bit i
// of the leading bitmap records that character i was upper-case, so the
// display form keeps the case the handle was written with while comparison
// ignores it.
//
// The == operator on ActorID includes the bitmap and therefore distinguishes
// case. Use Equal, Compare or Key for the case-insensitive identity the rest
// of the system relies on.
type ActorID [ActorMaxBytes]byte

// ActorKey is the canonical comparison key of an ActorID: the packed data
// region with the case bitmap stripped. It is valid as a map key; two handles
// that differ only in case produce the same ActorKey.
type ActorKey [actorDataSize]byte

// ParseActorID validates and packs an actor identifier. Input is trimmed of
// surrounding whitespace and must be 3 to 24 characters of letters (either
// case), digits, hyphens and underscores.
func ParseActorID(s string) (ActorID, error) {
	s = strings.TrimSpace(s)

	n := utf8.RuneCountInString(s)
	if n < ActorMinLength {
		return ActorID{}, ErrStringTooShort
	}
	if n > ActorMaxLength {
		return ActorID{}, ErrStringTooLong
	}

	var id ActorID
	index := 0
	for _, r := range s {
		var code byte
		switch {
		case r >= 'a' && r <= 'z':
			code = byte(r) - letterOffset
		case r >= 'A' && r <= 'Z':
			id[index/8] |= 1 << (index % 8)
			code = byte(r) - upperOffset
		case r >= '0' && r <= '9':
			code = byte(r) - digitOffset
		case r == '-':
			code = codeHyphen
		case r == '_':
			code = codeUnderscore
		default:
			return ActorID{}, InvalidCharacterError{Char: r}
		}
		packCode(id[:], actorCaseMapSize, index, code)
		index++
	}
	return id, nil
}

// ActorIDFromBytes reconstructs an identifier from its trimmed byte
// representation, as produced by Bytes or MarshalBinary.
func ActorIDFromBytes(b []byte) (ActorID, error) {
	if len(b) < ActorMinBytes {
		return ActorID{}, ErrBytesTooShort
	}
	if len(b) > ActorMaxBytes {
		return ActorID{}, ErrBytesTooLong
	}
	var id ActorID
	copy(id[:], b)
	return id, nil
}

// MustActorIDFromBytes is ActorIDFromBytes for bytes whose length is already
// known to be in range. It panics otherwise, so it must never see untrusted
// input.
func MustActorIDFromBytes(b []byte) ActorID {
	id, err := ActorIDFromBytes(b)
	if err != nil {
		panic("ident: actor identifier bytes out of range")
	}
	return id
}

// String renders the text form with the original case restored from the
// bitmap.
func (id ActorID) String() string {
	var sb strings.Builder
	sb.Grow(ActorMaxLength)
	for i := 0; i < ActorMaxLength; i++ {
		code := unpackCode(id[:], actorCaseMapSize, i)
		if code == 0 {
			break
		}
		upper := id[i/8]>>(i%8)&1 == 1
		sb.WriteByte(codeChar(code, upper))
	}
	return sb.String()
}

// Bytes returns the packed representation with trailing zero bytes dropped.
// The result is always ActorMinBytes to ActorMaxBytes long.
func (id ActorID) Bytes() []byte {
	for i := ActorMinBytes; i < ActorMaxBytes; i++ {
		if id[i] == 0 {
			return id[:i]
		}
	}
	return id[:]
}

// IsZero reports whether id is the zero value.
func (id ActorID) IsZero() bool {
	return id == ActorID{}
}

// Key returns the canonical comparison key, excluding the case bitmap.
func (id ActorID) Key() ActorKey {
	var key ActorKey
	copy(key[:], id[actorCaseMapSize:])
	return key
}

// Equal reports case-insensitive identity.
func (id ActorID) Equal(other ActorID) bool {
	return id.Key() == other.Key()
}

// Compare orders identifiers over their data regions, ignoring case: a
// stable total order consistent with Equal and with StoreKey iteration order.
func (id ActorID) Compare(other ActorID) int {
	return bytes.Compare(id[actorCaseMapSize:], other[actorCaseMapSize:])
}

// MarshalText implements encoding.TextMarshaler using the display string.
func (id ActorID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseActorID.
func (id *ActorID) UnmarshalText(text []byte) error {
	parsed, err := ParseActorID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler using the trimmed bytes.
func (id ActorID) MarshalBinary() ([]byte, error) {
	return id.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler via ActorIDFromBytes.
func (id *ActorID) UnmarshalBinary(data []byte) error {
	decoded, err := ActorIDFromBytes(data)
	if err != nil {
		return err
	}
	*id = decoded
	return nil
}

// Bound declares the serialized-size contract for bounded stores.
func (ActorID) Bound() stablestore.Bound {
	return stablestore.Bound{MaxSize: ActorMaxBytes, IsFixedSize: false}
}

// StoreKey returns the canonical comparison key bytes, excluding the case
// bitmap. Key order matches Compare.
func (id ActorID) StoreKey() string {
	return string(id[actorCaseMapSize:])
}
