package types

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/anthol-dao/anthol-common/modules/shared/stablestore"
)

// AttrKeys selects one variant of an item: four attribute-slot keys, one per
// axis (size, color and so on; unused slots stay zero). The numeric form is
// little-endian, so slot 0 occupies the low byte.
type AttrKeys [4]uint8

// NewAttrKeys builds the selector from its four slot keys.
func NewAttrKeys(a0, a1, a2, a3 uint8) AttrKeys {
	return AttrKeys{a0, a1, a2, a3}
}

// AttrKeysFromUint32 unpacks the numeric form.
func AttrKeysFromUint32(v uint32) AttrKeys {
	var k AttrKeys
	binary.LittleEndian.PutUint32(k[:], v)
	return k
}

// Uint32 packs the selector into its numeric form.
func (k AttrKeys) Uint32() uint32 {
	return binary.LittleEndian.Uint32(k[:])
}

// ParseAttrKeys parses the 8-digit hexadecimal form produced by Hex.
func ParseAttrKeys(s string) (AttrKeys, error) {
	if len(s) != 8 {
		return AttrKeys{}, ErrInvalidAttrKeys
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return AttrKeys{}, fmt.Errorf("%w: %q", ErrInvalidAttrKeys, s)
	}
	return AttrKeysFromUint32(uint32(v)), nil
}

// Hex renders the numeric form as 8 hexadecimal digits, suitable for URLs.
func (k AttrKeys) Hex() string {
	return fmt.Sprintf("%08x", k.Uint32())
}

// Replace returns a copy with the key at index swapped.
func (k AttrKeys) Replace(index int, key uint8) (AttrKeys, error) {
	if index < 0 || index >= len(k) {
		return AttrKeys{}, ErrAttrIndexOutOfRange
	}
	k[index] = key
	return k, nil
}

func (k AttrKeys) String() string {
	return fmt.Sprintf("%v", [4]uint8(k))
}

// MarshalBinary encodes the four slot keys as-is.
func (k AttrKeys) MarshalBinary() ([]byte, error) {
	return k[:], nil
}

// UnmarshalBinary decodes a 4-byte selector.
func (k *AttrKeys) UnmarshalBinary(data []byte) error {
	if len(data) != len(k) {
		return ErrInvalidAttrKeys
	}
	copy(k[:], data)
	return nil
}

// Bound declares the fixed-size storage contract.
func (AttrKeys) Bound() stablestore.Bound {
	return stablestore.Bound{MaxSize: 4, IsFixedSize: true}
}
