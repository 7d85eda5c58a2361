package types

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"

	"github.com/anthol-dao/anthol-common/modules/shared/stablestore"
)

// ItemKey is the opaque per-item key that distinguishes item records sharing
// a catalog identifier. Keys are random 64-bit values; the byte form is
// big-endian so byte-ordered store iteration matches numeric order.
type ItemKey uint64

const itemKeySize = 8

// NewItemKey draws a random key.
func NewItemKey() (ItemKey, error) {
	var b [itemKeySize]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	return ItemKey(binary.BigEndian.Uint64(b[:])), nil
}

// NewItemKeys draws four independent keys in one call, for callers that
// pre-allocate attribute slots.
func NewItemKeys() ([4]ItemKey, error) {
	var b [4 * itemKeySize]byte
	if _, err := rand.Read(b[:]); err != nil {
		return [4]ItemKey{}, err
	}
	var keys [4]ItemKey
	for i := range keys {
		keys[i] = ItemKey(binary.BigEndian.Uint64(b[i*itemKeySize:]))
	}
	return keys, nil
}

// Uint64 returns the numeric value.
func (k ItemKey) Uint64() uint64 {
	return uint64(k)
}

func (k ItemKey) String() string {
	return strconv.FormatUint(uint64(k), 10)
}

// ParseItemKey parses the decimal string form.
func ParseItemKey(s string) (ItemKey, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return ItemKey(v), nil
}

// MarshalBinary encodes the key as 8 big-endian bytes.
func (k ItemKey) MarshalBinary() ([]byte, error) {
	b := make([]byte, itemKeySize)
	binary.BigEndian.PutUint64(b, uint64(k))
	return b, nil
}

// UnmarshalBinary decodes an 8-byte big-endian key.
func (k *ItemKey) UnmarshalBinary(data []byte) error {
	if len(data) != itemKeySize {
		return ErrInvalidItemKeyLength
	}
	*k = ItemKey(binary.BigEndian.Uint64(data))
	return nil
}

// Bound declares the fixed-size storage contract.
func (ItemKey) Bound() stablestore.Bound {
	return stablestore.Bound{MaxSize: itemKeySize, IsFixedSize: true}
}

// StoreKey returns the big-endian bytes; key order matches numeric order.
func (k ItemKey) StoreKey() string {
	b, _ := k.MarshalBinary()
	return string(b)
}
