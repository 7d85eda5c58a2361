// Package stablestore defines the bounded-size storage contract shared by
// persistent value types and provides an in-memory store that enforces it.
//
// A Storable declares up front, via Bound, the largest byte representation it
// will ever produce. Stores allocate and validate against that declaration,
// so a type whose serialization grows past its bound fails loudly at write
// time instead of corrupting a slot.
package stablestore

import (
	"encoding"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
)

// Bound is the serialized-size contract of a Storable. MaxSize is the largest
// byte representation the type may produce; IsFixedSize additionally promises
// the representation is always exactly MaxSize bytes.
type Bound struct {
	MaxSize     uint32
	IsFixedSize bool
}

// Unbounded is the contract of types with no declared size limit.
var Unbounded = Bound{MaxSize: math.MaxUint32, IsFixedSize: false}

// Storable is a value that can be persisted in a bounded store.
type Storable interface {
	encoding.BinaryMarshaler
	Bound() Bound
}

// Key is a Storable usable as a store key. StoreKey returns the canonical
// comparison key bytes: keys with equal StoreKey address the same entry, and
// iteration follows its lexicographic order.
type Key interface {
	Storable
	StoreKey() string
}

// Store errors.
var (
	ErrExceedsBound  = errors.New("stablestore: serialized size exceeds declared bound")
	ErrNotFixedSize  = errors.New("stablestore: fixed-size value serialized to a different size")
	ErrValueNotFound = errors.New("stablestore: value not found")
)

// Map is an in-memory bounded key-value store, safe for concurrent use.
type Map struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMap returns an empty store.
func NewMap() *Map {
	return &Map{entries: make(map[string][]byte)}
}

// Set serializes key and value, checks both against their declared bounds and
// stores the value. An existing entry under the same StoreKey is replaced.
func (m *Map) Set(key Key, value Storable) error {
	if _, err := marshalBounded(key); err != nil {
		return fmt.Errorf("key: %w", err)
	}
	encoded, err := marshalBounded(value)
	if err != nil {
		return fmt.Errorf("value: %w", err)
	}

	m.mu.Lock()
	m.entries[key.StoreKey()] = encoded
	m.mu.Unlock()
	return nil
}

// Get loads the entry under key into dst. It reports whether an entry
// existed; a decode failure on an existing entry returns (true, err).
func (m *Map) Get(key Key, dst encoding.BinaryUnmarshaler) (bool, error) {
	m.mu.RLock()
	encoded, ok := m.entries[key.StoreKey()]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := dst.UnmarshalBinary(encoded); err != nil {
		return true, err
	}
	return true, nil
}

// Contains reports whether an entry exists under key.
func (m *Map) Contains(key Key) bool {
	m.mu.RLock()
	_, ok := m.entries[key.StoreKey()]
	m.mu.RUnlock()
	return ok
}

// Delete removes the entry under key and reports whether it existed.
func (m *Map) Delete(key Key) bool {
	m.mu.Lock()
	_, ok := m.entries[key.StoreKey()]
	delete(m.entries, key.StoreKey())
	m.mu.Unlock()
	return ok
}

// Len returns the number of entries.
func (m *Map) Len() int {
	m.mu.RLock()
	n := len(m.entries)
	m.mu.RUnlock()
	return n
}

// Range calls fn for every entry in ascending StoreKey order, over a snapshot
// taken when Range is called. Iteration stops when fn returns false.
func (m *Map) Range(fn func(storeKey string, value []byte) bool) {
	m.mu.RLock()
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	values := make(map[string][]byte, len(m.entries))
	for k, v := range m.entries {
		values[k] = v
	}
	m.mu.RUnlock()

	sort.Strings(keys)
	for _, k := range keys {
		if !fn(k, values[k]) {
			return
		}
	}
}

func marshalBounded(v Storable) ([]byte, error) {
	encoded, err := v.MarshalBinary()
	if err != nil {
		return nil, err
	}
	bound := v.Bound()
	if uint64(len(encoded)) > uint64(bound.MaxSize) {
		return nil, fmt.Errorf("%w: %d > %d", ErrExceedsBound, len(encoded), bound.MaxSize)
	}
	if bound.IsFixedSize && uint32(len(encoded)) != bound.MaxSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrNotFixedSize, len(encoded), bound.MaxSize)
	}
	return encoded, nil
}
