// Package ident implements the compact fixed-capacity identifier codec shared
// by every module.
//
// Two identifier kinds exist. CatalogID names markets, stores and items: up to
// 21 characters drawn from lower-case letters, digits and interior hyphens,
// packed as 6-bit codes into 16 bytes. ActorID names account handles: up to 24
// characters, additionally allowing underscore and letters of either case; the
// packed region is prefixed by a 3-byte bitmap recording which characters were
// upper-case, so the display form preserves case while equality, ordering and
// storage keys ignore it.
//
// Both kinds carry two serialization surfaces. The text surface
// (MarshalText/UnmarshalText, used by JSON) is the canonical display string.
// The binary surface (MarshalBinary/UnmarshalBinary, used by the CBOR codec
// and the bounded store) is the packed representation with trailing zero bytes
// trimmed. Either surface round-trips to the same value.
package ident
