// Package codec fixes the serialization boundary for the whole module: JSON
// on external HTTP surfaces, deterministic CBOR for stored and internal
// payloads.
//
// Identifier types (ident.CatalogID, ident.ActorID and the wrappers over
// them) implement both encoding.TextMarshaler and encoding.BinaryMarshaler.
// JSON picks the text surface and renders the display string; the CBOR
// configuration here leaves the default BinaryMarshaler handling in place, so
// the same types serialize as byte strings holding their trimmed packed
// representation. Both surfaces decode back to the identical value.
package codec

import (
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map keys,
// smallest integer encoding, no indefinite-length items. The same logical
// value always produces identical bytes, which the bounded store relies on.
var encMode cbor.EncMode

// decMode accepts standard CBOR and ignores unknown fields, so stored records
// survive the addition of struct fields.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Any-typed targets decode maps as map[string]any rather than the
		// CBOR default map[any]any; all of our map keys are strings.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		// Identifiers stored by older writers as text strings still decode:
		// a CBOR text string routes through UnmarshalText, a byte string
		// through UnmarshalBinary.
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using the deterministic configuration.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Encoder is a CBOR stream encoder. Type alias so consumers import only this
// package, not fxamacker/cbor directly.
type Encoder = cbor.Encoder

// Decoder is a CBOR stream decoder.
type Decoder = cbor.Decoder

// RawMessage is a raw encoded CBOR value, useful for delaying decode of
// versioned record payloads.
type RawMessage = cbor.RawMessage

// NewEncoder returns a CBOR encoder writing to w with the deterministic
// configuration.
func NewEncoder(w io.Writer) *Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder returns a CBOR decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return decMode.NewDecoder(r)
}
