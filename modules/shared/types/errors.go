package types

import "errors"

// Sentinel errors for common validation failures.
// Define errors in the types package where the validated types live.
var (
	ErrInvalidItemKeyLength = errors.New("item key must be exactly 8 bytes")
	ErrInvalidAttrKeys      = errors.New("attribute keys must be 8 hexadecimal digits")
	ErrAttrIndexOutOfRange  = errors.New("attribute index must be 0 through 3")
)
