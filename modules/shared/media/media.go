// Package media describes where a piece of item or profile media lives and
// what it is: a source (direct URL or IPFS CID), a MIME type and alt text.
package media

// IPFSGateway resolves content identifiers to fetchable URLs.
const IPFSGateway = "https://ipfs.io/ipfs/"

// SrcKind discriminates media sources.
type SrcKind string

const (
	SrcURL SrcKind = "url"
	SrcCID SrcKind = "cid"
)

// Src locates a piece of media, either by direct URL or by IPFS CID.
type Src struct {
	Kind  SrcKind `json:"kind"`
	Value string  `json:"value"`
}

// URLSrc builds a direct-URL source.
func URLSrc(url string) Src {
	return Src{Kind: SrcURL, Value: url}
}

// CIDSrc builds an IPFS content-identifier source.
func CIDSrc(cid string) Src {
	return Src{Kind: SrcCID, Value: cid}
}

// ToURL returns a fetchable URL, routing CIDs through the IPFS gateway.
func (s Src) ToURL() string {
	if s.Kind == SrcCID {
		return IPFSGateway + s.Value
	}
	return s.Value
}

// IsZero reports whether the source is unset.
func (s Src) IsZero() bool {
	return s == Src{}
}

// Data is a displayable piece of media.
type Data struct {
	Src  Src    `json:"src"`
	Mime Mime   `json:"mime"`
	Alt  string `json:"alt,omitempty"`
}

// DataWithCaption pairs media with a caption, for listing galleries.
type DataWithCaption struct {
	Data    Data   `json:"data"`
	Caption string `json:"caption,omitempty"`
}
