package domain

import (
	"github.com/anthol-dao/anthol-common/modules/shared/media"
)

// ImageKind discriminates profile image storage.
type ImageKind string

const (
	ImageNone ImageKind = "none"
	ImageCID  ImageKind = "cid"
	ImageBlob ImageKind = "blob"
)

// Image is the account's profile image: absent, pinned on IPFS by CID, or
// stored inline as a blob.
type Image struct {
	kind ImageKind
	cid  string
	mime media.Mime
	blob []byte
}

// NoImage returns the absent image.
func NoImage() Image {
	return Image{kind: ImageNone}
}

// NewCIDImage creates an IPFS-pinned image reference.
func NewCIDImage(cid string) (Image, error) {
	if cid == "" {
		return Image{}, ErrImageCIDRequired
	}
	return Image{kind: ImageCID, cid: cid}, nil
}

// NewBlobImage creates an inline image.
func NewBlobImage(mime media.Mime, data []byte) (Image, error) {
	if len(data) == 0 {
		return Image{}, ErrImageBlobRequired
	}
	blob := make([]byte, len(data))
	copy(blob, data)
	return Image{kind: ImageBlob, mime: mime, blob: blob}, nil
}

func (i Image) Kind() ImageKind  { return i.kind }
func (i Image) CID() string      { return i.cid }
func (i Image) Mime() media.Mime { return i.mime }

// Blob returns a copy of the inline image bytes.
func (i Image) Blob() []byte {
	if i.blob == nil {
		return nil
	}
	blob := make([]byte, len(i.blob))
	copy(blob, i.blob)
	return blob
}

// URL returns a fetchable URL for CID images. Blob images are served inline
// and absent images have no URL; both report false.
func (i Image) URL() (string, bool) {
	if i.kind == ImageCID {
		return media.CIDSrc(i.cid).ToURL(), true
	}
	return "", false
}

func (i Image) IsZero() bool {
	return i.kind == "" || i.kind == ImageNone
}
