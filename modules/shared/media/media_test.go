package media_test

import (
	"testing"

	"github.com/anthol-dao/anthol-common/modules/shared/media"
)

func TestSrcToURL(t *testing.T) {
	direct := media.URLSrc("https://cdn.example.com/a.png")
	if got := direct.ToURL(); got != "https://cdn.example.com/a.png" {
		t.Errorf("got %q", got)
	}

	cid := media.CIDSrc("bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi")
	want := media.IPFSGateway + "bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi"
	if got := cid.ToURL(); got != want {
		t.Errorf("got %q, want gateway URL", got)
	}
}

func TestParseMime(t *testing.T) {
	if got := media.ParseMime("image/svg+xml"); got != media.ImageSVG {
		t.Errorf("got %+v", got)
	}
	if got := media.ParseMime("video/mp4"); got != media.VideoMP4 {
		t.Errorf("got %+v", got)
	}
	odd := media.ParseMime("x-custom")
	if odd.Type != "" || odd.Subtype != "x-custom" {
		t.Errorf("got %+v", odd)
	}
	if got := media.ImageJPEG.String(); got != "image/jpeg" {
		t.Errorf("got %q", got)
	}
	if !media.AudioFLAC.IsAudio() || media.AudioFLAC.IsImage() {
		t.Error("type predicates disagree")
	}
}
