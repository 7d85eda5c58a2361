package media

import "strings"

// Mime is a media type split into its top-level type and subtype. Unknown
// types parse without error; the catalog below only names the ones the
// marketplace renders natively.
type Mime struct {
	Type    string `json:"type"`
	Subtype string `json:"subtype"`
}

// Image subtypes.
var (
	ImageGIF  = Mime{"image", "gif"}
	ImageJPEG = Mime{"image", "jpeg"}
	ImagePNG  = Mime{"image", "png"}
	ImageSVG  = Mime{"image", "svg+xml"}
	ImageTIFF = Mime{"image", "tiff"}
	ImageWebP = Mime{"image", "webp"}
	ImageAPNG = Mime{"image", "apng"}
	ImageAVIF = Mime{"image", "avif"}
	ImageHEIF = Mime{"image", "heif"}
)

// Video subtypes.
var (
	VideoMP4       = Mime{"video", "mp4"}
	VideoAV1       = Mime{"video", "AV1"}
	VideoMPEG      = Mime{"video", "mpeg"}
	VideoOgg       = Mime{"video", "ogg"}
	VideoQuicktime = Mime{"video", "quicktime"}
	VideoWebM      = Mime{"video", "webm"}
	VideoVP8       = Mime{"video", "VP8"}
	VideoVP9       = Mime{"video", "VP9"}
	VideoH264      = Mime{"video", "H264"}
	VideoH265      = Mime{"video", "H265"}
)

// Audio subtypes.
var (
	AudioAAC  = Mime{"audio", "aac"}
	AudioMP3  = Mime{"audio", "mp3"}
	AudioOgg  = Mime{"audio", "ogg"}
	AudioWAV  = Mime{"audio", "wav"}
	AudioWebM = Mime{"audio", "webm"}
	AudioFLAC = Mime{"audio", "flac"}
	AudioALAC = Mime{"audio", "alac"}
	AudioAIFF = Mime{"audio", "aiff"}
	AudioOpus = Mime{"audio", "opus"}
	AudioMP4  = Mime{"audio", "mp4"}
)

// ParseMime splits a "type/subtype" string. A string without a slash becomes
// a bare subtype with an empty type.
func ParseMime(s string) Mime {
	if t, sub, ok := strings.Cut(s, "/"); ok {
		return Mime{Type: t, Subtype: sub}
	}
	return Mime{Subtype: s}
}

// IsImage reports whether the top-level type is image.
func (m Mime) IsImage() bool { return m.Type == "image" }

// IsVideo reports whether the top-level type is video.
func (m Mime) IsVideo() bool { return m.Type == "video" }

// IsAudio reports whether the top-level type is audio.
func (m Mime) IsAudio() bool { return m.Type == "audio" }

func (m Mime) String() string {
	if m.Type == "" {
		return m.Subtype
	}
	return m.Type + "/" + m.Subtype
}
