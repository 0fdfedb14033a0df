package signature

import (
	"encoding/base64"
	"errors"
	"strings"
)

const (
	MIMEPNG  = "image/png"
	MIMEJPEG = "image/jpeg"
)

var (
	ErrMalformed = errors.New("signature: malformed data URL")
	ErrNotImage  = errors.New("signature: data URL is not a PNG or JPEG image")
)

// Image is a decoded signature data URL.
type Image struct {
	MIME string
	Data []byte
}

// Format is the image type name fpdf expects.
func (i Image) Format() string {
	if i.MIME == MIMEJPEG {
		return "JPG"
	}
	return "PNG"
}

// Decode parses a base64 image data URL such as "data:image/png;base64,iVBOR...".
func Decode(dataURL string) (Image, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return Image{}, ErrMalformed
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return Image{}, ErrMalformed
	}
	mime, enc, ok := strings.Cut(meta, ";")
	if !ok || enc != "base64" {
		return Image{}, ErrMalformed
	}
	mime = strings.ToLower(mime)
	if mime == "image/jpg" {
		mime = MIMEJPEG
	}
	if mime != MIMEPNG && mime != MIMEJPEG {
		return Image{}, ErrNotImage
	}

	payload = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
			return -1
		}
		return r
	}, payload)
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return Image{}, ErrMalformed
	}

	return Image{MIME: mime, Data: data}, nil
}

func Encode(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
