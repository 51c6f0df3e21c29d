package llm

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
)

// DefaultImageMIME is assumed when the input carries no data URI header.
const DefaultImageMIME = "image/jpeg"

// Parameters such as ;name=photo.png may sit between the MIME type and
// ;base64.
var dataURIPattern = regexp.MustCompile(`(?s)^data:([^;,]+)(?:;[^;,]*)*?;base64,(.+)$`)

// supportedImageMIME lists the formats vision models accept.
var supportedImageMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// SupportedImageMIME reports whether a vision model accepts mimeType.
func SupportedImageMIME(mimeType string) bool {
	return supportedImageMIME[mimeType]
}

// Image is a decoded image ready to send to a vision model.
type Image struct {
	MimeType string
	Base64   string // canonical padded encoding of Data
	Data     []byte
}

// ParseImage accepts either a data URI of the form
// data:<mime>;base64,<payload> or a bare base64 payload, which is assumed
// to be a JPEG. The payload must decode as base64 and the MIME type must be
// one of jpeg, png, gif or webp.
func ParseImage(input string) (Image, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Image{}, fmt.Errorf("%w: empty image", ErrInvalidImage)
	}

	img := Image{MimeType: DefaultImageMIME, Base64: trimmed}
	if m := dataURIPattern.FindStringSubmatch(trimmed); m != nil {
		img.MimeType = strings.ToLower(strings.TrimSpace(m[1]))
		img.Base64 = strings.TrimSpace(m[2])
	}
	if img.MimeType == "image/jpg" {
		img.MimeType = DefaultImageMIME
	}
	if !SupportedImageMIME(img.MimeType) {
		return Image{}, fmt.Errorf("%w: unsupported type %s", ErrInvalidImage, img.MimeType)
	}

	data, err := decodeBase64(img.Base64)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if len(data) == 0 {
		return Image{}, fmt.Errorf("%w: empty payload", ErrInvalidImage)
	}
	img.Data = data
	img.Base64 = base64.StdEncoding.EncodeToString(data)
	return img, nil
}

// DataURI encodes raw bytes as a base64 data URI.
func DataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, s)
	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}
