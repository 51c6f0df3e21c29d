package service

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"

	"github.com/alexanderramin/woodgenie/internal/llm"
)

var (
	ErrNoImage          = errors.New("no image given")
	ErrImageTooLarge    = errors.New("image too large")
	ErrUnsupportedImage = errors.New("file is not a supported image")
)

// DefaultMaxImageBytes caps image files read from disk.
const DefaultMaxImageBytes int64 = 10 << 20

var shortIDPattern = regexp.MustCompile(`(?i)^WG\d{4,}$`)

func looksLikeShortID(s string) bool {
	return shortIDPattern.MatchString(s)
}

func formatShortID(seq int) string {
	return fmt.Sprintf("WG%04d", seq)
}

// loadedImage is an image ready to hand to the acquisition service.
type loadedImage struct {
	DataURI  string
	MimeType string
	SHA256   string
}

// readImageFile reads at most maxBytes from path and sniffs its type.
func readImageFile(path string, maxBytes int64) (*loadedImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%s is over %d bytes: %w", path, maxBytes, ErrImageTooLarge)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s is empty: %w", path, ErrUnsupportedImage)
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return nil, fmt.Errorf("%s looks like %s: %w", path, mime, ErrUnsupportedImage)
	}
	return &loadedImage{
		DataURI:  llm.DataURI(mime, data),
		MimeType: mime,
		SHA256:   sha256Hex(data),
	}, nil
}

// imageFromDataURI accepts an already encoded image. Malformed input is
// passed through so the acquisition service can fall back on it.
func imageFromDataURI(uri string) *loadedImage {
	img := &loadedImage{DataURI: uri}
	if parsed, err := llm.ParseImage(uri); err == nil {
		img.MimeType = parsed.MimeType
		img.SHA256 = sha256Hex(parsed.Data)
	} else {
		img.SHA256 = sha256Hex([]byte(uri))
	}
	return img
}

func sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
