// Package gateway defines the contract with the generative AI backend.
//
// Backends live in subpackages (gemini, openai). They only build requests and
// decode responses; callers decide what to do with failures.
package gateway

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"latinvocab/internal/domain"
)

var (
	// ErrService wraps any failure of the backend call itself
	ErrService = errors.New("ai service error")
	// ErrInvalidResponse is returned when structured output does not match the schema
	ErrInvalidResponse = errors.New("invalid ai response")
	// ErrEmptyText is returned when there is nothing to translate
	ErrEmptyText = errors.New("text cannot be empty")
	// ErrEmptyImage is returned when an image has no data
	ErrEmptyImage = errors.New("image cannot be empty")
)

// Gateway is the AI facade used by the services
type Gateway interface {
	TranslateText(ctx context.Context, text string, vocabs []domain.Vocab) (string, error)
	ExtractVocab(ctx context.Context, image Image) ([]domain.Vocab, error)
	ExtractText(ctx context.Context, image Image) (string, error)
}

const defaultMIMEType = "image/jpeg"

// Image is an encoded picture ready to be sent inline
type Image struct {
	Data     []byte
	MIMEType string
}

// NewImage creates an image, defaulting the MIME type to JPEG
func NewImage(data []byte, mimeType string) Image {
	if mimeType == "" {
		mimeType = defaultMIMEType
	}
	return Image{Data: data, MIMEType: mimeType}
}

// DataURL returns the image as a base64 data URL
func (i Image) DataURL() string {
	return "data:" + i.MIME() + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// MIME returns the MIME type, JPEG when unset
func (i Image) MIME() string {
	if i.MIMEType == "" {
		return defaultMIMEType
	}
	return i.MIMEType
}

// Validate checks that the image carries data
func (i Image) Validate() error {
	if len(i.Data) == 0 {
		return ErrEmptyImage
	}
	return nil
}

// ParseDataURL decodes a "data:<mime>;base64,<payload>" string
func ParseDataURL(s string) (Image, error) {
	header, payload, ok := strings.Cut(s, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return Image{}, fmt.Errorf("invalid data url")
	}

	mimeType := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Image{}, fmt.Errorf("invalid data url payload: %w", err)
	}

	img := NewImage(data, mimeType)
	if err := img.Validate(); err != nil {
		return Image{}, err
	}
	return img, nil
}
