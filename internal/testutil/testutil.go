package testutil

import (
	"latinvocab/internal/domain"
	"latinvocab/internal/gateway"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestVocabs builds pairs from alternating latin, german arguments
func NewTestVocabs(pairs ...string) []domain.Vocab {
	vocabs := make([]domain.Vocab, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		vocabs = append(vocabs, domain.Vocab{Latin: pairs[i], German: pairs[i+1]})
	}
	return vocabs
}

// NewTestImage creates a small JPEG-typed payload
func NewTestImage() gateway.Image {
	return gateway.Image{Data: []byte{0xff, 0xd8, 0xff, 0xe0}, MIMEType: "image/jpeg"}
}
