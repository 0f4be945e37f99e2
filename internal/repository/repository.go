package repository

import (
	"errors"

	"latinvocab/internal/domain"
)

// Storage keys, kept compatible with the browser version of the app
const (
	KeyVocabulary = "latin-vocabs-v2"
	KeyAuth       = "app-auth"
)

// ErrCorruptData is returned when a stored value cannot be decoded
var ErrCorruptData = errors.New("stored data is corrupt")

// KeyValueStore defines durable per-user key-value operations
type KeyValueStore interface {
	Get(userID int64, key string) (string, bool, error)
	Set(userID int64, key, value string) error
	Delete(userID int64, key string) error
}

// VocabRepository defines vocabulary persistence
type VocabRepository interface {
	Load(userID int64) ([]domain.Vocab, error)
	Save(userID int64, vocabs []domain.Vocab) error
}

// AuthRepository defines access flag persistence
type AuthRepository interface {
	IsAuthenticated(userID int64) (bool, error)
	SetAuthenticated(userID int64) error
	ClearAuthenticated(userID int64) error
}
