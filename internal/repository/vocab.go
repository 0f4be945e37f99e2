package repository

import (
	"encoding/json"
	"fmt"

	"latinvocab/internal/domain"
)

// VocabRepo implements VocabRepository as a JSON document in a KeyValueStore
type VocabRepo struct {
	kv KeyValueStore
}

// NewVocabRepo creates a new vocabulary repository
func NewVocabRepo(kv KeyValueStore) *VocabRepo {
	return &VocabRepo{kv: kv}
}

// Load returns the stored vocabulary, nil if nothing is stored.
// Undecodable documents yield ErrCorruptData.
func (r *VocabRepo) Load(userID int64) ([]domain.Vocab, error) {
	raw, ok, err := r.kv.Get(userID, KeyVocabulary)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var vocabs []domain.Vocab
	if err := json.Unmarshal([]byte(raw), &vocabs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	return vocabs, nil
}

// Save replaces the stored vocabulary
func (r *VocabRepo) Save(userID int64, vocabs []domain.Vocab) error {
	if vocabs == nil {
		vocabs = []domain.Vocab{}
	}

	data, err := json.Marshal(vocabs)
	if err != nil {
		return fmt.Errorf("failed to encode vocabulary: %w", err)
	}
	return r.kv.Set(userID, KeyVocabulary, string(data))
}
