package gateway

import (
	"encoding/json"
	"fmt"
	"strings"

	"latinvocab/internal/domain"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// VocabRecord is one element of the structured extraction response
type VocabRecord struct {
	Latin  string `json:"la" validate:"required"`
	German string `json:"de" validate:"required"`
}

// DecodeVocabList parses a JSON array of {la, de} records.
// Any malformed record rejects the whole response.
func DecodeVocabList(raw string) ([]domain.Vocab, error) {
	var records []VocabRecord
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrInvalidResponse)
	}
	return ValidateRecords(records)
}

// ValidateRecords trims and validates records and converts them to vocabulary
func ValidateRecords(records []VocabRecord) ([]domain.Vocab, error) {
	vocabs := make([]domain.Vocab, 0, len(records))
	for i, r := range records {
		r.Latin = strings.TrimSpace(r.Latin)
		r.German = strings.TrimSpace(r.German)
		if err := validate.Struct(r); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrInvalidResponse, i, err)
		}
		vocabs = append(vocabs, domain.Vocab{Latin: r.Latin, German: r.German})
	}
	return vocabs, nil
}
