package service

import (
	"context"
	"strings"

	"latinvocab/internal/domain"
	"latinvocab/internal/gateway"

	"go.uber.org/zap"
)

// AIService runs the AI features against the user's vocabulary
type AIService struct {
	gateway      gateway.Gateway
	vocabService *VocabService
	inflight     *InFlight
	logger       *zap.Logger
}

// NewAIService creates a new AI service
func NewAIService(gw gateway.Gateway, vocabService *VocabService, logger *zap.Logger) *AIService {
	return &AIService{
		gateway:      gw,
		vocabService: vocabService,
		inflight:     NewInFlight(),
		logger:       logger,
	}
}

// Busy reports whether an operation of this kind is pending for the user
func (s *AIService) Busy(userID int64, op Operation) bool {
	return s.inflight.Busy(userID, op)
}

// Translate translates text restricted to the user's vocabulary
func (s *AIService) Translate(ctx context.Context, userID int64, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", gateway.ErrEmptyText
	}

	release, ok := s.inflight.Acquire(userID, OpTranslate)
	if !ok {
		return "", ErrOperationInFlight
	}
	defer release()

	vocabs, err := s.vocabService.All(userID)
	if err != nil {
		return "", err
	}

	s.logger.Info("Translating text",
		zap.Int64("user_id", userID),
		zap.Int("text_length", len(text)),
		zap.Int("vocab_count", len(vocabs)),
	)

	return s.gateway.TranslateText(ctx, text, vocabs)
}

// ScanVocab extracts pairs from an image and merges them into the vocabulary.
// It returns only the newly added pairs; on failure nothing is merged.
func (s *AIService) ScanVocab(ctx context.Context, userID int64, image gateway.Image) ([]domain.Vocab, error) {
	release, ok := s.inflight.Acquire(userID, OpScan)
	if !ok {
		return nil, ErrOperationInFlight
	}
	defer release()

	extracted, err := s.gateway.ExtractVocab(ctx, image)
	if err != nil {
		return nil, err
	}

	added, err := s.vocabService.Merge(userID, extracted)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Vocabulary scanned",
		zap.Int64("user_id", userID),
		zap.Int("extracted", len(extracted)),
		zap.Int("added", len(added)),
	)
	return added, nil
}

// ScanText transcribes the Latin text of an image
func (s *AIService) ScanText(ctx context.Context, userID int64, image gateway.Image) (string, error) {
	release, ok := s.inflight.Acquire(userID, OpScan)
	if !ok {
		return "", ErrOperationInFlight
	}
	defer release()

	return s.gateway.ExtractText(ctx, image)
}
