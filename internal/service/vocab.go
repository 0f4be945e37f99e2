package service

import (
	"errors"
	"sync"

	"latinvocab/internal/domain"
	"latinvocab/internal/repository"

	"go.uber.org/zap"
)

// VocabService owns the vocabulary store of every user.
// A store is loaded once and saved after each mutation.
type VocabService struct {
	vocabRepo repository.VocabRepository
	logger    *zap.Logger

	mu     sync.Mutex
	stores map[int64]*domain.Store
}

// NewVocabService creates a new vocabulary service
func NewVocabService(vocabRepo repository.VocabRepository, logger *zap.Logger) *VocabService {
	return &VocabService{
		vocabRepo: vocabRepo,
		logger:    logger,
		stores:    make(map[int64]*domain.Store),
	}
}

// AddEntry prepends a pair; empty fields are ignored and report false
func (s *VocabService) AddEntry(userID int64, latin, german string) (bool, error) {
	var added bool
	err := s.mutate(userID, func(store *domain.Store) bool {
		added = store.Add(latin, german)
		return added
	})
	return added, err
}

// DeleteEntry removes the entry at index of the list displayed with mode
func (s *VocabService) DeleteEntry(userID int64, index int, mode domain.SortMode) (bool, error) {
	var deleted bool
	err := s.mutate(userID, func(store *domain.Store) bool {
		deleted = store.Delete(index, mode)
		return deleted
	})
	return deleted, err
}

// Merge adds the entries not present yet and returns them
func (s *VocabService) Merge(userID int64, entries []domain.Vocab) ([]domain.Vocab, error) {
	var added []domain.Vocab
	err := s.mutate(userID, func(store *domain.Store) bool {
		added = store.Merge(entries)
		return len(added) > 0
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// List returns the vocabulary in the displayed order for mode
func (s *VocabService) List(userID int64, mode domain.SortMode) ([]domain.Vocab, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	return store.Sorted(mode), nil
}

// All returns the vocabulary in natural order
func (s *VocabService) All(userID int64) ([]domain.Vocab, error) {
	return s.List(userID, domain.SortDate)
}

// Count returns the number of entries
func (s *VocabService) Count(userID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.load(userID)
	if err != nil {
		return 0, err
	}
	return store.Len(), nil
}

// mutate applies fn to a copy of the store and keeps it only if saving succeeds
func (s *VocabService) mutate(userID int64, fn func(store *domain.Store) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(userID)
	if err != nil {
		return err
	}

	next := domain.NewStore(current.All())
	if !fn(next) {
		return nil
	}

	if err := s.vocabRepo.Save(userID, next.All()); err != nil {
		s.logger.Error("Failed to save vocabulary",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return err
	}

	s.stores[userID] = next
	return nil
}

// load returns the cached store, reading it on first use. Caller holds mu.
func (s *VocabService) load(userID int64) (*domain.Store, error) {
	if store, ok := s.stores[userID]; ok {
		return store, nil
	}

	vocabs, err := s.vocabRepo.Load(userID)
	if errors.Is(err, repository.ErrCorruptData) {
		s.logger.Warn("Stored vocabulary is corrupt, starting empty",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		vocabs, err = nil, nil
	}
	if err != nil {
		return nil, err
	}

	store := domain.NewStore(vocabs)
	s.stores[userID] = store
	return store, nil
}
