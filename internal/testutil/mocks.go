package testutil

import (
	"context"

	"latinvocab/internal/domain"
	"latinvocab/internal/gateway"

	"github.com/stretchr/testify/mock"
)

// MockKeyValueStore is a mock for KeyValueStore
type MockKeyValueStore struct {
	mock.Mock
}

func (m *MockKeyValueStore) Get(userID int64, key string) (string, bool, error) {
	args := m.Called(userID, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockKeyValueStore) Set(userID int64, key, value string) error {
	args := m.Called(userID, key, value)
	return args.Error(0)
}

func (m *MockKeyValueStore) Delete(userID int64, key string) error {
	args := m.Called(userID, key)
	return args.Error(0)
}

// MockVocabRepository is a mock for VocabRepository
type MockVocabRepository struct {
	mock.Mock
}

func (m *MockVocabRepository) Load(userID int64) ([]domain.Vocab, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vocab), args.Error(1)
}

func (m *MockVocabRepository) Save(userID int64, vocabs []domain.Vocab) error {
	args := m.Called(userID, vocabs)
	return args.Error(0)
}

// MockAuthRepository is a mock for AuthRepository
type MockAuthRepository struct {
	mock.Mock
}

func (m *MockAuthRepository) IsAuthenticated(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthRepository) SetAuthenticated(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockAuthRepository) ClearAuthenticated(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockGateway is a mock for gateway.Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) TranslateText(ctx context.Context, text string, vocabs []domain.Vocab) (string, error) {
	args := m.Called(ctx, text, vocabs)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) ExtractVocab(ctx context.Context, image gateway.Image) ([]domain.Vocab, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vocab), args.Error(1)
}

func (m *MockGateway) ExtractText(ctx context.Context, image gateway.Image) (string, error) {
	args := m.Called(ctx, image)
	return args.String(0), args.Error(1)
}
