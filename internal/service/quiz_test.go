package service

import (
	"fmt"
	"math/rand"
	"testing"

	"latinvocab/internal/domain"
	"latinvocab/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQuizService(stored []domain.Vocab) *QuizService {
	vocabService, _ := newTestVocabService(stored)
	return NewQuizService(vocabService, rand.New(rand.NewSource(1)))
}

func TestQuizService_StartEmptyVocabulary(t *testing.T) {
	service := newTestQuizService(nil)

	_, err := service.Start(1)

	assert.ErrorIs(t, err, ErrNoVocabulary)
	assert.Equal(t, domain.QuizIdle, service.State(1))
}

func TestQuizService_SingleEntry(t *testing.T) {
	service := newTestQuizService(testutil.NewTestVocabs("amicus", "der Freund"))

	session, err := service.Start(1)
	require.NoError(t, err)
	assert.Equal(t, domain.Vocab{Latin: "amicus", German: "der Freund"}, session.Prompt)
	assert.Equal(t, domain.QuizAwaitingAnswer, service.State(1))

	verdict, err := service.Submit(1, "der freund")
	require.NoError(t, err)
	assert.True(t, verdict.Correct)
	assert.Equal(t, domain.QuizAnswered, service.State(1))

	current, ok := service.Current(1)
	require.True(t, ok)
	assert.Equal(t, "der freund", current.Answer)
	require.NotNil(t, current.Verdict)
	assert.True(t, current.Verdict.Correct)
}

func TestQuizService_WrongAnswerShowsSolution(t *testing.T) {
	service := newTestQuizService(testutil.NewTestVocabs("amicus", "Freund"))

	_, err := service.Start(1)
	require.NoError(t, err)

	verdict, err := service.Submit(1, "Feind")

	require.NoError(t, err)
	assert.False(t, verdict.Correct)
	assert.Contains(t, verdict.Message, "Freund")
}

func TestQuizService_SubmitRequiresPendingQuestion(t *testing.T) {
	service := newTestQuizService(testutil.NewTestVocabs("amicus", "Freund"))

	_, err := service.Submit(1, "Freund")
	assert.ErrorIs(t, err, ErrNoActiveQuestion)

	_, err = service.Start(1)
	require.NoError(t, err)
	_, err = service.Submit(1, "Freund")
	require.NoError(t, err)

	_, err = service.Submit(1, "Freund")
	assert.ErrorIs(t, err, ErrNoActiveQuestion)
}

func TestQuizService_NextClearsVerdict(t *testing.T) {
	service := newTestQuizService(testutil.NewTestVocabs("amicus", "Freund", "sol", "die Sonne"))

	_, err := service.Next(1)
	assert.ErrorIs(t, err, ErrNoActiveQuestion)

	_, err = service.Start(1)
	require.NoError(t, err)
	_, err = service.Submit(1, "x")
	require.NoError(t, err)

	session, err := service.Next(1)
	require.NoError(t, err)
	assert.Nil(t, session.Verdict)
	assert.Empty(t, session.Answer)
	assert.Equal(t, domain.QuizAwaitingAnswer, service.State(1))
}

func TestQuizService_Stop(t *testing.T) {
	service := newTestQuizService(testutil.NewTestVocabs("amicus", "Freund"))

	_, err := service.Start(1)
	require.NoError(t, err)

	service.Stop(1)

	_, ok := service.Current(1)
	assert.False(t, ok)
	assert.Equal(t, domain.QuizIdle, service.State(1))
}

func TestQuizService_PicksFromWholeVocabulary(t *testing.T) {
	stored := testutil.NewTestVocabs("a", "1", "b", "2", "c", "3")
	service := newTestQuizService(stored)

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		session, err := service.Start(1)
		require.NoError(t, err)
		seen[session.Prompt.Latin] = true
	}

	assert.Len(t, seen, 3)
}

func TestQuizService_SessionsArePerUser(t *testing.T) {
	mockRepo := new(testutil.MockVocabRepository)
	mockRepo.On("Load", int64(1)).Return(testutil.NewTestVocabs("amicus", "Freund"), nil)
	mockRepo.On("Load", int64(2)).Return(nil, fmt.Errorf("db down"))

	service := NewQuizService(NewVocabService(mockRepo, testutil.NewTestLogger()), nil)

	_, err := service.Start(1)
	require.NoError(t, err)
	_, err = service.Start(2)
	assert.Error(t, err)

	assert.Equal(t, domain.QuizAwaitingAnswer, service.State(1))
	assert.Equal(t, domain.QuizIdle, service.State(2))
}
