package service

import (
	"math/rand"
	"sync"
	"time"

	"latinvocab/internal/domain"
)

type vocabularySource interface {
	All(userID int64) ([]domain.Vocab, error)
}

// QuizService runs one quiz session per user
type QuizService struct {
	vocab vocabularySource

	mu       sync.Mutex
	rng      *rand.Rand
	sessions map[int64]*domain.QuizSession
}

// NewQuizService creates a new quiz service. A nil rng is seeded from the clock.
func NewQuizService(vocab vocabularySource, rng *rand.Rand) *QuizService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &QuizService{
		vocab:    vocab,
		rng:      rng,
		sessions: make(map[int64]*domain.QuizSession),
	}
}

// Start asks a random entry of the whole vocabulary, dropping any previous question
func (s *QuizService) Start(userID int64) (domain.QuizSession, error) {
	vocabs, err := s.vocab.All(userID)
	if err != nil {
		return domain.QuizSession{}, err
	}
	if len(vocabs) == 0 {
		return domain.QuizSession{}, ErrNoVocabulary
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session := &domain.QuizSession{Prompt: vocabs[s.rng.Intn(len(vocabs))]}
	s.sessions[userID] = session
	return *session, nil
}

// Submit judges the answer of the pending question
func (s *QuizService) Submit(userID int64, answer string) (domain.Verdict, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.sessions[userID]
	if session.State() != domain.QuizAwaitingAnswer {
		return domain.Verdict{}, ErrNoActiveQuestion
	}

	verdict := domain.Judge(session.Prompt, answer)
	session.Answer = answer
	session.Verdict = &verdict
	return verdict, nil
}

// Next moves an active session to a new question
func (s *QuizService) Next(userID int64) (domain.QuizSession, error) {
	if _, ok := s.Current(userID); !ok {
		return domain.QuizSession{}, ErrNoActiveQuestion
	}
	return s.Start(userID)
}

// Stop discards the session
func (s *QuizService) Stop(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Current returns a copy of the active session
func (s *QuizService) Current(userID int64) (domain.QuizSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return domain.QuizSession{}, false
	}

	out := *session
	if session.Verdict != nil {
		v := *session.Verdict
		out.Verdict = &v
	}
	return out, true
}

// State returns the quiz state of the user
func (s *QuizService) State(userID int64) domain.QuizState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[userID].State()
}
