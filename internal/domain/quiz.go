package domain

import (
	"fmt"
	"strings"
)

// QuizState is a position in the quiz state machine
type QuizState string

const (
	QuizIdle           QuizState = "idle"
	QuizAwaitingAnswer QuizState = "awaiting_answer"
	QuizAnswered       QuizState = "answered"
)

// Verdict is the judgement of a submitted answer
type Verdict struct {
	Correct bool
	Message string
}

// QuizSession is the single active question of a user
type QuizSession struct {
	Prompt  Vocab
	Answer  string
	Verdict *Verdict
}

// State derives the quiz state from the session
func (q *QuizSession) State() QuizState {
	switch {
	case q == nil:
		return QuizIdle
	case q.Verdict == nil:
		return QuizAwaitingAnswer
	default:
		return QuizAnswered
	}
}

// Judge compares answer with the expected German meaning.
// The comparison trims the answer and ignores case, nothing else.
func Judge(expected Vocab, answer string) Verdict {
	if strings.ToLower(strings.TrimSpace(answer)) == strings.ToLower(expected.German) {
		return Verdict{Correct: true, Message: "Richtig! ✨"}
	}
	return Verdict{Correct: false, Message: fmt.Sprintf("Falsch. Lösung: %s", expected.German)}
}
