package service

import "errors"

var (
	// ErrNoVocabulary is returned when a quiz is started on an empty list
	ErrNoVocabulary = errors.New("no vocabulary available")
	// ErrLessonNotFound is returned for unknown lesson ids
	ErrLessonNotFound = errors.New("lesson not found")
	// ErrNoActiveQuestion is returned when there is no question awaiting an answer
	ErrNoActiveQuestion = errors.New("no active quiz question")
	// ErrOperationInFlight is returned while the same AI operation is still running
	ErrOperationInFlight = errors.New("operation already in progress")
)
