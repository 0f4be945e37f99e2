package service

import (
	"latinvocab/internal/domain"
)

// LessonService imports the built-in lessons
type LessonService struct {
	vocabService *VocabService
}

// NewLessonService creates a new lesson service
func NewLessonService(vocabService *VocabService) *LessonService {
	return &LessonService{vocabService: vocabService}
}

// ListLessons returns the catalog
func (s *LessonService) ListLessons() []domain.Lesson {
	return domain.Lessons()
}

// ImportLesson merges a lesson into the user's vocabulary and returns the new entries
func (s *LessonService) ImportLesson(userID int64, lessonID int) ([]domain.Vocab, error) {
	lesson, ok := domain.FindLesson(lessonID)
	if !ok {
		return nil, ErrLessonNotFound
	}
	return s.vocabService.Merge(userID, lesson.Vocabs)
}
