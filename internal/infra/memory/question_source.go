package memory

import (
	"context"

	"quizbabu-service/internal/domain"
)

// StaticQuestionSource serves a fixed question batch (useful for tests/demos).
type StaticQuestionSource struct {
	questions []domain.Question
	err       error
}

func NewStaticQuestionSource(questions []domain.Question) *StaticQuestionSource {
	return &StaticQuestionSource{questions: questions}
}

// NewFailingQuestionSource always returns err.
func NewFailingQuestionSource(err error) *StaticQuestionSource {
	return &StaticQuestionSource{err: err}
}

// FetchQuestions returns up to amount questions; amount <= 0 returns all of them.
func (s *StaticQuestionSource) FetchQuestions(_ context.Context, amount int) ([]domain.Question, error) {
	if s.err != nil {
		return nil, s.err
	}
	n := len(s.questions)
	if amount > 0 && amount < n {
		n = amount
	}
	out := make([]domain.Question, n)
	copy(out, s.questions[:n])
	return out, nil
}
