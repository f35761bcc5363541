package memory

import (
	"context"
	"errors"
	"testing"

	"quizbabu-service/internal/domain"
)

func TestStaticQuestionSourceLimitsAmount(t *testing.T) {
	source := NewStaticQuestionSource([]domain.Question{
		{Question: "one"}, {Question: "two"}, {Question: "three"},
	})

	got, err := source.FetchQuestions(context.Background(), 2)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 2 || got[1].Question != "two" {
		t.Fatalf("unexpected questions %+v", got)
	}

	all, _ := source.FetchQuestions(context.Background(), 15)
	if len(all) != 3 {
		t.Fatalf("expected all 3 questions, got %d", len(all))
	}
}

func TestFailingQuestionSource(t *testing.T) {
	source := NewFailingQuestionSource(domain.ErrSourceUnavailable)
	if _, err := source.FetchQuestions(context.Background(), 15); !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Fatalf("expected source error, got %v", err)
	}
}
