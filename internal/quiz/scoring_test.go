package quiz

import (
	"testing"

	"quizbabu-service/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		correct []bool
		want    domain.Report
	}{
		{name: "empty", correct: nil, want: domain.Report{Score: 0, Total: 0, Percentage: 0}},
		{name: "all wrong", correct: []bool{false, false}, want: domain.Report{Score: 0, Total: 2, Percentage: 0}},
		{name: "half", correct: []bool{true, false}, want: domain.Report{Score: 1, Total: 2, Percentage: 50}},
		{name: "rounds down", correct: []bool{true, false, false}, want: domain.Report{Score: 1, Total: 3, Percentage: 33}},
		{name: "rounds up", correct: []bool{true, true, false}, want: domain.Report{Score: 2, Total: 3, Percentage: 67}},
		{name: "all right", correct: []bool{true, true, true, true}, want: domain.Report{Score: 4, Total: 4, Percentage: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := make([]domain.QuizResult, len(tt.correct))
			for i, c := range tt.correct {
				results[i].IsCorrect = c
			}
			got := Summarize(results)
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
			if got.Score < 0 || got.Score > got.Total {
				t.Fatalf("score %d outside [0,%d]", got.Score, got.Total)
			}
		})
	}
}

func TestBuildResultsTwoQuestionScenario(t *testing.T) {
	questions := []domain.ProcessedQuestion{
		{
			Question:        domain.Question{Question: "Capital of France?", CorrectAnswer: "Paris", IncorrectAnswers: []string{"London"}},
			ShuffledAnswers: []string{"London", "Paris"},
		},
		{
			Question:        domain.Question{Question: "The answer?", CorrectAnswer: "42", IncorrectAnswers: []string{"7", "13"}},
			ShuffledAnswers: []string{"7", "42", "13"},
		},
	}
	answers := []*string{strPtr("Paris"), nil}

	results := BuildResults(questions, answers)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if !results[0].IsCorrect || results[0].UserAnswer == nil || *results[0].UserAnswer != "Paris" {
		t.Fatalf("unexpected first result %+v", results[0])
	}
	if results[1].IsCorrect || results[1].UserAnswer != nil {
		t.Fatalf("unexpected second result %+v", results[1])
	}
	if results[1].AllAnswers[1] != "42" {
		t.Fatalf("expected shuffled order preserved, got %v", results[1].AllAnswers)
	}

	report := Summarize(results)
	if report.Score != 1 || report.Percentage != 50 || report.Incorrect() != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestBuildResultsShortAnswerSlice(t *testing.T) {
	questions := []domain.ProcessedQuestion{
		{Question: domain.Question{CorrectAnswer: "a"}, ShuffledAnswers: []string{"a"}},
		{Question: domain.Question{CorrectAnswer: "b"}, ShuffledAnswers: []string{"b"}},
	}
	results := BuildResults(questions, []*string{strPtr("a")})
	if !results[0].IsCorrect || results[1].IsCorrect || results[1].UserAnswer != nil {
		t.Fatalf("unexpected results %+v", results)
	}
}
