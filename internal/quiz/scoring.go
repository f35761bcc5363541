package quiz

import (
	"math"

	"quizbabu-service/internal/domain"
)

// BuildResults grades every question against the recorded answers.
// A nil or missing answer is always incorrect.
func BuildResults(questions []domain.ProcessedQuestion, answers []*string) []domain.QuizResult {
	results := make([]domain.QuizResult, 0, len(questions))
	for i, q := range questions {
		var userAnswer *string
		if i < len(answers) && answers[i] != nil {
			a := *answers[i]
			userAnswer = &a
		}
		all := make([]string, len(q.ShuffledAnswers))
		copy(all, q.ShuffledAnswers)
		results = append(results, domain.QuizResult{
			Question:      q.Question.Question,
			UserAnswer:    userAnswer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     userAnswer != nil && *userAnswer == q.CorrectAnswer,
			AllAnswers:    all,
		})
	}
	return results
}

// Summarize computes score and percentage. An empty result set scores 0%.
func Summarize(results []domain.QuizResult) domain.Report {
	report := domain.Report{Total: len(results)}
	for _, r := range results {
		if r.IsCorrect {
			report.Score++
		}
	}
	if report.Total == 0 {
		return report
	}
	report.Percentage = int(math.Round(100 * float64(report.Score) / float64(report.Total)))
	return report
}
