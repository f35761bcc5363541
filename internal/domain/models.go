package domain

// Difficulty is the provider's difficulty label for a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// QuestionType distinguishes multiple-choice from true/false questions.
type QuestionType string

const (
	TypeMultiple QuestionType = "multiple"
	TypeBoolean  QuestionType = "boolean"
)

// Question is a trivia question as delivered by the question source.
// Text fields may still contain HTML entities.
type Question struct {
	Type             QuestionType `json:"type"`
	Difficulty       Difficulty   `json:"difficulty"`
	Category         string       `json:"category"`
	Question         string       `json:"question"`
	CorrectAnswer    string       `json:"correct_answer"`
	IncorrectAnswers []string     `json:"incorrect_answers"`
}

// ProcessedQuestion is a decoded question with its answers in a fixed random order.
type ProcessedQuestion struct {
	Question
	ShuffledAnswers []string `json:"shuffledAnswers"`
}

// HasAnswer reports whether answer is one of the offered answers.
func (q ProcessedQuestion) HasAnswer(answer string) bool {
	for _, a := range q.ShuffledAnswers {
		if a == answer {
			return true
		}
	}
	return false
}

// QuizResult is the graded outcome of a single question.
type QuizResult struct {
	Question      string   `json:"question"`
	UserAnswer    *string  `json:"userAnswer"`
	CorrectAnswer string   `json:"correctAnswer"`
	IsCorrect     bool     `json:"isCorrect"`
	AllAnswers    []string `json:"allAnswers"`
}

// Report aggregates a result set.
type Report struct {
	Score      int `json:"score"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// Incorrect is the number of questions not answered correctly.
func (r Report) Incorrect() int {
	return r.Total - r.Score
}
