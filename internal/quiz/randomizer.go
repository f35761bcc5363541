package quiz

import (
	"html"
	"math/rand"
	"sync"
	"time"

	"quizbabu-service/internal/domain"
)

// Randomizer decodes source questions and fixes a random answer order for each.
type Randomizer struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomizer builds a randomizer over src. A nil src is seeded from the clock.
func NewRandomizer(src rand.Source) *Randomizer {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Randomizer{rnd: rand.New(src)}
}

// Process decodes HTML entities and shuffles {correct} ∪ incorrect.
func (r *Randomizer) Process(q domain.Question) domain.ProcessedQuestion {
	decoded := q
	decoded.Question = html.UnescapeString(q.Question)
	decoded.Category = html.UnescapeString(q.Category)
	decoded.CorrectAnswer = html.UnescapeString(q.CorrectAnswer)
	decoded.IncorrectAnswers = make([]string, len(q.IncorrectAnswers))
	for i, a := range q.IncorrectAnswers {
		decoded.IncorrectAnswers[i] = html.UnescapeString(a)
	}

	answers := make([]string, 0, len(decoded.IncorrectAnswers)+1)
	answers = append(answers, decoded.IncorrectAnswers...)
	answers = append(answers, decoded.CorrectAnswer)

	r.mu.Lock()
	r.rnd.Shuffle(len(answers), func(i, j int) {
		answers[i], answers[j] = answers[j], answers[i]
	})
	r.mu.Unlock()

	return domain.ProcessedQuestion{Question: decoded, ShuffledAnswers: answers}
}

// ProcessAll processes a batch in source order.
func (r *Randomizer) ProcessAll(questions []domain.Question) []domain.ProcessedQuestion {
	out := make([]domain.ProcessedQuestion, 0, len(questions))
	for _, q := range questions {
		out = append(out, r.Process(q))
	}
	return out
}
