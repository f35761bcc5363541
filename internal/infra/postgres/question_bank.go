package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"quizbabu-service/internal/domain"
)

// QuestionBank serves random question batches from the question_bank table.
type QuestionBank struct {
	pool *pgxpool.Pool
}

func NewQuestionBank(pool *pgxpool.Pool) *QuestionBank {
	return &QuestionBank{pool: pool}
}

func (b *QuestionBank) FetchQuestions(ctx context.Context, amount int) ([]domain.Question, error) {
	rows, err := b.pool.Query(ctx, `
		SELECT type, difficulty, category, question, correct_answer, incorrect_answers
		FROM question_bank
		ORDER BY random()
		LIMIT $1`, amount)
	if err != nil {
		return nil, fmt.Errorf("%w: query question bank: %v", domain.ErrSourceUnavailable, err)
	}
	defer rows.Close()

	questions := make([]domain.Question, 0, amount)
	for rows.Next() {
		var (
			q         domain.Question
			qType     string
			diff      string
			incorrect []byte
		)
		if err := rows.Scan(&qType, &diff, &q.Category, &q.Question, &q.CorrectAnswer, &incorrect); err != nil {
			return nil, fmt.Errorf("%w: scan question: %v", domain.ErrSourceUnavailable, err)
		}
		if err := json.Unmarshal(incorrect, &q.IncorrectAnswers); err != nil {
			return nil, fmt.Errorf("%w: unmarshal incorrect answers: %v", domain.ErrSourceUnavailable, err)
		}
		q.Type = domain.QuestionType(qType)
		q.Difficulty = domain.Difficulty(diff)
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read question bank: %v", domain.ErrSourceUnavailable, err)
	}
	return questions, nil
}

// InsertQuestion adds a question to the bank.
func (b *QuestionBank) InsertQuestion(ctx context.Context, q domain.Question) error {
	incorrect, err := json.Marshal(q.IncorrectAnswers)
	if err != nil {
		return fmt.Errorf("marshal incorrect answers: %w", err)
	}
	_, err = b.pool.Exec(ctx, `
		INSERT INTO question_bank (type, difficulty, category, question, correct_answer, incorrect_answers)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb)`,
		string(q.Type), string(q.Difficulty), q.Category, q.Question, q.CorrectAnswer, string(incorrect))
	if err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	return nil
}
