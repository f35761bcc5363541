// Package carryover passes finalized quiz data from the quiz screen to the
// report screen within one browsing session.
package carryover

import (
	"context"
	"encoding/json"
	"fmt"

	"quizbabu-service/internal/domain"
)

const (
	resultsKey = "quizResults"
	emailKey   = "quizWhizEmail"

	// DefaultEmailLabel is shown when no email was carried over.
	DefaultEmailLabel = "Quiz Taker"
)

// Store is a session-scoped key-value store holding text values.
type Store interface {
	Save(ctx context.Context, key, value string) error
	Load(ctx context.Context, key string) (string, bool, error)
	Clear(ctx context.Context, key string) error
}

// Key scopes name to a browsing session.
func Key(sessionID, name string) string {
	return "carryover:" + sessionID + ":" + name
}

// SaveResults stores the finalized result set for sessionID.
func SaveResults(ctx context.Context, store Store, sessionID string, results []domain.QuizResult) error {
	if results == nil {
		results = []domain.QuizResult{}
	}
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if err := store.Save(ctx, Key(sessionID, resultsKey), string(data)); err != nil {
		return fmt.Errorf("save results: %w", err)
	}
	return nil
}

// LoadResults reads the result set. ok is false when the value is absent,
// unreadable or not a result list.
func LoadResults(ctx context.Context, store Store, sessionID string) ([]domain.QuizResult, bool) {
	raw, found, err := store.Load(ctx, Key(sessionID, resultsKey))
	if err != nil || !found {
		return nil, false
	}
	var results []domain.QuizResult
	if err := json.Unmarshal([]byte(raw), &results); err != nil {
		return nil, false
	}
	if results == nil {
		return nil, false
	}
	return results, true
}

// SaveEmail stores the quiz taker's email for sessionID.
func SaveEmail(ctx context.Context, store Store, sessionID, email string) error {
	if err := store.Save(ctx, Key(sessionID, emailKey), email); err != nil {
		return fmt.Errorf("save email: %w", err)
	}
	return nil
}

// LoadEmail returns the stored email or DefaultEmailLabel.
func LoadEmail(ctx context.Context, store Store, sessionID string) string {
	email, found, err := store.Load(ctx, Key(sessionID, emailKey))
	if err != nil || !found || email == "" {
		return DefaultEmailLabel
	}
	return email
}

// Reset removes both carried-over values.
func Reset(ctx context.Context, store Store, sessionID string) error {
	if err := store.Clear(ctx, Key(sessionID, resultsKey)); err != nil {
		return fmt.Errorf("clear results: %w", err)
	}
	if err := store.Clear(ctx, Key(sessionID, emailKey)); err != nil {
		return fmt.Errorf("clear email: %w", err)
	}
	return nil
}
