package app

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"quizbabu-service/internal/carryover"
	"quizbabu-service/internal/domain"
	"quizbabu-service/internal/metrics"
	"quizbabu-service/internal/quiz"
)

// Attempt is one mounted quiz screen: a session plus its submission side effects.
type Attempt struct {
	sessionID string
	session   *quiz.Session
	service   *QuizService
	duration  int

	// unsaved holds finalized results whose carry-over write failed.
	mu      sync.Mutex
	unsaved *pendingResults
}

type pendingResults struct {
	results []domain.QuizResult
	trigger quiz.Trigger
}

// Submission is the outcome handed to the client after finalization.
type Submission struct {
	Trigger  quiz.Trigger        `json:"trigger"`
	Report   domain.Report       `json:"report"`
	Results  []domain.QuizResult `json:"results"`
	Redirect string              `json:"redirect"`
}

// Session exposes the state machine for navigation and answer selection.
func (a *Attempt) Session() *quiz.Session {
	return a.session
}

// Failed reports whether the question batch could not be loaded.
func (a *Attempt) Failed() bool {
	return a.session.State() == quiz.StateFailed
}

// Duration is the countdown length in seconds.
func (a *Attempt) Duration() int {
	return a.duration
}

// ConfirmSubmit finalizes after the user confirmed. ok is false when the timer got there first.
// Confirming again after a failed carry-over write retries the write with the same results.
func (a *Attempt) ConfirmSubmit(ctx context.Context) (Submission, bool, error) {
	results, ok, err := a.session.ConfirmSubmit()
	if err != nil {
		return Submission{}, false, err
	}
	if !ok {
		return a.retrySave(ctx)
	}
	return a.finish(ctx, results, quiz.TriggerManual)
}

// Expire finalizes from the countdown. ok is false when the user already submitted.
func (a *Attempt) Expire(ctx context.Context) (Submission, bool, error) {
	results, ok := a.session.Expire()
	if !ok {
		return Submission{}, false, nil
	}
	return a.finish(ctx, results, quiz.TriggerTimer)
}

func (a *Attempt) finish(ctx context.Context, results []domain.QuizResult, trigger quiz.Trigger) (Submission, bool, error) {
	report := quiz.Summarize(results)
	metrics.AttemptsSubmitted.WithLabelValues(string(trigger)).Inc()
	metrics.ScorePercentage.Observe(float64(report.Percentage))

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saveLocked(ctx, results, trigger)
}

// retrySave repeats a failed carry-over write. ok is false when nothing is pending.
func (a *Attempt) retrySave(ctx context.Context) (Submission, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.unsaved == nil {
		return Submission{}, false, nil
	}
	pending := a.unsaved
	a.service.log.Info("retrying quiz results carry-over", zap.String("session_id", a.sessionID))
	return a.saveLocked(ctx, pending.results, pending.trigger)
}

func (a *Attempt) saveLocked(ctx context.Context, results []domain.QuizResult, trigger quiz.Trigger) (Submission, bool, error) {
	if err := carryover.SaveResults(ctx, a.service.store, a.sessionID, results); err != nil {
		a.unsaved = &pendingResults{results: results, trigger: trigger}
		a.service.log.Error("failed to carry over quiz results",
			zap.String("session_id", a.sessionID),
			zap.Error(err),
		)
		return Submission{}, true, err
	}
	a.unsaved = nil

	report := quiz.Summarize(results)
	a.service.log.Info("quiz submitted",
		zap.String("session_id", a.sessionID),
		zap.String("trigger", string(trigger)),
		zap.Int("score", report.Score),
		zap.Int("total", report.Total),
	)
	return Submission{
		Trigger:  trigger,
		Report:   report,
		Results:  results,
		Redirect: ReportPath,
	}, true, nil
}
