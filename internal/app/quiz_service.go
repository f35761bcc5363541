package app

import (
	"context"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"quizbabu-service/internal/carryover"
	"quizbabu-service/internal/domain"
	"quizbabu-service/internal/metrics"
	"quizbabu-service/internal/quiz"
)

// ReportPath is where clients navigate after a quiz is submitted.
const ReportPath = "/report"

// QuestionSource loads a batch of trivia questions (remote API, question bank, fixtures).
type QuestionSource interface {
	FetchQuestions(ctx context.Context, amount int) ([]domain.Question, error)
}

// QuizService contains the quiz use cases: landing, quiz screen, report screen.
type QuizService struct {
	source     QuestionSource
	store      carryover.Store
	randomizer *quiz.Randomizer
	log        *zap.Logger

	amount       int
	duration     int
	fetchTimeout time.Duration
}

// Option configures a QuizService.
type Option func(*QuizService)

// WithQuestionAmount sets the batch size requested from the source.
func WithQuestionAmount(n int) Option {
	return func(s *QuizService) {
		if n > 0 {
			s.amount = n
		}
	}
}

// WithDuration sets the time allowed per attempt. The countdown runs in whole
// seconds, so anything positive but shorter than a second becomes one second.
func WithDuration(d time.Duration) Option {
	return func(s *QuizService) {
		if d <= 0 {
			return
		}
		s.duration = int(d / time.Second)
		if s.duration < 1 {
			s.duration = 1
		}
	}
}

// WithRandomizer injects the answer randomizer, e.g. with a fixed seed.
func WithRandomizer(r *quiz.Randomizer) Option {
	return func(s *QuizService) {
		if r != nil {
			s.randomizer = r
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *QuizService) {
		if log != nil {
			s.log = log
		}
	}
}

// WithFetchTimeout bounds a single question fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *QuizService) {
		s.fetchTimeout = d
	}
}

func NewQuizService(source QuestionSource, store carryover.Store, opts ...Option) *QuizService {
	s := &QuizService{
		source:       source,
		store:        store,
		randomizer:   quiz.NewRandomizer(nil),
		log:          zap.NewNop(),
		amount:       15,
		duration:     quiz.DefaultDuration,
		fetchTimeout: 15 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Begin records the quiz taker's email for the browsing session.
func (s *QuizService) Begin(ctx context.Context, sessionID, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.ErrEmailRequired
	}
	return carryover.SaveEmail(ctx, s.store, sessionID, email)
}

// StartAttempt fetches and prepares a question batch for one quiz screen.
// Source failures never surface as errors: the attempt starts in the failed
// state with zero questions.
func (s *QuizService) StartAttempt(ctx context.Context, sessionID string) *Attempt {
	questions := s.fetchQuestions(ctx)

	session := quiz.NewSession(s.randomizer)
	session.Load(questions)
	if session.State() == quiz.StateActive {
		metrics.AttemptsStarted.Inc()
	}

	return &Attempt{
		sessionID: sessionID,
		session:   session,
		service:   s,
		duration:  s.duration,
	}
}

func (s *QuizService) fetchQuestions(ctx context.Context) []domain.Question {
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}

	status := "ok"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		metrics.SourceFetchDuration.WithLabelValues(status).Observe(v)
	}))
	defer timer.ObserveDuration()

	questions, err := s.source.FetchQuestions(ctx, s.amount)
	if err != nil {
		status = "error"
		metrics.SourceFailures.Inc()
		s.log.Warn("question source unavailable", zap.Int("amount", s.amount), zap.Error(err))
		return nil
	}
	if len(questions) == 0 {
		status = "empty"
		s.log.Warn("question source returned no questions", zap.Int("amount", s.amount))
	}
	return questions
}

// ReportView is what the report screen renders.
type ReportView struct {
	Found   bool                `json:"found"`
	Email   string              `json:"email"`
	Report  domain.Report       `json:"report"`
	Results []domain.QuizResult `json:"results"`
}

// Report reads the carried-over results. Missing or malformed data yields Found == false.
func (s *QuizService) Report(ctx context.Context, sessionID string) ReportView {
	view := ReportView{Email: carryover.LoadEmail(ctx, s.store, sessionID)}
	results, ok := carryover.LoadResults(ctx, s.store, sessionID)
	if !ok {
		return view
	}
	view.Found = true
	view.Results = results
	view.Report = quiz.Summarize(results)
	return view
}

// Reset clears the carried-over results and email ("try again").
func (s *QuizService) Reset(ctx context.Context, sessionID string) error {
	return carryover.Reset(ctx, s.store, sessionID)
}
