package quiz

import (
	"sync"

	"quizbabu-service/internal/domain"
)

// State is the lifecycle phase of a quiz session.
type State int

const (
	StateLoading State = iota
	StateActive
	StateSubmitting
	StateSubmitted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateActive:
		return "active"
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Trigger records what finalized a session.
type Trigger string

const (
	TriggerManual Trigger = "manual"
	TriggerTimer  Trigger = "timer"
)

// Snapshot is a read-only view of a session for rendering.
type Snapshot struct {
	State         State
	Index         int
	Total         int
	Current       *domain.ProcessedQuestion
	Selected      *string
	Answers       []*string
	AnsweredCount int
}

// Session is one in-progress quiz attempt. It is safe for concurrent use:
// the countdown and the client both drive it.
type Session struct {
	randomizer *Randomizer

	mu        sync.Mutex
	state     State
	questions []domain.ProcessedQuestion
	current   int
	answers   []*string
	results   []domain.QuizResult
	trigger   Trigger
}

// NewSession returns a session in the Loading state.
func NewSession(randomizer *Randomizer) *Session {
	if randomizer == nil {
		randomizer = NewRandomizer(nil)
	}
	return &Session{randomizer: randomizer, state: StateLoading}
}

// Load processes the question batch once. Later calls leave the already
// shuffled questions untouched. An empty batch moves the session to Failed.
func (s *Session) Load(questions []domain.Question) []domain.ProcessedQuestion {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLoading {
		return s.questions
	}
	if len(questions) == 0 {
		s.state = StateFailed
		return nil
	}
	s.questions = s.randomizer.ProcessAll(questions)
	s.answers = make([]*string, len(s.questions))
	s.current = 0
	s.state = StateActive
	return s.questions
}

// State returns the current phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Select records answer for the current question, replacing any earlier choice.
func (s *Session) Select(answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editableLocked(); err != nil {
		return err
	}
	if !s.questions[s.current].HasAnswer(answer) {
		return domain.ErrUnknownAnswer
	}
	a := answer
	s.answers[s.current] = &a
	return nil
}

// GoTo moves to index. Out-of-range indexes are ignored.
func (s *Session) GoTo(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goToLocked(index)
}

// Next moves forward one question, stopping at the last.
func (s *Session) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goToLocked(s.current + 1)
}

// Prev moves back one question, stopping at the first.
func (s *Session) Prev() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goToLocked(s.current - 1)
}

func (s *Session) goToLocked(index int) {
	if s.state != StateActive && s.state != StateSubmitting {
		return
	}
	if index < 0 || index >= len(s.questions) {
		return
	}
	s.current = index
}

// RequestSubmit asks for confirmation before finalizing.
func (s *Session) RequestSubmit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateActive:
		s.state = StateSubmitting
		return nil
	case StateSubmitting:
		return nil
	case StateSubmitted:
		return domain.ErrQuizSubmitted
	default:
		return domain.ErrQuizNotActive
	}
}

// CancelSubmit returns from the confirmation prompt to answering.
func (s *Session) CancelSubmit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateSubmitting:
		s.state = StateActive
		return nil
	case StateActive:
		return nil
	case StateSubmitted:
		return domain.ErrQuizSubmitted
	default:
		return domain.ErrQuizNotActive
	}
}

// ConfirmSubmit finalizes a session that is awaiting confirmation.
// ok is false when another path already finalized it.
func (s *Session) ConfirmSubmit() (results []domain.QuizResult, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateSubmitting:
		return s.finalizeLocked(TriggerManual), true, nil
	case StateSubmitted:
		return nil, false, nil
	default:
		return nil, false, domain.ErrQuizNotActive
	}
}

// Expire finalizes the session from the timer, skipping confirmation.
// ok is false when the session was already finalized or never became active.
func (s *Session) Expire() (results []domain.QuizResult, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive && s.state != StateSubmitting {
		return nil, false
	}
	return s.finalizeLocked(TriggerTimer), true
}

// finalizeLocked is the only transition into Submitted.
func (s *Session) finalizeLocked(trigger Trigger) []domain.QuizResult {
	s.state = StateSubmitted
	s.trigger = trigger
	s.results = BuildResults(s.questions, s.answers)
	return s.results
}

// Results returns the finalized results, or nil before submission.
func (s *Session) Results() ([]domain.QuizResult, Trigger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results, s.trigger
}

// Snapshot copies the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:   s.state,
		Index:   s.current,
		Total:   len(s.questions),
		Answers: make([]*string, len(s.answers)),
	}
	for i, a := range s.answers {
		if a == nil {
			continue
		}
		v := *a
		snap.Answers[i] = &v
		snap.AnsweredCount++
	}
	if len(s.questions) > 0 {
		q := s.questions[s.current]
		snap.Current = &q
		snap.Selected = snap.Answers[s.current]
	}
	return snap
}

func (s *Session) editableLocked() error {
	switch s.state {
	case StateActive, StateSubmitting:
		return nil
	case StateSubmitted:
		return domain.ErrQuizSubmitted
	case StateFailed:
		return domain.ErrNoQuestions
	default:
		return domain.ErrQuizNotActive
	}
}
