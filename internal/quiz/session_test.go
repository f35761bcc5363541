package quiz

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"quizbabu-service/internal/domain"
)

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{Type: domain.TypeBoolean, Question: "Capital of France?", CorrectAnswer: "Paris", IncorrectAnswers: []string{"London"}},
		{Type: domain.TypeMultiple, Question: "The answer?", CorrectAnswer: "42", IncorrectAnswers: []string{"7", "13"}},
	}
}

func newLoadedSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(NewRandomizer(rand.NewSource(11)))
	if got := s.Load(sampleQuestions()); len(got) != 2 {
		t.Fatalf("expected 2 processed questions, got %d", len(got))
	}
	if s.State() != StateActive {
		t.Fatalf("expected active state, got %s", s.State())
	}
	return s
}

func TestLoadIsStable(t *testing.T) {
	s := newLoadedSession(t)
	first := s.Snapshot().Current.ShuffledAnswers

	for i := 0; i < 10; i++ {
		s.Load(sampleQuestions())
	}
	second := s.Snapshot().Current.ShuffledAnswers
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("reload reshuffled answers: %v -> %v", first, second)
		}
	}
}

func TestLoadEmptyFails(t *testing.T) {
	s := NewSession(nil)
	s.Load(nil)
	if s.State() != StateFailed {
		t.Fatalf("expected failed state, got %s", s.State())
	}
	if err := s.Select("anything"); !errors.Is(err, domain.ErrNoQuestions) {
		t.Fatalf("expected no questions error, got %v", err)
	}
	s.GoTo(0)
	s.Next()
	if snap := s.Snapshot(); snap.Total != 0 || snap.Current != nil {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if _, ok := s.Expire(); ok {
		t.Fatalf("expected failed session not to finalize")
	}
}

func TestNavigationBounds(t *testing.T) {
	s := newLoadedSession(t)

	s.Prev()
	if idx := s.Snapshot().Index; idx != 0 {
		t.Fatalf("prev at start moved to %d", idx)
	}
	s.Next()
	s.Next()
	if idx := s.Snapshot().Index; idx != 1 {
		t.Fatalf("next past end moved to %d", idx)
	}

	for _, idx := range []int{-1, 2, 100} {
		s.GoTo(idx)
		if got := s.Snapshot().Index; got != 1 {
			t.Fatalf("GoTo(%d) changed index to %d", idx, got)
		}
	}
	s.GoTo(0)
	if idx := s.Snapshot().Index; idx != 0 {
		t.Fatalf("GoTo(0) left index at %d", idx)
	}
}

func TestSelectRecordsOnlyCurrentSlot(t *testing.T) {
	s := newLoadedSession(t)

	if err := s.Select("London"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := s.Select("Paris"); err != nil {
		t.Fatalf("select overwrite: %v", err)
	}
	if err := s.Select("Paris"); err != nil {
		t.Fatalf("select repeat: %v", err)
	}
	if err := s.Select("Madrid"); !errors.Is(err, domain.ErrUnknownAnswer) {
		t.Fatalf("expected unknown answer error, got %v", err)
	}

	s.Next()
	snap := s.Snapshot()
	if snap.Selected != nil {
		t.Fatalf("expected no selection on second question, got %q", *snap.Selected)
	}
	if snap.AnsweredCount != 1 || *snap.Answers[0] != "Paris" || snap.Answers[1] != nil {
		t.Fatalf("unexpected answers %+v", snap.Answers)
	}
}

func TestSubmitFlow(t *testing.T) {
	s := newLoadedSession(t)
	if err := s.Select("Paris"); err != nil {
		t.Fatalf("select: %v", err)
	}

	if _, _, err := s.ConfirmSubmit(); !errors.Is(err, domain.ErrQuizNotActive) {
		t.Fatalf("confirm without request should fail, got %v", err)
	}

	if err := s.RequestSubmit(); err != nil {
		t.Fatalf("request submit: %v", err)
	}
	if err := s.CancelSubmit(); err != nil {
		t.Fatalf("cancel submit: %v", err)
	}
	if s.State() != StateActive {
		t.Fatalf("expected active after cancel, got %s", s.State())
	}

	if err := s.RequestSubmit(); err != nil {
		t.Fatalf("request submit: %v", err)
	}
	results, ok, err := s.ConfirmSubmit()
	if err != nil || !ok {
		t.Fatalf("confirm: ok=%v err=%v", ok, err)
	}
	if len(results) != 2 || !results[0].IsCorrect || results[1].IsCorrect || results[1].UserAnswer != nil {
		t.Fatalf("unexpected results %+v", results)
	}
	if r := Summarize(results); r.Score != 1 || r.Percentage != 50 {
		t.Fatalf("unexpected report %+v", r)
	}

	if err := s.Select("42"); !errors.Is(err, domain.ErrQuizSubmitted) {
		t.Fatalf("expected submitted error, got %v", err)
	}
	if _, ok := s.Expire(); ok {
		t.Fatalf("expire after submit must not finalize again")
	}
	if _, trigger := s.Results(); trigger != TriggerManual {
		t.Fatalf("expected manual trigger, got %s", trigger)
	}
}

func TestExpireBypassesConfirmation(t *testing.T) {
	s := newLoadedSession(t)
	results, ok := s.Expire()
	if !ok || len(results) != 2 {
		t.Fatalf("expected timer finalization, ok=%v results=%d", ok, len(results))
	}
	if s.State() != StateSubmitted {
		t.Fatalf("expected submitted, got %s", s.State())
	}
	if _, trigger := s.Results(); trigger != TriggerTimer {
		t.Fatalf("expected timer trigger, got %s", trigger)
	}
}

func TestFinalizationHappensOnce(t *testing.T) {
	for i := 0; i < 100; i++ {
		s := newLoadedSession(t)
		if err := s.RequestSubmit(); err != nil {
			t.Fatalf("request submit: %v", err)
		}

		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			wins int
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, ok, _ := s.ConfirmSubmit(); ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
		go func() {
			defer wg.Done()
			if _, ok := s.Expire(); ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
		wg.Wait()

		if wins != 1 {
			t.Fatalf("expected exactly one finalization, got %d", wins)
		}
	}
}
