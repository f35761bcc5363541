package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"quizbabu-service/internal/app"
	"quizbabu-service/internal/domain"
	"quizbabu-service/internal/quiz"
)

const (
	confirmPrompt     = "Any unanswered questions will be marked as incorrect. You cannot change your answers after submitting."
	saveFailedMessage = "could not save results, confirm again to retry"
)

// WSHandler serves the quiz screen. One connection is one mounted screen:
// the attempt and its countdown live exactly as long as the socket.
type WSHandler struct {
	service  *app.QuizService
	log      *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, log *zap.Logger) *WSHandler {
	return &WSHandler{
		service: service,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectPayload struct {
	Answer string `json:"answer"`
}

type gotoPayload struct {
	Index int `json:"index"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type loadFailedPayload struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

type questionView struct {
	Number     int                 `json:"number"`
	Text       string              `json:"text"`
	Category   string              `json:"category"`
	Difficulty domain.Difficulty   `json:"difficulty"`
	Type       domain.QuestionType `json:"type"`
	Answers    []string            `json:"answers"`
}

type statePayload struct {
	Phase         string       `json:"phase"`
	Index         int          `json:"index"`
	Total         int          `json:"total"`
	Question      questionView `json:"question"`
	Selected      *string      `json:"selected"`
	Answers       []*string    `json:"answers"`
	AnsweredCount int          `json:"answeredCount"`
	Confirm       string       `json:"confirm,omitempty"`
}

type tickPayload struct {
	Remaining int    `json:"remaining"`
	Display   string `json:"display"`
	LowTime   bool   `json:"lowTime"`
}

// ServeWS upgrades the request and runs one quiz attempt over the socket.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sessionID := SessionID(r.Context())
	if sessionID == "" {
		http.Error(w, "missing session", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	attempt := h.service.StartAttempt(ctx, sessionID)
	if attempt.Failed() {
		_ = conn.WriteJSON(outboundMessage[loadFailedPayload]{Type: "loadFailed", Payload: loadFailedPayload{
			Message:  "There was an issue fetching questions from the server. Please try again later.",
			Redirect: "/",
		}})
		return
	}
	session := attempt.Session()

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})
	timerDone := make(chan struct{})

	enqueue := func(msg outboundMessage[any]) {
		enqueueMessage(ctx, send, msg)
	}

	go func() {
		defer close(writerDone)
		h.writeLoop(conn, send, cancel)
	}()
	// A dead writer cancels ctx; closing the socket then ends the read loop.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	countdown := quiz.NewCountdown(attempt.Duration(), func() {
		sub, ok, err := attempt.Expire(ctx)
		if err != nil {
			enqueue(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: saveFailedMessage}})
			return
		}
		if ok {
			enqueue(outboundMessage[any]{Type: "submitted", Payload: sub})
		}
	})

	go func() {
		defer close(timerDone)
		countdown.Run(ctx, func(remaining int) {
			enqueue(outboundMessage[any]{Type: "tick", Payload: tickPayload{
				Remaining: remaining,
				Display:   quiz.FormatClock(remaining),
				LowTime:   remaining <= quiz.LowTimeThreshold,
			}})
		})
	}()

	enqueue(outboundMessage[any]{Type: "tick", Payload: tickPayload{
		Remaining: countdown.Remaining(),
		Display:   countdown.Display(),
		LowTime:   countdown.LowTime(),
	}})
	enqueue(outboundMessage[any]{Type: "state", Payload: buildState(session.Snapshot())})

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		for _, msg := range h.handle(ctx, attempt, inbound) {
			enqueue(msg)
		}
	}

	cancel()
	<-timerDone
	close(send)
	<-writerDone
}

type jsonWriter interface {
	WriteJSON(v interface{}) error
}

// writeLoop is the only writer on the socket. It drains send until it is
// closed, or cancels the connection on the first failed write.
func (h *WSHandler) writeLoop(w jsonWriter, send <-chan outboundMessage[any], cancel context.CancelFunc) {
	for msg := range send {
		if err := w.WriteJSON(msg); err != nil {
			h.log.Debug("ws write error", zap.Error(err))
			cancel()
			return
		}
	}
}

// enqueueMessage queues msg for the writer, giving up once ctx is done.
func enqueueMessage(ctx context.Context, send chan<- outboundMessage[any], msg outboundMessage[any]) bool {
	select {
	case send <- msg:
		return true
	case <-ctx.Done():
		return false
	}
}

// handle applies one client message and returns the replies.
func (h *WSHandler) handle(ctx context.Context, attempt *app.Attempt, inbound inboundMessage) []outboundMessage[any] {
	session := attempt.Session()
	state := func() outboundMessage[any] {
		return outboundMessage[any]{Type: "state", Payload: buildState(session.Snapshot())}
	}
	fail := func(message string) []outboundMessage[any] {
		return []outboundMessage[any]{{Type: "error", Payload: errorPayload{Message: message}}}
	}

	switch inbound.Type {
	case "select":
		var payload selectPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return fail("invalid select payload")
		}
		if err := session.Select(payload.Answer); err != nil {
			return fail(err.Error())
		}
	case "goto":
		var payload gotoPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return fail("invalid goto payload")
		}
		session.GoTo(payload.Index)
	case "next":
		session.Next()
	case "prev":
		session.Prev()
	case "submit":
		if err := session.RequestSubmit(); err != nil {
			return fail(err.Error())
		}
	case "cancelSubmit":
		if err := session.CancelSubmit(); err != nil {
			return fail(err.Error())
		}
	case "confirmSubmit":
		sub, ok, err := attempt.ConfirmSubmit(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrQuizNotActive) {
				return fail(err.Error())
			}
			return fail(saveFailedMessage)
		}
		if !ok {
			return fail(domain.ErrQuizSubmitted.Error())
		}
		return []outboundMessage[any]{{Type: "submitted", Payload: sub}}
	default:
		return fail("unsupported message type")
	}
	return []outboundMessage[any]{state()}
}

func buildState(snap quiz.Snapshot) statePayload {
	payload := statePayload{
		Phase:         snap.State.String(),
		Index:         snap.Index,
		Total:         snap.Total,
		Selected:      snap.Selected,
		Answers:       snap.Answers,
		AnsweredCount: snap.AnsweredCount,
	}
	if snap.Current != nil {
		payload.Question = questionView{
			Number:     snap.Index + 1,
			Text:       snap.Current.Question.Question,
			Category:   snap.Current.Category,
			Difficulty: snap.Current.Difficulty,
			Type:       snap.Current.Type,
			Answers:    snap.Current.ShuffledAnswers,
		}
	}
	if snap.State == quiz.StateSubmitting {
		payload.Confirm = confirmPrompt
	}
	return payload
}
