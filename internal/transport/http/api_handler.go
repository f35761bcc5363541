package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
	"quizbabu-service/internal/app"
	"quizbabu-service/internal/domain"
)

// APIHandler serves the landing and report screens.
type APIHandler struct {
	service *app.QuizService
	log     *zap.Logger
}

func NewAPIHandler(service *app.QuizService, log *zap.Logger) *APIHandler {
	return &APIHandler{service: service, log: log}
}

type startSessionRequest struct {
	Email string `json:"email"`
}

type startSessionResponse struct {
	Redirect string `json:"redirect"`
}

type reportResponse struct {
	Found      bool                `json:"found"`
	Message    string              `json:"message,omitempty"`
	Email      string              `json:"email"`
	Score      int                 `json:"score"`
	Total      int                 `json:"total"`
	Percentage int                 `json:"percentage"`
	Correct    int                 `json:"correct"`
	Incorrect  int                 `json:"incorrect"`
	Results    []domain.QuizResult `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// StartSession stores the email entered on the landing screen.
func (h *APIHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.service.Begin(r.Context(), SessionID(r.Context()), req.Email); err != nil {
		if errors.Is(err, domain.ErrEmailRequired) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		h.log.Error("failed to start session", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not start quiz"})
		return
	}
	writeJSON(w, http.StatusOK, startSessionResponse{Redirect: "/quiz"})
}

// GetReport renders the carried-over results; missing data is a normal "not found" view.
func (h *APIHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	view := h.service.Report(r.Context(), SessionID(r.Context()))
	resp := reportResponse{
		Found:   view.Found,
		Email:   view.Email,
		Results: view.Results,
	}
	if !view.Found {
		resp.Message = "No results found."
		resp.Results = []domain.QuizResult{}
	} else {
		resp.Score = view.Report.Score
		resp.Total = view.Report.Total
		resp.Percentage = view.Report.Percentage
		resp.Correct = view.Report.Score
		resp.Incorrect = view.Report.Incorrect()
	}
	writeJSON(w, http.StatusOK, resp)
}

// ResetReport clears the carried-over data ("try another quiz").
func (h *APIHandler) ResetReport(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reset(r.Context(), SessionID(r.Context())); err != nil {
		h.log.Error("failed to reset report", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not reset"})
		return
	}
	writeJSON(w, http.StatusOK, startSessionResponse{Redirect: "/"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
