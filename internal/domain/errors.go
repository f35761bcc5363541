package domain

import "errors"

var (
	// ErrNoQuestions is returned when an operation needs a loaded question batch.
	ErrNoQuestions = errors.New("no questions loaded")
	// ErrQuizNotActive indicates the quiz is not accepting the requested transition.
	ErrQuizNotActive = errors.New("quiz is not active")
	// ErrQuizSubmitted is returned for any change after results were finalized.
	ErrQuizSubmitted = errors.New("quiz already submitted")
	// ErrUnknownAnswer indicates a selected answer is not offered by the current question.
	ErrUnknownAnswer = errors.New("answer not offered for this question")
	// ErrEmailRequired is returned when a quiz is started without an email.
	ErrEmailRequired = errors.New("email is required")
	// ErrSourceUnavailable marks failures of the question source.
	ErrSourceUnavailable = errors.New("question source unavailable")
)
