package models

import "errors"

var (
	// ErrUnauthorized is returned when no authenticated identity is present.
	ErrUnauthorized = errors.New("authentication required")
	// ErrForbidden is returned when the caller is authenticated but does not own the entity.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned for malformed or incomplete request payloads.
	ErrValidation = errors.New("validation failed")
	// ErrOutOfRange is returned for question or option indices outside the valid range.
	ErrOutOfRange = errors.New("index out of range")
	// ErrConversionFailed is returned when the AI response cannot be parsed into questions.
	ErrConversionFailed = errors.New("document conversion failed")
	// ErrUnsupportedFormat is returned for file types text extraction cannot handle.
	ErrUnsupportedFormat = errors.New("unsupported file type")
	// ErrQuizNotStarted is returned when an answer arrives before the session started.
	ErrQuizNotStarted = errors.New("quiz session not started")
	// ErrQuizCompleted is returned when an action arrives after the session completed.
	ErrQuizCompleted = errors.New("quiz session already completed")
	// ErrEmptyQuiz is returned when starting a session over a question set with no questions.
	ErrEmptyQuiz = errors.New("quiz has no questions")
	// ErrSessionNotFound is returned when a play session has expired or never existed.
	ErrSessionNotFound = errors.New("play session not found")
)
