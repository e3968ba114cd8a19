package domain

import "errors"

var (
	// ErrMissingTopic is returned when an answered question has no topic.
	ErrMissingTopic = errors.New("question topic missing")
	// ErrMissingDifficulty is returned when an answered question has no difficulty.
	ErrMissingDifficulty = errors.New("question difficulty missing")
	// ErrMissingCorrectOption is returned when an answered question has no correct option.
	ErrMissingCorrectOption = errors.New("question correct option missing")
	// ErrIncompleteAttempt indicates a quiz attempt lacks user, quiz ID, or timestamp.
	ErrIncompleteAttempt = errors.New("quiz attempt missing required fields")
	// ErrAttemptNotFound indicates no current attempt exists for the user.
	ErrAttemptNotFound = errors.New("quiz attempt not found")
)
