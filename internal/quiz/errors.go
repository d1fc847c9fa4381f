package quiz

import "errors"

var (
	// ErrInsufficientData means the question pool was empty for the
	// requested level window.
	ErrInsufficientData = errors.New("question pool is empty")

	// ErrPlacementExists means the student already has their one-time
	// placement attempt.
	ErrPlacementExists = errors.New("placement attempt already exists")

	// ErrAlreadyGraded means the attempt was graded by an earlier submit;
	// the grade-and-persist update is a status compare-and-swap, so a
	// concurrent duplicate submission lands here instead of double-grading.
	ErrAlreadyGraded = errors.New("attempt already graded")

	// ErrAttemptLimit means the learner has no quiz attempts left today.
	ErrAttemptLimit = errors.New("daily attempt limit reached")

	ErrNotFound = errors.New("not found")
)
