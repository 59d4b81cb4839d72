package domain

import "errors"

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskListNotFound  = errors.New("task list not found")
	ErrHouseNotFound     = errors.New("house not found")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrActorRequired     = errors.New("completing a task requires an acting user")
	ErrInvalidTaskFilter = errors.New("exactly one of house id or task list id is required")
)

// TransitionError is returned by the completion command when the requested
// status change is not a genuine transition.
type TransitionError struct {
	Reason string
}

func (e *TransitionError) Error() string {
	return e.Reason
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

var (
	ErrAlreadyNotCompleted = &TransitionError{Reason: "task already marked as not completed"}
	ErrAlreadyCompleted    = &TransitionError{Reason: "task already marked as completed"}
	ErrUnrecognizedStatus  = &TransitionError{Reason: "unrecognized status"}
)
