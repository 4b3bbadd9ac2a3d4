package util

import "errors"

var (
	ErrEmailRegistered          = errors.New("email already registered")
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrUserDisabled             = errors.New("user is disabled")
	ErrAttemptAlreadyInProgress = errors.New("An attempt is already in progress")
	ErrNoAttemptInProgress      = errors.New("No attempt in progress")
	ErrOutOfScheduledDate       = errors.New("Out of scheduled date")
	ErrMaximumAttemptsReached   = errors.New("Maximum attempts reached")
	ErrStaleAutosave            = errors.New("Autosave rejected: stale revision")
	ErrAnswerNotInOptions       = errors.New("Answer must be one of the options")
)
