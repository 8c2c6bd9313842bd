package apperrors

import "errors"

var (
	ErrInvalidDuration = errors.New("invalid duration")
	ErrSessionRunning  = errors.New("session already running")
	ErrNoActiveSession = errors.New("no active session")
	ErrCorruptState    = errors.New("corrupt session state")
	ErrLogNotFound     = errors.New("session log entry not found")
)
