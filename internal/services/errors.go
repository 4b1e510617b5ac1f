package services

import "errors"

var (
	// ErrSessionNotFound is returned for unknown session codes.
	ErrSessionNotFound = errors.New("session not found")
	// ErrMissingFields is returned when a create request lacks required data.
	ErrMissingFields = errors.New("missing required fields")
	// ErrAlreadyStarted is returned when joining or starting a session that left the waiting state.
	ErrAlreadyStarted = errors.New("session has already started")
	// ErrPlayerExists is returned when a player id is already present in the session.
	ErrPlayerExists = errors.New("player already exists in this session")
	// ErrNotHost is returned when a host-only action comes from another caller.
	ErrNotHost = errors.New("caller is not the session host")
	// ErrNoPlayers is returned when starting a session nobody joined.
	ErrNoPlayers = errors.New("session has no players")
	// ErrNotActive is returned when an action requires an active session.
	ErrNotActive = errors.New("session is not active")
	// ErrPlayerNotFound is returned when the acting player never joined.
	ErrPlayerNotFound = errors.New("player not found in this session")
	// ErrDuplicateAnswer is returned when a player answers the same question twice.
	ErrDuplicateAnswer = errors.New("player already answered this question")
	// ErrAnswerWindowClosed is returned for answers arriving after the question closed.
	ErrAnswerWindowClosed = errors.New("answer window has closed")
	// ErrAnswerUnavailable is returned when the answer validation service cannot be reached.
	ErrAnswerUnavailable = errors.New("answer service unavailable")
)
