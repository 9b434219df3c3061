package sessions

import "errors"

var (
	// ErrNoQuestionsAvailable means the test or topic resolves to an empty
	// question list; a session cannot start with zero questions.
	ErrNoQuestionsAvailable = errors.New("no questions available")

	// ErrForbidden means the session belongs to a different user.
	ErrForbidden = errors.New("session belongs to another user")

	// ErrSessionNotActive means the session already completed or was
	// abandoned; terminal states never accept answers.
	ErrSessionNotActive = errors.New("session is not in progress")

	// ErrSessionBusy means another submission for the same session is in
	// flight. The caller should retry once it settles.
	ErrSessionBusy = errors.New("another submission for this session is in flight")
)
