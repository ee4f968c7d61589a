package session

import "errors"

var (
	// ErrNoMission indicates an operation that requires an active mission
	// was attempted before one was selected.
	ErrNoMission = errors.New("no active mission selected")

	// ErrNotEnoughHistory indicates a thesis draft was requested before the
	// student had a real exchange with the mentor.
	ErrNotEnoughHistory = errors.New("not enough conversation history to draft a thesis")

	// ErrNoThesisTitle indicates slide compilation was requested for a
	// thesis without a title.
	ErrNoThesisTitle = errors.New("thesis needs a title before compiling slides")

	// ErrEmptyDecision indicates a decision commit without decision text.
	ErrEmptyDecision = errors.New("decision text is required")

	// ErrNoConversation indicates a chat operation before the conversation
	// was started for the active mission.
	ErrNoConversation = errors.New("conversation not started")
)
