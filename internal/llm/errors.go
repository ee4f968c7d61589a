package llm

import "errors"

var (
	// ErrNoAPIKey indicates no API key was configured for the backend.
	ErrNoAPIKey = errors.New("generative backend api key not configured")

	// ErrUnavailable indicates the generative backend is unreachable.
	ErrUnavailable = errors.New("generative backend unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("generation request timed out")

	// ErrInvalidOutput indicates the backend response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid generation output format")

	// ErrNoContent indicates the backend returned an empty candidate list
	// or a candidate without usable parts.
	ErrNoContent = errors.New("no content returned by backend")
)
