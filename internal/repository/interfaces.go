package repository

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested key has no stored value.
// Callers treat it as "use the default", never as a failure.
var ErrNotFound = errors.New("not found")

// Well-known state keys.
const (
	KeyCurrentMission = "currentMission"
	KeyGradeLevel     = "gradeLevel"
	KeyTourCompleted  = "tourCompleted"
)

// StateRepo is the durable per-user key-value store that survives
// application restarts. Values are opaque strings (JSON for structured
// entries).
type StateRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
