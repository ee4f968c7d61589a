package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/icanacademy/eduspace/internal/domain"
	"github.com/icanacademy/eduspace/internal/repository"
)

// Store persists the durable slice of session state: the active mission,
// the grade level and the tour flag. Conversation history, decisions,
// thesis and deck are per-run and are not persisted.
type Store struct {
	repo repository.StateRepo
}

// NewStore creates a Store over the given state repository.
func NewStore(repo repository.StateRepo) *Store {
	return &Store{repo: repo}
}

// SaveMission stores the active mission as JSON.
func (st *Store) SaveMission(ctx context.Context, m *domain.Mission) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding mission: %w", err)
	}
	return st.repo.Put(ctx, repository.KeyCurrentMission, string(data))
}

// SaveLevel stores the selected grade level.
func (st *Store) SaveLevel(ctx context.Context, level domain.GradeLevel) error {
	return st.repo.Put(ctx, repository.KeyGradeLevel, string(level))
}

// SaveTourCompleted stores the onboarding-tour flag.
func (st *Store) SaveTourCompleted(ctx context.Context, done bool) error {
	return st.repo.Put(ctx, repository.KeyTourCompleted, strconv.FormatBool(done))
}

// Clear removes all persisted session state.
func (st *Store) Clear(ctx context.Context) error {
	for _, key := range []string{
		repository.KeyCurrentMission,
		repository.KeyGradeLevel,
		repository.KeyTourCompleted,
	} {
		if err := st.repo.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// LoadMission restores the persisted mission. Missing or corrupt entries
// yield (nil, nil): the student simply starts at mission control.
func (st *Store) LoadMission(ctx context.Context) (*domain.Mission, error) {
	raw, err := st.repo.Get(ctx, repository.KeyCurrentMission)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var m domain.Mission
	if err := json.Unmarshal([]byte(raw), &m); err != nil || m.Title == "" {
		// Corrupt entry from an older version: drop it rather than fail.
		_ = st.repo.Delete(ctx, repository.KeyCurrentMission)
		return nil, nil
	}
	return &m, nil
}

// LoadLevel restores the persisted grade level, falling back to the
// default for missing or unrecognized values.
func (st *Store) LoadLevel(ctx context.Context) (domain.GradeLevel, error) {
	raw, err := st.repo.Get(ctx, repository.KeyGradeLevel)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.DefaultGradeLevel, nil
		}
		return domain.DefaultGradeLevel, err
	}

	level, err := domain.ParseGradeLevel(raw)
	if err != nil {
		_ = st.repo.Delete(ctx, repository.KeyGradeLevel)
		return domain.DefaultGradeLevel, nil
	}
	return level, nil
}

// LoadTourCompleted restores the onboarding-tour flag, defaulting to false.
func (st *Store) LoadTourCompleted(ctx context.Context) (bool, error) {
	raw, err := st.repo.Get(ctx, repository.KeyTourCompleted)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	done, err := strconv.ParseBool(raw)
	if err != nil {
		return false, nil
	}
	return done, nil
}

// Rehydrate restores persisted state into the session. Called once at
// startup, before any other session method.
func (s *Session) Rehydrate(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	mission, err := s.store.LoadMission(ctx)
	if err != nil {
		return fmt.Errorf("restoring mission: %w", err)
	}
	level, err := s.store.LoadLevel(ctx)
	if err != nil {
		return fmt.Errorf("restoring grade level: %w", err)
	}
	tourDone, err := s.store.LoadTourCompleted(ctx)
	if err != nil {
		return fmt.Errorf("restoring tour flag: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mission = mission
	s.level = level
	s.tourDone = tourDone
	return nil
}

// SelectMission activates a mission, clears the conversation and the
// decision log, and moves the student to the orienteering stage. Thesis
// drafts and a compiled deck survive the switch.
func (s *Session) SelectMission(ctx context.Context, m *domain.Mission) error {
	s.mu.Lock()
	s.mission = m
	s.history = nil
	s.decisions = nil
	s.mentor = nil
	s.stage = domain.StageOrienteering
	level := s.level
	s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	if err := s.store.SaveMission(ctx, m); err != nil {
		return err
	}
	return s.store.SaveLevel(ctx, level)
}

// SetLevel changes the grade level. An in-flight conversation is rebound
// to the new level on the next turn batch; history is kept.
func (s *Session) SetLevel(ctx context.Context, level domain.GradeLevel) error {
	s.mu.Lock()
	s.level = level
	s.mentor = nil
	s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	return s.store.SaveLevel(ctx, level)
}

// TourCompleted reports whether the onboarding tour has been dismissed.
func (s *Session) TourCompleted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tourDone
}

// CompleteTour marks the onboarding tour as done and persists the flag.
func (s *Session) CompleteTour(ctx context.Context) error {
	s.mu.Lock()
	s.tourDone = true
	s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	return s.store.SaveTourCompleted(ctx, true)
}
