// Package session owns the application state: the active mission, the
// conversation history, the decision log, the thesis and the slide deck.
// One Session is the single writer for all of it; asynchronous callbacks
// (image patches) go through the Session so they always observe the live
// state rather than a stale snapshot.
package session

import (
	"context"
	"sync"

	"github.com/icanacademy/eduspace/internal/domain"
	"github.com/icanacademy/eduspace/internal/gateway"
)

// Mentor is the conversational surface of the gateway. Satisfied by
// *gateway.ChatSession.
type Mentor interface {
	Send(ctx context.Context, text string) (*gateway.TurnResult, error)
}

// MentorFactory creates a fresh mentor conversation bound to a level and
// mission. A new handle is created whenever either changes.
type MentorFactory func(level domain.GradeLevel, mission *domain.Mission) Mentor

// Services bundles the gateway operations the session depends on.
type Services struct {
	Missions      gateway.MissionService
	Illustrations gateway.IllustrationService
	Thesis        gateway.ThesisService
	Slides        gateway.SlideService
	NewMentor     MentorFactory
}

// Session is the top-level state container for one student. All mutation
// goes through its methods; reads return copies.
type Session struct {
	mu sync.Mutex

	stage     domain.Stage
	level     domain.GradeLevel
	mission   *domain.Mission
	history   []domain.Message
	decisions []domain.MicroDecision
	thesis    domain.ThesisDocument
	deck      []domain.Slide
	tourDone  bool

	mentor Mentor

	svc   Services
	store *Store

	// wg tracks fire-and-forget illustration work so tests can join it.
	wg sync.WaitGroup
}

// New creates a Session at mission control with the default grade level.
func New(svc Services, store *Store) *Session {
	return &Session{
		stage: domain.StageMissionControl,
		level: domain.DefaultGradeLevel,
		svc:   svc,
		store: store,
	}
}

// Stage returns the currently active stage.
func (s *Session) Stage() domain.Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

// Level returns the selected grade level.
func (s *Session) Level() domain.GradeLevel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// Mission returns the active mission, or nil before one is selected.
func (s *Session) Mission() *domain.Mission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mission
}

// History returns a copy of the conversation history in display order.
func (s *Session) History() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.history))
	copy(out, s.history)
	return out
}

// Decisions returns a copy of the decision log in commit order.
func (s *Session) Decisions() []domain.MicroDecision {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.MicroDecision, len(s.decisions))
	copy(out, s.decisions)
	return out
}

// Thesis returns the current thesis document.
func (s *Session) Thesis() domain.ThesisDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.thesis
}

// SetThesis replaces the thesis document with the student's edits.
func (s *Session) SetThesis(doc domain.ThesisDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.thesis = doc
}

// Deck returns a copy of the compiled slide deck.
func (s *Session) Deck() []domain.Slide {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Slide, len(s.deck))
	copy(out, s.deck)
	return out
}

// GenerateMission produces a new mission card for the current level.
// It never fails; the gateway substitutes its fallback mission.
func (s *Session) GenerateMission(ctx context.Context) *domain.Mission {
	return s.svc.Missions.Generate(ctx, s.Level())
}

// Wait joins any in-flight background illustration work. Used by tests
// and on shutdown.
func (s *Session) Wait() {
	s.wg.Wait()
}
