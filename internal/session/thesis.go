package session

import (
	"context"
	"fmt"

	"github.com/icanacademy/eduspace/internal/domain"
)

// DraftThesis asks the gateway to synthesize a thesis draft from the
// conversation and the decision log, then merges it over the student's
// existing edits: fields the draft leaves empty keep their current
// value. Requires at least one real student/mentor exchange; the guard
// runs before any network call.
func (s *Session) DraftThesis(ctx context.Context) error {
	s.mu.Lock()
	mission := s.mission
	historyLen := len(s.history)
	level := s.level
	s.mu.Unlock()

	if mission == nil {
		return ErrNoMission
	}
	if historyLen < 2 {
		return ErrNotEnoughHistory
	}

	draft, err := s.svc.Thesis.Draft(ctx, mission, s.History(), s.Decisions(), level)
	if err != nil {
		return fmt.Errorf("drafting thesis: %w", err)
	}

	s.mu.Lock()
	s.thesis.Merge(*draft)
	s.mu.Unlock()
	return nil
}

// CompileDeck turns the thesis into a slide deck: the fixed title slide
// followed by the gateway's content slides. A thesis without a title is
// rejected. When the gateway returns no slides the deck stays empty so
// the launchpad can show its empty state.
func (s *Session) CompileDeck(ctx context.Context) error {
	s.mu.Lock()
	thesis := s.thesis
	level := s.level
	s.mu.Unlock()

	if thesis.Title == "" {
		return ErrNoThesisTitle
	}

	slides, err := s.svc.Slides.Compile(ctx, &thesis, level)
	if err != nil {
		return fmt.Errorf("compiling slides: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(slides) == 0 {
		s.deck = nil
		return nil
	}
	deck := make([]domain.Slide, 0, len(slides)+1)
	deck = append(deck, domain.NewTitleSlide(thesis.Title))
	deck = append(deck, slides...)
	s.deck = deck
	return nil
}
