package session

import (
	"context"
	"fmt"

	"github.com/icanacademy/eduspace/internal/domain"
)

const (
	// errorTurnText is shown in place of a mentor reply when the gateway
	// call fails. The student's turn stays in the transcript so the
	// student/mentor pairing is preserved.
	errorTurnText = "Connection interruption. Please retry transmission."

	// minIllustrationRunes is the reply length above which background
	// illustrations are generated.
	minIllustrationRunes = 50

	// illustrationExcerptRunes caps the reply excerpt handed to the
	// illustration prompt.
	illustrationExcerptRunes = 300
)

// StartConversation binds a mentor conversation to the active mission and,
// if the transcript is still empty, sends the hidden bootstrap turn that
// makes the mentor open with the warm-up question. Only the mentor's
// opening message is appended to the history.
func (s *Session) StartConversation(ctx context.Context) error {
	s.mu.Lock()
	mission := s.mission
	if mission == nil {
		s.mu.Unlock()
		return ErrNoMission
	}
	if s.mentor == nil {
		s.mentor = s.svc.NewMentor(s.level, mission)
	}
	fresh := len(s.history) == 0
	s.mu.Unlock()

	if !fresh {
		return nil
	}

	bootstrap := fmt.Sprintf("Mission Start. Please ask me the Warm-Up Question: %q", mission.WarmUpQuestion)
	return s.sendTurn(ctx, bootstrap, true)
}

// Send delivers a student message to the mentor. The student's turn is
// appended immediately; the mentor's reply (or the fixed error turn on
// failure) follows. Long replies trigger background illustration work
// that patches images onto the reply once ready.
func (s *Session) Send(ctx context.Context, text string) error {
	return s.sendTurn(ctx, text, false)
}

// CommitDecision records a resolved decision challenge and informs the
// mentor through a hidden turn so the conversation moves to the next
// step. An empty question is logged under the custom-decision label.
func (s *Session) CommitDecision(ctx context.Context, question, decision, reasoning string) error {
	if decision == "" {
		return ErrEmptyDecision
	}

	md := domain.NewMicroDecision(question, decision, reasoning)

	s.mu.Lock()
	s.decisions = append(s.decisions, md)
	started := s.mentor != nil
	s.mu.Unlock()

	if !started {
		return ErrNoConversation
	}

	hidden := fmt.Sprintf("I have decided on %q. Choice: %s. Reasoning: %s. What is the next step?",
		md.Question, md.Decision, md.Reasoning)
	return s.sendTurn(ctx, hidden, true)
}

// IsResolved reports whether a decision challenge has a committed entry
// in the decision log. Matching is by exact question text.
func (s *Session) IsResolved(question string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.decisions {
		if d.Question == question {
			return true
		}
	}
	return false
}

// PendingChallenges returns the mission's decision challenges that have
// no committed decision yet, in mission order.
func (s *Session) PendingChallenges() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mission == nil {
		return nil
	}
	resolved := make(map[string]bool, len(s.decisions))
	for _, d := range s.decisions {
		resolved[d.Question] = true
	}
	var pending []string
	for _, q := range s.mission.DecisionChallenges {
		if !resolved[q] {
			pending = append(pending, q)
		}
	}
	return pending
}

// PatchImages attaches illustrations to the message with the given ID.
// Returns false when the message no longer exists, which happens when a
// new mission reset the transcript while the images were rendering.
func (s *Session) PatchImages(turnID string, images []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.history {
		if s.history[i].ID == turnID {
			s.history[i].Images = images
			return true
		}
	}
	return false
}

func (s *Session) sendTurn(ctx context.Context, text string, hidden bool) error {
	s.mu.Lock()
	mentor := s.mentor
	s.mu.Unlock()
	if mentor == nil {
		return ErrNoConversation
	}

	if !hidden {
		s.appendMessage(domain.NewMessage(domain.RoleStudent, text))
	}

	result, err := mentor.Send(ctx, text)
	if err != nil {
		// Only visible sends leave a trace. A failed hidden turn (bootstrap
		// or decision notice) must not pollute the transcript: an empty
		// history is what lets StartConversation retry the warm-up.
		if !hidden {
			s.appendMessage(domain.NewMessage(domain.RoleMentor, errorTurnText))
		}
		return fmt.Errorf("mentor turn: %w", err)
	}

	reply := domain.NewMessage(domain.RoleMentor, result.Text)
	reply.GroundingLinks = result.GroundingLinks
	s.appendMessage(reply)

	if len([]rune(result.Text)) > minIllustrationRunes {
		s.illustrateAsync(reply.ID, result.Text)
	}
	return nil
}

func (s *Session) appendMessage(m domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, m)
}

// illustrateAsync renders illustrations for a mentor reply in the
// background and patches them onto the live transcript. The work is
// detached from the caller's context so navigating away does not cancel
// it.
func (s *Session) illustrateAsync(turnID, replyText string) {
	runes := []rune(replyText)
	if len(runes) > illustrationExcerptRunes {
		runes = runes[:illustrationExcerptRunes]
	}
	excerpt := string(runes)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		images := s.svc.Illustrations.Generate(context.Background(), excerpt)
		if len(images) > 0 {
			s.PatchImages(turnID, images)
		}
	}()
}
