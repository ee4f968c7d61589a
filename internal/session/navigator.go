package session

import "github.com/icanacademy/eduspace/internal/domain"

// GoTo switches the active stage. Every stage except mission control
// requires an active mission; a guarded attempt leaves the stage
// unchanged and returns ErrNoMission.
func (s *Session) GoTo(stage domain.Stage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if stage != domain.StageMissionControl && s.mission == nil {
		return ErrNoMission
	}
	s.stage = stage
	return nil
}
