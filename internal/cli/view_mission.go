package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/icanacademy/eduspace/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

func (m stageModel) updateMissionControl(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.levelIdx > 0 {
			m.levelIdx--
		}
		return m, nil

	case "down", "j":
		if m.levelIdx < len(domain.AllGradeLevels)-1 {
			m.levelIdx++
		}
		return m, nil

	case "g":
		level := domain.AllGradeLevels[m.levelIdx]
		if err := m.sess.SetLevel(context.Background(), level); err != nil {
			m.notice = "Could not save the grade level."
			return m, nil
		}
		next, tick := m.startBusy(" Scanning deep space for missions...")
		sess := m.sess
		return next, tea.Batch(tick, func() tea.Msg {
			return missionOfferedMsg{mission: sess.GenerateMission(context.Background())}
		})

	case "enter":
		if m.offered == nil {
			return m, nil
		}
		if err := m.sess.SelectMission(context.Background(), m.offered); err != nil {
			m.notice = "Mission accepted, but saving it failed."
		}
		m.offered = nil
		return m.startConversation()
	}

	return m, nil
}

func (m stageModel) viewMissionControl() string {
	var b strings.Builder
	b.WriteString(styleHeader.Render("MISSION CONTROL") + "\n\n")

	b.WriteString(styleTitle.Render("Grade level") + "\n")
	for i, g := range domain.AllGradeLevels {
		cursor := "  "
		if i == m.levelIdx {
			cursor = styleYou.Render("> ")
		}
		line := fmt.Sprintf("%s%s %s", cursor, g,
			styleDim.Render("("+g.Difficulty()+")"))
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	if m.offered != nil {
		b.WriteString(renderMissionCard(m.offered))
		b.WriteString(styleDim.Render("enter accept mission · g scan again") + "\n")
	} else if active := m.sess.Mission(); active != nil {
		b.WriteString(styleTitle.Render("Active mission: ") + active.Title + "\n")
		b.WriteString(styleDim.Render("g scan for a new mission · tab next stage") + "\n")
	} else {
		b.WriteString(styleDim.Render("g scan for a mission · q quit") + "\n")
	}

	return b.String()
}

// renderMissionCard formats a mission the way the briefing screen shows it.
// Also used by the one-shot `eduspace mission` command.
func renderMissionCard(mission *domain.Mission) string {
	var b strings.Builder

	b.WriteString(styleTitle.Render(mission.Title))
	b.WriteString("  " + difficultyStyle(mission.Difficulty).Render("["+mission.Difficulty+"]") + "\n")
	if len(mission.Tags) > 0 {
		b.WriteString(styleTag.Render(strings.Join(mission.Tags, " · ")) + "\n")
	}
	b.WriteString("\n" + mission.Description + "\n\n")
	b.WriteString(styleTitle.Render("Objective: ") + mission.LearningObjective + "\n\n")

	b.WriteString(styleTitle.Render("Decision challenges") + "\n")
	for i, q := range mission.DecisionChallenges {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, q))
	}
	b.WriteString("\n" + styleTitle.Render("Possible approaches") + "\n")
	for _, s := range mission.PossibleSolutions {
		b.WriteString("  - " + s + "\n")
	}
	b.WriteString("\n")

	return styleCard.Render(b.String()) + "\n"
}

func (m stageModel) updateKnowledgeBase(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.String() == "enter" {
		return m.goTo(domain.StageOrienteering)
	}
	return m, nil
}

func (m stageModel) viewKnowledgeBase() string {
	mission := m.sess.Mission()
	if mission == nil {
		return styleDim.Render("No active mission.")
	}

	var b strings.Builder
	b.WriteString(styleHeader.Render("KNOWLEDGE BASE") + "\n\n")
	b.WriteString(styleDim.Render("Core concepts for ") + styleTitle.Render(mission.Title) + "\n\n")
	for _, c := range mission.CoreConcepts {
		b.WriteString(styleTitle.Render(c.Term) + "\n")
		b.WriteString("  " + c.Definition + "\n\n")
	}
	b.WriteString(styleDim.Render("enter begin orienteering") + "\n")
	return b.String()
}
