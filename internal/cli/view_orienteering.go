package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/icanacademy/eduspace/internal/domain"
	"github.com/icanacademy/eduspace/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

func (m stageModel) updateOrienteering(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form != nil {
		return m.updateDecisionForm(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		if text == "" || m.busy {
			return m, nil
		}
		m.input.Reset()
		next, tick := m.startBusy(" Commander Gemini is thinking...")
		sess := m.sess
		return next, tea.Batch(tick, func() tea.Msg {
			return conversationMsg{err: sess.Send(context.Background(), text)}
		})

	case "ctrl+d":
		return m.openDecisionForm()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m stageModel) openDecisionForm() (tea.Model, tea.Cmd) {
	pending := m.sess.PendingChallenges()
	options := make([]huh.Option[string], 0, len(pending)+1)
	for _, q := range pending {
		options = append(options, huh.NewOption(q, q))
	}
	options = append(options, huh.NewOption("Custom decision", ""))

	m.decisionQ = ""
	m.decisionChoice = ""
	m.decisionReason = ""
	if len(pending) > 0 {
		m.decisionQ = pending[0]
	}

	m.form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Which challenge are you resolving?").
			Options(options...).
			Value(&m.decisionQ),
		huh.NewInput().
			Title("Your decision").
			Value(&m.decisionChoice),
		huh.NewText().
			Title("Your reasoning").
			Value(&m.decisionReason),
	))
	return m, m.form.Init()
}

func (m stageModel) updateDecisionForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		question := m.decisionQ
		choice := strings.TrimSpace(m.decisionChoice)
		reason := strings.TrimSpace(m.decisionReason)
		m.form = nil

		if choice == "" {
			m.notice = noticeForError(session.ErrEmptyDecision)
			return m, nil
		}

		next, tick := m.startBusy(" Logging your decision...")
		sess := m.sess
		return next, tea.Batch(tick, func() tea.Msg {
			return conversationMsg{err: sess.CommitDecision(context.Background(), question, choice, reason)}
		})
	}

	return m, cmd
}

func (m stageModel) viewOrienteering() string {
	mission := m.sess.Mission()
	if mission == nil {
		return styleDim.Render("No active mission.")
	}

	var b strings.Builder
	b.WriteString(styleHeader.Render("ORIENTEERING") + "  " + styleDim.Render(mission.Title) + "\n\n")

	history := m.sess.History()
	start := 0
	if max := chatWindow(m.height); len(history) > max {
		start = len(history) - max
	}
	for _, msg := range history[start:] {
		b.WriteString(renderTurn(msg) + "\n")
	}

	decisions := m.sess.Decisions()
	if len(decisions) > 0 {
		b.WriteString(styleDim.Render(fmt.Sprintf("Decision log: %d of %d challenges resolved",
			resolvedCount(mission, decisions), len(mission.DecisionChallenges))) + "\n")
	}

	if m.form != nil {
		b.WriteString("\n" + m.form.View())
		return b.String()
	}

	b.WriteString("\n" + m.input.View() + "\n")
	b.WriteString(styleDim.Render("enter send · ctrl+d log a decision · tab next stage") + "\n")
	return b.String()
}

func renderTurn(msg domain.Message) string {
	var b strings.Builder
	switch msg.Role {
	case domain.RoleStudent:
		b.WriteString(styleYou.Render("You: ") + msg.Text)
	default:
		b.WriteString(styleMentor.Render("Commander Gemini: ") + msg.Text)
	}
	for _, link := range msg.GroundingLinks {
		b.WriteString("\n  " + styleDim.Render("source: "+link.Title+" <"+link.URI+">"))
	}
	if n := len(msg.Images); n > 0 {
		b.WriteString("\n  " + styleTag.Render(fmt.Sprintf("[%d illustration(s) rendered]", n)))
	}
	return b.String()
}

// chatWindow caps how many turns are rendered so the transcript fits the
// terminal.
func chatWindow(height int) int {
	if height <= 0 {
		return 12
	}
	n := height - 10
	if n < 4 {
		return 4
	}
	return n
}

func resolvedCount(mission *domain.Mission, decisions []domain.MicroDecision) int {
	resolved := make(map[string]bool, len(decisions))
	for _, d := range decisions {
		resolved[d.Question] = true
	}
	n := 0
	for _, q := range mission.DecisionChallenges {
		if resolved[q] {
			n++
		}
	}
	return n
}
