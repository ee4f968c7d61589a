package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m stageModel) updateLaunchpad(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "c":
		if m.busy {
			return m, nil
		}
		next, tick := m.startBusy(" Compiling your presentation...")
		sess := m.sess
		return next, tea.Batch(tick, func() tea.Msg {
			return deckCompiledMsg{err: sess.CompileDeck(context.Background())}
		})

	case "left", "h":
		if m.slideIdx > 0 {
			m.slideIdx--
		}
		return m, nil

	case "right", "l", "enter":
		if m.slideIdx < len(m.sess.Deck())-1 {
			m.slideIdx++
		}
		return m, nil
	}

	return m, nil
}

func (m stageModel) viewLaunchpad() string {
	var b strings.Builder
	b.WriteString(styleHeader.Render("LAUNCHPAD") + "\n\n")

	deck := m.sess.Deck()
	if len(deck) == 0 {
		b.WriteString(styleDim.Render("No presentation yet. Press c to compile your thesis into slides.") + "\n")
		return b.String()
	}

	if m.slideIdx >= len(deck) {
		m.slideIdx = len(deck) - 1
	}
	slide := deck[m.slideIdx]

	var card strings.Builder
	card.WriteString(styleTitle.Render(slide.Title) + "\n\n")
	for _, p := range slide.Points {
		card.WriteString("  • " + p + "\n")
	}
	b.WriteString(styleCard.Render(card.String()) + "\n")

	b.WriteString(styleDim.Render(fmt.Sprintf("slide %d/%d · ←/→ navigate · c recompile", m.slideIdx+1, len(deck))) + "\n")
	return b.String()
}
