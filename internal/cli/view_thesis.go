package cli

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

func (m stageModel) updateThesis(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.thesisForm != nil {
		return m.updateThesisForm(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "d":
		if m.busy {
			return m, nil
		}
		next, tick := m.startBusy(" Synthesizing a draft from your mission log...")
		sess := m.sess
		return next, tea.Batch(tick, func() tea.Msg {
			return thesisDraftedMsg{err: sess.DraftThesis(context.Background())}
		})

	case "e":
		return m.openThesisForm()
	}

	return m, nil
}

func (m stageModel) openThesisForm() (tea.Model, tea.Cmd) {
	m.thesisEdit = m.sess.Thesis()
	m.thesisForm = huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Title").Value(&m.thesisEdit.Title),
		huh.NewText().Title("Abstract").Value(&m.thesisEdit.Abstract),
		huh.NewText().Title("Problem Analysis").Value(&m.thesisEdit.ProblemAnalysis),
		huh.NewText().Title("Alternatives Considered").Value(&m.thesisEdit.Alternatives),
		huh.NewText().Title("Proposed Solution").Value(&m.thesisEdit.ProposedSolution),
		huh.NewText().Title("Conclusion").Value(&m.thesisEdit.Conclusion),
	))
	return m, m.thesisForm.Init()
}

func (m stageModel) updateThesisForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.thesisForm = nil
		return m, nil
	}

	form, cmd := m.thesisForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.thesisForm = f
	}

	if m.thesisForm.State == huh.StateCompleted {
		m.thesisForm = nil
		m.sess.SetThesis(m.thesisEdit)
		m.notice = "Thesis saved."
		return m, nil
	}

	return m, cmd
}

func (m stageModel) viewThesis() string {
	if m.thesisForm != nil {
		return styleHeader.Render("THESIS") + "\n\n" + m.thesisForm.View()
	}

	var b strings.Builder
	b.WriteString(styleHeader.Render("THESIS") + "\n\n")

	doc := m.sess.Thesis()
	if doc.IsEmpty() {
		b.WriteString(styleDim.Render("No thesis yet. Press d to synthesize a draft from your conversation and decisions, or e to write one yourself.") + "\n")
		return b.String()
	}

	sections := []struct{ name, text string }{
		{"Title", doc.Title},
		{"Abstract", doc.Abstract},
		{"Problem Analysis", doc.ProblemAnalysis},
		{"Alternatives Considered", doc.Alternatives},
		{"Proposed Solution", doc.ProposedSolution},
		{"Conclusion", doc.Conclusion},
	}
	for _, s := range sections {
		if s.text == "" {
			continue
		}
		b.WriteString(styleTitle.Render(s.name) + "\n" + s.text + "\n\n")
	}

	b.WriteString(styleDim.Render("d re-draft · e edit · tab next stage") + "\n")
	return b.String()
}
