package cli

import (
	"context"
	"errors"
	"time"

	"github.com/icanacademy/eduspace/internal/domain"
	"github.com/icanacademy/eduspace/internal/session"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// stageOrder is the navigation order of the five stages.
var stageOrder = []domain.Stage{
	domain.StageMissionControl,
	domain.StageKnowledgeBase,
	domain.StageOrienteering,
	domain.StageThesis,
	domain.StageLaunchpad,
}

var stageNames = map[domain.Stage]string{
	domain.StageMissionControl: "Mission Control",
	domain.StageKnowledgeBase:  "Knowledge Base",
	domain.StageOrienteering:   "Orienteering",
	domain.StageThesis:         "Thesis",
	domain.StageLaunchpad:      "Launchpad",
}

// Messages emitted by background commands.
type (
	missionOfferedMsg struct{ mission *domain.Mission }
	conversationMsg   struct{ err error }
	thesisDraftedMsg  struct{ err error }
	deckCompiledMsg   struct{ err error }
	imagesTickMsg     struct{}
)

// stageModel is the bubbletea model for the mission console. It renders
// whichever stage the session navigator points at.
type stageModel struct {
	app  *App
	sess *session.Session

	width  int
	height int

	notice string
	busy   bool
	label  string
	spin   spinner.Model

	// mission control
	levelIdx int
	offered  *domain.Mission

	// orienteering
	input          textinput.Model
	form           *huh.Form
	decisionQ      string
	decisionChoice string
	decisionReason string

	// thesis
	thesisForm *huh.Form
	thesisEdit domain.ThesisDocument

	// launchpad
	slideIdx int

	quitting bool
}

func newStageModel(app *App) stageModel {
	ti := textinput.New()
	ti.Placeholder = "Transmit to Commander Gemini..."
	ti.CharLimit = 500
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	levelIdx := 0
	for i, g := range domain.AllGradeLevels {
		if g == app.Session.Level() {
			levelIdx = i
		}
	}

	m := stageModel{
		app:      app,
		sess:     app.Session,
		input:    ti,
		spin:     sp,
		levelIdx: levelIdx,
	}
	if !app.Session.TourCompleted() {
		m.notice = "Welcome, cadet. Pick a grade level, press g to scan for a mission, and enter to accept it. Tab moves between stages."
	}
	return m
}

func (m stageModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m stageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case missionOfferedMsg:
		m.busy = false
		m.offered = msg.mission
		return m, nil

	case conversationMsg:
		m.busy = false
		if msg.err != nil {
			m.notice = "Transmission failed. The log shows the interruption."
		}
		// Illustrations arrive asynchronously; re-render shortly to
		// pick up patched images.
		return m, imagesTick()

	case imagesTickMsg:
		return m, nil

	case thesisDraftedMsg:
		m.busy = false
		if msg.err != nil {
			m.notice = noticeForError(msg.err)
			return m, nil
		}
		m.notice = "Draft merged into your thesis."
		return m, nil

	case deckCompiledMsg:
		m.busy = false
		m.slideIdx = 0
		if msg.err != nil {
			m.notice = noticeForError(msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m.updateStage(msg)
}

func (m stageModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The first keypress dismisses the onboarding hint for good.
	if !m.sess.TourCompleted() {
		_ = m.sess.CompleteTour(context.Background())
		m.notice = ""
	}

	// An active form owns the keyboard.
	if m.form != nil || m.thesisForm != nil {
		return m.updateStage(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "tab", "shift+tab":
		delta := 1
		if msg.String() == "shift+tab" {
			delta = len(stageOrder) - 1
		}
		cur := 0
		for i, st := range stageOrder {
			if st == m.sess.Stage() {
				cur = i
			}
		}
		return m.goTo(stageOrder[(cur+delta)%len(stageOrder)])

	case "1", "2", "3", "4", "5":
		// Digits type into the chat input during orienteering.
		if m.sess.Stage() != domain.StageOrienteering {
			idx := int(msg.String()[0] - '1')
			return m.goTo(stageOrder[idx])
		}
	}

	return m.updateStage(msg)
}

// goTo applies the stage guard and surfaces the refusal as a notice.
func (m stageModel) goTo(stage domain.Stage) (tea.Model, tea.Cmd) {
	if err := m.sess.GoTo(stage); err != nil {
		m.notice = "Select a mission at Mission Control first."
		return m, nil
	}
	m.notice = ""
	// Entering orienteering (re)binds the mentor; the bootstrap turn is
	// only sent when the transcript is still empty.
	if stage == domain.StageOrienteering && m.sess.Mission() != nil {
		return m.startConversation()
	}
	return m, nil
}

func (m stageModel) updateStage(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.sess.Stage() {
	case domain.StageMissionControl:
		return m.updateMissionControl(msg)
	case domain.StageKnowledgeBase:
		return m.updateKnowledgeBase(msg)
	case domain.StageOrienteering:
		return m.updateOrienteering(msg)
	case domain.StageThesis:
		return m.updateThesis(msg)
	case domain.StageLaunchpad:
		return m.updateLaunchpad(msg)
	}
	return m, nil
}

func (m stageModel) View() string {
	if m.quitting {
		return ""
	}

	body := ""
	switch m.sess.Stage() {
	case domain.StageMissionControl:
		body = m.viewMissionControl()
	case domain.StageKnowledgeBase:
		body = m.viewKnowledgeBase()
	case domain.StageOrienteering:
		body = m.viewOrienteering()
	case domain.StageThesis:
		body = m.viewThesis()
	case domain.StageLaunchpad:
		body = m.viewLaunchpad()
	}

	out := m.viewTabs() + "\n\n" + body
	if m.busy {
		out += "\n" + m.spin.View() + styleDim.Render(m.label)
	}
	if m.notice != "" {
		out += "\n" + styleNotice.Render(m.notice)
	}
	return out + "\n"
}

func (m stageModel) viewTabs() string {
	out := ""
	for i, st := range stageOrder {
		name := stageNames[st]
		if st == m.sess.Stage() {
			out += styleActiveTab.Render(name)
		} else {
			out += styleTab.Render(name)
		}
		if i < len(stageOrder)-1 {
			out += styleDim.Render("  ·  ")
		}
	}
	return out
}

func (m stageModel) startBusy(label string) (stageModel, tea.Cmd) {
	m.busy = true
	m.label = label
	m.notice = ""
	return m, m.spin.Tick
}

func (m stageModel) startConversation() (tea.Model, tea.Cmd) {
	next, tick := m.startBusy(" Commander Gemini is opening the channel...")
	sess := m.sess
	return next, tea.Batch(tick, func() tea.Msg {
		return conversationMsg{err: sess.StartConversation(context.Background())}
	})
}

func imagesTick() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return imagesTickMsg{}
	})
}

func noticeForError(err error) string {
	switch {
	case errors.Is(err, session.ErrNotEnoughHistory):
		return "Talk with Commander Gemini before drafting a thesis."
	case errors.Is(err, session.ErrNoThesisTitle):
		return "Give your thesis a title before compiling slides."
	case errors.Is(err, session.ErrNoMission):
		return "Select a mission at Mission Control first."
	case errors.Is(err, session.ErrEmptyDecision):
		return "A decision needs at least a choice."
	default:
		return "Transmission failed. Please retry."
	}
}
