package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/timetable/internal/planner"
	"github.com/julianstephens/timetable/internal/tui/components/requests"
	"github.com/julianstephens/timetable/internal/tui/components/week"
)

type SessionState int

const (
	StateWeek SessionState = iota
	StateActivities
	StateEvents
	StateActivityForm
	StateEventForm
	StateBreakForm
)

// tabCount is the number of browsable tabs; form states follow them.
const tabCount = 3

var tabTitles = [tabCount]string{"Week", "Activities", "Events"}

// chromeHeight is the lines taken by the header, tabs, status and help.
const chromeHeight = 8

type Model struct {
	session           *planner.Session
	state             SessionState
	previousState     SessionState
	keys              KeyMap
	help              help.Model
	weekModel         week.Model
	activities        requests.Model
	events            requests.Model
	form              *huh.Form
	activityForm      *ActivityFormModel
	eventForm         *EventFormModel
	breakForm         *BreakFormModel
	status            string
	errMsg            string
	validationWarning string
	quitting          bool
	width             int
	height            int
}

func NewModel(session *planner.Session) Model {
	m := Model{
		session:    session,
		state:      StateWeek,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		weekModel:  week.New(0, 0),
		activities: requests.New("\n  No activities yet.\n  Press 'a' to add one.", 0, 0),
		events:     requests.New("\n  No compulsory events yet.\n  Press 'e' to add one.", 0, 0),
	}
	m.refresh()
	return m
}

// Run starts the full-screen program.
func Run(session *planner.Session) error {
	_, err := tea.NewProgram(NewModel(session), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	if m.inForm() {
		return []key.Binding{m.keys.Cancel}
	}
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	if m.inForm() {
		return [][]key.Binding{{m.keys.Cancel}}
	}
	return m.keys.FullHelp()
}

func (m Model) inForm() bool {
	return m.state >= tabCount
}

// refresh reloads every view from the session.
func (m *Model) refresh() {
	tt := m.session.Timetable()
	log := m.session.Requests()

	m.weekModel.SetWeek(tt.Week())
	m.activities.SetActivities(log.Activities())
	m.events.SetEvents(log.CompulsoryEvents())
	m.updateValidationStatus()
}

// updateValidationStatus runs validation and updates the warning message
func (m *Model) updateValidationStatus() {
	result := m.session.Validate()
	if result.HasConflicts() {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s), run 'timetable validate'", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
}
