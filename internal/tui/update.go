package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/timetable/internal/constants"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h := max(msg.Height-chromeHeight, 1)
		m.weekModel.SetSize(msg.Width, h)
		m.activities.SetSize(msg.Width, h)
		m.events.SetSize(msg.Width, h)
		return m, nil
	}

	if m.inForm() {
		cmd := m.updateForm(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok && !m.filtering() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.AddActivity):
			cmd := m.openActivityForm()
			return m, cmd
		case key.Matches(msg, m.keys.AddEvent):
			cmd := m.openEventForm()
			return m, cmd
		case key.Matches(msg, m.keys.AddBreak):
			cmd := m.openBreakForm()
			return m, cmd
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateWeek:
		m.weekModel, cmd = m.weekModel.Update(msg)
	case StateActivities:
		m.activities, cmd = m.activities.Update(msg)
	case StateEvents:
		m.events, cmd = m.events.Update(msg)
	}
	return m, cmd
}

func (m Model) filtering() bool {
	switch m.state {
	case StateActivities:
		return m.activities.Filtering()
	case StateEvents:
		return m.events.Filtering()
	default:
		return false
	}
}

func (m *Model) openForm(state SessionState) tea.Cmd {
	m.previousState = m.state
	m.state = state
	m.status = ""
	m.errMsg = ""
	return m.form.Init()
}

func (m *Model) openActivityForm() tea.Cmd {
	m.activityForm = &ActivityFormModel{
		Priority: 3,
		Deadline: m.session.Today().AddDate(0, 0, 7).Format(constants.DateFormat),
		Hours:    "1",
	}
	m.form = NewActivityForm(m.activityForm, m.session.Today())
	return m.openForm(StateActivityForm)
}

func (m *Model) openEventForm() tea.Cmd {
	m.eventForm = &EventFormModel{Day: m.defaultDay()}
	m.form = NewEventForm(m.eventForm)
	return m.openForm(StateEventForm)
}

func (m *Model) openBreakForm() tea.Cmd {
	m.breakForm = &BreakFormModel{Name: "Break", Day: m.defaultDay()}
	m.form = NewBreakForm(m.breakForm, m.session.BreakMinutes())
	return m.openForm(StateBreakForm)
}

// defaultDay is today on weekdays and Monday at the weekend.
func (m Model) defaultDay() models.Day {
	if d, ok := models.DayFromWeekday(m.session.Today().Weekday()); ok {
		return d
	}
	return models.Monday
}

// updateForm drives the active huh form and applies it once completed.
func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Cancel) {
		m.state = m.previousState
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.submitForm()
	case huh.StateAborted:
		m.state = m.previousState
	}
	return cmd
}

func (m *Model) submitForm() {
	var err error
	switch m.state {
	case StateActivityForm:
		err = m.submitActivity()
	case StateEventForm:
		err = m.submitEvent()
	case StateBreakForm:
		err = m.submitBreak()
	}

	if err != nil {
		m.errMsg = err.Error()
		m.state = m.previousState
		return
	}
	m.refresh()
}

func (m *Model) submitActivity() error {
	fm := m.activityForm
	deadline, err := utils.ParseDate(strings.TrimSpace(fm.Deadline))
	if err != nil {
		return err
	}
	hours, err := strconv.Atoi(strings.TrimSpace(fm.Hours))
	if err != nil {
		return err
	}
	req, err := m.session.AddActivity(strings.TrimSpace(fm.Name), fm.Priority, deadline, hours)
	if err != nil {
		return err
	}
	m.status = fmt.Sprintf("Recorded activity %q", req.Activity)
	m.state = StateActivities
	return nil
}

func (m *Model) submitEvent() error {
	fm := m.eventForm
	req, err := m.session.AddCompulsoryEvent(strings.TrimSpace(fm.Name), fm.Day,
		strings.TrimSpace(fm.Start), strings.TrimSpace(fm.End))
	if err != nil {
		return err
	}
	m.status = fmt.Sprintf("Added %q on %s %s-%s", req.Event, req.Day, req.StartTime, req.EndTime)
	m.state = StateWeek
	return nil
}

func (m *Model) submitBreak() error {
	fm := m.breakForm
	if err := m.session.AddBreak(fm.Day, strings.TrimSpace(fm.Start), strings.TrimSpace(fm.Name)); err != nil {
		return err
	}
	m.status = fmt.Sprintf("Added break on %s", fm.Day)
	m.state = StateWeek
	return nil
}
