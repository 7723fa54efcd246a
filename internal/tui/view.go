package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateWeek:
		content = docStyle.Render(m.weekModel.View())
	case StateActivities:
		content = docStyle.Render(m.activities.View())
	case StateEvents:
		content = docStyle.Render(m.events.View())
	case StateActivityForm, StateEventForm, StateBreakForm:
		content = docStyle.Render(m.form.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewMetrics(),
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewMetrics() string {
	metrics := m.session.Metrics()
	item := func(label string, value int) string {
		return metricLabelStyle.Render(label+": ") + metricValueStyle.Render(fmt.Sprint(value))
	}
	return docStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		item("Activities", metrics.Activities), "   ",
		item("Compulsory events", metrics.CompulsoryEvents), "   ",
		item("Days scheduled", metrics.DaysScheduled),
	))
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		active := m.state == SessionState(i) || (m.inForm() && m.previousState == SessionState(i))
		if active {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	switch {
	case m.errMsg != "":
		return dangerStyle.Render("Error: " + m.errMsg)
	case m.status != "":
		return successStyle.Render(m.status)
	case m.validationWarning != "":
		return warningStyle.Render(m.validationWarning)
	default:
		return ""
	}
}
