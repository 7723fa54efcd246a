package requests

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/timetable/internal/models"
)

type ActivityItem struct {
	Request models.ActivityRequest
}

func (i ActivityItem) Title() string { return i.Request.Activity }
func (i ActivityItem) Description() string {
	return fmt.Sprintf("priority %d | %dh | due %s (%s)",
		i.Request.Priority, i.Request.Timing, i.Request.DeadlineDate, daysLeft(i.Request.Deadline))
}
func (i ActivityItem) FilterValue() string { return i.Request.Activity }

type EventItem struct {
	Request models.CompulsoryEventRequest
}

func (i EventItem) Title() string { return i.Request.Event }
func (i EventItem) Description() string {
	return fmt.Sprintf("%s %s - %s", i.Request.Day, i.Request.StartTime, i.Request.EndTime)
}
func (i EventItem) FilterValue() string { return i.Request.Event }

func daysLeft(d int) string {
	switch {
	case d == 0:
		return "today"
	case d == 1:
		return "1 day"
	case d < 0:
		return fmt.Sprintf("%d days ago", -d)
	default:
		return fmt.Sprintf("%d days", d)
	}
}

type Model struct {
	list  list.Model
	empty string
}

// New builds an empty list; empty is shown while it has no items.
func New(empty string, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is rendered by the main model
	l.SetShowStatusBar(false)
	// q and esc belong to the main model
	l.KeyMap.Quit = key.NewBinding(key.WithDisabled())

	return Model{list: l, empty: empty}
}

func (m *Model) SetActivities(reqs []models.ActivityRequest) {
	items := make([]list.Item, len(reqs))
	for i, r := range reqs {
		items[i] = ActivityItem{Request: r}
	}
	m.list.SetItems(items)
}

func (m *Model) SetEvents(reqs []models.CompulsoryEventRequest) {
	items := make([]list.Item, len(reqs))
	for i, r := range reqs {
		items[i] = EventItem{Request: r}
	}
	m.list.SetItems(items)
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Filtering reports whether the user is typing a filter, so global keys
// should go to the list.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return m.empty
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
