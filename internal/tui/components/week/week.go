package week

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/timetable/internal/models"
)

// EmptyDay is shown for a day without blocks.
const EmptyDay = "No events scheduled"

var (
	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Underline(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			PaddingLeft(2)
)

func blockStyle(t models.BlockType) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Color())).
		Bold(t == models.BlockCompulsory)
}

type Model struct {
	viewport viewport.Model
	week     map[models.Day][]models.TimeBlock
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.render()
}

func (m *Model) SetWeek(week map[models.Day][]models.TimeBlock) {
	m.week = week
	m.render()
}

func (m *Model) render() {
	m.viewport.SetContent(Render(m.week))
}

// Render lays out every weekday in order.
func Render(week map[models.Day][]models.TimeBlock) string {
	days := make([]string, 0, len(models.Weekdays))
	for _, d := range models.Weekdays {
		days = append(days, RenderDay(d, week[d]))
	}
	return strings.Join(days, "\n")
}

// RenderDay lists the blocks of one day, or the empty-day placeholder.
func RenderDay(day models.Day, blocks []models.TimeBlock) string {
	var b strings.Builder
	b.WriteString(dayStyle.Render(day.String()))
	b.WriteString("\n")
	if len(blocks) == 0 {
		b.WriteString(emptyStyle.Render(EmptyDay))
		b.WriteString("\n")
		return b.String()
	}
	for _, block := range blocks {
		fmt.Fprintf(&b, "  %s %s %s\n",
			timeStyle.Render(block.Start+" - "+block.End),
			blockStyle(block.Type).Render(block.Name),
			typeStyle.Render(strings.ToLower(block.Type.String())),
		)
	}
	return b.String()
}
