package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"bigcalc/internal/batch"
)

// maxRows bounds how many lines the view lists; the rest are summarized.
const maxRows = 12

type progressModel struct {
	title   string
	events  <-chan batch.Event
	spinner spinner.Model
	prog    progress.Model
	items   []lineItem
	index   map[int]int
	settled int
	failed  int
	width   int
	done    bool
}

type lineItem struct {
	line   int
	expr   string
	status batch.Status
}

type eventMsg batch.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders batch progress.
// The model quits once events is closed.
func NewProgressModel(title string, exprs []batch.Expr, events <-chan batch.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]lineItem, 0, len(exprs))
	index := make(map[int]int, len(exprs))
	for i, e := range exprs {
		items = append(items, lineItem{line: e.Line, expr: e.Text, status: batch.StatusQueued})
		index[e.Line] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(batch.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d/%d", m.title, m.settled, len(m.items))
	if m.failed > 0 {
		header += fmt.Sprintf(", %d failed", m.failed)
	}
	header += ")"
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusWidth-14, 20)
	rows := visibleRows(m.items, maxRows)
	for _, item := range rows {
		status := styleStatus(item.status).Render(fmt.Sprintf("%*s", statusWidth, item.status))
		fmt.Fprintf(&b, "  %s %6d  %s\n", status, item.line, truncate(item.expr, nameWidth))
	}
	if hidden := len(m.items) - len(rows); hidden > 0 {
		fmt.Fprintf(&b, "  %*s %d more\n", statusWidth, "", hidden)
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

const statusWidth = 8

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev batch.Event) tea.Cmd {
	idx, ok := m.index[ev.Line]
	if !ok {
		return nil
	}
	wasSettled := settled(m.items[idx].status)
	m.items[idx].status = ev.Status
	if !wasSettled && settled(ev.Status) {
		m.settled++
		if ev.Status == batch.StatusError {
			m.failed++
		}
	}
	return m.prog.SetPercent(fraction(m.settled, len(m.items)))
}

func settled(s batch.Status) bool {
	return s == batch.StatusDone || s == batch.StatusCached || s == batch.StatusError
}

func fraction(n, total int) float64 {
	if total == 0 {
		return 1
	}
	return float64(n) / float64(total)
}

// visibleRows keeps working and failed lines in view ahead of the rest.
func visibleRows(items []lineItem, limit int) []lineItem {
	if len(items) <= limit {
		return items
	}
	rows := make([]lineItem, 0, limit)
	taken := make(map[int]bool, limit)
	for _, pass := range []func(batch.Status) bool{
		func(s batch.Status) bool { return s == batch.StatusWorking || s == batch.StatusError },
		func(s batch.Status) bool { return s == batch.StatusQueued },
		settled,
	} {
		for i, item := range items {
			if len(rows) == limit {
				return rows
			}
			if !taken[i] && pass(item.status) {
				taken[i] = true
				rows = append(rows, item)
			}
		}
	}
	return rows
}

func styleStatus(status batch.Status) lipgloss.Style {
	switch status {
	case batch.StatusDone, batch.StatusCached:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case batch.StatusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case batch.StatusWorking:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
