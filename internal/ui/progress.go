package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"loom/internal/macro"
	"loom/internal/session"
)

// Item is one macro application shown as a progress line.
type Item struct {
	Macro  string
	Target string
}

// ItemLabel is the display key for an application. Events are matched to
// lines by this label, so callers must build items with the same
// macro/target strings the session emits.
func ItemLabel(macroName, target string) string {
	return macroName + "(" + target + ")"
}

type progressModel struct {
	title      string
	events     <-chan session.Event
	spinner    spinner.Model
	prog       progress.Model
	items      []appItem
	index      map[string]int
	phaseLabel string
	width      int
	done       bool
}

type appItem struct {
	label     string
	status    string
	completed int // phases finished, 0..3
	running   bool
	terminal  bool // failed, no further phases expected
}

type eventMsg session.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders expansion
// progress, one line per application.
func NewProgressModel(title string, apps []Item, events <-chan session.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76 // Default width

	items := make([]appItem, 0, len(apps))
	index := make(map[string]int, len(apps))
	for i, app := range apps {
		label := ItemLabel(app.Macro, app.Target)
		items = append(items, appItem{label: label, status: "queued"})
		index[label] = i
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
		ev := session.Event(msg)
		cmd := m.applyEvent(ev)
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
	header := m.title
	if m.phaseLabel != "" {
		header = fmt.Sprintf("%s (%s)", header, m.phaseLabel)
	}
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}

	for _, item := range m.items {
		name := truncate(item.label, nameWidth)
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%12s", item.status))
		b.WriteString(fmt.Sprintf("  %s %s", statusStyled, name))
		b.WriteString("\n")
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

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev session.Event) tea.Cmd {
	// Events without a macro describe the phase as a whole.
	if ev.Macro == "" {
		if ev.Status == session.StatusRunning {
			m.phaseLabel = ev.Phase.String()
		}
		return nil
	}
	idx, ok := m.index[ItemLabel(ev.Macro, ev.Target)]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	switch ev.Status {
	case session.StatusRunning:
		item.running = true
		item.status = ev.Phase.String()
	case session.StatusDone:
		item.running = false
		item.completed = phaseOrdinal(ev.Phase)
		item.status = "done"
	case session.StatusCached:
		item.running = false
		item.completed = phaseOrdinal(ev.Phase)
		item.status = "cached"
	case session.StatusSkipped:
		item.completed = phaseOrdinal(ev.Phase)
		if item.status == "queued" {
			item.status = "skipped"
		}
	case session.StatusFailed:
		item.running = false
		item.terminal = true
		item.status = "failed"
	}

	total := 0.0
	for i := range m.items {
		total += m.items[i].fraction()
	}
	return m.prog.SetPercent(total / float64(len(m.items)))
}

// fraction maps an item's phase position to overall progress: a third per
// finished phase, a half-phase bonus while one is in flight.
func (it *appItem) fraction() float64 {
	if it.terminal {
		return 1.0
	}
	f := float64(it.completed) / 3.0
	if it.running {
		f += 1.0 / 6.0
	}
	if f > 1.0 {
		f = 1.0
	}
	return f
}

func phaseOrdinal(p macro.Phase) int {
	for i, ph := range macro.Phases() {
		if ph == p {
			return i + 1
		}
	}
	return 0
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "done", "cached":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "failed":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "types", "declarations", "definitions":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	case "skipped":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
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
	return runewidth.Truncate(value, width-3, "...")
}
