// Package ui renders formatting progress in the terminal with Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"rftidy/internal/driver"
)

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	index   map[string]int
	width   int
	done    bool
}

type fileItem struct {
	path    string
	status  driver.Status
	elapsed time.Duration
	err     error
}

type eventMsg driver.Event
type doneMsg struct{}

// queued files are folded into one line once the list grows past this
const maxListed = 12

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// NewProgressModel returns a Bubble Tea model that renders per-file progress.
// The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 60

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    bar,
		items:   make([]fileItem, len(files)),
		index:   make(map[string]int, len(files)),
		width:   80,
	}
	for i, file := range files {
		m.items[i] = fileItem{path: file, status: driver.StatusQueued}
		m.index[file] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
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
		next, cmd := m.prog.Update(msg)
		m.prog = next.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.finished(), len(m.items))
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-24, 20)
	listed, queued := 0, 0
	for _, item := range m.items {
		if item.status == driver.StatusQueued && listed >= maxListed {
			queued++
			continue
		}
		listed++
		line := fmt.Sprintf("  %s %s", styleStatus(item.status).Render(fmt.Sprintf("%-9s", item.status)), truncate(item.path, nameWidth))
		if isFinal(item.status) && item.elapsed > 0 {
			line += dimStyle.Render(" " + item.elapsed.Round(time.Millisecond).String())
		}
		if item.err != nil {
			line += "\n      " + errStyle.Render(truncate(item.err.Error(), nameWidth))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if queued > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d more queued", queued)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.summary()))
	b.WriteString("\n")
	return b.String()
}

// summary counts files per final status.
func (m *progressModel) summary() string {
	var changed, unchanged, failed int
	for _, item := range m.items {
		switch item.status {
		case driver.StatusDone:
			changed++
		case driver.StatusUnchanged:
			unchanged++
		case driver.StatusError:
			failed++
		}
	}
	return fmt.Sprintf("reformatted %d, unchanged %d, errors %d", changed, unchanged, failed)
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

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	item.status = ev.Status
	item.elapsed = ev.Elapsed
	item.err = ev.Err
	return m.prog.SetPercent(m.fraction())
}

func (m *progressModel) finished() int {
	n := 0
	for _, item := range m.items {
		if isFinal(item.status) {
			n++
		}
	}
	return n
}

// fraction counts a file in progress as half done.
func (m *progressModel) fraction() float64 {
	if len(m.items) == 0 {
		return 0
	}
	total := 0.0
	for _, item := range m.items {
		switch {
		case isFinal(item.status):
			total += 1.0
		case item.status == driver.StatusWorking:
			total += 0.5
		}
	}
	return total / float64(len(m.items))
}

func isFinal(s driver.Status) bool {
	return s == driver.StatusDone || s == driver.StatusUnchanged || s == driver.StatusError
}

func styleStatus(status driver.Status) lipgloss.Style {
	color := "7"
	switch status {
	case driver.StatusDone:
		color = "2"
	case driver.StatusUnchanged:
		color = "8"
	case driver.StatusError:
		color = "1"
	case driver.StatusWorking:
		color = "6"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
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
