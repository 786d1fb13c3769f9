// Package tui is the interactive front end around the converter: two
// directory fields, option toggles, and a log pane fed by the
// conversion's progress callback. The conversion itself runs on a
// worker goroutine so the interface stays responsive; the core is
// unaware of any of this.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"keep-to-joplin/internal/app/converter"
)

type status int

const (
	statusIdle status = iota
	statusRunning
	statusDone
	statusError
)

const (
	focusInput = iota
	focusOutput
	focusTrashed
	focusArchived
	focusDryRun
	focusFrontmatter
	focusStart
	focusCount
)

type logMsg string

type doneMsg struct {
	stats converter.Stats
	err   error
}

// Model is the root bubbletea model.
type Model struct {
	inputs      [2]textinput.Model
	focus       int
	trashed     bool
	archived    bool
	dryRun      bool
	frontmatter bool

	status   status
	spin     spinner.Model
	logView  viewport.Model
	logLines []string
	errText  string
	events   chan string
	ready    bool
	width    int
}

// New builds the model, optionally prefilling the directory fields.
func New(inputDir, outputDir string) Model {
	in := textinput.New()
	in.Placeholder = "Path to Takeout/Keep"
	in.SetValue(inputDir)
	in.Focus()

	out := textinput.New()
	out.Placeholder = "Path to output directory"
	out.SetValue(outputDir)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = spinnerStyle

	return Model{
		inputs: [2]textinput.Model{in, out},
		spin:   sp,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		logHeight := msg.Height - 14
		if logHeight < 3 {
			logHeight = 3
		}
		if !m.ready {
			m.logView = viewport.New(msg.Width-4, logHeight)
			m.ready = true
		} else {
			m.logView.Width = msg.Width - 4
			m.logView.Height = logHeight
		}
		m.logView.SetContent(strings.Join(m.logLines, "\n"))
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case spinner.TickMsg:
		if m.status != statusRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case logMsg:
		m.appendLog(string(msg))
		return m, m.listenEvents()

	case doneMsg:
		// Pick up whatever the worker logged after the last listen.
		for s := range m.events {
			m.appendLog(s)
		}
		if msg.err != nil {
			m.status = statusError
			m.errText = msg.err.Error()
			m.appendLog("Error: " + msg.err.Error())
			return m, nil
		}
		m.status = statusDone
		m.appendLog("")
		for _, line := range strings.Split(msg.stats.Summary(), "\n") {
			m.appendLog(line)
		}
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "tab", "down":
		if m.status != statusRunning {
			m.setFocus((m.focus + 1) % focusCount)
		}
		return m, nil

	case "shift+tab", "up":
		if m.status != statusRunning {
			m.setFocus((m.focus + focusCount - 1) % focusCount)
		}
		return m, nil

	case " ", "enter":
		if m.status == statusRunning {
			return m, nil
		}
		switch m.focus {
		case focusTrashed:
			m.trashed = !m.trashed
		case focusArchived:
			m.archived = !m.archived
		case focusDryRun:
			m.dryRun = !m.dryRun
		case focusFrontmatter:
			m.frontmatter = !m.frontmatter
		case focusStart:
			if m.inputs[0].Value() == "" || m.inputs[1].Value() == "" {
				m.errText = "both directories are required"
				return m, nil
			}
			m.errText = ""
			return m, m.startConversion()
		default:
			// Let the focused text field see the space key.
			if msg.String() == " " {
				return m.updateFocused(msg)
			}
		}
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus == focusInput || m.focus == focusOutput {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	if m.ready {
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) setFocus(focus int) {
	m.focus = focus
	for i := range m.inputs {
		if i == focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *Model) appendLog(line string) {
	m.logLines = append(m.logLines, line)
	if m.ready {
		m.logView.SetContent(strings.Join(m.logLines, "\n"))
		m.logView.GotoBottom()
	}
}

func (m *Model) startConversion() tea.Cmd {
	m.status = statusRunning
	m.logLines = nil
	if m.ready {
		m.logView.SetContent("")
	}

	events := make(chan string, 64)
	m.events = events

	conv := converter.Converter{
		InputDir:        m.inputs[0].Value(),
		OutputDir:       m.inputs[1].Value(),
		IncludeTrashed:  m.trashed,
		IncludeArchived: m.archived,
		DryRun:          m.dryRun,
		Frontmatter:     m.frontmatter,
		Progress:        func(message string) { events <- message },
	}

	run := func() tea.Msg {
		stats, err := conv.Run()
		close(events)
		return doneMsg{stats: stats, err: err}
	}

	return tea.Batch(run, m.listenEvents(), m.spin.Tick)
}

func (m Model) listenEvents() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		s, ok := <-events
		if !ok {
			return nil
		}
		return logMsg(s)
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Keep to Joplin"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Input directory"))
	b.WriteString("\n")
	b.WriteString(m.inputs[0].View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Output directory"))
	b.WriteString("\n")
	b.WriteString(m.inputs[1].View())
	b.WriteString("\n\n")

	b.WriteString(m.checkbox("Include trashed notes", m.trashed, focusTrashed))
	b.WriteString("\n")
	b.WriteString(m.checkbox("Include archived notes", m.archived, focusArchived))
	b.WriteString("\n")
	b.WriteString(m.checkbox("Dry run", m.dryRun, focusDryRun))
	b.WriteString("\n")
	b.WriteString(m.checkbox("YAML frontmatter", m.frontmatter, focusFrontmatter))
	b.WriteString("\n\n")

	if m.focus == focusStart {
		b.WriteString(startFocusedStyle.Render("Start conversion"))
	} else {
		b.WriteString(startButtonStyle.Render("Start conversion"))
	}
	b.WriteString("  ")
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	if m.ready {
		b.WriteString(logBorderStyle.Render(m.logView.View()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("tab/shift+tab move · space toggle · enter run · esc quit"))
	return b.String()
}

func (m Model) checkbox(label string, checked bool, focus int) string {
	box := "[ ] "
	if checked {
		box = "[x] "
	}
	if m.focus == focus {
		return focusedStyle.Render("> " + box + label)
	}
	return blurredStyle.Render("  " + box + label)
}

func (m Model) statusLine() string {
	switch m.status {
	case statusRunning:
		return m.spin.View() + statusRunStyle.Render("converting...")
	case statusDone:
		return statusDoneStyle.Render("done")
	case statusError:
		return statusErrorStyle.Render("error: " + m.errText)
	default:
		if m.errText != "" {
			return statusErrorStyle.Render(m.errText)
		}
		return statusIdleStyle.Render("idle")
	}
}
