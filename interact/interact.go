// Package interact is a terminal UI for tuning the number of rays per pixel
// and re-rendering a scene.
package interact

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jdginn/go-whitted/raytrace"
)

var (
	docStyle    = lipgloss.NewStyle().Margin(1, 2)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

const maxLogLines = 5

// Renderer is the part of a ray caster the UI drives.
type Renderer interface {
	Subdivs() int
	IncrementSubdivs()
	DecrementSubdivs()
	SetLogger(raytrace.Logger)
	Render(ctx context.Context, workers int) (*raytrace.Frame, error)
}

// SaveFunc stores a finished frame and returns where it went.
type SaveFunc func(*raytrace.Frame) (string, error)

type keyMap struct {
	More   key.Binding
	Fewer  key.Binding
	Render key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.More, k.Fewer, k.Render, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	More:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more rays")),
	Fewer:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "fewer rays")),
	Render: key.NewBinding(key.WithKeys("r", "enter"), key.WithHelp("r", "render")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// logLines keeps the last few renderer log lines. The renderer writes from
// the render command's goroutine while the UI reads in View.
type logLines struct {
	mu    sync.Mutex
	lines []string
}

func (l *logLines) Printf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
	if len(l.lines) > maxLogLines {
		l.lines = l.lines[len(l.lines)-maxLogLines:]
	}
}

func (l *logLines) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// savedRender is one entry in the history list.
type savedRender struct {
	path    string
	rays    int
	elapsed time.Duration
}

func (r savedRender) Title() string       { return r.path }
func (r savedRender) Description() string { return fmt.Sprintf("%d rays per pixel in %s", r.rays, r.elapsed) }
func (r savedRender) FilterValue() string { return r.path }

type renderedMsg struct {
	frame   *raytrace.Frame
	rays    int
	err     error
	elapsed time.Duration
}

type model struct {
	renderer  Renderer
	save      SaveFunc
	workers   int
	log       *logLines
	rendering bool
	status    string
	err       error

	spinner spinner.Model
	history list.Model
	help    help.Model
}

func newModel(r Renderer, save SaveFunc, workers int) model {
	log := &logLines{}
	r.SetLogger(log)

	history := list.New(nil, list.NewDefaultDelegate(), 60, 12)
	history.Title = "Renders"
	history.SetFilteringEnabled(false)
	history.SetShowHelp(false)
	history.SetShowStatusBar(false)

	return model{
		renderer: r,
		save:     save,
		workers:  workers,
		log:      log,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		history:  history,
		help:     help.New(),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) render() tea.Cmd {
	r, workers := m.renderer, m.workers
	n := r.Subdivs()
	return func() tea.Msg {
		start := time.Now()
		frame, err := r.Render(context.Background(), workers)
		return renderedMsg{frame: frame, rays: n * n, err: err, elapsed: time.Since(start).Round(time.Millisecond)}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.More):
			if !m.rendering {
				m.renderer.IncrementSubdivs()
			}
			return m, nil
		case key.Matches(msg, keys.Fewer):
			if !m.rendering {
				m.renderer.DecrementSubdivs()
			}
			return m, nil
		case key.Matches(msg, keys.Render):
			if m.rendering {
				return m, nil
			}
			m.rendering = true
			m.err = nil
			m.status = "Rendering..."
			return m, tea.Batch(m.spinner.Tick, m.render())
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.history.SetSize(msg.Width-h, msg.Height/2-v)
	case spinner.TickMsg:
		if !m.rendering {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case renderedMsg:
		m.rendering = false
		m.status = ""
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		path, err := m.save(msg.frame)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.status = fmt.Sprintf("Saved %s in %s", path, msg.elapsed)
		return m, m.history.InsertItem(0, savedRender{path: path, rays: msg.rays, elapsed: msg.elapsed})
	}

	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)
	return m, cmd
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Whitted ray tracer"))
	b.WriteString("\n\n")
	n := m.renderer.Subdivs()
	b.WriteString(fmt.Sprintf("Subdivisions: %d (%d rays per pixel)\n", n, n*n))
	if m.rendering {
		b.WriteString(m.spinner.View() + " ")
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")
	}
	for _, line := range m.log.snapshot() {
		b.WriteString(line + "\n")
	}
	if len(m.history.Items()) > 0 {
		b.WriteString("\n" + m.history.View() + "\n")
	}
	b.WriteString("\n" + m.help.View(keys))
	return docStyle.Render(b.String())
}

// Interact runs the UI until the user quits.
func Interact(r Renderer, save SaveFunc, workers int) error {
	p := tea.NewProgram(newModel(r, save, workers))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running interactive session: %w", err)
	}
	return nil
}
