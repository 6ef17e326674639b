package viewer

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rninformatics/battlesnake-utils/analysis"
)

type TickMsg time.Time

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Stepper is a bubbletea model that advances a Walk one iteration per key
// press, or on a timer in autoplay.
type Stepper struct {
	walk     *analysis.Walk
	styles   Styles
	interval time.Duration
	auto     bool
	steps    int
}

func NewStepper(w *analysis.Walk, styles Styles, interval time.Duration) Stepper {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	return Stepper{walk: w, styles: styles, interval: interval}
}

func (m Stepper) Init() tea.Cmd {
	return nil
}

func (m Stepper) step() Stepper {
	if m.walk.Step() {
		m.steps++
	}
	return m
}

func (m Stepper) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "enter", "n":
			m.auto = false
			return m.step(), nil
		case "r":
			m.auto = false
			m.walk.Perimeter()
			return m, nil
		case "a":
			m.auto = !m.auto
			if m.auto {
				return m, tickCmd(m.interval)
			}
		}
	case TickMsg:
		if !m.auto {
			return m, nil
		}
		m = m.step()
		if m.walk.Done() {
			m.auto = false
			return m, nil
		}
		return m, tickCmd(m.interval)
	}
	return m, nil
}

func (m Stepper) View() string {
	var sb strings.Builder
	sb.WriteString(Walk(m.walk, m.styles))
	sb.WriteByte('\n')

	fmt.Fprintf(&sb, "pos %v  dir %v  loops %d  area %d\n", m.walk.Pos(), m.walk.Direction(), m.walk.Loops(), m.walk.Area())
	if p, d, ok := m.walk.Sentinel(); ok {
		fmt.Fprintf(&sb, "sentinel %v %v\n", p, d)
	}
	switch {
	case m.walk.Tripped():
		sb.WriteString(m.styles.Bad.Render("stopped by a safety bound"))
		sb.WriteByte('\n')
	case m.walk.Done():
		sb.WriteString(m.styles.Good.Render("done"))
		sb.WriteByte('\n')
	}

	sb.WriteString("\nspace/enter step  a autoplay  r run to end  q quit\n")
	return sb.String()
}

// Walk returns the walk being stepped.
func (m Stepper) Walk() *analysis.Walk { return m.walk }
