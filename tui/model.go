package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"midikeys/keymap"
	"midikeys/mapper"
)

// holdDuration is how long a key counts as held after its last press.
// Terminals deliver key presses and auto-repeats but never releases,
// so the model synthesizes a key-up once this window lapses without a
// repeat. An auto-repeat refreshes the window; the mapper's held-note
// guard makes the repeated key-down a no-op.
const holdDuration = 500 * time.Millisecond

// releaseMsg fires when a key's hold window lapses. gen guards against
// stale timers: only the timer from the latest press may release.
type releaseMsg struct {
	key rune
	gen int
}

type Model struct {
	Session  *mapper.Session
	portName string
	layout   keymap.Layout
	controls keymap.Controls
	gens     map[rune]int
	quitting bool
}

func NewModel(session *mapper.Session, portName string, layout keymap.Layout, controls keymap.Controls) Model {
	return Model{
		Session:  session,
		portName: portName,
		layout:   layout,
		controls: controls,
		gens:     make(map[rune]int),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			if m.Session.HandleKeyUp(mapper.Esc()) == mapper.Terminate {
				m.quitting = true
				return m, tea.Quit
			}

		case tea.KeyRunes:
			if len(msg.Runes) != 1 {
				return m, nil
			}
			key := unicode.ToLower(msg.Runes[0])
			m.Session.HandleKeyDown(mapper.Char(key))
			m.gens[key]++
			gen := m.gens[key]
			return m, tea.Tick(holdDuration, func(time.Time) tea.Msg {
				return releaseMsg{key: key, gen: gen}
			})
		}

	case releaseMsg:
		if m.gens[msg.key] == msg.gen {
			m.Session.HandleKeyUp(mapper.Char(msg.key))
		}
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	noteStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	noticeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	header := headerStyle.Render(fmt.Sprintf("midikeys  ->  %s", m.portName))

	state := fmt.Sprintf("octave %+d  velocity %3d  bend %+5d",
		m.Session.OctaveShift(), m.Session.Velocity(), m.Session.PitchBend())

	var held []string
	for _, n := range m.Session.Held() {
		held = append(held, keymap.NoteName(n))
	}
	heldLine := "playing: "
	if len(held) == 0 {
		heldLine += dimStyle.Render("-")
	} else {
		heldLine += noteStyle.Render(strings.Join(held, " "))
	}

	help := dimStyle.Render(m.helpLine())

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(state)
	out.WriteString("\n")
	out.WriteString(heldLine)
	out.WriteString("\n\n")
	out.WriteString(help)
	if notice := m.Session.Notice(); notice != "" {
		out.WriteString("\n")
		out.WriteString(noticeStyle.Render(notice))
	}

	return out.String()
}

// helpLine lists the mapped keys in note order plus the controls.
func (m Model) helpLine() string {
	var keys strings.Builder
	for _, k := range m.layout.Keys() {
		keys.WriteRune(k)
	}
	c := m.controls
	return fmt.Sprintf("keys: %s  %c/%c: octave  %c/%c: velocity  %c/%c: bend  esc: quit",
		keys.String(), c.OctaveDown, c.OctaveUp, c.VelocityDown, c.VelocityUp, c.BendDown, c.BendUp)
}
