// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/ik5/audmgr/device"
	"github.com/ik5/audmgr/sound"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	stateStyles = map[device.State]lipgloss.Style{
		device.Playing: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		device.Paused:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		device.Stopped: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
)

const (
	gainStep = 0.1
	maxGain  = 2
	moveStep = 1
)

// tickMsg drives Manager.Update once per frame.
type tickMsg time.Time

type model struct {
	mgr    *sound.Manager
	paths  []string
	cursor int
	frame  time.Duration
	frames int
}

func newModel(m *sound.Manager, fps int) model {
	return model{
		mgr:   m,
		paths: m.Paths(),
		frame: frameInterval(fps),
	}
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Init() tea.Cmd {
	return m.tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.mgr.Update()
		m.frames++
		return m, m.tick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) selected() string {
	if len(m.paths) == 0 {
		return ""
	}

	return m.paths[m.cursor]
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	path := m.selected()
	params, _ := m.mgr.Params(path)

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.paths)-1 {
			m.cursor++
		}
	case " ", "enter":
		m.mgr.Play(path, params.Position)
	case "s":
		m.mgr.Stop(path)
	case "p":
		m.mgr.Pause(path)
	case "l":
		m.mgr.SetLooping(path, !params.Looping)
	case "+", "=":
		m.mgr.SetGain(path, min(params.Gain+gainStep, maxGain))
	case "-":
		m.mgr.SetGain(path, max(params.Gain-gainStep, 0))
	case "left", "h":
		m.move(path, params, -moveStep)
	case "right":
		m.move(path, params, moveStep)
	}

	return m, nil
}

// move shifts a sound along X. A playing sound is moved in place; the
// others keep the position for their next play.
func (m model) move(path string, p device.Params, dx float32) {
	pos := p.Position.Add(mgl32.Vec3{dx, 0, 0})
	if st, _ := m.mgr.State(path); st == device.Playing {
		m.mgr.Play(path, pos)
		return
	}
	m.mgr.SetPosition(path, pos)
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("sndplay"))
	fmt.Fprintf(&b, "  %d sounds, frame %d\n\n", len(m.paths), m.frames)

	for i, p := range m.paths {
		st, _ := m.mgr.State(p)
		params, _ := m.mgr.Params(p)
		f, _ := m.mgr.Format(p)

		cursor := "  "
		name := p
		if i == m.cursor {
			cursor = "> "
			name = selectedStyle.Render(p)
		}

		state := st.String()
		if s, ok := stateStyles[st]; ok {
			state = s.Render(state)
		}

		fmt.Fprintf(&b, "%s%s\n    %-8s gain %.1f  x %+.0f  loop %t  %s\n",
			cursor, name, state, params.Gain, params.Position.X(), params.Looping, f)
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space:play  s:stop  p:pause  l:loop  +/-:gain  ←/→:move  ↑/↓:select  q:quit"))

	return boxStyle.Render(b.String()) + "\n"
}
