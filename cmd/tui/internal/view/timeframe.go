package view

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/invoicer/internal/datefmt"
)

// TimeframeSelectedMsg carries the chosen inclusive range as ISO dates.
type TimeframeSelectedMsg struct {
	Start string
	End   string
}

const (
	rangeStart = iota
	rangeEnd
)

var cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)

// TimeframePicker lists datefmt.Periods followed by a custom range entry.
type TimeframePicker struct {
	clock  datefmt.Clock
	cursor int

	custom bool
	inputs [2]textinput.Model
	focus  int

	err error
}

func newDateInput(prompt string) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = "YYYY-MM-DD"
	in.CharLimit = len(datefmt.ISODate)
	in.Width = 12

	return in
}

func NewTimeframePicker(clock datefmt.Clock, initial datefmt.Period) TimeframePicker {
	p := TimeframePicker{
		clock: clock,
		inputs: [2]textinput.Model{
			newDateInput("From: "),
			newDateInput("To:   "),
		},
	}

	for i, period := range datefmt.Periods {
		if period == initial {
			p.cursor = i
		}
	}

	return p
}

// options is the number of selectable rows, the custom range being the last.
func (m TimeframePicker) options() int {
	return len(datefmt.Periods) + 1
}

func (m TimeframePicker) onCustom() bool {
	return m.cursor == len(datefmt.Periods)
}

func (m TimeframePicker) Init() tea.Cmd {
	return nil
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)

	switch {
	case m.custom && isKey:
		return m.updateCustom(key)
	case m.custom:
		return m.forward(msg)
	case isKey:
		return m.updateList(key)
	}

	return m, nil
}

func (m TimeframePicker) updateList(key tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch key.Type {
	case tea.KeyUp:
		m.cursor = max(m.cursor-1, 0)
	case tea.KeyDown:
		m.cursor = min(m.cursor+1, m.options()-1)
	case tea.KeyEnter:
		if m.onCustom() {
			m.custom = true
			cmd := m.focusOn(rangeStart)

			return m, cmd
		}

		return m, selected(datefmt.Periods[m.cursor].Range(m.clock))
	}

	return m, nil
}

func (m TimeframePicker) updateCustom(key tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch key.String() {
	case "tab", "shift+tab", "up", "down":
		cmd := m.focusOn(1 - m.focus)

		return m, cmd
	case "esc":
		m.custom = false
		m.err = nil

		return m, nil
	case "enter":
		start, end := m.inputs[rangeStart].Value(), m.inputs[rangeEnd].Value()

		if m.err = validateRange(start, end); m.err != nil {
			return m, nil
		}

		return m, selected(start, end)
	}

	return m.forward(key)
}

// focusOn moves keyboard focus to one of the two date inputs.
func (m *TimeframePicker) focusOn(i int) tea.Cmd {
	m.focus = i
	m.inputs[1-i].Blur()

	return m.inputs[i].Focus()
}

func (m TimeframePicker) forward(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	return m, cmd
}

func validateRange(start, end string) error {
	s, err := time.Parse(datefmt.ISODate, start)
	if err != nil {
		return errors.New("invalid start date (YYYY-MM-DD)")
	}

	e, err := time.Parse(datefmt.ISODate, end)
	if err != nil {
		return errors.New("invalid end date (YYYY-MM-DD)")
	}

	if e.Before(s) {
		return errors.New("end date is before start date")
	}

	return nil
}

func selected(start, end string) tea.Cmd {
	return func() tea.Msg {
		return TimeframeSelectedMsg{Start: start, End: end}
	}
}

func (m TimeframePicker) View() string {
	var b strings.Builder

	if m.custom {
		b.WriteString("Custom range\n\n")
		b.WriteString(m.inputs[rangeStart].View() + "\n")
		b.WriteString(m.inputs[rangeEnd].View() + "\n\n")
		b.WriteString(mutedStyle.Render("Enter: confirm | Tab: switch | Esc: periods"))
	} else {
		b.WriteString("Period\n\n")

		for i := range m.options() {
			label := "Custom range"
			if i < len(datefmt.Periods) {
				label = datefmt.Periods[i].String()
			}

			if i == m.cursor {
				b.WriteString(cursorStyle.Render("> "+label) + "\n")
				continue
			}

			b.WriteString("  " + label + "\n")
		}

		b.WriteString("\n" + mutedStyle.Render("Enter: select | Esc: back"))
	}

	if m.err != nil {
		b.WriteString("\n\n" + renderError(m.err))
	}

	return b.String()
}

// IsSelecting reports whether the period list, not the custom form, is showing.
func (m TimeframePicker) IsSelecting() bool {
	return !m.custom
}

// Reset returns to the period list and clears the custom range.
func (m *TimeframePicker) Reset() {
	m.custom = false
	m.err = nil

	for i := range m.inputs {
		m.inputs[i].Reset()
	}
}
