package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/stackcore/align"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	inputs   []textinput.Model
	focusIdx int
}

func newInteractiveModel() *interactiveModel {
	names := []string{"value", "divisor"}
	inputs := make([]textinput.Model, len(names))
	for i, name := range names {
		ti := textinput.New()
		ti.Prompt = name + ": "
		ti.Placeholder = "0x1000"
		ti.Width = 24
		if i == 0 {
			ti.Focus()
		}
		inputs[i] = ti
	}
	return &interactiveModel{inputs: inputs}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "enter":
			m.inputs[m.focusIdx].Blur()
			m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
			m.inputs[m.focusIdx].Focus()
			return m, nil
		}
	}

	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("stackcore align"))
	b.WriteString("\n\n")
	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	x, d, err := parseAlign(m.inputs[0].Value() + "," + m.inputs[1].Value())
	switch {
	case m.inputs[0].Value() == "" || m.inputs[1].Value() == "":
		b.WriteString(helpStyle.Render("enter a value and a divisor"))
	case err != nil:
		b.WriteString(errorStyle.Render(err.Error()))
	default:
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("up:  "), resultStyle.Render(fmt.Sprintf("%d (%#x)", align.Up(x, d), align.Up(x, d))))
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("down:"), resultStyle.Render(fmt.Sprintf("%d (%#x)", align.Down(x, d), align.Down(x, d))))
		fmt.Fprintf(&b, "%s %s", labelStyle.Render("aligned:"), resultStyle.Render(fmt.Sprintf("%v", align.IsAligned(x, d))))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("tab next field • esc quit"))

	return b.String()
}

func runInteractive() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("interactive mode needs a terminal")
	}
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
