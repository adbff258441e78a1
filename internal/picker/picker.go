// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package picker is a small single-choice terminal list.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Item is one choice. Mark is shown dimmed after the label.
type Item struct {
	Label string
	Mark  string
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Choose key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Top:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
	Bottom: key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	Choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	markStyle   = lipgloss.NewStyle().Faint(true)
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

// Select runs the picker and returns the chosen index. ok is false when the
// user quit without choosing.
func Select(title string, items []Item, start int) (int, bool, error) {
	if len(items) == 0 {
		return 0, false, nil
	}
	m, err := tea.NewProgram(newModel(title, items, start)).Run()
	if err != nil {
		return 0, false, fmt.Errorf("picker failed: %w", err)
	}
	final := m.(model)
	return final.cursor, final.chosen, nil
}

type model struct {
	title  string
	items  []Item
	cursor int
	chosen bool
}

func newModel(title string, items []Item, start int) model {
	if start < 0 || start >= len(items) {
		start = 0
	}
	return model{title: title, items: items, cursor: start}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(k, keys.Quit):
		m.chosen = false
		return m, tea.Quit
	case key.Matches(k, keys.Choose):
		m.chosen = true
		return m, tea.Quit
	case key.Matches(k, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(k, keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(k, keys.Top):
		m.cursor = 0
	case key.Matches(k, keys.Bottom):
		m.cursor = len(m.items) - 1
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	for i, it := range m.items {
		line := "  " + it.Label
		if i == m.cursor {
			line = cursorStyle.Render("> " + it.Label)
		}
		if it.Mark != "" {
			line += " " + markStyle.Render(it.Mark)
		}
		b.WriteString(line + "\n")
	}
	help := []string{}
	for _, kb := range []key.Binding{keys.Up, keys.Down, keys.Choose, keys.Quit} {
		h := kb.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString("\n" + helpStyle.Render(strings.Join(help, " • ")) + "\n")
	return b.String()
}
