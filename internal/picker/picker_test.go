// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package picker

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func press(m model, keys ...tea.KeyMsg) (model, tea.Cmd) {
	var cmd tea.Cmd
	var next tea.Model = m
	for _, k := range keys {
		next, cmd = next.(model).Update(k)
	}
	return next.(model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func items() []Item {
	return []Item{{Label: "gruvbox"}, {Label: "nord", Mark: "(current)"}, {Label: "tokyonight"}}
}

func TestNewModel_ClampsStart(t *testing.T) {
	assert.Equal(t, 1, newModel("t", items(), 1).cursor)
	assert.Equal(t, 0, newModel("t", items(), 7).cursor)
	assert.Equal(t, 0, newModel("t", items(), -1).cursor)
}

func TestUpdate_Navigation(t *testing.T) {
	m := newModel("t", items(), 0)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor, "stays at top")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown}, runes("j"), runes("j"))
	assert.Equal(t, 2, m.cursor, "stops at bottom")

	m, _ = press(m, runes("k"))
	assert.Equal(t, 1, m.cursor)

	m, _ = press(m, runes("G"))
	assert.Equal(t, 2, m.cursor)
	m, _ = press(m, runes("g"))
	assert.Equal(t, 0, m.cursor)
}

func TestUpdate_Choose(t *testing.T) {
	m := newModel("t", items(), 1)
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.chosen)
	assert.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestUpdate_Quit(t *testing.T) {
	m := newModel("t", items(), 1)
	m, cmd := press(m, runes("q"))
	assert.False(t, m.chosen)
	assert.NotNil(t, cmd)

	m = newModel("t", items(), 1)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.chosen)
}

func TestView(t *testing.T) {
	v := newModel("Pick a theme", items(), 1).View()
	assert.Contains(t, v, "Pick a theme")
	assert.Contains(t, v, "gruvbox")
	assert.Contains(t, v, "> nord")
	assert.Contains(t, v, "(current)")
	assert.Contains(t, v, "enter choose")
}

func TestSelect_Empty(t *testing.T) {
	_, ok, err := Select("t", nil, 0)
	assert.NoError(t, err)
	assert.False(t, ok)
}
