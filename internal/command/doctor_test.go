// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctor(t *testing.T) {
	h := newHarness(t)
	h.fake.Missing["ffmpeg"] = true
	venv := filepath.Join(h.home, "venv")

	out, err := h.run("doctor", "--venv", venv, "-o", "json")
	require.NoError(t, err)

	var rows []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 6)

	byTool := map[string]map[string]string{}
	for _, r := range rows {
		byTool[r["tool"]] = r
	}
	assert.Equal(t, "missing", byTool["ffmpeg"]["status"])
	assert.Equal(t, "", byTool["ffmpeg"]["path"])
	assert.Equal(t, "found", byTool["play"]["status"])
	assert.Equal(t, "/usr/bin/play", byTool["play"]["path"])
	assert.Equal(t, filepath.Join(venv, "bin", "whisper"), byTool["whisper"]["path"])
	assert.Equal(t, "transcribe run", byTool["whisper"]["used_by"])
}

func TestDoctor_Text(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("doctor", "--titles")
	require.NoError(t, err)
	assert.Contains(t, out, "TOOL")
	assert.Contains(t, out, "/usr/bin/ffmpeg")
}

func TestDoctor_Require(t *testing.T) {
	h := newHarness(t)
	h.fake.Missing["kitty"] = true
	h.fake.Missing["tmux"] = true

	_, err := h.run("doctor", "--require", "ffmpeg,play")
	assert.NoError(t, err)

	_, err = h.run("doctor", "-r", "kitty", "-r", "tmux", "-r", "ffmpeg")
	assert.EqualError(t, err, "missing required tool(s): kitty, tmux")
	assert.False(t, isUsage(err))

	_, err = h.run("doctor", "--require", "gimp")
	assert.True(t, isUsage(err))
}
