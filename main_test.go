// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotctl/dotctl/internal/config"
)

func TestDeduplicateFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "empty args",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "only program and command",
			args:     []string{"dotctl", "doctor"},
			expected: []string{"dotctl", "doctor"},
		},
		{
			name:     "no duplicates",
			args:     []string{"dotctl", "doctor", "--output", "text", "--titles"},
			expected: []string{"dotctl", "doctor", "--output", "text", "--titles"},
		},
		{
			name:     "duplicate flag with value - last wins",
			args:     []string{"dotctl", "doctor", "--output", "json", "--titles", "--output", "text"},
			expected: []string{"dotctl", "doctor", "--titles", "--output", "text"},
		},
		{
			name:     "duplicate boolean flag",
			args:     []string{"dotctl", "doctor", "--titles", "--color", "--titles"},
			expected: []string{"dotctl", "doctor", "--color", "--titles"},
		},
		{
			name:     "duplicate flag with equals syntax",
			args:     []string{"dotctl", "doctor", "--output=json", "--titles", "--output=text"},
			expected: []string{"dotctl", "doctor", "--titles", "--output=text"},
		},
		{
			name:     "mixed equals and space syntax - same flag",
			args:     []string{"dotctl", "doctor", "--output=json", "--output", "text"},
			expected: []string{"dotctl", "doctor", "--output", "text"},
		},
		{
			name:     "multiple different flags with duplicates",
			args:     []string{"dotctl", "lapse", "--speed", "2", "--fps", "24", "--speed", "8", "--fps", "60"},
			expected: []string{"dotctl", "lapse", "--speed", "8", "--fps", "60"},
		},
		{
			name:     "positional args preserved",
			args:     []string{"dotctl", "lapse", "clip.mp4", "--speed", "2", "--speed", "4"},
			expected: []string{"dotctl", "lapse", "clip.mp4", "--speed", "4"},
		},
		{
			name:     "short flags deduplicated",
			args:     []string{"dotctl", "lapse", "-s", "2", "-s", "4"},
			expected: []string{"dotctl", "lapse", "-s", "4"},
		},
		{
			name:     "different flags not affected",
			args:     []string{"dotctl", "theme", "switch", "--color", "--no-reload"},
			expected: []string{"dotctl", "theme", "switch", "--color", "--no-reload"},
		},
		{
			name:     "triple duplicate",
			args:     []string{"dotctl", "doctor", "--output", "a", "--output", "b", "--output", "c"},
			expected: []string{"dotctl", "doctor", "--output", "c"},
		},
		{
			name:     "double dash ends flags",
			args:     []string{"dotctl", "lapse", "--speed", "2", "--", "--speed", "3"},
			expected: []string{"dotctl", "lapse", "--speed", "2", "--", "--speed", "3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, deduplicateFlags(tt.args, nil))
		})
	}
}

func TestDeduplicateFlagsWithPositionalAfterFlags(t *testing.T) {
	args := []string{"dotctl", "lapse", "--speed", "2", "clip.mp4", "--speed", "4"}
	assert.Equal(t, []string{"dotctl", "lapse", "clip.mp4", "--speed", "4"}, deduplicateFlags(args, nil))
}

func TestProcessSetOnly(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "dotctl.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`lapse:
  share:
    - --fast
    - --speed 20
    - --fps 24
`), 0o644))
	t.Setenv("DOTCTL_CFG_FILE", cfg)
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "no set",
			args:     []string{"dotctl", "lapse", "clip.mp4"},
			expected: []string{"dotctl", "lapse", "clip.mp4"},
		},
		{
			name:     "set expanded in place",
			args:     []string{"dotctl", "lapse", "@share", "clip.mp4"},
			expected: []string{"dotctl", "lapse", "--fast", "--speed", "20", "--fps", "24", "clip.mp4"},
		},
		{
			name:     "unknown set is dropped",
			args:     []string{"dotctl", "lapse", "clip.mp4", "@nope"},
			expected: []string{"dotctl", "lapse", "clip.mp4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, processSetOnly(tt.args))
		})
	}
}

func TestProcessCommandArgs(t *testing.T) {
	t.Setenv("DOTCTL_CFG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	config.Config = config.Type{}

	args := []string{"dotctl", "completion", "bash", "bash"}
	assert.Equal(t, args, processCommandArgs(args))

	got := processCommandArgs([]string{"dotctl", "lapse", "-s", "2", "clip.mp4", "-s", "5"})
	assert.Equal(t, []string{"dotctl", "lapse", "clip.mp4", "-s", "5"}, got)

	// Slice flags accumulate, so every occurrence survives.
	got = processCommandArgs([]string{"dotctl", "doctor", "--require", "ffmpeg", "-r", "play", "--require=tmux", "-o", "json", "-o", "text"})
	assert.Equal(t, []string{"dotctl", "doctor", "--require", "ffmpeg", "-r", "play", "--require=tmux", "-o", "text"}, got)
}

func TestDeduplicateFlags_Repeatable(t *testing.T) {
	repeatable := map[string]bool{"--require": true, "-r": true}
	args := []string{"dotctl", "doctor", "--require", "ffmpeg", "--require", "play"}
	assert.Equal(t, args, deduplicateFlags(args, repeatable))
}

func TestHandleNakedCommand(t *testing.T) {
	assert.Equal(t, []string{"dotctl", "--help"}, handleNakedCommand([]string{"dotctl"}))
	assert.Equal(t, []string{"dotctl", "doctor"}, handleNakedCommand([]string{"dotctl", "doctor"}))
}

func TestHandleVersion(t *testing.T) {
	assert.True(t, handleVersion([]string{"dotctl", "--version"}))
	assert.True(t, handleVersion([]string{"dotctl", "-v"}))
	assert.False(t, handleVersion([]string{"dotctl", "doctor"}))
	assert.False(t, handleVersion([]string{"dotctl", "lapse", "-v"}))
}

func TestHasHelp(t *testing.T) {
	assert.True(t, hasHelp([]string{"dotctl", "lapse", "-h"}))
	assert.True(t, hasHelp([]string{"dotctl", "--help"}))
	assert.False(t, hasHelp([]string{"dotctl", "lapse"}))
}
