// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotctl/dotctl/internal/runner"
)

func TestTranscribeInstall(t *testing.T) {
	h := newHarness(t)
	venv := filepath.Join(h.home, "venv")
	rc := filepath.Join(h.home, ".zshrc")

	out, err := h.run("transcribe", "install", "--venv", venv, "--rc", rc)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"python3 -m venv " + venv,
		filepath.Join(venv, "bin", "pip") + " install --upgrade openai-whisper",
	}, h.fake.Lines())
	assert.Contains(t, out, "✓ Created virtual environment: "+venv)
	assert.Contains(t, out, "✓ Added transcribe alias to "+rc)

	b, err := os.ReadFile(rc)
	require.NoError(t, err)
	assert.Contains(t, string(b), "alias transcribe='dotctl transcribe run'")

	out, err = h.run("transcribe", "install", "--venv", venv, "--rc", rc)
	require.NoError(t, err)
	assert.Contains(t, out, "alias already present")
}

func TestTranscribeInstall_DefaultRC(t *testing.T) {
	h := newHarness(t)
	t.Setenv("SHELL", "/usr/bin/bash")

	_, err := h.run("transcribe", "install", "--venv", filepath.Join(h.home, "venv"))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(h.home, ".bashrc"))
}

func TestTranscribeInstall_MissingPython(t *testing.T) {
	h := newHarness(t)
	h.fake.Missing["python3"] = true

	_, err := h.run("transcribe", "install")
	var missing *runner.MissingToolError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "python3", missing.Tool)
}

// fakeWhisperRun writes a whisper JSON result into --output_dir.
func fakeWhisperRun(name string, args []string) error {
	var outDir string
	for i, a := range args {
		if a == "--output_dir" {
			outDir = args[i+1]
		}
	}
	stem := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	body := `{"text":" Testing one two.","language":"en","segments":[{"start":0,"end":3.5,"text":" Testing one two."}]}`
	return os.WriteFile(filepath.Join(outDir, stem+".json"), []byte(body), 0o644)
}

func TestTranscribeRun(t *testing.T) {
	h := newHarness(t)
	h.fake.OnRun = fakeWhisperRun
	venv := filepath.Join(h.home, "venv")
	in := h.file("memo.MP3", "ID3")

	out, err := h.run("transcribe", "run", "--venv", venv, "-m", "tiny", "-t", in)
	require.NoError(t, err)

	require.Len(t, h.fake.Calls, 1)
	assert.Equal(t, filepath.Join(venv, "bin", "whisper"), h.fake.Calls[0].Name)
	assert.Equal(t, []string{in, "--model", "tiny"}, h.fake.Calls[0].Args[:3])

	b, err := os.ReadFile(filepath.Join(h.home, "memo.txt"))
	require.NoError(t, err)
	assert.Equal(t, "[00:00 -> 00:03] Testing one two.\n", string(b))
	assert.Contains(t, out, "✓ Saved: "+filepath.Join(h.home, "memo.txt"))
}

func TestTranscribeRun_VerboseAndHeadroomFromConfig(t *testing.T) {
	h := newHarness(t)
	h.withConfig("transcribe:\n  verbose: true\n  disk_headroom_gb: 1000000000\n")
	h.fake.OnRun = fakeWhisperRun
	in := h.file("memo.mp3", "ID3")

	// A disk check that cannot pass only warns.
	_, err := h.run("transcribe", "run", in)
	require.NoError(t, err)
	require.Len(t, h.fake.Calls, 1)
	assert.Contains(t, h.fake.Calls[0].Line(), "--verbose True")
}

func TestTranscribeRun_Batch(t *testing.T) {
	h := newHarness(t)
	h.fake.OnRun = fakeWhisperRun
	a := h.file("a.mp3", "ID3")
	b := h.file("b.mp3", "ID3")
	all := filepath.Join(h.home, "all.txt")

	_, err := h.run("transcribe", "run", "--batch", "-o", all, a, b)
	require.NoError(t, err)

	got, err := os.ReadFile(all)
	require.NoError(t, err)
	assert.Contains(t, string(got), "=== a.mp3 ===\nTesting one two.\n")
	assert.Contains(t, string(got), "=== b.mp3 ===")
}

func TestTranscribeRun_UsageErrors(t *testing.T) {
	h := newHarness(t)
	mp3 := h.file("a.mp3", "ID3")
	wav := h.file("a.wav", "RIFF")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no files", []string{"transcribe", "run"}, "at least one .mp3 file"},
		{"batch without output", []string{"transcribe", "run", "--batch", mp3}, "requires an output file"},
		{"output with several files", []string{"transcribe", "run", "-o", "x.txt", mp3, mp3}, "requires --batch"},
		{"missing file", []string{"transcribe", "run", filepath.Join(h.home, "nope.mp3")}, "file not found"},
		{"wrong format", []string{"transcribe", "run", wav}, "unsupported file format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.run(tt.args...)
			require.Error(t, err)
			assert.True(t, isUsage(err), "%v", err)
			assert.ErrorContains(t, err, tt.want)
		})
	}

	_, err := h.run("transcribe", "run", "--model", "huge", mp3)
	assert.Error(t, err)
}

func TestTranscribeRun_MissingWhisper(t *testing.T) {
	h := newHarness(t)
	venv := filepath.Join(h.home, "venv")
	h.fake.Missing[filepath.Join(venv, "bin", "whisper")] = true
	in := h.file("a.mp3", "ID3")

	_, err := h.run("transcribe", "run", "--venv", venv, in)
	var missing *runner.MissingToolError
	require.True(t, errors.As(err, &missing))
	assert.ErrorContains(t, err, "dotctl transcribe install")
}
