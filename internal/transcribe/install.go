// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package transcribe

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dotctl/dotctl/internal/log"
	"github.com/dotctl/dotctl/internal/runner"
)

const (
	// DefaultPackage is the pip package providing the whisper CLI.
	DefaultPackage = "openai-whisper"
	aliasMarker    = "# dotctl: MP3 transcription"
	aliasLine      = "alias transcribe='dotctl transcribe run'"
	aliasProbe     = "alias transcribe="
)

// Installer prepares the Whisper virtual environment and shell alias.
type Installer struct {
	Runner  runner.Runner
	Venv    string
	RC      string
	Package string
}

// InstallReport says what Install changed.
type InstallReport struct {
	CreatedVenv bool
	AddedAlias  bool
}

// DefaultRC picks the rc file for the user's shell.
func DefaultRC(shell, home string) string {
	if filepath.Base(shell) == "bash" {
		return filepath.Join(home, ".bashrc")
	}
	return filepath.Join(home, ".zshrc")
}

// Install creates the venv when missing, installs or upgrades the whisper
// package into it and adds the transcribe alias to the rc file.
func (i Installer) Install(ctx context.Context) (InstallReport, error) {
	var rep InstallReport
	if err := runner.Require(i.Runner, "python3"); err != nil {
		return rep, err
	}
	pkg := i.Package
	if pkg == "" {
		pkg = DefaultPackage
	}

	if _, err := os.Stat(filepath.Join(i.Venv, "bin", "python")); errors.Is(err, os.ErrNotExist) {
		log.Infof("creating venv: %s", i.Venv)
		if err := i.Runner.Run(ctx, "python3", "-m", "venv", i.Venv); err != nil {
			return rep, err
		}
		rep.CreatedVenv = true
	}

	pip := filepath.Join(i.Venv, "bin", "pip")
	if err := i.Runner.Run(ctx, pip, "install", "--upgrade", pkg); err != nil {
		return rep, err
	}

	added, err := ensureAlias(i.RC)
	if err != nil {
		return rep, err
	}
	rep.AddedAlias = added
	return rep, nil
}

// ensureAlias appends the alias unless any line already defines one.
func ensureAlias(rc string) (bool, error) {
	present, err := hasAlias(rc)
	if err != nil {
		return false, err
	}
	if present {
		return false, nil
	}

	f, err := os.OpenFile(rc, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:mnd
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", rc, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "\n%s\n%s\n", aliasMarker, aliasLine); err != nil {
		return false, fmt.Errorf("failed to update %s: %w", rc, err)
	}
	return true, nil
}

func hasAlias(rc string) (bool, error) {
	f, err := os.Open(rc)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", rc, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), aliasProbe) {
			return true, nil
		}
	}
	return false, scanner.Err()
}
