// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package transcribe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Models are the Whisper model sizes, fastest first.
var Models = []string{"tiny", "base", "small", "medium", "large"}

// Devices are the accepted --device values. auto lets Whisper decide.
var Devices = []string{"auto", "cpu", "cuda", "mps"}

const (
	DefaultModel  = "base"
	DefaultDevice = "auto"
	// DefaultVenv is where Installer puts the Whisper environment.
	DefaultVenv = "~/.transcribe-env"
)

// Config controls a transcription run.
type Config struct {
	Venv       string
	Model      string
	Device     string
	Timestamps bool
	// Verbose lets whisper print segments as it decodes them.
	Verbose bool
	// Batch concatenates every transcript into Output.
	Batch  bool
	Output string
}

// Validate checks the option combination for the given number of inputs.
func (c Config) Validate(inputs int) error {
	if !slices.Contains(Models, c.Model) {
		return fmt.Errorf("unknown model %q (choose from %s)", c.Model, strings.Join(Models, ", "))
	}
	if !slices.Contains(Devices, c.Device) {
		return fmt.Errorf("unknown device %q (choose from %s)", c.Device, strings.Join(Devices, ", "))
	}
	if inputs == 0 {
		return errors.New("at least one .mp3 file is required")
	}
	if c.Batch && c.Output == "" {
		return errors.New("batch mode requires an output file (-o/--output)")
	}
	if !c.Batch && c.Output != "" && inputs > 1 {
		return errors.New("--output with several files requires --batch")
	}
	return nil
}

// WhisperPath is the whisper executable inside the venv.
func (c Config) WhisperPath() string {
	return filepath.Join(c.Venv, "bin", "whisper")
}

// ValidateInputs checks that every path is a readable regular .mp3 file.
func ValidateInputs(paths []string) error {
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file not found: %s", p)
			}
			return err
		}
		if !fi.Mode().IsRegular() {
			return fmt.Errorf("path is not a file: %s", p)
		}
		if ext := strings.ToLower(filepath.Ext(p)); ext != ".mp3" {
			return fmt.Errorf("unsupported file format %q: %s (supported: .mp3)", ext, p)
		}
		f, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("file is not readable: %s", p)
		}
		f.Close()
	}
	return nil
}

// OutputPath is custom when set, otherwise the input with a .txt extension.
func OutputPath(input, custom string) string {
	if custom != "" {
		return custom
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".txt"
}
