// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package transcribe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dotctl/dotctl/internal/log"
	"github.com/dotctl/dotctl/internal/runner"
)

// Service runs whisper over a set of inputs.
type Service struct {
	Config Config
	Runner runner.Runner
	// Out receives progress lines.
	Out io.Writer
	// HeadroomGB is the free space wanted beyond the model size. Zero means
	// DefaultHeadroomGB.
	HeadroomGB float64
}

// Run transcribes files and saves the transcripts. In batch mode a file that
// fails is reported and skipped; otherwise the first failure aborts the run.
func (s *Service) Run(ctx context.Context, files []string) ([]Result, error) {
	if err := s.Config.Validate(len(files)); err != nil {
		return nil, err
	}
	if err := ValidateInputs(files); err != nil {
		return nil, err
	}

	whisper := s.Config.WhisperPath()
	if _, err := s.Runner.LookPath(whisper); err != nil {
		return nil, fmt.Errorf("%w (run 'dotctl transcribe install')", err)
	}

	var low *LowDiskError
	if home, err := os.UserHomeDir(); err == nil {
		headroom := s.HeadroomGB
		if headroom <= 0 {
			headroom = DefaultHeadroomGB
		}
		if err := CheckDiskSpace(s.Config.Model, home, headroom); errors.As(err, &low) {
			log.Warnf("low disk space: %v", low)
		}
	}

	var results []Result
	for _, in := range files {
		r, err := s.transcribe(ctx, whisper, in)
		if err != nil {
			if !s.Config.Batch || ctx.Err() != nil {
				return results, err
			}
			log.Errorf("skipping %s: %v", in, err)
			continue
		}
		r.Output = OutputPath(in, s.Config.Output)
		results = append(results, r)
	}

	if len(results) == 0 {
		return nil, errors.New("no files were successfully processed")
	}

	if s.Config.Batch {
		if err := WriteConcatenated(s.Config.Output, results, s.Config.Timestamps); err != nil {
			return results, err
		}
		s.printf("✓ Saved concatenated results: %s\n", s.Config.Output)
	} else {
		if err := WriteIndividual(results, s.Config.Timestamps); err != nil {
			return results, err
		}
		for _, r := range results {
			s.printf("✓ Saved: %s\n", r.Output)
		}
	}
	return results, nil
}

// transcribe runs whisper on one file into a scratch directory and parses
// the JSON it leaves there.
func (s *Service) transcribe(ctx context.Context, whisper, in string) (Result, error) {
	tmp, err := os.MkdirTemp("", "dotctl-whisper-*")
	if err != nil {
		return Result{}, fmt.Errorf("failed to create scratch dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	s.printf("Transcribing: %s\n", filepath.Base(in))
	err = s.Runner.Run(ctx, whisper, s.args(in, tmp)...)
	if err != nil && ctx.Err() == nil && mpsFailure(s.Config.Device, err) {
		log.WithError(err).Warnf("whisper failed on mps")
		s.printf("! MPS compatibility issue detected, falling back to CPU\n")
		s.Config.Device = "cpu"
		err = s.Runner.Run(ctx, whisper, s.args(in, tmp)...)
	}
	if err != nil {
		return Result{}, fmt.Errorf("failed to transcribe %s: %w", filepath.Base(in), err)
	}

	stem := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	data, err := os.ReadFile(filepath.Join(tmp, stem+".json"))
	if err != nil {
		return Result{}, fmt.Errorf("whisper produced no transcript for %s: %w", filepath.Base(in), err)
	}
	r, err := ParseWhisperJSON(data)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", filepath.Base(in), err)
	}
	r.Input = in
	log.Debugf("transcribed %s: language=%s segments=%d", in, r.Language, len(r.Segments))
	return r, nil
}

func (s *Service) args(in, outDir string) []string {
	verbose := "False"
	if s.Config.Verbose {
		verbose = "True"
	}
	args := []string{
		in,
		"--model", s.Config.Model,
		"--output_format", "json",
		"--output_dir", outDir,
		"--verbose", verbose,
	}
	if s.Config.Device != "" && s.Config.Device != DefaultDevice {
		args = append(args, "--device", s.Config.Device)
	}
	return args
}

// mpsFailure reports whether err looks like whisper tripping over the Apple
// GPU backend, which CPU decoding avoids.
func mpsFailure(device string, err error) bool {
	var te *runner.ToolError
	if device != "mps" || !errors.As(err, &te) {
		return false
	}
	msg := strings.ToLower(te.Stderr)
	return strings.Contains(msg, "mps") || strings.Contains(msg, "sparse")
}

func (s *Service) printf(format string, args ...any) {
	if s.Out != nil {
		fmt.Fprintf(s.Out, format, args...)
	}
}
