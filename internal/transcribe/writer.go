// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package transcribe

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const separatorWidth = 50

// writeTranscript writes one transcript. With timestamps each segment gets a
// "[MM:SS -> MM:SS] text" line; without, or when there are no segments, the
// full text is written.
func writeTranscript(w io.Writer, r Result, timestamps bool) error {
	if timestamps && len(r.Segments) > 0 {
		for _, s := range r.Segments {
			if _, err := fmt.Fprintf(w, "[%s -> %s] %s\n", FormatTimestamp(s.Start), FormatTimestamp(s.End), s.Text); err != nil {
				return err
			}
		}
		return nil
	}
	_, err := fmt.Fprintln(w, r.Text)
	return err
}

// WriteIndividual writes each result to its own Output file.
func WriteIndividual(results []Result, timestamps bool) error {
	for _, r := range results {
		if err := writeFile(r.Output, func(w io.Writer) error {
			return writeTranscript(w, r, timestamps)
		}); err != nil {
			return err
		}
	}
	return nil
}

// WriteConcatenated writes every result to path, each under a "=== name ==="
// header, with a rule between files.
func WriteConcatenated(path string, results []Result, timestamps bool) error {
	return writeFile(path, func(w io.Writer) error {
		for i, r := range results {
			if _, err := fmt.Fprintf(w, "=== %s ===\n", filepath.Base(r.Input)); err != nil {
				return err
			}
			if err := writeTranscript(w, r, timestamps); err != nil {
				return err
			}
			if i < len(results)-1 {
				if _, err := fmt.Fprintf(w, "\n%s\n\n", strings.Repeat("=", separatorWidth)); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	if err := fn(bw); err != nil {
		f.Close()
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return f.Close()
}
