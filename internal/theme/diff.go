// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package theme

import (
	"fmt"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// Diff compares two parsed themes and renders the changed keys. It returns
// false when the themes are identical.
func Diff(left, right map[string]any, coloring bool) (string, bool, error) {
	delta := gojsondiff.New().CompareObjects(left, right)
	if !delta.Modified() {
		return "", false, nil
	}

	f := formatter.NewAsciiFormatter(left, formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       coloring,
	})
	out, err := f.Format(delta)
	if err != nil {
		return "", true, fmt.Errorf("failed to format theme diff: %w", err)
	}
	return out, true, nil
}

// DiffFiles parses and compares two theme files.
func DiffFiles(a, b string, coloring bool) (string, bool, error) {
	left, err := ParseFile(a)
	if err != nil {
		return "", false, err
	}
	right, err := ParseFile(b)
	if err != nil {
		return "", false, err
	}
	return Diff(left, right, coloring)
}
