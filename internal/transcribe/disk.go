// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package transcribe

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

const gb = 1 << 30

// modelSizeGB approximates the download size of each model.
var modelSizeGB = map[string]float64{
	"tiny":   0.1,
	"base":   0.2,
	"small":  0.5,
	"medium": 1.5,
	"large":  3.0,
}

// DefaultHeadroomGB is added to the model size before comparing with free
// space.
const DefaultHeadroomGB = 0.5

// LowDiskError reports that a model download probably will not fit.
type LowDiskError struct {
	Model string
	Need  uint64
	Free  uint64
}

func (e *LowDiskError) Error() string {
	return fmt.Sprintf("model %q needs about %s but only %s is free",
		e.Model, humanize.IBytes(e.Need), humanize.IBytes(e.Free))
}

// CheckDiskSpace returns a *LowDiskError when dir lacks room for model plus
// headroomGB. When free space cannot be determined it returns nil.
func CheckDiskSpace(model, dir string, headroomGB float64) error {
	free, err := freeBytes(dir)
	if err != nil {
		return nil
	}
	size, ok := modelSizeGB[model]
	if !ok {
		size = 1.0
	}
	need := uint64((size + headroomGB) * gb)
	if free < need {
		return &LowDiskError{Model: model, Need: need, Free: free}
	}
	return nil
}
