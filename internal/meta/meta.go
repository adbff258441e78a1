// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/dotctl/dotctl/internal/config"
	"github.com/dotctl/dotctl/internal/runner"
)

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// loaded configuration, context, the starting working directory, the state
// directory used for PID and sidecar files, and the Runner used to reach
// external tools.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	StartingDir string
	StateDir    string
	Runner      runner.Runner
}
