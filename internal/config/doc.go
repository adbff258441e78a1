// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for dotctl's user
// configuration. The configuration is a YAML document located in the user's
// configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/dotctl.yaml or $HOME/.config/dotctl.yaml
//   - macOS: $HOME/Library/Application Support/dotctl.yaml
//
// DOTCTL_CFG_FILE overrides the location. An optional dotctl.env file next to
// it is loaded into the environment before flags are resolved.
package config
