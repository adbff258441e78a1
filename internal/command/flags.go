// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// NewGlobalFlags returns the output flags shared by the listing commands.
// Defaults may come from the config file under ns or globally.
func NewGlobalFlags(ns string, path string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: Sources(ns, "color", path),
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json, yaml)",
			Sources: Sources(ns, "output", path),
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of columns to sort the results by",
			Sources: Sources(ns, "sort", path),
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: Sources(ns, "titles", path),
			Value:   false,
		},
	}

	return
}

// Sources builds the value chain for a flag: the DOTCTL_<NS>_<NAME>
// environment variable, then the namespaced "<ns>.<name>" config key, then
// the global "<name>" key.
func Sources(ns string, name string, path string) cli.ValueSourceChain {
	chain := cli.NewValueSourceChain(cli.EnvVar(EnvName(ns, name)))
	if path == "" {
		return chain
	}
	return NameSpacedValueChainFromConfigFile(ns, name, path, chain)
}

// NameSpacedValueChainFromConfigFile adds namespaced and global config file
// sources to chain.
func NameSpacedValueChainFromConfigFile(ns string, name string, path string, chain cli.ValueSourceChain) cli.ValueSourceChain {
	if ns != "" {
		src := yaml.YAML(ns+"."+name, altsrc.StringSourcer(path))
		chain.Chain = append(chain.Chain, src)
	}

	src := yaml.YAML(name, altsrc.StringSourcer(path))
	chain.Chain = append(chain.Chain, src)

	return chain
}

// EnvName maps a flag to its environment variable, e.g. ("lapse", "speed")
// becomes DOTCTL_LAPSE_SPEED.
func EnvName(ns string, name string) string {
	key := name
	if ns != "" {
		key = ns + "_" + name
	}
	key = strings.NewReplacer("-", "_", ".", "_").Replace(key)
	return "DOTCTL_" + strings.ToUpper(key)
}
