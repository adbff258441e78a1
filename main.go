// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dotctl/dotctl/internal/cacheutil"
	"github.com/dotctl/dotctl/internal/command"
	"github.com/dotctl/dotctl/internal/config"
	"github.com/dotctl/dotctl/internal/log"
	"github.com/dotctl/dotctl/internal/version"
)

// defaultPurgeHours is how long cache entries live without cache.purge_hours.
const defaultPurgeHours = 168

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v before the subcommand and returns
// whether it was handled. Subcommands are free to use -v themselves.
func handleVersion(args []string) bool {
	if len(args) > 1 && (args[1] == "--version" || args[1] == "-v") {
		fmt.Println(version.Version)
		return true
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// hasHelp reports whether --help or -h appears anywhere in args.
func hasHelp(args []string) bool {
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return true
		}
	}
	return false
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		// Short-circuit completion: pass args directly.
		return args
	}

	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)
	return deduplicateFlags(args, command.RepeatableFlags())
}

// processSetOnly expands an "@name" argument into the flags listed under
// "<command>.<name>" in the config file, at the position of the argument.
func processSetOnly(args []string) []string {
	if len(args) < 3 { //nolint:mnd
		return args
	}

	removeIdx := -1
	set := ""
	for i, a := range args[2:] {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			set = a[1:]
			removeIdx = 2 + i
			break
		}
	}
	if removeIdx == -1 {
		return args
	}

	setArgs, err := config.GetStringSlice(args[1] + "." + set)
	if err != nil {
		log.Warnf("argument set %q not found under %s", set, args[1])
	}

	out := make([]string, 0, len(args)+len(setArgs))
	out = append(out, args[:removeIdx]...)
	for _, arg := range setArgs {
		out = append(out, strings.Fields(arg)...)
	}
	return append(out, args[removeIdx+1:]...)
}

// deduplicateFlags drops earlier occurrences of a repeated flag so the last
// one wins. A flag without "=" owns the following token when that token does
// not look like a flag. Positional arguments keep their order. Flags named in
// repeatable accumulate values and are never dropped.
func deduplicateFlags(args []string, repeatable map[string]bool) []string {
	if len(args) <= 2 { //nolint:mnd
		return args
	}

	var groups [][]string
	var names []string
	for i := 2; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			groups = append(groups, args[i:])
			names = append(names, "")
			i = len(args)
		case !strings.HasPrefix(a, "-") || a == "-":
			groups = append(groups, []string{a})
			names = append(names, "")
		case strings.Contains(a, "="):
			groups = append(groups, []string{a})
			names = append(names, a[:strings.Index(a, "=")])
		default:
			g := []string{a}
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				g = append(g, args[i+1])
				i++
			}
			groups = append(groups, g)
			names = append(names, a)
		}
	}

	last := map[string]int{}
	for i, n := range names {
		if n != "" {
			last[n] = i
		}
	}

	out := append([]string{}, args[:2]...)
	for i, g := range groups {
		if names[i] != "" && !repeatable[names[i]] && last[names[i]] != i {
			continue
		}
		out = append(out, g...)
	}
	return out
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(ctx context.Context, args []string) int {
	// Pre-create cache directory when caching is enabled.
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil {
		log.Debugf("cache ensure err: err=%v ok=%t", err, ok)
	} else if ok {
		hours, _ := config.GetInt("cache.purge_hours", defaultPurgeHours)
		if err := cacheutil.Purge(hours); err != nil {
			log.Debugf("cache purge err: err=%v", err)
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dotctl: %v\n", err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintf(os.Stderr, "dotctl: %v\n", err)
		log.Debugf("app run err: err=%v", err)
		return 1
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	if err := config.LoadEnv(); err != nil {
		log.Warnf("%v", err)
	}

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	if !hasHelp(args) {
		args = processCommandArgs(args)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return initAndRunApp(ctx, args)
}
