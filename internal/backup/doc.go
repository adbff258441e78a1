// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package backup commits and pushes every change in the dotfiles repository
// and can ship a tarball of the committed tree to S3. A scheduler repeats the
// backup at a fixed interval.
package backup
