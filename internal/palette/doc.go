// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package palette derives a 16-color terminal scheme from a wallpaper image.
//
// The dominant colors are found with k-means over a thumbnail of the image,
// the darkest and brightest become background and foreground, and every
// palette entry is nudged until it reads at WCAG AA contrast against the
// background. Schemes render to kitty, tmux and Neovim theme files.
package palette
