// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package timelapse turns a video into a sped-up, silent copy by driving
// ffmpeg with one of two fixed encoder presets.
package timelapse
