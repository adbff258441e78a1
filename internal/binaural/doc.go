// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package binaural plays a binaural beat through SoX's play: the carrier
// frequency on the left channel and carrier+beat on the right. The player
// runs detached; its pid is kept in a PID file so a later invocation can stop
// it.
package binaural
