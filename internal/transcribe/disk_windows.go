// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package transcribe

import "errors"

func freeBytes(string) (uint64, error) {
	return 0, errors.New("free space check not supported")
}
