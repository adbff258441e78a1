// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package transcribe turns MP3 recordings into text with OpenAI Whisper.
//
// Whisper runs out of a dedicated Python virtual environment that Installer
// creates. Service drives the whisper CLI one file at a time, reads its JSON
// output and writes plain or timestamped transcripts, either one per input or
// concatenated into a single batch file.
package transcribe
