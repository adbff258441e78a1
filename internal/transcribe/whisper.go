// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package transcribe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Segment is one timed span of speech.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Result is the transcript of one input.
type Result struct {
	Input    string
	Output   string
	Text     string
	Language string
	Segments []Segment
}

// ParseWhisperJSON reads the document whisper writes with
// --output_format json.
func ParseWhisperJSON(data []byte) (Result, error) {
	if !gjson.ValidBytes(data) {
		return Result{}, errors.New("whisper output is not valid JSON")
	}
	doc := gjson.ParseBytes(data)

	text := doc.Get("text")
	if !text.Exists() {
		return Result{}, errors.New("whisper output has no text")
	}

	r := Result{
		Text:     strings.TrimSpace(text.String()),
		Language: "unknown",
	}
	if lang := doc.Get("language"); lang.Exists() && lang.String() != "" {
		r.Language = lang.String()
	}
	doc.Get("segments").ForEach(func(_, seg gjson.Result) bool {
		r.Segments = append(r.Segments, Segment{
			Start: seg.Get("start").Float(),
			End:   seg.Get("end").Float(),
			Text:  strings.TrimSpace(seg.Get("text").String()),
		})
		return true
	})
	return r, nil
}

// FormatTimestamp renders seconds as MM:SS. Minutes keep growing past 59.
func FormatTimestamp(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60) //nolint:mnd
}
