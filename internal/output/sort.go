// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"sort"
	"strings"
)

// SortDataset orders rows by a comma separated list of keys. A leading "-"
// sorts that key descending and a leading "!" compares case sensitively.
// Numbers compare numerically, everything else as strings.
func SortDataset(rows []map[string]interface{}, spec string) {
	if spec == "" {
		return
	}
	fields := strings.Split(spec, ",")

	sort.SliceStable(rows, func(one, two int) bool {
		for _, field := range fields {
			ascending := true
			if strings.HasPrefix(field, "-") {
				field = strings.TrimPrefix(field, "-")
				ascending = false
			}

			caseSensitive := false
			if strings.HasPrefix(field, "!") {
				field = strings.TrimPrefix(field, "!")
				caseSensitive = true
			}

			oneNum, oneOk := number(rows[one][field])
			twoNum, twoOk := number(rows[two][field])
			if oneOk && twoOk {
				if oneNum != twoNum {
					return (oneNum < twoNum) == ascending
				}
				continue
			}

			oneStr := InterfaceToString(rows[one][field])
			twoStr := InterfaceToString(rows[two][field])
			if !caseSensitive {
				oneStr = strings.ToLower(oneStr)
				twoStr = strings.ToLower(twoStr)
			}

			if oneStr != twoStr {
				return (oneStr < twoStr) == ascending
			}
		}
		return false
	})
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
