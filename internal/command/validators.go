// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"slices"

	"github.com/dotctl/dotctl/internal/output"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

func OutputValidator(value any) error {
	return oneOf(output.Formats)(value)
}

// oneOf returns a validator accepting only the listed string values.
func oneOf(valid []string) FlagValidatorType {
	return func(value any) error {
		s, _ := value.(string)
		if !slices.Contains(valid, s) {
			return fmt.Errorf("must be one of %v", valid)
		}
		return nil
	}
}

// positive rejects zero and negative integers.
func positive(value any) error {
	if n, ok := value.(int); ok && n <= 0 {
		return fmt.Errorf("must be greater than 0, got %d", n)
	}
	return nil
}
