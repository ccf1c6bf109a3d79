// Copyright (C) 2026 textisbeautiful.net
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package validation validates user-submitted input before it reaches the
// analytics service or the outbound mail relay.
package validation

import (
	"fmt"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Text size limits for a single analysis run. Below the minimum the service
// produces degenerate maps; above the maximum runs take too long to be worth
// hosting for anonymous visitors.
const (
	MinTextLen = 5000
	MaxTextLen = 105000
)

var validate = validator.New()

// ValidateText checks the submitted text length in runes.
func ValidateText(text string) error {
	n := utf8.RuneCountInString(text)
	if n < MinTextLen || n > MaxTextLen {
		return fmt.Errorf("text must be between %d and %d characters, got %d", MinTextLen, MaxTextLen, n)
	}
	return nil
}

// ValidateEmail checks an email address, accepting the empty string so that
// optional form fields pass through.
func ValidateEmail(email string) error {
	if email == "" {
		return nil
	}
	if err := validate.Var(email, "email"); err != nil {
		return fmt.Errorf("invalid email address %q", email)
	}
	return nil
}
