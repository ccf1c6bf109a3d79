// Copyright (C) 2026 textisbeautiful.net
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package validation

import (
	"strings"
	"testing"
)

func TestValidateText(t *testing.T) {
	cases := []struct {
		name string
		text string
		ok   bool
	}{
		{"empty", "", false},
		{"too short", "short text", false},
		{"just below minimum", strings.Repeat("a", MinTextLen-1), false},
		{"at minimum", strings.Repeat("a", MinTextLen), true},
		{"comfortably inside", strings.Repeat("a", 50000), true},
		{"at maximum", strings.Repeat("a", MaxTextLen), true},
		{"just above maximum", strings.Repeat("a", MaxTextLen+1), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateText(tc.text)
			if tc.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestValidateTextCountsRunes(t *testing.T) {
	// Multibyte characters count once each.
	text := strings.Repeat("é", MinTextLen)
	if err := ValidateText(text); err != nil {
		t.Errorf("rune-counted text should pass: %v", err)
	}
}

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail(""); err != nil {
		t.Errorf("empty email is optional, got %v", err)
	}
	if err := ValidateEmail("ada@example.com"); err != nil {
		t.Errorf("valid email rejected: %v", err)
	}
	if err := ValidateEmail("not-an-email"); err == nil {
		t.Error("invalid email accepted")
	}
}
