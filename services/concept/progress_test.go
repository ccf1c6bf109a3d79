// Copyright (C) 2026 textisbeautiful.net
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package concept

import "testing"

func TestProgress(t *testing.T) {
	cases := []struct {
		stage string
		want  int
	}{
		{"PREPROCESS", 11},
		{"TEXTSTATS", 22},
		{"REMOVE_LOW_FREQ", 33},
		{"INDEX", 44},
		{"FINDSEEDS", 55},
		{"LEARN", 66},
		{"CLASSIFY", 78},
		{"CLUSTER", 90},
		{"MAP", 100},
		{"", 0},
		{"SOMETHING_NEW", 0},
	}
	for _, tc := range cases {
		if got := Progress(tc.stage); got != tc.want {
			t.Errorf("Progress(%q) = %d, want %d", tc.stage, got, tc.want)
		}
	}
}
