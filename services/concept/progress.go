// Copyright (C) 2026 textisbeautiful.net
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package concept

// stageProgress maps each pipeline stage to the percentage shown to polling
// clients. The values are display-only; control flow never consults them.
var stageProgress = map[string]int{
	"PREPROCESS":      11,
	"TEXTSTATS":       22,
	"REMOVE_LOW_FREQ": 33,
	"INDEX":           44,
	"FINDSEEDS":       55,
	"LEARN":           66,
	"CLASSIFY":        78,
	"CLUSTER":         90,
	terminalStage:     100,
}

// Progress projects a stage name onto the 0-100 client scale. Unknown or
// empty stages report 0, meaning the run has not visibly started yet.
func Progress(stage string) int {
	return stageProgress[stage]
}
