/*
 * Copyright 2024 National Library of Norway.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *       http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package internal

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// SetColorMode enables or disables colored output. Mode is one of auto, always or never.
func SetColorMode(mode string) error {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto", "":
		fd := os.Stdout.Fd()
		color.NoColor = os.Getenv("TERM") == "dumb" || !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
	default:
		return fmt.Errorf("invalid color mode %q, must be one of auto, always or never", mode)
	}
	return nil
}

var (
	Name    = color.New(color.FgCyan).SprintFunc()
	Faint   = color.New(color.Faint).SprintFunc()
	Ok      = color.New(color.FgGreen).SprintFunc()
	Warning = color.New(color.FgYellow).SprintFunc()
	Failure = color.New(color.FgRed, color.Bold).SprintFunc()
)

// CropString shortens s to at most l runes, marking the cut with an ellipsis.
func CropString(s string, l int) string {
	r := []rune(s)
	if len(r) > l && l > 3 {
		return string(r[:l-3]) + "..."
	}
	return s
}
