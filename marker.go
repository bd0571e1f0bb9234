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

package gotxtar

import (
	"strings"
)

const (
	newlineMarker = "\n-- "
	marker        = "-- "
	markerEnd     = " --"
	markerLen     = len(marker) + len(markerEnd)
)

// findFileMarker finds the first file marker line in data.
//
// If found, before is the text preceding the marker line, name is the file name declared by the marker
// and after is the text following the marker line. If no marker is found, before is the whole of data with
// a trailing newline enforced and found is false.
func findFileMarker(data string) (before, name, after string, found bool) {
	var i int
	for {
		if name, after, ok := isMarker(data[i:]); ok {
			return data[:i], name, after, true
		}
		j := strings.Index(data[i:], newlineMarker)
		if j < 0 {
			return fixNL(data), "", "", false
		}
		// Skip past the newline so the next candidate starts at "-- "
		i += j + 1
	}
}

// isMarker checks if data begins with a file marker line.
// If so, it returns the stripped name and the text after the line.
func isMarker(data string) (name, after string, ok bool) {
	if !strings.HasPrefix(data, marker) {
		return "", "", false
	}
	line := data
	if i := strings.IndexByte(data, '\n'); i >= 0 {
		line, after = data[:i], data[i+1:]
	}
	if len(line) < markerLen || !strings.HasSuffix(line, markerEnd) {
		return "", "", false
	}
	return strings.TrimSpace(line[len(marker) : len(line)-len(markerEnd)]), after, true
}

// fixNL returns s with a trailing newline added if s is non-empty and does not already end in one.
func fixNL(s string) string {
	if s == "" || s[len(s)-1] == '\n' {
		return s
	}
	return s + "\n"
}
