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
	"path"
	"strconv"
	"strings"
)

// Validation contain validation results.
//
// Validation findings are advisory. An archive with findings is still a valid archive.
type Validation []error

func (v *Validation) String() string {
	if len(*v) == 0 {
		return ""
	}

	sb := strings.Builder{}
	sb.WriteString("gotxtar: Validation errors:\n")
	for i, e := range *v {
		sb.WriteString("  ")
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(": ")
		sb.WriteString(e.Error())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (v *Validation) AddError(err error) {
	*v = append(*v, err)
}

// Valid returns true if there are no validation findings.
func (v *Validation) Valid() bool {
	return len(*v) == 0
}

// Validate checks an archive for properties which does not prevent it from being used, but which might surprise:
//
//   - duplicate file names (only the first is reachable with Archive.Get)
//   - file names which would be changed by formatting and parsing the archive again
//   - comment or content lines which would be read as file markers
//   - file names which can not be used as a relative path by Extract
func Validate(a *Archive) *Validation {
	validation := &Validation{}

	if line, ok := markerLine(a.comment); ok {
		validation.AddError(&ContentError{index: -1, line: line})
	}

	seen := make(map[string]int, len(a.files))
	for i, f := range a.files {
		if first, ok := seen[f.Name]; ok {
			validation.AddError(newNameErrorf(f.Name, i, "duplicate name, first seen at index %d", first))
		} else {
			seen[f.Name] = i
		}
		if strings.ContainsAny(f.Name, "\r\n") {
			validation.AddError(newNameError(f.Name, i, "name contains line break"))
		} else if f.Name != strings.TrimSpace(f.Name) {
			validation.AddError(newNameError(f.Name, i, "name has surrounding white space"))
		}
		if err := checkPath(f.Name); err != "" {
			validation.AddError(newNameError(f.Name, i, err))
		}
		if line, ok := markerLine(f.Content); ok {
			validation.AddError(&ContentError{name: f.Name, index: i, line: line})
		}
	}
	return validation
}

// markerLine returns the 1-based line number of the first line in s which is a file marker.
func markerLine(s string) (int, bool) {
	before, _, _, found := findFileMarker(s)
	if !found {
		return 0, false
	}
	return strings.Count(before, "\n") + 1, true
}

// checkPath returns a description of why name can not be used as a relative slash separated path.
// It returns the empty string if name is usable.
func checkPath(name string) string {
	switch {
	case name == "":
		return "empty name"
	case strings.ContainsRune(name, 0):
		return "name contains NUL"
	case strings.HasPrefix(name, "/") || strings.Contains(name, "\\") || (len(name) > 1 && name[1] == ':'):
		return "name is not a relative path"
	}
	for _, elem := range strings.Split(name, "/") {
		if elem == ".." {
			return "name escapes archive root"
		}
	}
	if path.Clean(name) == "." {
		return "name does not denote a file"
	}
	return ""
}
