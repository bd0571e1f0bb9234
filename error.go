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
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidEncoding is returned when reading an archive or a file to be archived which is not valid UTF-8.
var ErrInvalidEncoding = errors.New("gotxtar: invalid UTF-8 encoding")

// NameError describes a problem with the name of a file in an archive.
//
// Parsing never produces a NameError. It is reported by Validate and returned by Extract
// when a name can not be used as a path.
type NameError struct {
	name  string
	index int
	msg   string
}

func newNameError(name string, index int, msg string) *NameError {
	return &NameError{name: name, index: index, msg: msg}
}

func newNameErrorf(name string, index int, msg string, param ...interface{}) *NameError {
	return &NameError{name: name, index: index, msg: fmt.Sprintf(msg, param...)}
}

// Name returns the offending file name.
func (e *NameError) Name() string {
	return e.name
}

// Index returns the position of the offending file in the archive, or -1 if not applicable.
func (e *NameError) Index() int {
	return e.index
}

func (e *NameError) Error() string {
	if e.index >= 0 {
		return fmt.Sprintf("gotxtar: %s for file %q at index %d", e.msg, e.name, e.index)
	} else {
		return fmt.Sprintf("gotxtar: %s for file %q", e.msg, e.name)
	}
}

// ContentError describes text inside a comment or file which would be read as a file marker.
type ContentError struct {
	name  string
	index int
	line  int
}

func (e *ContentError) Error() string {
	if e.index < 0 {
		return fmt.Sprintf("gotxtar: comment contains file marker at line %d", e.line)
	}
	return fmt.Sprintf("gotxtar: content of file %q at index %d contains file marker at line %d", e.name, e.index, e.line)
}

type multiErr []error

func (e multiErr) Error() string {
	switch len(e) {

	case 0:
		return ""

	case 1:
		return e[0].Error()
	}

	const (
		start = "["
		sep   = ", "
		end   = "]"
	)

	n := len(start) + len(end) + (len(sep) * (len(e) - 1))
	for i := 0; i < len(e); i++ {
		n += len(e[i].Error())
	}

	var b strings.Builder
	b.Grow(n)
	b.WriteString(start)
	b.WriteString(e[0].Error())
	for _, s := range e[1:] {
		b.WriteString(sep)
		b.WriteString(s.Error())
	}
	b.WriteString(end)
	return b.String()
}

func (e multiErr) Unwrap() []error {
	return e
}
