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
	"bytes"
	"io"
)

// Marshaler is the interface that wraps the Marshal function.
//
// Marshal writes the serialized form of an Archive to w and returns the number of bytes written or any error encountered.
type Marshaler interface {
	Marshal(w io.Writer, a *Archive) (int64, error)
}

type defaultMarshaler struct {
}

// NewMarshaler returns a Marshaler producing the canonical form of an archive.
//
// The comment and each file's content get a trailing newline if they are non-empty and lack one.
// Each file is introduced by a marker line of the form "-- NAME --".
func NewMarshaler() Marshaler {
	return &defaultMarshaler{}
}

func (m *defaultMarshaler) Marshal(w io.Writer, a *Archive) (int64, error) {
	// Write comment
	n, err := io.WriteString(w, fixNL(a.comment))
	bytesWritten := int64(n)
	if err != nil {
		return bytesWritten, err
	}

	for _, f := range a.files {
		// Write file marker
		n, err = io.WriteString(w, marker+f.Name+markerEnd+"\n")
		bytesWritten += int64(n)
		if err != nil {
			return bytesWritten, err
		}

		// Write content
		n, err = io.WriteString(w, fixNL(f.Content))
		bytesWritten += int64(n)
		if err != nil {
			return bytesWritten, err
		}
	}
	return bytesWritten, nil
}

// Format returns the canonical serialized form of an Archive.
//
// It is assumed that the Archive data structure is well-formed:
// Format does not check for file names or content lines which would be read differently when parsed. Use Validate for that.
func Format(a *Archive) []byte {
	var buf bytes.Buffer
	// Writes to a bytes.Buffer do not fail
	_, _ = (&defaultMarshaler{}).Marshal(&buf, a)
	return buf.Bytes()
}
