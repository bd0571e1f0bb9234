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
	"io/fs"
	"iter"
	"os"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
)

// Archive is a parsed txtar archive: a comment followed by an ordered sequence of files.
//
// An Archive is immutable. It is safe for concurrent use by multiple readers.
type Archive struct {
	comment string
	files   []File
}

// File is a single file within an Archive.
type File struct {
	Name    string // name of file, may be empty and is not guaranteed to be unique
	Content string // content of file
}

func (f File) String() string {
	return marker + f.Name + markerEnd + "\n" + fixNL(f.Content)
}

// Parse parses the serialized form of an Archive.
//
// There are no syntax errors in a txtar archive, so Parse always returns an Archive.
// A missing trailing newline on the final line is treated as if present.
func Parse(data []byte) *Archive {
	return ParseString(string(data))
}

// ParseString is like Parse, but takes a string.
func ParseString(s string) *Archive {
	a := &Archive{}
	var name string
	var found bool
	a.comment, name, s, found = findFileMarker(s)
	for found {
		f := File{Name: name}
		f.Content, name, s, found = findFileMarker(s)
		a.files = append(a.files, f)
	}
	return a
}

// ParseFile reads the named file and parses it as an Archive.
//
// The only possible errors are those from reading the file, and ErrInvalidEncoding wrapped in
// a *fs.PathError if the file is not valid UTF-8.
func ParseFile(path string) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, &fs.PathError{Op: "read", Path: path, Err: ErrInvalidEncoding}
	}
	a := Parse(data)
	log.Debugf("parsed archive %s: %d files", path, len(a.files))
	return a, nil
}

// Comment returns the text preceding the first file marker.
// It is empty if the archive has no comment.
func (a *Archive) Comment() string {
	return a.comment
}

// Len returns the number of files in the archive.
func (a *Archive) Len() int {
	return len(a.files)
}

// File returns the file at position i.
// It panics if i is out of range. Use Len to check the number of files or Get for a safe lookup.
func (a *Archive) File(i int) File {
	return a.files[i]
}

// Get returns the first file with the given name.
// The boolean is false if no such file exists.
func (a *Archive) Get(name string) (File, bool) {
	for _, f := range a.files {
		if f.Name == name {
			return f, true
		}
	}
	return File{}, false
}

// Files returns an iterator over the files in the order they appear in the archive.
func (a *Archive) Files() iter.Seq[File] {
	return func(yield func(File) bool) {
		for _, f := range a.files {
			if !yield(f) {
				return
			}
		}
	}
}

// All returns an iterator over positions and files in the order they appear in the archive.
func (a *Archive) All() iter.Seq2[int, File] {
	return func(yield func(int, File) bool) {
		for i, f := range a.files {
			if !yield(i, f) {
				return
			}
		}
	}
}

// Names returns the file names in archive order. Duplicates are kept.
func (a *Archive) Names() []string {
	names := make([]string, len(a.files))
	for i, f := range a.files {
		names[i] = f.Name
	}
	return names
}

// Equal reports whether a and b have the same comment and the same files in the same order.
func (a *Archive) Equal(b *Archive) bool {
	if a.comment != b.comment || len(a.files) != len(b.files) {
		return false
	}
	for i := range a.files {
		if a.files[i] != b.files[i] {
			return false
		}
	}
	return true
}

// String returns the canonical serialized form of the archive.
func (a *Archive) String() string {
	return string(Format(a))
}
