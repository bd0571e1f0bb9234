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
	"io"
	"strings"
	"unicode/utf8"
)

// ArchiveBuilder is used for creating Archives programmatically.
type ArchiveBuilder interface {
	SetComment(comment string)
	AddFile(name string, content string)
	AddFileFromReader(name string, r io.Reader) error
	Build() (*Archive, *Validation)
}

type archiveBuilder struct {
	opts    *options
	comment string
	files   []File
}

// NewArchiveBuilder creates a new ArchiveBuilder.
//
// Supported options are WithEncodingCheck, which applies to AddFileFromReader, and WithComment.
func NewArchiveBuilder(opts ...Option) ArchiveBuilder {
	o := newOptions(opts...)
	return &archiveBuilder{opts: o, comment: o.comment}
}

func (ab *archiveBuilder) SetComment(comment string) {
	ab.comment = comment
}

func (ab *archiveBuilder) AddFile(name string, content string) {
	ab.files = append(ab.files, File{Name: name, Content: content})
}

func (ab *archiveBuilder) AddFileFromReader(name string, r io.Reader) error {
	sb := &strings.Builder{}
	if _, err := io.Copy(sb, r); err != nil {
		return err
	}
	content := sb.String()
	if ab.opts.encodingCheck && !utf8.ValidString(content) {
		return ErrInvalidEncoding
	}
	ab.AddFile(name, content)
	return nil
}

// Build returns the Archive built so far together with the result of validating it.
//
// The archive is stored as given. Formatting normalizes missing trailing newlines. Building never fails,
// but the Validation tells if the archive would parse differently after being formatted.
func (ab *archiveBuilder) Build() (*Archive, *Validation) {
	a := &Archive{
		comment: ab.comment,
		files:   append([]File(nil), ab.files...),
	}
	return a, Validate(a)
}
