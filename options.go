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
	"fmt"
	"io/fs"
)

type options struct {
	encodingCheck  bool
	overwrite      bool
	flush          bool
	openFileSuffix string
	filePerm       fs.FileMode
	dirPerm        fs.FileMode
	comment        string
	marshaler      Marshaler
}

func (o *options) String() string {
	return fmt.Sprintf("Encoding check: %v, Overwrite: %v, Flush: %v", o.encodingCheck, o.overwrite, o.flush)
}

// Option configures reading, writing and extraction of archives.
type Option interface {
	apply(*options)
}

// EmptyOption does not alter the configuration. It can be embedded in
// another structure to build custom options.
type EmptyOption struct{}

func (EmptyOption) apply(*options) {}

// funcOption wraps a function that modifies options into an
// implementation of the Option interface.
type funcOption struct {
	f func(*options)
}

func (fo *funcOption) apply(po *options) {
	fo.f(po)
}

func newFuncOption(f func(*options)) *funcOption {
	return &funcOption{
		f: f,
	}
}

func defaultOptions() options {
	return options{
		encodingCheck:  true,
		overwrite:      false,
		flush:          false,
		openFileSuffix: ".open",
		filePerm:       0666,
		dirPerm:        0777,
		marshaler:      &defaultMarshaler{},
	}
}

func newOptions(opts ...Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt.apply(&o)
	}
	return &o
}

// WithEncodingCheck decides if input must be valid UTF-8.
// defaults to true
func WithEncodingCheck(check bool) Option {
	return newFuncOption(func(o *options) {
		o.encodingCheck = check
	})
}

// WithOverwrite sets if Extract is allowed to replace existing files.
// defaults to false
func WithOverwrite(overwrite bool) Option {
	return newFuncOption(func(o *options) {
		o.overwrite = overwrite
	})
}

// WithFlush sets if WriteFile should commit the archive to stable storage before renaming it into place.
// defaults to false
func WithFlush(flush bool) Option {
	return newFuncOption(func(o *options) {
		o.flush = flush
	})
}

// WithOpenFileSuffix sets a suffix to be added to the temporary file name while an archive is being written.
// defaults to ".open"
func WithOpenFileSuffix(suffix string) Option {
	return newFuncOption(func(o *options) {
		o.openFileSuffix = suffix
	})
}

// WithFilePerm sets the permission bits used for files created by WriteFile and Extract.
// Permissions are not stored in archives.
// defaults to 0666 (before umask)
func WithFilePerm(perm fs.FileMode) Option {
	return newFuncOption(func(o *options) {
		o.filePerm = perm
	})
}

// WithDirPerm sets the permission bits used for directories created by Extract.
// defaults to 0777 (before umask)
func WithDirPerm(perm fs.FileMode) Option {
	return newFuncOption(func(o *options) {
		o.dirPerm = perm
	})
}

// WithComment sets the comment of archives created by FromDir.
// defaults to no comment
func WithComment(comment string) Option {
	return newFuncOption(func(o *options) {
		o.comment = comment
	})
}

// WithMarshaler sets the marshaler used by WriteFile.
// defaults to the canonical marshaler
func WithMarshaler(marshaler Marshaler) Option {
	return newFuncOption(func(o *options) {
		o.marshaler = marshaler
	})
}
