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
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
)

// Unmarshaler is the interface that wraps the Unmarshal function.
//
// Unmarshal reads all of r and parses it as an Archive. It returns the number of bytes read.
// Parsing itself never fails; errors come from reading r or from the encoding check.
type Unmarshaler interface {
	Unmarshal(r io.Reader) (*Archive, int64, error)
}

type unmarshaler struct {
	opts *options
}

// NewUnmarshaler creates a new Unmarshaler with the supplied options.
func NewUnmarshaler(opts ...Option) Unmarshaler {
	return &unmarshaler{opts: newOptions(opts...)}
}

func (u *unmarshaler) Unmarshal(r io.Reader) (*Archive, int64, error) {
	data, err := io.ReadAll(r)
	n := int64(len(data))
	if err != nil {
		return nil, n, err
	}
	if u.opts.encodingCheck && !utf8.Valid(data) {
		return nil, n, ErrInvalidEncoding
	}
	a := Parse(data)
	log.Debugf("unmarshalled archive of %d bytes with %d files", n, len(a.files))
	return a, n, nil
}
