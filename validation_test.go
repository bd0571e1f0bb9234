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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		archive *Archive
		want    []string
	}{
		{
			"parsed archive",
			ParseString(simpleArchive),
			nil,
		},
		{
			"duplicate name",
			&Archive{files: []File{{"a", "x"}, {"b", ""}, {"a", "y"}}},
			[]string{`gotxtar: duplicate name, first seen at index 0 for file "a" at index 2`},
		},
		{
			"names not surviving round trip",
			&Archive{files: []File{{" b ", ""}, {"c\nd", ""}}},
			[]string{
				`gotxtar: name has surrounding white space for file " b " at index 0`,
				`gotxtar: name contains line break for file "c\nd" at index 1`,
			},
		},
		{
			"names not usable as path",
			&Archive{files: []File{{"../e", ""}, {"", ""}, {"/abs", ""}, {"./", ""}, {"a/../../b", ""}}},
			[]string{
				`gotxtar: name escapes archive root for file "../e" at index 0`,
				`gotxtar: empty name for file "" at index 1`,
				`gotxtar: name is not a relative path for file "/abs" at index 2`,
				`gotxtar: name does not denote a file for file "./" at index 3`,
				`gotxtar: name escapes archive root for file "a/../../b" at index 4`,
			},
		},
		{
			"markers in comment and content",
			&Archive{comment: "-- h --\n", files: []File{{"f", "x\n-- g --\ny"}}},
			[]string{
				`gotxtar: comment contains file marker at line 1`,
				`gotxtar: content of file "f" at index 0 contains file marker at line 2`,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Validate(tt.archive)
			var got []string
			for _, err := range *v {
				got = append(got, err.Error())
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want) == 0, v.Valid())
		})
	}
}

func TestValidation_String(t *testing.T) {
	assert := assert.New(t)
	v := &Validation{}
	assert.Equal("", v.String())

	v.AddError(newNameError("a", 1, "duplicate name"))
	v.AddError(&ContentError{index: -1, line: 3})
	want := "gotxtar: Validation errors:\n" +
		"  1: gotxtar: duplicate name for file \"a\" at index 1\n" +
		"  2: gotxtar: comment contains file marker at line 3\n"
	assert.Equal(want, v.String())
}

func TestNameError(t *testing.T) {
	assert := assert.New(t)
	err := newNameError("x", -1, "bad name")
	assert.Equal(`gotxtar: bad name for file "x"`, err.Error())
	assert.Equal("x", err.Name())
	assert.Equal(-1, err.Index())
}
