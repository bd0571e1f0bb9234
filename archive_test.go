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
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const simpleArchive = `comment1
comment2
-- file1 --
File 1 text.
-- foo ---
More file 1 text.
-- file 2 --
File 2 text.
-- empty --
-- noNL --
hello world
-- empty filename line --
some content
-- --`

func simpleArchiveWant() *Archive {
	return &Archive{
		comment: "comment1\ncomment2\n",
		files: []File{
			{"file1", "File 1 text.\n-- foo ---\nMore file 1 text.\n"},
			{"file 2", "File 2 text.\n"},
			{"empty", ""},
			{"noNL", "hello world\n"},
			{"empty filename line", "some content\n-- --\n"},
		},
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		data string
		want *Archive
	}{
		{
			"empty",
			"",
			&Archive{},
		},
		{
			"comment only",
			"just a comment",
			&Archive{comment: "just a comment\n"},
		},
		{
			"basic",
			simpleArchive,
			simpleArchiveWant(),
		},
		{
			"ordering",
			"c\n-- a --\n1\n-- b --\n2\n",
			&Archive{comment: "c\n", files: []File{{"a", "1\n"}, {"b", "2\n"}}},
		},
		{
			"empty file and empty name",
			"--  --\n-- x --\nhi",
			&Archive{files: []File{{"", ""}, {"x", "hi\n"}}},
		},
		{
			"five byte marker line is text",
			"-- --\n-- x --\nhi",
			&Archive{comment: "-- --\n", files: []File{{"x", "hi\n"}}},
		},
		{
			"no trailing newline",
			"-- x --\nhello",
			&Archive{files: []File{{"x", "hello\n"}}},
		},
		{
			"only markers",
			"-- a --\n-- b --\n-- c --",
			&Archive{files: []File{{"a", ""}, {"b", ""}, {"c", ""}}},
		},
		{
			"name stripping",
			"--   foo bar   --\nx\n",
			&Archive{files: []File{{"foo bar", "x\n"}}},
		},
		{
			"false positive stays in content",
			"-- a --\nx\n-- foo ---\ny\n",
			&Archive{files: []File{{"a", "x\n-- foo ---\ny\n"}}},
		},
		{
			"duplicate names",
			"-- a --\n1\n-- a --\n2\n",
			&Archive{files: []File{{"a", "1\n"}, {"a", "2\n"}}},
		},
		{
			"blank lines are kept",
			"\n\n-- a --\n\n\n",
			&Archive{comment: "\n\n", files: []File{{"a", "\n\n"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseString(tt.data)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Parse([]byte(tt.data)))
		})
	}
}

func TestArchive_accessors(t *testing.T) {
	assert := assert.New(t)
	a := ParseString("c\n-- a --\n1\n-- b --\n2\n-- a --\n3\n")

	assert.Equal("c\n", a.Comment())
	assert.Equal(3, a.Len())
	assert.Equal([]string{"a", "b", "a"}, a.Names())

	f, ok := a.Get("b")
	assert.True(ok)
	assert.Equal(File{"b", "2\n"}, f)

	f, ok = a.Get("a")
	assert.True(ok)
	assert.Equal(File{"a", "1\n"}, f, "lookup returns first match")

	_, ok = a.Get("z")
	assert.False(ok)

	assert.Equal(File{"a", "3\n"}, a.File(2), "later duplicates are reachable by index")
	assert.Panics(func() { a.File(3) })
	assert.Panics(func() { a.File(-1) })
}

func TestArchive_Files(t *testing.T) {
	assert := assert.New(t)
	a := ParseString(simpleArchive)

	var names []string
	for f := range a.Files() {
		names = append(names, f.Name)
	}
	assert.Equal([]string{"file1", "file 2", "empty", "noNL", "empty filename line"}, names)

	// Iteration can be restarted
	assert.Equal(slices.Collect(a.Files()), slices.Collect(a.Files()))
	assert.Len(slices.Collect(a.Files()), 5)

	// Iteration can be stopped early
	count := 0
	for range a.Files() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(2, count)

	for i, f := range a.All() {
		assert.Equal(a.File(i), f)
	}

	assert.Empty(slices.Collect(ParseString("").Files()))
}

func TestArchive_Equal(t *testing.T) {
	assert := assert.New(t)
	assert.True(ParseString(simpleArchive).Equal(simpleArchiveWant()))
	assert.True(ParseString("").Equal(&Archive{files: []File{}}))
	assert.False(ParseString("-- a --\n").Equal(ParseString("-- b --\n")))
	assert.False(ParseString("x\n-- a --\n").Equal(ParseString("-- a --\n")))
	assert.False(ParseString("-- a --\n-- b --\n").Equal(ParseString("-- a --\n")))
}

func TestParseFile(t *testing.T) {
	a, err := ParseFile("testdata/simple.txtar")
	require.NoError(t, err)
	assert.Equal(t, simpleArchiveWant(), a)

	_, err = ParseFile("testdata/missing.txtar")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	p := filepath.Join(t.TempDir(), "binary.txtar")
	require.NoError(t, os.WriteFile(p, []byte("-- a --\n\xff\xfe\n"), 0644))
	_, err = ParseFile(p)
	assert.ErrorIs(t, err, ErrInvalidEncoding)
	var pathErr *fs.PathError
	if assert.ErrorAs(t, err, &pathErr) {
		assert.Equal(t, p, pathErr.Path)
	}
}

// corpus returns inputs built from fragments which are likely to confuse the parser.
func corpus() []string {
	fragments := []string{"", "\n", "-- ", " --", "-- a --", "--  --", "-- --", "x", "-- foo ---", "\r\n", " ", "--"}
	var result []string
	for _, a := range fragments {
		for _, b := range fragments {
			for _, c := range fragments {
				result = append(result, a+b+c, a+"\n"+b+"\n"+c)
			}
		}
	}
	return result
}

func TestParse_roundTrip(t *testing.T) {
	for _, s := range corpus() {
		a := ParseString(s)
		once := ParseString(a.String())
		twice := ParseString(once.String())
		if !assert.True(t, a.Equal(once), "parse(format(parse(%q))) differs from parse", s) {
			continue
		}
		assert.True(t, once.Equal(twice), "normalization of %q is not a fixed point", s)
		assert.Equal(t, once.String(), a.String())
	}
}

func FuzzParse(f *testing.F) {
	f.Add(simpleArchive)
	f.Add("--  --\n-- x --\nhi")
	f.Add("-- foo ---\n-- a --")
	f.Fuzz(func(t *testing.T, s string) {
		a := ParseString(s)
		once := ParseString(a.String())
		if !a.Equal(once) {
			t.Fatalf("parse(format(parse(%q))) = %q, want %q", s, once.String(), a.String())
		}
	})
}
