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
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/prometheus/tsdb/fileutil"
	log "github.com/sirupsen/logrus"
)

// WriteFile writes the serialized form of an Archive to the named file.
//
// The archive is first written to a uniquely named temporary file in the same directory. The temporary file has the
// suffix set by WithOpenFileSuffix and is renamed to name when completely written. An existing file is replaced.
func WriteFile(name string, a *Archive, opts ...Option) error {
	o := newOptions(opts...)

	tmp := name + "." + uuid.NewString() + o.openFileSuffix
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, o.filePerm)
	if err != nil {
		return err
	}
	n, err := o.marshaler.Marshal(f, a)
	if err == nil && o.flush {
		// sync file to reduce possibility of half written archives in case of crash
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close file: %s: %w", tmp, cerr)
	}
	if err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := fileutil.Rename(tmp, name); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to rename file: %s: %w", tmp, err)
	}
	log.Debugf("wrote archive %s: %d bytes, %d files", name, n, len(a.files))
	return nil
}

// Extract writes every file in the archive below dir, creating directories as needed.
//
// Nothing is written if any file name can not be used as a relative path; the returned error then lists a *NameError for
// each such name. Existing files are not replaced unless WithOverwrite(true) is given. This also applies to duplicate
// names within the archive: without overwrite the second one fails, with overwrite the last one wins.
//
// The content is written as stored in the archive. The comment is not extracted.
func Extract(a *Archive, dir string, opts ...Option) error {
	o := newOptions(opts...)

	var errs multiErr
	for i, f := range a.files {
		if msg := checkPath(f.Name); msg != "" {
			errs = append(errs, newNameError(f.Name, i, msg))
		}
	}
	if errs != nil {
		return fmt.Errorf("gotxtar: refusing to extract: %w", errs)
	}

	flag := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if !o.overwrite {
		flag |= os.O_EXCL
	}
	for _, f := range a.files {
		p := filepath.Join(dir, filepath.FromSlash(f.Name))
		if err := writeMember(p, flag, f.Content, o); err != nil {
			errs = append(errs, err)
			continue
		}
		log.Debugf("extracted %s", p)
	}
	if errs != nil {
		return fmt.Errorf("gotxtar: extract error: %w", errs)
	}
	return nil
}

func writeMember(p string, flag int, content string, o *options) error {
	if err := os.MkdirAll(filepath.Dir(p), o.dirPerm); err != nil {
		return err
	}
	w, err := os.OpenFile(p, flag, o.filePerm)
	if err != nil {
		return err
	}
	if _, err := w.WriteString(content); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// FromDir creates an Archive from the regular files below dir.
//
// Files are added in lexical order with slash separated names relative to dir. Directories are not stored and other
// file types like symbolic links are skipped. A file which is not valid UTF-8 is an error unless the encoding check is
// turned off with WithEncodingCheck(false). Use WithComment to set the archive comment.
func FromDir(dir string, opts ...Option) (*Archive, error) {
	o := newOptions(opts...)
	a := &Archive{comment: o.comment}

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			log.Debugf("skipping %s: not a regular file", p)
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		if rel == "." {
			rel = filepath.Base(p)
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		if o.encodingCheck && !utf8.Valid(data) {
			return &fs.PathError{Op: "read", Path: p, Err: ErrInvalidEncoding}
		}
		a.files = append(a.files, File{Name: filepath.ToSlash(rel), Content: string(data)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}
