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

package loader

import (
	"context"
	"fmt"

	"github.com/nlnwa/gotxtar"
	"github.com/nlnwa/gotxtar/pkg/index"
	log "github.com/sirupsen/logrus"
)

// FileStorageLoader loads files from archives on the local file system.
type FileStorageLoader struct {
	// FilePathResolver may map the path of a storage ref to another location. Defaults to the path itself.
	FilePathResolver func(path string) (filePath string, err error)
}

func (f *FileStorageLoader) Load(ctx context.Context, storageRef index.StorageRef) (file gotxtar.File, err error) {
	if err = ctx.Err(); err != nil {
		return
	}
	filePath := storageRef.Path
	if f.FilePathResolver != nil {
		if filePath, err = f.FilePathResolver(filePath); err != nil {
			return
		}
	}
	log.Debugf("loading file from archive: %s, index: %v", filePath, storageRef.Index)

	a, err := gotxtar.ParseFile(filePath)
	if err != nil {
		return
	}
	// The archive might have changed since it was indexed
	if storageRef.Index < 0 || storageRef.Index >= a.Len() {
		return file, fmt.Errorf("stale storage ref %v: archive has %d files", storageRef, a.Len())
	}
	return a.File(storageRef.Index), nil
}
