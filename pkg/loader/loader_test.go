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
	"path/filepath"
	"testing"

	"github.com/nlnwa/gotxtar"
	"github.com/nlnwa/gotxtar/pkg/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Get(t *testing.T) {
	loader := &Loader{
		Resolver: &mockStorageRefResolver{},
		Loader:   &FileStorageLoader{},
	}

	tests := []struct {
		name     string
		fileName string
		want     gotxtar.File
		wantErr  bool
	}{
		{"first", "file1", gotxtar.File{Name: "file1", Content: "File 1 text.\n-- foo ---\nMore file 1 text.\n"}, false},
		{"empty", "empty", gotxtar.File{Name: "empty", Content: ""}, false},
		{"last", "empty filename line", gotxtar.File{Name: "empty filename line", Content: "some content\n-- --\n"}, false},
		{"not resolved", "missing", gotxtar.File{}, true},
		{"stale index", "stale", gotxtar.File{}, true},
		{"missing archive", "gone", gotxtar.File{}, true},
		{"name mismatch", "moved", gotxtar.File{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := loader.Get(context.Background(), tt.fileName)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileStorageLoader_Load_canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&FileStorageLoader{}).Load(ctx, index.StorageRef{Path: "testdata/simple.txtar", Index: 0})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileStorageLoader_FilePathResolver(t *testing.T) {
	l := &FileStorageLoader{
		FilePathResolver: func(path string) (string, error) {
			return filepath.Join("testdata", path), nil
		},
	}
	f, err := l.Load(context.Background(), index.StorageRef{Path: "simple.txtar", Index: 1})
	require.NoError(t, err)
	assert.Equal(t, "file 2", f.Name)
}

func TestDbResolver(t *testing.T) {
	db, err := index.NewIndexDb(index.DefaultOptions().WithInMemory(true))
	require.NoError(t, err)
	defer db.Close()

	a, err := gotxtar.ParseFile("testdata/simple.txtar")
	require.NoError(t, err)
	require.NoError(t, db.AddArchive("testdata/simple.txtar", a))

	loader := &Loader{
		Resolver: DbResolver{Db: db},
		Loader:   &FileStorageLoader{},
	}
	f, err := loader.Get(context.Background(), "noNL")
	require.NoError(t, err)
	assert.Equal(t, gotxtar.File{Name: "noNL", Content: "hello world\n"}, f)

	_, err = loader.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

type mockStorageRefResolver struct{}

func (m *mockStorageRefResolver) Resolve(name string) (storageRef index.StorageRef, err error) {
	switch name {
	case "file1":
		storageRef = index.StorageRef{Path: "testdata/simple.txtar", Index: 0}
	case "empty":
		storageRef = index.StorageRef{Path: "testdata/simple.txtar", Index: 2}
	case "empty filename line":
		storageRef = index.StorageRef{Path: "testdata/simple.txtar", Index: 4}
	case "stale":
		storageRef = index.StorageRef{Path: "testdata/simple.txtar", Index: 5}
	case "moved":
		storageRef = index.StorageRef{Path: "testdata/simple.txtar", Index: 3}
	case "gone":
		storageRef = index.StorageRef{Path: "testdata/gone.txtar", Index: 0}
	default:
		err = ErrNotFound
	}
	return
}
