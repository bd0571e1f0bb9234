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

package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/nlnwa/gotxtar"
	"github.com/nlnwa/gotxtar/pkg/index"
	"github.com/nlnwa/gotxtar/pkg/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (http.Handler, string) {
	db, err := index.NewIndexDb(index.DefaultOptions().WithInMemory(true))
	require.NoError(t, err)
	t.Cleanup(db.Close)

	p := filepath.Join(t.TempDir(), "a.txtar")
	require.NoError(t, os.WriteFile(p, []byte("comment\n-- a.txt --\nhello\n-- dir/b.txt --\nworld\n"), 0644))
	a, err := gotxtar.ParseFile(p)
	require.NoError(t, err)
	require.NoError(t, db.AddArchive(p, a))

	l := &loader.Loader{Resolver: loader.DbResolver{Db: db}, Loader: &loader.FileStorageLoader{}}
	return Handler(db, l), p
}

func TestHandler(t *testing.T) {
	h, p := newTestHandler(t)
	p, _ = filepath.Abs(p)

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantType   string
		wantBody   string
	}{
		{"archives", http.MethodGet, "/archives", 200, "application/json", `["` + p + `"]` + "\n"},
		{"refs", http.MethodGet, "/refs/dir/b.txt", 200, "application/json", `[{"ref":"txtar:` + p + `:1","path":"` + p + `","index":1}]` + "\n"},
		{"no refs", http.MethodGet, "/refs/missing", 200, "application/json", "[]\n"},
		{"file", http.MethodGet, "/files/a.txt", 200, "text/plain; charset=utf-8", "hello\n"},
		{"nested file", http.MethodGet, "/files/dir/b.txt", 200, "text/plain; charset=utf-8", "world\n"},
		{"missing file", http.MethodGet, "/files/missing", 404, "text/plain", "File not found\n"},
		{"wrong method", http.MethodPost, "/archives", 405, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
			assert.Equal(tt.wantStatus, rec.Code)
			if tt.wantType != "" {
				assert.Equal(tt.wantType, rec.Header().Get("Content-Type"))
			}
			if tt.wantBody != "" {
				assert.Equal(tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestHandler_middleware(t *testing.T) {
	db, err := index.NewIndexDb(index.DefaultOptions().WithInMemory(true))
	require.NoError(t, err)
	defer db.Close()

	var called bool
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			next.ServeHTTP(w, r)
		})
	}
	h := Handler(db, &loader.Loader{Resolver: loader.DbResolver{Db: db}, Loader: &loader.FileStorageLoader{}}, mw)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/archives", nil))
	assert.True(t, called)
	assert.Equal(t, "[]\n", rec.Body.String())
}
