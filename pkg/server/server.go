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
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/nlnwa/gotxtar/pkg/index"
	"github.com/nlnwa/gotxtar/pkg/loader"
	log "github.com/sirupsen/logrus"
)

// Handler returns an http.Handler serving the archives in db.
//
// Routes:
//
//	GET /archives       JSON list of indexed archive paths
//	GET /refs/{name}    JSON list of storage refs for files named name
//	GET /files/{name}   content of the first file named name
func Handler(db *index.Db, l *loader.Loader, middleware ...mux.MiddlewareFunc) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware...)
	r.Handle("/archives", &archivesHandler{db: db}).Methods(http.MethodGet)
	r.Handle("/refs/{name:.+}", &refsHandler{db: db}).Methods(http.MethodGet)
	r.Handle("/files/{name:.+}", &contentHandler{loader: l}).Methods(http.MethodGet)
	return r
}

type archivesHandler struct {
	db *index.Db
}

func (h *archivesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	paths, err := h.db.ListArchives()
	if err != nil {
		handleError(err, w)
		return
	}
	if paths == nil {
		paths = []string{}
	}
	writeJSON(w, paths)
}

type refsHandler struct {
	db *index.Db
}

type refJson struct {
	Ref   string `json:"ref"`
	Path  string `json:"path"`
	Index int    `json:"index"`
}

func (h *refsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	refs, err := h.db.Lookup(name)
	if err != nil {
		handleError(err, w)
		return
	}
	result := make([]refJson, len(refs))
	for i, ref := range refs {
		result[i] = refJson{Ref: ref.String(), Path: ref.Path, Index: ref.Index}
	}
	writeJSON(w, result)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("failed to write response: %v", err)
	}
}

func handleError(err error, w http.ResponseWriter) {
	log.Errorf("request failed: %v", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
