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
	"errors"
	"fmt"

	"github.com/nlnwa/gotxtar"
	"github.com/nlnwa/gotxtar/pkg/index"
	log "github.com/sirupsen/logrus"
)

// ErrNotFound is returned when no archive contains a file with the requested name.
var ErrNotFound = errors.New("file not found")

type StorageRefResolver interface {
	Resolve(name string) (storageRef index.StorageRef, err error)
}

type StorageLoader interface {
	Load(ctx context.Context, storageRef index.StorageRef) (file gotxtar.File, err error)
}

// Loader finds files inside indexed archives by name.
type Loader struct {
	Resolver StorageRefResolver
	Loader   StorageLoader
}

func (l *Loader) Get(ctx context.Context, name string) (file gotxtar.File, err error) {
	storageRef, err := l.Resolver.Resolve(name)
	if err != nil {
		return
	}
	log.Debugf("resolved %q -> %v", name, storageRef)
	file, err = l.Loader.Load(ctx, storageRef)
	if err != nil {
		return
	}
	if file.Name != name {
		return gotxtar.File{}, fmt.Errorf("stale storage ref %v: found %q, expected %q", storageRef, file.Name, name)
	}
	return
}

// DbResolver resolves names using an index. If several archives contain the name, the first storage ref is used.
type DbResolver struct {
	Db *index.Db
}

func (r DbResolver) Resolve(name string) (index.StorageRef, error) {
	refs, err := r.Db.Lookup(name)
	if err != nil {
		return index.StorageRef{}, err
	}
	if len(refs) == 0 {
		return index.StorageRef{}, ErrNotFound
	}
	return refs[0], nil
}
