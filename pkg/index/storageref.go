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

package index

import (
	"fmt"
	"strconv"
	"strings"
)

// StorageRef points to a file inside an archive on disk.
type StorageRef struct {
	Path  string // absolute path to archive
	Index int    // position of file within archive
}

const storageRefScheme = "txtar"

// String returns the storage ref on the form txtar:<path>:<index>
func (r StorageRef) String() string {
	return fmt.Sprintf("%s:%s:%d", storageRefScheme, r.Path, r.Index)
}

// ParseStorageRef parses the string form of a StorageRef.
func ParseStorageRef(s string) (StorageRef, error) {
	scheme, rest, ok := strings.Cut(s, ":")
	if !ok || scheme != storageRefScheme {
		return StorageRef{}, fmt.Errorf("storage ref '%s' is not a txtar ref", s)
	}
	// Path may contain colons, index is after the last one
	i := strings.LastIndexByte(rest, ':')
	if i < 0 {
		return StorageRef{}, fmt.Errorf("storage ref '%s' is missing index", s)
	}
	idx, err := strconv.Atoi(rest[i+1:])
	if err != nil || idx < 0 {
		return StorageRef{}, fmt.Errorf("storage ref '%s' has invalid index", s)
	}
	if rest[:i] == "" {
		return StorageRef{}, fmt.Errorf("storage ref '%s' is missing path", s)
	}
	return StorageRef{Path: rest[:i], Index: idx}, nil
}
