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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStorageRef(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		want    StorageRef
		wantErr bool
	}{
		{"valid", "txtar:/data/x.txtar:3", StorageRef{"/data/x.txtar", 3}, false},
		{"colon in path", "txtar:C:/data/x.txtar:0", StorageRef{"C:/data/x.txtar", 0}, false},
		{"wrong scheme", "warcfile:/data/x.warc:0", StorageRef{}, true},
		{"missing index", "txtar:/data/x.txtar", StorageRef{}, true},
		{"negative index", "txtar:/data/x.txtar:-1", StorageRef{}, true},
		{"missing path", "txtar::1", StorageRef{}, true},
		{"empty", "", StorageRef{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStorageRef(tt.ref)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ref, got.String())
		})
	}
}
