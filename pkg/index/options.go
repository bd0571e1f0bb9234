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

type Options struct {
	Dir      string
	InMemory bool
	Suffix   string
}

func DefaultOptions() Options {
	return Options{
		Dir:      "",
		InMemory: false,
		Suffix:   ".txtar",
	}
}

func (opt Options) WithDir(val string) Options {
	opt.Dir = val
	return opt
}

// WithInMemory keeps the index in memory only. Dir is ignored.
func (opt Options) WithInMemory(val bool) Options {
	opt.InMemory = val
	return opt
}

// WithSuffix sets the file name suffix of archives picked up when indexing directories.
func (opt Options) WithSuffix(val string) Options {
	opt.Suffix = val
	return opt
}
