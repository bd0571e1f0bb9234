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
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/nlnwa/gotxtar"
	log "github.com/sirupsen/logrus"
)

const (
	fileKeyPrefix    = "f/" // <len(name)>:<name><path>\x00<index> -> storage ref
	entryKeyPrefix   = "p/" // <path>\x00<index> -> file key
	archiveKeyPrefix = "a/" // <path> -> number of files
)

// Db is an index from names of files inside archives to their location on disk.
type Db struct {
	dbDir  string
	index  *badger.DB
	gc     *time.Ticker
	done   chan struct{}
	gcWg   sync.WaitGroup
	suffix string
}

// NewIndexDb opens or creates an index.
func NewIndexDb(opts Options) (*Db, error) {
	d := &Db{suffix: opts.Suffix}

	var bo badger.Options
	if opts.InMemory {
		bo = badger.DefaultOptions("").WithInMemory(true)
	} else {
		d.dbDir = filepath.Join(opts.Dir, "txtardb")
		if err := os.MkdirAll(d.dbDir, 0777); err != nil {
			return nil, err
		}
		bo = badger.DefaultOptions(d.dbDir)
	}
	bo = bo.WithLogger(log.StandardLogger())

	var err error
	d.index, err = badger.Open(bo)
	if err != nil {
		return nil, err
	}

	if !opts.InMemory {
		d.gc = time.NewTicker(5 * time.Minute)
		d.done = make(chan struct{})
		d.gcWg.Add(1)
		go func() {
			defer d.gcWg.Done()
			for {
				select {
				case <-d.done:
					return
				case <-d.gc.C:
				}
			again:
				err := d.index.RunValueLogGC(0.7)
				if err == nil {
					goto again
				}
			}
		}()
	}
	return d, nil
}

// Suffix returns the file name suffix of archives to index.
func (d *Db) Suffix() string {
	return d.suffix
}

// Delete removes the index from disk. The Db must be closed first.
func (d *Db) Delete() error {
	if d.dbDir == "" {
		return nil
	}
	return os.RemoveAll(d.dbDir)
}

func (d *Db) Close() {
	if d.gc != nil {
		d.gc.Stop()
		close(d.done)
		d.gcWg.Wait()
	}
	if err := d.index.Close(); err != nil {
		log.Errorf("failed to close index: %v", err)
	}
}

func fileKey(name, path string, idx int) []byte {
	return []byte(fileKeyPrefix + strconv.Itoa(len(name)) + ":" + name + path + "\x00" + fmt.Sprintf("%010d", idx))
}

func fileKeyNamePrefix(name string) []byte {
	return []byte(fileKeyPrefix + strconv.Itoa(len(name)) + ":" + name)
}

func entryKey(path string, idx int) []byte {
	return []byte(entryKeyPrefix + path + "\x00" + fmt.Sprintf("%010d", idx))
}

func entryKeyPathPrefix(path string) []byte {
	return []byte(entryKeyPrefix + path + "\x00")
}

func archiveKey(path string) []byte {
	return []byte(archiveKeyPrefix + path)
}

// AddArchive indexes every file in the archive found at path. Earlier entries for path are replaced.
func (d *Db) AddArchive(path string, a *gotxtar.Archive) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	err = d.index.Update(func(txn *badger.Txn) error {
		if err := removeArchive(txn, path); err != nil {
			return err
		}
		for i, f := range a.All() {
			fk := fileKey(f.Name, path, i)
			ref := StorageRef{Path: path, Index: i}
			if err := txn.Set(fk, []byte(ref.String())); err != nil {
				return err
			}
			if err := txn.Set(entryKey(path, i), fk); err != nil {
				return err
			}
		}
		return txn.Set(archiveKey(path), []byte(strconv.Itoa(a.Len())))
	})
	if err != nil {
		return fmt.Errorf("failed to index %s: %w", path, err)
	}
	log.Debugf("indexed %s: %d files", path, a.Len())
	return nil
}

// RemoveArchive removes all entries for the archive at path.
func (d *Db) RemoveArchive(path string) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return d.index.Update(func(txn *badger.Txn) error {
		return removeArchive(txn, path)
	})
}

func removeArchive(txn *badger.Txn, path string) error {
	var keys [][]byte

	prefix := entryKeyPathPrefix(path)
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		fk, err := item.ValueCopy(nil)
		if err != nil {
			it.Close()
			return err
		}
		keys = append(keys, item.KeyCopy(nil), fk)
	}
	it.Close()

	for _, k := range keys {
		if err := txn.Delete(k); err != nil {
			return err
		}
	}
	// An archive without files has only its archive key
	return txn.Delete(archiveKey(path))
}

// Lookup returns the location of every file with the given name, ordered by archive path and position in archive.
func (d *Db) Lookup(name string) ([]StorageRef, error) {
	var result []StorageRef
	err := d.index.View(func(txn *badger.Txn) error {
		prefix := fileKeyNamePrefix(name)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			v, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			ref, err := ParseStorageRef(string(v))
			if err != nil {
				return err
			}
			result = append(result, ref)
		}
		return nil
	})
	return result, err
}

// ListArchives returns the paths of all indexed archives in sorted order.
func (d *Db) ListArchives() ([]string, error) {
	var result []string
	opt := badger.DefaultIteratorOptions
	opt.PrefetchValues = false
	err := d.index.View(func(txn *badger.Txn) error {
		prefix := []byte(archiveKeyPrefix)
		it := txn.NewIterator(opt)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			result = append(result, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	return result, err
}
