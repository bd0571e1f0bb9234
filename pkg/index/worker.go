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
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/nlnwa/gotxtar"
	log "github.com/sirupsen/logrus"
)

// IndexWorker indexes archives queued by path using a pool of goroutines.
type IndexWorker struct {
	db      *Db
	jobs    chan string
	closing chan struct{}
	workers sync.WaitGroup
	pending sync.WaitGroup
	mu      sync.Mutex
	timers  map[string]*time.Timer
	once    sync.Once
}

// NewIndexWorker starts a pool of count goroutines adding archives to db.
func NewIndexWorker(db *Db, count int) *IndexWorker {
	if count < 1 {
		count = 1
	}
	w := &IndexWorker{
		db:      db,
		jobs:    make(chan string, count),
		closing: make(chan struct{}),
		timers:  make(map[string]*time.Timer),
	}
	w.workers.Add(count)
	for i := 0; i < count; i++ {
		go w.work()
	}
	return w
}

func (w *IndexWorker) work() {
	defer w.workers.Done()
	for {
		select {
		case <-w.closing:
			return
		case path := <-w.jobs:
			w.index(path)
			w.pending.Done()
		}
	}
}

func (w *IndexWorker) index(path string) {
	a, err := gotxtar.ParseFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debugf("archive %s is gone, removing from index", path)
		if err := w.db.RemoveArchive(path); err != nil {
			log.Errorf("failed to remove %s from index: %v", path, err)
		}
		return
	}
	if err != nil {
		log.Warnf("skipping %s: %v", path, err)
		return
	}
	if err := w.db.AddArchive(path, a); err != nil {
		log.Errorf("%v", err)
	}
}

// Queue schedules the archive at path to be indexed after delay.
// Queueing a path which is already waiting restarts its delay, so a burst of writes to a file gives one indexing.
func (w *IndexWorker) Queue(path string, delay time.Duration) {
	select {
	case <-w.closing:
		return
	default:
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[path]; ok && t.Stop() {
		t.Reset(delay)
		return
	}
	w.pending.Add(1)
	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		w.mu.Lock()
		if w.timers[path] == t {
			delete(w.timers, path)
		}
		w.mu.Unlock()
		select {
		case <-w.closing:
			w.pending.Done()
		case w.jobs <- path:
		}
	})
	w.timers[path] = t
}

// Wait blocks until every queued archive is indexed.
func (w *IndexWorker) Wait() {
	w.pending.Wait()
}

// Shutdown stops the workers. Archives still waiting are not indexed.
func (w *IndexWorker) Shutdown() {
	w.once.Do(func() {
		close(w.closing)
		w.mu.Lock()
		for path, t := range w.timers {
			if t.Stop() {
				w.pending.Done()
			}
			delete(w.timers, path)
		}
		w.mu.Unlock()
		w.workers.Wait()
	})
}

// IndexDirs indexes every archive with the db's suffix found in dirs down to maxDepth levels of subdirectories.
// It returns when all archives are indexed.
func IndexDirs(db *Db, dirs []string, maxDepth int, workers int) error {
	w := NewIndexWorker(db, workers)
	defer w.Shutdown()

	count := 0
	for _, dir := range dirs {
		root := filepath.Clean(dir)
		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != root && depth(root, p) > maxDepth {
					return filepath.SkipDir
				}
				return nil
			}
			if isArchive(p, db.suffix) {
				w.Queue(p, 0)
				count++
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	w.Wait()
	log.Infof("indexed %d archives", count)
	return nil
}

func depth(root, p string) int {
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(os.PathSeparator)) + 1
}

func isArchive(p, suffix string) bool {
	name := filepath.Base(p)
	return strings.HasSuffix(name, suffix) && !strings.HasSuffix(name, "~") && !strings.HasPrefix(name, ".")
}
