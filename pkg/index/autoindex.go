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
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// Delay before a written archive is indexed. Editors and writers often produce several events for one save.
var writeDelay = 2 * time.Second

// AutoIndexer watches directories and keeps the index up to date with the archives in them.
type AutoIndexer struct {
	watcher     *fsnotify.Watcher
	indexWorker *IndexWorker
	watchDepth  int
	suffix      string
	depths      map[string]int
	done        chan struct{}
}

// NewAutoIndexer indexes all archives in dirs and starts watching them for changes.
// Subdirectories are followed down to watchDepth levels.
func NewAutoIndexer(db *Db, dirs []string, watchDepth int) (*AutoIndexer, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	a := &AutoIndexer{
		watcher:     watcher,
		indexWorker: NewIndexWorker(db, 8),
		watchDepth:  watchDepth,
		suffix:      db.suffix,
		depths:      make(map[string]int),
		done:        make(chan struct{}),
	}
	for _, wd := range dirs {
		if err := a.addAndIndexDir(filepath.Clean(wd), 0); err != nil {
			_ = watcher.Close()
			a.indexWorker.Shutdown()
			return nil, err
		}
	}
	go a.fileWatcher()
	return a, nil
}

// Wait blocks until every archive found so far is indexed.
func (a *AutoIndexer) Wait() {
	a.indexWorker.Wait()
}

func (a *AutoIndexer) Shutdown() {
	_ = a.watcher.Close()
	<-a.done
	a.indexWorker.Shutdown()
}

func (a *AutoIndexer) fileWatcher() {
	defer close(a.done)
	for {
		select {
		case event, ok := <-a.watcher.Events:
			if !ok {
				return
			}
			a.handle(event)
		case err, ok := <-a.watcher.Errors:
			if !ok {
				return
			}
			log.Errorf("watcher error: %v", err)
		}
	}
}

func (a *AutoIndexer) handle(event fsnotify.Event) {
	switch {
	case event.Has(fsnotify.Create):
		fStat, err := os.Stat(event.Name)
		if err != nil {
			log.Debugf("created file is gone: %v", err)
			return
		}
		if fStat.IsDir() {
			d := a.depths[filepath.Dir(event.Name)] + 1
			if d > a.watchDepth {
				return
			}
			if err := a.addAndIndexDir(event.Name, d); err != nil {
				log.Errorf("Error occured when trying to listen to new directory '%v', err: %v", event.Name, err)
			}
			return
		}
		if isArchive(event.Name, a.suffix) {
			a.indexWorker.Queue(event.Name, writeDelay)
		}
	case event.Has(fsnotify.Write):
		if isArchive(event.Name, a.suffix) {
			log.Debugf("modified file: %v", event.Name)
			a.indexWorker.Queue(event.Name, writeDelay)
		}
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		if _, ok := a.depths[event.Name]; ok {
			delete(a.depths, event.Name)
			return
		}
		if isArchive(event.Name, a.suffix) {
			a.indexWorker.Queue(event.Name, 0)
		}
	}
}

// addAndIndexDir adds a directory and its subdirectories down to the watch depth to the watcher and queues every
// archive found for indexing.
func (a *AutoIndexer) addAndIndexDir(path string, currentDepth int) error {
	if err := a.watcher.Add(path); err != nil {
		return err
	}
	a.depths[path] = currentDepth

	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		p := filepath.Join(path, entry.Name())
		if !entry.IsDir() {
			if isArchive(p, a.suffix) {
				a.indexWorker.Queue(p, 0)
			}
		} else if currentDepth < a.watchDepth {
			if err := a.addAndIndexDir(p, currentDepth+1); err != nil {
				return err
			}
		}
	}
	return nil
}
