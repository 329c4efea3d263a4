package config

import (
	"path/filepath"
	"sync"
	"time"

	"bloom-gl/log"

	"github.com/fsnotify/fsnotify"
)

var logger = log.New("config")

// Editors often write a file in several steps; events closer than this are merged.
const settleDelay = 100 * time.Millisecond

// Watcher reloads a config file whenever it changes on disk.
// Only valid configs are delivered; a newer config replaces an undelivered one.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan *Config
	done    chan struct{}
	wg      sync.WaitGroup
}

func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// watching the directory survives editors that replace the file
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    abs,
		watcher: fw,
		updates: make(chan *Config, 1),
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

func (w *Watcher) Close() error {
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	var settle <-chan time.Time
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			settle = time.After(settleDelay)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warningf("config watcher: %v", err)
		case <-settle:
			settle = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		logger.Errorf("ignoring config change: %v", err)
		return
	}
	logger.Infof("reloaded %s", w.path)

	// drop a stale update nobody picked up yet
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- cfg:
	default:
	}
}
