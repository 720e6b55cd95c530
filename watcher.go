// watcher.go: optional filesystem watching to trigger re-discovery
//
// Copyright (c) 2025 The jpmgr authors
// SPDX-License-Identifier: MPL-2.0

package jpmgr

import (
	"time"

	"github.com/agilira/argus"
)

// DirectoryWatcher monitors a directory for new plugin candidate files
// and re-runs Search when one appears. It never touches an
// already-loaded plugin: per spec.md's Non-goals, jpmgr has no live
// hot-reload story, only "notice a new file and search again".
type DirectoryWatcher struct {
	manager   *Manager
	dir       string
	recursive bool
	cb        Callback
	watcher   *argus.Watcher
}

// NewDirectoryWatcher constructs (but does not start) a watcher over
// dir on behalf of m.
func NewDirectoryWatcher(m *Manager, dir string, recursive bool, cb Callback) (*DirectoryWatcher, error) {
	dw := &DirectoryWatcher{
		manager:   m,
		dir:       dir,
		recursive: recursive,
		cb:        cb,
	}

	dw.watcher = argus.New(argus.Config{
		PollInterval:         2 * time.Second,
		CacheTTL:             1 * time.Second,
		MaxWatchedFiles:      100,
		OptimizationStrategy: argus.OptimizationSingleEvent,
		ErrorHandler: func(err error, filepath string) {
			m.logger.Warn("plugin directory watch error", "path", filepath, "error", err)
		},
	})

	return dw, nil
}

// Start begins watching. Every change event except a delete triggers a
// fresh Search over the watched directory; delete events are ignored.
// Search only registers names not already present, so an
// already-registered plugin is never replaced, since neither the core
// nor the ABI defines a way to safely swap a live instance's backing
// image.
func (dw *DirectoryWatcher) Start() error {
	if err := dw.watcher.Watch(dw.dir, dw.handleChange); err != nil {
		return newWatcherError("failed to watch plugin directory", err)
	}
	if err := dw.watcher.Start(); err != nil {
		return newWatcherError("failed to start plugin directory watcher", err)
	}
	return nil
}

// Stop halts watching. Idempotent-safe to call on an already-stopped
// watcher only insofar as the underlying argus.Watcher is.
func (dw *DirectoryWatcher) Stop() error {
	if err := dw.watcher.Stop(); err != nil {
		return newWatcherError("failed to stop plugin directory watcher", err)
	}
	return nil
}

func (dw *DirectoryWatcher) handleChange(event argus.ChangeEvent) {
	defer withStackRecover(dw.manager.logger)()

	if event.IsDelete {
		return
	}

	dw.manager.logger.Info("plugin directory change detected, re-scanning",
		"path", event.Path, "dir", dw.dir)
	dw.manager.Search(dw.dir, dw.recursive, dw.cb)
}
