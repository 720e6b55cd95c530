// panic_recovery.go: goroutine panic isolation for event handler callbacks
//
// Copyright (c) 2025 The jpmgr authors
// SPDX-License-Identifier: MPL-2.0

package jpmgr

import "runtime"

// withStackRecover returns a deferred recovery function that logs a
// panic (with stack trace) instead of letting it crash the process.
// jpmgr uses this around the directory watcher's change callback and
// around a plugin instance's Loaded/AboutToBeUnloaded lifecycle
// callbacks, since a plugin author's callback misbehaving must not
// bring the host down.
func withStackRecover(logger Logger) func() {
	return func() {
		if r := recover(); r != nil {
			buf := make([]byte, 64<<10)
			n := runtime.Stack(buf, false)
			logger.Error("panic recovered in jpmgr goroutine",
				"panic", r,
				"stack", string(buf[:n]))
		}
	}
}
