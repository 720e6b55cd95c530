// Package jpmgr implements a dynamically-loadable plugin manager: it
// discovers plugin libraries on disk, validates their declared metadata
// and API compatibility, orders them by inter-plugin dependency,
// instantiates them in that order, routes addressed messages between
// them and the host, and tears them down in reverse order on shutdown.
//
// Key Features:
//   - Filesystem discovery of plugin libraries by required-symbol presence
//   - JSON descriptor validation and API-version compatibility checking
//   - Dependency-DAG construction with deterministic topological ordering
//   - Cycle detection with no partial load order on failure
//   - Ordered, idempotent load/unload with guaranteed resource release
//   - A pure in-process request router addressed by plugin name
//
// Basic Usage:
//
//	mgr := jpmgr.NewManager()
//
//	if code := mgr.Search("/opt/myapp/plugins", true, nil); !code.OK() {
//		log.Fatal(code.Message())
//	}
//
//	if code := mgr.LoadAll(true, nil); !code.OK() {
//		log.Fatal(code.Message())
//	}
//	defer mgr.UnloadAll(nil)
//
// Concurrency:
// jpmgr is single-threaded and cooperative by design: Search, LoadAll,
// UnloadAll and request dispatch all run synchronously on the caller's
// goroutine and share unsynchronized state. Callers that need concurrent
// access must serialize it themselves; see the Manager doc comment.
//
// Copyright (c) 2025 The jpmgr authors
// SPDX-License-Identifier: MPL-2.0
package jpmgr
