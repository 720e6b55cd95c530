// callback.go: the per-incident notification signature
//
// Copyright (c) 2025 The jpmgr authors
// SPDX-License-Identifier: MPL-2.0

package jpmgr

// Callback is delivered once per incident during Search, LoadAll, and
// UnloadAll — a non-fatal, per-item event distinct from the operation's
// own aggregate ReturnCode return value. detail is the plugin name or
// path the incident concerns, when known.
//
// A nil Callback is always safe to pass; jpmgr checks for nil before
// every call.
type Callback func(code ReturnCode, detail string)

func notify(cb Callback, code ReturnCode, detail string) {
	if cb != nil {
		cb(code, detail)
	}
}
