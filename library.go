// library.go: opaque loaded-library abstraction and its default,
// standard-library-backed implementation.
//
// Copyright (c) 2025 The jpmgr authors
// SPDX-License-Identifier: MPL-2.0

package jpmgr

import (
	"errors"
	"plugin"
)

// Required exported symbols a well-formed plugin library must carry.
const (
	symbolName         = "JpName"
	symbolMetadata     = "JpMetadata"
	symbolCreatePlugin = "JpCreatePlugin"
)

var errAlreadyUnloaded = errors.New("library already unloaded")

// LibraryHandle abstracts one loaded plugin image. It is the Go
// realization of spec.md §9's design note: replace raw symbol
// pointers with "has_symbol(name), symbol_as<T>(name), and unload(),
// with scoped release."
//
// A PluginRecord owns exactly one LibraryHandle for its lifetime.
type LibraryHandle interface {
	// HasSymbol reports whether the named symbol is exported.
	HasSymbol(name string) bool

	// Symbol resolves the named symbol, or returns an error if it is
	// not present. The caller is responsible for the type assertion.
	Symbol(name string) (any, error)

	// Unload releases the underlying image. Idempotent.
	Unload() error

	// Loaded reports whether the image is still open.
	Loaded() bool
}

// LibraryLoader opens a candidate path as a plugin image. It is the
// external collaborator spec.md §1 calls "the OS-specific shared
// library loader" — out of the core's scope to implement from
// scratch, but the core depends on the interface.
type LibraryLoader interface {
	Load(path string) (LibraryHandle, error)
}

// goPluginLoader implements LibraryLoader on top of the standard
// library's plugin package (plugin.Open / (*plugin.Plugin).Lookup),
// the closest Go-native analogue to dlopen/LoadLibrary for in-process
// shared objects.
type goPluginLoader struct{}

// NewGoPluginLoader returns the default LibraryLoader.
func NewGoPluginLoader() LibraryLoader {
	return goPluginLoader{}
}

func (goPluginLoader) Load(path string) (LibraryHandle, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, newLoadLibraryError(path, err)
	}
	return &goPluginHandle{path: path, plugin: p, loaded: true}, nil
}

type goPluginHandle struct {
	path   string
	plugin *plugin.Plugin
	loaded bool
}

func (h *goPluginHandle) HasSymbol(name string) bool {
	if !h.loaded {
		return false
	}
	_, err := h.plugin.Lookup(name)
	return err == nil
}

func (h *goPluginHandle) Symbol(name string) (any, error) {
	if !h.loaded {
		return nil, newLoadLibraryError(h.path, errAlreadyUnloaded)
	}
	sym, err := h.plugin.Lookup(name)
	if err != nil {
		return nil, err
	}
	return sym, nil
}

func (h *goPluginHandle) Unload() error {
	// The standard library's plugin package provides no explicit close;
	// once opened, an image stays mapped for the life of the process.
	// We mark the handle dead so HasSymbol/Symbol/Loaded reflect the
	// manager's bookkeeping even though the OS mapping persists — this
	// still gives PluginRecord a deterministic release point to notify
	// against, and keeps the interface honest for LibraryHandle
	// implementations (e.g. in tests) that really can unload.
	h.loaded = false
	return nil
}

func (h *goPluginHandle) Loaded() bool {
	return h.loaded
}
