// testing_helpers_test.go: shared test doubles for LibraryHandle,
// LibraryLoader, and PluginInstance
//
// Copyright (c) 2025 The jpmgr authors
// SPDX-License-Identifier: MPL-2.0

package jpmgr

import (
	"encoding/json"
	"errors"
)

// fakeLibraryHandle is an in-memory LibraryHandle that never touches
// disk, so discovery and lifecycle tests can exercise jpmgr without a
// real compiled .so.
type fakeLibraryHandle struct {
	path    string
	symbols map[string]any
	loaded  bool
}

func newFakeLibraryHandle(path string, metadataJSON string) *fakeLibraryHandle {
	name := path
	var probe struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(metadataJSON), &probe); err == nil && probe.Name != "" {
		name = probe.Name
	}
	return &fakeLibraryHandle{
		path:   path,
		loaded: true,
		symbols: map[string]any{
			symbolName:     name,
			symbolMetadata: metadataJSON,
		},
	}
}

func (h *fakeLibraryHandle) HasSymbol(name string) bool {
	if !h.loaded {
		return false
	}
	_, ok := h.symbols[name]
	return ok
}

func (h *fakeLibraryHandle) Symbol(name string) (any, error) {
	if !h.loaded {
		return nil, errAlreadyUnloaded
	}
	sym, ok := h.symbols[name]
	if !ok {
		return nil, errors.New("symbol not found: " + name)
	}
	if name == symbolMetadata {
		s := sym.(string)
		return &s, nil
	}
	if fn, ok := sym.(func(RequestHandler) PluginInstance); ok {
		return fn, nil
	}
	return sym, nil
}

func (h *fakeLibraryHandle) Unload() error {
	h.loaded = false
	return nil
}

func (h *fakeLibraryHandle) Loaded() bool {
	return h.loaded
}

// stuckLibraryHandle unloads its instance state but keeps reporting
// itself as loaded, exercising the UnloadNotAll path.
type stuckLibraryHandle struct {
	*fakeLibraryHandle
}

func (h *stuckLibraryHandle) Unload() error {
	return nil
}

func (h *stuckLibraryHandle) Loaded() bool {
	return true
}

// erroringLibraryHandle reports a genuine failure from Unload while
// still transitioning to unloaded, exercising the wrapped-error path
// distinct from the merely-stuck case above.
type erroringLibraryHandle struct {
	*fakeLibraryHandle
	unloadErr error
}

func (h *erroringLibraryHandle) Unload() error {
	h.fakeLibraryHandle.loaded = false
	return h.unloadErr
}

// fakeLibraryLoader resolves paths to pre-registered handles instead
// of calling into the real plugin.Open.
type fakeLibraryLoader struct {
	handles map[string]*fakeLibraryHandle
	errs    map[string]error
}

func newFakeLibraryLoader() *fakeLibraryLoader {
	return &fakeLibraryLoader{
		handles: make(map[string]*fakeLibraryHandle),
		errs:    make(map[string]error),
	}
}

func (l *fakeLibraryLoader) register(path string, handle *fakeLibraryHandle) {
	l.handles[path] = handle
}

func (l *fakeLibraryLoader) failOn(path string, err error) {
	l.errs[path] = err
}

func (l *fakeLibraryLoader) Load(path string) (LibraryHandle, error) {
	if err, ok := l.errs[path]; ok {
		return nil, err
	}
	handle, ok := l.handles[path]
	if !ok {
		return nil, errors.New("no fake handle registered for " + path)
	}
	handle.loaded = true
	return handle, nil
}

// fakePluginInstance records the lifecycle calls jpmgr makes on it.
type fakePluginInstance struct {
	name             string
	loadedCalled     bool
	unloadedCalled   bool
	handler          RequestHandler
	handleRequestRet uint16
	onUnload         func()
}

func (p *fakePluginInstance) Loaded() { p.loadedCalled = true }
func (p *fakePluginInstance) AboutToBeUnloaded() {
	p.unloadedCalled = true
	if p.onUnload != nil {
		p.onUnload()
	}
}
func (p *fakePluginInstance) HandleRequest(sender string, code uint16, data []byte) uint16 {
	return p.handleRequestRet
}

// registerFakePlugin wires a fake library + metadata + factory into
// loader under name, and returns the instance the factory will
// produce once the manager instantiates it.
func registerFakePlugin(loader *fakeLibraryLoader, path, metadataJSON string) *fakePluginInstance {
	handle := newFakeLibraryHandle(path, metadataJSON)
	instance := &fakePluginInstance{}
	handle.symbols[symbolCreatePlugin] = func(handler RequestHandler) PluginInstance {
		instance.handler = handler
		return instance
	}
	loader.register(path, handle)
	return instance
}

func metadataJSON(name, version string, deps ...Dependency) string {
	depsJSON := "["
	for i, d := range deps {
		if i > 0 {
			depsJSON += ","
		}
		depsJSON += `{"name":"` + d.Name + `","version":"` + d.Version + `"}`
	}
	depsJSON += "]"
	return `{"api":"1.0.0","name":"` + name + `","prettyName":"` + name +
		`","version":"` + version + `","author":"test","url":"https://example.test",` +
		`"license":"MIT","copyright":"2026","dependencies":` + depsJSON + `}`
}
