// record.go: the plugin record — one per discovered library
//
// Copyright (c) 2025 The jpmgr authors
// SPDX-License-Identifier: MPL-2.0

package jpmgr

// triState is the memoised, re-derivable tri-state flag spec.md's
// design notes call out explicitly: "keep it as an explicit tagged
// variant to make invalidation ... a deliberate operation, not a
// subtle invariant."
type triState int

const (
	triUnknown triState = iota
	triYes
	triNo
)

// RecordState is the lifecycle state of a PluginRecord, derived rather
// than stored: Discovered -> Eligible -> Live -> Dead, or Discovered
// -> Ineligible. See spec.md §3.
type RecordState int

const (
	StateDiscovered RecordState = iota
	StateEligible
	StateIneligible
	StateLive
	StateDead
)

// PluginRecord is one discovered plugin library: its on-disk path, the
// loaded image that owns its exported symbols, its validated
// metadata, and (once loaded) its live instance.
//
// A PluginRecord exclusively owns its LibraryHandle and its instance.
// release notifies the instance, drops it, then releases the library
// handle, in that order, on every exit path — the one hard RAII
// invariant spec.md §3 mandates.
type PluginRecord struct {
	path     string
	library  LibraryHandle
	metadata Metadata
	factory  pluginFactoryFunc
	instance PluginInstance

	dependenciesResolved triState
	// lastDependencyFailure remembers which of the two dependency
	// failure codes caused dependenciesResolved to become triNo, so a
	// memoised replay (spec.md §4.4) can return the same code without
	// re-walking the dependency list.
	lastDependencyFailure ReturnCode

	graphID int
}

func newPluginRecord(path string, library LibraryHandle, metadata Metadata) *PluginRecord {
	return &PluginRecord{
		path:                  path,
		library:               library,
		metadata:              metadata,
		dependenciesResolved:  triUnknown,
		lastDependencyFailure: Success,
		graphID:               -1,
	}
}

// Path returns the on-disk location of the library artifact.
func (r *PluginRecord) Path() string { return r.path }

// Metadata returns a defensive copy of the record's validated
// descriptor; mutating the result never affects the record.
func (r *PluginRecord) Metadata() Metadata { return r.metadata.Clone() }

// IsLive reports whether the record currently owns a constructed
// instance.
func (r *PluginRecord) IsLive() bool {
	return r.instance != nil && r.library.Loaded()
}

// State derives the record's current lifecycle state.
func (r *PluginRecord) State() RecordState {
	if r.instance == nil && !r.library.Loaded() {
		return StateDead
	}
	if r.IsLive() {
		return StateLive
	}
	switch r.dependenciesResolved {
	case triYes:
		return StateEligible
	case triNo:
		return StateIneligible
	default:
		return StateDiscovered
	}
}

// resolveFactory looks up and binds the jp_createPlugin symbol, doing
// so only once per record.
func (r *PluginRecord) resolveFactory() error {
	if r.factory != nil {
		return nil
	}
	sym, err := r.library.Symbol(symbolCreatePlugin)
	if err != nil {
		return newLoadLibraryError(r.path, err)
	}
	fn, ok := sym.(func(RequestHandler) PluginInstance)
	if !ok {
		return newLoadLibraryError(r.path, errBadFactorySymbol)
	}
	r.factory = fn
	return nil
}

// instantiate binds the factory (if needed) and constructs the
// instance, invoking neither Loaded nor any other lifecycle callback —
// callers are responsible for calling Loaded() once construction
// succeeds, per spec.md §4.6 step 4.
func (r *PluginRecord) instantiate(handler RequestHandler) error {
	if r.instance != nil {
		return nil
	}
	if err := r.resolveFactory(); err != nil {
		return err
	}
	instance := r.factory(handler)
	if instance == nil {
		return newCreatePluginError(r.metadata.Name, errNilInstance)
	}
	r.instance = instance
	return nil
}

// release notifies the instance that it is about to be unloaded, drops
// it, then releases the library handle — in that order, unconditionally
// on every call. It returns false if the underlying library reports it
// is still loaded afterward (spec.md §4.6 unload_all step 4), together
// with a wrapped error if the handle's own Unload reported one.
func (r *PluginRecord) release() (bool, error) {
	if r.instance != nil {
		r.instance.AboutToBeUnloaded()
		r.instance = nil
	}
	var wrapped error
	if err := r.library.Unload(); err != nil {
		wrapped = newUnloadLibraryError(r.metadata.Name, err)
	}
	return !r.library.Loaded(), wrapped
}
