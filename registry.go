// registry.go: the in-memory table of discovered plugin records
//
// Copyright (c) 2025 The jpmgr authors
// SPDX-License-Identifier: MPL-2.0

package jpmgr

// Registry holds every PluginRecord the Manager currently knows about,
// keyed by plugin name, plus the set of directories that have been
// searched (spec.md §4.7's pluginsLocations).
//
// Registry carries no internal locking. Per spec.md §7, concurrent
// calls into a Manager (and therefore its Registry) from more than one
// goroutine without external synchronization is a programming error,
// not a condition the core defends against.
type Registry struct {
	records   map[string]*PluginRecord
	order     []string
	locations []string
	seenLoc   map[string]bool
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		records: make(map[string]*PluginRecord),
		seenLoc: make(map[string]bool),
	}
}

// Add inserts a new record under its metadata name. It reports false
// without modifying the registry if a record already exists under that
// name — the caller (discovery) is responsible for translating that
// into SearchNameAlreadyExists and releasing the rejected candidate.
func (reg *Registry) Add(rec *PluginRecord) bool {
	name := rec.metadata.Name
	if _, exists := reg.records[name]; exists {
		return false
	}
	reg.records[name] = rec
	reg.order = append(reg.order, name)
	return true
}

// Get returns the record registered under name, if any.
func (reg *Registry) Get(name string) (*PluginRecord, bool) {
	rec, ok := reg.records[name]
	return rec, ok
}

// Has reports whether a plugin is registered under name.
func (reg *Registry) Has(name string) bool {
	_, ok := reg.records[name]
	return ok
}

// Remove drops the record registered under name, if any.
func (reg *Registry) Remove(name string) {
	if _, ok := reg.records[name]; !ok {
		return
	}
	delete(reg.records, name)
	for i, n := range reg.order {
		if n == name {
			reg.order = append(reg.order[:i], reg.order[i+1:]...)
			break
		}
	}
}

// Count returns the number of registered plugins.
func (reg *Registry) Count() int {
	return len(reg.order)
}

// Names returns the registered plugin names in discovery order.
func (reg *Registry) Names() []string {
	out := make([]string, len(reg.order))
	copy(out, reg.order)
	return out
}

// All returns every registered record in discovery order.
func (reg *Registry) All() []*PluginRecord {
	out := make([]*PluginRecord, 0, len(reg.order))
	for _, name := range reg.order {
		out = append(out, reg.records[name])
	}
	return out
}

// AddLocation records dir as a searched location, deduplicated and in
// first-seen order, per spec.md §4.7's pluginsLocations.
func (reg *Registry) AddLocation(dir string) {
	if reg.seenLoc[dir] {
		return
	}
	reg.seenLoc[dir] = true
	reg.locations = append(reg.locations, dir)
}

// Locations returns every directory recorded through AddLocation, in
// first-seen order.
func (reg *Registry) Locations() []string {
	out := make([]string, len(reg.locations))
	copy(out, reg.locations)
	return out
}

// resetDependencyMemo clears every record's dependenciesResolved
// tri-state back to unknown, without touching live instances. Called
// at the start of each LoadAll pass per spec.md §4.6 / DESIGN.md open
// question #3, since new plugins may have been discovered since the
// last pass and could now satisfy a previously-unresolved dependency.
func (reg *Registry) resetDependencyMemo() {
	for _, rec := range reg.records {
		if rec.IsLive() {
			continue
		}
		rec.dependenciesResolved = triUnknown
		rec.lastDependencyFailure = Success
	}
}
