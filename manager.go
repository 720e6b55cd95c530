// manager.go: the public entry point tying discovery, dependency
// resolution, and lifecycle together
//
// Copyright (c) 2025 The jpmgr authors
// SPDX-License-Identifier: MPL-2.0

package jpmgr

// Manager owns a Registry and the collaborators (LibraryLoader,
// VersionComparator, Logger) discovery and loading are built on. It
// carries no internal locking; see Registry's doc comment for why.
type Manager struct {
	registry *Registry

	loader            LibraryLoader
	versionComparator VersionComparator
	logger            Logger

	apiVersion        string
	libraryExtensions []string

	hostHandler HostRequestHandler

	watcher *DirectoryWatcher

	// loadSequence hands out each record's graphID: a monotonically
	// increasing position in actual construction order, spanning every
	// LoadAll call. UnloadAll walks records by descending graphID so a
	// dependency is always released after everything that depends on it,
	// regardless of discovery order.
	loadSequence int
}

// ManagerOption configures a Manager at construction time.
type ManagerOption func(*Manager)

// WithAPIVersion sets the host API version every plugin's declared API
// requirement is checked against. Defaults to "1.0.0".
func WithAPIVersion(version string) ManagerOption {
	return func(m *Manager) { m.apiVersion = version }
}

// WithLibraryLoader overrides the default standard-library plugin
// loader, primarily so tests can supply a fake LibraryHandle without
// needing a real compiled .so on disk.
func WithLibraryLoader(loader LibraryLoader) ManagerOption {
	return func(m *Manager) { m.loader = loader }
}

// WithVersionComparator overrides the default semantic-version
// comparator.
func WithVersionComparator(cmp VersionComparator) ManagerOption {
	return func(m *Manager) { m.versionComparator = cmp }
}

// WithLogger overrides the default no-op Logger.
func WithLogger(logger Logger) ManagerOption {
	return func(m *Manager) { m.logger = logger }
}

// WithLibraryExtensions overrides which file suffixes Search treats as
// plugin candidates. Defaults to {".so"}.
func WithLibraryExtensions(exts ...string) ManagerOption {
	return func(m *Manager) { m.libraryExtensions = exts }
}

// WithHostRequestHandler installs the extension point that answers
// plugin requests addressed to the host (receiver == "").
func WithHostRequestHandler(handler HostRequestHandler) ManagerOption {
	return func(m *Manager) { m.hostHandler = handler }
}

// NewManager constructs a Manager with an empty Registry and sensible
// defaults: the standard-library plugin loader, semantic-version
// compatibility, a no-op Logger, and API version "1.0.0".
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		registry:          NewRegistry(),
		loader:            NewGoPluginLoader(),
		versionComparator: NewSemverComparator(),
		logger:            NewNoOpLogger(),
		apiVersion:        "1.0.0",
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// PluginsCount returns the number of currently discovered plugins,
// live or not.
func (m *Manager) PluginsCount() int {
	return m.registry.Count()
}

// PluginsList returns the names of every currently discovered plugin.
func (m *Manager) PluginsList() []string {
	return m.registry.Names()
}

// PluginsLocations returns every directory in which a Search registered
// at least one plugin since the last UnloadAll.
func (m *Manager) PluginsLocations() []string {
	return m.registry.Locations()
}

// HasPlugin reports whether a plugin is registered under name,
// regardless of version or load state.
func (m *Manager) HasPlugin(name string) bool {
	return m.registry.Has(name)
}

// HasPluginVersion reports whether a plugin is registered under name
// and its declared version is compatible with required.
func (m *Manager) HasPluginVersion(name, required string) bool {
	rec, ok := m.registry.Get(name)
	if !ok {
		return false
	}
	return m.versionComparator.Compatible(rec.metadata.Version, required)
}

// IsPluginLoaded reports whether the named plugin currently owns a
// live instance.
func (m *Manager) IsPluginLoaded(name string) bool {
	rec, ok := m.registry.Get(name)
	return ok && rec.IsLive()
}

// PluginInfo returns a defensive copy of the named plugin's metadata.
// The second result is false if no plugin is registered under name.
func (m *Manager) PluginInfo(name string) (Metadata, bool) {
	rec, ok := m.registry.Get(name)
	if !ok {
		return rejectedMetadata, false
	}
	return rec.Metadata(), true
}

// PluginObject attempts to retrieve the named plugin's live instance
// as T via its optional PluginObjectProbe capability, per spec.md §9's
// design note. It reports false if the plugin is not live or does not
// implement the requested capability.
func PluginObject[T any](m *Manager, name string) (T, bool) {
	var zero T
	rec, ok := m.registry.Get(name)
	if !ok || !rec.IsLive() {
		return zero, false
	}
	probe, ok := rec.instance.(PluginObjectProbe)
	if !ok {
		return zero, false
	}
	var out T
	if !probe.As(&out) {
		return zero, false
	}
	return out, true
}
