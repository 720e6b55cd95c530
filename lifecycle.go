// lifecycle.go: loading and unloading the discovered plugin set
//
// Copyright (c) 2025 The jpmgr authors
// SPDX-License-Identifier: MPL-2.0

package jpmgr

import "sort"

// LoadAll attempts to construct and start every discovered, not-yet-live
// plugin whose dependencies are satisfiable, in a deterministic
// dependency order.
//
// LoadAll may be called more than once as new plugins are discovered
// by later Search calls; each call re-derives dependency eligibility
// from scratch (resetDependencyMemo) since a plugin ineligible on a
// previous pass may have gained a satisfying dependency since, per
// DESIGN.md's open question #3. Already-live plugins are never
// touched.
//
// tryToContinue selects between the two modes spec.md §4.6 defines. When
// false (strict mode), LoadAll first validates every candidate's
// dependencies without instantiating anything; if any candidate is
// unsatisfiable, it notifies cb once for that failure and returns
// immediately with nothing loaded. When true (the default lenient mode),
// LoadAll loads whatever it can: each unsatisfiable candidate is reported
// through cb but does not affect the overall outcome, which stays Success
// unless a plugin's construction fails (UnknownError). A dependency cycle
// blocks the whole pass in either mode: every plugin stuck in or behind
// the cycle is reported through cb and LoadAll returns
// LoadDependencyCycle without constructing anything.
//
// cb receives one notification per plugin that could not be loaded,
// naming the specific reason (LoadDependencyNotFound,
// LoadDependencyBadVersion, LoadDependencyCycle, or UnknownError when
// construction fails). Individual successes are not separately reported
// through cb.
func (m *Manager) LoadAll(tryToContinue bool, cb Callback) ReturnCode {
	m.registry.resetDependencyMemo()

	order, cycle := buildLoadOrder(m.registry, m.versionComparator)
	for _, name := range cycle {
		notify(cb, LoadDependencyCycle, name)
	}
	if len(cycle) > 0 {
		return LoadDependencyCycle
	}

	if !tryToContinue {
		visiting := make(map[string]bool)
		for _, name := range order {
			rec, ok := m.registry.Get(name)
			if !ok || rec.IsLive() {
				continue
			}
			if ok, code := checkDependencies(m.registry, rec, m.versionComparator, visiting); !ok {
				notify(cb, code, name)
				return code
			}
		}
	}

	overall := Success
	visiting := make(map[string]bool)
	for _, name := range order {
		rec, ok := m.registry.Get(name)
		if !ok || rec.IsLive() {
			continue
		}

		ok, code := checkDependencies(m.registry, rec, m.versionComparator, visiting)
		if !ok {
			notify(cb, code, name)
			continue
		}

		handler := newRequestHandler(m, rec)
		if err := rec.instantiate(handler); err != nil {
			m.logger.Error("plugin construction failed", "name", name, "error", err)
			notify(cb, UnknownError, name)
			if overall == Success {
				overall = UnknownError
			}
			continue
		}

		rec.graphID = m.loadSequence
		m.loadSequence++

		func() {
			defer withStackRecover(m.logger)()
			rec.instance.Loaded()
		}()
		m.logger.Info("plugin loaded", "name", name, "version", rec.metadata.Version)
	}

	return overall
}

// UnloadAll releases every live plugin in the reverse of the order it
// was actually constructed in (by descending graphID, not discovery
// order — a dependency's graphID is always lower than its dependents'),
// then clears the registry and its recorded search locations entirely,
// matching the original implementation's "remaining records" cleanup:
// a Manager that has just UnloadAll'd is back to its zero-plugin state
// and must be re-populated via Search before it can LoadAll again.
//
// cb receives one UnloadNotAll notification per plugin whose
// LibraryHandle reports still-loaded after release; the overall
// ReturnCode is UnloadNotAll if that happened for any plugin, else
// Success.
func (m *Manager) UnloadAll(cb Callback) ReturnCode {
	records := m.registry.All()
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].graphID > records[j].graphID
	})

	overall := Success
	for _, rec := range records {
		name := rec.metadata.Name
		if rec.IsLive() {
			func() {
				defer withStackRecover(m.logger)()
				stillUnloaded, err := rec.release()
				if err != nil {
					m.logger.Warn("plugin library reported an unload error", "name", name, "error", err)
				}
				if !stillUnloaded {
					notify(cb, UnloadNotAll, name)
					overall = UnloadNotAll
				}
			}()
			m.logger.Info("plugin unloaded", "name", name)
		} else if rec.library.Loaded() {
			_ = rec.library.Unload()
			if rec.library.Loaded() {
				notify(cb, UnloadNotAll, name)
				overall = UnloadNotAll
			}
		}
	}

	m.registry = NewRegistry()
	m.loadSequence = 0
	return overall
}
