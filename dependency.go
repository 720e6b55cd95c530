// dependency.go: tri-state, memoised dependency satisfaction checking
//
// Copyright (c) 2025 The jpmgr authors
// SPDX-License-Identifier: MPL-2.0

package jpmgr

// checkDependencies determines whether rec's declared dependencies are
// all present in reg at a compatible version, recursively requiring
// that each dependency's own dependencies are satisfiable too.
//
// The result is memoised on rec.dependenciesResolved so a plugin with
// a wide dependency fan-in is checked once per LoadAll pass rather
// than once per dependent, mirroring pluginmanager.cpp's TriBool cache
// (lines 293-329). visiting guards against a dependency cycle turning
// into infinite recursion; a cycle is reported as
// LoadDependencyNotFound at the point it is detected, since from the
// checking plugin's point of view the dependency is simply never
// resolvable — the graph builder is what surfaces LoadDependencyCycle
// as a distinct outcome during buildLoadOrder.
func checkDependencies(reg *Registry, rec *PluginRecord, cmp VersionComparator, visiting map[string]bool) (bool, ReturnCode) {
	switch rec.dependenciesResolved {
	case triYes:
		return true, Success
	case triNo:
		return false, rec.lastDependencyFailure
	}

	if visiting[rec.metadata.Name] {
		return false, LoadDependencyNotFound
	}
	visiting[rec.metadata.Name] = true
	defer delete(visiting, rec.metadata.Name)

	for _, dep := range rec.metadata.Dependencies {
		depRec, ok := reg.Get(dep.Name)
		if !ok {
			rec.dependenciesResolved = triNo
			rec.lastDependencyFailure = LoadDependencyNotFound
			return false, LoadDependencyNotFound
		}

		if !cmp.Compatible(depRec.metadata.Version, dep.Version) {
			rec.dependenciesResolved = triNo
			rec.lastDependencyFailure = LoadDependencyBadVersion
			return false, LoadDependencyBadVersion
		}

		if !depRec.IsLive() {
			ok, code := checkDependencies(reg, depRec, cmp, visiting)
			if !ok {
				return false, code
			}
		}
	}

	rec.dependenciesResolved = triYes
	rec.lastDependencyFailure = Success
	return true, Success
}
