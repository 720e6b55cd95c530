// graph.go: dependency-graph construction and deterministic
// topological ordering
//
// Copyright (c) 2025 The jpmgr authors
// SPDX-License-Identifier: MPL-2.0

package jpmgr

import "sort"

// buildLoadOrder computes a load order over the not-yet-live records
// in reg using Kahn's algorithm: repeatedly pull the plugins with zero
// remaining unmet in-registry dependencies, in name order, until every
// eligible plugin has been placed or none remain ready.
//
// Unlike the teacher's CalculateLoadOrder, which walks Go's
// nondeterministic map iteration order, the ready queue here is
// sorted by name at every step so that two calls over the same
// registry contents always produce the same order, per spec.md §4.5.
//
// A non-empty remainder after the algorithm settles means those
// plugins participate in, or depend on a plugin in, a dependency
// cycle; buildLoadOrder returns
// the order computed so far together with the sorted names still
// stuck, so the caller can report LoadDependencyCycle precisely.
func buildLoadOrder(reg *Registry, cmp VersionComparator) (order []string, cycle []string) {
	indegree := make(map[string]int)
	dependents := make(map[string][]string)
	candidates := make(map[string]*PluginRecord)

	for _, rec := range reg.All() {
		if rec.IsLive() {
			continue
		}
		candidates[rec.metadata.Name] = rec
	}

	for name, rec := range candidates {
		count := 0
		for _, dep := range rec.metadata.Dependencies {
			depRec, ok := candidates[dep.Name]
			if !ok {
				// Either already live, or unresolvable — either way it
				// imposes no further ordering constraint here;
				// checkDependencies is what rejects unresolvable deps.
				continue
			}
			if !cmp.Compatible(depRec.metadata.Version, dep.Version) {
				continue
			}
			count++
			dependents[dep.Name] = append(dependents[dep.Name], name)
		}
		indegree[name] = count
	}

	var ready []string
	for name, count := range indegree {
		if count == 0 {
			ready = append(ready, name)
		}
	}
	sort.Strings(ready)

	order = make([]string, 0, len(candidates))
	for len(ready) > 0 {
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)
		delete(indegree, next)

		var freed []string
		for _, dependent := range dependents[next] {
			if _, still := indegree[dependent]; !still {
				continue
			}
			indegree[dependent]--
			if indegree[dependent] == 0 {
				freed = append(freed, dependent)
			}
		}
		if len(freed) > 0 {
			ready = append(ready, freed...)
			sort.Strings(ready)
		}
	}

	if len(indegree) > 0 {
		cycle = make([]string, 0, len(indegree))
		for name := range indegree {
			cycle = append(cycle, name)
		}
		sort.Strings(cycle)
	}

	return order, cycle
}
