// version.go: version compatibility predicate
//
// Copyright (c) 2025 The jpmgr authors
// SPDX-License-Identifier: MPL-2.0

package jpmgr

import (
	"github.com/Masterminds/semver/v3"
)

// VersionComparator decides whether a declared version satisfies a
// required minimum. jpmgr never parses version strings itself — it
// treats the comparator as a black box with two contractual
// properties: it must be reflexive (a version is compatible with
// itself) and monotonic in the required bound (raising the required
// version can only narrow, never widen, the set of compatible
// declared versions).
type VersionComparator interface {
	Compatible(declared, required string) bool
}

// semverComparator implements VersionComparator using semantic
// versioning: declared is compatible with required when declared is
// greater than or equal to required and shares the same major version
// (or both are pre-1.0, where minor plays the role of major).
type semverComparator struct{}

// NewSemverComparator returns the default VersionComparator, backed by
// semantic-version parsing and comparison.
func NewSemverComparator() VersionComparator {
	return semverComparator{}
}

func (semverComparator) Compatible(declared, required string) bool {
	d, err := semver.NewVersion(declared)
	if err != nil {
		return false
	}
	r, err := semver.NewVersion(required)
	if err != nil {
		return false
	}

	if d.LessThan(r) {
		return false
	}

	if d.Major() != r.Major() {
		return false
	}
	if d.Major() == 0 && d.Minor() != r.Minor() {
		return false
	}
	return true
}
