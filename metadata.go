// metadata.go: plugin descriptor parsing and validation
//
// Copyright (c) 2025 The jpmgr authors
// SPDX-License-Identifier: MPL-2.0

package jpmgr

import (
	"encoding/json"
	"strings"
)

// Dependency is one declared inter-plugin dependency: the dependency's
// name and the minimum version of it this plugin requires.
type Dependency struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Metadata is a validated plugin descriptor: the JSON blob a plugin
// exports via its jp_metadata symbol, decoded and checked against the
// host's declared API version.
//
// A Metadata value is a defensive snapshot: PluginInfo returns a copy
// with its own backing slice, so holding onto one is safe across a
// later UnloadAll that drains the registry.
type Metadata struct {
	API          string       `json:"api"`
	Name         string       `json:"name"`
	PrettyName   string       `json:"prettyName"`
	Version      string       `json:"version"`
	Author       string       `json:"author"`
	URL          string       `json:"url"`
	License      string       `json:"license"`
	Copyright    string       `json:"copyright"`
	Dependencies []Dependency `json:"dependencies"`
}

// rejectedMetadata is the sentinel spec.md §4.2 calls "the rejected
// sentinel (empty name)".
var rejectedMetadata = Metadata{}

// IsRejected reports whether this Metadata is the rejection sentinel.
func (m Metadata) IsRejected() bool {
	return m.Name == ""
}

// Clone returns a deep copy of m with its own backing dependency slice.
func (m Metadata) Clone() Metadata {
	out := m
	out.Dependencies = make([]Dependency, len(m.Dependencies))
	copy(out.Dependencies, m.Dependencies)
	return out
}

// String renders a human-readable summary, in the spirit of the
// original implementation's PluginInfoStd::toString.
func (m Metadata) String() string {
	if m.IsRejected() {
		return "invalid plugin metadata"
	}
	var b strings.Builder
	b.WriteString("Plugin info:\n")
	b.WriteString("Name: " + m.Name + "\n")
	b.WriteString("Pretty name: " + m.PrettyName + "\n")
	b.WriteString("Version: " + m.Version + "\n")
	b.WriteString("Author: " + m.Author + "\n")
	b.WriteString("Url: " + m.URL + "\n")
	b.WriteString("License: " + m.License + "\n")
	b.WriteString("Copyright: " + m.Copyright + "\n")
	b.WriteString("Dependencies:\n")
	for _, dep := range m.Dependencies {
		b.WriteString(" - " + dep.Name + " (" + dep.Version + ")\n")
	}
	return b.String()
}

// rawMetadata mirrors the wire descriptor exactly so decoding can
// distinguish "field absent" from "field present but zero-valued":
// required fields use pointer types so json.Unmarshal leaves them nil
// when missing, letting ParseMetadata reject silently and precisely
// per spec.md §4.2's "missing field, or wrong-type field -> rejection".
type rawMetadata struct {
	API          *string         `json:"api"`
	Name         *string         `json:"name"`
	PrettyName   *string         `json:"prettyName"`
	Version      *string         `json:"version"`
	Author       *string         `json:"author"`
	URL          *string         `json:"url"`
	License      *string         `json:"license"`
	Copyright    *string         `json:"copyright"`
	Dependencies []rawDependency `json:"dependencies"`
}

type rawDependency struct {
	Name    *string `json:"name"`
	Version *string `json:"version"`
}

// ParseMetadata decodes and validates a raw JSON descriptor against
// the host's declared API version, using cmp to check compatibility.
//
// Any JSON parse error, missing required field, or API incompatibility
// yields the rejection sentinel (ok == false); no partial record is
// ever returned, per spec.md §4.2.
func ParseMetadata(raw []byte, apiVersion string, cmp VersionComparator) (Metadata, bool) {
	var rm rawMetadata
	if err := json.Unmarshal(raw, &rm); err != nil {
		return rejectedMetadata, false
	}

	if rm.API == nil || rm.Name == nil || rm.PrettyName == nil ||
		rm.Version == nil || rm.Author == nil || rm.URL == nil ||
		rm.License == nil || rm.Copyright == nil || rm.Dependencies == nil {
		return rejectedMetadata, false
	}

	if *rm.Name == "" {
		return rejectedMetadata, false
	}

	if !cmp.Compatible(*rm.API, apiVersion) {
		return rejectedMetadata, false
	}

	deps := make([]Dependency, 0, len(rm.Dependencies))
	for _, d := range rm.Dependencies {
		if d.Name == nil || d.Version == nil {
			return rejectedMetadata, false
		}
		deps = append(deps, Dependency{Name: *d.Name, Version: *d.Version})
	}

	return Metadata{
		API:          *rm.API,
		Name:         *rm.Name,
		PrettyName:   *rm.PrettyName,
		Version:      *rm.Version,
		Author:       *rm.Author,
		URL:          *rm.URL,
		License:      *rm.License,
		Copyright:    *rm.Copyright,
		Dependencies: deps,
	}, true
}
