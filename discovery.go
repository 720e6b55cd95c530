// discovery.go: scanning a directory for plugin candidates
//
// Copyright (c) 2025 The jpmgr authors
// SPDX-License-Identifier: MPL-2.0

package jpmgr

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/agilira/go-timecache"
)

// defaultLibraryExtensions lists the file suffixes Search treats as candidate
// plugin artifacts. Overridable per Manager via WithLibraryExtensions,
// since the OS-native shared-library suffix varies by platform.
var defaultLibraryExtensions = []string{".so"}

// listCandidates walks dir (recursing if requested) and returns every
// file whose extension matches one of exts, sorted for determinism.
func listCandidates(dir string, recursive bool, exts []string) ([]string, error) {
	var out []string
	walk := func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		for _, ext := range exts {
			if strings.HasSuffix(d.Name(), ext) {
				out = append(out, path)
				break
			}
		}
		return nil
	}
	if err := filepath.WalkDir(dir, walk); err != nil {
		return nil, err
	}
	return out, nil
}

// Search scans dir for plugin candidates and registers each one that
// loads, exports all three required ABI symbols, and parses to valid,
// API-compatible Metadata under a not-yet-used name.
//
// Search never constructs a plugin instance and never evaluates
// dependencies; it only discovers and validates descriptors, per
// spec.md §4.3. A candidate whose library fails to load, lacks one of
// the three required symbols, or exports an unreadable or empty name
// is skipped silently (it may not be a plugin at all); a duplicate name
// or an unparsable descriptor is reported once through cb, which may
// be nil. The aggregate outcome is only returned, never sent to cb.
//
// Discovery outcomes, in priority order: SearchListFilesError if dir
// cannot be scanned at all; SearchNothingFound if the scan succeeds
// but no file loads and parses into a registrable plugin; Success
// otherwise, even if some individual candidates were rejected (those
// are reported through cb, not through the return code).
func (m *Manager) Search(dir string, recursive bool, cb Callback) ReturnCode {
	exts := m.libraryExtensions
	if len(exts) == 0 {
		exts = defaultLibraryExtensions
	}

	candidates, err := listCandidates(dir, recursive, exts)
	if err != nil {
		m.logger.Warn("plugin directory scan failed", "dir", dir, "error", newListFilesError(dir, err))
		notify(cb, SearchListFilesError, dir)
		return SearchListFilesError
	}

	found := 0
	scanStart := timecache.CachedTime()
	for _, path := range candidates {
		if m.searchOne(path, cb) {
			found++
		}
	}
	m.logger.Debug("plugin directory scan complete",
		"dir", dir, "candidates", len(candidates), "registered", found,
		"duration", timecache.CachedTime().Sub(scanStart))

	if found == 0 {
		return SearchNothingFound
	}
	m.registry.AddLocation(dir)
	return Success
}

// searchOne evaluates a single candidate path, registering it and
// reporting true on success. On any rejection it releases the library
// it opened before returning, so a rejected candidate never leaks a
// loaded image — the fix spec.md §9 calls out for the original
// implementation's duplicate-name handle leak.
//
// The three checks below run in the exact order spec.md §4.3 steps
// b-d mandate: symbol presence, then name uniqueness (against the
// jp_name value, not the parsed descriptor), then metadata parsing —
// so two libraries sharing one jp_name are always rejected as
// SearchNameAlreadyExists, even if the second one's jp_metadata is
// malformed and would otherwise fail to parse first.
func (m *Manager) searchOne(path string, cb Callback) bool {
	handle, err := m.loader.Load(path)
	if err != nil {
		m.logger.Debug("candidate library failed to load", "path", path, "error", err)
		return false
	}

	if !handle.HasSymbol(symbolName) || !handle.HasSymbol(symbolMetadata) || !handle.HasSymbol(symbolCreatePlugin) {
		_ = handle.Unload()
		m.logger.Debug("candidate library is not a plugin, missing a required symbol", "path", path)
		return false
	}

	nameSym, err := handle.Symbol(symbolName)
	if err != nil {
		_ = handle.Unload()
		return false
	}
	name, ok := symbolStringValue(nameSym)
	if !ok || name == "" {
		_ = handle.Unload()
		return false
	}

	if m.registry.Has(name) {
		_ = handle.Unload()
		notify(cb, SearchNameAlreadyExists, path)
		return false
	}

	rawSym, err := handle.Symbol(symbolMetadata)
	if err != nil {
		_ = handle.Unload()
		notify(cb, SearchCannotParseMetadata, path)
		return false
	}

	raw, ok := metadataBytes(rawSym)
	if !ok {
		_ = handle.Unload()
		notify(cb, SearchCannotParseMetadata, path)
		return false
	}

	metadata, ok := ParseMetadata(raw, m.apiVersion, m.versionComparator)
	if !ok {
		_ = handle.Unload()
		m.logger.Debug("plugin descriptor rejected",
			"path", path, "error", newParseMetadataError(path, errRejectedDescriptor))
		notify(cb, SearchCannotParseMetadata, path)
		return false
	}
	metadata.Name = name

	rec := newPluginRecord(path, handle, metadata)
	m.registry.Add(rec)
	return true
}

// metadataBytes normalizes the several shapes a JpMetadata symbol may
// take (a *string, a []byte, or a func() string, matching how existing
// plugin authors in the wild tend to export this constant) into a raw
// JSON payload.
func metadataBytes(sym any) ([]byte, bool) {
	switch v := sym.(type) {
	case *string:
		if v == nil {
			return nil, false
		}
		return []byte(*v), true
	case *[]byte:
		if v == nil {
			return nil, false
		}
		return *v, true
	case func() string:
		return []byte(v()), true
	default:
		return nil, false
	}
}

// symbolStringValue normalizes the several shapes a JpName symbol may
// take (a *string, a plain string, or a func() string) into its value.
func symbolStringValue(sym any) (string, bool) {
	switch v := sym.(type) {
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	case func() string:
		return v(), true
	default:
		return "", false
	}
}
