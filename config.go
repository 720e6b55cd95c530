// config.go: on-disk manager configuration, JSON or YAML
//
// Copyright (c) 2025 The jpmgr authors
// SPDX-License-Identifier: MPL-2.0

package jpmgr

import (
	"encoding/json"
	"os"

	"gopkg.in/yaml.v3"
)

// ManagerConfig is the on-disk shape of a Manager's static
// configuration: the API version to enforce, the directories to
// search at startup, whether to search them recursively, and an
// optional directory to watch for newly-dropped plugins.
type ManagerConfig struct {
	APIVersion        string   `json:"apiVersion" yaml:"apiVersion"`
	SearchDirectories []string `json:"searchDirectories" yaml:"searchDirectories"`
	Recursive         bool     `json:"recursive" yaml:"recursive"`
	WatchDirectory    string   `json:"watchDirectory,omitempty" yaml:"watchDirectory,omitempty"`
	LibraryExtensions []string `json:"libraryExtensions,omitempty" yaml:"libraryExtensions,omitempty"`
}

// LoadManagerConfig reads path and decodes it as ManagerConfig, trying
// JSON first and falling back to YAML — the same dual-format
// convention the teacher's config loader used for its argus-backed
// configuration, since operators in the wild hand-edit either.
func LoadManagerConfig(path string) (ManagerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ManagerConfig{}, newConfigParseError(path, err)
	}

	var cfg ManagerConfig
	if jsonErr := json.Unmarshal(data, &cfg); jsonErr == nil {
		return cfg, nil
	}

	if yamlErr := yaml.Unmarshal(data, &cfg); yamlErr != nil {
		return ManagerConfig{}, newConfigParseError(path, yamlErr)
	}
	return cfg, nil
}

// Apply runs the discovery and (optionally) watch steps this config
// describes against m: it installs APIVersion on m if set, runs one
// Search per SearchDirectories entry, then starts a DirectoryWatcher on
// WatchDirectory if set.
func (cfg ManagerConfig) Apply(m *Manager, cb Callback) error {
	if cfg.APIVersion != "" {
		m.apiVersion = cfg.APIVersion
	}
	for _, dir := range cfg.SearchDirectories {
		m.Search(dir, cfg.Recursive, cb)
	}

	if cfg.WatchDirectory == "" {
		return nil
	}

	watcher, err := NewDirectoryWatcher(m, cfg.WatchDirectory, cfg.Recursive, cb)
	if err != nil {
		return err
	}
	m.watcher = watcher
	return watcher.Start()
}
