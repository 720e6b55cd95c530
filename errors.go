// errors.go: outcome codes and structured causes for the plugin manager
//
// Copyright (c) 2025 The jpmgr authors
// SPDX-License-Identifier: MPL-2.0

package jpmgr

import (
	stderrors "errors"

	"github.com/agilira/go-errors"
)

// errBadFactorySymbol and errNilInstance are the two ways a
// plugin's JpCreatePlugin symbol can misbehave: wrong type, or a
// factory that returns a nil instance instead of an error.
var (
	errBadFactorySymbol   = stderrors.New("JpCreatePlugin has an unexpected signature")
	errNilInstance        = stderrors.New("plugin factory returned a nil instance")
	errRejectedDescriptor = stderrors.New("descriptor failed validation")
)

// ReturnCode is the closed set of outcomes a jpmgr operation can report.
//
// A ReturnCode is truthy exactly when it is Success; callers should test
// it as a boolean via OK() rather than comparing against every failure
// value individually.
type ReturnCode int

const (
	Success ReturnCode = iota
	UnknownError

	// Discovery outcomes
	SearchNothingFound
	SearchCannotParseMetadata
	SearchNameAlreadyExists
	SearchListFilesError

	// Load outcomes
	LoadDependencyBadVersion
	LoadDependencyNotFound
	LoadDependencyCycle

	// Unload outcomes
	UnloadNotAll
)

// OK reports whether the code represents success.
func (r ReturnCode) OK() bool {
	return r == Success
}

// Message returns a human-readable description of the code.
func (r ReturnCode) Message() string {
	switch r {
	case Success:
		return "Success"
	case SearchNothingFound:
		return "No plugins were found in that directory"
	case SearchCannotParseMetadata:
		return "Plugin metadata cannot be parsed (maybe it is invalid?)"
	case SearchNameAlreadyExists:
		return "A plugin with the same name was already found"
	case SearchListFilesError:
		return "An error occurred while scanning the plugin directory"
	case LoadDependencyBadVersion:
		return "The plugin requires a dependency that is in an incompatible version"
	case LoadDependencyNotFound:
		return "The plugin requires a dependency that was not found"
	case LoadDependencyCycle:
		return "The dependency graph contains a cycle; plugins cannot be loaded"
	case UnloadNotAll:
		return "Not all plugins were unloaded"
	default:
		return "Unknown error"
	}
}

// String implements fmt.Stringer so a ReturnCode prints its message.
func (r ReturnCode) String() string {
	return r.Message()
}

// Error codes for wrapped causes surfaced through go-errors. These sit
// underneath a ReturnCode when the failure originated in a Go error
// (I/O, JSON decode, symbol resolution) that a caller may want to
// unwrap for a full cause chain.
const (
	ErrCodeListFiles     = "JPMGR_1001"
	ErrCodeLoadLibrary   = "JPMGR_1002"
	ErrCodeMissingSymbol = "JPMGR_1003"
	ErrCodeParseMetadata = "JPMGR_1004"
	ErrCodeCreatePlugin  = "JPMGR_1005"
	ErrCodeUnloadLibrary = "JPMGR_1006"
	ErrCodeConfigParse   = "JPMGR_1007"
	ErrCodeWatcherError  = "JPMGR_1008"
)

func newListFilesError(dir string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeListFiles, "failed to list plugin candidates").
		WithUserMessage("Could not scan the plugin directory").
		WithContext("directory", dir).
		WithSeverity("error")
}

func newLoadLibraryError(path string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeLoadLibrary, "failed to load plugin library").
		WithUserMessage("The plugin library could not be opened").
		WithContext("path", path).
		WithSeverity("warning")
}

func newParseMetadataError(path string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeParseMetadata, "failed to parse plugin metadata").
		WithUserMessage("The plugin descriptor is not valid JSON").
		WithContext("path", path).
		WithSeverity("warning")
}

func newCreatePluginError(name string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeCreatePlugin, "plugin factory failed").
		WithUserMessage("The plugin could not be instantiated").
		WithContext("plugin_name", name).
		WithSeverity("error")
}

func newUnloadLibraryError(name string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeUnloadLibrary, "failed to unload plugin library").
		WithUserMessage("The plugin library could not be released").
		WithContext("plugin_name", name).
		WithSeverity("error")
}

func newConfigParseError(path string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeConfigParse, "failed to parse manager configuration").
		WithUserMessage("The configuration file is neither valid JSON nor YAML").
		WithContext("path", path).
		WithSeverity("error")
}

func newWatcherError(message string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeWatcherError, "directory watcher error: "+message).
		WithUserMessage("Plugin directory monitoring failed").
		WithSeverity("warning")
}
