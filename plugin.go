// plugin.go: the plugin-side ABI — instance interface, host callback
// signature, and the exported symbols a plugin library must define.
//
// Copyright (c) 2025 The jpmgr authors
// SPDX-License-Identifier: MPL-2.0

package jpmgr

// RequestHandler is the host-to-plugin callback signature. sender is
// the caller's plugin name; receiver names the addressee, or the
// empty string to address the host itself. It is handed to every
// plugin's factory so a plugin can address any other plugin (or the
// host) without holding a reference to the Manager singleton.
type RequestHandler func(sender, receiver string, code uint16, data []byte) uint16

// PluginInstance is the capability set the host calls into once a
// plugin has been constructed.
type PluginInstance interface {
	// Loaded is called once, immediately after successful construction.
	Loaded()

	// AboutToBeUnloaded is called once, immediately before the record
	// drops its reference to the instance and unloads the library.
	AboutToBeUnloaded()

	// HandleRequest answers an inbound request addressed to this
	// plugin by name. Returning 0 signals "not handled" to the sender.
	HandleRequest(sender string, code uint16, data []byte) uint16
}

// pluginFactoryFunc is the shape of the exported JpCreatePlugin symbol:
// it receives the host's RequestHandler and returns a freshly
// constructed, owning PluginInstance.
type pluginFactoryFunc func(RequestHandler) PluginInstance

// PluginObjectProbe is an optional capability a PluginInstance may
// additionally implement to support PluginObject[T]'s typed
// downcast without resorting to reflection, per spec.md §9's design
// note ("Implement as a registered capability probe on the instance,
// not as reflection.").
type PluginObjectProbe interface {
	// As attempts to populate target (a pointer to an interface or
	// concrete type) with this instance's own capability, reporting
	// whether the probe recognized the requested type.
	As(target any) bool
}
