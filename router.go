// router.go: inter-plugin and plugin-to-host request dispatch
//
// Copyright (c) 2025 The jpmgr authors
// SPDX-License-Identifier: MPL-2.0

package jpmgr

// HostRequestHandler is the extension point a Manager owner installs
// to answer requests a plugin addresses to the host itself (receiver
// == ""). It is the Go realization of spec.md §9's design note calling
// for "a first-class extension point on the host side, not a
// convention plugins must special-case" — a bare function value rather
// than a reserved plugin name or magic sender string. A nil handler
// means requests addressed to the host are simply not handled (return
// code 0).
type HostRequestHandler func(sender string, code uint16, data []byte) uint16

// newRequestHandler binds a RequestHandler for rec: calls addressed to
// another plugin by name are routed to that plugin's live instance,
// calls addressed to "" go to the Manager's HostRequestHandler, and
// anything else (unknown receiver, target not live) answers 0, matching
// the "unhandled" convention rather than panicking a plugin's caller.
func newRequestHandler(m *Manager, rec *PluginRecord) RequestHandler {
	return func(sender, receiver string, code uint16, data []byte) uint16 {
		if sender == "" {
			sender = rec.metadata.Name
		}

		if receiver == "" {
			if m.hostHandler == nil {
				return 0
			}
			return m.hostHandler(sender, code, data)
		}

		target, ok := m.registry.Get(receiver)
		if !ok || !target.IsLive() {
			return 0
		}
		return target.instance.HandleRequest(sender, code, data)
	}
}
