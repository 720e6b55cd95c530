// router_test.go
//
// Copyright (c) 2025 The jpmgr authors
// SPDX-License-Identifier: MPL-2.0

package jpmgr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_RoutesToLivePlugin(t *testing.T) {
	dir := t.TempDir()
	loader := newFakeLibraryLoader()
	aPath := writeCandidateFile(t, dir, "a.so")
	bPath := writeCandidateFile(t, dir, "b.so")
	registerFakePlugin(loader, aPath, metadataJSON("a", "1.0.0"))
	registerFakePlugin(loader, bPath, metadataJSON("b", "1.0.0"))

	m := NewManager(WithLibraryLoader(loader))
	m.Search(dir, false, nil)
	require.Equal(t, Success, m.LoadAll(true, nil))

	recB, ok := m.registry.Get("b")
	require.True(t, ok)
	recB.instance.(*fakePluginInstance).handleRequestRet = 42

	recA, ok := m.registry.Get("a")
	require.True(t, ok)

	got := recA.instance.(*fakePluginInstance).handler("a", "b", 7, []byte("hi"))
	assert.Equal(t, uint16(42), got)
}

func TestRouter_UnknownReceiverReturnsZero(t *testing.T) {
	dir := t.TempDir()
	loader := newFakeLibraryLoader()
	path := writeCandidateFile(t, dir, "a.so")
	registerFakePlugin(loader, path, metadataJSON("a", "1.0.0"))

	m := NewManager(WithLibraryLoader(loader))
	m.Search(dir, false, nil)
	require.Equal(t, Success, m.LoadAll(true, nil))

	rec, _ := m.registry.Get("a")
	got := rec.instance.(*fakePluginInstance).handler("a", "ghost", 1, nil)
	assert.Equal(t, uint16(0), got)
}

func TestRouter_HostHandlerReceivesEmptyReceiver(t *testing.T) {
	dir := t.TempDir()
	loader := newFakeLibraryLoader()
	path := writeCandidateFile(t, dir, "a.so")
	registerFakePlugin(loader, path, metadataJSON("a", "1.0.0"))

	var hostSawSender string
	m := NewManager(
		WithLibraryLoader(loader),
		WithHostRequestHandler(func(sender string, code uint16, data []byte) uint16 {
			hostSawSender = sender
			return 9
		}),
	)
	m.Search(dir, false, nil)
	require.Equal(t, Success, m.LoadAll(true, nil))

	rec, _ := m.registry.Get("a")
	got := rec.instance.(*fakePluginInstance).handler("a", "", 3, nil)
	assert.Equal(t, uint16(9), got)
	assert.Equal(t, "a", hostSawSender)
}

func TestRouter_NoHostHandlerReturnsZero(t *testing.T) {
	dir := t.TempDir()
	loader := newFakeLibraryLoader()
	path := writeCandidateFile(t, dir, "a.so")
	registerFakePlugin(loader, path, metadataJSON("a", "1.0.0"))

	m := NewManager(WithLibraryLoader(loader))
	m.Search(dir, false, nil)
	require.Equal(t, Success, m.LoadAll(true, nil))

	rec, _ := m.registry.Get("a")
	got := rec.instance.(*fakePluginInstance).handler("a", "", 3, nil)
	assert.Equal(t, uint16(0), got)
}
