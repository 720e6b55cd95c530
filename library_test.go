// library_test.go
//
// Copyright (c) 2025 The jpmgr authors
// SPDX-License-Identifier: MPL-2.0

package jpmgr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeLibraryHandle_SymbolLifecycle(t *testing.T) {
	handle := newFakeLibraryHandle("/plugins/a.so", `{"name":"a"}`)

	assert.True(t, handle.HasSymbol(symbolName))
	assert.True(t, handle.HasSymbol(symbolMetadata))
	assert.False(t, handle.HasSymbol("nope"))
	assert.True(t, handle.Loaded())

	require.NoError(t, handle.Unload())
	assert.False(t, handle.Loaded())
	assert.False(t, handle.HasSymbol(symbolName))

	_, err := handle.Symbol(symbolMetadata)
	assert.Error(t, err)
}

func TestFakeLibraryLoader_LoadAndFail(t *testing.T) {
	loader := newFakeLibraryLoader()
	handle := newFakeLibraryHandle("/plugins/a.so", `{}`)
	loader.register("/plugins/a.so", handle)
	loader.failOn("/plugins/broken.so", assert.AnError)

	got, err := loader.Load("/plugins/a.so")
	require.NoError(t, err)
	assert.Same(t, handle, got)

	_, err = loader.Load("/plugins/broken.so")
	assert.Error(t, err)

	_, err = loader.Load("/plugins/missing.so")
	assert.Error(t, err)
}
