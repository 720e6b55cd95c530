// logging_test.go
//
// Copyright (c) 2025 The jpmgr authors
// SPDX-License-Identifier: MPL-2.0

package jpmgr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoOpLogger_NeverPanics(t *testing.T) {
	logger := NewNoOpLogger()
	logger.Debug("x")
	logger.Info("x", "k", "v")
	logger.Warn("x")
	logger.Error("x")
	assert.NotNil(t, logger.With("k", "v"))
}

func TestTestLogger_RecordsMessages(t *testing.T) {
	logger := NewTestLogger()
	logger.Info("plugin loaded", "name", "alpha")
	logger.Error("plugin failed", "name", "beta")

	assert.Len(t, logger.Messages, 2)
	assert.True(t, logger.HasMessage("INFO", "plugin loaded"))
	assert.True(t, logger.HasMessage("ERROR", "plugin failed"))
	assert.False(t, logger.HasMessage("WARN", "plugin loaded"))
}

func TestTestLogger_Clear(t *testing.T) {
	logger := NewTestLogger()
	logger.Debug("hello")
	assert.Len(t, logger.Messages, 1)
	logger.Clear()
	assert.Empty(t, logger.Messages)
}

func TestTestLogger_WithReturnsDetachedCopy(t *testing.T) {
	logger := NewTestLogger()
	scoped := logger.With("component", "discovery")
	scoped.Info("hi")

	scopedTest, ok := scoped.(*TestLogger)
	assert.True(t, ok)
	assert.Len(t, scopedTest.Messages, 1)
	assert.Empty(t, logger.Messages, "the parent logger must not observe messages logged on the scoped copy")
}
