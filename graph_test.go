// graph_test.go
//
// Copyright (c) 2025 The jpmgr authors
// SPDX-License-Identifier: MPL-2.0

package jpmgr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLoadOrder_LinearChain(t *testing.T) {
	reg := NewRegistry()
	reg.Add(recordWithDeps("alpha", "1.0.0", Dependency{Name: "beta", Version: "1.0.0"}))
	reg.Add(recordWithDeps("beta", "1.0.0", Dependency{Name: "gamma", Version: "1.0.0"}))
	reg.Add(recordWithDeps("gamma", "1.0.0"))

	order, cycle := buildLoadOrder(reg, NewSemverComparator())
	require.Empty(t, cycle)
	require.Len(t, order, 3)

	pos := map[string]int{}
	for i, name := range order {
		pos[name] = i
	}
	assert.Less(t, pos["gamma"], pos["beta"])
	assert.Less(t, pos["beta"], pos["alpha"])
}

func TestBuildLoadOrder_DeterministicAcrossCalls(t *testing.T) {
	reg := NewRegistry()
	reg.Add(recordWithDeps("z", "1.0.0"))
	reg.Add(recordWithDeps("a", "1.0.0"))
	reg.Add(recordWithDeps("m", "1.0.0"))

	order1, _ := buildLoadOrder(reg, NewSemverComparator())
	order2, _ := buildLoadOrder(reg, NewSemverComparator())
	assert.Equal(t, order1, order2)
	assert.Equal(t, []string{"a", "m", "z"}, order1, "independent candidates load in name order")
}

func TestBuildLoadOrder_ReportsCycle(t *testing.T) {
	reg := NewRegistry()
	reg.Add(recordWithDeps("alpha", "1.0.0", Dependency{Name: "beta", Version: "1.0.0"}))
	reg.Add(recordWithDeps("beta", "1.0.0", Dependency{Name: "alpha", Version: "1.0.0"}))
	reg.Add(recordWithDeps("gamma", "1.0.0"))

	order, cycle := buildLoadOrder(reg, NewSemverComparator())
	assert.Equal(t, []string{"gamma"}, order)
	assert.Equal(t, []string{"alpha", "beta"}, cycle)
}

func TestBuildLoadOrder_SkipsLivePlugins(t *testing.T) {
	reg := NewRegistry()
	live := recordWithDeps("alpha", "1.0.0")
	live.instance = &fakePluginInstance{}
	reg.Add(live)
	reg.Add(recordWithDeps("beta", "1.0.0"))

	order, cycle := buildLoadOrder(reg, NewSemverComparator())
	assert.Empty(t, cycle)
	assert.Equal(t, []string{"beta"}, order)
}
