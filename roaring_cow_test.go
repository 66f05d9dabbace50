// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCloneCopyOnWrite verifies that a clone starts out sharing its source's
// backing storage and that mutating the clone never perturbs the source: the
// shared container is forked into a private copy on first write, and every
// other container stays shared until touched.
func TestCloneCopyOnWrite(t *testing.T) {
	src := New()
	for v := uint32(0); v < 10; v++ {
		src.Set(v)
	}
	for v := uint32(70000); v < 70010; v++ {
		src.Set(v)
	}
	before := collect(src)

	clone := src.Clone(nil)
	assert.Equal(t, before, collect(clone))
	for i := range src.containers {
		assert.True(t, src.containers[i].Shared)
	}

	clone.Set(5000)
	clone.Remove(1)
	clone.Set(999999)

	assert.Equal(t, before, collect(src), "source must be unaffected by mutating the clone")
	assert.NotEqual(t, before, collect(clone))
	assert.True(t, clone.Contains(5000))
	assert.False(t, clone.Contains(1))
	assert.True(t, src.Contains(1))
}

func TestCloneIndependentAfterFork(t *testing.T) {
	src := New(1, 2, 3)
	clone := src.Clone(nil)

	clone.And(New(2, 3))
	assert.Equal(t, []uint32{1, 2, 3}, collect(src))
	assert.Equal(t, []uint32{2, 3}, collect(clone))
}

func TestCloneReuseInto(t *testing.T) {
	src := New(1, 2, 3)
	var into Bitmap
	clone := src.Clone(&into)
	assert.Same(t, &into, clone)
	assert.Equal(t, collect(src), collect(clone))

	clone.Set(100)
	assert.False(t, src.Contains(100))
}
