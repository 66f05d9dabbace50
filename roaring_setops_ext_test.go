// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocatingSetOps(t *testing.T) {
	a := New(1, 2, 3)
	b := New(2, 3, 4)

	and := And(a, b)
	assert.Equal(t, []uint32{2, 3}, collect(and))
	assert.Equal(t, []uint32{1, 2, 3}, collect(a))
	assert.Equal(t, []uint32{2, 3, 4}, collect(b))

	or := Or(a, b)
	assert.Equal(t, []uint32{1, 2, 3, 4}, collect(or))
	assert.Equal(t, []uint32{1, 2, 3}, collect(a))

	xor := Xor(a, b)
	assert.Equal(t, []uint32{1, 4}, collect(xor))
	assert.Equal(t, []uint32{1, 2, 3}, collect(a))

	andNot := AndNot(a, b)
	assert.Equal(t, []uint32{1}, collect(andNot))
	assert.Equal(t, []uint32{1, 2, 3}, collect(a))
}

func TestCardinalityHelpers(t *testing.T) {
	a := New(1, 2, 3)
	b := New(2, 3, 4)

	assert.Equal(t, 2, a.AndCardinality(b))
	assert.Equal(t, 4, a.OrCardinality(b))
	assert.Equal(t, 2, a.XorCardinality(b))
	assert.Equal(t, 1, a.AndNotCardinality(b))

	assert.True(t, a.Intersects(b))
	assert.False(t, a.Intersects(New(100)))
	assert.False(t, a.Intersects(nil))
}

func TestJaccard(t *testing.T) {
	a := New(1, 2, 3)
	b := New(2, 3, 4)
	assert.InDelta(t, 0.5, a.Jaccard(b), 1e-9)

	empty := New()
	assert.Equal(t, float64(0), empty.Jaccard(New()))
}

func TestOrManyVariants(t *testing.T) {
	a := New(1, 2)
	b := New(2, 3)
	c := New(4)

	want := []uint32{1, 2, 3, 4}
	assert.Equal(t, want, collect(OrMany(a, b, c)))
	assert.Equal(t, want, collect(OrManyHeap(a, b, c)))

	assert.Equal(t, 0, OrMany().Count())
	assert.Equal(t, 0, OrManyHeap().Count())
}

func TestStats(t *testing.T) {
	rb := New()
	rb.Set(1)
	rb.Set(2)
	for v := uint32(70000); v < 80000; v += 3 {
		rb.Set(v)
	}
	for v := uint32(200000); v < 201000; v++ {
		rb.Set(v)
	}
	rb.Optimize()

	stats := rb.Stats()
	assert.Equal(t, 3, stats.Containers)
	assert.Equal(t, stats.ArrayContainers+stats.BitsetContainers+stats.RunContainers, stats.Containers)
}

func collect(rb *Bitmap) []uint32 {
	out := []uint32{}
	rb.Range(func(x uint32) bool {
		out = append(out, x)
		return true
	})
	return out
}
