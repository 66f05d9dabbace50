// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// Iterator walks the values of a bitmap in ascending order. It is a
// one-shot forward cursor: construct a fresh one from the bitmap to
// iterate again.
type Iterator struct {
	rb  *Bitmap
	ci  int // index into rb.containers
	pos int // position within the current container, via selectAt
}

// Iterator returns a forward cursor over every value in the bitmap.
func (rb *Bitmap) Iterator() *Iterator {
	return &Iterator{rb: rb}
}

// Next returns the next value in ascending order, or false once exhausted.
func (it *Iterator) Next() (uint32, bool) {
	for it.ci < len(it.rb.containers) {
		c := &it.rb.containers[it.ci]
		if v, ok := c.selectAt(it.pos); ok {
			it.pos++
			return uint32(it.rb.index[it.ci])<<16 | uint32(v), true
		}
		it.ci++
		it.pos = 0
	}
	return 0, false
}

// HasNext reports whether a subsequent call to Next would succeed.
func (it *Iterator) HasNext() bool {
	ci, pos := it.ci, it.pos
	for ci < len(it.rb.containers) {
		if pos < it.rb.containers[ci].cardinality() {
			return true
		}
		ci++
		pos = 0
	}
	return false
}

// Skip advances the cursor past the next n values.
func (it *Iterator) Skip(n int) {
	for n > 0 && it.ci < len(it.rb.containers) {
		remaining := it.rb.containers[it.ci].cardinality() - it.pos
		if n < remaining {
			it.pos += n
			return
		}
		n -= remaining
		it.ci++
		it.pos = 0
	}
}

// MoveEqualOrLarger seeks the cursor to the first value >= x, returning
// true if such a value exists.
func (it *Iterator) MoveEqualOrLarger(x uint32) bool {
	hi, lo := uint16(x>>16), uint16(x&0xFFFF)
	idx, exists := find16(it.rb.index, hi)
	if idx >= len(it.rb.containers) {
		it.ci, it.pos = len(it.rb.containers), 0
		return false
	}

	it.ci = idx
	if exists {
		c := &it.rb.containers[idx]
		rank := c.rank(lo)
		if c.contains(lo) {
			rank--
		}
		it.pos = rank
	} else {
		it.pos = 0
	}
	return it.HasNext()
}

// BulkContext caches the last (high key, container index) pair visited by
// AddBulk/ContainsBulk/RemoveBulk, amortizing the TopIndex lookup to O(1)
// across sorted or locally-clustered streams of values.
type BulkContext struct {
	hi  uint16
	idx int
	set bool
}

// lookup resolves the container index for hi, reusing the cached position
// when the high key hasn't changed since the last call.
func (rb *Bitmap) lookup(ctx *BulkContext, hi uint16) (idx int, exists bool) {
	if ctx.set && ctx.hi == hi && ctx.idx < len(rb.index) && rb.index[ctx.idx] == hi {
		return ctx.idx, true
	}

	idx, exists = find16(rb.index, hi)
	ctx.hi, ctx.idx, ctx.set = hi, idx, true
	return
}

// AddBulk sets x, amortizing the container lookup via ctx.
func (rb *Bitmap) AddBulk(ctx *BulkContext, x uint32) {
	hi, lo := uint16(x>>16), uint16(x&0xFFFF)
	idx, exists := rb.lookup(ctx, hi)
	if !exists {
		rb.ctrAdd(hi, idx, &container{Type: typeArray, Data: make([]uint16, 0, 64)})
		ctx.idx = idx
	}
	rb.containers[idx].set(lo)
}

// ContainsBulk checks x, amortizing the container lookup via ctx.
func (rb *Bitmap) ContainsBulk(ctx *BulkContext, x uint32) bool {
	hi, lo := uint16(x>>16), uint16(x&0xFFFF)
	idx, exists := rb.lookup(ctx, hi)
	if !exists {
		return false
	}
	return rb.containers[idx].contains(lo)
}

// RemoveBulk clears x, amortizing the container lookup via ctx.
func (rb *Bitmap) RemoveBulk(ctx *BulkContext, x uint32) {
	hi, lo := uint16(x>>16), uint16(x&0xFFFF)
	idx, exists := rb.lookup(ctx, hi)
	if !exists {
		return
	}
	if rb.containers[idx].remove(lo) && rb.containers[idx].isEmpty() {
		rb.ctrDel(idx)
		ctx.set = false
	}
}

// AddMany sets every value in xs.
func (rb *Bitmap) AddMany(xs []uint32) {
	var ctx BulkContext
	for _, x := range xs {
		rb.AddBulk(&ctx, x)
	}
}

// RemoveMany clears every value in xs.
func (rb *Bitmap) RemoveMany(xs []uint32) {
	var ctx BulkContext
	for _, x := range xs {
		rb.RemoveBulk(&ctx, x)
	}
}

// ToSlice returns every value in the bitmap as a sorted slice.
func (rb *Bitmap) ToSlice() []uint32 {
	return rb.AppendTo(make([]uint32, 0, rb.Count()))
}

// AppendTo appends every value in the bitmap to dst and returns the result.
func (rb *Bitmap) AppendTo(dst []uint32) []uint32 {
	rb.Range(func(x uint32) bool {
		dst = append(dst, x)
		return true
	})
	return dst
}
