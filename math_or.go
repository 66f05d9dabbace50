// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// or unions other into rb in place. Containers present in only one operand
// are carried over copy-on-write; containers present in both are merged
// through ctrOr.
func (rb *Bitmap) or(other *Bitmap) {
	if other == nil || len(other.containers) == 0 {
		return
	}
	if len(rb.containers) == 0 {
		rb.adopt(other)
		return
	}

	merged := make([]container, 0, len(rb.containers)+len(other.containers))
	keys := make([]uint16, 0, cap(merged))

	i, j := 0, 0
	for i < len(rb.containers) && j < len(other.containers) {
		lhs, rhs := rb.index[i], other.index[j]
		switch {
		case lhs < rhs:
			merged, keys = append(merged, rb.containers[i]), append(keys, lhs)
			i++
		case rhs < lhs:
			other.containers[j].Shared = true
			merged, keys = append(merged, other.containers[j]), append(keys, rhs)
			j++
		default:
			rb.ctrOr(&rb.containers[i], &other.containers[j])
			merged, keys = append(merged, rb.containers[i]), append(keys, lhs)
			i++
			j++
		}
	}
	for ; i < len(rb.containers); i++ {
		merged, keys = append(merged, rb.containers[i]), append(keys, rb.index[i])
	}
	for ; j < len(other.containers); j++ {
		other.containers[j].Shared = true
		merged, keys = append(merged, other.containers[j]), append(keys, other.index[j])
	}

	rb.containers, rb.index = merged, keys
}

// adopt takes a copy-on-write reference to every container in other, used
// when rb starts out empty so an OR degenerates into a clone.
func (rb *Bitmap) adopt(other *Bitmap) {
	for i := range other.containers {
		other.containers[i].Shared = true
	}
	rb.containers = append(rb.containers[:0], other.containers...)
	rb.index = append(rb.index[:0], other.index...)
}

// ctrOr dispatches to the union routine for the pair of container kinds
// involved, then restores optimality: a union can grow cardinality beyond
// what an array can hold efficiently, but it can never manufacture the kind
// of run structure that justifies a run container, so only array->bitset
// promotion is applied here, never a run conversion.
func (rb *Bitmap) ctrOr(c1, c2 *container) {
	c1.fork()
	switch c1.Type {
	case typeArray:
		switch c2.Type {
		case typeArray:
			rb.arrOrArr(c1, c2)
		case typeBitmap:
			rb.arrOrBmp(c1, c2)
		case typeRun:
			rb.arrOrRun(c1, c2)
		}
	case typeBitmap:
		switch c2.Type {
		case typeArray:
			rb.bmpOrArr(c1, c2)
		case typeBitmap:
			rb.bmpOrBmp(c1, c2)
		case typeRun:
			rb.bmpOrRun(c1, c2)
		}
	case typeRun:
		switch c2.Type {
		case typeArray:
			rb.runOrArr(c1, c2)
		case typeBitmap:
			rb.runOrBmp(c1, c2)
		case typeRun:
			rb.runOrRun(c1, c2)
		}
	}

	c1.arrPromote()
}

// arrOrArr merges two sorted arrays into a fresh union.
func (rb *Bitmap) arrOrArr(c1, c2 *container) {
	a, b := c1.Data, c2.Data
	out, i, j := rb.scratch[:0], 0, 0

	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i, j = i+1, j+1
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		default:
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	rb.scratch = out[:0]

	c1.Data = append(c1.Data[:0], out...)
	c1.Size = uint32(len(c1.Data))
}

// arrOrBmp widens the array to a bitset and unions in place; an array union
// with a bitmap is already dense enough that no intermediate form pays off.
func (rb *Bitmap) arrOrBmp(c1, c2 *container) {
	c1.arrToBmp()
	rb.bmpOrBmp(c1, c2)
}

// arrOrRun walks the array and the run pairs together, emitting whichever
// comes first and coalescing array values that a run already covers.
func (rb *Bitmap) arrOrRun(c1, c2 *container) {
	arr, pairs := c1.Data, c2.runs()
	out, p := rb.scratch[:0], 0

	emitRun := func(r [2]uint16) {
		for v := uint32(r[0]); v <= uint32(r[1]); v++ {
			out = append(out, uint16(v))
			if v == 0xFFFF {
				break
			}
		}
	}

	for _, val := range arr {
		for p < len(pairs) && pairs[p][1] < val {
			emitRun(pairs[p])
			p++
		}
		if p < len(pairs) && val >= pairs[p][0] && val <= pairs[p][1] {
			continue
		}
		out = append(out, val)
	}
	for ; p < len(pairs); p++ {
		emitRun(pairs[p])
	}
	rb.scratch = out[:0]

	c1.Data = append(c1.Data[:0], out...)
	c1.Size = uint32(len(c1.Data))
	c1.Type = typeArray
}

// bmpOrArr sets every array element's bit directly in c1's bitset.
func (rb *Bitmap) bmpOrArr(c1, c2 *container) {
	bm := c1.bmp()
	added := uint32(0)
	for _, v := range c2.Data {
		if !bm.Contains(uint32(v)) {
			bm.Set(uint32(v))
			added++
		}
	}
	c1.Size += added
}

// bmpOrBmp ORs two bitsets word by word.
func (rb *Bitmap) bmpOrBmp(c1, c2 *container) {
	b := c2.bmp()
	if b == nil {
		return
	}

	c1.bmp().Or(b)
	c1.Size = uint32(c1.bmp().Count())
}

// bmpOrRun sets every bit covered by a run directly in c1's bitset.
func (rb *Bitmap) bmpOrRun(c1, c2 *container) {
	bm := c1.bmp()
	added := uint32(0)
	for _, r := range c2.runs() {
		for v := uint32(r[0]); v <= uint32(r[1]); v++ {
			if !bm.Contains(v) {
				bm.Set(v)
				added++
			}
			if v == 0xFFFF {
				break
			}
		}
	}
	c1.Size += added
}

// runOrArr expands c1's runs into a flat array and merges in c2, then
// re-promotes to a bitset if the union grew large. Run structure is never
// restored here; that only happens through an explicit RunOptimize.
func (rb *Bitmap) runOrArr(c1, c2 *container) {
	c1.runToArray()
	rb.arrOrArr(c1, c2)
}

// runOrBmp expands c1's runs into a full bitset and ORs c2 in.
func (rb *Bitmap) runOrBmp(c1, c2 *container) {
	c1.runToBmp()
	rb.bmpOrBmp(c1, c2)
}

// runOrRun merges two sorted run-pair lists, coalescing overlapping or
// touching runs from either side as it sweeps left to right.
func (rb *Bitmap) runOrRun(c1, c2 *container) {
	a, b := c1.runs(), c2.runs()
	out, size := rb.scratch[:0], uint32(0)
	i, j := 0, 0

	for i < len(a) || j < len(b) {
		var next [2]uint16
		switch {
		case j >= len(b) || (i < len(a) && a[i][0] <= b[j][0]):
			next = a[i]
			i++
		default:
			next = b[j]
			j++
		}

		if n := len(out); n > 0 && next[0] <= out[n-1]+1 {
			if next[1] > out[n-1] {
				size += uint32(next[1]) - uint32(out[n-1])
				out[n-1] = next[1]
			}
			continue
		}

		out = append(out, next[0], next[1])
		size += uint32(next[1]-next[0]) + 1
	}
	rb.scratch = out[:0]

	c1.Data = append(c1.Data[:0], out...)
	c1.Size = size
}
