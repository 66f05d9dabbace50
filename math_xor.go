// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// xor computes the symmetric difference of rb and other in place. A
// container present in only one operand is carried over unchanged (XOR with
// the empty set is a no-op); a container present in both is merged through
// ctrXor and dropped entirely if the result cancels out to empty.
func (rb *Bitmap) xor(other *Bitmap) {
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
			if rb.ctrXor(&rb.containers[i], &other.containers[j]) {
				merged, keys = append(merged, rb.containers[i]), append(keys, lhs)
			}
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

// ctrXor dispatches to the symmetric-difference routine for the pair of
// container kinds involved, then restores optimality in both directions:
// unlike AND, XOR can shrink a bitmap below arrMinSize (heavy overlap
// cancels out) or grow an array past it, so both bmpDemote and arrPromote
// are applied. Neither ever produces a run; that stays reserved for an
// explicit RunOptimize call.
func (rb *Bitmap) ctrXor(c1, c2 *container) bool {
	c1.fork()

	var nonEmpty bool
	switch c1.Type {
	case typeArray:
		switch c2.Type {
		case typeArray:
			nonEmpty = rb.arrXorArr(c1, c2)
		case typeBitmap:
			nonEmpty = rb.arrXorBmp(c1, c2)
		case typeRun:
			nonEmpty = rb.arrXorRun(c1, c2)
		}
	case typeBitmap:
		switch c2.Type {
		case typeArray:
			nonEmpty = rb.bmpXorArr(c1, c2)
		case typeBitmap:
			nonEmpty = rb.bmpXorBmp(c1, c2)
		case typeRun:
			nonEmpty = rb.bmpXorRun(c1, c2)
		}
	case typeRun:
		switch c2.Type {
		case typeArray:
			nonEmpty = rb.runXorArr(c1, c2)
		case typeBitmap:
			nonEmpty = rb.runXorBmp(c1, c2)
		case typeRun:
			nonEmpty = rb.runXorRun(c1, c2)
		}
	}

	if nonEmpty {
		c1.bmpDemote()
		c1.arrPromote()
	}
	return nonEmpty
}

// arrXorArr merges two sorted arrays, keeping only values present in
// exactly one of them.
func (rb *Bitmap) arrXorArr(c1, c2 *container) bool {
	a, b := c1.Data, c2.Data
	out, i, j := rb.scratch[:0], 0, 0

	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
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
	return c1.Size > 0
}

// arrXorBmp widens the array to a bitset before delegating to bmpXorBmp.
func (rb *Bitmap) arrXorBmp(c1, c2 *container) bool {
	c1.arrToBmp()
	return rb.bmpXorBmp(c1, c2)
}

// arrXorRun walks the array and run pairs in lockstep, keeping array values
// outside every run and run values the array doesn't already contain.
func (rb *Bitmap) arrXorRun(c1, c2 *container) bool {
	arr, pairs := c1.Data, c2.runs()
	out, ai, p := rb.scratch[:0], 0, 0

	for p < len(pairs) {
		lo, hi := pairs[p][0], pairs[p][1]
		for ai < len(arr) && arr[ai] < lo {
			out = append(out, arr[ai])
			ai++
		}
		for v := uint32(lo); v <= uint32(hi); v++ {
			if ai < len(arr) && arr[ai] == uint16(v) {
				ai++
				continue
			}
			out = append(out, uint16(v))
			if v == 0xFFFF {
				break
			}
		}
		p++
	}
	out = append(out, arr[ai:]...)
	rb.scratch = out[:0]

	c1.Data = append(c1.Data[:0], out...)
	c1.Size = uint32(len(c1.Data))
	c1.Type = typeArray
	return c1.Size > 0
}

// bmpXorArr flips the bit for every array element in c1's bitset.
func (rb *Bitmap) bmpXorArr(c1, c2 *container) bool {
	bm := c1.bmp()
	for _, v := range c2.Data {
		if bm.Contains(uint32(v)) {
			bm.Remove(uint32(v))
			c1.Size--
		} else {
			bm.Set(uint32(v))
			c1.Size++
		}
	}
	return c1.Size > 0
}

// bmpXorBmp XORs two bitsets word by word.
func (rb *Bitmap) bmpXorBmp(c1, c2 *container) bool {
	b := c2.bmp()
	if b == nil {
		return c1.Size > 0
	}

	c1.bmp().Xor(b)
	c1.Size = uint32(c1.bmp().Count())
	return c1.Size > 0
}

// bmpXorRun flips the bit for every value covered by a run in c1's bitset.
func (rb *Bitmap) bmpXorRun(c1, c2 *container) bool {
	bm := c1.bmp()
	for _, r := range c2.runs() {
		for v := uint32(r[0]); v <= uint32(r[1]); v++ {
			if bm.Contains(v) {
				bm.Remove(v)
				c1.Size--
			} else {
				bm.Set(v)
				c1.Size++
			}
			if v == 0xFFFF {
				break
			}
		}
	}
	return c1.Size > 0
}

// runXorArr expands c1's runs into a flat array before delegating to
// arrXorArr. Any resulting run structure is only restored by an explicit
// RunOptimize, never implicitly here.
func (rb *Bitmap) runXorArr(c1, c2 *container) bool {
	c1.runToArray()
	return rb.arrXorArr(c1, c2)
}

// runXorBmp expands c1's runs into a full bitset before XOR-ing c2 in.
func (rb *Bitmap) runXorBmp(c1, c2 *container) bool {
	c1.runToBmp()
	return rb.bmpXorBmp(c1, c2)
}

// runXorRun sweeps both run-pair lists simultaneously, splitting any
// overlap into the non-shared edges and keeping whichever run extends past
// the other untouched.
func (rb *Bitmap) runXorRun(c1, c2 *container) bool {
	a, b := c1.runs(), c2.runs()
	out, size := rb.scratch[:0], uint32(0)
	i, j := 0, 0

	emit := func(lo, hi uint16) {
		out = append(out, lo, hi)
		size += uint32(hi-lo) + 1
	}

	// s1/e1 and s2/e2 track the still-unconsumed remainder of the run each
	// index currently points at; runs() is a read-only view over c1/c2's
	// backing arrays, so partially-consumed runs are tracked locally
	// instead of writing back into either container's data.
	var s1, e1, s2, e2 uint16
	if i < len(a) {
		s1, e1 = a[i][0], a[i][1]
	}
	if j < len(b) {
		s2, e2 = b[j][0], b[j][1]
	}

	for i < len(a) && j < len(b) {
		switch {
		case e1 < s2:
			emit(s1, e1)
			i++
			if i < len(a) {
				s1, e1 = a[i][0], a[i][1]
			}
		case e2 < s1:
			emit(s2, e2)
			j++
			if j < len(b) {
				s2, e2 = b[j][0], b[j][1]
			}
		default:
			lo, hi := max16(s1, s2), min16(e1, e2)
			switch {
			case s1 < lo:
				emit(s1, lo-1)
			case s2 < lo:
				emit(s2, lo-1)
			}

			switch {
			case e1 < e2:
				i++
				if i < len(a) {
					s1, e1 = a[i][0], a[i][1]
				}
				s2 = hi + 1
			case e2 < e1:
				j++
				if j < len(b) {
					s2, e2 = b[j][0], b[j][1]
				}
				s1 = hi + 1
			default:
				i++
				j++
				if i < len(a) {
					s1, e1 = a[i][0], a[i][1]
				}
				if j < len(b) {
					s2, e2 = b[j][0], b[j][1]
				}
			}
		}
	}
	if i < len(a) {
		emit(s1, e1)
		i++
	}
	if j < len(b) {
		emit(s2, e2)
		j++
	}
	for ; i < len(a); i++ {
		emit(a[i][0], a[i][1])
	}
	for ; j < len(b); j++ {
		emit(b[j][0], b[j][1])
	}
	rb.scratch = out[:0]

	c1.Data = append(c1.Data[:0], out...)
	c1.Size = size
	return size > 0
}
