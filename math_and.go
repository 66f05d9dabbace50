// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// and intersects rb with other in place, dropping containers that have no
// counterpart and deleting any container whose intersection turns out empty.
func (rb *Bitmap) and(other *Bitmap) {
	if other == nil || len(other.containers) == 0 {
		rb.Clear()
		return
	}
	if len(rb.containers) == 0 {
		return
	}

	empty := rb.scratch[:0]
	rb.scratch = nil // the ctr* routines below reuse rb.scratch as their output buffer
	for i := range rb.containers {
		key := rb.index[i]
		idx, found := find16(other.index, key)
		if !found {
			empty = append(empty, uint16(i))
			continue
		}
		if !rb.ctrAnd(&rb.containers[i], &other.containers[idx]) {
			empty = append(empty, uint16(i))
		}
	}
	rb.scratch = empty

	for i := len(empty) - 1; i >= 0; i-- {
		rb.ctrDel(int(empty[i]))
	}
}

// ctrAnd dispatches to the intersection routine for the pair of container
// kinds involved, then restores array/bitset optimality on the result:
// an intersection can only shrink cardinality, so a bitmap result that
// dropped below arrMinSize is demoted to an array. Run promotion is never
// performed here, only by an explicit RunOptimize call.
func (rb *Bitmap) ctrAnd(c1, c2 *container) bool {
	c1.fork()

	var nonEmpty bool
	switch c1.Type {
	case typeArray:
		switch c2.Type {
		case typeArray:
			nonEmpty = rb.arrAndArr(c1, c2)
		case typeBitmap:
			nonEmpty = rb.arrAndBmp(c1, c2)
		case typeRun:
			nonEmpty = rb.arrAndRun(c1, c2)
		}
	case typeBitmap:
		switch c2.Type {
		case typeArray:
			nonEmpty = rb.bmpAndArr(c1, c2)
		case typeBitmap:
			nonEmpty = rb.bmpAndBmp(c1, c2)
		case typeRun:
			nonEmpty = rb.bmpAndRun(c1, c2)
		}
	case typeRun:
		switch c2.Type {
		case typeArray:
			nonEmpty = rb.runAndArr(c1, c2)
		case typeBitmap:
			nonEmpty = rb.runAndBmp(c1, c2)
		case typeRun:
			nonEmpty = rb.runAndRun(c1, c2)
		}
	}

	if nonEmpty {
		c1.bmpDemote()
	}
	return nonEmpty
}

// arrAndArr intersects two sorted arrays in place over c1's backing slice.
func (rb *Bitmap) arrAndArr(c1, c2 *container) bool {
	a, b := c1.Data, c2.Data
	n := 0
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i] == b[j]:
			a[n] = a[i]
			n, i, j = n+1, i+1, j+1
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}

	c1.Data = a[:n]
	c1.Size = uint32(n)
	return n > 0
}

// arrAndBmp keeps only the array elements also set in the bitmap.
func (rb *Bitmap) arrAndBmp(c1, c2 *container) bool {
	bm := c2.bmp()
	kept := c1.Data[:0]
	for _, v := range c1.Data {
		if bm.Contains(uint32(v)) {
			kept = append(kept, v)
		}
	}

	c1.Data = kept
	c1.Size = uint32(len(kept))
	return len(kept) > 0
}

// arrAndRun keeps only the array elements that fall inside one of the runs.
func (rb *Bitmap) arrAndRun(c1, c2 *container) bool {
	arr := c1.Data
	kept := arr[:0]

	pairs, p := c2.runs(), 0
	for _, v := range arr {
		for p < len(pairs) && v > pairs[p][1] {
			p++
		}
		if p == len(pairs) {
			break
		}
		if v >= pairs[p][0] {
			kept = append(kept, v)
		}
	}

	c1.Data = kept
	c1.Size = uint32(len(kept))
	return len(kept) > 0
}

// bmpAndArr filters the array by membership in the bitmap, producing an
// array-typed result directly since an AND against an array can never need
// more slots than the array itself.
func (rb *Bitmap) bmpAndArr(c1, c2 *container) bool {
	bm := c1.bmp()
	out := rb.scratch[:0]
	for _, v := range c2.Data {
		if bm.Contains(uint32(v)) {
			out = append(out, v)
		}
	}
	rb.scratch = out[:0]

	c1.Data = append([]uint16(nil), out...)
	c1.Size = uint32(len(out))
	c1.Type = typeArray
	return c1.Size > 0
}

// bmpAndBmp intersects two full bitsets word by word, delegating to the
// underlying bitmap package's AND. Resulting optimality is restored by the
// caller (ctrAnd), not here.
func (rb *Bitmap) bmpAndBmp(c1, c2 *container) bool {
	a, b := c1.bmp(), c2.bmp()
	if a == nil || b == nil {
		c1.Size = 0
		return false
	}

	a.And(b)
	c1.Size = uint32(a.Count())
	return c1.Size > 0
}

// bmpAndRun walks the bitmap's set bits against the run boundaries,
// discarding any bit that falls in a gap between runs.
func (rb *Bitmap) bmpAndRun(c1, c2 *container) bool {
	pairs := c2.runs()
	if len(pairs) == 0 {
		c1.Size = 0
		return false
	}

	bm, p, kept := c1.bmp(), 0, 0
	bm.Filter(func(x uint32) bool {
		for p < len(pairs) && x > uint32(pairs[p][1]) {
			p++
		}
		if p < len(pairs) && x >= uint32(pairs[p][0]) {
			kept++
			return true
		}
		return false
	})

	c1.Size = uint32(kept)
	return kept > 0
}

// runAndArr keeps the array elements covered by any of c1's runs, replacing
// c1 with an array result since the intersection can contain no more values
// than the array did.
func (rb *Bitmap) runAndArr(c1, c2 *container) bool {
	pairs, arr := c1.runs(), c2.Data
	out, p := rb.scratch[:0], 0

	for _, v := range arr {
		for p < len(pairs) && v > pairs[p][1] {
			p++
		}
		if p == len(pairs) {
			break
		}
		if v >= pairs[p][0] {
			out = append(out, v)
		}
	}
	rb.scratch = out[:0]

	c1.Data = append(c1.Data[:0], out...)
	c1.Size = uint32(len(out))
	c1.Type = typeArray
	return c1.Size > 0
}

// runAndRun intersects two run-pair lists, emitting the overlap of every
// pair of runs that share any values.
func (rb *Bitmap) runAndRun(c1, c2 *container) bool {
	a, b := c1.runs(), c2.runs()
	out, size := rb.scratch[:0], uint32(0)

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		lo := max16(a[i][0], b[j][0])
		hi := min16(a[i][1], b[j][1])
		if lo <= hi {
			out = append(out, lo, hi)
			size += uint32(hi-lo) + 1
		}

		switch {
		case a[i][1] < b[j][1]:
			i++
		case b[j][1] < a[i][1]:
			j++
		default:
			i, j = i+1, j+1
		}
	}
	rb.scratch = out[:0]

	c1.Data = append(c1.Data[:0], out...)
	c1.Size = size
	return size > 0
}

// runAndBmp converts the run container to a genuine bitset before
// delegating to bmpAndBmp. A run container's Data holds (start,end) pairs,
// not bitmap words, so reinterpreting it in place via bmp() without first
// expanding the runs would read garbage.
func (rb *Bitmap) runAndBmp(c1, c2 *container) bool {
	c1.runToBmp()
	return rb.bmpAndBmp(c1, c2)
}

func max16(a, b uint16) uint16 {
	if a > b {
		return a
	}
	return b
}

func min16(a, b uint16) uint16 {
	if a < b {
		return a
	}
	return b
}
