// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// andNot removes from rb every element also present in other, dropping any
// container whose remainder turns out empty.
func (rb *Bitmap) andNot(other *Bitmap) {
	if other == nil || len(other.containers) == 0 {
		return
	}
	if len(rb.containers) == 0 {
		return
	}

	empty := rb.scratch[:0]
	rb.scratch = nil // the ctr* routines below reuse rb.scratch as their output buffer
	for i := range rb.containers {
		idx, found := find16(other.index, rb.index[i])
		if !found {
			continue
		}
		if !rb.ctrAndNot(&rb.containers[i], &other.containers[idx]) {
			empty = append(empty, uint16(i))
		}
	}
	rb.scratch = empty

	for i := len(empty) - 1; i >= 0; i-- {
		rb.ctrDel(int(empty[i]))
	}
}

// ctrAndNot dispatches to the difference routine for the pair of container
// kinds involved, then restores array/bitset optimality: removing elements
// can only shrink cardinality, so a bitmap that dropped below arrMinSize is
// demoted to an array. A run is never produced here; only RunOptimize does
// that.
func (rb *Bitmap) ctrAndNot(c1, c2 *container) bool {
	c1.fork()

	var nonEmpty bool
	switch c1.Type {
	case typeArray:
		switch c2.Type {
		case typeArray:
			nonEmpty = rb.arrAndNotArr(c1, c2)
		case typeBitmap:
			nonEmpty = rb.arrAndNotBmp(c1, c2)
		case typeRun:
			nonEmpty = rb.arrAndNotRun(c1, c2)
		}
	case typeBitmap:
		switch c2.Type {
		case typeArray:
			nonEmpty = rb.bmpAndNotArr(c1, c2)
		case typeBitmap:
			nonEmpty = rb.bmpAndNotBmp(c1, c2)
		case typeRun:
			nonEmpty = rb.bmpAndNotRun(c1, c2)
		}
	case typeRun:
		switch c2.Type {
		case typeArray:
			nonEmpty = rb.runAndNotArr(c1, c2)
		case typeBitmap:
			nonEmpty = rb.runAndNotBmp(c1, c2)
		case typeRun:
			nonEmpty = rb.runAndNotRun(c1, c2)
		}
	}

	if nonEmpty {
		c1.bmpDemote()
	}
	return nonEmpty
}

// arrAndNotArr drops every array element also present in the other array.
func (rb *Bitmap) arrAndNotArr(c1, c2 *container) bool {
	a, b := c1.Data, c2.Data
	n := 0
	for i, j := 0, 0; i < len(a); {
		for j < len(b) && b[j] < a[i] {
			j++
		}
		if j < len(b) && b[j] == a[i] {
			i++
			continue
		}
		a[n] = a[i]
		n, i = n+1, i+1
	}

	c1.Data = a[:n]
	c1.Size = uint32(n)
	return n > 0
}

// arrAndNotBmp drops every array element whose bit is set in the bitmap.
func (rb *Bitmap) arrAndNotBmp(c1, c2 *container) bool {
	bm := c2.bmp()
	kept := c1.Data[:0]
	for _, v := range c1.Data {
		if !bm.Contains(uint32(v)) {
			kept = append(kept, v)
		}
	}

	c1.Data = kept
	c1.Size = uint32(len(kept))
	return len(kept) > 0
}

// arrAndNotRun drops every array element covered by one of the runs.
func (rb *Bitmap) arrAndNotRun(c1, c2 *container) bool {
	pairs := c2.runs()
	kept, p := c1.Data[:0], 0

	for _, v := range c1.Data {
		for p < len(pairs) && v > pairs[p][1] {
			p++
		}
		if p < len(pairs) && v >= pairs[p][0] && v <= pairs[p][1] {
			continue
		}
		kept = append(kept, v)
	}

	c1.Data = kept
	c1.Size = uint32(len(kept))
	return len(kept) > 0
}

// bmpAndNotArr clears the bit for every array element present in c1.
func (rb *Bitmap) bmpAndNotArr(c1, c2 *container) bool {
	bm := c1.bmp()
	for _, v := range c2.Data {
		if bm.Contains(uint32(v)) {
			bm.Remove(uint32(v))
			c1.Size--
		}
	}
	return c1.Size > 0
}

// bmpAndNotBmp clears every bit in c1 that is also set in c2.
func (rb *Bitmap) bmpAndNotBmp(c1, c2 *container) bool {
	b := c2.bmp()
	if b == nil {
		return c1.Size > 0
	}

	c1.bmp().AndNot(b)
	c1.Size = uint32(c1.bmp().Count())
	return c1.Size > 0
}

// bmpAndNotRun clears every bit covered by one of c2's runs.
func (rb *Bitmap) bmpAndNotRun(c1, c2 *container) bool {
	bm := c1.bmp()
	for _, r := range c2.runs() {
		for v := uint32(r[0]); v <= uint32(r[1]); v++ {
			if bm.Contains(v) {
				bm.Remove(v)
				c1.Size--
			}
			if v == 0xFFFF {
				break
			}
		}
	}
	return c1.Size > 0
}

// runAndNotArr subtracts the array from c1's runs, splitting a run in two
// wherever a subtracted value lands in its middle.
func (rb *Bitmap) runAndNotArr(c1, c2 *container) bool {
	pairs, arr := c1.runs(), c2.Data
	out, size, a := rb.scratch[:0], uint32(0), 0

	for _, r := range pairs {
		start, end := r[0], r[1]
		cursor := start
		for a < len(arr) && arr[a] < cursor {
			a++
		}
		for a < len(arr) && arr[a] <= end {
			if v := arr[a]; v >= cursor {
				if cursor < v {
					out = append(out, cursor, v-1)
					size += uint32(v-1-cursor) + 1
				}
				cursor = v + 1
			}
			a++
		}
		if cursor <= end {
			out = append(out, cursor, end)
			size += uint32(end-cursor) + 1
		}
	}
	rb.scratch = out[:0]

	c1.Data = append(c1.Data[:0], out...)
	c1.Size = size
	return size > 0
}

// runAndNotBmp subtracts every value covered by the bitmap from c1's runs.
func (rb *Bitmap) runAndNotBmp(c1, c2 *container) bool {
	pairs, bm := c1.runs(), c2.bmp()
	out, size := rb.scratch[:0], uint32(0)

	for _, r := range pairs {
		start, end := r[0], r[1]
		cursor := start
		for v := uint32(start); v <= uint32(end); v++ {
			if bm.Contains(v) {
				if uint32(cursor) < v {
					out = append(out, cursor, uint16(v-1))
					size += v - uint32(cursor)
				}
				cursor = uint16(v + 1)
			}
			if v == 0xFFFF {
				break
			}
		}
		if cursor <= end {
			out = append(out, cursor, end)
			size += uint32(end-cursor) + 1
		}
	}
	rb.scratch = out[:0]

	c1.Data = append(c1.Data[:0], out...)
	c1.Size = size
	return size > 0
}

// runAndNotRun subtracts every run of c2 from c1's runs, sweeping both
// lists left to right and emitting whatever of c1's current run survives
// outside the overlap with c2's current run.
func (rb *Bitmap) runAndNotRun(c1, c2 *container) bool {
	a, b := c1.runs(), c2.runs()
	out, size := rb.scratch[:0], uint32(0)
	i, j := 0, 0

	var cursor uint16
	var start, end uint16
	if i < len(a) {
		start, end = a[i][0], a[i][1]
		cursor = start
	}

	for i < len(a) {
		for j < len(b) && b[j][1] < cursor {
			j++
		}
		if j == len(b) || b[j][0] > end {
			if cursor <= end {
				out = append(out, cursor, end)
				size += uint32(end-cursor) + 1
			}
			i++
			if i < len(a) {
				start, end = a[i][0], a[i][1]
				cursor = start
			}
			continue
		}

		s2, e2 := b[j][0], b[j][1]
		if cursor < s2 {
			out = append(out, cursor, s2-1)
			size += uint32(s2-1-cursor) + 1
		}
		if e2 >= end {
			i++
			if i < len(a) {
				start, end = a[i][0], a[i][1]
				cursor = start
			}
			continue
		}
		cursor = e2 + 1
		j++
	}
	rb.scratch = out[:0]

	c1.Data = append(c1.Data[:0], out...)
	c1.Size = size
	return size > 0
}
