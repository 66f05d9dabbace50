// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import "sort"

// runFind locates the run that would contain value. Both returned indices
// are always equal: [0] names the run index for a delete, [1] the run
// index (or insertion point) for an insert.
func (c *container) runFind(value uint16) (idx [2]int, ok bool) {
	n := len(c.Data) / 2
	i := sort.Search(n, func(i int) bool { return c.Data[i*2+1] >= value })
	if i == n {
		return [2]int{n, n}, false
	}
	if c.Data[i*2] <= value {
		return [2]int{i, i}, true
	}
	return [2]int{i, i}, false
}

// runSet sets a value in a run container, merging into or extending an
// adjacent run where possible, returning whether it was newly added.
func (c *container) runSet(value uint16) bool {
	at, found := c.runFind(value)
	if found {
		return false
	}

	idx := at[1]
	numRuns := len(c.Data) / 2
	mergeLeft := idx > 0 && c.Data[(idx-1)*2+1]+1 == value
	mergeRight := idx < numRuns && c.Data[idx*2]-1 == value

	switch {
	case mergeLeft && mergeRight:
		c.Data[(idx-1)*2+1] = c.Data[idx*2+1]
		c.Data = pairRemove(c.Data, idx)
	case mergeLeft:
		c.Data[(idx-1)*2+1] = value
	case mergeRight:
		c.Data[idx*2] = value
	default:
		c.Data = pairInsert(c.Data, idx, value, value)
	}

	c.Size++
	return true
}

// runDel removes a value from a run container, splitting its run if the
// value falls in the middle, returning whether it was present.
func (c *container) runDel(value uint16) bool {
	at, found := c.runFind(value)
	if !found {
		return false
	}

	idx := at[0]
	start, end := c.Data[idx*2], c.Data[idx*2+1]
	switch {
	case start == end:
		c.Data = pairRemove(c.Data, idx)
	case value == start:
		c.Data[idx*2] = value + 1
	case value == end:
		c.Data[idx*2+1] = value - 1
	default:
		c.Data[idx*2+1] = value - 1
		c.Data = pairInsert(c.Data, idx+1, value+1, end)
	}

	c.Size--
	return true
}

// runHas reports whether value falls within one of the container's runs.
func (c *container) runHas(value uint16) bool {
	_, found := c.runFind(value)
	return found
}

// runOptimize converts the container to whichever representation best
// fits its current run count and density.
func (c *container) runOptimize() {
	if c.Type != typeRun || c.Size == 0 {
		return
	}

	numRuns := len(c.Data) / 2
	avgRunLen := float64(c.Size) / float64(numRuns)
	bitmapRatio := float64(numRuns*4+2) / float64(bitmapWords*2)
	density := float64(numRuns) / float64(c.Size)

	switch {
	case numRuns > runMaxSize, (c.Size > 32768 && bitmapRatio > 0.8):
		c.runToBmp()
	case (c.Size <= 4096 && density > 0.5), avgRunLen < 2.0:
		c.runToArray()
	}
}

// runToArray rewrites the container's runs into a flat sorted array.
func (c *container) runToArray() {
	flat := make([]uint16, 0, c.Size)
	pairs := c.runs()
	for _, r := range pairs {
		for v := uint32(r[0]); v <= uint32(r[1]); v++ {
			flat = append(flat, uint16(v))
			if v == 0xFFFF {
				break
			}
		}
	}

	c.Data = flat
	c.Type = typeArray
}

// runToBmp rewrites the container's runs into a full bitset.
func (c *container) runToBmp() {
	dst := borrowBitmap()
	for _, r := range c.runs() {
		for v := uint32(r[0]); v <= uint32(r[1]); v++ {
			dst.Set(v)
			if v == 0xFFFF {
				break
			}
		}
	}

	release(c.Data)
	c.Data = asUint16s(dst)
	c.Type = typeBitmap
	c.Size = uint32(dst.Count())
}

// runMin returns the smallest value covered by the container's runs.
func (c *container) runMin() (uint16, bool) {
	if len(c.Data) == 0 {
		return 0, false
	}
	return c.Data[0], true
}

// runMax returns the largest value covered by the container's runs.
func (c *container) runMax() (uint16, bool) {
	if len(c.Data) == 0 {
		return 0, false
	}
	return c.Data[len(c.Data)-1], true
}

// runMinZero returns the smallest value not covered by any run.
func (c *container) runMinZero() (uint16, bool) {
	if len(c.Data) == 0 || c.Data[0] > 0 {
		return 0, true
	}

	pairs := c.runs()
	for i := 1; i < len(pairs); i++ {
		if gapEnd := pairs[i-1][1]; pairs[i][0] > gapEnd+1 {
			return gapEnd + 1, true
		}
	}

	if last := pairs[len(pairs)-1][1]; last < 0xFFFF {
		return last + 1, true
	}
	return 0, false
}

// runMaxZero returns the largest value not covered by any run.
func (c *container) runMaxZero() (uint16, bool) {
	if len(c.Data) == 0 {
		return 0xFFFF, true
	}

	pairs := c.runs()
	if pairs[len(pairs)-1][1] < 0xFFFF {
		return 0xFFFF, true
	}

	for i := len(pairs) - 1; i > 0; i-- {
		if gapStart := pairs[i][0]; gapStart > pairs[i-1][1]+1 {
			return gapStart - 1, true
		}
	}

	if first := pairs[0][0]; first > 0 {
		return first - 1, true
	}
	return 0, false
}

// runEqual reports whether two run containers hold the same values.
func (c *container) runEqual(other *container) bool {
	if len(c.Data) != len(other.Data) {
		return false
	}
	for i, v := range c.Data {
		if other.Data[i] != v {
			return false
		}
	}
	return true
}

// runSubset reports whether every value in c is also present in other.
func (c *container) runSubset(other *container) bool {
	if c.Size > other.Size {
		return false
	}

	for _, r := range c.runs() {
		for v := uint32(r[0]); v <= uint32(r[1]); v++ {
			if !other.contains(uint16(v)) {
				return false
			}
			if v == 0xFFFF {
				break
			}
		}
	}
	return true
}

// runNegate replaces the container's runs with the complement run set
// over the full 16-bit domain.
func (c *container) runNegate() {
	out := make([]uint16, 0, len(c.Data)+2)
	next, open := uint16(0), true

	for _, r := range c.runs() {
		start, end := r[0], r[1]
		if next < start {
			out = append(out, next, start-1)
		}
		if end == 0xFFFF {
			open = false
			break
		}
		next = end + 1
	}
	if open {
		out = append(out, next, 0xFFFF)
	}

	c.Data = out
	c.Size = uint32(65536 - int(c.Size))
	c.Type = typeRun
}

// runRank returns the count of elements <= value within the container.
func (c *container) runRank(value uint16) int {
	rank := 0
	for _, r := range c.runs() {
		start, end := r[0], r[1]
		switch {
		case value < start:
			return rank
		case value <= end:
			return rank + int(value-start) + 1
		default:
			rank += int(end-start) + 1
		}
	}
	return rank
}

// runSelect returns the k-th smallest value (0-indexed) stored in the container.
func (c *container) runSelect(k int) (uint16, bool) {
	remaining := k
	for _, r := range c.runs() {
		length := int(r[1]-r[0]) + 1
		if remaining < length {
			return r[0] + uint16(remaining), true
		}
		remaining -= length
	}
	return 0, false
}
