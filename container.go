// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"unsafe"

	"github.com/kelindar/bitmap"
)

// defaultMaxSize is the cardinality threshold at which an array container
// is promoted to a bitset container.
const defaultMaxSize = 4096

const (
	arrMinSize    = defaultMaxSize // promote array -> bitmap once cardinality exceeds this
	runMinSize    = 128            // arrays with fewer values than this skip the run-conversion check in arrOptimize
	runMaxSize    = 2048           // above this run count a run container is demoted to bitmap
	optimizeEvery = 2048           // amortized periodic optimize check on mutation
	bitmapWords   = 4096           // uint16 words backing a full 65536-bit bitmap container (8192 bytes)
)

// cardinalityUnknown is the lazy-cardinality sentinel used by bitset containers
// after a chained in-place op so callers avoid a popcount pass until it's read.
const cardinalityUnknown = ^uint32(0)

// ctype tags which of the three representations backs a container.
type ctype byte

const (
	typeArray ctype = iota
	typeBitmap
	typeRun
)

func (t ctype) String() string {
	switch t {
	case typeArray:
		return "array"
	case typeBitmap:
		return "bitmap"
	case typeRun:
		return "run"
	default:
		return "unknown"
	}
}

// container is the tagged-union representation of the low-16-bit values
// associated with one high-16-bit key. The tag lives next to the backing
// slice so dispatch stays a predictable branch and the backing memory of
// each representation is reinterpreted in place rather than copied.
type container struct {
	Type   ctype  // representation currently in use
	Shared bool   // COW: true if Data is shared and must be forked before mutation
	Call   uint16 // mutation counter, drives tryOptimize's amortized check
	Size   uint32 // cardinality; cardinalityUnknown if not yet recomputed (bitmap only)
	Data   []uint16
}

// fork ensures the container owns its backing slice before mutation, cloning
// it if it is currently shared via copy-on-write.
func (c *container) fork() {
	if !c.Shared {
		return
	}
	clone := make([]uint16, len(c.Data), cap(c.Data))
	copy(clone, c.Data)
	c.Data = clone
	c.Shared = false
}

// bmp reinterprets the container's backing slice as a bitmap.Bitmap word
// slice without copying. Only valid while Type == typeBitmap.
func (c *container) bmp() bitmap.Bitmap {
	if len(c.Data) == 0 {
		return nil
	}
	return bitmap.Bitmap(unsafe.Slice((*uint64)(unsafe.Pointer(&c.Data[0])), len(c.Data)/4))
}

// runs reinterprets the container's backing slice as a slice of (start, end)
// pairs without copying. Only valid while Type == typeRun.
func (c *container) runs() [][2]uint16 {
	if len(c.Data) == 0 {
		return nil
	}
	return unsafe.Slice((*[2]uint16)(unsafe.Pointer(&c.Data[0])), len(c.Data)/2)
}

// set sets a value in the container, returning true if it was newly added.
func (c *container) set(value uint16) (ok bool) {
	c.fork()
	switch c.Type {
	case typeArray:
		if ok = c.arrSet(value); ok {
			c.arrPromote()
			c.tryOptimize()
		}
	case typeBitmap:
		if ok = c.bmpSet(value); ok {
			c.tryOptimize()
		}
	case typeRun:
		if ok = c.runSet(value); ok {
			c.tryOptimize()
		}
	}
	return
}

// remove removes a value from the container, returning true if it was present.
func (c *container) remove(value uint16) (ok bool) {
	c.fork()
	switch c.Type {
	case typeArray:
		if ok = c.arrDel(value); ok {
			c.tryOptimize()
		}
	case typeBitmap:
		if ok = c.bmpDel(value); ok {
			c.tryOptimize()
		}
	case typeRun:
		if ok = c.runDel(value); ok {
			c.tryOptimize()
		}
	}
	return
}

// contains checks whether a value is present in the container.
func (c *container) contains(value uint16) bool {
	switch c.Type {
	case typeArray:
		return c.arrHas(value)
	case typeBitmap:
		return c.bmpHas(value)
	case typeRun:
		return c.runHas(value)
	}
	return false
}

// cardinality returns the number of elements, recomputing a lazily-deferred
// bitmap cardinality if necessary.
func (c *container) cardinality() int {
	if c.Type == typeBitmap && c.Size == cardinalityUnknown {
		c.Size = uint32(c.bmp().Count())
	}
	return int(c.Size)
}

// isEmpty reports whether the container has no elements.
func (c *container) isEmpty() bool {
	return c.cardinality() == 0
}

// isFull reports whether the container spans the complete 65536-value range.
func (c *container) isFull() bool {
	return c.cardinality() == 65536
}

// optimize converts the container to its most space-efficient representation.
func (c *container) optimize() {
	c.fork()
	switch c.Type {
	case typeArray:
		c.arrOptimize()
	case typeBitmap:
		c.bmpOptimize()
	case typeRun:
		c.runOptimize()
	}
}

// tryOptimize amortizes the cost of optimize() across many mutations.
func (c *container) tryOptimize() {
	if c.Call++; c.Call%optimizeEvery == 0 {
		c.optimize()
	}
}

// clone makes a fully independent deep copy of the container.
func (c *container) clone() container {
	data := make([]uint16, len(c.Data))
	copy(data, c.Data)
	return container{Type: c.Type, Size: c.Size, Data: data}
}

// min returns the smallest value in the container.
func (c *container) min() (uint16, bool) {
	if c.isEmpty() {
		return 0, false
	}
	switch c.Type {
	case typeArray:
		return c.arrMin()
	case typeBitmap:
		return c.bmpMin()
	case typeRun:
		return c.runMin()
	}
	return 0, false
}

// max returns the largest value in the container.
func (c *container) max() (uint16, bool) {
	if c.isEmpty() {
		return 0, false
	}
	switch c.Type {
	case typeArray:
		return c.arrMax()
	case typeBitmap:
		return c.bmpMax()
	case typeRun:
		return c.runMax()
	}
	return 0, false
}

// minZero returns the smallest unset value (0-65535) in the container.
func (c *container) minZero() (uint16, bool) {
	if c.cardinality() == 65536 {
		return 0, false
	}
	switch c.Type {
	case typeArray:
		return c.arrMinZero()
	case typeBitmap:
		return c.bmpMinZero()
	case typeRun:
		return c.runMinZero()
	}
	return 0, false
}

// maxZero returns the largest unset value (0-65535) in the container.
func (c *container) maxZero() (uint16, bool) {
	if c.cardinality() == 65536 {
		return 0, false
	}
	switch c.Type {
	case typeArray:
		return c.arrMaxZero()
	case typeBitmap:
		return c.bmpMaxZero()
	case typeRun:
		return c.runMaxZero()
	}
	return 0, false
}

// rangeFunc calls fn for every value in the container in ascending order,
// with base OR-ed into each value. Stops early if fn returns false.
func (c *container) rangeFunc(base uint32, fn func(x uint32) bool) bool {
	switch c.Type {
	case typeArray:
		for _, v := range c.Data {
			if !fn(base | uint32(v)) {
				return false
			}
		}
	case typeBitmap:
		return c.bmpRange(base, fn)
	case typeRun:
		for _, r := range c.runs() {
			start, end := uint32(r[0]), uint32(r[1])
			for v := start; v <= end; v++ {
				if !fn(base | v) {
					return false
				}
				if v == end {
					break // end == 65535 would otherwise wrap v back to 0
				}
			}
		}
	}
	return true
}

// rank returns the count of elements <= value within the container.
func (c *container) rank(value uint16) int {
	switch c.Type {
	case typeArray:
		idx, found := find16(c.Data, value)
		if found {
			return idx + 1
		}
		return idx
	case typeBitmap:
		return c.bmpRank(value)
	case typeRun:
		return c.runRank(value)
	}
	return 0
}

// negate flips every value in the container over the full 16-bit domain.
func (c *container) negate() {
	c.fork()
	switch c.Type {
	case typeArray:
		c.arrNegate()
	case typeBitmap:
		c.bmpNegate()
	case typeRun:
		c.runNegate()
	}
}

// selectAt returns the k-th smallest value (0-indexed) stored in the container.
func (c *container) selectAt(k int) (uint16, bool) {
	if k < 0 || k >= c.cardinality() {
		return 0, false
	}
	switch c.Type {
	case typeArray:
		return c.Data[k], true
	case typeBitmap:
		return c.bmpSelect(k)
	case typeRun:
		return c.runSelect(k)
	}
	return 0, false
}
