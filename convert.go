// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import "unsafe"

// RunOptimize converts eligible array and bitset containers to run
// containers wherever that representation is smaller, returning true if at
// least one container was converted to a run.
func (rb *Bitmap) RunOptimize() bool {
	converted := false
	for i := range rb.containers {
		c := &rb.containers[i]
		c.fork()
		switch c.Type {
		case typeArray:
			if c.arrToRun() {
				converted = true
			}
		case typeBitmap:
			if c.bmpNumRuns() <= runMaxSize {
				c.bmpToRun()
				converted = true
			}
		}
	}
	return converted
}

// RemoveRunCompression converts every run container back to an array or
// bitset, whichever the resulting cardinality calls for. It is the inverse
// of RunOptimize and never changes the set of stored values.
func (rb *Bitmap) RemoveRunCompression() bool {
	converted := false
	for i := range rb.containers {
		c := &rb.containers[i]
		if c.Type != typeRun {
			continue
		}
		c.fork()

		if c.cardinality() <= defaultMaxSize {
			c.runToArray()
		} else {
			c.runToBmp()
		}
		converted = true
	}
	return converted
}

// ShrinkToFit releases unused backing capacity across every container and
// returns the number of bytes freed. It never changes the set of stored
// values.
func (rb *Bitmap) ShrinkToFit() int {
	freed := 0
	for i := range rb.containers {
		c := &rb.containers[i]
		if extra := cap(c.Data) - len(c.Data); extra > 0 {
			c.fork()
			trimmed := make([]uint16, len(c.Data))
			copy(trimmed, c.Data)
			c.Data = trimmed
			freed += extra * 2
		}
	}

	if extra := cap(rb.containers) - len(rb.containers); extra > 0 {
		trimmed := make([]container, len(rb.containers))
		copy(trimmed, rb.containers)
		rb.containers = trimmed
		freed += extra * int(unsafe.Sizeof(container{}))
	}
	return freed
}
