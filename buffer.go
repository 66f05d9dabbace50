// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"sync"
	"unsafe"

	"github.com/kelindar/bitmap"
)

// scratchPool recycles the []uint16 backing arrays used as bitmap-sized
// scratch space during container conversion, avoiding a fresh 8KiB
// allocation every time a run container is converted to a bitmap.
var scratchPool = sync.Pool{
	New: func() any {
		return make([]uint16, 0, bitmapWords)
	},
}

// borrowArray takes a zero-length scratch slice off the pool.
func borrowArray() []uint16 {
	return scratchPool.Get().([]uint16)
}

// borrowBitmap takes a scratch slice sized for a full bitmap container,
// zeroes it, and hands it back reinterpreted as bitmap words.
func borrowBitmap() bitmap.Bitmap {
	raw := borrowArray()
	if cap(raw) < bitmapWords {
		raw = make([]uint16, bitmapWords)
	}

	words := asBitmap(raw[:bitmapWords])
	for i := range words {
		words[i] = 0
	}
	return words
}

// release returns a scratch buffer to the pool once its caller is done
// with it, reinterpreting bitmap words back to their []uint16 form first.
func release(v any) {
	switch buf := v.(type) {
	case []uint16:
		scratchPool.Put(buf[:0])
	case bitmap.Bitmap:
		scratchPool.Put(asUint16s(buf)[:0])
	}
}

// asBitmap reinterprets a []uint16 backing slice as bitmap words, with no copy.
func asBitmap(data []uint16) bitmap.Bitmap {
	if len(data) == 0 {
		return nil
	}
	return bitmap.Bitmap(unsafe.Slice((*uint64)(unsafe.Pointer(&data[0])), len(data)/4))
}

// asUint16s reinterprets bitmap words back as their []uint16 backing slice.
func asUint16s(data bitmap.Bitmap) []uint16 {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Slice((*uint16)(unsafe.Pointer(&data[0])), len(data)*4)
}
