// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"encoding/binary"
	"unsafe"

	"github.com/bits-and-blooms/bitset"
)

// frozenAlign is the mandatory alignment, in bytes, of every container body
// within a frozen view.
const frozenAlign = 32

// frozenEntry describes one container's placement within a frozen buffer.
type frozenEntry struct {
	Key         uint16
	Type        ctype
	Cardinality uint32
	Offset      uint32
	Length      uint32
}

const frozenEntrySize = 2 + 1 + 4 + 4 + 4

// Freeze serializes the bitmap into a frozen, mmap-friendly layout: an index
// table of (key, type, cardinality, offset, length) followed by each
// container's raw body, 32-byte aligned. The returned bytes can be handed
// to FrozenView without copying the container payloads.
func (rb *Bitmap) Freeze() []byte {
	entries := make([]frozenEntry, len(rb.containers))
	headerSize := 4 + len(entries)*frozenEntrySize

	offset := alignUp(headerSize)
	for i := range rb.containers {
		c := &rb.containers[i]
		length := len(c.Data) * 2
		entries[i] = frozenEntry{
			Key:         rb.index[i],
			Type:        c.Type,
			Cardinality: uint32(c.cardinality()),
			Offset:      uint32(offset),
			Length:      uint32(length),
		}
		offset = alignUp(offset + length)
	}

	buf := alignedBuffer(offset)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(entries)))
	pos := 4
	for _, e := range entries {
		binary.LittleEndian.PutUint16(buf[pos:], e.Key)
		buf[pos+2] = byte(e.Type)
		binary.LittleEndian.PutUint32(buf[pos+3:], e.Cardinality)
		binary.LittleEndian.PutUint32(buf[pos+7:], e.Offset)
		binary.LittleEndian.PutUint32(buf[pos+11:], e.Length)
		pos += frozenEntrySize
	}

	for i, e := range entries {
		body := unsafe.Slice((*byte)(unsafe.Pointer(&rb.containers[i].Data[0])), e.Length)
		copy(buf[e.Offset:], body)
	}
	return buf
}

// alignUp rounds n up to the next multiple of frozenAlign.
func alignUp(n int) int {
	return (n + frozenAlign - 1) &^ (frozenAlign - 1)
}

// alignedBuffer returns a byte slice of exactly n bytes whose address is a
// multiple of frozenAlign, by over-allocating and trimming the head. The Go
// allocator gives no alignment guarantee beyond a pointer's worth for
// make([]byte, n), which Freeze's mmap-friendly contract needs.
func alignedBuffer(n int) []byte {
	raw := make([]byte, n+frozenAlign)
	pad := (frozenAlign - int(uintptr(unsafe.Pointer(&raw[0]))%frozenAlign)) % frozenAlign
	return raw[pad : pad+n : pad+n]
}

// FrozenView reconstructs a read-only bitmap from a buffer produced by
// Freeze, pointing container bodies directly at data without copying.
// The backing buffer must outlive the returned bitmap and must not be
// mutated while the view is in use. Returns ErrInvalidSerialization if the
// buffer is misaligned, truncated, or its index table is inconsistent with
// the bytes it describes.
func FrozenView(data []byte) (*Bitmap, error) {
	if len(data) < 4 || uintptr(unsafe.Pointer(&data[0]))%frozenAlign != 0 {
		return nil, ErrInvalidSerialization
	}

	count := int(binary.LittleEndian.Uint32(data[0:4]))
	headerSize := 4 + count*frozenEntrySize
	if count < 0 || headerSize > len(data) {
		return nil, ErrInvalidSerialization
	}

	seen := bitset.New(65536)
	rb := &Bitmap{
		containers: make([]container, count),
		index:      make([]uint16, count),
	}

	pos := 4
	for i := 0; i < count; i++ {
		key := binary.LittleEndian.Uint16(data[pos:])
		typ := ctype(data[pos+2])
		card := binary.LittleEndian.Uint32(data[pos+3:])
		offset := binary.LittleEndian.Uint32(data[pos+7:])
		length := binary.LittleEndian.Uint32(data[pos+11:])
		pos += frozenEntrySize

		if seen.Test(uint(key)) {
			return nil, ErrInvalidSerialization // duplicate high key
		}
		seen.Set(uint(key))

		if i > 0 && key <= rb.index[i-1] {
			return nil, ErrInvalidSerialization // high keys must be strictly ascending
		}

		end := uint64(offset) + uint64(length)
		if end > uint64(len(data)) || offset%frozenAlign != 0 {
			return nil, ErrInvalidSerialization
		}

		body := data[offset:end]
		var values []uint16
		if length > 0 {
			values = unsafe.Slice((*uint16)(unsafe.Pointer(&body[0])), length/2)
		}
		if typ > typeRun || nativeCardinality(typ, values) != card {
			return nil, ErrInvalidSerialization // declared cardinality disagrees with the body
		}

		rb.index[i] = key
		rb.containers[i] = container{Type: typ, Size: card, Data: values, Shared: true}
	}

	return rb, nil
}
