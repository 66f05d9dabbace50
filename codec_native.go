// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"bytes"
	"encoding/binary"
	"io"
	"math/bits"
	"unsafe"
)

var isLittleEndian = binary.LittleEndian.Uint16([]byte{1, 0}) == 1

// ToBytesNative serializes the bitmap using the compact in-process format:
// container count, then per-container (key, type, byte size, payload). This
// format is smaller to produce than the portable format but is only
// guaranteed to round-trip between identical builds of this package.
func (rb *Bitmap) ToBytesNative() []byte {
	var buf bytes.Buffer
	if _, err := rb.WriteToNative(&buf); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// WriteToNative writes the bitmap to w using the native format.
func (rb *Bitmap) WriteToNative(w io.Writer) (int64, error) {
	var n int64

	count := uint32(len(rb.containers))
	if err := binary.Write(w, binary.LittleEndian, count); err != nil {
		return n, err
	}
	n += 4

	for i := range rb.containers {
		c := &rb.containers[i]
		key := rb.index[i]

		if err := binary.Write(w, binary.LittleEndian, key); err != nil {
			return n, err
		}
		n += 2

		if err := binary.Write(w, binary.LittleEndian, c.Type); err != nil {
			return n, err
		}
		n++

		payload := c.Data
		sizeBytes := uint32(len(payload)) * 2
		if err := binary.Write(w, binary.LittleEndian, sizeBytes); err != nil {
			return n, err
		}
		n += 4

		if err := writeUint16s(w, isLittleEndian, payload); err != nil {
			return n, err
		}
		n += int64(sizeBytes)
	}
	return n, nil
}

// ReadFromNative reads a bitmap previously written by WriteToNative.
func (rb *Bitmap) ReadFromNative(r io.Reader) (int64, error) {
	rb.Clear()
	var n int64

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return n, err
	}
	n += 4

	for i := uint32(0); i < count; i++ {
		var key uint16
		if err := binary.Read(r, binary.LittleEndian, &key); err != nil {
			return n, err
		}
		n += 2

		var typ ctype
		if err := binary.Read(r, binary.LittleEndian, &typ); err != nil {
			return n, err
		}
		n++

		var sizeBytes uint32
		if err := binary.Read(r, binary.LittleEndian, &sizeBytes); err != nil {
			return n, err
		}
		n += 4

		payload, err := readUint16s(r, isLittleEndian, int(sizeBytes))
		if err != nil {
			return n, err
		}
		n += int64(sizeBytes)

		size := nativeCardinality(typ, payload)
		rb.ctrAdd(key, len(rb.containers), &container{Type: typ, Size: size, Data: payload})
	}
	return n, nil
}

// nativeCardinality recomputes a container's cardinality from its raw payload.
func nativeCardinality(typ ctype, payload []uint16) uint32 {
	switch typ {
	case typeArray:
		return uint32(len(payload))
	case typeBitmap:
		sz := uint32(0)
		for _, v := range payload {
			sz += uint32(bits.OnesCount16(v))
		}
		return sz
	case typeRun:
		sz := uint32(0)
		for i := 0; i+1 < len(payload); i += 2 {
			sz += uint32(payload[i+1]-payload[i]) + 1
		}
		return sz
	}
	return 0
}

// FromBytesNative creates a bitmap from bytes written by ToBytesNative.
func FromBytesNative(buffer []byte) *Bitmap {
	rb := New()
	_, err := rb.ReadFromNative(bytes.NewReader(buffer))
	if err != nil && err != io.EOF {
		panic(err)
	}
	return rb
}

// writeUint16s writes a slice of uint16s to a writer, reinterpreting it as
// []byte directly when the machine is little endian to avoid a copy.
func writeUint16s(w io.Writer, isLittleEndian bool, data []uint16) error {
	if len(data) == 0 {
		return nil
	}
	if isLittleEndian {
		buf := unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*2)
		_, err := w.Write(buf)
		return err
	}
	return binary.Write(w, binary.LittleEndian, data)
}

// readUint16s reads sizeBytes worth of little-endian uint16s from a reader.
func readUint16s(r io.Reader, isLittleEndian bool, sizeBytes int) ([]uint16, error) {
	if sizeBytes == 0 {
		return nil, nil
	}

	count := sizeBytes / 2
	if isLittleEndian {
		out := make([]byte, sizeBytes)
		if _, err := io.ReadFull(r, out); err != nil {
			return nil, err
		}
		return unsafe.Slice((*uint16)(unsafe.Pointer(&out[0])), count), nil
	}

	out := make([]uint16, count)
	if err := binary.Read(r, binary.LittleEndian, out); err != nil {
		return nil, err
	}
	return out, nil
}
