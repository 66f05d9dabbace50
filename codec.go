// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

// Cookie values and thresholds from the RoaringBitmap portable serialization
// format, shared across implementations for cross-language compatibility.
const (
	serialCookie              = 12347
	serialCookieNoRunContainer = 12346
	noOffsetThreshold          = 4
)

// ErrInvalidSerialization is returned by the safe deserializers when the
// input cookie is unknown, the input is truncated, or (for FrozenView) the
// index table disagrees with the container bodies it describes.
var ErrInvalidSerialization = errors.New("roaring: invalid serialization")

// ToBytes serializes the bitmap using the portable, cross-implementation
// binary format described by the RoaringBitmap format spec.
func (rb *Bitmap) ToBytes() []byte {
	var buf bytes.Buffer
	if _, err := rb.WriteTo(&buf); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// WriteTo writes the bitmap to w using the portable format.
func (rb *Bitmap) WriteTo(w io.Writer) (int64, error) {
	n := len(rb.containers)
	hasRun := false
	for i := range rb.containers {
		if rb.containers[i].Type == typeRun {
			hasRun = true
			break
		}
	}

	var written int64
	switch {
	case hasRun:
		cookie := uint32(serialCookie) | uint32(n-1)<<16
		if err := binary.Write(w, binary.LittleEndian, cookie); err != nil {
			return written, err
		}
		written += 4

		runBitmap := make([]byte, (n+7)/8)
		for i := range rb.containers {
			if rb.containers[i].Type == typeRun {
				runBitmap[i/8] |= 1 << uint(i%8)
			}
		}
		if _, err := w.Write(runBitmap); err != nil {
			return written, err
		}
		written += int64(len(runBitmap))

	default:
		if err := binary.Write(w, binary.LittleEndian, uint32(serialCookieNoRunContainer)); err != nil {
			return written, err
		}
		written += 4
		if err := binary.Write(w, binary.LittleEndian, uint32(n)); err != nil {
			return written, err
		}
		written += 4
	}

	for i := range rb.containers {
		c := &rb.containers[i]
		card := c.cardinality()
		if err := binary.Write(w, binary.LittleEndian, rb.index[i]); err != nil {
			return written, err
		}
		written += 2
		if err := binary.Write(w, binary.LittleEndian, uint16(card-1)); err != nil {
			return written, err
		}
		written += 2
	}

	if !hasRun && n >= noOffsetThreshold {
		offset := uint32(written) + uint32(n)*4
		for i := range rb.containers {
			if err := binary.Write(w, binary.LittleEndian, offset); err != nil {
				return written, err
			}
			written += 4
			offset += uint32(containerBodySize(&rb.containers[i]))
		}
	}

	for i := range rb.containers {
		size, err := writeContainerBody(w, &rb.containers[i])
		if err != nil {
			return written, err
		}
		written += size
	}
	return written, nil
}

// containerBodySize returns the number of bytes the container's portable body occupies.
func containerBodySize(c *container) int {
	switch c.Type {
	case typeArray:
		return c.cardinality() * 2
	case typeBitmap:
		return bitmapWords * 2
	case typeRun:
		return 2 + len(c.Data)*2
	}
	return 0
}

// writeContainerBody writes one container's portable-format body.
func writeContainerBody(w io.Writer, c *container) (int64, error) {
	switch c.Type {
	case typeArray:
		if err := writeUint16s(w, isLittleEndian, c.Data); err != nil {
			return 0, err
		}
		return int64(len(c.Data)) * 2, nil

	case typeBitmap:
		if err := writeUint16s(w, isLittleEndian, c.Data); err != nil {
			return 0, err
		}
		return bitmapWords * 2, nil

	case typeRun:
		numRuns := uint16(len(c.Data) / 2)
		if err := binary.Write(w, binary.LittleEndian, numRuns); err != nil {
			return 0, err
		}
		pairs := make([]uint16, len(c.Data))
		for i := 0; i+1 < len(c.Data); i += 2 {
			pairs[i] = c.Data[i]
			pairs[i+1] = c.Data[i+1] - c.Data[i] // length_minus_one
		}
		if err := writeUint16s(w, isLittleEndian, pairs); err != nil {
			return 0, err
		}
		return 2 + int64(len(pairs))*2, nil
	}
	return 0, nil
}

// ReadFrom reads a bitmap previously written by WriteTo, in the portable format.
func (rb *Bitmap) ReadFrom(r io.Reader) (int64, error) {
	rb.Clear()
	var n int64

	var cookieLow32 uint32
	if err := binary.Read(r, binary.LittleEndian, &cookieLow32); err != nil {
		return n, err
	}
	n += 4

	var count int
	var runFlags []byte
	switch {
	case uint16(cookieLow32) == serialCookie:
		count = int(cookieLow32>>16) + 1
		runFlags = make([]byte, (count+7)/8)
		if _, err := io.ReadFull(r, runFlags); err != nil {
			return n, err
		}
		n += int64(len(runFlags))

	case cookieLow32 == serialCookieNoRunContainer:
		var c32 uint32
		if err := binary.Read(r, binary.LittleEndian, &c32); err != nil {
			return n, err
		}
		n += 4
		count = int(c32)

	default:
		return n, ErrInvalidSerialization
	}

	keys := make([]uint16, count)
	cards := make([]int, count)
	for i := 0; i < count; i++ {
		if err := binary.Read(r, binary.LittleEndian, &keys[i]); err != nil {
			return n, err
		}
		n += 2

		var cardMinus1 uint16
		if err := binary.Read(r, binary.LittleEndian, &cardMinus1); err != nil {
			return n, err
		}
		n += 2
		cards[i] = int(cardMinus1) + 1
	}

	if runFlags == nil && count >= noOffsetThreshold {
		skip := make([]byte, count*4) // offset table isn't needed for sequential reads
		if _, err := io.ReadFull(r, skip); err != nil {
			return n, err
		}
		n += int64(len(skip))
	}

	for i := 0; i < count; i++ {
		isRun := runFlags != nil && runFlags[i/8]&(1<<uint(i%8)) != 0
		c, size, err := readContainerBody(r, cards[i], isRun)
		if err != nil {
			return n, err
		}
		n += size
		rb.ctrAdd(keys[i], len(rb.containers), c)
	}
	return n, nil
}

// readContainerBody reads one container's portable-format body, selecting
// the representation the same way the writer chose it: array when
// cardinality <= 4096 and not flagged as a run, bitset otherwise, run when
// flagged in the run bitmap.
func readContainerBody(r io.Reader, cardinality int, isRun bool) (*container, int64, error) {
	switch {
	case isRun:
		var numRuns uint16
		if err := binary.Read(r, binary.LittleEndian, &numRuns); err != nil {
			return nil, 0, err
		}
		pairs, err := readUint16s(r, isLittleEndian, int(numRuns)*2*2)
		if err != nil {
			return nil, 0, err
		}
		data := make([]uint16, len(pairs))
		for i := 0; i+1 < len(pairs); i += 2 {
			data[i] = pairs[i]
			data[i+1] = pairs[i] + pairs[i+1] // start + length_minus_one = end
		}
		return &container{Type: typeRun, Size: uint32(cardinality), Data: data}, 2 + int64(len(pairs))*2, nil

	case cardinality <= defaultMaxSize:
		data, err := readUint16s(r, isLittleEndian, cardinality*2)
		if err != nil {
			return nil, 0, err
		}
		return &container{Type: typeArray, Size: uint32(cardinality), Data: data}, int64(cardinality) * 2, nil

	default:
		data, err := readUint16s(r, isLittleEndian, bitmapWords*2)
		if err != nil {
			return nil, 0, err
		}
		return &container{Type: typeBitmap, Size: uint32(cardinality), Data: data}, int64(bitmapWords) * 2, nil
	}
}

// FromBytes creates a bitmap from a portable-format byte buffer. Panics if
// the buffer is malformed; use FromBytesSafe to validate untrusted input.
func FromBytes(buffer []byte) *Bitmap {
	rb := New()
	if _, err := rb.ReadFrom(bytes.NewReader(buffer)); err != nil && err != io.EOF {
		panic(err)
	}
	return rb
}

// FromBytesSafe decodes a portable-format byte buffer, returning
// ErrInvalidSerialization instead of panicking when the cookie is unknown or
// the buffer ends early. It does not check that high keys are ascending or
// that container bodies agree with their declared cardinalities.
func FromBytesSafe(buffer []byte) (rb *Bitmap, err error) {
	defer func() {
		if r := recover(); r != nil {
			rb, err = nil, ErrInvalidSerialization
		}
	}()

	rb = New()
	if _, rerr := rb.ReadFrom(bytes.NewReader(buffer)); rerr != nil {
		return nil, ErrInvalidSerialization
	}
	return rb, nil
}

// ReadFrom reads a portable-format bitmap from r.
func ReadFrom(r io.Reader) (*Bitmap, error) {
	rb := New()
	if _, err := rb.ReadFrom(r); err != nil && err != io.EOF {
		return nil, err
	}
	return rb, nil
}
