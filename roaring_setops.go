// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// AndCardinality returns the cardinality of rb AND other without mutating either.
func (rb *Bitmap) AndCardinality(other *Bitmap) int {
	if other == nil {
		return 0
	}
	return rb.pairCardinality(other, func(tmp *Bitmap, a, b *container) bool {
		return tmp.ctrAnd(a, b)
	})
}

// OrCardinality returns the cardinality of rb OR other without mutating either.
func (rb *Bitmap) OrCardinality(other *Bitmap) int {
	if other == nil {
		return rb.Count()
	}
	return rb.Count() + other.Count() - rb.AndCardinality(other)
}

// XorCardinality returns the cardinality of rb XOR other without mutating either.
func (rb *Bitmap) XorCardinality(other *Bitmap) int {
	if other == nil {
		return rb.Count()
	}
	return rb.Count() + other.Count() - 2*rb.AndCardinality(other)
}

// AndNotCardinality returns the cardinality of rb AND NOT other without mutating either.
func (rb *Bitmap) AndNotCardinality(other *Bitmap) int {
	if other == nil {
		return rb.Count()
	}
	return rb.Count() - rb.AndCardinality(other)
}

// pairCardinality clones the containers rb shares a key with in other, applies
// op to the clones in a scratch bitmap, and sums the resulting cardinality.
func (rb *Bitmap) pairCardinality(other *Bitmap, op func(tmp *Bitmap, a, b *container) bool) int {
	var tmp Bitmap
	total := 0
	for i := range rb.containers {
		j, exists := find16(other.index, rb.index[i])
		if !exists {
			continue
		}

		c1, c2 := &rb.containers[i], &other.containers[j]
		if c1.Type == typeArray && c2.Type == typeArray {
			total += arrIntersectCount(c1.Data, c2.Data)
			continue
		}

		a := c1.clone()
		b := c2.clone()
		if op(&tmp, &a, &b) {
			total += a.cardinality()
		}
	}
	return total
}

// Intersects reports whether rb and other share at least one value.
func (rb *Bitmap) Intersects(other *Bitmap) bool {
	if other == nil {
		return false
	}

	for i := range rb.containers {
		j, exists := find16(other.index, rb.index[i])
		if !exists {
			continue
		}

		found := false
		a, b := &rb.containers[i], &other.containers[j]
		a.rangeFunc(0, func(x uint32) bool {
			if b.contains(uint16(x)) {
				found = true
				return false
			}
			return true
		})
		if found {
			return true
		}
	}
	return false
}

// Jaccard returns the Jaccard similarity index |A∩B| / |A∪B| between rb and
// other. Returns 0 when both bitmaps are empty.
func (rb *Bitmap) Jaccard(other *Bitmap) float64 {
	if other == nil {
		return 0
	}

	inter := rb.AndCardinality(other)
	union := rb.Count() + other.Count() - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// And returns a new bitmap holding the intersection of a and b, leaving both
// untouched. The allocating counterpart to the in-place (*Bitmap).And.
func And(a, b *Bitmap) *Bitmap {
	out := a.Clone(nil)
	out.And(b)
	return out
}

// Or returns a new bitmap holding the union of a and b, leaving both
// untouched. The allocating counterpart to the in-place (*Bitmap).Or.
func Or(a, b *Bitmap) *Bitmap {
	out := a.Clone(nil)
	out.Or(b)
	return out
}

// Xor returns a new bitmap holding the symmetric difference of a and b,
// leaving both untouched. The allocating counterpart to the in-place
// (*Bitmap).Xor.
func Xor(a, b *Bitmap) *Bitmap {
	out := a.Clone(nil)
	out.Xor(b)
	return out
}

// AndNot returns a new bitmap holding the elements of a with every element
// of b removed, leaving both untouched. The allocating counterpart to the
// in-place (*Bitmap).AndNot.
func AndNot(a, b *Bitmap) *Bitmap {
	out := a.Clone(nil)
	out.AndNot(b)
	return out
}

// OrMany returns a new bitmap containing the union of every bitmap in bitmaps.
func OrMany(bitmaps ...*Bitmap) *Bitmap {
	out := New()
	for _, bm := range bitmaps {
		if bm != nil {
			out.Or(bm)
		}
	}
	return out
}

// OrManyHeap unions bitmaps pairwise in a tournament order, which tends to
// keep intermediate unions smaller for skewed input sizes than a left fold.
func OrManyHeap(bitmaps ...*Bitmap) *Bitmap {
	items := make([]*Bitmap, 0, len(bitmaps))
	for _, bm := range bitmaps {
		if bm != nil {
			items = append(items, bm)
		}
	}

	if len(items) == 0 {
		return New()
	}

	for len(items) > 1 {
		next := make([]*Bitmap, 0, (len(items)+1)/2)
		for i := 0; i+1 < len(items); i += 2 {
			merged := items[i].Clone(nil)
			merged.Or(items[i+1])
			next = append(next, merged)
		}
		if len(items)%2 == 1 {
			next = append(next, items[len(items)-1])
		}
		items = next
	}
	return items[0]
}

// Statistics reports per-container-type counts and byte sizes, mirroring
// CRoaring's roaring_bitmap_statistics.
type Statistics struct {
	Containers       int
	ArrayContainers  int
	BitsetContainers int
	RunContainers    int
	BytesArray       uint64
	BytesBitset      uint64
	BytesRun         uint64
}

// Stats computes size and container-type accounting for the bitmap.
func (rb *Bitmap) Stats() Statistics {
	var s Statistics
	s.Containers = len(rb.containers)
	for i := range rb.containers {
		c := &rb.containers[i]
		switch c.Type {
		case typeArray:
			s.ArrayContainers++
			s.BytesArray += uint64(len(c.Data)) * 2
		case typeBitmap:
			s.BitsetContainers++
			s.BytesBitset += uint64(len(c.Data)) * 2
		case typeRun:
			s.RunContainers++
			s.BytesRun += uint64(len(c.Data)) * 2
		}
	}
	return s
}
